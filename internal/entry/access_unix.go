//go:build unix

package entry

import "golang.org/x/sys/unix"

type accessMode int

const (
	accessExists accessMode = iota
	accessRead
	accessWrite
	accessExecute
)

func checkAccess(path string, mode accessMode) (bool, error) {
	var flag uint32
	switch mode {
	case accessExists:
		flag = unix.F_OK
	case accessRead:
		flag = unix.R_OK
	case accessWrite:
		flag = unix.W_OK
	case accessExecute:
		flag = unix.X_OK
	}
	err := unix.Access(path, flag)
	if err == nil {
		return true, nil
	}
	if err == unix.ENOENT || err == unix.EACCES {
		return false, nil
	}
	return false, err
}
