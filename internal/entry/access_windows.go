//go:build windows

package entry

import "os"

type accessMode int

const (
	accessExists accessMode = iota
	accessRead
	accessWrite
	accessExecute
)

// Windows has no access(2) equivalent with POSIX mode bits; we approximate
// using stat plus the read-only attribute, matching what the teacher's own
// Windows-only build already did for disk queries (os.Stat-based checks).
func checkAccess(path string, mode accessMode) (bool, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	switch mode {
	case accessExists:
		return true, nil
	case accessRead:
		return true, nil
	case accessWrite:
		return fi.Mode().Perm()&0o200 != 0, nil
	case accessExecute:
		return fi.IsDir() || fi.Mode().Perm()&0o100 != 0, nil
	default:
		return true, nil
	}
}
