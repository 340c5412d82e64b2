//go:build unix

package driver

import (
	"os"
	"syscall"
)

// fileIdentity extracts the (device, inode) pair spec.md §4.6/§4.7 use for
// same-filesystem gating and symlink-cycle detection. On unix platforms
// this is free: os.FileInfo already carries a *syscall.Stat_t.
func fileIdentity(fi os.FileInfo, _ string) (dev, ino uint64) {
	if st, ok := fi.Sys().(*syscall.Stat_t); ok {
		return uint64(st.Dev), uint64(st.Ino)
	}
	return 0, 0
}
