//go:build windows

package driver

import (
	"os"

	"golang.org/x/sys/windows"
)

// fileIdentity extracts a (volume serial, file index) pair equivalent to
// unix's (device, inode): os.FileInfo carries no such identity on
// Windows, so this opens the file (no sharing restrictions, matching the
// teacher's own read-only drive-scanning posture) and asks the kernel via
// GetFileInformationByHandle.
func fileIdentity(_ os.FileInfo, path string) (dev, ino uint64) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, 0
	}
	h, err := windows.CreateFile(
		p,
		0,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_FLAG_BACKUP_SEMANTICS,
		0,
	)
	if err != nil {
		return 0, 0
	}
	defer windows.CloseHandle(h)

	var info windows.ByHandleFileInformation
	if err := windows.GetFileInformationByHandle(h, &info); err != nil {
		return 0, 0
	}
	dev = uint64(info.VolumeSerialNumber)
	ino = uint64(info.FileIndexHigh)<<32 | uint64(info.FileIndexLow)
	return dev, ino
}
