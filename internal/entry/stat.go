package entry

import (
	"os"

	"gofind/internal/finderr"
)

func statNoFollow(path string) (os.FileInfo, error) { return os.Lstat(path) }
func statFollow(path string) (os.FileInfo, error)   { return os.Stat(path) }

func dirIsEmpty(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, finderr.IO(path, err)
	}
	defer f.Close()
	names, err := f.Readdirnames(1)
	if err != nil && len(names) == 0 {
		// io.EOF means no entries, i.e. empty directory.
		return true, nil
	}
	return len(names) == 0, nil
}

// IsExecutable reports whether the entry is executable by the current
// process, via access(2) with X_OK (or the platform equivalent).
func (e *Entry) IsExecutable() (bool, error) { return checkAccess(e.Path(), accessExecute) }

// IsReadable reports whether the entry is readable by the current process.
func (e *Entry) IsReadable() (bool, error) { return checkAccess(e.Path(), accessRead) }

// IsWritable reports whether the entry is writable by the current process.
func (e *Entry) IsWritable() (bool, error) { return checkAccess(e.Path(), accessWrite) }

// Exists reports whether the path still exists.
func (e *Entry) Exists() (bool, error) { return checkAccess(e.Path(), accessExists) }
