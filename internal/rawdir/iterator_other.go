//go:build !linux && !darwin && !freebsd

package rawdir

import (
	"io"
	"os"

	"gofind/internal/entry"
	"gofind/internal/finderr"
)

// readdirIterator is the one-at-a-time fallback (spec.md §4.3.3) used on
// platforms without a usable raw getdents/getdirentries syscall exposed by
// golang.org/x/sys/unix (Windows, and any other unix the build tags above
// don't special-case). Each Next() call asks the OS for exactly one
// record; end-of-stream is signalled the same way spec.md describes a
// null-terminated libc record reader behaving.
//
// Go's standard library does not expose a raw, un-stat'd directory record
// on these platforms without cgo, so this iterator pays one stat
// (os.DirEntry.Info()) for each entry whose type bits come back unset —
// the degraded-but-correct iterator
// spec.md §6 calls out for platforms where the d_type field is absent.
type readdirIterator struct {
	f           *os.File
	path        *pathBuffer
	parentDepth uint32
	eof         bool
}

func NewIterator(dirPath string, parentDepth uint32) (Iterator, error) {
	f, err := os.Open(dirPath)
	if err != nil {
		return nil, finderr.IO(dirPath, err)
	}
	return &readdirIterator{
		f:           f,
		path:        newPathBuffer(dirPath),
		parentDepth: parentDepth,
	}, nil
}

func (it *readdirIterator) Close() error {
	if it.f == nil {
		return nil
	}
	f := it.f
	it.f = nil
	return f.Close()
}

func (it *readdirIterator) Next() (*entry.Entry, error) {
	if it.eof {
		return nil, nil
	}
	for {
		des, err := it.f.ReadDir(1)
		if len(des) == 0 {
			if err == io.EOF || err == nil {
				it.eof = true
				return nil, nil
			}
			return nil, finderr.IO(it.f.Name(), err)
		}
		de := des[0]
		name := de.Name()
		if name == "." || name == ".." {
			continue
		}
		ft := fileTypeFromDirEntry(de)
		var ino uint64
		if ft == entry.Unknown {
			if info, ierr := de.Info(); ierr == nil {
				ft = fileTypeFromFileMode(info.Mode())
			}
		}
		nameBytes := []byte(name)
		pathBytes := it.path.entryPath(nameBytes, len(nameBytes))
		return entry.New(pathBytes, ft, ino, it.parentDepth+1, uint32(it.path.filenameIndex)), nil
	}
}

func fileTypeFromDirEntry(de os.DirEntry) entry.FileType {
	return fileTypeFromFileMode(de.Type())
}

func fileTypeFromFileMode(mode os.FileMode) entry.FileType {
	switch {
	case mode.IsRegular():
		return entry.RegularFile
	case mode.IsDir():
		return entry.Directory
	case mode&os.ModeSymlink != 0:
		return entry.Symlink
	case mode&os.ModeNamedPipe != 0:
		return entry.Pipe
	case mode&os.ModeSocket != 0:
		return entry.Socket
	case mode&os.ModeDevice != 0:
		if mode&os.ModeCharDevice != 0 {
			return entry.CharDevice
		}
		return entry.BlockDevice
	default:
		return entry.Unknown
	}
}
