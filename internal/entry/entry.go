// Package entry implements the core value type produced during traversal:
// a filesystem entry addressed by raw, NUL-terminated path bytes, together
// with the metadata the directory iterator could extract without forcing a
// stat call, and the on-demand queries that do need one.
package entry

import (
	"bytes"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gofind/internal/finderr"
)

// Entry is the value produced while walking a directory tree. It owns its
// path bytes (including the trailing NUL used for OS interop) and is
// immutable except for the lazily-computed symlink-target-is-directory
// cache.
//
// Invariants (spec.md §3):
//   - path never ends with '/' except when path is exactly "/".
//   - filenameIndex <= len(path); for root or ".", filenameIndex is 0;
//     otherwise it equals (index of last '/')+1.
//   - depth, ino and filenameIndex are immutable once constructed.
//   - the symlink cache transitions nil -> set at most once, and only for
//     entries whose FileType is Symlink.
type Entry struct {
	path          []byte // NUL-terminated
	fileType      FileType
	ino           uint64
	depth         uint32
	filenameIndex uint32

	symlinkMu  sync.Mutex
	symlinkDir *bool // nil until computed; only meaningful for Symlink
}

// New constructs an Entry from already-NUL-terminated path bytes. The
// caller asserts filenameIndex and depth are correct for path; rawdir
// iterators are the normal caller of this constructor.
func New(pathWithNul []byte, fileType FileType, ino uint64, depth uint32, filenameIndex uint32) *Entry {
	return &Entry{
		path:          pathWithNul,
		fileType:      fileType,
		ino:           ino,
		depth:         depth,
		filenameIndex: filenameIndex,
	}
}

// FromOSPath builds an Entry the way the root seed and stat-fallback paths
// do: given a plain (non-NUL-terminated) string path. Unlike New, which
// trusts already-validated kernel directory-record bytes, FromOSPath
// handles arbitrary caller-supplied strings (a CLI root argument, a
// resolved symlink target) and so rejects an embedded NUL the way a
// CString construction would.
func FromOSPath(path string, fileType FileType, ino uint64, depth uint32) (*Entry, error) {
	if strings.IndexByte(path, 0) >= 0 {
		return nil, finderr.New(finderr.KindNulInPath, path, nil)
	}
	filenameIndex := 0
	if path != "/" && path != "." {
		if i := bytes.LastIndexByte([]byte(path), '/'); i >= 0 {
			filenameIndex = i + 1
		}
	}
	buf := make([]byte, len(path)+1)
	copy(buf, path)
	buf[len(path)] = 0
	return New(buf, fileType, ino, depth, uint32(filenameIndex)), nil
}

// AsBytes returns the path without its trailing NUL.
func (e *Entry) AsBytes() []byte {
	if n := len(e.path); n > 0 && e.path[n-1] == 0 {
		return e.path[:n-1]
	}
	return e.path
}

// Path returns the path as a string (without the trailing NUL).
func (e *Entry) Path() string { return string(e.AsBytes()) }

// FileName returns the filename portion of the path.
func (e *Entry) FileName() []byte { return e.AsBytes()[e.filenameIndex:] }

// Extension returns the slice after the last '.' in the filename,
// excluding a trailing '.'. It never touches the filesystem: a reverse
// byte scan only.
func (e *Entry) Extension() []byte {
	name := e.FileName()
	if len(name) == 0 {
		return nil
	}
	// A trailing '.' (e.g. "foo.") has no extension.
	end := len(name)
	for end > 0 && name[end-1] == '.' {
		end--
	}
	if end == 0 {
		return nil
	}
	idx := bytes.LastIndexByte(name[:end], '.')
	if idx < 0 {
		return nil
	}
	return name[idx+1 : end]
}

// Dirname returns the slice from 0 to filenameIndex-1: "/" for root and
// for a direct child of "/", and "." for a relative path with no '/'.
func (e *Entry) Dirname() []byte {
	path := e.AsBytes()
	if e.filenameIndex <= 1 {
		if len(path) > 0 && path[0] == '/' {
			return path[:1]
		}
		return []byte(".")
	}
	return path[:e.filenameIndex-1]
}

// Depth returns the entry's depth (0 at the search root).
func (e *Entry) Depth() uint32 { return e.depth }

// Ino returns the kernel inode identifier.
func (e *Entry) Ino() uint64 { return e.ino }

// FilenameIndex returns the byte offset of the filename within the path.
func (e *Entry) FilenameIndex() uint32 { return e.filenameIndex }

// Type returns the entry's file-type tag.
func (e *Entry) Type() FileType { return e.fileType }

func (e *Entry) IsDir() bool         { return e.fileType == Directory }
func (e *Entry) IsRegularFile() bool { return e.fileType == RegularFile }
func (e *Entry) IsSymlink() bool     { return e.fileType == Symlink }

// IsHidden reports whether the filename's first byte is '.'.
func (e *Entry) IsHidden() bool {
	name := e.FileName()
	return len(name) > 0 && name[0] == '.'
}

// IsTraversible reports whether the traversal driver should descend into
// this entry: true for directories, and for symlinks whose target
// resolves to a directory (computed once and memoised).
func (e *Entry) IsTraversible() (bool, error) {
	if e.fileType == Directory {
		return true, nil
	}
	if e.fileType != Symlink {
		return false, nil
	}
	isDir, err := e.symlinkTargetIsDir()
	if err != nil {
		return false, err
	}
	return isDir, nil
}

func (e *Entry) symlinkTargetIsDir() (bool, error) {
	e.symlinkMu.Lock()
	defer e.symlinkMu.Unlock()
	if e.symlinkDir != nil {
		return *e.symlinkDir, nil
	}
	fi, err := statFollow(e.Path())
	if err != nil {
		return false, finderr.IO(e.Path(), err)
	}
	isDir := fi.IsDir()
	e.symlinkDir = &isDir
	return isDir, nil
}

// IsEmpty reports whether a regular file has zero size, or a directory has
// zero enumerable entries (".", ".." excluded). Any other type is false.
func (e *Entry) IsEmpty() (bool, error) {
	switch e.fileType {
	case RegularFile:
		size, err := e.FileSize()
		if err != nil {
			return false, err
		}
		return size == 0, nil
	case Directory:
		return dirIsEmpty(e.Path())
	default:
		return false, nil
	}
}

// ModifiedTime returns the entry's modification time via lstat.
func (e *Entry) ModifiedTime() (time.Time, error) {
	fi, err := statNoFollow(e.Path())
	if err != nil {
		return time.Time{}, finderr.IO(e.Path(), err)
	}
	return fi.ModTime().UTC(), nil
}

// FileSize returns the entry's st_size via lstat.
func (e *Entry) FileSize() (uint64, error) {
	fi, err := statNoFollow(e.Path())
	if err != nil {
		return 0, finderr.IO(e.Path(), err)
	}
	if fi.Size() < 0 {
		return 0, nil
	}
	return uint64(fi.Size()), nil
}

// ToFullPath resolves the entry's path via realpath semantics and returns
// a new Entry addressing the resolved path. When the entry is a symlink,
// its type and inode are stale once resolved (they describe the link, not
// the target), so this also stats the target to refresh them; for every
// other type the original type/inode already describe the resolved path
// and are carried over untouched. depth is preserved from the receiver.
func (e *Entry) ToFullPath() (*Entry, error) {
	abs, err := filepath.Abs(e.Path())
	if err != nil {
		return nil, finderr.IO(e.Path(), err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, finderr.IO(e.Path(), err)
	}

	fileType, ino := e.fileType, e.ino
	if e.IsSymlink() {
		fi, statErr := statFollow(resolved)
		if statErr != nil {
			return nil, finderr.IO(resolved, statErr)
		}
		fileType = fileTypeFromFileMode(fi.Mode())
		ino = inoFromFileInfo(fi, resolved)
	}

	return FromOSPath(resolved, fileType, ino, e.depth)
}
