package config

import (
	"fmt"
	"strings"

	"gofind/internal/entry"
)

// TypeFilter extends entry.FileType with the two pseudo-types spec.md §6
// allows a type filter to name: "executable" (regular file the current
// process may execute, checked with access(2)) and "empty" (zero-length file or directory with no
// entries). Both require an extra stat/readdir the predicate pipeline
// only pays for when a type filter is actually configured.
type TypeFilter int

const (
	TypeFile TypeFilter = iota
	TypeDirectory
	TypeSymlink
	TypePipe
	TypeCharDevice
	TypeBlockDevice
	TypeSocket
	TypeExecutable
	TypeEmpty
)

func (t TypeFilter) String() string {
	switch t {
	case TypeFile:
		return "file"
	case TypeDirectory:
		return "directory"
	case TypeSymlink:
		return "symlink"
	case TypePipe:
		return "pipe"
	case TypeCharDevice:
		return "char-device"
	case TypeBlockDevice:
		return "block-device"
	case TypeSocket:
		return "socket"
	case TypeExecutable:
		return "executable"
	case TypeEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// ParseTypeFilter parses one of the type filter names spec.md §6 lists.
func ParseTypeFilter(s string) (TypeFilter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "f", "file", "regular":
		return TypeFile, nil
	case "d", "dir", "directory":
		return TypeDirectory, nil
	case "l", "symlink", "link":
		return TypeSymlink, nil
	case "p", "pipe", "fifo":
		return TypePipe, nil
	case "c", "char-device", "chardevice":
		return TypeCharDevice, nil
	case "b", "block-device", "blockdevice":
		return TypeBlockDevice, nil
	case "s", "socket":
		return TypeSocket, nil
	case "x", "executable":
		return TypeExecutable, nil
	case "e", "empty":
		return TypeEmpty, nil
	default:
		return 0, fmt.Errorf("config: invalid type filter %q", s)
	}
}

// MatchesBasicType reports whether ft satisfies this filter for the
// filters that need nothing beyond the entry's file-type tag. Executable
// and Empty require additional stats the predicate package resolves
// itself, since they involve an I/O call this package has no business
// making.
func (t TypeFilter) MatchesBasicType(ft entry.FileType) bool {
	switch t {
	case TypeFile:
		return ft == entry.RegularFile
	case TypeDirectory:
		return ft == entry.Directory
	case TypeSymlink:
		return ft == entry.Symlink
	case TypePipe:
		return ft == entry.Pipe
	case TypeCharDevice:
		return ft == entry.CharDevice
	case TypeBlockDevice:
		return ft == entry.BlockDevice
	case TypeSocket:
		return ft == entry.Socket
	default:
		return false
	}
}

// NeedsStat reports whether this filter kind cannot be resolved from the
// raw directory record's type tag alone.
func (t TypeFilter) NeedsStat() bool {
	return t == TypeExecutable || t == TypeEmpty
}
