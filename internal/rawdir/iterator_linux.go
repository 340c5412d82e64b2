//go:build linux

package rawdir

import (
	"unsafe"

	"golang.org/x/sys/unix"

	"gofind/internal/entry"
	"gofind/internal/finderr"
)

// nameOffset is the compile-time-constant byte offset of the Name field
// within unix.Dirent on this platform (spec.md §4.1's "header_start").
const nameOffset = int(unsafe.Offsetof(unix.Dirent{}.Name))

// getdentsIterator is the batched, getdents64-style iterator (spec.md
// §4.3.1): it reads entries in bulk into an aligned buffer and walks
// records, skipping "." and ".." with a single-branch test in the common
// case (record length and type tag checked before the name bytes).
type getdentsIterator struct {
	fd            int
	buf           *alignedBuffer
	path          *pathBuffer
	parentDepth   uint32
	remaining     int
	offset        int
	eof           bool
}

// NewIterator opens dirPath and returns the platform's directory
// iterator. parentDepth is the depth of the directory being enumerated;
// children are emitted at parentDepth+1.
func NewIterator(dirPath string, parentDepth uint32) (Iterator, error) {
	fd, err := unix.Open(dirPath, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, finderr.IO(dirPath, err)
	}
	return &getdentsIterator{
		fd:          fd,
		buf:         newAlignedBuffer(DefaultBufferSize),
		path:        newPathBuffer(dirPath),
		parentDepth: parentDepth,
	}, nil
}

func (it *getdentsIterator) Close() error {
	if it.fd == 0 {
		return nil
	}
	fd := it.fd
	it.fd = 0
	return unix.Close(fd)
}

func (it *getdentsIterator) Next() (*entry.Entry, error) {
	for {
		if it.offset >= it.remaining {
			if it.eof {
				return nil, nil
			}
			n, err := unix.Getdents(it.fd, it.buf.Bytes())
			if err == unix.EINTR {
				continue
			}
			if err != nil {
				return nil, finderr.IO("", err)
			}
			if n <= 0 {
				it.eof = true
				return nil, nil
			}
			it.remaining = n
			it.offset = 0
		}

		chunk := it.buf.Bytes()[it.offset:it.remaining]
		var de unix.Dirent
		copy((*[unsafe.Sizeof(unix.Dirent{})]byte)(unsafe.Pointer(&de))[:], chunk)
		if de.Reclen == 0 {
			// Malformed/empty record: stop rather than loop forever.
			it.eof = true
			return nil, nil
		}
		it.offset += int(de.Reclen)

		// Dot-entry skip optimisation (spec.md §4.3.1): on Linux, "." and
		// ".." always have the minimum record length and a type of
		// Directory or Unknown; test the cheap fields before the name.
		minReclen := (nameOffset + 7) &^ 7
		if int(de.Reclen) == minReclen && (de.Type == unix.DT_DIR || de.Type == unix.DT_UNKNOWN) {
			nameBytes := direntNameBytes(&de)
			nameLen := swarNameLen(chunk[:de.Reclen], nameOffset)
			if isDotOrDotDot(nameBytes, nameLen) {
				continue
			}
			return it.buildEntry(&de, chunk, nameBytes, nameLen)
		}

		nameBytes := direntNameBytes(&de)
		nameLen := swarNameLen(chunk[:de.Reclen], nameOffset)
		return it.buildEntry(&de, chunk, nameBytes, nameLen)
	}
}

func direntNameBytes(de *unix.Dirent) []byte {
	n := len(de.Name)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = byte(de.Name[i])
	}
	return out
}

func fileTypeFromDirent(t uint8) entry.FileType {
	switch t {
	case unix.DT_REG:
		return entry.RegularFile
	case unix.DT_DIR:
		return entry.Directory
	case unix.DT_LNK:
		return entry.Symlink
	case unix.DT_BLK:
		return entry.BlockDevice
	case unix.DT_CHR:
		return entry.CharDevice
	case unix.DT_FIFO:
		return entry.Pipe
	case unix.DT_SOCK:
		return entry.Socket
	default:
		return entry.Unknown
	}
}

func (it *getdentsIterator) buildEntry(de *unix.Dirent, chunk, nameBytes []byte, nameLen int) (*entry.Entry, error) {
	ft := fileTypeFromDirent(de.Type)
	pathBytes := it.path.entryPath(nameBytes, nameLen)
	if ft == entry.Unknown {
		// §4.3.4 step 1: fstatat relative to the parent fd when the
		// record's type byte is absent/unknown.
		var st unix.Stat_t
		name := string(nameBytes[:nameLen])
		if err := unix.Fstatat(it.fd, name, &st, unix.AT_SYMLINK_NOFOLLOW); err == nil {
			ft = fileTypeFromMode(st.Mode)
		}
	}
	return entry.New(pathBytes, ft, de.Ino, it.parentDepth+1, uint32(it.path.filenameIndex)), nil
}

func fileTypeFromMode(mode uint32) entry.FileType {
	switch mode & unix.S_IFMT {
	case unix.S_IFREG:
		return entry.RegularFile
	case unix.S_IFDIR:
		return entry.Directory
	case unix.S_IFLNK:
		return entry.Symlink
	case unix.S_IFBLK:
		return entry.BlockDevice
	case unix.S_IFCHR:
		return entry.CharDevice
	case unix.S_IFIFO:
		return entry.Pipe
	case unix.S_IFSOCK:
		return entry.Socket
	default:
		return entry.Unknown
	}
}
