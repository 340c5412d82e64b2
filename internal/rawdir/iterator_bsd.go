//go:build darwin || freebsd

package rawdir

import (
	"unsafe"

	"golang.org/x/sys/unix"

	"gofind/internal/entry"
	"gofind/internal/finderr"
)

const nameOffset = int(unsafe.Offsetof(unix.Dirent{}.Name))

// getdirentriesIterator is the BSD/macOS batched iterator (spec.md
// §4.3.2): same shape as the Linux getdents iterator, but the read
// syscall takes an additional directory-position cursor, and the dirent
// carries a d_namlen field naming the filename length directly (the first
// branch of §4.1: no SWAR decode needed on this platform).
type getdirentriesIterator struct {
	fd          int
	buf         *alignedBuffer
	path        *pathBuffer
	parentDepth uint32
	basep       uintptr
	remaining   int
	offset      int
	eof         bool
}

func NewIterator(dirPath string, parentDepth uint32) (Iterator, error) {
	fd, err := unix.Open(dirPath, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, finderr.IO(dirPath, err)
	}
	return &getdirentriesIterator{
		fd:          fd,
		buf:         newAlignedBuffer(DefaultBufferSize),
		path:        newPathBuffer(dirPath),
		parentDepth: parentDepth,
	}, nil
}

func (it *getdirentriesIterator) Close() error {
	if it.fd == 0 {
		return nil
	}
	fd := it.fd
	it.fd = 0
	return unix.Close(fd)
}

func (it *getdirentriesIterator) Next() (*entry.Entry, error) {
	for {
		if it.offset >= it.remaining {
			if it.eof {
				return nil, nil
			}
			n, err := unix.Getdirentries(it.fd, it.buf.Bytes(), &it.basep)
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
			it.eof = true
			return nil, nil
		}
		it.offset += int(de.Reclen)

		nameLen := int(de.Namlen)
		// Dot-entry skip optimisation (spec.md §4.3.1): on BSD records,
		// test the name-length field (<=2) first.
		if nameLen <= 2 {
			nameBytes := direntNameBytes(&de)
			if isDotOrDotDot(nameBytes, nameLen) {
				continue
			}
			return it.buildEntry(&de, nameBytes, nameLen)
		}
		nameBytes := direntNameBytes(&de)
		return it.buildEntry(&de, nameBytes, nameLen)
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

func (it *getdirentriesIterator) buildEntry(de *unix.Dirent, nameBytes []byte, nameLen int) (*entry.Entry, error) {
	ft := fileTypeFromDirent(de.Type)
	pathBytes := it.path.entryPath(nameBytes, nameLen)
	if ft == entry.Unknown {
		var st unix.Stat_t
		name := string(nameBytes[:nameLen])
		if err := unix.Fstatat(it.fd, name, &st, unix.AT_SYMLINK_NOFOLLOW); err == nil {
			ft = fileTypeFromMode(uint32(st.Mode))
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
