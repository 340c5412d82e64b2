package rawdir

import (
	"gofind/internal/entry"
)

// Iterator yields successive Entry values from an open directory,
// skipping the synthetic "." and ".." records, without requiring a stat
// per entry when the kernel record carries a usable type tag (spec.md
// §4.3). The three platform shapes (batched getdents, batched
// getdirentries, one-at-a-time readdir) share this one interface, chosen
// at compile time by build tag rather than at runtime.
type Iterator interface {
	// Next advances to the next entry. It returns (nil, nil) at
	// end-of-stream and (nil, err) on a read failure.
	Next() (*entry.Entry, error)
	// Close releases the directory file descriptor. Safe to call more
	// than once.
	Close() error
}

// pathBuffer is the state shared by every iterator shape: a reusable
// buffer pre-populated with "parent/" (or just the parent when it's "/"),
// into which each record's name is copied before the Entry is built. This
// eliminates per-entry allocation other than the owned path inside each
// emitted Entry (spec.md §4.3, §9).
type pathBuffer struct {
	buf           []byte
	filenameIndex int
}

// maxFilenameLen is the reserved capacity for the longest filename the
// hosting filesystem is expected to admit (spec.md §4.3 default: 1024+1).
const maxFilenameLen = 1024 + 1

func newPathBuffer(parent string) *pathBuffer {
	prefix := parent
	if prefix != "/" {
		prefix = prefix + "/"
	}
	buf := make([]byte, len(prefix), len(prefix)+maxFilenameLen)
	copy(buf, prefix)
	return &pathBuffer{buf: buf, filenameIndex: len(prefix)}
}

// entryPath copies name (NUL-terminated, name[nameLen] == 0) into the
// buffer at filenameIndex and returns an owned copy of the resulting path
// bytes (including the terminator), safe to hand to an Entry.
func (p *pathBuffer) entryPath(name []byte, nameLen int) []byte {
	total := p.filenameIndex + nameLen + 1
	if cap(p.buf) < total {
		grown := make([]byte, p.filenameIndex, total)
		copy(grown, p.buf[:p.filenameIndex])
		p.buf = grown
	}
	p.buf = p.buf[:total]
	copy(p.buf[p.filenameIndex:total-1], name[:nameLen])
	p.buf[total-1] = 0

	out := make([]byte, total)
	copy(out, p.buf)
	return out
}

// isDotOrDotDot reports whether name[:nameLen] is "." or "..". An empty
// name (nameLen == 0) is reported the same way, so it is skipped too.
func isDotOrDotDot(name []byte, nameLen int) bool {
	return nameLen == 0 || (name[0] == '.' && (nameLen == 1 || (nameLen == 2 && name[1] == '.')))
}
