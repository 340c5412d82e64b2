package rawdir

import (
	"bytes"
	"encoding/binary"
	"math/bits"
)

// swarZeroByteIndex returns the byte index (0-7) of the first zero byte in
// word, where word was loaded as a little-endian uint64 from 8 raw bytes.
// This is the classic "subtract-low, mask-not-word, and-high" SWAR zero
// byte detector (spec.md §4.1): a single load plus a handful of ALU
// operations replaces a loop of up to 255 byte comparisons, and the result
// is branchless. Returns -1 if word contains no zero byte.
func swarZeroByteIndex(word uint64) int {
	const lo = 0x0101010101010101
	const hi = 0x8080808080808080
	x := (word - lo) &^ word & hi
	if x == 0 {
		return -1
	}
	return bits.TrailingZeros64(x) / 8
}

// swarNameLen computes the name length (excluding the trailing NUL) of a
// directory record using a single 64-bit load over the record's last
// 8-byte word (spec.md §4.1, §9).
//
// record must be exactly reclen bytes, an invariant multiple of 8 on
// supported systems. headerStart is the fixed byte offset to the name
// field within the record for this platform's dirent layout.
//
// When reclen equals the minimum possible record length (headerStart
// rounded up to 8), the last word's first three bytes may be kernel
// padding that precedes the name and must not be mistaken for the
// terminator; those bytes are masked to 0xFF before the zero-byte search.
func swarNameLen(record []byte, headerStart int) int {
	reclen := len(record)
	minReclen := (headerStart + 7) &^ 7
	last8 := record[reclen-8:]
	word := binary.LittleEndian.Uint64(last8)
	if reclen == minReclen {
		word |= 0x0000000000FFFFFF
	}
	bytePos := swarZeroByteIndex(word)
	if bytePos < 0 {
		// Layout invariant violated (shouldn't happen on supported
		// systems): fall back to a full scan from the name field.
		if idx := bytes.IndexByte(record[headerStart:], 0); idx >= 0 {
			return idx
		}
		return reclen - headerStart
	}
	return reclen - headerStart + bytePos - 8
}

// strlenNameLen is the byte-by-byte fallback for platforms whose directory
// record carries neither a name-length field nor the 8-byte-aligned
// reclen invariant the SWAR decoder relies on.
func strlenNameLen(name []byte) int {
	if idx := bytes.IndexByte(name, 0); idx >= 0 {
		return idx
	}
	return len(name)
}
