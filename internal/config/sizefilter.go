package config

import (
	"fmt"
	"strconv"
	"strings"

	"gofind/internal/sizeutil"
)

// SizeFilterKind is the comparison a SizeFilter performs (spec.md §3, §6).
type SizeFilterKind int

const (
	SizeMin SizeFilterKind = iota
	SizeMax
	SizeEquals
)

// SizeFilter matches an entry's byte size: Min/Max/Equals in bytes.
type SizeFilter struct {
	Kind  SizeFilterKind
	Bytes uint64
}

// Matches reports whether size satisfies the filter.
func (f SizeFilter) Matches(size uint64) bool {
	switch f.Kind {
	case SizeMin:
		return size >= f.Bytes
	case SizeMax:
		return size <= f.Bytes
	case SizeEquals:
		return size == f.Bytes
	default:
		return true
	}
}

// String renders a canonical, re-parseable form: "+n" (Min), "-n" (Max) or
// bare "n" (Equals), with n the exact byte count.
func (f SizeFilter) String() string {
	n := strconv.FormatUint(f.Bytes, 10)
	switch f.Kind {
	case SizeMin:
		return "+" + n
	case SizeMax:
		return "-" + n
	default:
		return n
	}
}

// ParseSizeFilter parses a size filter spec: "+n" = Min, "-n" = Max, bare
// "n" = Equals, where n accepts SI (K,M,G,T) and IEC (Ki,Mi,Gi,Ti) suffixes
// (spec.md §6).
func ParseSizeFilter(s string) (SizeFilter, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return SizeFilter{}, fmt.Errorf("config: empty size filter")
	}
	switch s[0] {
	case '+':
		b, err := sizeutil.ParseBytes(s[1:])
		if err != nil {
			return SizeFilter{}, err
		}
		return SizeFilter{Kind: SizeMin, Bytes: b}, nil
	case '-':
		b, err := sizeutil.ParseBytes(s[1:])
		if err != nil {
			return SizeFilter{}, err
		}
		return SizeFilter{Kind: SizeMax, Bytes: b}, nil
	default:
		b, err := sizeutil.ParseBytes(s)
		if err != nil {
			return SizeFilter{}, err
		}
		return SizeFilter{Kind: SizeEquals, Bytes: b}, nil
	}
}
