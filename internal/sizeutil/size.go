// Package sizeutil formats and parses byte counts, layering SI (K,M,G,T =
// 10^3n) and IEC (Ki,Mi,Gi,Ti = 2^10n) suffix handling on top of
// dustin/go-humanize's human-readable formatting (grounded on its use in
// the ivoronin-dupedog scanner for progress reporting).
package sizeutil

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Format renders n bytes as a human-readable IEC string (e.g. 2000 -> "2.0 KiB"),
// matching the teacher's own humanBytesFixed table-column formatting.
func Format(n uint64) string {
	return humanize.IBytes(n)
}

// ParseBytes parses a bare size string (no +/- prefix; that is the size
// filter's concern, see config.ParseSizeFilter) into a byte count,
// accepting SI (K,M,G,T = 1000^n) and IEC (Ki,Mi,Gi,Ti = 1024^n) suffixes,
// case-insensitively, plus an optional trailing "B".
func ParseBytes(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("sizeutil: empty size string")
	}
	upper := strings.ToUpper(s)
	upper = strings.TrimSuffix(upper, "B")

	numEnd := 0
	for numEnd < len(upper) && (upper[numEnd] == '.' || (upper[numEnd] >= '0' && upper[numEnd] <= '9')) {
		numEnd++
	}
	if numEnd == 0 {
		return 0, fmt.Errorf("sizeutil: invalid number in %q", s)
	}
	numPart := upper[:numEnd]
	unitPart := upper[numEnd:]

	value, err := strconv.ParseFloat(numPart, 64)
	if err != nil {
		return 0, fmt.Errorf("sizeutil: invalid number in %q: %w", s, err)
	}

	mult, ok := unitMultiplier(unitPart)
	if !ok {
		return 0, fmt.Errorf("sizeutil: invalid unit %q in %q", unitPart, s)
	}
	return uint64(value * float64(mult)), nil
}

func unitMultiplier(unit string) (uint64, bool) {
	const (
		kilo = 1000
		mega = kilo * 1000
		giga = mega * 1000
		tera = giga * 1000

		kibi = 1024
		mebi = kibi * 1024
		gibi = mebi * 1024
		tebi = gibi * 1024
	)
	switch unit {
	case "":
		return 1, true
	case "K":
		return kilo, true
	case "M":
		return mega, true
	case "G":
		return giga, true
	case "T":
		return tera, true
	case "KI":
		return kibi, true
	case "MI":
		return mebi, true
	case "GI":
		return gibi, true
	case "TI":
		return tebi, true
	default:
		return 0, false
	}
}
