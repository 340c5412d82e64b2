package sizeutil_test

import (
	"testing"

	"gofind/internal/sizeutil"
)

func TestParseBytesSI(t *testing.T) {
	cases := map[string]uint64{
		"0":     0,
		"100":   100,
		"1K":    1000,
		"1.5K":  1500,
		"2M":    2_000_000,
		"1G":    1_000_000_000,
		"1KB":   1000,
		"100b":  100,
	}
	for in, want := range cases {
		got, err := sizeutil.ParseBytes(in)
		if err != nil {
			t.Errorf("ParseBytes(%q): unexpected error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseBytes(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestParseBytesIEC(t *testing.T) {
	cases := map[string]uint64{
		"1Ki": 1024,
		"1Mi": 1024 * 1024,
		"1Gi": 1024 * 1024 * 1024,
	}
	for in, want := range cases {
		got, err := sizeutil.ParseBytes(in)
		if err != nil {
			t.Errorf("ParseBytes(%q): unexpected error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseBytes(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestParseBytesInvalid(t *testing.T) {
	for _, in := range []string{"", "abc", "1Xi", "K"} {
		if _, err := sizeutil.ParseBytes(in); err == nil {
			t.Errorf("ParseBytes(%q): expected error, got nil", in)
		}
	}
}

func TestFormatReturnsNonEmpty(t *testing.T) {
	for _, n := range []uint64{0, 1, 1023, 1024, 1_500_000} {
		s := sizeutil.Format(n)
		if s == "" {
			t.Errorf("Format(%d) returned empty string", n)
		}
	}
}
