package config

import (
	"testing"
	"time"
)

func TestParseSizeFilterKinds(t *testing.T) {
	cases := []struct {
		in       string
		wantKind SizeFilterKind
		wantB    uint64
	}{
		{"+1K", SizeMin, 1000},
		{"-1Ki", SizeMax, 1024},
		{"512", SizeEquals, 512},
		{"+2Mi", SizeMin, 2 * 1024 * 1024},
	}
	for _, tc := range cases {
		f, err := ParseSizeFilter(tc.in)
		if err != nil {
			t.Fatalf("ParseSizeFilter(%q): %v", tc.in, err)
		}
		if f.Kind != tc.wantKind || f.Bytes != tc.wantB {
			t.Errorf("ParseSizeFilter(%q) = %+v, want kind=%v bytes=%d", tc.in, f, tc.wantKind, tc.wantB)
		}
	}
}

func TestParseSizeFilterRoundTrip(t *testing.T) {
	for _, in := range []string{"+1024", "-2048", "4096"} {
		f, err := ParseSizeFilter(in)
		if err != nil {
			t.Fatalf("ParseSizeFilter(%q): %v", in, err)
		}
		again, err := ParseSizeFilter(f.String())
		if err != nil {
			t.Fatalf("ParseSizeFilter(%q) round-trip: %v", f.String(), err)
		}
		if again.Kind != f.Kind || again.Bytes != f.Bytes {
			t.Errorf("round-trip %q -> %q -> %+v, want %+v", in, f.String(), again, f)
		}
	}
}

func TestParseSizeFilterErrors(t *testing.T) {
	for _, in := range []string{"", "+", "abc", "1Xi"} {
		if _, err := ParseSizeFilter(in); err == nil {
			t.Errorf("ParseSizeFilter(%q) expected error", in)
		}
	}
}

func TestParseTimeFilterAfterBefore(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	after, err := ParseTimeFilter("-1h", now)
	if err != nil {
		t.Fatalf("ParseTimeFilter(-1h): %v", err)
	}
	if after.Kind != TimeAfter {
		t.Fatalf("expected TimeAfter, got %v", after.Kind)
	}
	if !after.Matches(now.Add(-30 * time.Minute)) {
		t.Error("expected a 30m-old entry to match '-1h'")
	}
	if after.Matches(now.Add(-2 * time.Hour)) {
		t.Error("expected a 2h-old entry not to match '-1h'")
	}

	before, err := ParseTimeFilter("+1d", now)
	if err != nil {
		t.Fatalf("ParseTimeFilter(+1d): %v", err)
	}
	if before.Kind != TimeBefore {
		t.Fatalf("expected TimeBefore, got %v", before.Kind)
	}
	if !before.Matches(now.Add(-48 * time.Hour)) {
		t.Error("expected a 2d-old entry to match '+1d'")
	}
	if before.Matches(now.Add(-1 * time.Hour)) {
		t.Error("expected a 1h-old entry not to match '+1d'")
	}
}

func TestParseTimeFilterBetween(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f, err := ParseTimeFilter("1d..7d", now)
	if err != nil {
		t.Fatalf("ParseTimeFilter(1d..7d): %v", err)
	}
	if f.Kind != TimeBetween {
		t.Fatalf("expected TimeBetween, got %v", f.Kind)
	}
	if !f.Matches(now.Add(-3 * 24 * time.Hour)) {
		t.Error("expected a 3d-old entry to match '1d..7d'")
	}
	if f.Matches(now.Add(-12 * time.Hour)) {
		t.Error("expected a 12h-old entry not to match '1d..7d'")
	}
	if f.Matches(now.Add(-10 * 24 * time.Hour)) {
		t.Error("expected a 10d-old entry not to match '1d..7d'")
	}
}

func TestParseTimeFilterErrors(t *testing.T) {
	now := time.Now()
	for _, in := range []string{"", "1h", "-", "+abc"} {
		if _, err := ParseTimeFilter(in, now); err == nil {
			t.Errorf("ParseTimeFilter(%q) expected error", in)
		}
	}
}

func TestParseTypeFilter(t *testing.T) {
	cases := map[string]TypeFilter{
		"f":        TypeFile,
		"file":     TypeFile,
		"d":        TypeDirectory,
		"l":        TypeSymlink,
		"x":        TypeExecutable,
		"empty":    TypeEmpty,
		"SOCKET":   TypeSocket,
	}
	for in, want := range cases {
		got, err := ParseTypeFilter(in)
		if err != nil {
			t.Fatalf("ParseTypeFilter(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseTypeFilter(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseTypeFilter("bogus"); err == nil {
		t.Error("ParseTypeFilter(bogus) expected error")
	}
}
