package predicate_test

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"gofind/internal/config"
	"gofind/internal/entry"
	"gofind/internal/predicate"
)

type regexMatcher struct{ re *regexp.Regexp }

func (m regexMatcher) Match(s string) bool { return m.re.MatchString(s) }

func mustFromOSPath(t *testing.T, path string, fileType entry.FileType, ino uint64, depth uint32) *entry.Entry {
	t.Helper()
	e, err := entry.FromOSPath(path, fileType, ino, depth)
	if err != nil {
		t.Fatalf("FromOSPath(%q): %v", path, err)
	}
	return e
}

func TestChainHideHidden(t *testing.T) {
	cfg := config.Default("/root")
	chain := predicate.New(cfg, nil, nil)

	hidden := mustFromOSPath(t, "/root/.secret", entry.RegularFile, 0, 1)
	keep, err := chain.Evaluate(hidden)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if keep {
		t.Error("expected hidden entry to be rejected when HideHidden is set")
	}
}

func TestChainExtensionFilter(t *testing.T) {
	cfg := config.Default("/root")
	cfg.HideHidden = false
	cfg.Extension = "TXT"
	chain := predicate.New(cfg, nil, nil)

	match := mustFromOSPath(t, "/root/a.txt", entry.RegularFile, 0, 1)
	keep, err := chain.Evaluate(match)
	if err != nil || !keep {
		t.Errorf("Evaluate(a.txt) = %v, %v; want true, nil (case-insensitive extension match)", keep, err)
	}

	noMatch := mustFromOSPath(t, "/root/a.go", entry.RegularFile, 0, 1)
	keep, err = chain.Evaluate(noMatch)
	if err != nil || keep {
		t.Errorf("Evaluate(a.go) = %v, %v; want false, nil", keep, err)
	}
}

func TestChainTypeFilterBasic(t *testing.T) {
	cfg := config.Default("/root")
	cfg.HideHidden = false
	dirType := config.TypeDirectory
	cfg.Type = &dirType
	chain := predicate.New(cfg, nil, nil)

	dir := mustFromOSPath(t, "/root/sub", entry.Directory, 0, 1)
	file := mustFromOSPath(t, "/root/file.txt", entry.RegularFile, 0, 1)

	if keep, _ := chain.Evaluate(dir); !keep {
		t.Error("expected directory to match type=directory filter")
	}
	if keep, _ := chain.Evaluate(file); keep {
		t.Error("expected file to be rejected by type=directory filter")
	}
}

func TestChainNameMatcher(t *testing.T) {
	cfg := config.Default("/root")
	cfg.HideHidden = false
	matcher := regexMatcher{re: regexp.MustCompile(`^foo`)}
	chain := predicate.New(cfg, matcher, nil)

	match := mustFromOSPath(t, "/root/foobar.txt", entry.RegularFile, 0, 1)
	noMatch := mustFromOSPath(t, "/root/barfoo.txt", entry.RegularFile, 0, 1)

	if keep, _ := chain.Evaluate(match); !keep {
		t.Error("expected foobar.txt to match ^foo")
	}
	if keep, _ := chain.Evaluate(noMatch); keep {
		t.Error("expected barfoo.txt to not match ^foo")
	}
}

func TestChainCustomPredicate(t *testing.T) {
	cfg := config.Default("/root")
	cfg.HideHidden = false
	custom := func(e *entry.Entry) (bool, error) {
		return string(e.FileName()) != "skip.txt", nil
	}
	chain := predicate.New(cfg, nil, custom)

	skip := mustFromOSPath(t, "/root/skip.txt", entry.RegularFile, 0, 1)
	keep := mustFromOSPath(t, "/root/keep.txt", entry.RegularFile, 0, 1)

	if k, _ := chain.Evaluate(skip); k {
		t.Error("expected custom predicate to reject skip.txt")
	}
	if k, _ := chain.Evaluate(keep); !k {
		t.Error("expected custom predicate to keep keep.txt")
	}
}

func TestChainSizeFilter(t *testing.T) {
	dir := t.TempDir()
	small := filepath.Join(dir, "small.txt")
	big := filepath.Join(dir, "big.txt")
	if err := os.WriteFile(small, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(big, make([]byte, 2048), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default(dir)
	cfg.HideHidden = false
	sf, err := config.ParseSizeFilter("+1Ki")
	if err != nil {
		t.Fatalf("ParseSizeFilter: %v", err)
	}
	cfg.Size = &sf
	chain := predicate.New(cfg, nil, nil)

	if keep, err := chain.Evaluate(mustFromOSPath(t, small, entry.RegularFile, 0, 1)); err != nil || keep {
		t.Errorf("Evaluate(small) = %v, %v; want false, nil", keep, err)
	}
	if keep, err := chain.Evaluate(mustFromOSPath(t, big, entry.RegularFile, 0, 1)); err != nil || !keep {
		t.Errorf("Evaluate(big) = %v, %v; want true, nil", keep, err)
	}
}
