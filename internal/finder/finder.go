// Package finder is the top-level builder spec.md §4.8 describes:
// validates a SearchConfig, compiles its pattern, wires the predicate
// chain and driver together, and exposes a single Traverse entry point.
// Grounded on the teacher's own top-level orchestration in main.go (flag
// parsing -> walkCfg -> worker pool -> drain), generalized into a
// reusable, library-shaped API instead of a single CLI's main function.
package finder

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"gofind/internal/config"
	"gofind/internal/driver"
	"gofind/internal/entry"
	"gofind/internal/globcompile"
	"gofind/internal/ignore"
	"gofind/internal/predicate"
)

// Finder owns a validated configuration and is ready to run Traverse any
// number of times.
type Finder struct {
	cfg   config.SearchConfig
	chain *predicate.Chain
}

// Build validates cfg, resolves its root, compiles its pattern, and
// constructs the predicate chain. The returned Finder's Traverse method
// can be called as many times as needed.
func Build(cfg config.SearchConfig) (*Finder, error) {
	if cfg.Root == "" {
		cfg.Root = "."
	}
	root := filepath.Clean(cfg.Root)
	if cfg.Canonicalise {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("finder: resolving root %q: %w", cfg.Root, err)
		}
		resolved, err := filepath.EvalSymlinks(abs)
		if err != nil {
			return nil, fmt.Errorf("finder: canonicalising root %q: %w", cfg.Root, err)
		}
		root = resolved
	}
	cfg.Root = root

	matcher, err := compileMatcher(cfg)
	if err != nil {
		return nil, err
	}

	var custom predicate.CustomFunc
	if len(cfg.IgnoreFiles) > 0 {
		m, err := ignore.Load(cfg.Root)
		if err != nil {
			return nil, fmt.Errorf("finder: loading ignore files: %w", err)
		}
		custom = func(e *entry.Entry) (bool, error) {
			return !m.Match(string(e.FileName())), nil
		}
	}

	chain := predicate.New(cfg, matcher, custom)
	return &Finder{cfg: cfg, chain: chain}, nil
}

func compileMatcher(cfg config.SearchConfig) (predicate.NameMatcher, error) {
	if cfg.Pattern == "" {
		return nil, nil
	}
	if cfg.FixedString {
		return fixedStringMatcher{needle: cfg.Pattern, fold: cfg.CaseInsensitive}, nil
	}
	if cfg.UseGlob {
		if cfg.MatchFullPath {
			return globcompile.CompilePathGlob(cfg.Pattern)
		}
		return globcompile.Compile(cfg.Pattern)
	}

	pattern := cfg.Pattern
	if cfg.CaseInsensitive {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("finder: invalid pattern %q: %w", cfg.Pattern, err)
	}
	return regexMatcher{re: re}, nil
}

type regexMatcher struct{ re *regexp.Regexp }

func (m regexMatcher) Match(s string) bool { return m.re.MatchString(s) }

type fixedStringMatcher struct {
	needle string
	fold   bool
}

func (m fixedStringMatcher) Match(s string) bool {
	if !m.fold {
		return strings.Contains(s, m.needle)
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(m.needle))
}

// Traverse runs the search and streams matching entries in batches,
// returning the channel immediately; the caller drains it and then calls
// Errs to retrieve accumulated non-fatal errors.
func (f *Finder) Traverse(ctx context.Context) (<-chan []*entry.Entry, func() []error) {
	d := driver.New(f.cfg, f.chain)
	out := d.Run(ctx)
	return out, d.Errs
}

// Config returns the Finder's resolved configuration.
func (f *Finder) Config() config.SearchConfig { return f.cfg }
