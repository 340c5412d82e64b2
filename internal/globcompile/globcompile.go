// Package globcompile is the one external collaborator spec.md §1 calls
// out for pattern compilation beyond the regex engine: a glob-to-matcher
// compiler, so `--glob '*.go'`-style patterns work without hand-rolling
// glob-to-regex translation. Grounded on gobwas/glob, the same library the
// junegunn-fzf-adjacent pack entries reach for when they need shell-style
// wildcard matching instead of full regex.
package globcompile

import (
	"fmt"

	"github.com/gobwas/glob"
)

// Matcher is the narrow surface the predicate pipeline needs: given a
// name, does the compiled pattern match. Both glob and regexp-backed
// matchers satisfy it (see internal/predicate).
type Matcher interface {
	Match(s string) bool
}

type globMatcher struct {
	g glob.Glob
}

func (m globMatcher) Match(s string) bool {
	return m.g.Match(s)
}

// Compile compiles pattern as a shell-style glob (supporting *, ?, and
// character classes via gobwas/glob's default separator-free mode, since
// find-like matching is against a single filename component by default).
func Compile(pattern string) (Matcher, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("globcompile: invalid glob %q: %w", pattern, err)
	}
	return globMatcher{g: g}, nil
}

// CompilePathGlob compiles pattern as a glob matched against a full path,
// treating '/' as a separator so '*' does not cross directory boundaries.
func CompilePathGlob(pattern string) (Matcher, error) {
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, fmt.Errorf("globcompile: invalid path glob %q: %w", pattern, err)
	}
	return globMatcher{g: g}, nil
}
