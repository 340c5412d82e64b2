// Package config holds the validated, ready-to-run description of a single
// search (spec.md §3): the compiled pattern plus every filter the
// predicate pipeline consults, and the traversal knobs the driver reads.
// It mirrors the way the teacher's walkCfg bundled CLI flags into one
// struct passed down into the recursive walk, generalized from "which
// drives to scan" into the full find-like filter set.
package config

import "gofind/internal/entry"

// SearchConfig is the fully-resolved configuration for one Traverse call.
// A zero-value SearchConfig matches everything under the root, hidden
// entries included; Default returns one that suppresses hidden entries.
type SearchConfig struct {
	// Root is the directory the search starts from.
	Root string

	// Pattern is the raw name pattern; empty matches every name. UseGlob
	// selects gobwas/glob compilation instead of regexp, FixedString
	// treats Pattern as a literal substring, and CaseInsensitive folds
	// case for regexp and fixed-string patterns; glob patterns always
	// match case-sensitively.
	Pattern         string
	UseGlob         bool
	FixedString     bool
	CaseInsensitive bool

	// MatchFullPath, when true, runs the pattern against the entry's
	// full path rather than just its filename.
	MatchFullPath bool

	HideHidden bool
	KeepDirs   bool

	// Extension restricts matches to this filename extension (no
	// leading dot), compared case-insensitively.
	Extension string

	// MaxDepth, when non-nil, bounds recursion depth below Root.
	MaxDepth *uint32

	FollowSymlinks bool
	SameFilesystem bool
	Canonicalise   bool

	Size *SizeFilter
	Time *TimeFilter
	Type *TypeFilter

	// IgnoreFiles, when non-empty, turns on the .gitignore-style filter
	// consulted alongside HideHidden (see internal/ignore). Only its
	// emptiness matters: ignore.Load chooses which files are read, and the
	// names listed here are not opened.
	IgnoreFiles []string

	// ThreadCount bounds traversal concurrency; zero means the driver
	// picks GOMAXPROCS-derived default.
	ThreadCount int

	// CollectErrors, when true, makes cmd/gofind report the per-directory
	// and per-entry errors the driver accumulates. The driver accumulates
	// them, and Errs returns them, whether or not it is set; no such error
	// stops the traversal.
	CollectErrors bool
}

// Default returns a SearchConfig equivalent to an unfiltered recursive
// search from root with hidden entries suppressed, matching the teacher's
// own "sane defaults, opt in to the rest" CLI posture.
func Default(root string) SearchConfig {
	return SearchConfig{
		Root:       root,
		HideHidden: true,
	}
}

// MatchesBasicType reports whether ft is compatible with the configured
// type filter using only the file-type tag (no stat call). Filters that
// need a stat (Executable, Empty) return true here and are re-checked by
// the predicate package once it has done the I/O.
func (c SearchConfig) MatchesBasicType(ft entry.FileType) bool {
	if c.Type == nil {
		return true
	}
	if c.Type.NeedsStat() {
		return true
	}
	return c.Type.MatchesBasicType(ft)
}
