// Command gofind is the CLI entry point: GNU-style flag parsing (via
// spf13/pflag, layered the way the teacher's own flag-package CLI bundled
// options into a single config struct), wiring into internal/finder, and
// a final summary line grounded in the teacher's own stats/isIgnorable
// conventions from its main().
//
// The argument parser, its value validators and the coloured output
// formatter are the external collaborators spec.md §1 scopes out of the
// core; this file is the minimal concrete instance of both needed to
// exercise the rest of the module end to end.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"

	"gofind/internal/config"
	"gofind/internal/diag"
	"gofind/internal/entry"
	"gofind/internal/finder"
	"gofind/internal/printer"
)

// cliFlags mirrors the teacher's practice of collecting every flag into
// one struct before building the downstream config (its own walkCfg).
type cliFlags struct {
	useGlob         bool
	fixedString     bool
	caseInsensitive bool
	showHidden      bool
	keepDirs        bool
	fullPath        bool
	extension       string
	maxDepth        int
	followSymlinks  bool
	sameFilesystem  bool
	canonicalise    bool
	size            string
	timeSpec        string
	typeSpec        string
	threads         int
	collectErrors   bool
	useGitignore    bool

	absolutePath  bool
	stripDotSlash bool
	print0        bool
	sortOutput    bool
	color         string
	statsOnly     bool
	countOnly     bool
	verbose       bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr *os.File) int {
	flagSet := pflag.NewFlagSet("gofind", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)

	var f cliFlags
	flagSet.BoolVarP(&f.useGlob, "glob", "g", false, "treat pattern as a shell-style glob instead of a regex")
	flagSet.BoolVarP(&f.fixedString, "fixed-strings", "F", false, "treat pattern as a literal substring, not a regex")
	flagSet.BoolVarP(&f.caseInsensitive, "ignore-case", "i", false, "case-insensitive pattern match")
	flagSet.BoolVarP(&f.showHidden, "hidden", "H", false, "include hidden files and directories (dotfiles)")
	flagSet.BoolVar(&f.keepDirs, "dirs", false, "emit matching directories, not just non-directory entries")
	flagSet.BoolVarP(&f.fullPath, "full-path", "p", false, "match pattern against the full path rather than the filename")
	flagSet.StringVarP(&f.extension, "extension", "e", "", "restrict matches to this filename extension")
	flagSet.IntVarP(&f.maxDepth, "max-depth", "d", 0, "maximum directory depth below root (0 = unlimited)")
	flagSet.BoolVarP(&f.followSymlinks, "follow", "L", false, "follow symlinked directories (cycle-safe)")
	flagSet.BoolVarP(&f.sameFilesystem, "same-file-system", "x", false, "do not descend into other filesystems")
	flagSet.BoolVar(&f.canonicalise, "canonicalise", false, "resolve root through symlinks before searching")
	flagSet.StringVarP(&f.size, "size", "S", "", "size filter: +N/-N/N with SI or IEC suffix (e.g. +1M, -512Ki)")
	flagSet.StringVarP(&f.timeSpec, "changed", "c", "", "modification-time filter: -DUR, +DUR, or A..B (units s/m/h/d/w/y)")
	flagSet.StringVarP(&f.typeSpec, "type", "t", "", "type filter: file/dir/symlink/pipe/char/block/socket/executable/empty")
	flagSet.IntVarP(&f.threads, "threads", "j", 0, "worker count (0 = GOMAXPROCS-derived default)")
	flagSet.BoolVar(&f.collectErrors, "collect-errors", false, "accumulate per-directory errors instead of discarding them")
	flagSet.BoolVar(&f.useGitignore, "use-gitignore", false, "honor .gitignore / git excludes files as an extra filter")

	flagSet.BoolVarP(&f.absolutePath, "absolute-path", "a", false, "print absolute paths instead of paths relative to root")
	flagSet.BoolVar(&f.stripDotSlash, "strip-dot-slash", true, "strip a leading \"./\" from printed relative paths")
	flagSet.BoolVar(&f.print0, "print0", false, "NUL-separate output entries instead of newlines, for xargs -0")
	flagSet.BoolVar(&f.sortOutput, "sort", false, "sort output lexicographically before printing")
	flagSet.StringVar(&f.color, "color", "auto", "colorize output: auto, always, or never")
	flagSet.BoolVar(&f.statsOnly, "stats", false, "print a scan summary to stderr after results")
	flagSet.BoolVar(&f.countOnly, "count", false, "print only the number of matches, not the matches themselves")
	flagSet.BoolVarP(&f.verbose, "verbose", "v", false, "log per-directory diagnostics to stderr")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	var pattern, root string
	switch rest := flagSet.Args(); len(rest) {
	case 0:
	case 1:
		pattern = rest[0]
	default:
		pattern, root = rest[0], rest[1]
	}
	if root == "" {
		root = "."
	}

	cfg, err := buildSearchConfig(f, pattern, root)
	if err != nil {
		fmt.Fprintf(stderr, "gofind: %v\n", err)
		return 2
	}

	log := diag.New(stderr, f.verbose)

	fnd, err := finder.Build(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "gofind: %v\n", err)
		return 2
	}

	var colorForced *bool
	switch f.color {
	case "always":
		v := true
		colorForced = &v
	case "never":
		v := false
		colorForced = &v
	}
	p := printer.New(stdout, printer.Options{
		NulSeparated:  f.print0,
		StripDotSlash: f.stripDotSlash && !f.absolutePath,
		Sort:          f.sortOutput,
		Color:         colorForced,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	stats := diag.NewStats()
	out, errsFn := fnd.Traverse(ctx)

	var matched []*entry.Entry
	for batch := range out {
		stats.MatchedEntries.Add(int64(len(batch)))
		if f.countOnly {
			continue
		}
		if f.sortOutput {
			matched = append(matched, batch...)
			continue
		}
		for _, e := range batch {
			if werr := p.Print(e); werr != nil {
				log.Error("write result", "error", werr)
			}
		}
	}
	if f.sortOutput && !f.countOnly {
		if werr := p.PrintAll(matched); werr != nil {
			log.Error("write results", "error", werr)
		}
	}
	_ = p.Flush()

	for _, e := range errsFn() {
		stats.Errors.Add(1)
		if cfg.CollectErrors && !isIgnorable(e) {
			fmt.Fprintf(stderr, "gofind: %v\n", e)
		}
		log.Debug("traversal error", "error", e)
	}

	if f.countOnly {
		fmt.Fprintln(stdout, stats.MatchedEntries.Load())
	}
	if f.statsOnly {
		fmt.Fprintf(stderr, "matched=%d errors=%d elapsed=%s\n",
			stats.MatchedEntries.Load(), stats.Errors.Load(), stats.Elapsed().Truncate(time.Millisecond))
	}

	if ctx.Err() != nil {
		return 130
	}
	return 0
}

// buildSearchConfig translates parsed flags into a config.SearchConfig,
// the same "flags struct -> domain config struct" shape the teacher uses
// to turn its own flag.* values into walkCfg.
func buildSearchConfig(f cliFlags, pattern, root string) (config.SearchConfig, error) {
	if f.absolutePath {
		abs, err := filepath.Abs(root)
		if err != nil {
			return config.SearchConfig{}, fmt.Errorf("resolving root %q: %w", root, err)
		}
		root = abs
	}
	cfg := config.Default(root)
	cfg.Pattern = pattern
	cfg.UseGlob = f.useGlob
	cfg.FixedString = f.fixedString
	cfg.CaseInsensitive = f.caseInsensitive
	cfg.HideHidden = !f.showHidden
	cfg.KeepDirs = f.keepDirs
	cfg.MatchFullPath = f.fullPath
	cfg.Extension = f.extension
	cfg.FollowSymlinks = f.followSymlinks
	cfg.SameFilesystem = f.sameFilesystem
	cfg.Canonicalise = f.canonicalise
	cfg.ThreadCount = f.threads
	cfg.CollectErrors = f.collectErrors || f.statsOnly

	if f.maxDepth > 0 {
		d := uint32(f.maxDepth)
		cfg.MaxDepth = &d
	}
	if f.useGitignore {
		cfg.IgnoreFiles = []string{".gitignore"}
	}
	if f.size != "" {
		sz, err := config.ParseSizeFilter(f.size)
		if err != nil {
			return cfg, err
		}
		cfg.Size = &sz
	}
	if f.timeSpec != "" {
		tf, err := config.ParseTimeFilter(f.timeSpec, time.Now())
		if err != nil {
			return cfg, err
		}
		cfg.Time = &tf
	}
	if f.typeSpec != "" {
		tf, err := config.ParseTypeFilter(f.typeSpec)
		if err != nil {
			return cfg, err
		}
		cfg.Type = &tf
	}
	return cfg, nil
}

// isIgnorable classifies per-directory errors the way the teacher's own
// isIgnorable(err) helper does: permission errors are routine during a
// broad filesystem walk and should not be treated as noteworthy even when
// logged at verbose level.
func isIgnorable(err error) bool {
	return errors.Is(err, fs.ErrPermission) || errors.Is(err, fs.ErrNotExist)
}
