// Package ignore implements the .gitignore-style supplemental predicate
// (a feature the distilled spec dropped but the original Rust source's
// util::ignore module implements): patterns read from the global git
// excludes file(s) and, when searching from the current git working
// directory, its local .gitignore. Patterns compile through
// internal/globcompile the same way a --glob name filter does, so this
// package owns no pattern-matching logic of its own.
package ignore

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"gofind/internal/globcompile"
)

// Matcher holds the compiled ignore patterns for one search.
type Matcher struct {
	patterns []globcompile.Matcher
}

// Load reads ignore patterns from the global git excludes file(s) and,
// when startDir resolves to the same canonical directory as the process's
// current working directory, its local .gitignore. A Matcher with no
// patterns is returned (never nil) if none of those files exist.
func Load(startDir string) (*Matcher, error) {
	var lines []string

	for _, path := range globalExcludesCandidates() {
		lines = append(lines, readIgnoreLines(path)...)
	}

	if shouldReadLocalGitignore(startDir) {
		cwd, err := os.Getwd()
		if err == nil {
			lines = append(lines, readIgnoreLines(filepath.Join(cwd, ".gitignore"))...)
		}
	}

	m := &Matcher{}
	for _, line := range lines {
		g, err := globcompile.Compile(line)
		if err != nil {
			continue // an unparsable pattern is skipped, not fatal
		}
		m.patterns = append(m.patterns, g)
	}
	return m, nil
}

// Match reports whether name (a bare filename, per .gitignore's default
// single-component matching) is ignored by any loaded pattern.
func (m *Matcher) Match(name string) bool {
	for _, p := range m.patterns {
		if p.Match(name) {
			return true
		}
	}
	return false
}

func shouldReadLocalGitignore(startDir string) bool {
	startCanon, err := filepath.Abs(startDir)
	if err != nil {
		return false
	}
	startCanon, err = filepath.EvalSymlinks(startCanon)
	if err != nil {
		return false
	}
	cwd, err := os.Getwd()
	if err != nil {
		return false
	}
	cwdCanon, err := filepath.EvalSymlinks(cwd)
	if err != nil {
		return false
	}
	return startCanon == cwdCanon
}

func globalExcludesCandidates() []string {
	var paths []string
	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		paths = append(paths, filepath.Join(home, ".gitconfig"))
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "git", "config"))
	} else if home != "" {
		paths = append(paths, filepath.Join(home, ".config", "git", "config"))
	}

	var excludesFiles []string
	for _, configPath := range paths {
		excludesFiles = append(excludesFiles, parseExcludesFile(configPath)...)
	}
	return excludesFiles
}

// parseExcludesFile extracts core.excludesFile entries from a gitconfig
// file (ini-style, [core] section only).
func parseExcludesFile(configPath string) []string {
	f, err := os.Open(configPath)
	if err != nil {
		return nil
	}
	defer f.Close()

	var files []string
	inCore := false
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section := strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			inCore = strings.EqualFold(section, "core")
			continue
		}
		if !inCore {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(key), "excludesFile") {
			continue
		}
		value = strings.TrimSpace(value)
		if idx := strings.Index(value, "#"); idx >= 0 {
			value = strings.TrimSpace(value[:idx])
		}
		if path := expandConfigPath(value, configPath); path != "" {
			files = append(files, path)
		}
	}
	return files
}

func expandConfigPath(raw, configPath string) string {
	if raw == "" {
		return ""
	}
	home, _ := os.UserHomeDir()
	switch {
	case raw == "~":
		return home
	case strings.HasPrefix(raw, "~/"):
		if home == "" {
			return ""
		}
		return filepath.Join(home, strings.TrimPrefix(raw, "~/"))
	case filepath.IsAbs(raw):
		return raw
	default:
		return filepath.Join(filepath.Dir(configPath), raw)
	}
}

func readIgnoreLines(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var lines []string
	for _, raw := range bytes.Split(data, []byte("\n")) {
		line := strings.TrimSpace(strings.TrimSuffix(string(raw), "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
