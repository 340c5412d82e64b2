// Package printer renders the result stream to an io.Writer: the one
// external collaborator spec.md §6 assigns a coloured, TTY-aware printer
// to. Colour selection is grounded on github.com/fatih/color (gated by
// github.com/mattn/go-isatty and the NO_COLOR/NO_COLOUR convention, the
// same pairing the gogrep and distri manifests in the retrieval pack
// reach for), generalized from the teacher's own tabwriter-based
// formatted stdout output.
package printer

import (
	"bufio"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"gofind/internal/entry"
)

// Options controls how Printer renders entries.
type Options struct {
	// NulSeparated terminates each entry with NUL instead of newline,
	// for safe piping into xargs -0.
	NulSeparated bool

	// StripDotSlash removes a leading "./" from relative paths.
	StripDotSlash bool

	// Sort renders entries in lexicographic order instead of discovery
	// order; requires buffering the whole result set.
	Sort bool

	// Color forces colour on/off; nil defers to TTY autodetection and
	// the NO_COLOR/NO_COLOUR environment convention.
	Color *bool
}

// Printer writes Entry paths to an underlying writer, one per line (or
// NUL-separated), optionally coloured by file type the way `ls --color`
// and the teacher's own tabwriter output conventions do.
type Printer struct {
	w        *bufio.Writer
	opts     Options
	useColor bool

	dirColor  *color.Color
	linkColor *color.Color
	exeColor  *color.Color
}

// New builds a Printer writing to w.
func New(w io.Writer, opts Options) *Printer {
	p := &Printer{
		w:    bufio.NewWriter(w),
		opts: opts,
	}
	p.useColor = resolveColor(w, opts.Color)
	p.dirColor = color.New(color.FgBlue, color.Bold)
	p.linkColor = color.New(color.FgCyan)
	p.exeColor = color.New(color.FgGreen, color.Bold)
	return p
}

func resolveColor(w io.Writer, forced *bool) bool {
	if forced != nil {
		return *forced
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("NO_COLOUR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PrintAll renders every entry in entries. When opts.Sort is set, it
// sorts entries by path first.
func (p *Printer) PrintAll(entries []*entry.Entry) error {
	if p.opts.Sort {
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Path() < entries[j].Path()
		})
	}
	for _, e := range entries {
		if err := p.Print(e); err != nil {
			return err
		}
	}
	return nil
}

// Print renders one entry.
func (p *Printer) Print(e *entry.Entry) error {
	path := e.Path()
	if p.opts.StripDotSlash {
		path = strings.TrimPrefix(path, "./")
	}
	if e.IsDir() {
		path += "/"
	}

	if p.useColor {
		path = p.colorize(e, path)
	}

	if p.opts.NulSeparated {
		_, err := p.w.WriteString(path + "\x00")
		return err
	}
	_, err := p.w.WriteString(path + "\n")
	return err
}

func (p *Printer) colorize(e *entry.Entry, s string) string {
	switch {
	case e.IsDir():
		return p.dirColor.Sprint(s)
	case e.IsSymlink():
		return p.linkColor.Sprint(s)
	default:
		if ok, _ := e.IsExecutable(); ok {
			return p.exeColor.Sprint(s)
		}
		return s
	}
}

// Flush flushes any buffered output.
func (p *Printer) Flush() error {
	return p.w.Flush()
}
