package entry_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gofind/internal/entry"
)

func mustFromOSPath(t *testing.T, path string, fileType entry.FileType, ino uint64, depth uint32) *entry.Entry {
	t.Helper()
	e, err := entry.FromOSPath(path, fileType, ino, depth)
	if err != nil {
		t.Fatalf("FromOSPath(%q): %v", path, err)
	}
	return e
}

func TestFromOSPathFilenameIndex(t *testing.T) {
	cases := []struct {
		path string
		want uint32
	}{
		{"/", 0},
		{".", 0},
		{"/a", 1},
		{"/a/b", 3},
		{"a/b/c.txt", 4},
	}
	for _, c := range cases {
		e := mustFromOSPath(t, c.path, entry.RegularFile, 0, 0)
		if e.FilenameIndex() != c.want {
			t.Errorf("FromOSPath(%q).FilenameIndex() = %d, want %d", c.path, e.FilenameIndex(), c.want)
		}
	}
}

func TestFromOSPathRejectsEmbeddedNul(t *testing.T) {
	_, err := entry.FromOSPath("/tmp/foo\x00bar", entry.RegularFile, 0, 0)
	if err == nil {
		t.Fatal("expected an error for a path with an embedded NUL, got nil")
	}
}

func TestAsBytesStripsTrailingNul(t *testing.T) {
	e := mustFromOSPath(t, "/tmp/foo", entry.RegularFile, 0, 0)
	if bytes.ContainsRune(e.AsBytes(), 0) {
		t.Errorf("AsBytes() contains embedded NUL: %q", e.AsBytes())
	}
	if e.Path() != "/tmp/foo" {
		t.Errorf("Path() = %q, want /tmp/foo", e.Path())
	}
}

func TestExtension(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/a/b/file.txt", "txt"},
		{"/a/b/file", ""},
		{"/a/b/file.", ""},
		{"/a/b/.hidden", "hidden"},
		{"/a/b/archive.tar.gz", "gz"},
	}
	for _, c := range cases {
		e := mustFromOSPath(t, c.path, entry.RegularFile, 0, 0)
		if got := string(e.Extension()); got != c.want {
			t.Errorf("Extension(%q) = %q, want %q", c.path, got, c.want)
		}
	}
}

func TestDirname(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/", "/"},
		{"/a", "/"},
		{"/a/b", "/a"},
	}
	for _, c := range cases {
		e := mustFromOSPath(t, c.path, entry.RegularFile, 0, 0)
		if got := string(e.Dirname()); got != c.want {
			t.Errorf("Dirname(%q) = %q, want %q", c.path, got, c.want)
		}
	}
}

func TestIsHidden(t *testing.T) {
	if !mustFromOSPath(t, "/a/.hidden", entry.RegularFile, 0, 0).IsHidden() {
		t.Error("expected .hidden to be hidden")
	}
	if mustFromOSPath(t, "/a/visible", entry.RegularFile, 0, 0).IsHidden() {
		t.Error("expected visible to not be hidden")
	}
}

func TestFileSizeAndModifiedTime(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(path, []byte("hello world"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	e := mustFromOSPath(t, path, entry.RegularFile, 0, 0)
	size, err := e.FileSize()
	if err != nil {
		t.Fatalf("FileSize: %v", err)
	}
	if size != 11 {
		t.Errorf("FileSize() = %d, want 11", size)
	}

	mtime, err := e.ModifiedTime()
	if err != nil {
		t.Fatalf("ModifiedTime: %v", err)
	}
	if time.Since(mtime) > time.Minute {
		t.Errorf("ModifiedTime() = %v, too far in the past", mtime)
	}
}

func TestIsEmptyRegularFile(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.txt")
	nonEmpty := filepath.Join(dir, "nonempty.txt")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(nonEmpty, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	ok, err := mustFromOSPath(t, empty, entry.RegularFile, 0, 0).IsEmpty()
	if err != nil || !ok {
		t.Errorf("IsEmpty(empty) = %v, %v; want true, nil", ok, err)
	}
	ok, err = mustFromOSPath(t, nonEmpty, entry.RegularFile, 0, 0).IsEmpty()
	if err != nil || ok {
		t.Errorf("IsEmpty(nonEmpty) = %v, %v; want false, nil", ok, err)
	}
}

func TestIsEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "emptydir")
	if err := os.Mkdir(empty, 0o755); err != nil {
		t.Fatal(err)
	}
	ok, err := mustFromOSPath(t, empty, entry.Directory, 0, 0).IsEmpty()
	if err != nil || !ok {
		t.Errorf("IsEmpty(emptydir) = %v, %v; want true, nil", ok, err)
	}

	if err := os.WriteFile(filepath.Join(empty, "x"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	ok, err = mustFromOSPath(t, empty, entry.Directory, 0, 0).IsEmpty()
	if err != nil || ok {
		t.Errorf("IsEmpty(non-empty dir) = %v, %v; want false, nil", ok, err)
	}
}

func TestToFullPathResolvesSymlinkAndRefreshesType(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.txt")
	if err := os.WriteFile(target, []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	resolvedTarget, err := filepath.EvalSymlinks(target)
	if err != nil {
		t.Fatalf("EvalSymlinks(target): %v", err)
	}

	e := mustFromOSPath(t, link, entry.Symlink, 0, 3)
	full, err := e.ToFullPath()
	if err != nil {
		t.Fatalf("ToFullPath: %v", err)
	}
	if full.Path() != resolvedTarget {
		t.Errorf("ToFullPath().Path() = %q, want %q", full.Path(), resolvedTarget)
	}
	if full.Type() != entry.RegularFile {
		t.Errorf("ToFullPath().Type() = %v, want RegularFile (refreshed from symlink)", full.Type())
	}
	if full.Depth() != e.Depth() {
		t.Errorf("ToFullPath().Depth() = %d, want %d (preserved)", full.Depth(), e.Depth())
	}
}

func TestToFullPathNonSymlinkKeepsTypeAndIno(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plain.txt")
	if err := os.WriteFile(path, []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}

	e := mustFromOSPath(t, path, entry.RegularFile, 42, 0)
	full, err := e.ToFullPath()
	if err != nil {
		t.Fatalf("ToFullPath: %v", err)
	}
	if full.Type() != entry.RegularFile {
		t.Errorf("ToFullPath().Type() = %v, want RegularFile", full.Type())
	}
	if full.Ino() != e.Ino() {
		t.Errorf("ToFullPath().Ino() = %d, want %d (untouched for non-symlinks)", full.Ino(), e.Ino())
	}
}

func TestIsTraversibleSymlinkCachesOnce(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	e := mustFromOSPath(t, link, entry.Symlink, 0, 0)
	ok, err := e.IsTraversible()
	if err != nil || !ok {
		t.Fatalf("IsTraversible() = %v, %v; want true, nil", ok, err)
	}

	// Removing the target after the first call must not change the
	// memoised result: symlinkDir transitions nil->Some at most once.
	if err := os.RemoveAll(target); err != nil {
		t.Fatal(err)
	}
	ok, err = e.IsTraversible()
	if err != nil || !ok {
		t.Fatalf("cached IsTraversible() = %v, %v; want true, nil (memoised)", ok, err)
	}
}
