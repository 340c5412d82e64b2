package globcompile_test

import (
	"testing"

	"gofind/internal/globcompile"
)

func TestCompileMatchesFilename(t *testing.T) {
	m, err := globcompile.Compile("*.txt")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !m.Match("notes.txt") {
		t.Error("expected *.txt to match notes.txt")
	}
	if m.Match("notes.go") {
		t.Error("expected *.txt to not match notes.go")
	}
}

func TestCompileInvalidPattern(t *testing.T) {
	if _, err := globcompile.Compile("["); err == nil {
		t.Error("expected error for unterminated character class")
	}
}

func TestCompilePathGlobRespectsSeparator(t *testing.T) {
	m, err := globcompile.CompilePathGlob("src/*.go")
	if err != nil {
		t.Fatalf("CompilePathGlob: %v", err)
	}
	if !m.Match("src/main.go") {
		t.Error("expected src/*.go to match src/main.go")
	}
	if m.Match("src/pkg/main.go") {
		t.Error("expected src/*.go to not cross a path separator")
	}
}
