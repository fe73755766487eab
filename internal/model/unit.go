package model

import (
	"strings"

	"github.com/javelin-ide/javelin/internal/srcroot"
)

// CompilationUnit is the single source document being edited: its
// text, its on-disk binding (empty while unsaved) and a modified flag.
type CompilationUnit struct {
	text     string
	path     string
	modified bool
	caret    int
}

// NewUnit returns a fresh, empty, unsaved unit.
func NewUnit() *CompilationUnit {
	return &CompilationUnit{}
}

// Text returns the unit's full contents.
func (u *CompilationUnit) Text() string {
	return u.text
}

// SetText replaces the contents and marks the unit modified.
func (u *CompilationUnit) SetText(text string) {
	u.text = text
	u.modified = true
}

// Path returns the bound file path, or empty if never saved.
func (u *CompilationUnit) Path() string {
	return u.path
}

// Modified reports whether the unit changed since its last save.
func (u *CompilationUnit) Modified() bool {
	return u.modified
}

// Package returns the unit's declared package name, possibly empty.
func (u *CompilationUnit) Package() string {
	return srcroot.DeclaredPackage(u.text)
}

// Caret returns the current absolute caret offset.
func (u *CompilationUnit) Caret() int {
	return u.caret
}

// GotoLine moves the caret to the start of the 1-based line n, clamped
// to the last line, and returns the resulting absolute offset.
func (u *CompilationUnit) GotoLine(n int) int {
	if n < 1 {
		n = 1
	}

	offset := 0
	line := 1
	for line < n {
		next := strings.IndexByte(u.text[offset:], '\n')
		if next < 0 {
			break
		}
		offset += next + 1
		line++
	}

	u.caret = offset
	return offset
}

// bindPath attaches the unit to a file and clears the modified flag.
func (u *CompilationUnit) bindPath(path string) {
	u.path = path
	u.modified = false
}
