// Package srcroot derives the source root directory for a Java file
// from its declared package, enforcing the package-to-directory layout
// convention: sourceRoot/com/acme contains com.acme sources.
package srcroot

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// MissingFileError indicates the source has never been saved, so no
// directory exists to resolve against.
type MissingFileError struct{}

func (e *MissingFileError) Error() string {
	return "cannot get source root for an unsaved file; please save first"
}

// InvalidPackageError indicates the file's directory layout does not
// match its declared package.
type InvalidPackageError struct {
	File      string // absolute path of the source file
	Dir       string // directory name that failed to match
	Component string // package component it was expected to equal
}

func (e *InvalidPackageError) Error() string {
	return fmt.Sprintf(
		"the source file %s is in the wrong directory or in the wrong package: the directory name %s does not match the package name %s",
		e.File, e.Dir, e.Component)
}

// Resolve returns the source root for file given its declared package.
// An empty package resolves to the file's containing directory.
// A layout mismatch returns *InvalidPackageError; an empty file path
// returns *MissingFileError. Running out of parent directories before
// the package is consumed means the caller's invariants are broken and
// panics.
func Resolve(file, pkg string) (string, error) {
	if file == "" {
		return "", &MissingFileError{}
	}

	dir := filepath.Dir(file)
	if pkg == "" {
		return dir, nil
	}

	parts := strings.Split(pkg, ".")
	for i := len(parts) - 1; i >= 0; i-- {
		if filepath.Base(dir) != parts[i] {
			return "", &InvalidPackageError{
				File:      file,
				Dir:       filepath.Base(dir),
				Component: parts[i],
			}
		}
		dir = parentOf(dir)
	}

	return dir, nil
}

// parentOf steps one directory up, panicking at the filesystem root:
// the package walk is bounded by the declared package depth, so
// exhausting parents means a broken invariant, not user error.
func parentOf(dir string) string {
	parent := filepath.Dir(dir)
	if parent == dir {
		panic(fmt.Sprintf("srcroot: no parent directory above %s", dir))
	}
	return parent
}

var packageDecl = regexp.MustCompile(`(?m)^[ \t]*package[ \t]+([\w.]+)[ \t]*;`)

// DeclaredPackage extracts the package name from Java source text.
// Returns the empty string for sources in the default package.
func DeclaredPackage(source string) string {
	m := packageDecl.FindStringSubmatch(source)
	if m == nil {
		return ""
	}
	return m[1]
}
