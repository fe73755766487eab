// Package javac invokes the system Java compiler and parses its
// diagnostics into structured records.
package javac

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/javelin-ide/javelin/internal/model"
)

// Tool shells out to javac. It satisfies model.Compiler.
type Tool struct {
	// Path is the javac executable, "javac" by default.
	Path string

	// Console receives the compiler's raw output, if non-nil.
	Console io.Writer
}

// New returns a Tool using the given javac executable.
func New(path string) *Tool {
	if path == "" {
		path = "javac"
	}
	return &Tool{Path: path}
}

// Compile runs javac over files with sourceRoot as both the class
// output directory and the classpath. A non-zero exit with parseable
// diagnostics is a completed compile pass, not an invocation failure.
func (t *Tool) Compile(sourceRoot string, files []string) ([]model.CompilerError, error) {
	args := append([]string{"-d", sourceRoot, "-cp", sourceRoot}, files...)
	cmd := exec.CommandContext(context.Background(), t.Path, args...)

	out, err := cmd.CombinedOutput()
	if t.Console != nil {
		t.Console.Write(out)
	}

	diags := ParseDiagnostics(string(out))
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("running %s: %w", t.Path, err)
		}
		if len(diags) == 0 {
			return nil, fmt.Errorf("%s exited without diagnostics: %w", t.Path, err)
		}
	}
	return diags, nil
}

// diagLine matches javac's "path:line: error: message" form.
var diagLine = regexp.MustCompile(`^(.+?):(\d+):\s*(error|warning):\s*(.*)$`)

// ParseDiagnostics extracts structured records from javac output. The
// column comes from the caret line javac prints under each diagnostic;
// -1 when absent.
func ParseDiagnostics(output string) []model.CompilerError {
	var diags []model.CompilerError
	lines := strings.Split(output, "\n")

	for i, line := range lines {
		m := diagLine.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}

		lineNum, convErr := strconv.Atoi(m[2])
		if convErr != nil {
			continue
		}

		diags = append(diags, model.CompilerError{
			Path:    m[1],
			Line:    lineNum,
			Col:     caretColumn(lines, i),
			Message: m[4],
			Warning: m[3] == "warning",
		})
	}
	return diags
}

// caretColumn finds the 1-based caret position within the two lines
// javac prints after a diagnostic (source excerpt, then a lone caret).
func caretColumn(lines []string, diagIdx int) int {
	for j := diagIdx + 1; j < len(lines) && j <= diagIdx+2; j++ {
		trimmed := strings.TrimRight(lines[j], " \t\r")
		if strings.HasSuffix(trimmed, "^") && strings.TrimLeft(trimmed, " \t") == "^" {
			return len(trimmed)
		}
	}
	return -1
}
