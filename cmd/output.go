package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/javelin-ide/javelin/internal/junit"
	"github.com/javelin-ide/javelin/internal/model"
)

var (
	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// successStyle for success indicators
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// errorStyle for error indicators
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	// warnStyle for warning diagnostics
	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	// locStyle for file:line:col locations
	locStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")).
			Bold(true)

	// boxStyle for the run summary
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("25")).
			Padding(0, 1)
)

// FormatDiagnostics renders compiler diagnostics, one per line.
func FormatDiagnostics(w io.Writer, diags []model.CompilerError) {
	for _, d := range diags {
		kind := errorStyle.Render("error")
		if d.Warning {
			kind = warnStyle.Render("warning")
		}

		loc := d.Path
		if d.Line > 0 {
			loc = fmt.Sprintf("%s:%d", loc, d.Line)
			if d.Col > 0 {
				loc = fmt.Sprintf("%s:%d", loc, d.Col)
			}
		}
		fmt.Fprintf(w, "%s %s %s\n", locStyle.Render(loc), kind, d.Message)
	}
}

// FormatCompileSummary renders the one-line compile verdict.
func FormatCompileSummary(w io.Writer, diags []model.CompilerError) {
	errs, warns := 0, 0
	for _, d := range diags {
		if d.Warning {
			warns++
		} else {
			errs++
		}
	}

	switch {
	case errs > 0:
		fmt.Fprintln(w, errorStyle.Render(fmt.Sprintf("%d error(s), %d warning(s)", errs, warns)))
	case warns > 0:
		fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf("compiled with %d warning(s)", warns)))
	default:
		fmt.Fprintln(w, successStyle.Render("compiled"))
	}
}

// FormatTestResult renders the test run summary box.
func FormatTestResult(w io.Writer, class string, res *junit.Result) {
	var verdict string
	if res.Passed {
		verdict = successStyle.Render("OK")
	} else {
		verdict = errorStyle.Render("FAILURES")
	}

	content := fmt.Sprintf("%s %s\n%s %d  %s %d  %s",
		dimStyle.Render("Class:"), class,
		dimStyle.Render("Tests:"), res.Runs,
		dimStyle.Render("Failures:"), res.Failures,
		verdict,
	)
	fmt.Fprintln(w, boxStyle.Render(content))
}
