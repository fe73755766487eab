// Package junit runs JUnit test classes in a fresh JVM per invocation,
// so each run sees freshly loaded classes from the session classpath.
package junit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// Runner launches JUnit's console runner.
type Runner struct {
	// JavaPath is the java executable, "java" by default.
	JavaPath string

	// Classpath entries passed to the JVM, typically the compile
	// source root plus the JUnit jars.
	Classpath []string

	// Console receives the runner's raw output, if non-nil.
	Console io.Writer
}

// Result summarizes one test run.
type Result struct {
	Runs     int
	Failures int
	Passed   bool
	Output   string
}

// NewRunner returns a Runner over the given classpath entries.
func NewRunner(javaPath string, classpath []string) *Runner {
	if javaPath == "" {
		javaPath = "java"
	}
	return &Runner{JavaPath: javaPath, Classpath: classpath}
}

// Run executes the named test class. A new JVM is started every time;
// classes are never reused between runs. Test failures are reported in
// the Result, not as an error.
func (r *Runner) Run(ctx context.Context, class string) (*Result, error) {
	args := []string{"-cp", strings.Join(r.Classpath, ":"), "org.junit.runner.JUnitCore", class}
	cmd := exec.CommandContext(ctx, r.JavaPath, args...)

	out, err := cmd.CombinedOutput()
	if r.Console != nil {
		r.Console.Write(out)
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("running %s: %w", r.JavaPath, err)
		}
		// JUnitCore exits non-zero on test failures; the summary still
		// tells us what happened.
	}

	res, ok := ParseSummary(string(out))
	if !ok {
		return nil, fmt.Errorf("no test summary in output for %s", class)
	}
	return res, nil
}

var (
	okLine      = regexp.MustCompile(`OK \((\d+) tests?\)`)
	failureLine = regexp.MustCompile(`Tests run: (\d+),\s*Failures: (\d+)`)
)

// ParseSummary extracts the run counts from JUnit console output.
func ParseSummary(output string) (*Result, bool) {
	if m := okLine.FindStringSubmatch(output); m != nil {
		runs, _ := strconv.Atoi(m[1])
		return &Result{Runs: runs, Passed: true, Output: output}, true
	}
	if m := failureLine.FindStringSubmatch(output); m != nil {
		runs, _ := strconv.Atoi(m[1])
		failures, _ := strconv.Atoi(m[2])
		return &Result{Runs: runs, Failures: failures, Output: output}, true
	}
	return nil, false
}
