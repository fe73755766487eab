// Package model orchestrates the IDE core: the current compilation
// unit, the compile pipeline, the interactions session and the
// listener protocol that gates destructive operations.
package model

import (
	"errors"
	"fmt"
	"os"

	"github.com/javelin-ide/javelin/internal/repl"
	"github.com/javelin-ide/javelin/internal/srcroot"
)

// ErrCanceled signals that the user dismissed a file selector. It is
// a distinct non-error outcome: the enclosing operation becomes a
// silent no-op.
var ErrCanceled = errors.New("operation canceled")

// FileSelector produces a target path, or ErrCanceled when the user
// backs out.
type FileSelector func() (string, error)

// FixedPath is a selector that always yields path.
func FixedPath(path string) FileSelector {
	return func() (string, error) { return path, nil }
}

// CompilerError is one structured compiler diagnostic. Line and Col
// are 1-based, or -1 when not applicable.
type CompilerError struct {
	Path    string
	Line    int
	Col     int
	Message string
	Warning bool
}

// Compiler is the external compiler contract. Any returned diagnostic
// slice, even an empty one, counts as a completed compile pass;
// displaying diagnostics is the listeners' concern.
type Compiler interface {
	Compile(sourceRoot string, files []string) ([]CompilerError, error)
}

// Model ties the unit, console, interactions and compiler together and
// fans events out to listeners.
type Model struct {
	unit          *CompilationUnit
	console       *Console
	interactions  *repl.Controller
	compiler      Compiler
	listeners     []Listener
	compileErrors []CompilerError

	// exit terminates the process on Quit; swapped out in tests.
	exit func(code int)
}

// New returns a model with a fresh empty unit.
func New(interactions *repl.Controller, compiler Compiler) *Model {
	return &Model{
		unit:         NewUnit(),
		console:      &Console{},
		interactions: interactions,
		compiler:     compiler,
		exit:         os.Exit,
	}
}

// AddListener registers a listener at the end of the notification
// order.
func (m *Model) AddListener(l Listener) {
	m.listeners = append(m.listeners, l)
}

// RemoveListener removes the first registered listener equal to l.
func (m *Model) RemoveListener(l Listener) {
	for i, cur := range m.listeners {
		if cur == l {
			m.listeners = append(m.listeners[:i], m.listeners[i+1:]...)
			return
		}
	}
}

// Unit returns the current compilation unit.
func (m *Model) Unit() *CompilationUnit {
	return m.unit
}

// Console returns the console pane buffer.
func (m *Model) Console() *Console {
	return m.console
}

// Interactions returns the interactions controller.
func (m *Model) Interactions() *repl.Controller {
	return m.interactions
}

// CompileErrors returns the diagnostics from the most recent compile.
func (m *Model) CompileErrors() []CompilerError {
	return m.compileErrors
}

// CreateNew replaces the current unit with a fresh empty one, if the
// listeners allow abandoning the current one.
func (m *Model) CreateNew() {
	if !m.CanAbandonCurrent() {
		return
	}
	m.unit = NewUnit()
	m.notify(func(l Listener) { l.NewFileCreated() })
}

// Save writes the unit to its bound path, or delegates to SaveAs when
// the unit has never been saved.
func (m *Model) Save(selector FileSelector) error {
	if path := m.unit.Path(); path != "" {
		selector = FixedPath(path)
	}
	return m.SaveAs(selector)
}

// SaveAs obtains a target from the selector and writes the unit there.
// Selector cancellation is a silent no-op.
func (m *Model) SaveAs(selector FileSelector) error {
	path, err := selector()
	if errors.Is(err, ErrCanceled) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("selecting save target: %w", err)
	}

	if err := os.WriteFile(path, []byte(m.unit.Text()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	m.unit.bindPath(path)
	m.notify(func(l Listener) { l.FileSaved(path) })
	return nil
}

// Open reads a file into a new current unit, if the listeners allow
// abandoning the present one. Selector cancellation is a silent no-op.
func (m *Model) Open(selector FileSelector) error {
	if !m.CanAbandonCurrent() {
		return nil
	}

	path, err := selector()
	if errors.Is(err, ErrCanceled) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("selecting file to open: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	unit := NewUnit()
	unit.text = string(data)
	unit.bindPath(path)
	m.unit = unit
	m.notify(func(l Listener) { l.FileOpened(path) })
	return nil
}

// StartCompile runs the compile pipeline: prompt listeners to save,
// abort silently if the unit is still modified, compile, then clear
// the console and reset the interactions session against the resolved
// source root. Package layout problems become a single stored
// diagnostic instead of an error.
func (m *Model) StartCompile() error {
	m.SaveBeforeProceeding(CompileReason)
	if m.unit.Modified() {
		// Listeners declined to save; drop the compile without fanfare.
		return nil
	}

	m.notify(func(l Listener) { l.CompileStarted() })

	path := m.unit.Path()
	pkg := m.unit.Package()
	root, err := srcroot.Resolve(path, pkg)
	if err != nil {
		m.compileErrors = []CompilerError{{
			Path:    path,
			Line:    -1,
			Col:     -1,
			Message: err.Error(),
		}}
		return nil
	}

	diags, err := m.compiler.Compile(root, []string{path})
	if err != nil {
		return fmt.Errorf("invoking compiler: %w", err)
	}
	m.compileErrors = diags

	m.notify(func(l Listener) { l.CompileEnded() })
	m.ResetConsole()
	m.resetInteractionsWith(pkg, root)
	return nil
}

// ResetInteractions restarts the interactions session scoped to the
// current unit. If the source root cannot be resolved the session is
// reset unscoped; this never fails outward.
func (m *Model) ResetInteractions() {
	pkg := m.unit.Package()
	root, err := srcroot.Resolve(m.unit.Path(), pkg)
	if err != nil {
		m.resetInteractionsWith("", "")
		return
	}
	m.resetInteractionsWith(pkg, root)
}

func (m *Model) resetInteractionsWith(pkg, root string) {
	var classpath []string
	if root != "" {
		classpath = []string{root}
	}
	m.interactions.Reset(pkg, classpath)
	m.notify(func(l Listener) { l.InteractionsReset() })
}

// ResetConsole clears the console pane.
func (m *Model) ResetConsole() {
	m.console.Clear()
	m.notify(func(l Listener) { l.ConsoleReset() })
}

// SaveBeforeProceeding asks listeners to handle saving a modified unit
// before reason's operation continues. Listeners decide; the model does
// not assume they saved.
func (m *Model) SaveBeforeProceeding(reason SaveReason) {
	if !m.unit.Modified() {
		return
	}
	m.notify(func(l Listener) { l.SaveBeforeProceeding(reason) })
}

// CanAbandonCurrent reports whether the current unit may be discarded.
// An unmodified unit may always be abandoned without polling; otherwise
// the answer is the AND of every listener's response, polled in
// registration order.
func (m *Model) CanAbandonCurrent() bool {
	if !m.unit.Modified() {
		return true
	}
	ok := true
	for _, l := range m.listeners {
		ok = l.CanAbandonFile(m.unit.Path()) && ok
	}
	return ok
}

// Quit terminates the process, gated on the abandon check.
func (m *Model) Quit() {
	if m.CanAbandonCurrent() {
		m.exit(0)
	}
}

// GotoLine moves the unit's caret to line n and returns the resulting
// absolute offset.
func (m *Model) GotoLine(n int) int {
	return m.unit.GotoLine(n)
}

// NoteExternalChange reports that the unit's file changed on disk
// outside the editor. The watcher's consumer calls this on the model's
// own goroutine to keep listener ordering intact.
func (m *Model) NoteExternalChange(path string) {
	m.notify(func(l Listener) { l.FileChangedOnDisk(path) })
}

// notify visits every listener in registration order.
func (m *Model) notify(fn func(Listener)) {
	for _, l := range m.listeners {
		fn(l)
	}
}
