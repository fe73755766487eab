package model

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/javelin-ide/javelin/internal/interp"
	"github.com/javelin-ide/javelin/internal/repl"
)

// recorder captures the notifications it receives, in order.
type recorder struct {
	BaseListener
	name    string
	events  *[]string
	abandon bool
}

func newRecorder(name string, events *[]string) *recorder {
	return &recorder{name: name, events: events, abandon: true}
}

func (r *recorder) log(event string) {
	*r.events = append(*r.events, r.name+":"+event)
}

func (r *recorder) NewFileCreated()                 { r.log("newFileCreated") }
func (r *recorder) FileSaved(string)                { r.log("fileSaved") }
func (r *recorder) FileOpened(string)               { r.log("fileOpened") }
func (r *recorder) CompileStarted()                 { r.log("compileStarted") }
func (r *recorder) CompileEnded()                   { r.log("compileEnded") }
func (r *recorder) ConsoleReset()                   { r.log("consoleReset") }
func (r *recorder) InteractionsReset()              { r.log("interactionsReset") }
func (r *recorder) SaveBeforeProceeding(SaveReason) { r.log("saveBeforeProceeding") }
func (r *recorder) FileChangedOnDisk(string)        { r.log("fileChangedOnDisk") }
func (r *recorder) CanAbandonFile(string) bool {
	r.log("canAbandonFile")
	return r.abandon
}

// saveOnPrompt saves the unit when asked, imitating a UI listener that
// handles the save-before-compile dialog.
type saveOnPrompt struct {
	BaseListener
	m    *Model
	path string
}

func (s *saveOnPrompt) SaveBeforeProceeding(SaveReason) {
	s.m.SaveAs(FixedPath(s.path))
}

// fakeCompiler records invocations and returns scripted diagnostics.
type fakeCompiler struct {
	calls []struct {
		root  string
		files []string
	}
	diags []CompilerError
	err   error
}

func (f *fakeCompiler) Compile(root string, files []string) ([]CompilerError, error) {
	f.calls = append(f.calls, struct {
		root  string
		files []string
	}{root, files})
	return f.diags, f.err
}

func newTestModel(c Compiler) *Model {
	ctl := repl.New(func() interp.Interpreter { return interp.NewGoja(0) })
	return New(ctl, c)
}

func TestCreateNewNotifies(t *testing.T) {
	var events []string
	m := newTestModel(&fakeCompiler{})
	m.AddListener(newRecorder("a", &events))

	m.CreateNew()

	if len(events) != 1 || events[0] != "a:newFileCreated" {
		t.Errorf("events = %v, want [a:newFileCreated]", events)
	}
}

func TestCanAbandonUnmodifiedSkipsPolling(t *testing.T) {
	var events []string
	m := newTestModel(&fakeCompiler{})
	m.AddListener(newRecorder("a", &events))

	if !m.CanAbandonCurrent() {
		t.Error("unmodified unit should always be abandonable")
	}
	if len(events) != 0 {
		t.Errorf("no listener should be polled, got %v", events)
	}
}

func TestCanAbandonIsPureAND(t *testing.T) {
	var events []string
	m := newTestModel(&fakeCompiler{})
	a := newRecorder("a", &events)
	b := newRecorder("b", &events)
	c := newRecorder("c", &events)
	b.abandon = false
	m.AddListener(a)
	m.AddListener(b)
	m.AddListener(c)
	m.Unit().SetText("changed")

	if m.CanAbandonCurrent() {
		t.Error("one veto should deny abandonment")
	}
	want := []string{"a:canAbandonFile", "b:canAbandonFile", "c:canAbandonFile"}
	if strings.Join(events, ",") != strings.Join(want, ",") {
		t.Errorf("poll order = %v, want %v (no short-circuit)", events, want)
	}
}

func TestCreateNewBlockedByVeto(t *testing.T) {
	var events []string
	m := newTestModel(&fakeCompiler{})
	r := newRecorder("a", &events)
	r.abandon = false
	m.AddListener(r)
	m.Unit().SetText("unsaved work")

	m.CreateNew()

	for _, e := range events {
		if e == "a:newFileCreated" {
			t.Error("vetoed CreateNew must not notify newFileCreated")
		}
	}
	if m.Unit().Text() != "unsaved work" {
		t.Error("vetoed CreateNew must keep the current unit")
	}
}

func TestSaveAsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Main.java")

	var events []string
	m := newTestModel(&fakeCompiler{})
	m.AddListener(newRecorder("a", &events))
	m.Unit().SetText("public class Main {}\n")

	if err := m.SaveAs(FixedPath(path)); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	if m.Unit().Modified() {
		t.Error("unit should be unmodified after save")
	}
	if m.Unit().Path() != path {
		t.Errorf("Path() = %q, want %q", m.Unit().Path(), path)
	}

	if err := m.Open(FixedPath(path)); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if m.Unit().Text() != "public class Main {}\n" {
		t.Errorf("opened text = %q", m.Unit().Text())
	}
	if m.Unit().Modified() {
		t.Error("opened unit should be unmodified")
	}

	want := "a:fileSaved,a:fileOpened"
	if strings.Join(events, ",") != want {
		t.Errorf("events = %v, want %v", events, want)
	}
}

func TestSaveDelegatesToBoundPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Main.java")

	m := newTestModel(&fakeCompiler{})
	m.Unit().SetText("class A {}\n")
	if err := m.SaveAs(FixedPath(path)); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}

	m.Unit().SetText("class B {}\n")
	// The selector must not be consulted once a path is bound.
	err := m.Save(func() (string, error) {
		t.Error("selector should not be called for a bound unit")
		return "", ErrCanceled
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "class B {}\n" {
		t.Errorf("file = %q, want %q", data, "class B {}\n")
	}
}

func TestSaveAsCancellationIsNoOp(t *testing.T) {
	var events []string
	m := newTestModel(&fakeCompiler{})
	m.AddListener(newRecorder("a", &events))
	m.Unit().SetText("draft")

	canceled := func() (string, error) { return "", ErrCanceled }
	if err := m.SaveAs(canceled); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}

	if !m.Unit().Modified() {
		t.Error("canceled save must leave the unit modified")
	}
	if len(events) != 0 {
		t.Errorf("canceled save must not notify, got %v", events)
	}
}

func TestOpenCancellationIsNoOp(t *testing.T) {
	var events []string
	m := newTestModel(&fakeCompiler{})
	m.AddListener(newRecorder("a", &events))

	canceled := func() (string, error) { return "", ErrCanceled }
	if err := m.Open(canceled); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("canceled open must not notify, got %v", events)
	}
}

func TestStartCompileAbortsSilentlyWhenStillModified(t *testing.T) {
	var events []string
	comp := &fakeCompiler{}
	m := newTestModel(comp)
	m.AddListener(newRecorder("a", &events))
	m.Unit().SetText("class A {}")

	if err := m.StartCompile(); err != nil {
		t.Fatalf("StartCompile: %v", err)
	}

	if len(comp.calls) != 0 {
		t.Error("compiler must not be invoked while the unit is modified")
	}
	want := []string{"a:saveBeforeProceeding"}
	if strings.Join(events, ",") != strings.Join(want, ",") {
		t.Errorf("events = %v, want %v (no compileStarted/compileEnded)", events, want)
	}
}

func TestStartCompileFullSequence(t *testing.T) {
	dir := t.TempDir()
	pkgDir := filepath.Join(dir, "com", "acme")
	if err := os.MkdirAll(pkgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(pkgDir, "Main.java")

	var events []string
	comp := &fakeCompiler{}
	m := newTestModel(comp)
	rec := newRecorder("a", &events)
	m.AddListener(rec)
	m.AddListener(&saveOnPrompt{m: m, path: path})

	m.Unit().SetText("package com.acme;\nclass Main {}\n")

	if err := m.StartCompile(); err != nil {
		t.Fatalf("StartCompile: %v", err)
	}

	if len(comp.calls) != 1 {
		t.Fatalf("compiler invoked %d times, want 1", len(comp.calls))
	}
	if comp.calls[0].root != dir {
		t.Errorf("source root = %q, want %q", comp.calls[0].root, dir)
	}
	if len(comp.calls[0].files) != 1 || comp.calls[0].files[0] != path {
		t.Errorf("files = %v, want [%s]", comp.calls[0].files, path)
	}

	want := []string{
		"a:saveBeforeProceeding",
		"a:fileSaved",
		"a:compileStarted",
		"a:compileEnded",
		"a:consoleReset",
		"a:interactionsReset",
	}
	if strings.Join(events, ",") != strings.Join(want, ",") {
		t.Errorf("events = %v, want %v", events, want)
	}

	sess := m.Interactions().Session()
	if sess.Package != "com.acme" {
		t.Errorf("session package = %q, want %q", sess.Package, "com.acme")
	}
	if len(sess.Classpath) != 1 || sess.Classpath[0] != dir {
		t.Errorf("session classpath = %v, want [%s]", sess.Classpath, dir)
	}
}

func TestStartCompileInvalidPackageBecomesDiagnostic(t *testing.T) {
	dir := t.TempDir()
	wrongDir := filepath.Join(dir, "org", "other")
	if err := os.MkdirAll(wrongDir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(wrongDir, "Main.java")

	var events []string
	comp := &fakeCompiler{}
	m := newTestModel(comp)
	m.AddListener(newRecorder("a", &events))

	m.Unit().SetText("package com.acme;\nclass Main {}\n")
	if err := m.SaveAs(FixedPath(path)); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	events = events[:0]

	if err := m.StartCompile(); err != nil {
		t.Fatalf("StartCompile: %v", err)
	}

	if len(comp.calls) != 0 {
		t.Error("compiler must not run on a package mismatch")
	}
	errs := m.CompileErrors()
	if len(errs) != 1 {
		t.Fatalf("got %d compile errors, want 1", len(errs))
	}
	ce := errs[0]
	if ce.Path != path || ce.Line != -1 || ce.Col != -1 || ce.Warning {
		t.Errorf("diagnostic = %+v, want path=%s line=-1 col=-1 not-warning", ce, path)
	}
	if !strings.Contains(ce.Message, "acme") {
		t.Errorf("message %q should name the mismatched package component", ce.Message)
	}

	for _, e := range events {
		if e == "a:compileEnded" {
			t.Error("compileEnded must not fire on a package mismatch")
		}
	}
}

func TestResetInteractionsFallsBackUnscoped(t *testing.T) {
	var events []string
	m := newTestModel(&fakeCompiler{})
	m.AddListener(newRecorder("a", &events))

	// Unsaved unit: resolution fails with MissingFileError; the reset
	// must degrade to an unscoped session instead of failing.
	m.Unit().SetText("package com.acme;\n")
	m.ResetInteractions()

	sess := m.Interactions().Session()
	if sess.Package != "" || len(sess.Classpath) != 0 {
		t.Errorf("session = pkg %q cp %v, want unscoped", sess.Package, sess.Classpath)
	}
	if len(events) != 1 || events[0] != "a:interactionsReset" {
		t.Errorf("events = %v, want [a:interactionsReset]", events)
	}
}

func TestResetConsole(t *testing.T) {
	var events []string
	m := newTestModel(&fakeCompiler{})
	m.AddListener(newRecorder("a", &events))

	m.Console().Append("javac output\n")
	m.ResetConsole()

	if m.Console().Text() != "" {
		t.Errorf("console = %q, want empty", m.Console().Text())
	}
	if len(events) != 1 || events[0] != "a:consoleReset" {
		t.Errorf("events = %v, want [a:consoleReset]", events)
	}
}

func TestQuitGatedOnAbandon(t *testing.T) {
	var events []string
	m := newTestModel(&fakeCompiler{})
	r := newRecorder("a", &events)
	r.abandon = false
	m.AddListener(r)
	m.Unit().SetText("unsaved")

	exited := false
	m.exit = func(int) { exited = true }

	m.Quit()
	if exited {
		t.Error("vetoed quit must not exit")
	}

	r.abandon = true
	m.Quit()
	if !exited {
		t.Error("approved quit must exit")
	}
}

func TestGotoLine(t *testing.T) {
	m := newTestModel(&fakeCompiler{})
	m.Unit().SetText("one\ntwo\nthree\n")

	tests := []struct {
		line int
		want int
	}{
		{1, 0},
		{2, 4},
		{3, 8},
		{99, 14}, // clamped to the start of the last line
	}
	for _, tt := range tests {
		if got := m.GotoLine(tt.line); got != tt.want {
			t.Errorf("GotoLine(%d) = %d, want %d", tt.line, got, tt.want)
		}
	}
}

func TestRemoveListener(t *testing.T) {
	var events []string
	m := newTestModel(&fakeCompiler{})
	a := newRecorder("a", &events)
	b := newRecorder("b", &events)
	m.AddListener(a)
	m.AddListener(b)
	m.RemoveListener(a)

	m.CreateNew()

	if strings.Join(events, ",") != "b:newFileCreated" {
		t.Errorf("events = %v, want [b:newFileCreated]", events)
	}
}

func TestNoteExternalChange(t *testing.T) {
	var events []string
	m := newTestModel(&fakeCompiler{})
	m.AddListener(newRecorder("a", &events))

	m.NoteExternalChange("/proj/Main.java")

	if len(events) != 1 || events[0] != "a:fileChangedOnDisk" {
		t.Errorf("events = %v, want [a:fileChangedOnDisk]", events)
	}
}

func TestCompilerInvocationErrorPropagates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Main.java")

	comp := &fakeCompiler{err: errors.New("javac not found")}
	m := newTestModel(comp)
	m.Unit().SetText("class Main {}\n")
	if err := m.SaveAs(FixedPath(path)); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}

	err := m.StartCompile()
	if err == nil || !strings.Contains(err.Error(), "javac not found") {
		t.Errorf("err = %v, want wrapped compiler invocation failure", err)
	}
}

func TestWatchFileReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Main.java")
	if err := os.WriteFile(path, []byte("class A {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := WatchFile(path)
	if err != nil {
		t.Fatalf("WatchFile: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("class B {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events():
		if got != filepath.Clean(path) {
			t.Errorf("event = %q, want %q", got, path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch event")
	}
}
