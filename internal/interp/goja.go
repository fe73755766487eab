package interp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dop251/goja"
)

// GojaInterpreter evaluates expressions in an embedded goja runtime.
// The runtime lives for the whole session, so variables persist across
// inputs; resetting a session discards the interpreter entirely.
type GojaInterpreter struct {
	vm        *goja.Runtime
	classpath []string
	timeout   time.Duration
}

// NewGoja returns an interpreter with a fresh runtime. A zero timeout
// disables the per-evaluation deadline.
func NewGoja(timeout time.Duration) *GojaInterpreter {
	return &GojaInterpreter{
		vm:      goja.New(),
		timeout: timeout,
	}
}

// Eval runs code and returns its value. Parse failures come back as
// *SyntaxError; interrupted or failed evaluations as plain errors.
func (g *GojaInterpreter) Eval(ctx context.Context, code string) (Value, error) {
	// Compile separately: at this goja version RunString reports parse
	// failures as a thrown JS exception, so the compiler error type is
	// only observable from Compile.
	prog, err := goja.Compile("", code, false)
	if err != nil {
		var syn *goja.CompilerSyntaxError
		if errors.As(err, &syn) {
			return nil, &SyntaxError{Msg: syn.Error()}
		}
		return nil, err
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			g.vm.Interrupt("evaluation interrupted")
		case <-done:
		}
	}()

	val, err := g.vm.RunProgram(prog)
	close(done)
	// The runtime outlives this call; drop any interrupt that landed
	// after RunProgram returned so it cannot poison the next eval.
	g.vm.ClearInterrupt()
	if err != nil {
		var interrupted *goja.InterruptedError
		if errors.As(err, &interrupted) {
			return nil, fmt.Errorf("evaluation interrupted: %v", interrupted.Value())
		}
		return nil, err
	}

	return gojaValue{v: val}, nil
}

// AddClasspath records a directory and republishes the classpath array
// inside the runtime.
func (g *GojaInterpreter) AddClasspath(dir string) {
	g.classpath = append(g.classpath, dir)
	g.vm.Set("classpath", g.classpath)
}

// Classpath returns the directories added so far.
func (g *GojaInterpreter) Classpath() []string {
	return append([]string(nil), g.classpath...)
}

type gojaValue struct {
	v goja.Value
}

func (gv gojaValue) HasResult() bool {
	return gv.v != nil && !goja.IsUndefined(gv.v)
}

// Render formats the value the way a Java REPL prints String.valueOf:
// no quoting, nulls spelled out. Export can panic on exotic values;
// that surfaces as a render error.
func (gv gojaValue) Render() (s string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("rendering result failed: %v", r)
		}
	}()

	if goja.IsNull(gv.v) {
		return "null", nil
	}
	return fmt.Sprintf("%v", gv.v.Export()), nil
}
