// Package repl implements the interactions read-eval-print loop: a
// protected buffer fed by the user, an embedded interpreter session,
// and the error classification between them.
package repl

import (
	"context"
	"strings"
	"time"

	"github.com/javelin-ide/javelin/internal/buffer"
	"github.com/javelin-ide/javelin/internal/interp"
)

// State is the controller's position in the read-eval-print cycle.
type State int

const (
	// AwaitingInput means the prompt is out and the editable region is live.
	AwaitingInput State = iota
	// Evaluating means the pending input is with the interpreter.
	Evaluating
	// Reporting means output is being appended before the next prompt.
	Reporting
)

const (
	// DefaultBanner opens every fresh interactions session.
	DefaultBanner = "Welcome to Javelin.\n"
	// Prompt marks the start of the editable region.
	Prompt = "> "

	invalidSyntaxMsg = "Invalid syntax"
	errPrefix        = "Error in evaluation: "
)

// Controller drives the interactions loop over a replaceable session.
type Controller struct {
	newInterp func() interp.Interpreter
	banner    string
	alert     func()
	state     State
	sess      *Session
	history   *History
}

// Option configures a Controller.
type Option func(*Controller)

// WithBanner overrides the session banner.
func WithBanner(banner string) Option {
	return func(c *Controller) { c.banner = banner }
}

// WithHistory records every evaluation to the given history store.
func WithHistory(h *History) Option {
	return func(c *Controller) { c.history = h }
}

// New returns a controller with an initial unscoped session. newInterp
// is called once per session; a reset always builds a new interpreter.
func New(newInterp func() interp.Interpreter, opts ...Option) *Controller {
	c := &Controller{
		newInterp: newInterp,
		banner:    DefaultBanner,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Reset("", nil)
	return c
}

// Reset discards the current session and starts a fresh one with the
// given package scope and classpath entries.
func (c *Controller) Reset(pkg string, classpath []string) {
	c.sess = newSession(c.newInterp(), c.banner, Prompt, pkg, classpath)
	c.sess.Buf.SetAlert(c.alert)
	c.state = AwaitingInput
}

// SetAlert registers the rejected-edit alert, carried across resets.
func (c *Controller) SetAlert(fn func()) {
	c.alert = fn
	c.sess.Buf.SetAlert(fn)
}

// Session returns the live session.
func (c *Controller) Session() *Session {
	return c.sess
}

// Buffer returns the live session's buffer.
func (c *Controller) Buffer() *buffer.Buffer {
	return c.sess.Buf
}

// State returns the controller state.
func (c *Controller) State() State {
	return c.state
}

// Eval evaluates the pending input in the editable region. It always
// returns the controller to AwaitingInput with a fresh prompt, whether
// evaluation succeeded or failed.
func (c *Controller) Eval(ctx context.Context) {
	c.state = Evaluating
	input := strings.TrimSpace(c.sess.Buf.EditableText())

	output := c.evaluate(ctx, input)

	c.state = Reporting
	c.sess.Buf.Append(output)
	c.prompt()
	c.state = AwaitingInput

	if c.history != nil {
		c.history.Record(c.sess.ID, Entry{
			Input:  input,
			Output: output,
			Time:   time.Now().UTC(),
		})
	}
}

// evaluate runs one input through the interpreter and formats the text
// to report, including the classified error line on failure.
func (c *Controller) evaluate(ctx context.Context, input string) string {
	code := input
	if isMainCall(input) {
		rewritten, err := rewriteMainCall(input)
		if err != nil {
			return c.failure(err)
		}
		code = rewritten
	}

	val, err := c.sess.Interp.Eval(ctx, code)
	if err != nil {
		return c.failure(err)
	}

	if !val.HasResult() {
		return "\n"
	}

	rendered, err := val.Render()
	if err != nil {
		// Stringifying the result blew up; report it like any other
		// evaluation failure, carrying the nested description.
		return c.failure(err)
	}
	return "\n" + rendered + "\n"
}

// failure formats an evaluation failure. Parse failures collapse to a
// fixed message; everything else shows the error's own text.
func (c *Controller) failure(err error) string {
	msg := err.Error()
	if msg == "" {
		msg = "unknown evaluation failure"
	}
	if interp.IsSyntax(err) {
		msg = invalidSyntaxMsg
	}
	return "\n" + errPrefix + msg + "\n"
}

// prompt emits a new prompt and freezes everything before it.
func (c *Controller) prompt() {
	c.sess.Buf.Append(Prompt)
	c.sess.Buf.FreezeAtEnd()
}
