package repl

import (
	"github.com/google/uuid"

	"github.com/javelin-ide/javelin/internal/buffer"
	"github.com/javelin-ide/javelin/internal/interp"
)

// Session owns one buffer, one interpreter and the classpath scope of
// the current interactions run. Sessions are replaced wholesale on
// reset; an old session's interpreter is never reused.
type Session struct {
	ID        string
	Buf       *buffer.Buffer
	Interp    interp.Interpreter
	Package   string
	Classpath []string
}

// newSession builds a fresh session with a reset buffer. Every
// classpath entry is handed to the new interpreter before first use.
func newSession(in interp.Interpreter, banner, prompt, pkg string, classpath []string) *Session {
	buf := buffer.New()
	buf.Reset(banner, prompt)

	for _, dir := range classpath {
		in.AddClasspath(dir)
	}

	return &Session{
		ID:        uuid.New().String(),
		Buf:       buf,
		Interp:    in,
		Package:   pkg,
		Classpath: append([]string(nil), classpath...),
	}
}
