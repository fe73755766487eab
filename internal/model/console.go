package model

import "strings"

// Console is the append-only output pane for compiler and program
// output. It implements io.Writer so external tools can stream into it.
type Console struct {
	buf strings.Builder
}

func (c *Console) Write(p []byte) (int, error) {
	return c.buf.Write(p)
}

// Append adds text to the console.
func (c *Console) Append(text string) {
	c.buf.WriteString(text)
}

// Text returns the console contents.
func (c *Console) Text() string {
	return c.buf.String()
}

// Clear discards all console contents.
func (c *Console) Clear() {
	c.buf.Reset()
}
