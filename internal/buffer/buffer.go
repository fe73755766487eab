// Package buffer implements the interactions text buffer. Everything
// before the frozen boundary is committed history and cannot be edited;
// the region after it holds the input currently being typed.
package buffer

import "fmt"

// Buffer is a character buffer with a frozen boundary. Edits below the
// boundary are rejected with an alert instead of being applied.
type Buffer struct {
	runes  []rune
	frozen int
	alert  func()
}

// New returns an empty buffer with the boundary at zero.
func New() *Buffer {
	return &Buffer{}
}

// SetAlert registers the callback invoked when an edit is rejected.
// A nil callback disables the alert.
func (b *Buffer) SetAlert(fn func()) {
	b.alert = fn
}

// Len returns the number of characters in the buffer.
func (b *Buffer) Len() int {
	return len(b.runes)
}

// Frozen returns the current frozen boundary offset.
func (b *Buffer) Frozen() int {
	return b.frozen
}

// Text returns the full buffer contents.
func (b *Buffer) Text() string {
	return string(b.runes)
}

// EditableText returns the contents from the frozen boundary to the end.
func (b *Buffer) EditableText() string {
	return string(b.runes[b.frozen:])
}

// Insert places text at the given offset. If the offset lies inside the
// frozen region the buffer is left untouched and the alert fires.
// Offsets outside the buffer indicate a caller bug and panic.
func (b *Buffer) Insert(offset int, text string) {
	if offset < 0 || offset > len(b.runes) {
		panic(fmt.Sprintf("buffer: insert at %d outside [0,%d]", offset, len(b.runes)))
	}
	if offset < b.frozen {
		b.ring()
		return
	}
	b.spliceIn(offset, text)
}

// Delete removes length characters starting at offset, with the same
// frozen-region guard as Insert.
func (b *Buffer) Delete(offset, length int) {
	if offset < 0 || length < 0 || offset+length > len(b.runes) {
		panic(fmt.Sprintf("buffer: delete [%d,%d) outside [0,%d]", offset, offset+length, len(b.runes)))
	}
	if offset < b.frozen {
		b.ring()
		return
	}
	b.runes = append(b.runes[:offset], b.runes[offset+length:]...)
}

// Append adds text at the end of the buffer. The end is never frozen,
// so this cannot be rejected.
func (b *Buffer) Append(text string) {
	b.spliceIn(len(b.runes), text)
}

// FreezeAtEnd advances the frozen boundary to the current end of the
// buffer. Called once per prompt emission.
func (b *Buffer) FreezeAtEnd() {
	b.frozen = len(b.runes)
}

// Reset discards all content, writes the banner and prompt, and freezes
// at the end. This is the only way the boundary moves backward.
func (b *Buffer) Reset(banner, prompt string) {
	b.runes = b.runes[:0]
	b.frozen = 0
	b.spliceIn(0, banner)
	b.spliceIn(len(b.runes), prompt)
	b.FreezeAtEnd()
}

func (b *Buffer) spliceIn(offset int, text string) {
	ins := []rune(text)
	b.runes = append(b.runes[:offset], append(ins, b.runes[offset:]...)...)
}

func (b *Buffer) ring() {
	if b.alert != nil {
		b.alert()
	}
}
