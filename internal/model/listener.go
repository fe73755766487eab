package model

// SaveReason says why listeners are being asked to save before an
// operation proceeds.
type SaveReason int

const (
	// CompileReason precedes a compile of a modified unit.
	CompileReason SaveReason = iota
	// TestReason precedes a test run of a modified unit.
	TestReason
)

// Listener observes model events. Notification is synchronous, in
// registration order, and must not mutate the registry reentrantly.
type Listener interface {
	NewFileCreated()
	FileSaved(path string)
	FileOpened(path string)
	CompileStarted()
	CompileEnded()
	ConsoleReset()
	InteractionsReset()
	SaveBeforeProceeding(reason SaveReason)
	FileChangedOnDisk(path string)

	// CanAbandonFile asks whether unsaved changes to path may be
	// discarded. All listeners' answers are ANDed together.
	CanAbandonFile(path string) bool
}

// BaseListener is a no-op Listener for embedding; it answers yes to
// every abandon poll.
type BaseListener struct{}

func (BaseListener) NewFileCreated()                 {}
func (BaseListener) FileSaved(string)                {}
func (BaseListener) FileOpened(string)               {}
func (BaseListener) CompileStarted()                 {}
func (BaseListener) CompileEnded()                   {}
func (BaseListener) ConsoleReset()                   {}
func (BaseListener) InteractionsReset()              {}
func (BaseListener) SaveBeforeProceeding(SaveReason) {}
func (BaseListener) FileChangedOnDisk(string)        {}
func (BaseListener) CanAbandonFile(string) bool      { return true }
