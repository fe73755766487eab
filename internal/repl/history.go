package repl

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrNoHistory is returned by Load when a session has no history file.
var ErrNoHistory = errors.New("no interaction history")

// Entry is one evaluated interaction.
type Entry struct {
	Input  string    `json:"input"`
	Output string    `json:"output"`
	Time   time.Time `json:"time"`
}

// History persists interaction entries per session under the XDG data
// directory. Write failures are swallowed: losing history must never
// break the loop.
type History struct {
	dir string
}

// NewHistory returns a history store rooted at
// $XDG_DATA_HOME/javelin/history (or ~/.local/share/javelin/history).
func NewHistory() (*History, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving data directory: %w", err)
		}
		base = filepath.Join(home, ".local", "share")
	}

	dir := filepath.Join(base, "javelin", "history")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}
	return &History{dir: dir}, nil
}

// Record appends an entry to the session's history file.
func (h *History) Record(sessionID string, e Entry) {
	entries, err := h.Load(sessionID)
	if err != nil && !errors.Is(err, ErrNoHistory) {
		return
	}
	entries = append(entries, e)
	h.write(sessionID, entries)
}

// Load reads all entries recorded for a session. Returns ErrNoHistory
// if none were recorded.
func (h *History) Load(sessionID string) ([]Entry, error) {
	data, err := os.ReadFile(h.path(sessionID))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoHistory
		}
		return nil, fmt.Errorf("reading history: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing history: %w", err)
	}
	return entries, nil
}

// write marshals entries and replaces the history file atomically via
// a temp file and os.Rename.
func (h *History) write(sessionID string, entries []Entry) {
	data, err := json.Marshal(entries)
	if err != nil {
		return
	}

	tmp, err := os.CreateTemp(h.dir, "history-*.json.tmp")
	if err != nil {
		return
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return
	}

	if err := os.Rename(tmpName, h.path(sessionID)); err != nil {
		os.Remove(tmpName)
	}
}

func (h *History) path(sessionID string) string {
	return filepath.Join(h.dir, sessionID+".json")
}
