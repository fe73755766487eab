// Package tui provides the Bubble Tea interactions pane: a viewport
// over the protected buffer with line editing confined to the region
// after the frozen boundary.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/javelin-ide/javelin/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("25")).
			Padding(0, 2)

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)

	flashStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// rejectFlash is the status message shown when an edit lands in the
// frozen region.
const rejectFlash = "read-only region"

// shared holds state mutated from outside the Elm update cycle (the
// buffer alert callback fires synchronously inside key handling).
type shared struct {
	rejected bool
}

// Pane is the Bubble Tea model for the interactions view.
type Pane struct {
	ide    *model.Model
	shared *shared

	viewport viewport.Model
	watcher  *model.Watcher

	cursor int // absolute offset into the buffer, >= frozen boundary
	width  int
	height int
	flash  string
	ready  bool
}

// fileChangedMsg reports an external write to the open file.
type fileChangedMsg string

// NewPane wires the pane to the IDE model. watcher may be nil when no
// file is open.
func NewPane(ide *model.Model, watcher *model.Watcher) *Pane {
	sh := &shared{}
	ide.Interactions().SetAlert(func() { sh.rejected = true })

	return &Pane{
		ide:     ide,
		shared:  sh,
		watcher: watcher,
		cursor:  ide.Interactions().Buffer().Len(),
	}
}

func (p *Pane) Init() tea.Cmd {
	return p.awaitFileChange()
}

// awaitFileChange blocks on the watcher channel, marshaling the event
// into the update loop so listener notification stays single-threaded.
func (p *Pane) awaitFileChange() tea.Cmd {
	if p.watcher == nil {
		return nil
	}
	return func() tea.Msg {
		path, ok := <-p.watcher.Events()
		if !ok {
			return nil
		}
		return fileChangedMsg(path)
	}
}

func (p *Pane) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		if !p.ready {
			p.viewport = viewport.New(msg.Width, msg.Height-2)
			p.ready = true
		} else {
			p.viewport.Width = msg.Width
			p.viewport.Height = msg.Height - 2
		}
		p.refresh()
		return p, nil

	case fileChangedMsg:
		p.ide.NoteExternalChange(string(msg))
		p.flash = fmt.Sprintf("%s changed on disk", msg)
		return p, p.awaitFileChange()

	case tea.KeyMsg:
		return p.handleKey(msg)
	}

	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

func (p *Pane) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	buf := p.ide.Interactions().Buffer()
	p.flash = ""

	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyCtrlD:
		if p.ide.CanAbandonCurrent() {
			return p, tea.Quit
		}
		p.flash = "unsaved changes; save or abandon first"
		return p, nil

	case tea.KeyCtrlL:
		p.ide.ResetInteractions()
		p.cursor = p.ide.Interactions().Buffer().Len()
		p.refresh()
		p.viewport.GotoBottom()
		return p, nil

	case tea.KeyEnter:
		p.ide.Interactions().Eval(context.Background())
		p.cursor = p.ide.Interactions().Buffer().Len()
		p.refresh()
		p.viewport.GotoBottom()
		return p, nil

	case tea.KeyBackspace:
		if p.cursor > 0 {
			buf.Delete(p.cursor-1, 1)
			if !p.noteRejection() {
				p.cursor--
			}
		}
		p.refresh()
		return p, nil

	case tea.KeyLeft:
		if p.cursor > buf.Frozen() {
			p.cursor--
		}
		return p, nil

	case tea.KeyRight:
		if p.cursor < buf.Len() {
			p.cursor++
		}
		return p, nil

	case tea.KeyHome:
		p.cursor = buf.Frozen()
		return p, nil

	case tea.KeyEnd:
		p.cursor = buf.Len()
		return p, nil

	case tea.KeySpace:
		p.insert(" ")
		return p, nil

	case tea.KeyRunes:
		p.insert(string(msg.Runes))
		return p, nil
	}

	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

// insert types text at the cursor; the buffer enforces the boundary.
func (p *Pane) insert(text string) {
	buf := p.ide.Interactions().Buffer()
	buf.Insert(p.cursor, text)
	if !p.noteRejection() {
		p.cursor += len([]rune(text))
	}
	p.refresh()
}

// noteRejection converts a fired buffer alert into a status flash and
// terminal bell. Returns true when the last edit was rejected.
func (p *Pane) noteRejection() bool {
	if !p.shared.rejected {
		return false
	}
	p.shared.rejected = false
	p.flash = rejectFlash
	fmt.Print("\a")
	return true
}

func (p *Pane) refresh() {
	if !p.ready {
		return
	}
	p.viewport.SetContent(p.ide.Interactions().Buffer().Text())
}

func (p *Pane) View() string {
	if !p.ready {
		return "starting interactions..."
	}

	title := titleStyle.Render("Javelin Interactions")
	if path := p.ide.Unit().Path(); path != "" {
		title += hintStyle.Render("  " + path)
	}

	status := hintStyle.Render("enter: evaluate  ctrl+l: reset  ctrl+c: quit")
	if p.flash != "" {
		status = flashStyle.Render(p.flash)
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(p.viewport.View())
	b.WriteString("\n")
	b.WriteString(statusBarStyle.Width(max(p.width, 0)).Render(status))
	return b.String()
}
