package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"quiz-widget/internal/app"
)

// Bridge forwards controller output into a running Bubble Tea program.
// It implements app.Renderer and app.Navigator.
type Bridge struct {
	mu      sync.RWMutex
	program *tea.Program
}

// Attach sets the program messages are delivered to. Messages sent before
// Attach are dropped.
func (b *Bridge) Attach(program *tea.Program) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.program = program
}

func (b *Bridge) ShowQuestion(view app.QuestionView) {
	b.send(questionMsg{view: view})
}

func (b *Bridge) ShowTime(remaining int) {
	b.send(timeMsg{remaining: remaining})
}

func (b *Bridge) ShowNotice(text string) {
	b.send(noticeMsg{text: text})
}

func (b *Bridge) ShowMessage(text string) {
	b.send(messageMsg{text: text})
}

func (b *Bridge) DisableAdvance() {
	b.send(disableAdvanceMsg{})
}

func (b *Bridge) Navigate(_ context.Context, route string) {
	b.send(navigateMsg{route: route})
}

func (b *Bridge) send(msg tea.Msg) {
	b.mu.RLock()
	program := b.program
	b.mu.RUnlock()
	if program == nil {
		return
	}
	// Send returns immediately once the program has exited.
	program.Send(msg)
}
