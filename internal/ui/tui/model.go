package tui

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"quiz-widget/internal/app"
	"quiz-widget/internal/domain"
	"quiz-widget/internal/results"
)

const (
	title         = "Dynamic Quiz"
	noticeTimeout = 3 * time.Second
)

// Actions is the part of the quiz controller the UI drives.
type Actions interface {
	Start(ctx context.Context) error
	Select(questionIndex, option int)
	Submit(questionIndex int)
}

type screen int

const (
	screenLoading screen = iota
	screenQuestion
	screenMessage
	screenResults
)

// Model renders the quiz with Bubble Tea. Controller calls are issued as
// commands so a renderer call made under the controller lock never waits on Update.
type Model struct {
	ctx     context.Context
	actions Actions
	scores  results.Store
	keys    keyMap
	help    help.Model
	spinner spinner.Model
	noColor bool

	screen          screen
	view            app.QuestionView
	cursor          int
	selected        int
	remaining       int
	notice          string
	noticeSeq       int
	message         string
	advanceDisabled bool
	result          string
}

// NewModel builds the UI model around a quiz controller.
func NewModel(ctx context.Context, actions Actions, scores results.Store, noColor bool) Model {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	if !noColor {
		s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	}
	return Model{
		ctx:       ctx,
		actions:   actions,
		scores:    scores,
		keys:      defaultKeyMap(),
		help:      help.New(),
		spinner:   s,
		noColor:   noColor,
		screen:    screenLoading,
		selected:  -1,
		remaining: domain.TimeLimitSeconds,
	}
}

// Init fetches the questions and starts the loading spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, startCmd(m.ctx, m.actions))
}

// Update handles controller output and key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = typed.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(typed)
	case questionMsg:
		m.screen = screenQuestion
		m.view = typed.view
		m.cursor = 0
		m.selected = -1
		return m, nil
	case timeMsg:
		m.remaining = typed.remaining
		return m, nil
	case noticeMsg:
		m.noticeSeq++
		m.notice = typed.text
		seq := m.noticeSeq
		return m, tea.Tick(noticeTimeout, func(time.Time) tea.Msg { return clearNoticeMsg{seq: seq} })
	case clearNoticeMsg:
		if typed.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil
	case messageMsg:
		m.screen = screenMessage
		m.message = typed.text
		return m, nil
	case disableAdvanceMsg:
		m.advanceDisabled = true
		return m, nil
	case navigateMsg:
		if typed.route != domain.ResultsRoute {
			return m, nil
		}
		m.screen = screenResults
		m.notice = ""
		return m, resultsCmd(m.ctx, m.scores)
	case resultsMsg:
		m.result = typed.text
		return m, nil
	case spinner.TickMsg:
		if m.screen != screenLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(typed)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if m.screen != screenQuestion {
		return m, nil
	}
	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.view.Options)-1 {
			m.cursor++
		}
		return m, nil
	case key.Matches(msg, m.keys.Choose):
		return m.choose(m.cursor)
	case key.Matches(msg, m.keys.Next):
		if m.advanceDisabled {
			return m, nil
		}
		return m, submitCmd(m.actions, m.view.Index, m.selected)
	case key.Matches(msg, m.keys.Number):
		n, _ := strconv.Atoi(msg.String())
		if n > len(m.view.Options) {
			return m, nil
		}
		m.cursor = n - 1
		return m.choose(n - 1)
	}
	return m, nil
}

func (m Model) choose(option int) (tea.Model, tea.Cmd) {
	if option < 0 || option >= len(m.view.Options) {
		return m, nil
	}
	m.selected = m.view.Options[option].Index
	return m, selectCmd(m.actions, m.view.Index, m.selected)
}

// View renders the current screen.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.style(titleColor, true).Render(title))
	b.WriteString("\n\n")

	switch m.screen {
	case screenLoading:
		b.WriteString(m.spinner.View() + " Loading questions...")
	case screenQuestion:
		b.WriteString(m.renderQuestion())
	case screenMessage:
		b.WriteString(m.style(messageColor, false).Render(m.message))
		if m.advanceDisabled {
			b.WriteString("\n\n" + m.style(mutedColor, false).Render("[ Next ] (disabled)"))
		}
	case screenResults:
		result := m.result
		if result == "" {
			result = "Loading results..."
		}
		b.WriteString(m.style(resultColor, true).Render(result))
	}

	if m.notice != "" {
		b.WriteString("\n\n" + m.style(noticeColor, true).Render(m.notice))
	}
	b.WriteString("\n\n")
	if m.screen == screenQuestion {
		b.WriteString(m.help.View(m.keys))
	} else {
		b.WriteString(m.help.ShortHelpView([]key.Binding{m.keys.Quit}))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderQuestion() string {
	var b strings.Builder
	header := "Question " + strconv.Itoa(m.view.Index+1) + "/" + strconv.Itoa(m.view.Total)
	timer := "Time left: " + strconv.Itoa(m.remaining) + "s"
	timerColor := mutedColor
	if m.remaining <= 5 {
		timerColor = noticeColor
	}
	b.WriteString(m.style(mutedColor, false).Render(header) + "   " + m.style(timerColor, true).Render(timer))
	b.WriteString("\n\n")
	b.WriteString(m.style(questionColor, true).Render(m.view.Text))
	b.WriteString("\n\n")
	for i, opt := range m.view.Options {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		radio := "( )"
		if opt.Index == m.selected {
			radio = "(•)"
		}
		line := cursor + radio + " " + strconv.Itoa(i+1) + ". " + opt.Label
		if i == m.cursor {
			line = m.style(cursorColor, false).Render(line)
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

var (
	titleColor    = lipgloss.Color("33")
	questionColor = lipgloss.Color("255")
	cursorColor   = lipgloss.Color("42")
	mutedColor    = lipgloss.Color("244")
	noticeColor   = lipgloss.Color("220")
	messageColor  = lipgloss.Color("196")
	resultColor   = lipgloss.Color("42")
)

// style returns a colored style unless colors are disabled.
func (m Model) style(color lipgloss.Color, bold bool) lipgloss.Style {
	if m.noColor {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(color).Bold(bold)
}

type (
	questionMsg       struct{ view app.QuestionView }
	timeMsg           struct{ remaining int }
	noticeMsg         struct{ text string }
	clearNoticeMsg    struct{ seq int }
	messageMsg        struct{ text string }
	disableAdvanceMsg struct{}
	navigateMsg       struct{ route string }
	resultsMsg        struct{ text string }
)

// startCmd runs the blocking fetch outside the update loop.
func startCmd(ctx context.Context, actions Actions) tea.Cmd {
	return func() tea.Msg {
		// failures are rendered by the controller itself
		_ = actions.Start(ctx)
		return nil
	}
}

func selectCmd(actions Actions, questionIndex, option int) tea.Cmd {
	return func() tea.Msg {
		actions.Select(questionIndex, option)
		return nil
	}
}

// submitCmd re-applies the selection before submitting so an earlier select
// command still in flight cannot be overtaken.
func submitCmd(actions Actions, questionIndex, selected int) tea.Cmd {
	return func() tea.Msg {
		if selected >= 0 {
			actions.Select(questionIndex, selected)
		}
		actions.Submit(questionIndex)
		return nil
	}
}

func resultsCmd(ctx context.Context, store results.Store) tea.Cmd {
	return func() tea.Msg {
		score, err := results.Load(ctx, store)
		if errors.Is(err, domain.ErrScoreNotFound) {
			return resultsMsg{text: "No score recorded."}
		}
		if err != nil {
			return resultsMsg{text: "Could not read score: " + err.Error()}
		}
		return resultsMsg{text: results.Summary(score)}
	}
}
