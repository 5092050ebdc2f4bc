// Package tui provides the Bubble Tea narrowing interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/wordsieve/internal/model"
	"github.com/verte-zerg/wordsieve/internal/session"
	statsPkg "github.com/verte-zerg/wordsieve/internal/stats"
	"github.com/verte-zerg/wordsieve/internal/store"
	"github.com/verte-zerg/wordsieve/internal/wordlist"
)

// Model implements the Bubble Tea narrowing UI.
type Model struct {
	config   model.Config
	store    *store.Store
	logger   *slog.Logger
	listPath string
	now      func() time.Time

	sess   session.Session
	input  textinput.Model
	status string
	saved  bool

	width  int
	height int
}

var (
	promptStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	optionStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	candidateStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	matchStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Underline(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs the UI around a started session. st may be nil, in
// which case nothing is saved.
func NewModel(cfg model.Config, st *store.Store, sess session.Session, listPath string, logger *slog.Logger) (*Model, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 64
	input.Focus()

	m := &Model{
		config:   cfg,
		store:    st,
		logger:   logger,
		listPath: listPath,
		now:      time.Now,
		input:    input,
	}
	started, err := sess.Start()
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	m.setSession(started)
	return m, nil
}

// Session returns the current session value.
func (m *Model) Session() session.Session {
	return m.sess
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width/2, 10)
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.saveSession()
			return m, tea.Quit
		case tea.KeyCtrlR:
			m.saveSession()
			m.restart()
			return m, nil
		}
		if m.sess.Done() {
			return m.handleDoneKey(msg)
		}
		return m.handlePromptKey(msg)
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m *Model) handleDoneKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "r", "enter":
		m.restart()
	}
	return m, nil
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	prompt, ok := m.sess.Prompt()
	if !ok {
		return m, nil
	}
	switch prompt.Kind {
	case session.PromptText, session.PromptLetters:
		switch msg.Type {
		case tea.KeyTab:
			m.skip()
			return m, nil
		case tea.KeyEnter:
			m.submitInput(prompt)
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	case session.PromptYesNo:
		switch strings.ToLower(msg.String()) {
		case "y":
			m.answer(session.Answer{Yes: true})
		case "n":
			m.answer(session.Answer{Yes: false})
		case "s":
			m.skip()
		}
	case session.PromptChoice:
		key := msg.String()
		if key == "s" {
			m.skip()
			return m, nil
		}
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			idx := int(key[0] - '1')
			if idx < len(prompt.Question.Options) {
				m.answer(session.Answer{Category: prompt.Question.Options[idx].Category})
			}
		}
	}
	return m, nil
}

func (m *Model) submitInput(prompt session.Prompt) {
	value := m.input.Value()
	if strings.TrimSpace(value) == "" {
		m.skip()
		return
	}
	if prompt.Kind == session.PromptLetters {
		m.answer(session.Answer{Letters: parseLetters(value)})
		return
	}
	m.answer(session.Answer{Text: value})
}

// parseLetters reads one rune per position; '_', '.' and spaces mark an
// unknown letter.
func parseLetters(value string) []rune {
	runes := []rune(wordlist.Normalize(strings.TrimRight(value, " ")))
	out := make([]rune, len(runes))
	for i, r := range runes {
		switch r {
		case '_', '.', ' ':
			out[i] = 0
		default:
			out[i] = r
		}
	}
	return out
}

func (m *Model) answer(a session.Answer) {
	next, err := m.sess.Answer(a)
	if err != nil {
		if errors.Is(err, session.ErrUnexpectedAnswer) {
			m.status = err.Error()
			return
		}
		m.status = fmt.Sprintf("failed to apply answer: %v", err)
		m.logger.Error("answer failed", "err", err)
		return
	}
	m.setSession(next)
}

func (m *Model) skip() {
	next, err := m.sess.Skip()
	if err != nil {
		m.status = fmt.Sprintf("failed to skip: %v", err)
		return
	}
	m.setSession(next)
}

func (m *Model) setSession(s session.Session) {
	m.sess = s
	m.status = ""
	m.input.SetValue("")
	if s.Done() {
		m.saveSession()
	}
}

func (m *Model) restart() {
	next, err := m.sess.Reset().Start()
	if err != nil {
		m.status = fmt.Sprintf("failed to restart: %v", err)
		return
	}
	m.saved = false
	m.setSession(next)
}

// saveSession stores the current run once. Runs without answers are not
// worth keeping.
func (m *Model) saveSession() {
	if m.saved || m.store == nil || len(m.sess.Steps()) == 0 {
		return
	}
	rec, steps := statsPkg.SessionRecords(m.sess, m.config.List, m.listPath, m.now())
	if err := m.store.InsertSession(context.Background(), rec, steps); err != nil {
		logErrf("failed to save session: %v\n", err)
		return
	}
	m.saved = true
	m.logger.Debug("session saved", "session", rec.ID, "steps", len(steps), "remaining", rec.Remaining)
}

// View implements tea.Model.
func (m *Model) View() string {
	contentWidth := 80
	if m.width > 0 {
		contentWidth = max(int(float64(m.width)*0.80), 1)
	}
	header := m.renderPrompt()
	footer := m.renderFooter()

	gridLines := 0
	if m.height > 0 {
		gridLines = max(m.height-lipgloss.Height(header)-4, 1)
	}
	grid := renderCandidates(m.sess.Candidates(), m.sess.Query(), contentWidth, gridLines)

	content := lipgloss.JoinVertical(lipgloss.Left, header, "", grid)
	content = lipgloss.NewStyle().Width(contentWidth).Render(content)
	if m.width == 0 || m.height == 0 {
		return content + "\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderPrompt() string {
	lines := []string{}
	if m.sess.Done() {
		lines = append(lines, promptStyle.Render(doneText(len(m.sess.Candidates()))))
		lines = append(lines, optionStyle.Render("r restart · q quit"))
		return strings.Join(lines, "\n")
	}
	prompt, ok := m.sess.Prompt()
	if !ok {
		return ""
	}
	lines = append(lines, promptStyle.Render(prompt.Text))
	switch prompt.Kind {
	case session.PromptText, session.PromptLetters:
		lines = append(lines, m.input.View())
	case session.PromptYesNo:
		lines = append(lines, optionStyle.Render("y yes · n no · s skip"))
	case session.PromptChoice:
		for i, o := range prompt.Question.Options {
			lines = append(lines, optionStyle.Render(fmt.Sprintf("%d) %s  %s", i+1, o.Label, string(o.Letters))))
		}
		lines = append(lines, optionStyle.Render("s skip"))
	}
	if m.status != "" {
		lines = append(lines, statusStyle.Render(m.status))
	}
	return strings.Join(lines, "\n")
}

func doneText(n int) string {
	switch n {
	case 0:
		return "No matches."
	case 1:
		return "Found it."
	default:
		return fmt.Sprintf("Nothing left to ask; %d candidates remain.", n)
	}
}

func (m *Model) renderFooter() string {
	segments := []string{statsPkg.CountLabel(len(m.sess.Candidates()))}
	if f, ok := m.sess.Feature(); ok {
		segments = append(segments, string(f))
	} else {
		segments = append(segments, m.sess.State().String())
	}
	if m.config.List != "" {
		segments = append(segments, m.config.List)
	}
	segments = append(segments, "tab/s skip · ctrl+r reset · ctrl+c quit")
	return footerStyle.Render(strings.Join(segments, "  "))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
