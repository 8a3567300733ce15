package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nomad-labs/nomad-cli/internal/core/domain"
)

const sidebarWidth = 34

// chatLine is one rendered transcript entry.
type chatLine struct {
	role     string
	content  string
	rejected bool
}

// App is the chat application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *Styles

	viewport  viewport.Model
	input     textinput.Model
	spin      spinner.Model
	session   *domain.Session
	lines     []chatLine
	sessions  []domain.Session
	selected  int
	sidebar   bool
	waiting   bool
	pending   string
	err       error
	width     int
	height    int
	ready     bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new chat application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	input := textinput.New()
	input.Placeholder = "Ask about trips, policies, payments..."
	input.Focus()
	input.CharLimit = 500

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return &App{
		ports:  ports,
		ctx:    context.Background(),
		styles: DefaultStyles(),
		input:  input,
		spin:   spin,
	}, nil
}

// WithContext sets the context used for service calls.
func (a *App) WithContext(ctx context.Context) *App {
	if ctx != nil {
		a.ctx = ctx
	}
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.loadSessions())
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		a.ready = true
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case answerMsg:
		return a.handleAnswer(msg)

	case sessionsLoadedMsg:
		if msg.err == nil {
			a.sessions = msg.sessions
			if a.selected >= len(a.sessions) {
				a.selected = 0
			}
		}
		return a, nil

	case turnRecordedMsg:
		// Persistence failures must not interrupt the conversation.
		if msg.err != nil {
			a.err = msg.err
		}
		return a, a.loadSessions()

	case spinner.TickMsg:
		if !a.waiting {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit

	case "esc":
		if a.sidebar {
			a.sidebar = false
			return a, nil
		}
		return a, tea.Quit

	case "tab":
		a.sidebar = !a.sidebar
		if a.sidebar {
			return a, a.loadSessions()
		}
		return a, nil

	case "up", "k":
		if a.sidebar && a.selected > 0 {
			a.selected--
			return a, nil
		}

	case "down", "j":
		if a.sidebar && a.selected < len(a.sessions)-1 {
			a.selected++
			return a, nil
		}

	case "enter":
		if a.sidebar {
			a.openSelectedSession()
			return a, nil
		}
		return a.submit()
	}

	if a.sidebar {
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// submit sends the typed question through the pipeline.
func (a *App) submit() (tea.Model, tea.Cmd) {
	question := strings.TrimSpace(a.input.Value())
	if question == "" || a.waiting {
		return a, nil
	}

	if a.session == nil && a.ports.History != nil {
		a.session = a.ports.History.NewSession(question)
	}

	a.lines = append(a.lines, chatLine{role: domain.RoleHuman, content: question})
	a.input.Reset()
	a.waiting = true
	a.pending = question
	a.err = nil
	a.refreshViewport()

	return a, tea.Batch(a.spin.Tick, a.ask(question))
}

func (a *App) handleAnswer(msg answerMsg) (tea.Model, tea.Cmd) {
	a.waiting = false
	question := a.pending
	a.pending = ""

	if msg.err != nil {
		a.err = msg.err
		a.refreshViewport()
		return a, nil
	}

	a.lines = append(a.lines, chatLine{
		role:     domain.RoleAssistant,
		content:  msg.result.Answer,
		rejected: msg.result.Rejected,
	})
	a.refreshViewport()

	if a.ports.History != nil && a.session != nil {
		return a, a.recordTurn(question, msg.result.Answer)
	}
	return a, nil
}

// openSelectedSession loads a stored transcript into the chat pane.
func (a *App) openSelectedSession() {
	if a.selected >= len(a.sessions) {
		return
	}
	session := a.sessions[a.selected]
	a.session = &session
	a.lines = a.lines[:0]
	for _, turn := range session.Turns {
		a.lines = append(a.lines, chatLine{role: turn.Role, content: turn.Content})
	}
	a.sidebar = false
	a.refreshViewport()
}

// Commands.

func (a *App) ask(question string) tea.Cmd {
	return func() tea.Msg {
		result, err := a.ports.Bot.ProcessUserInput(a.ctx, question)
		return answerMsg{result: result, err: err}
	}
}

func (a *App) loadSessions() tea.Cmd {
	if a.ports.History == nil {
		return nil
	}
	return func() tea.Msg {
		sessions, err := a.ports.History.Sessions(a.ctx)
		return sessionsLoadedMsg{sessions: sessions, err: err}
	}
}

func (a *App) recordTurn(question, answer string) tea.Cmd {
	return func() tea.Msg {
		err := a.ports.History.RecordTurn(a.ctx, a.session, question, answer)
		return turnRecordedMsg{err: err}
	}
}

// Layout.

func (a *App) resize() {
	contentWidth := a.width
	if a.sidebar {
		contentWidth -= sidebarWidth
	}
	// Title, input box and help line take the rest.
	a.viewport = viewport.New(contentWidth-2, a.height-6)
	a.input.Width = contentWidth - 6
	a.refreshViewport()
}

func (a *App) refreshViewport() {
	if a.viewport.Width <= 0 {
		return
	}
	a.viewport.SetContent(a.renderTranscript())
	a.viewport.GotoBottom()
}

func (a *App) renderTranscript() string {
	var b strings.Builder
	for _, line := range a.lines {
		label := a.styles.BotLabel.Render("nomad")
		if line.role == domain.RoleHuman {
			label = a.styles.UserLabel.Render("you")
		}
		content := line.content
		if line.rejected {
			content = a.styles.Rejection.Render(content)
		}
		b.WriteString(label)
		b.WriteString("  ")
		b.WriteString(content)
		b.WriteString("\n\n")
	}
	if a.err != nil {
		b.WriteString(a.styles.Error.Render("error: " + a.err.Error()))
		b.WriteString("\n")
	}
	return b.String()
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	title := a.styles.Title.Render("Nomad Travel Assistant")

	status := ""
	if a.waiting {
		status = a.spin.View() + " thinking..."
	}

	chat := lipgloss.JoinVertical(lipgloss.Left,
		title,
		a.viewport.View(),
		status,
		a.styles.InputBox.Render(a.input.View()),
		a.styles.Help.Render("enter send · tab history · esc quit"),
	)

	if !a.sidebar {
		return chat
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, a.renderSidebar(), chat)
}

func (a *App) renderSidebar() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("History"))
	b.WriteString("\n\n")

	if len(a.sessions) == 0 {
		b.WriteString(a.styles.Help.Render("no stored sessions"))
	}
	for i := range a.sessions {
		style := a.styles.Unselected
		prefix := "  "
		if i == a.selected {
			style = a.styles.Selected
			prefix = "> "
		}
		b.WriteString(style.Render(prefix + a.sessions[i].Header))
		b.WriteString("\n")
	}

	return a.styles.Sidebar.
		Width(sidebarWidth - 2).
		Height(a.height - 2).
		Render(b.String())
}
