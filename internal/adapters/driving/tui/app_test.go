package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomad-labs/nomad-cli/internal/core/domain"
)

func newTestPorts() *Ports {
	return &Ports{
		Bot:     &MockBotService{},
		History: &MockHistoryService{},
	}
}

// typeString feeds runes through the model as key presses.
func typeString(app *App, s string) {
	for _, r := range s {
		app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestNewApp_Success(t *testing.T) {
	ports := newTestPorts()

	app, err := NewApp(ports)

	require.NoError(t, err)
	require.NotNil(t, app)
}

func TestNewApp_InvalidPorts(t *testing.T) {
	ports := &Ports{Bot: nil}

	app, err := NewApp(ports)

	assert.Error(t, err)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")
	result := app.WithContext(ctx)

	assert.Equal(t, app, result)
}

func TestApp_Init(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	cmd := app.Init()

	assert.NotNil(t, cmd)
}

func TestApp_Update_WindowSize(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	model, cmd := app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.Equal(t, app, model)
	assert.Nil(t, cmd)
	assert.True(t, app.ready)
}

func TestApp_Submit_SendsQuestion(t *testing.T) {
	var asked string
	ports := newTestPorts()
	ports.Bot = &MockBotService{
		ProcessUserInputFunc: func(_ context.Context, input string) (domain.TurnResult, error) {
			asked = input
			return domain.TurnResult{Answer: "Rome is lovely in June."}, nil
		},
	}
	app, _ := NewApp(ports)
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	typeString(app, "Where should I go?")
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.True(t, app.waiting)
	require.Len(t, app.lines, 1)
	assert.Equal(t, domain.RoleHuman, app.lines[0].role)
	assert.Equal(t, "Where should I go?", app.lines[0].content)

	// Run the batch and deliver the answer message to the model.
	msg := findAnswerMsg(t, cmd)
	assert.Equal(t, "Where should I go?", asked)

	_, recordCmd := app.Update(msg)

	assert.False(t, app.waiting)
	require.Len(t, app.lines, 2)
	assert.Equal(t, domain.RoleAssistant, app.lines[1].role)
	assert.Equal(t, "Rome is lovely in June.", app.lines[1].content)
	assert.NotNil(t, recordCmd)
}

func TestApp_Submit_EmptyInputIgnored(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	typeString(app, "   ")
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.False(t, app.waiting)
	assert.Empty(t, app.lines)
}

func TestApp_Submit_IgnoredWhileWaiting(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	app.waiting = true

	typeString(app, "hello")
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Empty(t, app.lines)
}

func TestApp_Answer_RejectedTurn(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	app.waiting = true
	app.pending = "something hostile"

	app.Update(answerMsg{result: domain.TurnResult{
		Answer:   "I can only help with questions about our trips and services.",
		Rejected: true,
	}})

	require.Len(t, app.lines, 1)
	assert.True(t, app.lines[0].rejected)
	assert.False(t, app.waiting)
}

func TestApp_Answer_Error(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	app.waiting = true

	app.Update(answerMsg{err: errors.New("pipeline unavailable")})

	assert.False(t, app.waiting)
	assert.Empty(t, app.lines)
	require.Error(t, app.err)
	assert.Contains(t, app.View(), "pipeline unavailable")
}

func TestApp_Answer_NoHistoryService(t *testing.T) {
	app, _ := NewApp(&Ports{Bot: &MockBotService{}})
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	app.waiting = true
	app.pending = "hi"

	_, cmd := app.Update(answerMsg{result: domain.TurnResult{Answer: "hello"}})

	assert.Nil(t, cmd)
	assert.Len(t, app.lines, 1)
}

func TestApp_SidebarToggleAndNavigate(t *testing.T) {
	ports := newTestPorts()
	ports.History = &MockHistoryService{
		SessionsFunc: func(_ context.Context) ([]domain.Session, error) {
			return []domain.Session{
				{ConversationID: "a", Header: "First trip"},
				{ConversationID: "b", Header: "Second trip"},
			}, nil
		},
	}
	app, _ := NewApp(ports)
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.True(t, app.sidebar)
	require.Len(t, app.sessions, 2)

	app.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, app.selected)

	app.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, app.selected)

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, app.sidebar)
}

func TestApp_SidebarOpenSession(t *testing.T) {
	session := domain.Session{
		ConversationID: "a",
		Header:         "Old conversation",
		Turns: []domain.Turn{
			{Role: domain.RoleHuman, Content: "Any trips to Italy?"},
			{Role: domain.RoleAssistant, Content: "Rome, 7 days."},
		},
	}
	ports := newTestPorts()
	ports.History = &MockHistoryService{
		SessionsFunc: func(_ context.Context) ([]domain.Session, error) {
			return []domain.Session{session}, nil
		},
	}
	app, _ := NewApp(ports)
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app.Update(cmd())
	app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, app.sidebar)
	require.NotNil(t, app.session)
	assert.Equal(t, "a", app.session.ConversationID)
	require.Len(t, app.lines, 2)
	assert.Equal(t, "Any trips to Italy?", app.lines[0].content)
}

func TestApp_View_ContainsTranscript(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	app.lines = append(app.lines,
		chatLine{role: domain.RoleHuman, content: "hello"},
		chatLine{role: domain.RoleAssistant, content: "hi there"},
	)
	app.refreshViewport()

	view := app.View()

	assert.Contains(t, view, "hello")
	assert.Contains(t, view, "hi there")
	assert.Contains(t, view, "Nomad Travel Assistant")
}

func TestApp_View_BeforeFirstResize(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	assert.Equal(t, "Loading...", app.View())
}

// findAnswerMsg runs cmd (flattening batches) and returns the first
// answerMsg produced.
func findAnswerMsg(t *testing.T, cmd tea.Cmd) answerMsg {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case answerMsg:
			return msg
		case tea.BatchMsg:
			queue = append(queue, msg...)
		}
	}
	t.Fatal("no answerMsg produced")
	return answerMsg{}
}
