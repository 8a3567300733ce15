package domain

import (
	"time"
	"unicode/utf8"
)

// Turn roles as stored in session history.
const (
	RoleHuman     = "human"
	RoleAssistant = "assistant"
)

// headerLimit is the maximum rune length of a session header before
// truncation.
const headerLimit = 30

// Turn is one message within a session: either the user's question or the
// assistant's answer.
type Turn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"create_date"`
}

// Session is a persisted chat conversation, displayed in the history
// sidebar and stored whole under its conversation id.
type Session struct {
	ConversationID string    `json:"conversation_id"`
	Header         string    `json:"header"`
	CreatedAt      time.Time `json:"create_date"`
	Turns          []Turn    `json:"history"`
}

// AppendTurn adds a turn to the session history.
func (s *Session) AppendTurn(role, content string, at time.Time) {
	s.Turns = append(s.Turns, Turn{Role: role, Content: content, CreatedAt: at})
}

// DeriveHeader truncates the first user message into a sidebar header.
func DeriveHeader(firstMessage string) string {
	if utf8.RuneCountInString(firstMessage) <= headerLimit {
		return firstMessage
	}
	runes := []rune(firstMessage)
	return string(runes[:headerLimit]) + "..."
}

// TurnResult is the outcome of processing one user input through the
// pipeline. Context is exposed for introspection and debugging.
type TurnResult struct {
	// Answer is the assistant's reply: either the generated answer or the
	// canned safety message when the turn was rejected.
	Answer string

	// Context is the assembled context block the generator saw. Empty
	// when the turn was rejected before retrieval.
	Context string

	// Rejected is true when the toxicity gate short-circuited the turn.
	Rejected bool

	// Verdict is the gate's classification of the input.
	Verdict Verdict
}
