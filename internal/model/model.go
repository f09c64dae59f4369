package model

import "time"

// Roles a ChatMessage can carry.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is a single entry in a conversation history.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// PromptRequest is the outbound payload for a chat completion. It is also the
// shape of the "history" block inside a persisted conversation.
type PromptRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
}

// Conversation is a chatroom as it is stored on disk.
type Conversation struct {
	ID            int64         `json:"id"`
	Title         string        `json:"title"`
	SelectedModel *string       `json:"modelInThisChatroom"`
	History       PromptRequest `json:"history"`
}

// Messages returns the ordered message history.
func (c *Conversation) Messages() []ChatMessage {
	return c.History.Messages
}

// LastMessage returns the most recent message, if any.
func (c *Conversation) LastMessage() (ChatMessage, bool) {
	if len(c.History.Messages) == 0 {
		return ChatMessage{}, false
	}
	return c.History.Messages[len(c.History.Messages)-1], true
}

// Clone returns a deep copy so callers can mutate it freely.
func (c *Conversation) Clone() *Conversation {
	out := *c
	if c.SelectedModel != nil {
		m := *c.SelectedModel
		out.SelectedModel = &m
	}
	out.History.Messages = append([]ChatMessage(nil), c.History.Messages...)
	return &out
}

// TokenEvent is a non-terminal stream record carrying one content delta.
type TokenEvent struct {
	Model     string
	CreatedAt time.Time
	Message   ChatMessage
}

// SummaryEvent is the terminal stream record (done == true). Durations are
// reported by the server in nanoseconds.
type SummaryEvent struct {
	Model              string
	CreatedAt          time.Time
	Message            ChatMessage
	DoneReason         string
	TotalDuration      time.Duration
	LoadDuration       time.Duration
	PromptEvalCount    int
	PromptEvalDuration time.Duration
	EvalCount          int
	EvalDuration       time.Duration
}

// StreamEvent is implemented by TokenEvent and SummaryEvent. Done reports the
// discriminant used on the wire.
type StreamEvent interface {
	Done() bool
}

func (TokenEvent) Done() bool   { return false }
func (SummaryEvent) Done() bool { return true }
