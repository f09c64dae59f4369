package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"time"

	app_errors "guillama/backend/internal/errors"
	"guillama/backend/internal/llm"
	"guillama/backend/internal/model"
	"guillama/backend/internal/repository"
)

// MessageStats pairs an assistant reply, by its position in the history,
// with the stats recorded when it finished streaming.
type MessageStats struct {
	Index int                 `json:"index"`
	Stats model.ResponseStats `json:"stats"`
}

// SessionManager owns the open chatroom sessions. Closing a session (for
// example when the user navigates away) cancels its in-flight stream.
type SessionManager struct {
	dir      string
	provider llm.LLMProvider
	opts     SessionOptions
	now      func() time.Time

	createMu sync.Mutex

	mu       sync.Mutex
	sessions map[int64]*ChatSession
}

func NewSessionManager(dir string, provider llm.LLMProvider, opts SessionOptions) *SessionManager {
	return &SessionManager{
		dir:      dir,
		provider: provider,
		opts:     opts,
		now:      time.Now,
		sessions: make(map[int64]*ChatSession),
	}
}

// Create writes a new chatroom file and opens a session on it.
func (m *SessionManager) Create(ctx context.Context, title string) (State, error) {
	m.createMu.Lock()
	defer m.createMu.Unlock()

	store, conv, err := repository.CreateConversation(m.dir, title, m.now())
	if err != nil {
		return State{}, fmt.Errorf("%w: %w", app_errors.ErrInternal, err)
	}
	session, err := NewChatSession(store, m.provider, m.opts)
	if err != nil {
		return State{}, fmt.Errorf("%w: %w", app_errors.ErrInternal, err)
	}

	m.mu.Lock()
	m.sessions[conv.ID] = session
	m.mu.Unlock()

	slog.InfoContext(ctx, "Chatroom created", "chatroom_id", conv.ID, "path", store.Path())
	return session.State(), nil
}

// Open loads an existing chatroom. Opening an already open chatroom returns
// its live session state.
func (m *SessionManager) Open(ctx context.Context, id int64) (State, error) {
	// A file reserved by an in-flight Create is empty until it is written.
	m.createMu.Lock()
	defer m.createMu.Unlock()
	m.mu.Lock()
	defer m.mu.Unlock()

	if session, ok := m.sessions[id]; ok {
		return session.State(), nil
	}

	path := repository.ConversationPath(m.dir, id)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return State{}, fmt.Errorf("%w: chatroom %d", app_errors.ErrNotFound, id)
		}
		return State{}, fmt.Errorf("%w: %w", app_errors.ErrInternal, err)
	}

	session, err := NewChatSession(repository.OpenConversation(m.dir, id, path), m.provider, m.opts)
	if err != nil {
		// The file for that second belongs to another chatroom.
		if errors.Is(err, repository.ErrIdentityMismatch) {
			return State{}, fmt.Errorf("%w: chatroom %d", app_errors.ErrNotFound, id)
		}
		return State{}, fmt.Errorf("%w: %w", app_errors.ErrInternal, err)
	}
	m.sessions[id] = session

	slog.InfoContext(ctx, "Chatroom opened", "chatroom_id", id)
	return session.State(), nil
}

// Get returns the open session for id.
func (m *SessionManager) Get(id int64) (*ChatSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: chatroom %d is not open", app_errors.ErrNotFound, id)
	}
	return session, nil
}

// Close cancels the chatroom's stream, waits for it to settle and forgets
// the session.
func (m *SessionManager) Close(id int64) error {
	m.mu.Lock()
	session, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: chatroom %d is not open", app_errors.ErrNotFound, id)
	}
	session.Close()
	slog.Info("Chatroom closed", "chatroom_id", id)
	return nil
}

// CloseAll closes every open session. Used on shutdown.
func (m *SessionManager) CloseAll() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[int64]*ChatSession)
	m.mu.Unlock()

	var wg sync.WaitGroup
	for _, session := range sessions {
		wg.Add(1)
		go func() {
			defer wg.Done()
			session.Close()
		}()
	}
	wg.Wait()
}

func (m *SessionManager) State(id int64) (State, error) {
	session, err := m.Get(id)
	if err != nil {
		return State{}, err
	}
	return session.State(), nil
}

func (m *SessionManager) SetDraft(id int64, text string) (State, error) {
	return m.apply(id, func(s *ChatSession) error { return s.SetDraft(text) })
}

func (m *SessionManager) SelectModel(id int64, name string) (State, error) {
	return m.apply(id, func(s *ChatSession) error { return s.SelectModel(name) })
}

// SendMessage sends the draft of chatroom id. When text is non-empty it
// replaces the draft first. A chatroom without a selected model is rejected
// before anything is sent.
func (m *SessionManager) SendMessage(ctx context.Context, id int64, text string) (State, error) {
	return m.apply(id, func(s *ChatSession) error {
		if s.State().SelectedModel == "" {
			return fmt.Errorf("%w: no model selected", app_errors.ErrValidation)
		}
		if text != "" {
			if err := s.SetDraft(text); err != nil {
				return err
			}
		}
		return s.SendMessage(ctx)
	})
}

func (m *SessionManager) CancelStream(id int64) (State, error) {
	return m.apply(id, func(s *ChatSession) error {
		s.CancelStream()
		return nil
	})
}

func (m *SessionManager) Rename(id int64, title string) (State, error) {
	return m.apply(id, func(s *ChatSession) error { return s.Rename(title) })
}

func (m *SessionManager) BeginTitleEdit(id int64) (State, error) {
	return m.apply(id, func(s *ChatSession) error { return s.BeginTitleEdit() })
}

func (m *SessionManager) SetTitleDraft(id int64, text string) (State, error) {
	return m.apply(id, func(s *ChatSession) error { return s.SetTitleDraft(text) })
}

func (m *SessionManager) ConfirmTitle(id int64) (State, error) {
	return m.apply(id, func(s *ChatSession) error { return s.ConfirmTitle() })
}

func (m *SessionManager) CancelTitleEdit(id int64) (State, error) {
	return m.apply(id, func(s *ChatSession) error { return s.CancelTitleEdit() })
}

func (m *SessionManager) DismissError(id int64) (State, error) {
	return m.apply(id, func(s *ChatSession) error {
		s.DismissError()
		return nil
	})
}

func (m *SessionManager) ToggleStats(id int64) (State, error) {
	return m.apply(id, func(s *ChatSession) error {
		s.ToggleStats()
		return nil
	})
}

// Stats lists the recorded stats for every assistant reply in chatroom id.
func (m *SessionManager) Stats(id int64) ([]MessageStats, error) {
	session, err := m.Get(id)
	if err != nil {
		return nil, err
	}
	out := []MessageStats{}
	for i, msg := range session.State().Messages {
		if msg.Role != model.RoleAssistant {
			continue
		}
		if stats, ok := session.StatsFor(msg.Content); ok {
			out = append(out, MessageStats{Index: i, Stats: stats})
		}
	}
	return out, nil
}

func (m *SessionManager) Subscribe(id int64) (<-chan State, func(), error) {
	session, err := m.Get(id)
	if err != nil {
		return nil, nil, err
	}
	ch, unsubscribe := session.Subscribe()
	return ch, unsubscribe, nil
}

func (m *SessionManager) apply(id int64, fn func(s *ChatSession) error) (State, error) {
	session, err := m.Get(id)
	if err != nil {
		return State{}, err
	}
	if err := fn(session); err != nil {
		return State{}, err
	}
	return session.State(), nil
}
