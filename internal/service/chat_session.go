package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	app_errors "guillama/backend/internal/errors"
	"guillama/backend/internal/llm"
	"guillama/backend/internal/metrics"
	"guillama/backend/internal/model"
	"guillama/backend/internal/repository"
)

// StatusUpdated is shown briefly after the title or model of a chatroom changes.
const StatusUpdated = "Chatroom updated!"

// Phase is where a chatroom is in its send/receive cycle.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseComposing Phase = "composing"
	PhaseAwaiting  Phase = "awaiting"
	PhaseStreaming Phase = "streaming"
)

var (
	// ErrStreamInProgress rejects a send while the previous reply is still arriving.
	ErrStreamInProgress = fmt.Errorf("%w: a response is still streaming", app_errors.ErrConflict)
	// ErrSessionClosed is returned by every operation after Close.
	ErrSessionClosed = fmt.Errorf("%w: chatroom session is closed", app_errors.ErrNotFound)
)

// State is an immutable snapshot of a chatroom as the UI should render it.
type State struct {
	ChatroomID     int64               `json:"chatroom_id"`
	Phase          Phase               `json:"phase"`
	Title          string              `json:"title"`
	IsEditingTitle bool                `json:"is_editing_title"`
	TitleDraft     string              `json:"title_draft,omitempty"`
	SelectedModel  string              `json:"selected_model"`
	Draft          string              `json:"draft"`
	Messages       []model.ChatMessage `json:"messages"`
	StatusMessage  string              `json:"status_message,omitempty"`
	Error          string              `json:"error,omitempty"`
	ShowStats      bool                `json:"show_stats"`
}

func (s State) clone() State {
	s.Messages = append([]model.ChatMessage(nil), s.Messages...)
	return s
}

// SessionOptions tunes a ChatSession. Zero values fall back to defaults.
type SessionOptions struct {
	StatusDuration time.Duration
	Location       *time.Location
}

// ChatSession drives a single chatroom: it owns the compose buffer, the
// in-flight stream and the per-response stats, and publishes a State
// snapshot after every change.
type ChatSession struct {
	store    repository.ConversationStore
	provider llm.LLMProvider
	opts     SessionOptions

	mu          sync.Mutex
	state       State
	stats       map[string]model.ResponseStats
	streaming   bool
	cancel      context.CancelFunc
	closed      bool
	subscribers map[uuid.UUID]chan State
	statusTimer *time.Timer
	statusGen   uint64

	wg sync.WaitGroup
}

// NewChatSession loads the conversation behind store and returns an idle session.
func NewChatSession(store repository.ConversationStore, provider llm.LLMProvider, opts SessionOptions) (*ChatSession, error) {
	if opts.StatusDuration <= 0 {
		opts.StatusDuration = time.Second
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}

	conv, err := store.Read()
	if err != nil {
		return nil, fmt.Errorf("could not load chatroom %d: %w", store.ID(), err)
	}

	s := &ChatSession{
		store:       store,
		provider:    provider,
		opts:        opts,
		stats:       make(map[string]model.ResponseStats),
		subscribers: make(map[uuid.UUID]chan State),
		state: State{
			ChatroomID: conv.ID,
			Phase:      PhaseIdle,
			Title:      conv.Title,
			Messages:   conv.Messages(),
		},
	}
	if conv.SelectedModel != nil {
		s.state.SelectedModel = *conv.SelectedModel
	}
	return s, nil
}

func (s *ChatSession) ID() int64 { return s.store.ID() }

// State returns the current snapshot.
func (s *ChatSession) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// SetDraft replaces the compose buffer.
func (s *ChatSession) SetDraft(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	s.state.Draft = text
	if !s.streaming {
		s.state.Phase = idleOrComposing(text)
	}
	s.publishLocked()
	return nil
}

// SelectModel persists the model used for the next sends in this chatroom.
func (s *ChatSession) SelectModel(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: model name is required", app_errors.ErrValidation)
	}
	if err := s.checkOpen(); err != nil {
		return err
	}
	if err := s.store.UpdateMetadata(repository.MetadataUpdate{SelectedModel: &name}); err != nil {
		return fmt.Errorf("could not save selected model: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SelectedModel = name
	s.showStatusLocked(StatusUpdated)
	slog.Info("Model selected", "chatroom_id", s.state.ChatroomID, "model", name)
	return nil
}

// SendMessage commits the draft as a user message and starts streaming the
// reply in the background. It returns once the request has been handed off;
// use Wait or Subscribe to follow the reply. Checking that a model is selected
// is left to the caller.
func (s *ChatSession) SendMessage(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.streaming {
		s.mu.Unlock()
		return ErrStreamInProgress
	}
	draft := s.state.Draft
	text := strings.TrimSpace(draft)
	if text == "" {
		s.mu.Unlock()
		return fmt.Errorf("%w: message is empty", app_errors.ErrValidation)
	}
	modelName := s.state.SelectedModel

	streamCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.streaming = true
	s.cancel = cancel
	s.wg.Add(1)
	s.state.Draft = ""
	s.state.Phase = PhaseAwaiting
	s.state.Error = ""
	s.publishLocked()
	s.mu.Unlock()

	req, err := s.prepare(text, modelName)
	if err != nil {
		cancel()
		s.mu.Lock()
		s.streaming = false
		s.cancel = nil
		s.state.Draft = draft
		s.state.Phase = idleOrComposing(draft)
		s.state.Error = "Could not save message."
		s.publishLocked()
		s.mu.Unlock()
		s.wg.Done()
		return fmt.Errorf("%w: %w", app_errors.ErrInternal, err)
	}

	streamID := uuid.NewString()
	slog.InfoContext(ctx, "Starting chat stream", "chatroom_id", s.ID(), "model", modelName, "stream_id", streamID, "messages", len(req.Messages))
	metrics.StreamStarted(modelName)
	go s.run(streamCtx, cancel, streamID, req)
	return nil
}

// prepare persists the user turn and the empty assistant placeholder and
// builds the outbound request from the history in between.
func (s *ChatSession) prepare(text, modelName string) (*model.PromptRequest, error) {
	if err := s.store.AppendMessage(model.ChatMessage{Role: model.RoleUser, Content: text}); err != nil {
		return nil, fmt.Errorf("could not append user message: %w", err)
	}
	conv, err := s.store.Read()
	if err != nil {
		return nil, fmt.Errorf("could not reload conversation: %w", err)
	}
	req := &model.PromptRequest{Model: modelName, Messages: conv.Clone().Messages()}

	if err := s.store.AppendMessage(model.ChatMessage{Role: model.RoleAssistant}); err != nil {
		return nil, fmt.Errorf("could not append assistant placeholder: %w", err)
	}
	if err := s.store.UpdateMetadata(repository.MetadataUpdate{HistoryModel: &modelName}); err != nil {
		return nil, fmt.Errorf("could not record history model: %w", err)
	}
	s.reload(PhaseAwaiting)
	return req, nil
}

func (s *ChatSession) run(ctx context.Context, cancel context.CancelFunc, streamID string, req *model.PromptRequest) {
	defer s.wg.Done()
	defer cancel()

	log := slog.With("chatroom_id", s.ID(), "model", req.Model, "stream_id", streamID)
	var running strings.Builder

	err := s.provider.Stream(ctx, req, llm.StreamHandler{
		OnToken: func(ev model.TokenEvent) {
			metrics.TokenReceived(req.Model)
			running.WriteString(ev.Message.Content)
			if err := s.store.ReplaceLastAssistantContent(running.String()); err != nil {
				log.Warn("Could not persist streamed content", "error", err)
			}
			s.reload(PhaseStreaming)
		},
		OnSummary: func(ev model.SummaryEvent) {
			if ev.Message.Content != "" {
				running.WriteString(ev.Message.Content)
				if err := s.store.ReplaceLastAssistantContent(running.String()); err != nil {
					log.Warn("Could not persist final content", "error", err)
				}
			}
			stats := model.NewResponseStats(ev, running.String(), s.opts.Location)
			metrics.ObserveGenerationSpeed(req.Model, stats.GenerationSpeed)

			s.mu.Lock()
			s.stats[stats.MessageHash] = stats
			s.mu.Unlock()
			log.Info("Chat stream completed", "eval_count", ev.EvalCount, "tokens_per_second", stats.GenerationSpeed, "done_reason", ev.DoneReason)
		},
		OnMalformed: func(_ []byte, err error) {
			log.Debug("Malformed stream line skipped", "error", err)
		},
	})

	outcome := metrics.OutcomeCompleted
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		outcome = metrics.OutcomeCancelled
		log.Info("Chat stream cancelled", "received_chars", running.Len())
	default:
		outcome = metrics.OutcomeFailed
		log.Error("Chat stream failed", "error", err, "received_chars", running.Len())
	}
	metrics.StreamFinished(req.Model, outcome)

	conv, readErr := s.store.Read()

	s.mu.Lock()
	defer s.mu.Unlock()
	if readErr == nil {
		s.state.Messages = conv.Messages()
	}
	s.streaming = false
	s.cancel = nil
	s.state.Phase = idleOrComposing(s.state.Draft)
	if outcome == metrics.OutcomeFailed {
		s.state.Error = errorNotice(err)
	}
	s.publishLocked()
}

// reload refreshes the message list from the store. A failed read keeps the
// previous list.
func (s *ChatSession) reload(phase Phase) {
	conv, err := s.store.Read()
	if err != nil {
		slog.Warn("Could not reload conversation", "chatroom_id", s.ID(), "error", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		s.state.Messages = conv.Messages()
	}
	if s.streaming {
		s.state.Phase = phase
	}
	s.publishLocked()
}

// Wait blocks until the in-flight stream, if any, has finished.
func (s *ChatSession) Wait() {
	s.wg.Wait()
}

// CancelStream stops the in-flight stream. Content received so far stays in
// the conversation file.
func (s *ChatSession) CancelStream() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
}

// IsStreaming reports whether a reply is in flight.
func (s *ChatSession) IsStreaming() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.streaming
}

// Close cancels any in-flight stream, waits for it and ends all subscriptions.
func (s *ChatSession) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.cancel != nil {
		s.cancel()
	}
	if s.statusTimer != nil {
		s.statusTimer.Stop()
	}
	s.mu.Unlock()

	s.wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, ch := range s.subscribers {
		close(ch)
		delete(s.subscribers, id)
	}
}

// BeginTitleEdit enters title edit mode with the current title in the buffer.
func (s *ChatSession) BeginTitleEdit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	s.state.IsEditingTitle = true
	s.state.TitleDraft = s.state.Title
	s.publishLocked()
	return nil
}

func (s *ChatSession) SetTitleDraft(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if !s.state.IsEditingTitle {
		return fmt.Errorf("%w: title is not being edited", app_errors.ErrConflict)
	}
	s.state.TitleDraft = text
	s.publishLocked()
	return nil
}

// ConfirmTitle saves the title buffer and leaves edit mode.
func (s *ChatSession) ConfirmTitle() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if !s.state.IsEditingTitle {
		s.mu.Unlock()
		return fmt.Errorf("%w: title is not being edited", app_errors.ErrConflict)
	}
	draft := s.state.TitleDraft
	s.mu.Unlock()

	return s.saveTitle(draft)
}

func (s *ChatSession) CancelTitleEdit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	s.state.IsEditingTitle = false
	s.state.TitleDraft = ""
	s.publishLocked()
	return nil
}

// ToggleTitleEdit mirrors the edit button: it opens the editor, or saves
// when the editor is already open.
func (s *ChatSession) ToggleTitleEdit() error {
	s.mu.Lock()
	editing := s.state.IsEditingTitle
	s.mu.Unlock()
	if editing {
		return s.ConfirmTitle()
	}
	return s.BeginTitleEdit()
}

// Rename sets the title directly, bypassing edit mode.
func (s *ChatSession) Rename(title string) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	return s.saveTitle(title)
}

func (s *ChatSession) saveTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("%w: title cannot be empty", app_errors.ErrValidation)
	}
	if err := s.store.UpdateMetadata(repository.MetadataUpdate{Title: &title}); err != nil {
		return fmt.Errorf("could not save title: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Title = title
	s.state.IsEditingTitle = false
	s.state.TitleDraft = ""
	s.showStatusLocked(StatusUpdated)
	return nil
}

// StatsFor looks up the stats recorded for an assistant reply by its content.
func (s *ChatSession) StatsFor(content string) (model.ResponseStats, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats, ok := s.stats[model.ContentHash(content)]
	return stats, ok
}

func (s *ChatSession) DismissError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Error == "" {
		return
	}
	s.state.Error = ""
	s.publishLocked()
}

// ToggleStats flips the visibility of the stats panel and returns the new value.
func (s *ChatSession) ToggleStats() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ShowStats = !s.state.ShowStats
	s.publishLocked()
	return s.state.ShowStats
}

// Subscribe returns a channel of State snapshots, starting with the current
// one. A slow reader only ever sees the latest snapshot. The returned func
// ends the subscription.
func (s *ChatSession) Subscribe() (<-chan State, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan State, 1)
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	id := uuid.New()
	s.subscribers[id] = ch
	ch <- s.state.clone()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if _, ok := s.subscribers[id]; ok {
				delete(s.subscribers, id)
				close(ch)
			}
		})
	}
}

// publishLocked hands the current snapshot to every subscriber without
// blocking, replacing any snapshot the subscriber has not read yet.
func (s *ChatSession) publishLocked() {
	snapshot := s.state.clone()
	for _, ch := range s.subscribers {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snapshot:
		default:
		}
	}
}

func (s *ChatSession) showStatusLocked(msg string) {
	s.statusGen++
	gen := s.statusGen
	s.state.StatusMessage = msg
	if s.statusTimer != nil {
		s.statusTimer.Stop()
	}
	s.statusTimer = time.AfterFunc(s.opts.StatusDuration, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.statusGen != gen || s.closed {
			return
		}
		s.state.StatusMessage = ""
		s.publishLocked()
	})
	s.publishLocked()
}

func (s *ChatSession) checkOpen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	return nil
}

func idleOrComposing(draft string) Phase {
	if strings.TrimSpace(draft) == "" {
		return PhaseIdle
	}
	return PhaseComposing
}

// errorNotice turns a stream failure into the message shown to the user.
func errorNotice(err error) string {
	var transportErr *llm.TransportError
	var serverErr *llm.ServerError
	switch {
	case errors.As(err, &serverErr):
		return "The model returned an error: " + serverErr.Message
	case errors.As(err, &transportErr):
		return fmt.Sprintf("The model server answered with status %d.", transportErr.StatusCode)
	case errors.Is(err, llm.ErrReadTimeout), errors.Is(err, context.DeadlineExceeded):
		return "The model took too long to respond."
	case errors.Is(err, llm.ErrStreamClosed):
		return "The connection closed before the response finished."
	default:
		return "Could not reach the model server."
	}
}
