package service_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	app_errors "guillama/backend/internal/errors"
	"guillama/backend/internal/llm"
	"guillama/backend/internal/llm/mocks"
	"guillama/backend/internal/model"
	"guillama/backend/internal/repository"
	"guillama/backend/internal/service"
)

type streamFunc func(ctx context.Context, req *model.PromptRequest, h llm.StreamHandler) error

func setupChatSession(t *testing.T, selected string) (*service.ChatSession, repository.ConversationStore, *mocks.MockLLMProvider) {
	store, _, err := repository.CreateConversation(t.TempDir(), "Test chat", time.Now())
	require.NoError(t, err)
	if selected != "" {
		require.NoError(t, store.UpdateMetadata(repository.MetadataUpdate{SelectedModel: &selected}))
	}

	provider := mocks.NewMockLLMProvider(t)
	session, err := service.NewChatSession(store, provider, service.SessionOptions{StatusDuration: 20 * time.Millisecond})
	require.NoError(t, err)
	t.Cleanup(session.Close)

	return session, store, provider
}

func expectStream(provider *mocks.MockLLMProvider, fn streamFunc) *mock.Call {
	return provider.On("Stream", mock.Anything, mock.AnythingOfType("*model.PromptRequest"), mock.AnythingOfType("llm.StreamHandler")).
		Return(func(ctx context.Context, req *model.PromptRequest, h llm.StreamHandler) error {
			return fn(ctx, req, h)
		}).Once()
}

func token(content string) model.TokenEvent {
	return model.TokenEvent{Model: "gemma3:4b", Message: model.ChatMessage{Role: model.RoleAssistant, Content: content}}
}

func TestChatSession_SendMessage(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// ARRANGE
		session, store, provider := setupChatSession(t, "gemma3:4b")
		var sent *model.PromptRequest
		expectStream(provider, func(_ context.Context, req *model.PromptRequest, h llm.StreamHandler) error {
			sent = req
			h.OnToken(token("Hel"))
			h.OnToken(token("lo!"))
			h.OnSummary(model.SummaryEvent{
				Model:        "gemma3:4b",
				CreatedAt:    time.Now(),
				Message:      model.ChatMessage{Role: model.RoleAssistant},
				DoneReason:   "stop",
				EvalCount:    2,
				EvalDuration: time.Second,
			})
			return nil
		})
		require.NoError(t, session.SetDraft("hi"))

		// ACT
		err := session.SendMessage(context.Background())
		session.Wait()

		// ASSERT
		require.NoError(t, err)
		require.NotNil(t, sent)
		assert.Equal(t, "gemma3:4b", sent.Model)
		assert.Equal(t, []model.ChatMessage{{Role: model.RoleUser, Content: "hi"}}, sent.Messages)

		conv, err := store.Read()
		require.NoError(t, err)
		assert.Equal(t, []model.ChatMessage{
			{Role: model.RoleUser, Content: "hi"},
			{Role: model.RoleAssistant, Content: "Hello!"},
		}, conv.Messages())
		assert.Equal(t, "gemma3:4b", conv.History.Model)

		state := session.State()
		assert.Equal(t, service.PhaseIdle, state.Phase)
		assert.Empty(t, state.Draft)
		assert.Empty(t, state.Error)
		assert.Equal(t, conv.Messages(), state.Messages)

		stats, ok := session.StatsFor("Hello!")
		require.True(t, ok)
		assert.Equal(t, 2.0, stats.GenerationSpeed)
		assert.Equal(t, 2, stats.EvalCount)
	})

	t.Run("Failure - blank draft", func(t *testing.T) {
		session, _, _ := setupChatSession(t, "gemma3:4b")
		require.NoError(t, session.SetDraft("   \n"))

		err := session.SendMessage(context.Background())

		assert.ErrorIs(t, err, app_errors.ErrValidation)
	})

	t.Run("Success - no model selected is left to the caller", func(t *testing.T) {
		session, store, provider := setupChatSession(t, "")
		var sent *model.PromptRequest
		expectStream(provider, func(_ context.Context, req *model.PromptRequest, h llm.StreamHandler) error {
			sent = req
			h.OnSummary(model.SummaryEvent{})
			return nil
		})
		require.NoError(t, session.SetDraft("hi"))

		err := session.SendMessage(context.Background())
		session.Wait()

		require.NoError(t, err)
		require.NotNil(t, sent)
		assert.Empty(t, sent.Model)
		conv, readErr := store.Read()
		require.NoError(t, readErr)
		assert.Equal(t, model.ChatMessage{Role: model.RoleUser, Content: "hi"}, conv.Messages()[0])
	})

	t.Run("Failure - stream already in progress", func(t *testing.T) {
		session, store, provider := setupChatSession(t, "gemma3:4b")
		release := make(chan struct{})
		expectStream(provider, func(ctx context.Context, _ *model.PromptRequest, h llm.StreamHandler) error {
			h.OnToken(token("first"))
			<-release
			h.OnSummary(model.SummaryEvent{})
			return nil
		})
		require.NoError(t, session.SetDraft("one"))
		require.NoError(t, session.SendMessage(context.Background()))

		require.NoError(t, session.SetDraft("two"))
		err := session.SendMessage(context.Background())

		assert.ErrorIs(t, err, service.ErrStreamInProgress)
		assert.ErrorIs(t, err, app_errors.ErrConflict)
		assert.Equal(t, "two", session.State().Draft)

		close(release)
		session.Wait()
		conv, readErr := store.Read()
		require.NoError(t, readErr)
		assert.Len(t, conv.Messages(), 2)
		assert.Equal(t, service.PhaseComposing, session.State().Phase)
	})
}

func TestChatSession_StreamFailureKeepsPartialContent(t *testing.T) {
	session, store, provider := setupChatSession(t, "gemma3:4b")
	expectStream(provider, func(_ context.Context, _ *model.PromptRequest, h llm.StreamHandler) error {
		h.OnToken(token("Hel"))
		return llm.ErrStreamClosed
	})
	require.NoError(t, session.SetDraft("hi"))

	require.NoError(t, session.SendMessage(context.Background()))
	session.Wait()

	conv, err := store.Read()
	require.NoError(t, err)
	last, ok := conv.LastMessage()
	require.True(t, ok)
	assert.Equal(t, model.ChatMessage{Role: model.RoleAssistant, Content: "Hel"}, last)

	state := session.State()
	assert.Equal(t, service.PhaseIdle, state.Phase)
	assert.NotEmpty(t, state.Error)
	_, ok = session.StatsFor("Hel")
	assert.False(t, ok)

	session.DismissError()
	assert.Empty(t, session.State().Error)
}

func TestChatSession_CancelStream(t *testing.T) {
	session, store, provider := setupChatSession(t, "gemma3:4b")
	started := make(chan struct{})
	expectStream(provider, func(ctx context.Context, _ *model.PromptRequest, h llm.StreamHandler) error {
		h.OnToken(token("partial"))
		close(started)
		<-ctx.Done()
		return context.Cause(ctx)
	})
	require.NoError(t, session.SetDraft("hi"))
	require.NoError(t, session.SendMessage(context.Background()))
	<-started
	assert.True(t, session.IsStreaming())

	session.CancelStream()
	session.Wait()

	assert.False(t, session.IsStreaming())
	assert.Empty(t, session.State().Error, "cancellation is not reported as an error")
	conv, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, "partial", conv.Messages()[1].Content)
}

func TestChatSession_CloseCancelsStream(t *testing.T) {
	session, _, provider := setupChatSession(t, "gemma3:4b")
	started := make(chan struct{})
	expectStream(provider, func(ctx context.Context, _ *model.PromptRequest, _ llm.StreamHandler) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})
	require.NoError(t, session.SetDraft("hi"))
	require.NoError(t, session.SendMessage(context.Background()))
	<-started

	session.Close()

	assert.False(t, session.IsStreaming())
	assert.ErrorIs(t, session.SetDraft("more"), service.ErrSessionClosed)
}

func TestChatSession_RequestContextDoesNotCancelStream(t *testing.T) {
	session, store, provider := setupChatSession(t, "gemma3:4b")
	reqCtx, cancelReq := context.WithCancel(context.Background())
	proceed := make(chan struct{})
	expectStream(provider, func(ctx context.Context, _ *model.PromptRequest, h llm.StreamHandler) error {
		<-proceed
		if err := ctx.Err(); err != nil {
			return err
		}
		h.OnToken(token("still here"))
		h.OnSummary(model.SummaryEvent{})
		return nil
	})
	require.NoError(t, session.SetDraft("hi"))
	require.NoError(t, session.SendMessage(reqCtx))

	cancelReq()
	close(proceed)
	session.Wait()

	conv, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, "still here", conv.Messages()[1].Content)
}

func TestChatSession_DraftPhases(t *testing.T) {
	session, _, _ := setupChatSession(t, "gemma3:4b")
	assert.Equal(t, service.PhaseIdle, session.State().Phase)

	require.NoError(t, session.SetDraft("typing"))
	assert.Equal(t, service.PhaseComposing, session.State().Phase)

	require.NoError(t, session.SetDraft(""))
	assert.Equal(t, service.PhaseIdle, session.State().Phase)
}

func TestChatSession_SelectModel(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		session, store, _ := setupChatSession(t, "")

		require.NoError(t, session.SelectModel("llama3.2:3b"))

		state := session.State()
		assert.Equal(t, "llama3.2:3b", state.SelectedModel)
		assert.Equal(t, service.StatusUpdated, state.StatusMessage)
		conv, err := store.Read()
		require.NoError(t, err)
		require.NotNil(t, conv.SelectedModel)
		assert.Equal(t, "llama3.2:3b", *conv.SelectedModel)

		assert.Eventually(t, func() bool { return session.State().StatusMessage == "" }, time.Second, 5*time.Millisecond)
	})

	t.Run("Failure - empty name", func(t *testing.T) {
		session, _, _ := setupChatSession(t, "")
		assert.ErrorIs(t, session.SelectModel(" "), app_errors.ErrValidation)
	})
}

func TestChatSession_TitleEditing(t *testing.T) {
	t.Run("Success - confirm", func(t *testing.T) {
		session, store, _ := setupChatSession(t, "")

		require.NoError(t, session.BeginTitleEdit())
		state := session.State()
		assert.True(t, state.IsEditingTitle)
		assert.Equal(t, "Test chat", state.TitleDraft)

		require.NoError(t, session.SetTitleDraft("  Renamed  "))
		require.NoError(t, session.ConfirmTitle())

		state = session.State()
		assert.False(t, state.IsEditingTitle)
		assert.Equal(t, "Renamed", state.Title)
		assert.Equal(t, service.StatusUpdated, state.StatusMessage)
		conv, err := store.Read()
		require.NoError(t, err)
		assert.Equal(t, "Renamed", conv.Title)
	})

	t.Run("Success - cancel keeps title", func(t *testing.T) {
		session, _, _ := setupChatSession(t, "")
		require.NoError(t, session.BeginTitleEdit())
		require.NoError(t, session.SetTitleDraft("Discarded"))

		require.NoError(t, session.CancelTitleEdit())

		state := session.State()
		assert.False(t, state.IsEditingTitle)
		assert.Equal(t, "Test chat", state.Title)
	})

	t.Run("Success - toggle opens then saves", func(t *testing.T) {
		session, _, _ := setupChatSession(t, "")

		require.NoError(t, session.ToggleTitleEdit())
		require.NoError(t, session.SetTitleDraft("Toggled"))
		require.NoError(t, session.ToggleTitleEdit())

		assert.Equal(t, "Toggled", session.State().Title)
	})

	t.Run("Failure - draft outside edit mode", func(t *testing.T) {
		session, _, _ := setupChatSession(t, "")
		assert.ErrorIs(t, session.SetTitleDraft("x"), app_errors.ErrConflict)
		assert.ErrorIs(t, session.ConfirmTitle(), app_errors.ErrConflict)
	})

	t.Run("Failure - empty title", func(t *testing.T) {
		session, _, _ := setupChatSession(t, "")
		require.NoError(t, session.BeginTitleEdit())
		require.NoError(t, session.SetTitleDraft(" "))

		assert.ErrorIs(t, session.ConfirmTitle(), app_errors.ErrValidation)
		assert.True(t, session.State().IsEditingTitle)
	})
}

func TestChatSession_ToggleStats(t *testing.T) {
	session, _, _ := setupChatSession(t, "")
	assert.True(t, session.ToggleStats())
	assert.False(t, session.ToggleStats())
}

func TestChatSession_Subscribe(t *testing.T) {
	session, _, _ := setupChatSession(t, "")

	updates, unsubscribe := session.Subscribe()
	initial := <-updates
	assert.Equal(t, "Test chat", initial.Title)

	require.NoError(t, session.SetDraft("a"))
	require.NoError(t, session.SetDraft("ab"))
	require.NoError(t, session.SetDraft("abc"))

	latest := <-updates
	assert.Equal(t, "abc", latest.Draft, "only the latest snapshot is kept for a slow reader")
	assert.Equal(t, service.PhaseComposing, latest.Phase)

	unsubscribe()
	_, open := <-updates
	assert.False(t, open)
	unsubscribe()
}

// A full round through the real client against a fake model server.
func TestChatSession_WithOllamaServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/x-ndjson")
		_, _ = fmt.Fprintln(w, `{"model":"gemma3:4b","message":{"role":"assistant","content":"Hel"},"done":false}`)
		_, _ = fmt.Fprintln(w, `{"model":"gemma3:4b","message":{"role":"assistant","content":"lo"},"done":false}`)
		_, _ = fmt.Fprintln(w, `{not json`)
		_, _ = fmt.Fprintln(w, `{"model":"gemma3:4b","message":{"role":"assistant","content":"!"},"done":false}`)
		_, _ = fmt.Fprintln(w, `{"model":"gemma3:4b","created_at":"2025-03-04T10:11:12Z","message":{"role":"assistant","content":""},"done":true,"done_reason":"stop","eval_count":3,"eval_duration":1500000000}`)
	}))
	defer srv.Close()

	store, _, err := repository.CreateConversation(t.TempDir(), "", time.Now())
	require.NoError(t, err)
	selected := "gemma3:4b"
	require.NoError(t, store.UpdateMetadata(repository.MetadataUpdate{SelectedModel: &selected}))

	session, err := service.NewChatSession(store, llm.NewOllamaProvider(llm.DefaultProviderConfig(srv.URL)), service.SessionOptions{})
	require.NoError(t, err)
	defer session.Close()

	require.NoError(t, session.SetDraft("hi"))
	require.NoError(t, session.SendMessage(context.Background()))
	session.Wait()

	state := session.State()
	assert.Empty(t, state.Error)
	require.Len(t, state.Messages, 2)
	assert.Equal(t, "Hello!", state.Messages[1].Content)

	stats, ok := session.StatsFor("Hello!")
	require.True(t, ok)
	assert.Equal(t, 2.0, stats.GenerationSpeed)
	assert.Equal(t, "1.500 s", stats.EvalDuration)
}
