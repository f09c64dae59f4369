package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app_errors "guillama/backend/internal/errors"
	"guillama/backend/internal/llm"
	"guillama/backend/internal/llm/mocks"
	"guillama/backend/internal/model"
	"guillama/backend/internal/repository"
	"guillama/backend/internal/service"
)

func setupSessionManager(t *testing.T) (*service.SessionManager, string, *mocks.MockLLMProvider) {
	dir := t.TempDir()
	provider := mocks.NewMockLLMProvider(t)
	manager := service.NewSessionManager(dir, provider, service.SessionOptions{StatusDuration: 10 * time.Millisecond})
	t.Cleanup(manager.CloseAll)
	return manager, dir, provider
}

func TestSessionManager_Create(t *testing.T) {
	ctx := context.Background()
	manager, dir, _ := setupSessionManager(t)

	state, err := manager.Create(ctx, "Rust questions")
	require.NoError(t, err)

	assert.Equal(t, "Rust questions", state.Title)
	assert.Equal(t, service.PhaseIdle, state.Phase)
	assert.Empty(t, state.Messages)
	assert.FileExists(t, repository.ConversationPath(dir, state.ChatroomID))

	_, err = manager.Get(state.ChatroomID)
	assert.NoError(t, err)
}

func TestSessionManager_Open(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - loads stored chatroom", func(t *testing.T) {
		manager, dir, _ := setupSessionManager(t)
		store, conv, err := repository.CreateConversation(dir, "Stored", time.UnixMilli(1741083072000))
		require.NoError(t, err)
		require.NoError(t, store.AppendMessage(model.ChatMessage{Role: model.RoleUser, Content: "hi"}))

		state, err := manager.Open(ctx, conv.ID)

		require.NoError(t, err)
		assert.Equal(t, "Stored", state.Title)
		assert.Equal(t, []model.ChatMessage{{Role: model.RoleUser, Content: "hi"}}, state.Messages)
	})

	t.Run("Failure - file for that second holds another chatroom", func(t *testing.T) {
		manager, dir, _ := setupSessionManager(t)
		_, conv, err := repository.CreateConversation(dir, "Stored", time.UnixMilli(1741083072000))
		require.NoError(t, err)

		_, err = manager.Open(ctx, conv.ID+500)

		assert.ErrorIs(t, err, app_errors.ErrNotFound)
		assert.NotErrorIs(t, err, app_errors.ErrInternal)
	})

	t.Run("Failure - unknown chatroom", func(t *testing.T) {
		manager, _, _ := setupSessionManager(t)

		_, err := manager.Open(ctx, 1741083072000)

		assert.ErrorIs(t, err, app_errors.ErrNotFound)
	})
}

func TestSessionManager_CloseForgetsSession(t *testing.T) {
	ctx := context.Background()
	manager, _, _ := setupSessionManager(t)
	state, err := manager.Create(ctx, "")
	require.NoError(t, err)

	require.NoError(t, manager.Close(state.ChatroomID))

	_, err = manager.Get(state.ChatroomID)
	assert.ErrorIs(t, err, app_errors.ErrNotFound)
	assert.ErrorIs(t, manager.Close(state.ChatroomID), app_errors.ErrNotFound)

	reopened, err := manager.Open(ctx, state.ChatroomID)
	require.NoError(t, err)
	assert.Equal(t, state.Title, reopened.Title)
}

func TestSessionManager_SendAndStats(t *testing.T) {
	ctx := context.Background()
	manager, _, provider := setupSessionManager(t)
	state, err := manager.Create(ctx, "")
	require.NoError(t, err)
	id := state.ChatroomID

	expectStream(provider, func(_ context.Context, _ *model.PromptRequest, h llm.StreamHandler) error {
		h.OnToken(token("Hello!"))
		h.OnSummary(model.SummaryEvent{EvalCount: 50, EvalDuration: 2 * time.Second})
		return nil
	})

	_, err = manager.SelectModel(id, "gemma3:4b")
	require.NoError(t, err)
	_, err = manager.SendMessage(ctx, id, "hi")
	require.NoError(t, err)
	session, err := manager.Get(id)
	require.NoError(t, err)
	session.Wait()

	stats, err := manager.Stats(id)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 1, stats[0].Index)
	assert.Equal(t, 25.0, stats[0].Stats.GenerationSpeed)
}

func TestSessionManager_ConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	manager, dir, _ := setupSessionManager(t)

	const n = 8
	states := make([]service.State, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			states[i], errs[i] = manager.Create(ctx, "")
		}()
	}
	wg.Wait()

	ids := make(map[int64]bool, n)
	for i := range n {
		require.NoError(t, errs[i])
		id := states[i].ChatroomID
		assert.False(t, ids[id], "chatroom id %d issued twice", id)
		ids[id] = true
		assert.FileExists(t, repository.ConversationPath(dir, id))

		renamed, err := manager.Rename(id, "renamed")
		require.NoError(t, err)
		assert.Equal(t, "renamed", renamed.Title)
	}
}

func TestSessionManager_SendWithoutModel(t *testing.T) {
	ctx := context.Background()
	manager, dir, _ := setupSessionManager(t)
	state, err := manager.Create(ctx, "")
	require.NoError(t, err)

	_, err = manager.SendMessage(ctx, state.ChatroomID, "hi")

	assert.ErrorIs(t, err, app_errors.ErrValidation)
	conv, readErr := repository.OpenConversation(dir, state.ChatroomID, "").Read()
	require.NoError(t, readErr)
	assert.Empty(t, conv.Messages())
}

func TestSessionManager_UnknownChatroom(t *testing.T) {
	manager, _, _ := setupSessionManager(t)

	_, err := manager.SetDraft(99, "hi")
	assert.ErrorIs(t, err, app_errors.ErrNotFound)

	_, _, err = manager.Subscribe(99)
	assert.ErrorIs(t, err, app_errors.ErrNotFound)
}

func TestSessionManager_CloseAll(t *testing.T) {
	ctx := context.Background()
	manager, _, _ := setupSessionManager(t)
	first, err := manager.Create(ctx, "one")
	require.NoError(t, err)
	second, err := manager.Create(ctx, "two")
	require.NoError(t, err)
	updates, _, err := manager.Subscribe(first.ChatroomID)
	require.NoError(t, err)
	<-updates

	manager.CloseAll()

	_, open := <-updates
	assert.False(t, open)
	_, err = manager.Get(second.ChatroomID)
	assert.ErrorIs(t, err, app_errors.ErrNotFound)
}
