package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guillama/backend/internal/llm"
	"guillama/backend/internal/llm/mocks"
	"guillama/backend/internal/repository"
	"guillama/backend/internal/service"
)

func setupModelService(t *testing.T) (*service.ModelService, repository.ModelCache, *mocks.MockLLMProvider) {
	mockLLMProvider := mocks.NewMockLLMProvider(t)
	cache := repository.NewFileModelCache(t.TempDir())
	modelService := service.NewModelService(mockLLMProvider, cache, "http://localhost:11434")
	return modelService, cache, mockLLMProvider
}

func TestModelService_Refresh(t *testing.T) {
	ctx := context.Background()
	live := &llm.ListModelsResponse{Models: []llm.Model{{Name: "gemma3:4b"}, {Name: "llama3.2:3b"}}}

	t.Run("Success - live list is cached", func(t *testing.T) {
		modelService, cache, mockLLMProvider := setupModelService(t)
		mockLLMProvider.On("ListModels", ctx).Return(live, nil).Once()

		list, err := modelService.Refresh(ctx)

		require.NoError(t, err)
		assert.Equal(t, []string{"gemma3:4b", "llama3.2:3b"}, list.Names)
		assert.False(t, list.FromCache)
		cached, err := cache.Load()
		require.NoError(t, err)
		assert.Equal(t, live, cached)
	})

	t.Run("Success - falls back to cache", func(t *testing.T) {
		modelService, cache, mockLLMProvider := setupModelService(t)
		require.NoError(t, cache.Save(live))
		mockLLMProvider.On("ListModels", ctx).Return(nil, errors.New("connection refused")).Once()

		list, err := modelService.Refresh(ctx)

		require.NoError(t, err)
		assert.True(t, list.FromCache)
		assert.Equal(t, []string{"gemma3:4b", "llama3.2:3b"}, list.Names)
	})

	t.Run("Success - empty live list keeps cache", func(t *testing.T) {
		modelService, cache, mockLLMProvider := setupModelService(t)
		require.NoError(t, cache.Save(live))
		mockLLMProvider.On("ListModels", ctx).Return(&llm.ListModelsResponse{}, nil).Once()

		list, err := modelService.Refresh(ctx)

		require.NoError(t, err)
		assert.True(t, list.FromCache)
		cached, err := cache.Load()
		require.NoError(t, err)
		assert.Equal(t, live, cached)
	})

	t.Run("Success - empty list without cache", func(t *testing.T) {
		modelService, _, mockLLMProvider := setupModelService(t)
		mockLLMProvider.On("ListModels", ctx).Return(nil, errors.New("connection refused")).Once()

		list, err := modelService.Refresh(ctx)

		require.NoError(t, err)
		assert.Empty(t, list.Names)
		assert.NotNil(t, list.Names)
		assert.False(t, list.FromCache)
	})
}

func TestModelService_ListReusesLastFetch(t *testing.T) {
	ctx := context.Background()
	modelService, _, mockLLMProvider := setupModelService(t)
	mockLLMProvider.On("ListModels", ctx).Return(&llm.ListModelsResponse{Models: []llm.Model{{Name: "gemma3:4b"}}}, nil).Once()

	first, err := modelService.List(ctx)
	require.NoError(t, err)
	second, err := modelService.List(ctx)
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestModelService_Status(t *testing.T) {
	ctx := context.Background()
	testCases := []struct {
		name    string
		running bool
		err     error
	}{
		{name: "Success - running", running: true},
		{name: "Success - not reachable", running: false, err: errors.New("connection refused")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			modelService, _, mockLLMProvider := setupModelService(t)
			mockLLMProvider.On("IsRunning", ctx).Return(tc.running, tc.err).Once()

			status, err := modelService.Status(ctx)

			require.NoError(t, err)
			assert.Equal(t, tc.running, status.Running)
			assert.Equal(t, "http://localhost:11434", status.URL)
		})
	}
}
