package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	app_errors "guillama/backend/internal/errors"
	"guillama/backend/internal/llm"
	"guillama/backend/internal/metrics"
	"guillama/backend/internal/repository"
)

// ModelList is what the model selector shows. FromCache is set when the
// server could not be reached and the last saved list was used instead.
type ModelList struct {
	Names     []string    `json:"names"`
	Models    []llm.Model `json:"models"`
	FromCache bool        `json:"from_cache"`
}

// ServerStatus reports whether the model server answered the liveness probe.
type ServerStatus struct {
	Running bool   `json:"running"`
	URL     string `json:"url"`
}

// ModelService handles the business logic for model discovery.
type ModelService struct {
	llm   llm.LLMProvider
	cache repository.ModelCache
	url   string

	mu      sync.RWMutex
	current *ModelList
}

// NewModelService creates a new ModelService.
func NewModelService(llmProvider llm.LLMProvider, cache repository.ModelCache, url string) *ModelService {
	return &ModelService{llm: llmProvider, cache: cache, url: url}
}

// List returns the last fetched list, fetching it on first use.
func (s *ModelService) List(ctx context.Context) (*ModelList, error) {
	s.mu.RLock()
	current := s.current
	s.mu.RUnlock()
	if current != nil {
		return current, nil
	}
	return s.Refresh(ctx)
}

// Refresh asks the server for its models and saves them for offline use.
// When the server is unreachable or reports no models the cached list is
// served, and when there is no cache either the list is empty. Neither case
// is an error.
func (s *ModelService) Refresh(ctx context.Context) (*ModelList, error) {
	list, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.current = list
	s.mu.Unlock()
	return list, nil
}

func (s *ModelService) fetch(ctx context.Context) (*ModelList, error) {
	live, err := s.llm.ListModels(ctx)
	if err == nil && len(live.Models) == 0 {
		err = errors.New("server reported no models")
	}
	if err == nil {
		if saveErr := s.cache.Save(live); saveErr != nil {
			slog.Warn("Could not cache model list", "error", saveErr)
		}
		metrics.ModelListServed(metrics.SourceLive)
		slog.Info("Fetched model list", "count", len(live.Models))
		return newModelList(live, false), nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	slog.Warn("Could not fetch model list, falling back to cache", "error", err)

	cached, cacheErr := s.cache.Load()
	switch {
	case cacheErr == nil:
		metrics.ModelListServed(metrics.SourceCache)
		return newModelList(cached, true), nil
	case errors.Is(cacheErr, repository.ErrNotFound):
		metrics.ModelListServed(metrics.SourceNone)
		return newModelList(nil, false), nil
	default:
		return nil, fmt.Errorf("%w: could not load model cache: %w", app_errors.ErrInternal, cacheErr)
	}
}

// Status probes the model server.
func (s *ModelService) Status(ctx context.Context) (*ServerStatus, error) {
	running, err := s.llm.IsRunning(ctx)
	if err != nil {
		slog.Debug("Model server probe failed", "error", err)
	}
	return &ServerStatus{Running: running, URL: s.url}, nil
}

func newModelList(resp *llm.ListModelsResponse, fromCache bool) *ModelList {
	list := &ModelList{Names: []string{}, Models: []llm.Model{}, FromCache: fromCache}
	if resp == nil {
		return list
	}
	list.Names = resp.Names()
	list.Models = append(list.Models, resp.Models...)
	return list
}
