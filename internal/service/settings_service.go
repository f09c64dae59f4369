package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"sync"

	app_errors "guillama/backend/internal/errors"
	"guillama/backend/internal/llm"
	"guillama/backend/internal/repository"
)

const (
	keyDarkMode     = "dark_mode"
	keyDefaultModel = "default_model"
)

// Settings holds the application preferences stored in SQLite.
type Settings struct {
	DarkMode     bool   `json:"dark_mode"`
	DefaultModel string `json:"default_model"`
}

type SettingsService struct {
	repo repository.SettingsRepository
	llm  llm.LLMProvider

	// mu serializes writes so a toggle never races another update.
	mu sync.Mutex
}

func NewSettingsService(repo repository.SettingsRepository, llmProvider llm.LLMProvider) *SettingsService {
	return &SettingsService{repo: repo, llm: llmProvider}
}

// Get returns the stored settings. Missing keys keep their zero value.
func (s *SettingsService) Get(ctx context.Context) (*Settings, error) {
	values, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: could not load settings: %w", app_errors.ErrInternal, err)
	}

	settings := &Settings{DefaultModel: values[keyDefaultModel]}
	if raw, ok := values[keyDarkMode]; ok {
		darkMode, err := strconv.ParseBool(raw)
		if err != nil {
			slog.Warn("Ignoring invalid dark_mode setting", "value", raw)
		}
		settings.DarkMode = darkMode
	}
	return settings, nil
}

// Save validates the default model against the server when it is reachable,
// then stores every setting.
func (s *SettingsService) Save(ctx context.Context, settings *Settings) error {
	if settings.DefaultModel != "" {
		available, err := s.llm.ListModels(ctx)
		if err != nil {
			slog.Warn("Could not list models for validation, saving settings without check", "error", err)
		} else if !slices.Contains(available.Names(), settings.DefaultModel) {
			return fmt.Errorf("%w: model '%s' not found on the model server", app_errors.ErrValidation, settings.DefaultModel)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	values := map[string]string{
		keyDarkMode:     strconv.FormatBool(settings.DarkMode),
		keyDefaultModel: settings.DefaultModel,
	}
	if err := s.repo.SetMany(ctx, values); err != nil {
		return fmt.Errorf("%w: could not save settings: %w", app_errors.ErrInternal, err)
	}
	return nil
}

// ToggleDarkMode flips the theme preference and returns the updated settings.
func (s *SettingsService) ToggleDarkMode(ctx context.Context) (*Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	settings.DarkMode = !settings.DarkMode
	if err := s.repo.SetMany(ctx, map[string]string{keyDarkMode: strconv.FormatBool(settings.DarkMode)}); err != nil {
		return nil, fmt.Errorf("%w: could not save settings: %w", app_errors.ErrInternal, err)
	}
	return settings, nil
}
