package service_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"regexp"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guillama/backend/internal/database"
	app_errors "guillama/backend/internal/errors"
	"guillama/backend/internal/llm"
	"guillama/backend/internal/llm/mocks"
	"guillama/backend/internal/repository"
	"guillama/backend/internal/service"
)

const upsertSetting = "INSERT INTO settings (key, value) VALUES (?, ?)"

func setupSettingsService(t *testing.T) (*service.SettingsService, *sql.DB, sqlmock.Sqlmock, *mocks.MockLLMProvider) {
	db, mockDB, err := sqlmock.New()
	require.NoError(t, err)

	mockLLM := mocks.NewMockLLMProvider(t)
	settingsService := service.NewSettingsService(repository.NewSQLiteSettingsRepository(db), mockLLM)

	return settingsService, db, mockDB, mockLLM
}

func TestSettingsService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		settingsService, db, mockDB, _ := setupSettingsService(t)
		defer func() { _ = db.Close() }()

		rows := sqlmock.NewRows([]string{"key", "value"}).
			AddRow("dark_mode", "true").
			AddRow("default_model", "gemma3:4b")
		mockDB.ExpectQuery("SELECT key, value FROM settings").WillReturnRows(rows)

		settings, err := settingsService.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, &service.Settings{DarkMode: true, DefaultModel: "gemma3:4b"}, settings)
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("Success - empty table gives defaults", func(t *testing.T) {
		settingsService, db, mockDB, _ := setupSettingsService(t)
		defer func() { _ = db.Close() }()

		mockDB.ExpectQuery("SELECT key, value FROM settings").WillReturnRows(sqlmock.NewRows([]string{"key", "value"}))

		settings, err := settingsService.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, &service.Settings{}, settings)
	})

	t.Run("Failure - DB Error", func(t *testing.T) {
		settingsService, db, mockDB, _ := setupSettingsService(t)
		defer func() { _ = db.Close() }()

		mockDB.ExpectQuery("SELECT key, value FROM settings").WillReturnError(errors.New("db error"))

		_, err := settingsService.Get(ctx)
		assert.ErrorIs(t, err, app_errors.ErrInternal)
	})
}

func TestSettingsService_Save(t *testing.T) {
	ctx := context.Background()
	available := &llm.ListModelsResponse{Models: []llm.Model{{Name: "gemma3:4b"}}}

	t.Run("Success", func(t *testing.T) {
		settingsService, db, mockDB, mockLLM := setupSettingsService(t)
		defer func() { _ = db.Close() }()

		mockLLM.On("ListModels", ctx).Return(available, nil).Once()
		mockDB.ExpectBegin()
		prep := mockDB.ExpectPrepare(regexp.QuoteMeta(upsertSetting))
		prep.ExpectExec().WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(1, 1))
		prep.ExpectExec().WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(1, 1))
		mockDB.ExpectCommit()

		err := settingsService.Save(ctx, &service.Settings{DarkMode: true, DefaultModel: "gemma3:4b"})
		require.NoError(t, err)
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("Failure - unknown model", func(t *testing.T) {
		settingsService, db, mockDB, mockLLM := setupSettingsService(t)
		defer func() { _ = db.Close() }()

		mockLLM.On("ListModels", ctx).Return(available, nil).Once()

		err := settingsService.Save(ctx, &service.Settings{DefaultModel: "missing:1b"})
		assert.ErrorIs(t, err, app_errors.ErrValidation)
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("Success - server offline skips model check", func(t *testing.T) {
		settingsService, db, mockDB, mockLLM := setupSettingsService(t)
		defer func() { _ = db.Close() }()

		mockLLM.On("ListModels", ctx).Return(nil, errors.New("connection refused")).Once()
		mockDB.ExpectBegin()
		prep := mockDB.ExpectPrepare(regexp.QuoteMeta(upsertSetting))
		prep.ExpectExec().WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(1, 1))
		prep.ExpectExec().WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(1, 1))
		mockDB.ExpectCommit()

		err := settingsService.Save(ctx, &service.Settings{DefaultModel: "gemma3:4b"})
		require.NoError(t, err)
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})
}

func TestSettingsService_ToggleDarkMode(t *testing.T) {
	ctx := context.Background()
	settingsService, db, mockDB, _ := setupSettingsService(t)
	defer func() { _ = db.Close() }()

	mockDB.ExpectQuery("SELECT key, value FROM settings").
		WillReturnRows(sqlmock.NewRows([]string{"key", "value"}).AddRow("dark_mode", "false"))
	mockDB.ExpectBegin()
	prep := mockDB.ExpectPrepare(regexp.QuoteMeta(upsertSetting))
	prep.ExpectExec().WithArgs("dark_mode", "true").WillReturnResult(sqlmock.NewResult(1, 1))
	mockDB.ExpectCommit()

	settings, err := settingsService.ToggleDarkMode(ctx)

	require.NoError(t, err)
	assert.True(t, settings.DarkMode)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestSettingsService_ConcurrentToggleDarkMode(t *testing.T) {
	ctx := context.Background()
	db, err := database.InitDB(filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	settingsService := service.NewSettingsService(repository.NewSQLiteSettingsRepository(db), mocks.NewMockLLMProvider(t))

	const n = 9
	results := make([]bool, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			settings, err := settingsService.ToggleDarkMode(ctx)
			assert.NoError(t, err)
			if settings != nil {
				results[i] = settings.DarkMode
			}
		}()
	}
	wg.Wait()

	enabled := 0
	for _, on := range results {
		if on {
			enabled++
		}
	}
	// Serialized toggles alternate, so five of nine land on dark mode.
	assert.Equal(t, 5, enabled)

	settings, err := settingsService.Get(ctx)
	require.NoError(t, err)
	assert.True(t, settings.DarkMode)
}
