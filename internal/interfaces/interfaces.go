package interfaces

import (
	"context"

	"guillama/backend/internal/service"
)

// The API layer depends on these contracts rather than on the concrete
// services, so handlers can be tested against mocks.

// ChatroomService drives open chatrooms by id.
type ChatroomService interface {
	Create(ctx context.Context, title string) (service.State, error)
	Open(ctx context.Context, id int64) (service.State, error)
	Close(id int64) error
	State(id int64) (service.State, error)
	SetDraft(id int64, text string) (service.State, error)
	SelectModel(id int64, name string) (service.State, error)
	SendMessage(ctx context.Context, id int64, text string) (service.State, error)
	CancelStream(id int64) (service.State, error)
	Rename(id int64, title string) (service.State, error)
	BeginTitleEdit(id int64) (service.State, error)
	SetTitleDraft(id int64, text string) (service.State, error)
	ConfirmTitle(id int64) (service.State, error)
	CancelTitleEdit(id int64) (service.State, error)
	DismissError(id int64) (service.State, error)
	ToggleStats(id int64) (service.State, error)
	Stats(id int64) ([]service.MessageStats, error)
	Subscribe(id int64) (<-chan service.State, func(), error)
}

// ModelService defines the contract for model discovery.
type ModelService interface {
	List(ctx context.Context) (*service.ModelList, error)
	Refresh(ctx context.Context) (*service.ModelList, error)
	Status(ctx context.Context) (*service.ServerStatus, error)
}

// SettingsService defines the contract for managing application settings.
type SettingsService interface {
	Get(ctx context.Context) (*service.Settings, error)
	Save(ctx context.Context, settings *service.Settings) error
	ToggleDarkMode(ctx context.Context) (*service.Settings, error)
}

var (
	_ ChatroomService = (*service.SessionManager)(nil)
	_ ModelService    = (*service.ModelService)(nil)
	_ SettingsService = (*service.SettingsService)(nil)
)
