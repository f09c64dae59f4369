package repository

import (
	"context"

	"guillama/backend/internal/llm"
	"guillama/backend/internal/model"
)

// MetadataUpdate lists the conversation fields to overwrite. Nil fields are
// left untouched.
type MetadataUpdate struct {
	Title         *string
	SelectedModel *string
	HistoryModel  *string
}

// ConversationStore persists a single conversation. Every mutation is a full
// read-modify-write of the backing file.
type ConversationStore interface {
	ID() int64
	Path() string
	Read() (*model.Conversation, error)
	Write(conv *model.Conversation) error
	AppendMessage(msg model.ChatMessage) error
	ReplaceLastAssistantContent(content string) error
	UpdateMetadata(update MetadataUpdate) error
}

// ModelCache keeps the last successful model list for offline use.
type ModelCache interface {
	Save(list *llm.ListModelsResponse) error
	Load() (*llm.ListModelsResponse, error)
}

// SettingsRepository is a flat key-value store for application settings.
type SettingsRepository interface {
	GetAll(ctx context.Context) (map[string]string, error)
	SetMany(ctx context.Context, values map[string]string) error
}
