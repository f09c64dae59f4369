package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"guillama/backend/internal/model"
)

// FileNameLayout names conversation files after their creation time,
// MM-dd-yyyy_HH-mm-ss in local time. It doubles as the default title.
const FileNameLayout = "01-02-2006_15-04-05"

// FormatConversationTime renders a conversation id (unix millis) with
// FileNameLayout.
func FormatConversationTime(id int64) string {
	return time.UnixMilli(id).Local().Format(FileNameLayout)
}

// ConversationPath derives the backing file for a conversation id.
func ConversationPath(dir string, id int64) string {
	return filepath.Join(dir, FormatConversationTime(id)+".json")
}

type fileConversationStore struct {
	mu       sync.Mutex
	id       int64
	path     string
	fallback model.Conversation
}

// OpenConversation binds a store to an existing conversation. An empty path is
// derived from the id.
func OpenConversation(dir string, id int64, path string) ConversationStore {
	if path == "" {
		path = ConversationPath(dir, id)
	}
	return &fileConversationStore{
		id:   id,
		path: path,
		fallback: model.Conversation{
			ID:    id,
			Title: FormatConversationTime(id),
		},
	}
}

// CreateConversation allocates an id from now, writes an empty conversation
// to disk and returns the bound store together with the new conversation.
// File names have one-second resolution, so a taken name pushes the id
// forward a second at a time. The name is claimed with O_EXCL before the
// content is written, so concurrent callers never share a file.
func CreateConversation(dir, title string, now time.Time) (ConversationStore, *model.Conversation, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, nil, fmt.Errorf("could not create conversation directory: %w", err)
	}

	id, err := reserveConversationFile(dir, now.UnixMilli())
	if err != nil {
		return nil, nil, fmt.Errorf("could not create conversation: %w", err)
	}
	if title == "" {
		title = FormatConversationTime(id)
	}

	store := OpenConversation(dir, id, "")
	conv := &model.Conversation{
		ID:      id,
		Title:   title,
		History: model.PromptRequest{Messages: []model.ChatMessage{}},
	}
	if err := store.Write(conv); err != nil {
		_ = os.Remove(store.Path())
		return nil, nil, fmt.Errorf("could not create conversation: %w", err)
	}
	return store, conv, nil
}

// reserveConversationFile creates the empty file for the first free id at or
// after id and returns that id.
func reserveConversationFile(dir string, id int64) (int64, error) {
	for {
		f, err := os.OpenFile(ConversationPath(dir, id), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			return id, f.Close()
		}
		if !errors.Is(err, fs.ErrExist) {
			return 0, err
		}
		id += int64(time.Second / time.Millisecond)
	}
}

func (s *fileConversationStore) ID() int64    { return s.id }
func (s *fileConversationStore) Path() string { return s.path }

// Read decodes the backing file. A file that does not exist yet reads as the
// empty conversation.
func (s *fileConversationStore) Read() (*model.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *fileConversationStore) Write(conv *model.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(conv)
}

func (s *fileConversationStore) AppendMessage(msg model.ChatMessage) error {
	return s.mutate(func(conv *model.Conversation) bool {
		conv.History.Messages = append(conv.History.Messages, msg)
		return true
	})
}

// ReplaceLastAssistantContent overwrites the content of the trailing assistant
// message. If the last message is not an assistant message nothing is written.
func (s *fileConversationStore) ReplaceLastAssistantContent(content string) error {
	return s.mutate(func(conv *model.Conversation) bool {
		last, ok := conv.LastMessage()
		if !ok || last.Role != model.RoleAssistant {
			return false
		}
		conv.History.Messages[len(conv.History.Messages)-1].Content = content
		return true
	})
}

func (s *fileConversationStore) UpdateMetadata(update MetadataUpdate) error {
	return s.mutate(func(conv *model.Conversation) bool {
		if update.Title != nil {
			conv.Title = *update.Title
		}
		if update.SelectedModel != nil {
			selected := *update.SelectedModel
			conv.SelectedModel = &selected
		}
		if update.HistoryModel != nil {
			conv.History.Model = *update.HistoryModel
		}
		return true
	})
}

// mutate runs one read-modify-write cycle. fn reports whether anything changed.
func (s *fileConversationStore) mutate(fn func(conv *model.Conversation) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, err := s.read()
	if err != nil {
		return err
	}
	if !fn(conv) {
		return nil
	}
	return s.write(conv)
}

func (s *fileConversationStore) read() (*model.Conversation, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			conv := s.fallback.Clone()
			conv.History.Messages = []model.ChatMessage{}
			return conv, nil
		}
		return nil, fmt.Errorf("could not read conversation file: %w", err)
	}

	var conv model.Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return nil, fmt.Errorf("could not decode conversation file %s: %w", s.path, err)
	}
	if conv.ID != s.id {
		return nil, fmt.Errorf("%w: file %s holds id %d, expected %d", ErrIdentityMismatch, s.path, conv.ID, s.id)
	}
	if conv.History.Messages == nil {
		conv.History.Messages = []model.ChatMessage{}
	}
	return &conv, nil
}

func (s *fileConversationStore) write(conv *model.Conversation) error {
	if conv.ID != s.id {
		return fmt.Errorf("%w: writing id %d to store for %d", ErrIdentityMismatch, conv.ID, s.id)
	}
	data, err := json.MarshalIndent(conv, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode conversation: %w", err)
	}
	if err := atomicWriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("could not write conversation file: %w", err)
	}
	s.fallback = model.Conversation{ID: conv.ID, Title: conv.Title, SelectedModel: conv.SelectedModel}
	return nil
}
