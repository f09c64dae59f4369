package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"guillama/backend/internal/llm"
)

const modelCacheFile = "models.json"

type fileModelCache struct {
	path string
}

// NewFileModelCache stores the model list as dir/models.json.
func NewFileModelCache(dir string) ModelCache {
	return &fileModelCache{path: filepath.Join(dir, modelCacheFile)}
}

func (c *fileModelCache) Save(list *llm.ListModelsResponse) error {
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode model list: %w", err)
	}
	if err := atomicWriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("could not write model cache: %w", err)
	}
	return nil
}

// Load returns ErrNotFound when nothing has been cached yet.
func (c *fileModelCache) Load() (*llm.ListModelsResponse, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("could not read model cache: %w", err)
	}

	var list llm.ListModelsResponse
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("could not decode model cache: %w", err)
	}
	return &list, nil
}
