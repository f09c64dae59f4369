package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		viper.Reset()
		t.Chdir(t.TempDir())

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, 8000, cfg.AppPort)
		assert.Equal(t, "http://localhost:11434", cfg.OllamaURL)
		assert.Equal(t, 30*time.Second, cfg.ConnectTimeout)
		assert.Equal(t, 30*time.Second, cfg.WriteTimeout)
		assert.Equal(t, 300*time.Second, cfg.ReadTimeout)
		assert.Equal(t, 600*time.Second, cfg.CallTimeout)
		assert.Equal(t, time.Second, cfg.StatusDuration)
	})

	t.Run("Environment overrides", func(t *testing.T) {
		viper.Reset()
		t.Chdir(t.TempDir())
		t.Setenv("OLLAMA_URL", "http://gpu-box:11434")
		t.Setenv("DATA_DIR", "/tmp/guillama-test")
		t.Setenv("READ_TIMEOUT", "45s")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "http://gpu-box:11434", cfg.OllamaURL)
		assert.Equal(t, 45*time.Second, cfg.ReadTimeout)
		assert.Equal(t, filepath.Join("/tmp/guillama-test", "chats"), cfg.ChatsDir())
		assert.Equal(t, filepath.Join("/tmp/guillama-test", "models"), cfg.ModelsDir())
		assert.Equal(t, filepath.Join("/tmp/guillama-test", "settings.db"), cfg.SettingsDBPath())
	})
}
