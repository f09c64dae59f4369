package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.db")

	db, err := InitDB(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, db.Close()) }()

	_, err = db.Exec("INSERT INTO settings (key, value) VALUES (?, ?)", "dark_mode", "true")
	require.NoError(t, err)

	var value string
	require.NoError(t, db.QueryRow("SELECT value FROM settings WHERE key = ?", "dark_mode").Scan(&value))
	assert.Equal(t, "true", value)
}

func TestInitDB_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.db")

	first, err := InitDB(path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := InitDB(path)
	require.NoError(t, err)
	require.NoError(t, second.Close())
}
