package main

import (
	"os"

	"guillama/backend/internal/app"
)

// @title        Guillama API
// @version      1.0
// @description  Local control surface for Ollama chatrooms: sessions, streaming replies, models and settings.
// @host         localhost:8000
// @BasePath     /api
func main() {
	os.Exit(app.Run())
}
