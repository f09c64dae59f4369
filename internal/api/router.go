package api

import (
	"net/http"
	"time"

	// Registers the generated API definitions with swaggo.
	_ "guillama/backend/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter creates and configures a new chi router with all the application's routes.
func NewRouter(chatroomHandler *ChatroomHandler, modelHandler *ModelHandler, settingsHandler *SettingsHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/swagger/*", httpSwagger.WrapHandler)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			r.Get("/status", modelHandler.HandleStatus)

			// --- Settings ---
			r.Get("/settings", settingsHandler.HandleGetSettings)
			r.Put("/settings", settingsHandler.HandleUpdateSettings)
			r.Post("/settings/dark-mode/toggle", settingsHandler.HandleToggleDarkMode)

			// --- Models ---
			r.Get("/models", modelHandler.HandleListModels)
			r.Post("/models/refresh", modelHandler.HandleRefreshModels)

			// --- Chatrooms ---
			r.Post("/chatrooms", chatroomHandler.HandleCreateChatroom)
			r.Get("/chatrooms/{chatroomID}", chatroomHandler.HandleGetChatroom)
			r.Post("/chatrooms/{chatroomID}/open", chatroomHandler.HandleOpenChatroom)
			r.Delete("/chatrooms/{chatroomID}/session", chatroomHandler.HandleCloseChatroom)
			r.Put("/chatrooms/{chatroomID}/draft", chatroomHandler.HandleSetDraft)
			r.Put("/chatrooms/{chatroomID}/model", chatroomHandler.HandleSelectModel)
			r.Post("/chatrooms/{chatroomID}/messages", chatroomHandler.HandleSendMessage)
			r.Post("/chatrooms/{chatroomID}/cancel", chatroomHandler.HandleCancelStream)
			r.Put("/chatrooms/{chatroomID}/title", chatroomHandler.HandleUpdateTitle)
			r.Post("/chatrooms/{chatroomID}/title/edit", chatroomHandler.HandleBeginTitleEdit)
			r.Delete("/chatrooms/{chatroomID}/title/edit", chatroomHandler.HandleCancelTitleEdit)
			r.Put("/chatrooms/{chatroomID}/title/draft", chatroomHandler.HandleSetTitleDraft)
			r.Post("/chatrooms/{chatroomID}/title/confirm", chatroomHandler.HandleConfirmTitle)
			r.Post("/chatrooms/{chatroomID}/error/dismiss", chatroomHandler.HandleDismissError)
			r.Get("/chatrooms/{chatroomID}/stats", chatroomHandler.HandleGetStats)
			r.Post("/chatrooms/{chatroomID}/stats/toggle", chatroomHandler.HandleToggleStats)
		})

		// Streaming routes hold the connection open and must not time out.
		r.Group(func(r chi.Router) {
			r.Get("/chatrooms/{chatroomID}/events", chatroomHandler.HandleEvents)
		})
	})

	return r
}
