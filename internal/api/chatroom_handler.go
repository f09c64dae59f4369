package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	app_errors "guillama/backend/internal/errors"
	"guillama/backend/internal/interfaces"
	"guillama/backend/internal/service"
)

// ChatroomHandler exposes chatroom sessions over HTTP.
type ChatroomHandler struct {
	service interfaces.ChatroomService
}

func NewChatroomHandler(svc interfaces.ChatroomService) *ChatroomHandler {
	return &ChatroomHandler{service: svc}
}

func chatroomID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "chatroomID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid chatroom id '%s'", app_errors.ErrValidation, raw)
	}
	return id, nil
}

// stateAction runs an id-only operation and answers with the resulting state.
func (h *ChatroomHandler) stateAction(w http.ResponseWriter, r *http.Request, fn func(id int64) (service.State, error)) {
	id, err := chatroomID(r)
	if err != nil {
		respondWithError(w, err)
		return
	}
	state, err := fn(id)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, state)
}

// HandleCreateChatroom godoc
// @Summary      Create a chatroom
// @Description  Creates a new chatroom file and opens a session on it. The title defaults to the creation time.
// @Tags         Chatrooms
// @Accept       json
// @Produce      json
// @Param        request  body      CreateChatroomRequest  false  "Optional title"
// @Success      201      {object}  service.State
// @Failure      400      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /v1/chatrooms [post]
func (h *ChatroomHandler) HandleCreateChatroom(w http.ResponseWriter, r *http.Request) {
	var req CreateChatroomRequest
	if r.ContentLength != 0 {
		if err := decodeAndValidate(r, &req); err != nil {
			respondWithError(w, err)
			return
		}
	}
	state, err := h.service.Create(r.Context(), req.Title)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, state)
}

// HandleOpenChatroom godoc
// @Summary      Open a chatroom
// @Description  Loads a stored chatroom into a session.
// @Tags         Chatrooms
// @Produce      json
// @Param        chatroomID  path      int  true  "Chatroom ID"
// @Success      200         {object}  service.State
// @Failure      404         {object}  ErrorResponse
// @Router       /v1/chatrooms/{chatroomID}/open [post]
func (h *ChatroomHandler) HandleOpenChatroom(w http.ResponseWriter, r *http.Request) {
	h.stateAction(w, r, func(id int64) (service.State, error) {
		return h.service.Open(r.Context(), id)
	})
}

// HandleCloseChatroom godoc
// @Summary      Close a chatroom session
// @Description  Cancels any in-flight response and releases the session. Partial replies stay saved.
// @Tags         Chatrooms
// @Produce      json
// @Param        chatroomID  path      int  true  "Chatroom ID"
// @Success      200         {object}  StatusResponse
// @Failure      404         {object}  ErrorResponse
// @Router       /v1/chatrooms/{chatroomID}/session [delete]
func (h *ChatroomHandler) HandleCloseChatroom(w http.ResponseWriter, r *http.Request) {
	id, err := chatroomID(r)
	if err != nil {
		respondWithError(w, err)
		return
	}
	if err := h.service.Close(id); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// HandleGetChatroom godoc
// @Summary      Get chatroom state
// @Tags         Chatrooms
// @Produce      json
// @Param        chatroomID  path      int  true  "Chatroom ID"
// @Success      200         {object}  service.State
// @Failure      404         {object}  ErrorResponse
// @Router       /v1/chatrooms/{chatroomID} [get]
func (h *ChatroomHandler) HandleGetChatroom(w http.ResponseWriter, r *http.Request) {
	h.stateAction(w, r, h.service.State)
}

// HandleSetDraft godoc
// @Summary      Update the compose buffer
// @Tags         Chatrooms
// @Accept       json
// @Produce      json
// @Param        chatroomID  path      int           true  "Chatroom ID"
// @Param        request     body      DraftRequest  true  "Draft text"
// @Success      200         {object}  service.State
// @Failure      400         {object}  ErrorResponse
// @Failure      404         {object}  ErrorResponse
// @Router       /v1/chatrooms/{chatroomID}/draft [put]
func (h *ChatroomHandler) HandleSetDraft(w http.ResponseWriter, r *http.Request) {
	var req DraftRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	h.stateAction(w, r, func(id int64) (service.State, error) {
		return h.service.SetDraft(id, req.Text)
	})
}

// HandleSelectModel godoc
// @Summary      Select the chatroom model
// @Tags         Chatrooms
// @Accept       json
// @Produce      json
// @Param        chatroomID  path      int                 true  "Chatroom ID"
// @Param        request     body      SelectModelRequest  true  "Model name"
// @Success      200         {object}  service.State
// @Failure      400         {object}  ErrorResponse
// @Failure      404         {object}  ErrorResponse
// @Router       /v1/chatrooms/{chatroomID}/model [put]
func (h *ChatroomHandler) HandleSelectModel(w http.ResponseWriter, r *http.Request) {
	var req SelectModelRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	h.stateAction(w, r, func(id int64) (service.State, error) {
		return h.service.SelectModel(id, req.Model)
	})
}

// HandleSendMessage godoc
// @Summary      Send a message
// @Description  Appends the message and starts streaming the reply in the background. Follow progress on the events stream.
// @Tags         Chatrooms
// @Accept       json
// @Produce      json
// @Param        chatroomID  path      int                 true   "Chatroom ID"
// @Param        request     body      SendMessageRequest  false  "Message text; the current draft is used when empty"
// @Success      202         {object}  service.State
// @Failure      400         {object}  ErrorResponse
// @Failure      404         {object}  ErrorResponse
// @Failure      409         {object}  ErrorResponse
// @Router       /v1/chatrooms/{chatroomID}/messages [post]
func (h *ChatroomHandler) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req SendMessageRequest
	if r.ContentLength != 0 {
		if err := decodeAndValidate(r, &req); err != nil {
			respondWithError(w, err)
			return
		}
	}
	id, err := chatroomID(r)
	if err != nil {
		respondWithError(w, err)
		return
	}
	state, err := h.service.SendMessage(r.Context(), id, req.Content)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusAccepted, state)
}

// HandleCancelStream godoc
// @Summary      Stop the in-flight reply
// @Tags         Chatrooms
// @Produce      json
// @Param        chatroomID  path      int  true  "Chatroom ID"
// @Success      200         {object}  service.State
// @Failure      404         {object}  ErrorResponse
// @Router       /v1/chatrooms/{chatroomID}/cancel [post]
func (h *ChatroomHandler) HandleCancelStream(w http.ResponseWriter, r *http.Request) {
	h.stateAction(w, r, h.service.CancelStream)
}

// HandleUpdateTitle godoc
// @Summary      Rename a chatroom
// @Tags         Chatrooms
// @Accept       json
// @Produce      json
// @Param        chatroomID  path      int                 true  "Chatroom ID"
// @Param        request     body      UpdateTitleRequest  true  "New title"
// @Success      200         {object}  service.State
// @Failure      400         {object}  ErrorResponse
// @Failure      404         {object}  ErrorResponse
// @Router       /v1/chatrooms/{chatroomID}/title [put]
func (h *ChatroomHandler) HandleUpdateTitle(w http.ResponseWriter, r *http.Request) {
	var req UpdateTitleRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	h.stateAction(w, r, func(id int64) (service.State, error) {
		return h.service.Rename(id, req.Title)
	})
}

// HandleBeginTitleEdit godoc
// @Summary      Enter title edit mode
// @Tags         Chatrooms
// @Produce      json
// @Param        chatroomID  path      int  true  "Chatroom ID"
// @Success      200         {object}  service.State
// @Failure      404         {object}  ErrorResponse
// @Router       /v1/chatrooms/{chatroomID}/title/edit [post]
func (h *ChatroomHandler) HandleBeginTitleEdit(w http.ResponseWriter, r *http.Request) {
	h.stateAction(w, r, h.service.BeginTitleEdit)
}

// HandleSetTitleDraft godoc
// @Summary      Update the title editor buffer
// @Tags         Chatrooms
// @Accept       json
// @Produce      json
// @Param        chatroomID  path      int                true  "Chatroom ID"
// @Param        request     body      TitleDraftRequest  true  "Title draft"
// @Success      200         {object}  service.State
// @Failure      404         {object}  ErrorResponse
// @Failure      409         {object}  ErrorResponse
// @Router       /v1/chatrooms/{chatroomID}/title/draft [put]
func (h *ChatroomHandler) HandleSetTitleDraft(w http.ResponseWriter, r *http.Request) {
	var req TitleDraftRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	h.stateAction(w, r, func(id int64) (service.State, error) {
		return h.service.SetTitleDraft(id, req.Title)
	})
}

// HandleConfirmTitle godoc
// @Summary      Save the title editor buffer
// @Tags         Chatrooms
// @Produce      json
// @Param        chatroomID  path      int  true  "Chatroom ID"
// @Success      200         {object}  service.State
// @Failure      400         {object}  ErrorResponse
// @Failure      409         {object}  ErrorResponse
// @Router       /v1/chatrooms/{chatroomID}/title/confirm [post]
func (h *ChatroomHandler) HandleConfirmTitle(w http.ResponseWriter, r *http.Request) {
	h.stateAction(w, r, h.service.ConfirmTitle)
}

// HandleCancelTitleEdit godoc
// @Summary      Leave title edit mode without saving
// @Tags         Chatrooms
// @Produce      json
// @Param        chatroomID  path      int  true  "Chatroom ID"
// @Success      200         {object}  service.State
// @Router       /v1/chatrooms/{chatroomID}/title/edit [delete]
func (h *ChatroomHandler) HandleCancelTitleEdit(w http.ResponseWriter, r *http.Request) {
	h.stateAction(w, r, h.service.CancelTitleEdit)
}

// HandleDismissError godoc
// @Summary      Dismiss the error notice
// @Tags         Chatrooms
// @Produce      json
// @Param        chatroomID  path      int  true  "Chatroom ID"
// @Success      200         {object}  service.State
// @Router       /v1/chatrooms/{chatroomID}/error/dismiss [post]
func (h *ChatroomHandler) HandleDismissError(w http.ResponseWriter, r *http.Request) {
	h.stateAction(w, r, h.service.DismissError)
}

// HandleToggleStats godoc
// @Summary      Show or hide the stats panel
// @Tags         Chatrooms
// @Produce      json
// @Param        chatroomID  path      int  true  "Chatroom ID"
// @Success      200         {object}  service.State
// @Router       /v1/chatrooms/{chatroomID}/stats/toggle [post]
func (h *ChatroomHandler) HandleToggleStats(w http.ResponseWriter, r *http.Request) {
	h.stateAction(w, r, h.service.ToggleStats)
}

// HandleGetStats godoc
// @Summary      Response stats
// @Description  Lists generation stats for the assistant replies received in this session.
// @Tags         Chatrooms
// @Produce      json
// @Param        chatroomID  path      int  true  "Chatroom ID"
// @Success      200         {object}  StatsResponse
// @Failure      404         {object}  ErrorResponse
// @Router       /v1/chatrooms/{chatroomID}/stats [get]
func (h *ChatroomHandler) HandleGetStats(w http.ResponseWriter, r *http.Request) {
	id, err := chatroomID(r)
	if err != nil {
		respondWithError(w, err)
		return
	}
	state, err := h.service.State(id)
	if err != nil {
		respondWithError(w, err)
		return
	}
	stats, err := h.service.Stats(id)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatsResponse{ShowStats: state.ShowStats, Stats: stats})
}

// HandleEvents godoc
// @Summary      Chatroom state stream
// @Description  Server-Sent Events stream of chatroom state snapshots. A slow client only receives the latest snapshot.
// @Tags         Chatrooms
// @Produce      text/event-stream
// @Param        chatroomID  path      int  true  "Chatroom ID"
// @Success      200         {object}  service.State  "Stream of state snapshots"
// @Failure      404         {object}  ErrorResponse  "Sent as a stream error event"
// @Router       /v1/chatrooms/{chatroomID}/events [get]
func (h *ChatroomHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	id, err := chatroomID(r)
	if err != nil {
		sendStreamError(w, err.Error())
		return
	}
	updates, unsubscribe, err := h.service.Subscribe(id)
	if err != nil {
		sendStreamError(w, "Chatroom is not open")
		return
	}
	defer unsubscribe()

	for {
		select {
		case <-r.Context().Done():
			slog.Debug("Client disconnected from chatroom events", "chatroom_id", id)
			return
		case state, ok := <-updates:
			if !ok {
				return
			}
			if err := writeStreamEvent(w, state); err != nil {
				slog.Debug("Stopping chatroom events", "chatroom_id", id, "error", err)
				return
			}
		}
	}
}
