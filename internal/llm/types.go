package llm

import (
	"time"

	"guillama/backend/internal/model"
)

// ChatRequest is the body sent to /api/chat.
type ChatRequest struct {
	Model    string              `json:"model"`
	Messages []model.ChatMessage `json:"messages"`
	Stream   bool                `json:"stream"`
}

// chatEnvelope is the generic shape of every line in a /api/chat stream.
// Metric fields are only populated on the terminal record.
type chatEnvelope struct {
	Model              string             `json:"model"`
	CreatedAt          time.Time          `json:"created_at"`
	Message            *model.ChatMessage `json:"message"`
	Done               bool               `json:"done"`
	DoneReason         string             `json:"done_reason,omitempty"`
	Error              string             `json:"error,omitempty"`
	TotalDuration      int64              `json:"total_duration,omitempty"`
	LoadDuration       int64              `json:"load_duration,omitempty"`
	PromptEvalCount    int                `json:"prompt_eval_count,omitempty"`
	PromptEvalDuration int64              `json:"prompt_eval_duration,omitempty"`
	EvalCount          int                `json:"eval_count,omitempty"`
	EvalDuration       int64              `json:"eval_duration,omitempty"`
}

func (e *chatEnvelope) message() model.ChatMessage {
	if e.Message == nil {
		return model.ChatMessage{Role: model.RoleAssistant}
	}
	return *e.Message
}

func (e *chatEnvelope) tokenEvent() model.TokenEvent {
	return model.TokenEvent{
		Model:     e.Model,
		CreatedAt: e.CreatedAt,
		Message:   e.message(),
	}
}

func (e *chatEnvelope) summaryEvent() model.SummaryEvent {
	return model.SummaryEvent{
		Model:              e.Model,
		CreatedAt:          e.CreatedAt,
		Message:            e.message(),
		DoneReason:         e.DoneReason,
		TotalDuration:      time.Duration(e.TotalDuration),
		LoadDuration:       time.Duration(e.LoadDuration),
		PromptEvalCount:    e.PromptEvalCount,
		PromptEvalDuration: time.Duration(e.PromptEvalDuration),
		EvalCount:          e.EvalCount,
		EvalDuration:       time.Duration(e.EvalDuration),
	}
}

// ListModelsResponse is the response of /api/tags.
type ListModelsResponse struct {
	Models []Model `json:"models"`
}

// Names returns the model names in server order.
func (r *ListModelsResponse) Names() []string {
	names := make([]string, 0, len(r.Models))
	for _, m := range r.Models {
		names = append(names, m.Name)
	}
	return names
}

type Model struct {
	Name       string       `json:"name"`
	Model      string       `json:"model"`
	ModifiedAt string       `json:"modified_at"`
	Size       int64        `json:"size"`
	Digest     string       `json:"digest"`
	Details    ModelDetails `json:"details"`
}

type ModelDetails struct {
	ParentModel       string   `json:"parent_model"`
	Format            string   `json:"format"`
	Family            string   `json:"family"`
	Families          []string `json:"families,omitempty"`
	ParameterSize     string   `json:"parameter_size"`
	QuantizationLevel string   `json:"quantization_level"`
}
