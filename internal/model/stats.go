package model

import (
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
)

// statsTimeLayout renders the summary timestamp as dd-MM-yyyy, HH:mm:ss.
const statsTimeLayout = "02-01-2006, 15:04:05"

// ResponseStats is the per-response telemetry shown next to an assistant
// message. It lives only in memory for the duration of a session.
type ResponseStats struct {
	MessageHash        string  `json:"message_hash"`
	CreatedAt          string  `json:"created_at"`
	TotalDuration      string  `json:"total_duration"`
	LoadDuration       string  `json:"load_duration"`
	PromptEvalCount    int     `json:"prompt_eval_count"`
	PromptEvalDuration string  `json:"prompt_eval_duration"`
	EvalCount          int     `json:"eval_count"`
	EvalDuration       string  `json:"eval_duration"`
	GenerationSpeed    float64 `json:"generation_speed"`
}

// NewResponseStats derives display stats from a terminal event. content is the
// fully accumulated assistant reply and determines the lookup key.
func NewResponseStats(summary SummaryEvent, content string, loc *time.Location) ResponseStats {
	if loc == nil {
		loc = time.Local
	}
	createdAt := ""
	if !summary.CreatedAt.IsZero() {
		createdAt = summary.CreatedAt.In(loc).Format(statsTimeLayout)
	}
	return ResponseStats{
		MessageHash:        ContentHash(content),
		CreatedAt:          createdAt,
		TotalDuration:      FormatDuration(summary.TotalDuration),
		LoadDuration:       FormatDuration(summary.LoadDuration),
		PromptEvalCount:    summary.PromptEvalCount,
		PromptEvalDuration: FormatDuration(summary.PromptEvalDuration),
		EvalCount:          summary.EvalCount,
		EvalDuration:       FormatDuration(summary.EvalDuration),
		GenerationSpeed:    GenerationSpeed(summary.EvalCount, summary.EvalDuration),
	}
}

// GenerationSpeed returns tokens per second, or 0 when no time was spent.
func GenerationSpeed(evalCount int, evalDuration time.Duration) float64 {
	if evalDuration <= 0 {
		return 0
	}
	return float64(evalCount) / evalDuration.Seconds()
}

// FormatDuration renders sub-second values in milliseconds and everything
// else in seconds.
func FormatDuration(d time.Duration) string {
	seconds := d.Seconds()
	switch {
	case seconds < 1:
		return fmt.Sprintf("%.1f ms", seconds*1000)
	case seconds < 60:
		return fmt.Sprintf("%.3f s", seconds)
	default:
		return fmt.Sprintf("%.1f s", seconds)
	}
}

// ContentHash keys stats by message content.
func ContentHash(content string) string {
	return strconv.FormatUint(xxhash.Sum64String(content), 16)
}
