package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"guillama/backend/internal/metrics"
	"guillama/backend/internal/model"
)

// RunningSentinel is the body the server answers on its root path.
const RunningSentinel = "Ollama is running"

var (
	// ErrStreamClosed means the body ended before a terminal record arrived.
	ErrStreamClosed = errors.New("stream closed before terminal event")
	// ErrReadTimeout means no line arrived within the configured read timeout.
	ErrReadTimeout = errors.New("stream read timed out")
)

// TransportError is returned for non-2xx responses.
type TransportError struct {
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("api returned non-2xx status %d: %s", e.StatusCode, e.Body)
}

// ServerError is an error record sent by the server inside the stream.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return "model server error: " + e.Message
}

// StreamHandler receives stream callbacks. OnToken gets only the delta of each
// record; accumulation is up to the caller. OnError fires at most once.
type StreamHandler struct {
	OnToken     func(model.TokenEvent)
	OnSummary   func(model.SummaryEvent)
	OnError     func(error)
	OnMalformed func(line []byte, err error)
}

// LLMProvider defines the interface for interacting with the model server.
type LLMProvider interface {
	Stream(ctx context.Context, req *model.PromptRequest, h StreamHandler) error
	ListModels(ctx context.Context) (*ListModelsResponse, error)
	IsRunning(ctx context.Context) (bool, error)
}

// ProviderConfig carries the transport timeouts. Zero disables a timeout.
type ProviderConfig struct {
	BaseURL        string
	ConnectTimeout time.Duration
	WriteTimeout   time.Duration
	ReadTimeout    time.Duration
	CallTimeout    time.Duration
}

// DefaultProviderConfig returns timeouts sized for unbounded inference latency.
func DefaultProviderConfig(baseURL string) ProviderConfig {
	return ProviderConfig{
		BaseURL:        baseURL,
		ConnectTimeout: 30 * time.Second,
		WriteTimeout:   30 * time.Second,
		ReadTimeout:    300 * time.Second,
		CallTimeout:    600 * time.Second,
	}
}

type ollamaProvider struct {
	client *http.Client
	url    string
	cfg    ProviderConfig
}

func NewOllamaProvider(cfg ProviderConfig) LLMProvider {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{
		Timeout:   cfg.ConnectTimeout,
		KeepAlive: 30 * time.Second,
	}).DialContext
	transport.ResponseHeaderTimeout = cfg.WriteTimeout

	return &ollamaProvider{
		client: &http.Client{Transport: transport},
		url:    strings.TrimRight(cfg.BaseURL, "/"),
		cfg:    cfg,
	}
}

// Stream posts req to /api/chat and feeds each decoded line to h. It returns
// after the terminal record or on the first fatal error, which is also handed
// to h.OnError.
func (p *ollamaProvider) Stream(ctx context.Context, req *model.PromptRequest, h StreamHandler) error {
	err := p.stream(ctx, req, h)
	if err != nil && h.OnError != nil {
		h.OnError(err)
	}
	return err
}

func (p *ollamaProvider) stream(ctx context.Context, req *model.PromptRequest, h StreamHandler) error {
	if p.cfg.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.CallTimeout)
		defer cancel()
	}
	ctx, cancelIdle := context.WithCancelCause(ctx)
	defer cancelIdle(nil)

	body, err := json.Marshal(&ChatRequest{Model: req.Model, Messages: req.Messages, Stream: true})
	if err != nil {
		return fmt.Errorf("could not marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("request failed: %w", p.cause(ctx, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &TransportError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(bodyBytes))}
	}

	var idle *time.Timer
	if p.cfg.ReadTimeout > 0 {
		idle = time.AfterFunc(p.cfg.ReadTimeout, func() { cancelIdle(ErrReadTimeout) })
		defer idle.Stop()
	}

	reader := bufio.NewReader(resp.Body)
	for {
		line, readErr := reader.ReadBytes('\n')
		if idle != nil {
			idle.Reset(p.cfg.ReadTimeout)
		}

		line = bytes.TrimSpace(line)
		if len(line) > 0 {
			done, err := p.handleLine(line, h)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return ErrStreamClosed
			}
			return fmt.Errorf("could not read stream: %w", p.cause(ctx, readErr))
		}
	}
}

// handleLine decodes one record. A record that fails to decode is reported
// and skipped.
func (p *ollamaProvider) handleLine(line []byte, h StreamHandler) (bool, error) {
	var env chatEnvelope
	err := json.Unmarshal(line, &env)
	if err == nil && env.Error != "" {
		return false, &ServerError{Message: env.Error}
	}
	if err == nil && env.Message == nil && !env.Done {
		err = errors.New("record has neither message nor done flag")
	}
	if err != nil {
		slog.Warn("Skipping malformed stream line", "error", err, "line", truncate(string(line), 200))
		metrics.MalformedLine()
		if h.OnMalformed != nil {
			h.OnMalformed(line, err)
		}
		return false, nil
	}

	if !env.Done {
		if h.OnToken != nil {
			h.OnToken(env.tokenEvent())
		}
		return false, nil
	}

	if h.OnSummary != nil {
		h.OnSummary(env.summaryEvent())
	}
	return true, nil
}

// cause prefers the reason the request context was cancelled over the
// generic error the transport surfaced.
func (p *ollamaProvider) cause(ctx context.Context, err error) error {
	if cause := context.Cause(ctx); cause != nil {
		if errors.Is(cause, ErrReadTimeout) {
			return ErrReadTimeout
		}
		return cause
	}
	return err
}

// ListModels returns the locally installed models.
func (p *ollamaProvider) ListModels(ctx context.Context) (*ListModelsResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("could not create http request: %w", err)
	}
	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &TransportError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(bodyBytes))}
	}

	var list ListModelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("could not decode model list: %w", err)
	}
	return &list, nil
}

// IsRunning probes the server root for the liveness sentinel.
func (p *ollamaProvider) IsRunning(ctx context.Context) (bool, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return false, fmt.Errorf("could not create http request: %w", err)
	}
	resp, err := p.client.Do(httpReq)
	if err != nil {
		return false, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if err != nil {
		return false, fmt.Errorf("could not read response body: %w", err)
	}
	return strings.TrimSpace(string(bodyBytes)) == RunningSentinel, nil
}

// truncate shortens a string to a specified number of runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
