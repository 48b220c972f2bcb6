// Package ollama is the HTTP client for a local Ollama model server.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"ai-mock-interview/internal/config"
	"ai-mock-interview/internal/metrics"
)

// Sentinel errors for the distinguishable gateway failure modes.
var (
	// ErrUnreachable means the server did not accept the connection at all.
	ErrUnreachable = errors.New("ollama server unreachable")
	// ErrTimeout means a generate call ran past its deadline.
	ErrTimeout = errors.New("ollama generate timed out")
)

// StatusError is a non-success HTTP response from the model server.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("ollama returned HTTP %d: %s", e.Code, e.Body)
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	MaxTokens   int     `json:"max_tokens"`
}

type generateResponse struct {
	Response string `json:"response"`
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Client talks to one Ollama server. Generate calls carry a long timeout
// so a slow local model finishes instead of failing.
type Client struct {
	baseURL     string
	model       string
	options     generateOptions
	client      *http.Client
	probeClient *http.Client
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// New builds a client from the Ollama section of the configuration.
func New(cfg config.OllamaConfig, m *metrics.Metrics, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		options: generateOptions{
			Temperature: cfg.Temperature,
			TopP:        cfg.TopP,
			MaxTokens:   cfg.MaxTokens,
		},
		client:      &http.Client{Timeout: cfg.GenerateTimeout},
		probeClient: &http.Client{Timeout: cfg.ProbeTimeout},
		metrics:     m,
		logger:      logger,
	}
}

// koreanGuard wraps every prompt with the language directives the target
// model needs to stay in Korean.
const koreanGuard = `다음 지시사항을 반드시 따르세요:
1. 오직 표준 한국어로만 답변하세요
2. 일본어, 중국어, 영어를 절대 사용하지 마세요
3. 자연스러운 한국어 존댓말로 대화하세요
4. 한국의 면접관처럼 정중하고 전문적으로 대화하세요

%s

반드시 완벽한 한국어로만 답변해주세요.`

// Generate sends a prompt to the model server and returns the generated
// text. Failures map onto the package's error taxonomy: ErrTimeout for a
// deadline, *StatusError for a non-200 response, and a wrapped transport
// error otherwise.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	request := generateRequest{
		Model:   c.model,
		Prompt:  fmt.Sprintf(koreanGuard, prompt),
		Stream:  false,
		Options: c.options,
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("marshaling generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("creating generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.countCall(false)
		if isTimeout(err) {
			c.logger.Warn("generate timed out", zap.String("model", c.model))
			return "", fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return "", fmt.Errorf("calling ollama: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.countCall(false)
		return "", fmt.Errorf("reading generate response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.countCall(false)
		c.logger.Warn("generate rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("model", c.model))
		return "", &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	var generated generateResponse
	if err := json.Unmarshal(body, &generated); err != nil {
		c.countCall(false)
		return "", fmt.Errorf("parsing generate response: %w", err)
	}

	c.countCall(true)
	return strings.TrimSpace(generated.Response), nil
}

// CheckConnection probes the server with a short timeout. It reports
// reachability only and never errors.
func (c *Client) CheckConnection() bool {
	resp, err := c.probeClient.Get(c.baseURL + "/api/tags")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// ListModels returns the names of the models installed on the server.
// The list is advisory; callers must not depend on it for correctness.
func (c *Client) ListModels() ([]string, error) {
	resp, err := c.probeClient.Get(c.baseURL + "/api/tags")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading tags response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	var tags tagsResponse
	if err := json.Unmarshal(body, &tags); err != nil {
		return nil, fmt.Errorf("parsing tags response: %w", err)
	}

	names := make([]string, 0, len(tags.Models))
	for _, model := range tags.Models {
		names = append(names, model.Name)
	}
	return names, nil
}

func (c *Client) countCall(success bool) {
	if c.metrics != nil {
		c.metrics.IncrementGatewayCall(success)
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var timeoutErr interface{ Timeout() bool }
	return errors.As(err, &timeoutErr) && timeoutErr.Timeout()
}
