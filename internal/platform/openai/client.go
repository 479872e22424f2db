package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/go-resty/resty/v2"

	"github.com/yungbote/learnpath-backend/internal/platform/ctxutil"
	"github.com/yungbote/learnpath-backend/internal/platform/httpx"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
	"github.com/yungbote/learnpath-backend/internal/platform/promptstyle"
)

//go:generate mockgen -source=client.go -destination=../../mocks/openai/mock_client.go -package=mock_openai

// Client talks to the Responses API.
type Client interface {
	// GenerateJSON asks for a strict json_schema response and decodes it into out.
	GenerateJSON(ctx context.Context, system, user, schemaName string, schema map[string]any, out any) error
	// StreamChat forwards output_text deltas to onDelta and returns the full text.
	// Returning an error from onDelta aborts the stream.
	StreamChat(ctx context.Context, req ChatRequest, onDelta func(delta string) error) (string, error)
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	System          string
	Messages        []Message
	Temperature     *float64
	MaxOutputTokens int
}

type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Timeout     time.Duration
	MaxRetries  int
	Temperature *float64
}

type client struct {
	log         *logger.Logger
	http        *resty.Client
	model       string
	maxRetries  int
	retryDelay  time.Duration
	timeout     time.Duration
	temperature *float64
}

func NewClient(log *logger.Logger, cfg Config) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("missing OPENAI_API_KEY")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "gpt-4o-mini"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 180 * time.Second
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	rc := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json")

	return &client{
		log:         log.With("service", "OpenAIClient"),
		http:        rc,
		model:       model,
		maxRetries:  maxRetries,
		retryDelay:  time.Second,
		timeout:     timeout,
		temperature: cfg.Temperature,
	}, nil
}

type openAIHTTPError struct {
	StatusCode int
	Body       string
	Header     http.Header
}

func (e *openAIHTTPError) Error() string {
	return fmt.Sprintf("openai http %d: %s", e.StatusCode, e.Body)
}

func (e *openAIHTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

func isUnsupportedTemperatureMessage(s string) bool {
	msg := strings.ToLower(s)
	if !strings.Contains(msg, "temperature") {
		return false
	}
	for _, hint := range []string{"unsupported parameter", "unknown parameter", "not supported", "does not support", "only the default"} {
		if strings.Contains(msg, hint) {
			return true
		}
	}
	return false
}

type inputItem struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type textOptions struct {
	Format map[string]any `json:"format,omitempty"`
}

type responsesRequest struct {
	Model           string       `json:"model"`
	Input           []inputItem  `json:"input"`
	Text            *textOptions `json:"text,omitempty"`
	Temperature     *float64     `json:"temperature,omitempty"`
	MaxOutputTokens int          `json:"max_output_tokens,omitempty"`
	Stream          bool         `json:"stream,omitempty"`
}

type responsesResponse struct {
	Output []struct {
		Type    string `json:"type"`
		Role    string `json:"role,omitempty"`
		Content []struct {
			Type    string `json:"type"`
			Text    string `json:"text,omitempty"`
			Refusal string `json:"refusal,omitempty"`
		} `json:"content,omitempty"`
	} `json:"output"`
	Refusal string `json:"refusal,omitempty"`
}

func extractOutputText(resp responsesResponse) (string, string) {
	var out strings.Builder
	refusal := strings.TrimSpace(resp.Refusal)
	for _, item := range resp.Output {
		if item.Type != "message" || item.Role != "assistant" {
			continue
		}
		for _, c := range item.Content {
			switch c.Type {
			case "output_text":
				out.WriteString(c.Text)
			case "refusal":
				if refusal == "" {
					refusal = strings.TrimSpace(c.Refusal)
				}
			}
		}
	}
	return out.String(), refusal
}

// doOnce bounds a single buffered request by the client timeout. Streams are
// opened without it and live as long as the caller's context.
func (c *client) doOnce(ctx context.Context, path string, body any) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctxutil.Default(ctx), c.timeout)
	defer cancel()
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post(path)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, &openAIHTTPError{StatusCode: resp.StatusCode(), Body: string(resp.Body()), Header: resp.Header()}
	}
	return resp.Body(), nil
}

func (c *client) do(ctx context.Context, path string, body any, out any) error {
	var raw []byte
	err := retry.Do(
		func() error {
			b, err := c.doOnce(ctx, path, body)
			if err != nil {
				return err
			}
			raw = b
			return nil
		},
		retry.Context(ctxutil.Default(ctx)),
		retry.Attempts(uint(c.maxRetries)+1),
		retry.LastErrorOnly(true),
		retry.RetryIf(httpx.IsRetryableError),
		retry.DelayType(func(n uint, err error, _ *retry.Config) time.Duration {
			var header http.Header
			var he *openAIHTTPError
			if errors.As(err, &he) {
				header = he.Header
			}
			return httpx.JitterSleep(httpx.RetryAfterDuration(header, c.retryDelay<<n, 10*time.Second))
		}),
		retry.OnRetry(func(n uint, err error) {
			c.log.Warn("OpenAI request retrying",
				"path", path,
				"attempt", n+1,
				"max_retries", c.maxRetries,
				"error", err.Error(),
			)
		}),
	)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("openai decode error: %w", err)
	}
	return nil
}

// doResponses retries exactly once without temperature if the model rejects it.
func (c *client) doResponses(ctx context.Context, req *responsesRequest, out *responsesResponse) error {
	err := c.do(ctx, "/v1/responses", req, out)
	if err == nil || req.Temperature == nil || !isUnsupportedTemperatureMessage(err.Error()) {
		return err
	}
	c.log.Info("Model rejected temperature, retrying without it", "model", req.Model)
	req.Temperature = nil
	return c.do(ctx, "/v1/responses", req, out)
}

func (c *client) GenerateJSON(ctx context.Context, system, user, schemaName string, schema map[string]any, out any) error {
	if schemaName == "" {
		return errors.New("schemaName required")
	}
	if schema == nil {
		return errors.New("schema required")
	}
	req := responsesRequest{
		Model: c.model,
		Input: []inputItem{
			{Role: RoleSystem, Content: promptstyle.ApplySystem(system, promptstyle.ModeJSON)},
			{Role: RoleUser, Content: user},
		},
		Text: &textOptions{Format: map[string]any{
			"type":   "json_schema",
			"name":   schemaName,
			"schema": schema,
			"strict": true,
		}},
		Temperature: c.temperature,
	}

	var resp responsesResponse
	if err := c.doResponses(ctx, &req, &resp); err != nil {
		return err
	}
	text, refusal := extractOutputText(resp)
	if refusal != "" {
		return fmt.Errorf("model refused: %s", refusal)
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("no output_text found in response")
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("failed to parse model JSON: %w", err)
	}
	return nil
}

func (c *client) StreamChat(ctx context.Context, in ChatRequest, onDelta func(delta string) error) (string, error) {
	req := responsesRequest{
		Model:           c.model,
		Input:           make([]inputItem, 0, len(in.Messages)+1),
		Temperature:     in.Temperature,
		MaxOutputTokens: in.MaxOutputTokens,
		Stream:          true,
	}
	if req.Temperature == nil {
		req.Temperature = c.temperature
	}
	if sys := promptstyle.ApplySystem(in.System, promptstyle.ModeChat); sys != "" {
		req.Input = append(req.Input, inputItem{Role: RoleSystem, Content: sys})
	}
	for _, m := range in.Messages {
		req.Input = append(req.Input, inputItem{Role: m.Role, Content: m.Content})
	}

	body, err := c.openStream(ctx, &req)
	if err != nil {
		var he *openAIHTTPError
		if errors.As(err, &he) && req.Temperature != nil && isUnsupportedTemperatureMessage(he.Body) {
			req.Temperature = nil
			body, err = c.openStream(ctx, &req)
		}
	}
	if err != nil {
		return "", err
	}
	defer body.Close()

	var full strings.Builder
	err = streamSSE(body, func(event string, data string) error {
		data = strings.TrimSpace(data)
		if data == "" || data == "[DONE]" {
			return nil
		}
		var obj map[string]any
		if err := json.Unmarshal([]byte(data), &obj); err != nil {
			return nil
		}
		evt := strings.TrimSpace(event)
		if t, ok := obj["type"].(string); ok && strings.TrimSpace(t) != "" {
			evt = strings.TrimSpace(t)
		}
		if r, ok := obj["refusal"].(string); ok && strings.TrimSpace(r) != "" {
			return fmt.Errorf("model refused: %s", r)
		}
		if eAny, ok := obj["error"]; ok && eAny != nil {
			b, _ := json.Marshal(eAny)
			return fmt.Errorf("openai stream error: %s", string(b))
		}
		d, ok := obj["delta"].(string)
		if !ok || d == "" || !strings.Contains(evt, "output_text.delta") {
			return nil
		}
		full.WriteString(d)
		if onDelta != nil {
			return onDelta(d)
		}
		return nil
	})
	if err != nil {
		return full.String(), err
	}
	return full.String(), nil
}

func (c *client) openStream(ctx context.Context, req *responsesRequest) (io.ReadCloser, error) {
	resp, err := c.http.R().
		SetContext(ctxutil.Default(ctx)).
		SetHeader("Accept", "text/event-stream").
		SetDoNotParseResponse(true).
		SetBody(req).
		Post("/v1/responses")
	if err != nil {
		return nil, err
	}
	body := resp.RawBody()
	if resp.StatusCode() >= 200 && resp.StatusCode() < 300 {
		return body, nil
	}
	raw, _ := io.ReadAll(body)
	_ = body.Close()
	return nil, &openAIHTTPError{StatusCode: resp.StatusCode(), Body: string(raw), Header: resp.Header()}
}
