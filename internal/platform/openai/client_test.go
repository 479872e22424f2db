package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

func newTestClient(t *testing.T, baseURL string, temp *float64) *client {
	t.Helper()
	c, err := NewClient(logger.Nop(), Config{
		APIKey:      "sk-test",
		BaseURL:     baseURL,
		Model:       "gpt-test",
		MaxRetries:  2,
		Temperature: temp,
	})
	require.NoError(t, err)
	impl := c.(*client)
	impl.retryDelay = time.Millisecond
	return impl
}

func writeJSONOutput(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"output": []any{
			map[string]any{
				"type": "message",
				"role": "assistant",
				"content": []any{
					map[string]any{"type": "output_text", "text": text},
				},
			},
		},
	})
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(logger.Nop(), Config{})
	require.Error(t, err)
	_, err = NewClient(nil, Config{APIKey: "k"})
	require.Error(t, err)
}

func TestGenerateJSON(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/responses", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		writeJSONOutput(w, `{"title":"Go in 30 days","topics":["syntax","concurrency"]}`)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, nil)
	var out struct {
		Title  string   `json:"title"`
		Topics []string `json:"topics"`
	}
	err := c.GenerateJSON(context.Background(), "system", "user", "learning_path", map[string]any{"type": "object"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "Go in 30 days", out.Title)
	assert.Equal(t, []string{"syntax", "concurrency"}, out.Topics)

	assert.Equal(t, "gpt-test", gotBody["model"])
	format := gotBody["text"].(map[string]any)["format"].(map[string]any)
	assert.Equal(t, "json_schema", format["type"])
	assert.Equal(t, "learning_path", format["name"])
	assert.Equal(t, true, format["strict"])
	_, hasTemp := gotBody["temperature"]
	assert.False(t, hasTemp)
}

func TestGenerateJSONRetriesTransientFailures(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error":"overloaded"}`))
			return
		}
		writeJSONOutput(w, `{"ok":true}`)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, nil)
	var out map[string]any
	require.NoError(t, c.GenerateJSON(context.Background(), "s", "u", "x", map[string]any{}, &out))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Equal(t, true, out["ok"])
}

func TestGenerateJSONDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"bad schema"}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, nil)
	var out map[string]any
	err := c.GenerateJSON(context.Background(), "s", "u", "x", map[string]any{}, &out)
	require.Error(t, err)

	var he *openAIHTTPError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusBadRequest, he.HTTPStatusCode())
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGenerateJSONDropsRejectedTemperature(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if _, ok := body["temperature"]; ok {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"message":"Unsupported parameter: 'temperature' is not supported with this model."}}`))
			return
		}
		writeJSONOutput(w, `{"ok":true}`)
	}))
	defer server.Close()

	temp := 0.2
	c := newTestClient(t, server.URL, &temp)
	var out map[string]any
	require.NoError(t, c.GenerateJSON(context.Background(), "s", "u", "x", map[string]any{}, &out))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestGenerateJSONRefusal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"output":[{"type":"message","role":"assistant","content":[{"type":"refusal","refusal":"cannot help"}]}]}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, nil)
	var out map[string]any
	err := c.GenerateJSON(context.Background(), "s", "u", "x", map[string]any{}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model refused")
}

func sseServer(t *testing.T, check func(body map[string]any), deltas ...string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if check != nil {
			check(body)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		flusher, _ := w.(http.Flusher)
		for _, d := range deltas {
			payload, _ := json.Marshal(map[string]any{"type": "response.output_text.delta", "delta": d})
			fmt.Fprintf(w, "event: response.output_text.delta\ndata: %s\n\n", payload)
			if flusher != nil {
				flusher.Flush()
			}
		}
		fmt.Fprint(w, "event: response.completed\ndata: {\"type\":\"response.completed\"}\n\n")
	}))
}

func TestStreamChat(t *testing.T) {
	server := sseServer(t, func(body map[string]any) {
		assert.Equal(t, true, body["stream"])
		assert.Equal(t, float64(1000), body["max_output_tokens"])
		assert.Equal(t, 0.7, body["temperature"])
		input := body["input"].([]any)
		require.Len(t, input, 3)
		assert.Equal(t, "system", input[0].(map[string]any)["role"])
		assert.Equal(t, "assistant", input[2].(map[string]any)["role"])
	}, "Start ", "with ", "basics.")
	defer server.Close()

	c := newTestClient(t, server.URL, nil)
	temp := 0.7
	var deltas []string
	full, err := c.StreamChat(context.Background(), ChatRequest{
		System: "You are a helpful AI learning assistant.",
		Messages: []Message{
			{Role: RoleUser, Content: "How do I start?"},
			{Role: RoleAssistant, Content: "Pick a goal."},
		},
		Temperature:     &temp,
		MaxOutputTokens: 1000,
	}, func(d string) error {
		deltas = append(deltas, d)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Start with basics.", full)
	assert.Equal(t, []string{"Start ", "with ", "basics."}, deltas)
}

func TestStreamChatAbortsWhenCallbackFails(t *testing.T) {
	server := sseServer(t, nil, "a", "b", "c")
	defer server.Close()

	c := newTestClient(t, server.URL, nil)
	gone := errors.New("client disconnected")
	full, err := c.StreamChat(context.Background(), ChatRequest{
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	}, func(string) error { return gone })
	assert.ErrorIs(t, err, gone)
	assert.Equal(t, "a", full)
}

func TestStreamChatUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"bad key"}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, nil)
	_, err := c.StreamChat(context.Background(), ChatRequest{Messages: []Message{{Role: RoleUser, Content: "hi"}}}, nil)
	var he *openAIHTTPError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusUnauthorized, he.StatusCode)
}

func TestGenerateJSONTimesOutPerAttempt(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		select {
		case <-r.Context().Done():
		case <-time.After(500 * time.Millisecond):
		}
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, nil)
	c.timeout = 30 * time.Millisecond
	c.maxRetries = 0

	var out map[string]any
	err := c.GenerateJSON(context.Background(), "s", "u", "x", map[string]any{"type": "object"}, &out)
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestStreamChatOutlivesRequestTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher, _ := w.(http.Flusher)
		for _, d := range []string{"slow ", "but ", "complete"} {
			time.Sleep(25 * time.Millisecond)
			payload, _ := json.Marshal(map[string]any{"type": "response.output_text.delta", "delta": d})
			fmt.Fprintf(w, "event: response.output_text.delta\ndata: %s\n\n", payload)
			if flusher != nil {
				flusher.Flush()
			}
		}
		fmt.Fprint(w, "event: response.completed\ndata: {\"type\":\"response.completed\"}\n\n")
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, nil)
	c.timeout = 30 * time.Millisecond

	full, err := c.StreamChat(context.Background(), ChatRequest{
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	}, func(string) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, "slow but complete", full)
}
