package completion

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shadowintel/shadowbot/internal/agent"
)

// newFakeOpenAI serves a minimal chat-completions endpoint so the client can
// be exercised without the real collaborator.
func newFakeOpenAI(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/chat/completions", handler)
	return httptest.NewServer(mux)
}

func TestCompleteReturnsFirstChoice(t *testing.T) {
	t.Parallel()

	var gotBody map[string]any
	ts := newFakeOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"model": "gpt-3.5-turbo",
			"choices": [{"index": 0, "finish_reason": "stop",
				"message": {"role": "assistant", "content": "summary text"}}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
		}`))
	})
	defer ts.Close()

	c := New(Config{APIKey: "sk-test", BaseURL: ts.URL, Model: "gpt-3.5-turbo"}, nil, nil)
	out, err := c.Complete(context.Background(), "persona", "prompt")
	require.NoError(t, err)
	require.Equal(t, "summary text", out)

	msgs, ok := gotBody["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2, "exactly one system and one user message")
}

func TestCompleteServiceFaultIsCompletionError(t *testing.T) {
	t.Parallel()

	ts := newFakeOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "quota exceeded"}}`, http.StatusTooManyRequests)
	})
	defer ts.Close()

	c := New(Config{APIKey: "sk-test", BaseURL: ts.URL, Model: "gpt-3.5-turbo"}, nil, nil)
	_, err := c.Complete(context.Background(), "persona", "prompt")
	require.Error(t, err)

	var ce *agent.CompletionError
	require.True(t, errors.As(err, &ce))
}

func TestCompleteEmptyChoices(t *testing.T) {
	t.Parallel()

	ts := newFakeOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "chatcmpl-2", "object": "chat.completion", "choices": []}`))
	})
	defer ts.Close()

	c := New(Config{APIKey: "sk-test", BaseURL: ts.URL, Model: "gpt-3.5-turbo"}, nil, nil)
	_, err := c.Complete(context.Background(), "persona", "prompt")

	var ce *agent.CompletionError
	require.True(t, errors.As(err, &ce))
}

// stepClock advances a fixed step on every Now call so call latency is
// deterministic in tests.
type stepClock struct {
	mu    sync.Mutex
	now   time.Time
	step  time.Duration
	calls int
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	c.now = c.now.Add(c.step)
	return c.now
}

func TestCompleteMeasuresLatencyWithClock(t *testing.T) {
	t.Parallel()

	ts := newFakeOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-3",
			"object": "chat.completion",
			"choices": [{"index": 0, "finish_reason": "stop",
				"message": {"role": "assistant", "content": "ok"}}]
		}`))
	})
	defer ts.Close()

	clk := &stepClock{now: time.Unix(1000, 0), step: 250 * time.Millisecond}
	c := New(Config{APIKey: "sk-test", BaseURL: ts.URL, Model: "gpt-3.5-turbo"}, clk, nil)

	_, err := c.Complete(context.Background(), "persona", "prompt")
	require.NoError(t, err)
	require.Equal(t, 2, clk.calls, "one timestamp before the call, one after")
}

func TestFormatErrorEmbedsCause(t *testing.T) {
	t.Parallel()

	err := &agent.CompletionError{Err: errors.New("request timed out")}
	require.Equal(t, "OpenAI Error: request timed out", FormatError(err))
}
