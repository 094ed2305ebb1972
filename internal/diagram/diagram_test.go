package diagram

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanMarkup(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{"fenced with language", "```mermaid\nflowchart TD\nA-->B\n```", "flowchart TD\nA-->B"},
		{"bare fence", "```\nsequenceDiagram\nAlice->>Bob: Hi\n```", "sequenceDiagram\nAlice->>Bob: Hi"},
		{"missing closing fence", "```mermaid\nflowchart TD\nA-->B", "flowchart TD\nA-->B"},
		{"surrounding whitespace", "\n\n  ```mermaid\nflowchart LR\nX-->Y\n```  \n", "flowchart LR\nX-->Y"},
		{"plain", "  classDiagram\nA <|-- B  ", "classDiagram\nA <|-- B"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanMarkup(tt.reply))
		})
	}
}

func TestNewSelectsBackend(t *testing.T) {
	g, err := New(Options{})
	require.NoError(t, err)
	assert.IsType(t, &OpenAI{}, g)

	g, err = New(Options{Provider: "Anthropic"})
	require.NoError(t, err)
	assert.IsType(t, &Anthropic{}, g)

	_, err = New(Options{Provider: "ollama"})
	assert.Error(t, err)
}

func TestOpenAIDefaults(t *testing.T) {
	o := NewOpenAI(Options{})
	assert.Equal(t, DefaultOpenAIBaseURL, o.baseURL)
	assert.Equal(t, DefaultOpenAIModel, o.model)
	assert.Zero(t, o.httpClient.Timeout)
}

func TestOpenAIGenerateHonoursContextDeadline(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	o := NewOpenAI(Options{BaseURL: server.URL + "/v1", APIKey: "test-key"})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := o.Generate(ctx, "Alice sends message to Bob")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), err.Error())
}

func TestOpenAIGenerate(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{{
				"message":       map[string]string{"role": "assistant", "content": "```mermaid\nsequenceDiagram\n    Alice->>Bob: Message\n```"},
				"finish_reason": "stop",
			}},
		})
	}))
	defer server.Close()

	o := NewOpenAI(Options{BaseURL: server.URL + "/v1/", APIKey: "test-key", Model: "test-model"})
	markup, err := o.Generate(context.Background(), "Alice sends message to Bob")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(markup, "sequenceDiagram"))
	assert.NotContains(t, markup, "```")

	assert.Equal(t, "test-model", got.Model)
	assert.Equal(t, 0.3, got.Temperature)
	assert.Equal(t, 1000, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, SystemPrompt, got.Messages[0].Content)
	assert.Equal(t, "Convert this description into a Mermaid diagram: Alice sends message to Bob", got.Messages[1].Content)
}

func TestOpenAIErrors(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { calls++ }))
		defer server.Close()

		_, err := NewOpenAI(Options{BaseURL: server.URL}).Generate(context.Background(), "x")
		assert.True(t, errors.Is(err, ErrAPIKeyRequired))
		assert.Zero(t, calls)
	})

	t.Run("error status is not retried", func(t *testing.T) {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
		}))
		defer server.Close()

		_, err := NewOpenAI(Options{BaseURL: server.URL, APIKey: "k"}).Generate(context.Background(), "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 429")
		assert.Contains(t, err.Error(), "rate limited")
		assert.Equal(t, 1, calls)
	})

	t.Run("no choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices":[]}`))
		}))
		defer server.Close()

		_, err := NewOpenAI(Options{BaseURL: server.URL, APIKey: "k"}).Generate(context.Background(), "x")
		assert.Error(t, err)
	})

	t.Run("unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		_, err := NewOpenAI(Options{BaseURL: url, APIKey: "k"}).Generate(context.Background(), "x")
		assert.Error(t, err)
	})
}

func TestAnthropicGenerate(t *testing.T) {
	var got map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "msg_01",
			"type": "message",
			"role": "assistant",
			"model": "claude-3-5-haiku-latest",
			"content": [{"type": "text", "text": "` + "```mermaid\\nflowchart TD\\nA-->B\\n```" + `"}],
			"stop_reason": "end_turn",
			"stop_sequence": null,
			"usage": {"input_tokens": 12, "output_tokens": 9}
		}`))
	}))
	defer server.Close()

	a := NewAnthropic(Options{BaseURL: server.URL, APIKey: "test-key"})
	markup, err := a.Generate(context.Background(), "A goes to B")
	require.NoError(t, err)
	assert.Equal(t, "flowchart TD\nA-->B", markup)

	assert.Equal(t, DefaultAnthropicModel, got["model"])
	assert.Equal(t, 0.3, got["temperature"])
	assert.Equal(t, float64(1000), got["max_tokens"])
}

func TestAnthropicErrors(t *testing.T) {
	_, err := NewAnthropic(Options{}).Generate(context.Background(), "x")
	assert.True(t, errors.Is(err, ErrAPIKeyRequired))

	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"type":"error","error":{"type":"api_error","message":"overloaded"}}`))
	}))
	defer server.Close()

	_, err = NewAnthropic(Options{BaseURL: server.URL, APIKey: "k"}).Generate(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overloaded")
	assert.Equal(t, 1, calls)
}
