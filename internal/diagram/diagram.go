// Package diagram turns a free-text description into Mermaid markup using a
// hosted language model. Each call is a single attempt.
package diagram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrAPIKeyRequired is returned when the backend has no credential
var ErrAPIKeyRequired = errors.New("API key required")

// Generator produces Mermaid markup for a prompt
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"

	DefaultOpenAIBaseURL  = "https://integrate.api.nvidia.com/v1"
	DefaultOpenAIModel    = "meta/llama-3.1-70b-instruct"
	DefaultAnthropicModel = "claude-3-5-haiku-latest"

	Temperature = 0.3
	MaxTokens   = 1000
)

// SystemPrompt is sent with every request
const SystemPrompt = `You are a Mermaid diagram generator. Convert user descriptions into valid Mermaid diagram syntax.

Rules:
1. Only output the Mermaid code, no explanations or markdown formatting
2. Do not wrap the output in ` + "```mermaid" + ` code blocks
3. Choose the most appropriate diagram type (flowchart, sequenceDiagram, classDiagram, etc.)
4. Make the diagram clear and well-structured
5. Use descriptive labels and meaningful relationships

Examples:
- "A user logs in, then views dashboard" -> flowchart TD
    A[User] -->|logs in| B[Login]
    B -->|views| C[Dashboard]
- "Alice sends message to Bob" -> sequenceDiagram
    Alice->>Bob: Message
`

// UserPrompt wraps the caller's description
func UserPrompt(prompt string) string {
	return "Convert this description into a Mermaid diagram: " + prompt
}

// Options configures a backend. Empty fields take the provider defaults.
type Options struct {
	Provider   string
	BaseURL    string
	Model      string
	APIKey     string
	HTTPClient *http.Client
}

// New returns the backend named by opts.Provider (openai when empty)
func New(opts Options) (Generator, error) {
	switch strings.ToLower(opts.Provider) {
	case "", ProviderOpenAI:
		return NewOpenAI(opts), nil
	case ProviderAnthropic:
		return NewAnthropic(opts), nil
	default:
		return nil, fmt.Errorf("unknown diagram provider %q", opts.Provider)
	}
}

// httpClient has no timeout of its own; the caller's context bounds the call
func httpClient(c *http.Client) *http.Client {
	if c != nil {
		return c
	}
	return http.DefaultClient
}

// CleanMarkup trims a model reply and strips a surrounding code fence. The
// opening fence line is always dropped; the closing one only if present.
func CleanMarkup(reply string) string {
	reply = strings.TrimSpace(reply)
	if !strings.HasPrefix(reply, "```") {
		return reply
	}

	lines := strings.Split(reply, "\n")[1:]
	if n := len(lines); n > 0 && strings.TrimSpace(lines[n-1]) == "```" {
		lines = lines[:n-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
