// Package client talks to a running catalyst server over its JSON API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/existflow/catalyst/internal/model"
)

// DefaultServerURL matches the server's default listen address
const DefaultServerURL = "http://localhost:8000"

// Client is a catalyst API client
type Client struct {
	serverURL  string
	httpClient *http.Client
}

// New creates a client for serverURL. An empty URL uses DefaultServerURL.
func New(serverURL string) *Client {
	if serverURL == "" {
		serverURL = DefaultServerURL
	}
	return &Client{
		serverURL:  strings.TrimRight(serverURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// APIError is a non-2xx response. Detail carries the server's message.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Detail)
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.serverURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		var e struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(respBody, &e) != nil || e.Detail == "" {
			e.Detail = strings.TrimSpace(string(respBody))
		}
		return &APIError{StatusCode: resp.StatusCode, Detail: e.Detail}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Health reports whether the server and its store are up
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

// ListTickets returns projected tickets, newest first. An empty projectID
// lists every ticket.
func (c *Client) ListTickets(ctx context.Context, projectID string) (model.TicketList, error) {
	path := "/tickets"
	if projectID != "" {
		path += "?project_id=" + url.QueryEscape(projectID)
	}
	var list model.TicketList
	err := c.do(ctx, http.MethodGet, path, nil, &list)
	return list, err
}

func (c *Client) GetTicket(ctx context.Context, id string) (*model.TicketView, error) {
	var view model.TicketView
	if err := c.do(ctx, http.MethodGet, "/tickets/"+url.PathEscape(id), nil, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *Client) CreateTicket(ctx context.Context, in model.TicketInput) (*model.TicketView, error) {
	var view model.TicketView
	if err := c.do(ctx, http.MethodPost, "/tickets", in, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// GenerateMermaid asks the server to turn prompt into Mermaid markup
func (c *Client) GenerateMermaid(ctx context.Context, prompt string) (string, error) {
	var out struct {
		Mermaid string `json:"mermaid"`
	}
	err := c.do(ctx, http.MethodPost, "/mermaid/generate", map[string]string{"prompt": prompt}, &out)
	return out.Mermaid, err
}
