// Package ai provides a minimal chat-completions client with round-robin
// API key rotation on quota errors.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ErrNoKeys is returned when the client was built without API keys.
var ErrNoKeys = errors.New("no api keys configured")

// ErrExhausted is returned when every configured key was rejected.
var ErrExhausted = errors.New("all api keys rejected")

const systemPrompt = "انت مساعد ودود في مجموعه دردشه عربيه، اجب باختصار وباللغه العربيه."

// Client talks to an OpenAI-compatible chat-completions endpoint.
type Client struct {
	httpc   *http.Client
	baseURL string
	model   string

	mu   sync.Mutex
	keys []string
	idx  int

	log zerolog.Logger
}

// NewClient creates a client. baseURL is the API root without the
// /chat/completions suffix.
func NewClient(baseURL, model string, keys []string) *Client {
	return &Client{
		httpc:   &http.Client{Timeout: 20 * time.Second},
		baseURL: baseURL,
		model:   model,
		keys:    keys,
		log:     log.With().Str("component", "ai").Logger(),
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Chat sends the user text and returns the assistant reply. Keys that hit
// quota or auth errors are skipped round-robin; other errors return as-is.
func (c *Client) Chat(ctx context.Context, userText string) (string, error) {
	if len(c.keys) == 0 {
		return "", ErrNoKeys
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userText},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	for attempt := 0; attempt < len(c.keys); attempt++ {
		key := c.nextKey()
		reply, retryable, err := c.send(ctx, key, body)
		if err == nil {
			return reply, nil
		}
		if !retryable {
			return "", err
		}
		c.log.Warn().Err(err).Int("attempt", attempt+1).Msg("API key rejected, rotating")
	}
	return "", ErrExhausted
}

func (c *Client) nextKey() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.keys[c.idx%len(c.keys)]
	c.idx++
	return key
}

// send returns (reply, retryable, err). Quota and auth failures are
// retryable with the next key.
func (c *Client) send(ctx context.Context, key string, body []byte) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", false, fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+key)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests, http.StatusUnauthorized, http.StatusForbidden:
		io.Copy(io.Discard, resp.Body)
		return "", true, fmt.Errorf("chat api status %d", resp.StatusCode)
	default:
		io.Copy(io.Discard, resp.Body)
		return "", false, fmt.Errorf("chat api status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", false, fmt.Errorf("decode chat response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", false, errors.New("chat response has no choices")
	}
	return parsed.Choices[0].Message.Content, false, nil
}
