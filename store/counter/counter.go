// Package counter allocates pickup ids from a single shared integer held in
// Upstash Redis, reached over its REST API.
//
// The id is minted by the store's atomic INCR, never computed from a snapshot
// read, so concurrent orders can never receive the same id. INCR on an absent
// key initializes it to 0 first, which makes the first-ever order id 1 with
// no separate bootstrap step.
package counter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultCounterKey    = "parlor:pickup:latest_id"
	maxResponseSizeBytes = 1 << 20
)

type Config struct {
	URL     string        `envconfig:"URL" split_words:"true" required:"true"`
	Token   string        `envconfig:"TOKEN" split_words:"true" required:"true"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"10s"`
}

// Option customizes UpstashCounter.
type Option func(*UpstashCounter)

func WithKey(key string) Option {
	return func(c *UpstashCounter) {
		trimmed := strings.TrimSpace(key)
		if trimmed != "" {
			c.key = trimmed
		}
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *UpstashCounter) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// UpstashCounter exposes the shared counter through its atomic increment
// only. There is deliberately no raw read or write access.
type UpstashCounter struct {
	baseURL    string
	token      string
	key        string
	httpClient *http.Client
}

type redisRESTResponse struct {
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error"`
}

func NewUpstashCounter(cfg Config, opts ...Option) (*UpstashCounter, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if baseURL == "" {
		return nil, errors.New("upstash redis url is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid redis rest url: %w", err)
	}

	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, errors.New("upstash redis token is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &UpstashCounter{
		baseURL: baseURL,
		token:   token,
		key:     defaultCounterKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c, nil
}

// Next advances the shared counter by one and returns the new value.
func (c *UpstashCounter) Next(ctx context.Context) (int64, error) {
	resp, err := c.exec(ctx, []any{"INCR", c.key})
	if err != nil {
		return 0, err
	}

	var value int64
	if err := json.Unmarshal(bytes.TrimSpace(resp.Result), &value); err != nil {
		return 0, fmt.Errorf("decode counter value: %w", err)
	}
	return value, nil
}

func (c *UpstashCounter) exec(ctx context.Context, command []any) (*redisRESTResponse, error) {
	if c == nil {
		return nil, errors.New("nil counter")
	}

	body, err := json.Marshal(command)
	if err != nil {
		return nil, fmt.Errorf("marshal redis command: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build redis request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute redis request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return nil, fmt.Errorf("read redis response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("redis http status=%d body=%s", resp.StatusCode, string(raw))
	}

	var parsed redisRESTResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode redis response: %w", err)
	}
	if parsed.Error != "" {
		return nil, errors.New(parsed.Error)
	}
	return &parsed, nil
}
