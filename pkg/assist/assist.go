package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/depot/shredder/internal/build"
	"github.com/depot/shredder/pkg/debuglog"
	"github.com/depot/shredder/pkg/pipeline"
	"github.com/depot/shredder/pkg/retry"
	"github.com/pkg/errors"
)

const (
	DefaultModel   = "gpt-4o-mini"
	DefaultBaseURL = "https://api.openai.com/v1"

	maxTokens   = 1200
	temperature = 0.3
)

var ErrNoAPIKey = errors.New("no OpenAI API key configured; run `shredder configure --openai-key` or set SHREDDER_OPENAI_API_KEY")

// Client translates workflows through a chat-completions API. The result is
// free-form text with no structural guarantees.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	attempts   int
	retryDelay time.Duration
	httpClient *http.Client
}

type Option func(*Client)

func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = strings.TrimRight(url, "/")
		}
	}
}

func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *Client) {
		c.attempts = attempts
		c.retryDelay = delay
	}
}

func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		model:      DefaultModel,
		attempts:   3,
		retryDelay: time.Second,
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func SystemPrompt(lang pipeline.Language) string {
	return fmt.Sprintf("You are a CI-to-Dagger translator. Input is YAML for GitHub Actions.\n"+
		"Output %s code using Dagger SDK that does the same high-level work (checkout, build, test, push image, etc.). Keep it ≤40 lines.",
		lang.Title())
}

func UserPrompt(yamlText string, lang pipeline.Language) string {
	return fmt.Sprintf("Convert this GitHub Actions YAML to Dagger (%s):\n\n%s", lang, yamlText)
}

// Translate returns the first completion choice, or "" when there is none.
func (c *Client) Translate(ctx context.Context, yamlText string, lang pipeline.Language) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}

	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: SystemPrompt(lang)},
			{Role: "user", Content: UserPrompt(yamlText, lang)},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}

	var resp chatResponse
	err = retry.RetryContext(ctx, func() error {
		return c.post(ctx, "/chat/completions", payload, &resp)
	}, c.attempts, c.retryDelay)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *Client) post(ctx context.Context, path string, payload []byte, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return retry.Permanent(err)
	}

	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	req.Header.Add("User-Agent", build.UserAgent())

	debuglog.Log("assist: POST %s model=%s", c.baseURL+path, c.model)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return retry.Permanent(ctx.Err())
		}
		return errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := errors.Errorf("unexpected status %d", resp.StatusCode)
		var errResp errorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Error.Message != "" {
			apiErr = errors.Errorf("%s (status %d)", errResp.Error.Message, resp.StatusCode)
		}
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return apiErr
		}
		return retry.Permanent(apiErr)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return retry.Permanent(errors.Wrap(err, "failed to decode response"))
	}
	return nil
}
