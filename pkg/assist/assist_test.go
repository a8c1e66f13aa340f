package assist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/depot/shredder/pkg/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string, opts ...Option) *Client {
	opts = append([]Option{WithBaseURL(url), WithRetry(3, time.Millisecond)}, opts...)
	return New("sk-test", opts...)
}

func TestTranslateSendsPrompt(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.Contains(t, r.Header.Get("User-Agent"), "shredder/")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"print('hi')"}}]}`))
	}))
	defer server.Close()

	out, err := newTestClient(server.URL, WithModel("test-model")).Translate(context.Background(), "jobs: {}", pipeline.Python)
	require.NoError(t, err)
	assert.Equal(t, "print('hi')", out)

	assert.Equal(t, "test-model", got.Model)
	assert.Equal(t, 1200, got.MaxTokens)
	assert.InDelta(t, 0.3, got.Temperature, 0.0001)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Contains(t, got.Messages[0].Content, "Output Python code using Dagger SDK")
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "Convert this GitHub Actions YAML to Dagger (python):\n\njobs: {}", got.Messages[1].Content)
}

func TestTranslateNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	out, err := newTestClient(server.URL).Translate(context.Background(), "jobs: {}", pipeline.Go)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestTranslateRetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer server.Close()

	out, err := newTestClient(server.URL).Translate(context.Background(), "jobs: {}", pipeline.Go)
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestTranslateDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Translate(context.Background(), "jobs: {}", pipeline.Go)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Incorrect API key provided")
	assert.Contains(t, err.Error(), "401")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestTranslateRequiresAPIKey(t *testing.T) {
	_, err := New("").Translate(context.Background(), "jobs: {}", pipeline.Go)
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestSystemPromptNamesLanguage(t *testing.T) {
	assert.Contains(t, SystemPrompt(pipeline.TypeScript), "Output TypeScript code")
	assert.Contains(t, SystemPrompt(pipeline.Go), "Output Go code")
}

type countingTransport struct {
	calls int32
}

func (c *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	atomic.AddInt32(&c.calls, 1)
	return http.DefaultTransport.RoundTrip(req)
}

func TestTranslateUsesHTTPClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer server.Close()

	transport := &countingTransport{}
	client := newTestClient(server.URL, WithHTTPClient(&http.Client{Transport: transport}))

	out, err := client.Translate(context.Background(), "jobs: {}", pipeline.TypeScript)
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, int32(1), atomic.LoadInt32(&transport.calls))
}
