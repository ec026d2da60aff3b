package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req struct {
			Model    string    `json:"model"`
			Messages []Message `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-3.5-turbo", req.Model)
		require.Len(t, req.Messages, 1)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": Message{Role: "assistant", Content: "converted"}},
			},
		})
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, "gpt-3.5-turbo", 5*time.Second)

	reply, err := client.ChatCompletion(context.Background(), []Message{
		{Role: "user", Content: "convert this"},
	})
	require.NoError(t, err)
	assert.Equal(t, "converted", reply)
}

func TestChatCompletionUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, "gpt-3.5-turbo", 5*time.Second)

	_, err := client.ChatCompletion(context.Background(), []Message{{Role: "user", Content: "hi"}})

	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusTooManyRequests, upstreamErr.StatusCode)
	assert.Contains(t, upstreamErr.Body, "rate limited")
}

func TestChatCompletionMissingKey(t *testing.T) {
	client := NewClient("", "http://unused", "gpt-3.5-turbo", time.Second)

	_, err := client.ChatCompletion(context.Background(), nil)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestChatCompletionNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, "gpt-3.5-turbo", time.Second)

	_, err := client.ChatCompletion(context.Background(), []Message{{Role: "user", Content: "hi"}})
	assert.Error(t, err)
}
