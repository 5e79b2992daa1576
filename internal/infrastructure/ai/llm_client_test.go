package ai

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Lunch-App/internal/domain/repository"
)

func newTestClient(baseURL, apiKey string) *LLMClient {
	return NewLLMClient(StaticSettings(Settings{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Timeout: 2 * time.Second,
	}))
}

func TestLLMClient_ChatCompletion(t *testing.T) {
	var captured ChatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"recommendations\":[]}"}}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "sk-test")
	content, err := client.ChatCompletion(context.Background(), []ChatMessage{{Role: "user", Content: "hi"}})

	require.NoError(t, err)
	assert.Equal(t, `{"recommendations":[]}`, content)
	assert.Equal(t, DefaultModel, captured.Model)
	assert.Equal(t, DefaultTemperature, captured.Temperature)
	assert.Equal(t, DefaultMaxTokens, captured.MaxTokens)
	require.NotNil(t, captured.ResponseFormat)
	assert.Equal(t, "json_object", captured.ResponseFormat.Type)
}

func TestLLMClient_NotConfigured(t *testing.T) {
	client := newTestClient("http://127.0.0.1:0", "")
	assert.False(t, client.IsConfigured())

	_, err := client.ChatCompletion(context.Background(), nil)
	assert.ErrorIs(t, err, repository.ErrNotConfigured)
}

func TestLLMClient_SettingsReadPerCall(t *testing.T) {
	key := ""
	client := NewLLMClient(func() Settings { return Settings{APIKey: key} })
	assert.False(t, client.IsConfigured())

	key = "sk-later"
	assert.True(t, client.IsConfigured())
}

func TestLLMClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"ステータス異常", http.StatusInternalServerError, `{"error":{"message":"boom"}}`, "status: 500"},
		{"候補なし", http.StatusOK, `{"choices":[],"error":{"message":"quota exceeded"}}`, "quota exceeded"},
		{"JSONでない", http.StatusOK, `not json`, "パース"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newTestClient(server.URL, "sk-test").ChatCompletion(context.Background(), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLLMClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	client := NewLLMClient(StaticSettings(Settings{APIKey: "sk", BaseURL: server.URL, Timeout: 50 * time.Millisecond}))
	_, err := client.ChatCompletion(context.Background(), nil)
	require.Error(t, err)
}
