package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel-madlibs/internal/common/config"
	apperrors "travel-madlibs/internal/common/errors"
	"travel-madlibs/internal/common/logger"
	"travel-madlibs/internal/prompt"
)

func testConfig(baseURL string) config.OpenAIConfig {
	return config.OpenAIConfig{
		APIKey:    "test-key",
		BaseURL:   baseURL,
		Model:     "gpt-4o-mini",
		WarmModel: "gpt-3.5-turbo-0125",
		Timeout:   5000,
	}
}

func completionBody(content string) string {
	encoded, _ := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	})
	return string(encoded)
}

// ============================================================================
// COMPLETION TESTS
// ============================================================================

func TestCompleteJSON_SendsChatRequest(t *testing.T) {
	var captured map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		fmt.Fprint(w, completionBody(`  {"destinations": [], "summary": "s"}  `))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL+"/v1"), logger.NewTestLogger(t))

	content, err := client.CompleteJSON(context.Background(), prompt.Payload{
		Task:        "test-task",
		System:      "system text",
		User:        "user text",
		Temperature: 0.7,
		MaxTokens:   2000,
		JSONMode:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"destinations": [], "summary": "s"}`, content, "completion text is trimmed")

	assert.Equal(t, "gpt-4o-mini", captured["model"])
	assert.Equal(t, 0.7, captured["temperature"])
	assert.Equal(t, float64(2000), captured["max_tokens"])
	assert.Equal(t, map[string]interface{}{"type": "json_object"}, captured["response_format"])

	messages := captured["messages"].([]interface{})
	require.Len(t, messages, 2)
	first := messages[0].(map[string]interface{})
	assert.Equal(t, "system", first["role"])
	assert.Equal(t, "system text", first["content"])
	second := messages[1].(map[string]interface{})
	assert.Equal(t, "user", second["role"])
}

func TestCompleteJSON_UnconfiguredWithoutNetworkCall(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.APIKey = ""
	client := NewClient(cfg, logger.NewTestLogger(t))

	_, err := client.CompleteJSON(context.Background(), prompt.Payload{Task: "t", System: "s"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeConfigurationMissing, apperrors.CodeOf(err))
	assert.Equal(t, "OpenAI API key is not configured", apperrors.Message(err))
	assert.Zero(t, calls)
}

func TestCompleteJSON_ProviderFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "provider status error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error": "rate limited"}`, http.StatusTooManyRequests)
			},
		},
		{
			name: "malformed envelope",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"choices": [`)
			},
		},
		{
			name: "empty completion in JSON mode",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, completionBody(""))
			},
		},
		{
			name: "no choices in JSON mode",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"choices": []}`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls++
				tt.handler(w, r)
			}))
			defer srv.Close()

			client := NewClient(testConfig(srv.URL), logger.NewTestLogger(t))

			_, err := client.CompleteJSON(context.Background(), prompt.Payload{Task: "t", System: "s", JSONMode: true})
			require.Error(t, err)
			assert.Equal(t, apperrors.ErrCodeProviderError, apperrors.CodeOf(err))
			assert.Equal(t, 1, calls, "single attempt, no retry")
		})
	}
}

// ============================================================================
// WARM-UP TESTS
// ============================================================================

func TestWarm_UsesWarmModelAndToleratesEmptyCompletion(t *testing.T) {
	var captured map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		fmt.Fprint(w, completionBody(""))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), logger.NewTestLogger(t))

	require.NoError(t, client.Warm(context.Background()))
	assert.Equal(t, "gpt-3.5-turbo-0125", captured["model"])
	assert.Equal(t, float64(1), captured["max_tokens"])
	assert.NotContains(t, captured, "response_format")
}

func TestWarm_UnconfiguredIsSilentNoOp(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.APIKey = ""
	client := NewClient(cfg, logger.NewTestLogger(t))

	require.NoError(t, client.Warm(context.Background()))
	assert.Zero(t, calls)
}

func TestWarm_SurfacesProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), logger.NewTestLogger(t))

	err := client.Warm(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeProviderError, apperrors.CodeOf(err))
}
