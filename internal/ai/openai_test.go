package ai

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testClient(url string) *OpenAIClient {
	return &OpenAIClient{
		apiKey:     "sk-test",
		chatModel:  "gpt-4o-mini",
		embedModel: "text-embedding-3-small",
		baseURL:    url,
		client:     &http.Client{Timeout: time.Second},
	}
}

func TestEmbed(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/embeddings", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req embedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "text-embedding-3-small", req.Model)
		require.Equal(t, "freightliner cascadia spn 3216", req.Input)

		w.Write([]byte(`{"data":[{"embedding":[0.1,0.2,0.3]}]}`))
	}))
	defer srv.Close()

	vec, err := testClient(srv.URL).Embed("freightliner cascadia spn 3216")
	require.NoError(t, err)
	require.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
}

func TestEmbedProviderError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limit exceeded"}}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Embed("anything")
	require.Error(t, err)
	require.Contains(t, err.Error(), "rate limit exceeded")
}

func TestCompleteJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, 0.2, req.Temperature)
		require.NotNil(t, req.ResponseFormat)
		require.Equal(t, "json_object", req.ResponseFormat.Type)
		require.Len(t, req.Messages, 2)

		w.Write([]byte(`{"choices":[{"message":{"content":"{\"ok\":true}"}}]}`))
	}))
	defer srv.Close()

	content, err := testClient(srv.URL).CompleteJSON("system prompt", "user prompt")
	require.NoError(t, err)
	require.JSONEq(t, `{"ok":true}`, content)
}

func TestCompleteJSONStripsFences(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":"` + "```json\\n{\\\"ok\\\":true}\\n```" + `"}}]}`))
	}))
	defer srv.Close()

	content, err := testClient(srv.URL).CompleteJSON("s", "u")
	require.NoError(t, err)
	require.JSONEq(t, `{"ok":true}`, content)
}

func TestMissingAPIKey(t *testing.T) {
	t.Parallel()

	c := NewOpenAIClient("", "gpt-4o-mini", "text-embedding-3-small", time.Second)
	_, err := c.Embed("x")
	require.Error(t, err)
}
