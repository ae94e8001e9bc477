package spider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeuristic(t *testing.T) {
	cases := []struct {
		url  string
		want bool
	}{
		{"https://blog.example.com/2024/03/big-announcement", true},
		{"https://example.com/posts/intro.html", true},
		{"https://example.com/", false},
		{"https://example.com/tags/go", false},
		{"https://example.com/about", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, heuristic(tc.url), tc.url)
	}
}

func TestIsArticle_NoEndpointUsesHeuristic(t *testing.T) {
	c := NewClassifier("")
	assert.True(t, c.IsArticle(context.Background(), "https://example.com/2023/11/post"))
	assert.False(t, c.IsArticle(context.Background(), "https://example.com/category/news"))
}

func TestIsArticle_ModelVerdictWins(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": `{"is_blog_link": true}`}},
			},
		})
	}))
	defer srv.Close()

	c := NewClassifier(srv.URL)
	// The URL fails the heuristic; only the model says yes.
	assert.True(t, c.IsArticle(context.Background(), "https://example.com/misc/page"))
}

func TestIsArticle_ProsePaddedVerdictStillParses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "{\"is_blog_link\": false}\nBecause it looks like a tag page."}},
			},
		})
	}))
	defer srv.Close()

	c := NewClassifier(srv.URL)
	assert.False(t, c.IsArticle(context.Background(), "https://example.com/2024/01/post"))
}

func TestIsArticle_EndpointFailureFallsBackToHeuristic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClassifier(srv.URL)
	assert.True(t, c.IsArticle(context.Background(), "https://example.com/2024/05/still-works"))
	assert.False(t, c.IsArticle(context.Background(), "https://example.com/pricing"))
}
