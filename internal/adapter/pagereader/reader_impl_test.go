package pagereader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
	<title> My Blog Post </title>
	<meta name="author" content="Jane Doe">
	<style>body { color: red; }</style>
</head>
<body>
	<script>console.log("tracking");</script>
	<h1>My Blog Post</h1>
	<p>Some   interesting
	content here.</p>
	<a href="/posts/first">First</a>
	<a href="https://other.com/second">Second</a>
	<a name="anchor-without-href">Skip me</a>
	<noscript>enable js</noscript>
</body>
</html>`

func TestParseHTML_ExtractsMetadataAndText(t *testing.T) {
	page, err := ParseHTML("https://example.com/post", samplePage)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/post", page.URL)
	assert.Equal(t, "My Blog Post", page.Title)
	assert.Equal(t, "Jane Doe", page.Author)
	assert.Equal(t, "My Blog Post Some interesting content here. First Second Skip me", page.Text)
}

func TestParseHTML_CollectsRawHrefsInOrder(t *testing.T) {
	page, err := ParseHTML("https://example.com/post", samplePage)
	require.NoError(t, err)
	assert.Equal(t, []string{"/posts/first", "https://other.com/second"}, page.Links)
}

func TestParseHTML_ScriptAndStyleRemoved(t *testing.T) {
	page, err := ParseHTML("https://example.com", samplePage)
	require.NoError(t, err)
	assert.NotContains(t, page.Text, "tracking")
	assert.NotContains(t, page.Text, "color: red")
	assert.NotContains(t, page.Text, "enable js")
}

func TestHTTPReader_ReadsPage(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	reader := NewHTTPReader(5 * time.Second)
	page, err := reader.Read(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "My Blog Post", page.Title)
	assert.NotEmpty(t, gotUA)
}

func TestHTTPReader_RejectsNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	reader := NewHTTPReader(5 * time.Second)
	_, err := reader.Read(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestHTTPReader_RejectsNonHTMLContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"not":"html"}`))
	}))
	defer srv.Close()

	reader := NewHTTPReader(5 * time.Second)
	_, err := reader.Read(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported content type")
}

func TestHTTPReader_FollowsRedirectsAndReportsFinalURL(t *testing.T) {
	final := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><head><title>Landed</title></head><body>here</body></html>"))
	}))
	defer final.Close()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, final.URL, http.StatusMovedPermanently)
	}))
	defer srv.Close()

	reader := NewHTTPReader(5 * time.Second)
	page, err := reader.Read(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, final.URL, strings.TrimSuffix(page.URL, "/"))
	assert.Equal(t, "Landed", page.Title)
}
