package spider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"
)

const classifierPrompt = `Given the following URL, is it likely to be a blog post, article, or guide (not a homepage, tag, category, or resource page)? If the URL points to a specific post or article, respond with: {"is_blog_link": true}. If not, respond with: {"is_blog_link": false}. Respond with only the JSON object.`

// datePathPattern matches the /YYYY/MM/ path shape common to blog permalinks.
var datePathPattern = regexp.MustCompile(`/\d{4}/\d{2}/`)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages    []chatMessage `json:"messages"`
	Stream      bool          `json:"stream"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type verdict struct {
	IsBlogLink bool `json:"is_blog_link"`
}

// Classifier decides whether a discovered link is worth fetching, by asking
// an LLM chat-completions endpoint for a per-URL verdict. When no endpoint
// is configured or the call fails, a simple URL heuristic takes over.
type Classifier struct {
	endpoint string
	client   *http.Client
}

// NewClassifier creates a link classifier against the given
// chat-completions endpoint. An empty endpoint means heuristic-only.
func NewClassifier(endpoint string) *Classifier {
	return &Classifier{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// IsArticle returns the classifier's verdict for one candidate link.
func (c *Classifier) IsArticle(ctx context.Context, url string) bool {
	if c.endpoint == "" {
		return heuristic(url)
	}

	ok, err := c.ask(ctx, url)
	if err != nil {
		slog.Warn("Classifier call failed, falling back to heuristic", "url", url, "error", err)
		return heuristic(url)
	}
	return ok
}

func (c *Classifier) ask(ctx context.Context, url string) (bool, error) {
	payload := chatRequest{
		Messages: []chatMessage{
			{Role: "system", Content: classifierPrompt},
			{Role: "user", Content: "URL: " + url},
		},
		Stream:      false,
		Temperature: 0.3,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("classifier returned status %d", resp.StatusCode)
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return false, err
	}
	if len(chat.Choices) == 0 {
		return false, fmt.Errorf("classifier returned no choices")
	}

	// Models sometimes pad the JSON object with prose; take the first line
	// that parses.
	content := strings.TrimSpace(chat.Choices[0].Message.Content)
	var v verdict
	if err := json.Unmarshal([]byte(firstLine(content)), &v); err != nil {
		return false, err
	}
	return v.IsBlogLink, nil
}

// heuristic approximates the classifier without a model: date-shaped paths
// and .html permalinks look like articles.
func heuristic(url string) bool {
	return datePathPattern.MatchString(url) || strings.HasSuffix(url, ".html")
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
