// Package vocabapi provides the remote vocabulary service adapter.
// Implements ports.WordLookupService and ports.StoryService.
package vocabapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/0xcro3dile/wordlookup-go/internal/domain/ports"
)

const (
	vocabPath = "/api/vocab"
	storyPath = "/api/story"

	defaultTimeout = 30 * time.Second
)

// Client calls the vocabulary/story backend.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type vocabRequest struct {
	InputText string `json:"input_text"`
}

type storyRequest struct {
	Words string `json:"words"`
}

// LookUp sends inputText to /api/vocab.
func (c *Client) LookUp(ctx context.Context, inputText string) (string, error) {
	return c.post(ctx, vocabPath, vocabRequest{InputText: inputText})
}

// GenerateStory sends the joined word sample to /api/story.
func (c *Client) GenerateStory(ctx context.Context, words string) (string, error) {
	return c.post(ctx, storyPath, storyRequest{Words: words})
}

func (c *Client) post(ctx context.Context, path string, body any) (string, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: calling %s: %v", ports.ErrTransport, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading %s response: %v", ports.ErrTransport, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: %s returned status %d", ports.ErrTransport, path, resp.StatusCode)
	}

	return ResponseText(data), nil
}

// answerFields are the object keys checked, in order, for the answer text.
var answerFields = []string{"response", "result", "story", "text"}

// ResponseText turns a response body into display text. A JSON string is
// unquoted, a JSON object yields its first string answer field, and any
// other body is returned as is.
func ResponseText(body []byte) string {
	raw := strings.TrimSpace(string(body))
	if !gjson.Valid(raw) {
		return raw
	}

	parsed := gjson.Parse(raw)
	switch {
	case parsed.Type == gjson.String:
		return parsed.String()
	case parsed.IsObject():
		for _, field := range answerFields {
			if v := parsed.Get(field); v.Type == gjson.String {
				return v.String()
			}
		}
	}
	return raw
}
