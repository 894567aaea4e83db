package chatapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"bank-assistant/internal/domain"
)

const defaultBaseURL = "http://localhost:8080"

// ErrMissingResponse is returned when a 2xx body carries no "response" text.
var ErrMissingResponse = errors.New("chatapi: reply has no response field")

// replyBody mirrors domain.ChatReply but keeps a missing or null response
// distinguishable from an empty one.
type replyBody struct {
	Response     *string              `json:"response"`
	Farewell     bool                 `json:"farewell"`
	QuickReplies []string             `json:"quick_replies"`
	Context      *domain.ReplyContext `json:"context"`
}

// HTTPStatusError captures non-2xx responses from the chat backend.
type HTTPStatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("chatapi: unexpected status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

func (e *HTTPStatusError) HTTPStatusCode() int {
	return e.StatusCode
}

// Client posts widget messages to a /chat endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSpace(baseURL)
	}
}

// WithHTTPClient replaces the default client. The default has no timeout;
// bound requests through the context or a client with Timeout set.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) resolvedHTTPClient() *http.Client {
	if c.httpClient != nil {
		return c.httpClient
	}
	return http.DefaultClient
}

// chatURL accepts either a server root or a URL that already ends in /chat.
func chatURL(baseURL string) string {
	base := strings.TrimRight(baseURL, "/")
	if base == "" {
		base = defaultBaseURL
	}
	if strings.HasSuffix(base, "/chat") {
		return base
	}
	return base + "/chat"
}

// Post sends req and decodes the backend reply.
func (c *Client) Post(ctx context.Context, req domain.ChatRequest) (domain.ChatReply, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return domain.ChatReply{}, fmt.Errorf("chatapi: marshal request: %w", err)
	}

	url := chatURL(c.baseURL)

	httpReq, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if reqErr != nil {
		return domain.ChatReply{}, fmt.Errorf("chatapi: create request: %w", reqErr)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	raw, err := c.doJSONRequest(httpReq, url)
	if err != nil {
		return domain.ChatReply{}, fmt.Errorf("chatapi: request failed: %w", err)
	}

	var reply replyBody
	if decErr := json.Unmarshal(raw, &reply); decErr != nil {
		return domain.ChatReply{}, fmt.Errorf("chatapi: decode response: %w", decErr)
	}
	if reply.Response == nil {
		return domain.ChatReply{}, ErrMissingResponse
	}
	return domain.ChatReply{
		Response:     *reply.Response,
		Farewell:     reply.Farewell,
		QuickReplies: reply.QuickReplies,
		Context:      reply.Context,
	}, nil
}

func (c *Client) doJSONRequest(req *http.Request, url string) ([]byte, error) {
	res, doErr := c.resolvedHTTPClient().Do(req)
	if doErr != nil {
		return nil, doErr
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		buf, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return nil, &HTTPStatusError{
			StatusCode: res.StatusCode,
			URL:        url,
			Body:       string(buf),
		}
	}

	buf, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if len(bytes.TrimSpace(buf)) == 0 {
		return nil, errors.New("empty response body")
	}
	return buf, nil
}
