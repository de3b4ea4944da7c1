package postapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"smart-blog-be/pkg/httputil"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

type Option func(*Client)

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRetries sets how many times reads are retried.
func WithRetries(max int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.retryMax, c.retryWaitMin, c.retryWaitMax = max, waitMin, waitMax
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// Client talks to the blog backend over HTTP.
//
// GETs retry on connection errors and 5xx. Mutations are sent once: a
// retried autosave PATCH could land after a newer one.
type Client struct {
	baseURL string
	token   string
	logger  *zap.Logger

	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
	timeout      time.Duration

	reads  *retryablehttp.Client
	writes *retryablehttp.Client
}

var (
	_ API       = (*Client)(nil)
	_ Generator = (*Client)(nil)
)

func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		token:        token,
		logger:       zap.NewNop(),
		retryMax:     3,
		retryWaitMin: 500 * time.Millisecond,
		retryWaitMax: 5 * time.Second,
		timeout:      20 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.reads = c.newRetryClient(c.retryMax)
	c.writes = c.newRetryClient(0)
	return c
}

// NewClientFromConfig builds a client from ConfigFromEnv output.
func NewClientFromConfig(cfg Config, opts ...Option) *Client {
	return NewClient(cfg.BaseURL, cfg.Token, opts...)
}

func (c *Client) newRetryClient(retryMax int) *retryablehttp.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = retryMax
	rc.RetryWaitMin = c.retryWaitMin
	rc.RetryWaitMax = c.retryWaitMax
	rc.HTTPClient.Timeout = c.timeout
	rc.Logger = retryablehttp.LeveledLogger(httputil.NewLeveledZap(c.logger))
	// Hand back the last response so its error envelope can be read.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	return rc
}

func (c *Client) ListPosts(ctx context.Context, opts ListOptions) (*PostList, error) {
	q := url.Values{}
	if opts.Status != "" {
		q.Set("status", string(opts.Status))
	}
	if opts.Skip > 0 {
		q.Set("skip", strconv.Itoa(opts.Skip))
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	path := "/api/posts"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out PostList
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetPost(ctx context.Context, id string) (*Post, error) {
	var out Post
	if err := c.do(ctx, http.MethodGet, postPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error) {
	var out Post
	if err := c.do(ctx, http.MethodPost, "/api/posts", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePost(ctx context.Context, id string, req UpdatePostRequest) (*Post, error) {
	var out Post
	if err := c.do(ctx, http.MethodPatch, postPath(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PublishPost(ctx context.Context, id string) (*Post, error) {
	var out Post
	if err := c.do(ctx, http.MethodPost, postPath(id)+"/publish", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, postPath(id), nil, nil)
}

func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	var out GenerateResponse
	if err := c.do(ctx, http.MethodPost, "/api/ai/generate", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func postPath(id string) string {
	return "/api/posts/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		payload = b
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	client := c.writes
	if method == http.MethodGet {
		client = c.reads
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var env envelope[json.RawMessage]
		msg := http.StatusText(resp.StatusCode)
		if json.Unmarshal(raw, &env) == nil && env.Message != "" {
			msg = env.Message
		}
		c.logger.Debug("api call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg),
		)
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || len(raw) == 0 {
		return nil
	}
	env := envelope[json.RawMessage]{}
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}
