package postapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"smart-blog-be/pkg/lexical"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvelope(w http.ResponseWriter, code int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": code < 300,
		"code":    code,
		"message": message,
		"data":    data,
	})
}

func newTestClient(url string) *Client {
	return NewClient(url, "secret-token", WithRetries(2, time.Millisecond, 2*time.Millisecond))
}

func TestGetIsRetried(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			writeEnvelope(w, http.StatusServiceUnavailable, "busy", nil)
			return
		}
		writeEnvelope(w, http.StatusOK, "Success get post", map[string]interface{}{
			"id": "p1", "title": "Hello", "status": "draft",
			"content_json": lexical.EmptyDocument(),
		})
	}))
	defer srv.Close()

	post, err := newTestClient(srv.URL).GetPost(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
	assert.Equal(t, "Hello", post.Title)
	assert.Equal(t, StatusDraft, post.Status)
	require.NotNil(t, post.Content)
	assert.Equal(t, lexical.TypeRoot, post.Content.Root.Type)
}

func TestMutationsAreNotRetried(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		writeEnvelope(w, http.StatusInternalServerError, "database unavailable", nil)
	}))
	defer srv.Close()

	title := "t"
	_, err := newTestClient(srv.URL).UpdatePost(context.Background(), "p1", UpdatePostRequest{Title: &title})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "database unavailable", apiErr.Message)
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
}

func TestNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusNotFound, "Post not found", nil)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.GetPost(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	err = c.DeletePost(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRequestShapes(t *testing.T) {
	type seen struct {
		method, path, query, auth string
		body                      map[string]interface{}
	}
	var (
		mu   sync.Mutex
		last seen
	)
	get := func() seen {
		mu.Lock()
		defer mu.Unlock()
		return last
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := seen{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery, auth: r.Header.Get("Authorization")}
		if b, _ := io.ReadAll(r.Body); len(b) > 0 {
			_ = json.Unmarshal(b, &s.body)
		}
		mu.Lock()
		last = s
		mu.Unlock()

		switch {
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		case r.URL.Path == "/api/posts" && r.Method == http.MethodGet:
			writeEnvelope(w, http.StatusOK, "ok", map[string]interface{}{
				"posts": []map[string]interface{}{{"id": "a"}, {"id": "b"}},
				"total": 2,
			})
		case r.URL.Path == "/api/ai/generate":
			writeEnvelope(w, http.StatusOK, "ok", map[string]interface{}{"result": "short", "action": "summarize"})
		default:
			writeEnvelope(w, http.StatusOK, "ok", map[string]interface{}{"id": "a", "status": "published"})
		}
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	ctx := context.Background()

	list, err := c.ListPosts(ctx, ListOptions{Status: StatusDraft, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, list.Posts, 2)
	assert.Equal(t, int64(2), list.Total)
	assert.Equal(t, "limit=10&status=draft", get().query)
	assert.Equal(t, "Bearer secret-token", get().auth)

	_, err = c.CreatePost(ctx, CreatePostRequest{Title: "New"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, get().method)
	assert.Equal(t, map[string]interface{}{"title": "New"}, get().body)

	doc := lexical.EmptyDocument()
	_, err = c.UpdatePost(ctx, "a", UpdatePostRequest{Content: doc})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, get().method)
	assert.Equal(t, "/api/posts/a", get().path)
	assert.Contains(t, get().body, "content_json")
	assert.NotContains(t, get().body, "title")

	post, err := c.PublishPost(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "/api/posts/a/publish", get().path)
	assert.Equal(t, StatusPublished, post.Status)

	require.NoError(t, c.DeletePost(ctx, "a"))
	assert.Equal(t, http.MethodDelete, get().method)

	gen, err := c.Generate(ctx, GenerateRequest{Text: "long text", Action: ActionSummarize})
	require.NoError(t, err)
	assert.Equal(t, "short", gen.Result)
	assert.Equal(t, map[string]interface{}{"text": "long text", "action": "summarize"}, get().body)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("BLOG_API_URL", "http://blog.test")
	t.Setenv("BLOG_API_TOKEN", "tok")
	t.Setenv("AUTOSAVE_DELAY_MS", "250")

	cfg := ConfigFromEnv()
	assert.Equal(t, "http://blog.test", cfg.BaseURL)
	assert.Equal(t, "tok", cfg.Token)
	assert.Equal(t, 250*time.Millisecond, cfg.AutosaveDelay)

	t.Setenv("AUTOSAVE_DELAY_MS", "soon")
	assert.Equal(t, DefaultAutosaveDelay, ConfigFromEnv().AutosaveDelay)
}
