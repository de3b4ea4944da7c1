package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"smart-blog-be/internal/dto"
	"smart-blog-be/internal/model"
	"smart-blog-be/internal/pkg/logger"
	"smart-blog-be/internal/repository/unitofwork"
	"smart-blog-be/pkg/database"
	"smart-blog-be/pkg/events"
	"smart-blog-be/pkg/lexical"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.NewSilentGormDB(database.DriverSQLite, dsn)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

type recordingPublisher struct {
	mu       sync.Mutex
	messages []dto.PostChangedMessage
	err      error
}

func (p *recordingPublisher) Publish(ctx context.Context, payload []byte) error {
	var msg dto.PostChangedMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, msg)
	return p.err
}

func (p *recordingPublisher) events() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.messages))
	for i, m := range p.messages {
		out[i] = m.Event
	}
	return out
}

type mapCache struct {
	mu          sync.Mutex
	entries     map[uuid.UUID]*dto.PostResponse
	invalidated []uuid.UUID
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[uuid.UUID]*dto.PostResponse)}
}

func (c *mapCache) Get(ctx context.Context, id uuid.UUID) (*dto.PostResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.entries[id]
	return p, ok
}

func (c *mapCache) Set(ctx context.Context, post *dto.PostResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[post.Id] = post
}

func (c *mapCache) Invalidate(ctx context.Context, id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
	c.invalidated = append(c.invalidated, id)
}

type postFixture struct {
	svc   IPostService
	pub   *recordingPublisher
	cache *mapCache
}

func newPostFixture(t *testing.T) *postFixture {
	db := newTestDB(t)
	f := &postFixture{pub: &recordingPublisher{}, cache: newMapCache()}
	f.svc = NewPostService(unitofwork.NewRepositoryFactory(db), f.pub, f.cache, logger.NewNopLogger())
	return f
}

func strPtr(s string) *string { return &s }

func docJSON(t *testing.T, root *lexical.Node) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(lexical.Serialize(root))
	require.NoError(t, err)
	return b
}

func TestCreateDefaults(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	post, err := f.svc.Create(ctx, nil, &dto.CreatePostRequest{})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, post.Id)
	assert.Equal(t, "Untitled", post.Title)
	assert.Equal(t, "draft", post.Status)
	assert.Nil(t, post.AuthorId)
	assert.JSONEq(t, string(lexical.EmptyDocument().Bytes()), string(post.ContentJSON))
	assert.Equal(t, "<p></p>", post.ContentHTML)
	assert.Equal(t, "", post.ContentText)
	assert.False(t, post.CreatedAt.IsZero())
	assert.False(t, post.UpdatedAt.IsZero())
	assert.Equal(t, []string{events.PostCreated}, f.pub.events())
}

func TestCreateRendersContent(t *testing.T) {
	f := newPostFixture(t)
	author := uuid.New()

	content := docJSON(t, lexical.NewRoot(
		lexical.NewHeading(1, lexical.NewText("Hello", 0)),
		lexical.NewParagraph(lexical.NewText("world", lexical.FormatBold)),
	))
	post, err := f.svc.Create(context.Background(), &author, &dto.CreatePostRequest{
		Title:       strPtr("First"),
		ContentJSON: content,
	})
	require.NoError(t, err)

	assert.Equal(t, "First", post.Title)
	require.NotNil(t, post.AuthorId)
	assert.Equal(t, author, *post.AuthorId)
	assert.Equal(t, "<h1>Hello</h1><p><strong>world</strong></p>", post.ContentHTML)
	assert.Equal(t, "Hello\nworld", post.ContentText)
	assert.JSONEq(t, string(content), string(post.ContentJSON))
}

func TestCreateRejectsNonDocument(t *testing.T) {
	f := newPostFixture(t)

	for _, raw := range []string{`"just a string"`, `{"foo":1}`, `[1,2]`} {
		_, err := f.svc.Create(context.Background(), nil, &dto.CreatePostRequest{ContentJSON: json.RawMessage(raw)})
		assert.ErrorIs(t, err, ErrInvalidContent, raw)
	}
	assert.Empty(t, f.pub.events())
}

func TestMalformedDocumentIsStored(t *testing.T) {
	f := newPostFixture(t)

	raw := `{"root":{"type":"root","children":[{"type":"listitem","children":[{"type":"text","text":"loose"}]}]}}`
	post, err := f.svc.Create(context.Background(), nil, &dto.CreatePostRequest{ContentJSON: json.RawMessage(raw)})
	require.NoError(t, err)

	assert.JSONEq(t, raw, string(post.ContentJSON))
	assert.Equal(t, "loose", post.ContentText)

	got, err := f.svc.Show(context.Background(), post.Id)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(got.ContentJSON))
}

func TestUpdatePartial(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, nil, &dto.CreatePostRequest{Title: strPtr("Keep me")})
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	content := docJSON(t, lexical.NewRoot(lexical.NewParagraph(lexical.NewText("new body", 0))))
	updated, err := f.svc.Update(ctx, &dto.UpdatePostRequest{Id: created.Id, ContentJSON: content})
	require.NoError(t, err)

	assert.Equal(t, "Keep me", updated.Title)
	assert.Equal(t, "new body", updated.ContentText)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	renamed, err := f.svc.Update(ctx, &dto.UpdatePostRequest{Id: created.Id, Title: strPtr("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", renamed.Title)
	assert.Equal(t, "new body", renamed.ContentText, "absent content is unchanged")

	assert.Equal(t, []string{events.PostCreated, events.PostUpdated, events.PostUpdated}, f.pub.events())
}

func TestUpdateMissing(t *testing.T) {
	f := newPostFixture(t)

	_, err := f.svc.Update(context.Background(), &dto.UpdatePostRequest{Id: uuid.New(), Title: strPtr("x")})
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestUpdateInvalidContentKeepsPost(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, nil, &dto.CreatePostRequest{Title: strPtr("Safe")})
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, &dto.UpdatePostRequest{Id: created.Id, Title: strPtr("Lost"), ContentJSON: json.RawMessage(`42`)})
	assert.ErrorIs(t, err, ErrInvalidContent)

	got, err := f.svc.Show(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "Safe", got.Title)
}

func TestPublishIsOneWay(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, nil, &dto.CreatePostRequest{})
	require.NoError(t, err)

	published, err := f.svc.Publish(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "published", published.Status)

	again, err := f.svc.Publish(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "published", again.Status)
	assert.WithinDuration(t, published.UpdatedAt, again.UpdatedAt, time.Second)

	assert.Equal(t, []string{events.PostCreated, events.PostPublished}, f.pub.events())

	_, err = f.svc.Publish(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestShowCachesPublishedOnly(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	draft, err := f.svc.Create(ctx, nil, &dto.CreatePostRequest{Title: strPtr("Draft")})
	require.NoError(t, err)
	_, err = f.svc.Show(ctx, draft.Id)
	require.NoError(t, err)
	_, cached := f.cache.Get(ctx, draft.Id)
	assert.False(t, cached)

	_, err = f.svc.Publish(ctx, draft.Id)
	require.NoError(t, err)
	shown, err := f.svc.Show(ctx, draft.Id)
	require.NoError(t, err)
	entry, cached := f.cache.Get(ctx, draft.Id)
	require.True(t, cached)
	assert.Equal(t, shown.Title, entry.Title)

	// Edits drop the cached copy so the next read is fresh.
	_, err = f.svc.Update(ctx, &dto.UpdatePostRequest{Id: draft.Id, Title: strPtr("Edited")})
	require.NoError(t, err)
	_, cached = f.cache.Get(ctx, draft.Id)
	assert.False(t, cached)

	shown, err = f.svc.Show(ctx, draft.Id)
	require.NoError(t, err)
	assert.Equal(t, "Edited", shown.Title)
}

func TestShowMissing(t *testing.T) {
	f := newPostFixture(t)
	_, err := f.svc.Show(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestDelete(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, nil, &dto.CreatePostRequest{})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, created.Id))
	_, err = f.svc.Show(ctx, created.Id)
	assert.ErrorIs(t, err, ErrPostNotFound)

	assert.ErrorIs(t, f.svc.Delete(ctx, created.Id), ErrPostNotFound)
	assert.Contains(t, f.cache.invalidated, created.Id)
	assert.Equal(t, []string{events.PostCreated, events.PostDeleted}, f.pub.events())
}

func TestListOrderingAndFilters(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		p, err := f.svc.Create(ctx, nil, &dto.CreatePostRequest{Title: strPtr(fmt.Sprintf("post %d", i))})
		require.NoError(t, err)
		ids = append(ids, p.Id)
		time.Sleep(5 * time.Millisecond)
	}
	// Touching the oldest post moves it to the front.
	_, err := f.svc.Update(ctx, &dto.UpdatePostRequest{Id: ids[0], Title: strPtr("post 0 edited")})
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = f.svc.Publish(ctx, ids[1])
	require.NoError(t, err)

	all, err := f.svc.List(ctx, &dto.ListPostsRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.Total)
	require.Len(t, all.Posts, 3)
	assert.Equal(t, ids[1], all.Posts[0].Id)
	assert.Equal(t, ids[0], all.Posts[1].Id)
	assert.Equal(t, ids[2], all.Posts[2].Id)

	drafts, err := f.svc.List(ctx, &dto.ListPostsRequest{Status: "draft"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), drafts.Total)

	page, err := f.svc.List(ctx, &dto.ListPostsRequest{Skip: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total, "total ignores paging")
	require.Len(t, page.Posts, 1)
	assert.Equal(t, ids[0], page.Posts[0].Id)
}

func TestPublishFailureDoesNotFailMutation(t *testing.T) {
	f := newPostFixture(t)
	f.pub.err = fmt.Errorf("bus closed")

	post, err := f.svc.Create(context.Background(), nil, &dto.CreatePostRequest{})
	require.NoError(t, err)
	assert.NotNil(t, post)
}
