package editor

import (
	"bytes"
	"context"
	"sync"
	"time"

	"smart-blog-be/pkg/clock"
	"smart-blog-be/pkg/debounce"
	"smart-blog-be/pkg/lexical"
	"smart-blog-be/pkg/postapi"

	"go.uber.org/zap"
)

type Option func(*Store)

func WithClock(c clock.Clock) Option {
	return func(st *Store) {
		st.clock = c
	}
}

func WithDelay(d time.Duration) Option {
	return func(st *Store) {
		st.delay = d
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(st *Store) {
		st.logger = logger
	}
}

// WithStatusListener registers a callback run after every autosave state
// change of the active post. It is called without the store lock held.
func WithStatusListener(fn func(Status)) Option {
	return func(st *Store) {
		st.listener = fn
	}
}

// WithSaveTimeout bounds timer-driven save calls.
func WithSaveTimeout(d time.Duration) Option {
	return func(st *Store) {
		st.saveTimeout = d
	}
}

// Store owns the editor state: the cached post list, the active post and its
// autosave session. All mutations go through its methods; backend calls are
// made without holding the lock.
type Store struct {
	mu sync.Mutex

	api         postapi.API
	clock       clock.Clock
	logger      *zap.Logger
	listener    func(Status)
	delay       time.Duration
	saveTimeout time.Duration
	saver       *debounce.Debouncer[*session]

	posts  []postapi.Post
	active *session
	closed bool
}

func NewStore(api postapi.API, opts ...Option) *Store {
	st := &Store{
		api:         api,
		clock:       clock.Real{},
		logger:      zap.NewNop(),
		delay:       DefaultDelay,
		saveTimeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(st)
	}
	st.saver = debounce.New(st.autosave, st.delay, debounce.WithClock(st.clock))
	return st
}

// LoadPosts refreshes the cached post list.
func (st *Store) LoadPosts(ctx context.Context, opts postapi.ListOptions) ([]postapi.Post, error) {
	if err := st.checkOpen(); err != nil {
		return nil, err
	}
	list, err := st.api.ListPosts(ctx, opts)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	st.posts = append([]postapi.Post(nil), list.Posts...)
	return st.copyPosts(), nil
}

// CreatePost creates an empty post, prepends it to the cache and activates it.
func (st *Store) CreatePost(ctx context.Context, title string) (*postapi.Post, error) {
	if err := st.checkOpen(); err != nil {
		return nil, err
	}
	post, err := st.api.CreatePost(ctx, postapi.CreatePostRequest{Title: title})
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	st.posts = append([]postapi.Post{*post}, st.posts...)
	s := st.activateLocked(*post)
	st.unlockAndNotify(s)

	out := *post
	return &out, nil
}

// Activate makes a post the one being edited, fetching it if it is not cached.
// Any pending autosave of the previous post is cancelled; a save already in
// flight completes on its own.
func (st *Store) Activate(ctx context.Context, id string) (*postapi.Post, error) {
	if err := st.checkOpen(); err != nil {
		return nil, err
	}

	st.mu.Lock()
	post, ok := st.findPost(id)
	st.mu.Unlock()

	if !ok {
		fetched, err := st.api.GetPost(ctx, id)
		if err != nil {
			return nil, err
		}
		post = *fetched
	}

	st.mu.Lock()
	if st.closed {
		st.mu.Unlock()
		return nil, ErrClosed
	}
	if !ok {
		if _, cached := st.findPost(id); !cached {
			st.posts = append([]postapi.Post{post}, st.posts...)
		}
	}
	s := st.activateLocked(post)
	st.unlockAndNotify(s)
	return &post, nil
}

func (st *Store) activateLocked(post postapi.Post) *session {
	if st.active != nil && st.active.postID == post.ID {
		return st.active
	}
	if prev := st.active; prev != nil {
		if st.saver.Cancel() {
			st.logger.Debug("pending autosave cancelled on switch", zap.String("post_id", prev.postID))
		}
		if prev.state == Pending {
			prev.state = Idle
		}
	}

	s := &session{
		postID: post.ID,
		title:  post.Title,
		doc:    cloneDocument(post.Content),
		state:  Idle,
	}
	s.lastSaved = &snapshot{title: post.Title, content: post.Content.Bytes()}
	st.active = s
	return s
}

// SetDocument replaces the content of the active post and re-arms autosave.
// Setting the same content again is not a change.
func (st *Store) SetDocument(doc *lexical.Document) error {
	st.mu.Lock()
	s, err := st.activeLocked()
	if err != nil {
		st.mu.Unlock()
		return err
	}
	next := cloneDocument(doc)
	if s.doc != nil && bytes.Equal(s.doc.Bytes(), next.Bytes()) {
		st.mu.Unlock()
		return nil
	}
	s.doc = next
	st.touch(s)
	st.unlockAndNotify(s)
	return nil
}

// SetTree is SetDocument for an in-memory tree.
func (st *Store) SetTree(root *lexical.Node) error {
	return st.SetDocument(lexical.Serialize(root))
}

// SetTitle renames the active post and re-arms autosave.
func (st *Store) SetTitle(title string) error {
	st.mu.Lock()
	s, err := st.activeLocked()
	if err != nil {
		st.mu.Unlock()
		return err
	}
	if s.title == title {
		st.mu.Unlock()
		return nil
	}
	s.title = title
	st.touch(s)
	st.unlockAndNotify(s)
	return nil
}

// SaveNow cancels the pending autosave and saves the active post immediately.
// It is a no-op when nothing changed since the last save.
func (st *Store) SaveNow(ctx context.Context) error {
	return st.saveActive(ctx, "")
}

// saveActive is SaveNow restricted to post id when id is set; the active post
// is checked under the same lock that snapshots it.
func (st *Store) saveActive(ctx context.Context, id string) error {
	st.mu.Lock()
	if id != "" && !st.closed && (st.active == nil || st.active.postID != id) {
		st.mu.Unlock()
		return nil
	}
	s, err := st.activeLocked()
	if err != nil {
		st.mu.Unlock()
		return err
	}
	st.saver.Cancel()
	if !s.dirty() {
		if s.state == Pending {
			s.state = Idle
		}
		st.unlockAndNotify(s)
		return nil
	}
	title, doc := s.title, s.doc
	s.state = Saving
	s.inflight++
	st.unlockAndNotify(s)

	return st.save(ctx, s, title, doc, "manual")
}

// Publish moves a post to published. Pending edits of the active post are
// saved first so the published version is the latest one.
func (st *Store) Publish(ctx context.Context, id string) (*postapi.Post, error) {
	if err := st.checkOpen(); err != nil {
		return nil, err
	}

	if err := st.saveActive(ctx, id); err != nil {
		return nil, err
	}

	post, err := st.api.PublishPost(ctx, id)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	st.replacePost(*post)
	st.mu.Unlock()

	out := *post
	return &out, nil
}

// Delete removes a post. Deleting the active post cancels its pending save
// and ends its session. If the backend refuses the delete, the pending save
// is re-armed.
func (st *Store) Delete(ctx context.Context, id string) error {
	if err := st.checkOpen(); err != nil {
		return err
	}

	st.mu.Lock()
	var held *session
	if s := st.active; s != nil && s.postID == id && s.state == Pending {
		st.saver.Cancel()
		s.state = Idle
		held = s
	}
	st.mu.Unlock()

	if err := st.api.DeletePost(ctx, id); err != nil {
		st.mu.Lock()
		if held != nil && held == st.active && held.state == Idle && !st.closed {
			st.touch(held)
			st.unlockAndNotify(held)
		} else {
			st.mu.Unlock()
		}
		return err
	}

	st.mu.Lock()
	for i := range st.posts {
		if st.posts[i].ID == id {
			st.posts = append(st.posts[:i], st.posts[i+1:]...)
			break
		}
	}
	if st.active != nil && st.active.postID == id {
		st.active = nil
	}
	st.mu.Unlock()
	return nil
}

// Close disposes the autosave timer. Saves already in flight are not
// cancelled. Further mutations return ErrClosed.
func (st *Store) Close() {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.closed {
		return
	}
	st.closed = true
	st.saver.Dispose()
}

func (st *Store) Posts() []postapi.Post {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.copyPosts()
}

// Active returns the cached record of the active post.
func (st *Store) Active() (*postapi.Post, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.active == nil {
		return nil, false
	}
	post, ok := st.findPost(st.active.postID)
	if !ok {
		return nil, false
	}
	return &post, true
}

// Document returns a copy of the active post's current content.
func (st *Store) Document() *lexical.Document {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.active == nil {
		return nil
	}
	return cloneDocument(st.active.doc)
}

func (st *Store) Title() string {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.active == nil {
		return ""
	}
	return st.active.title
}

func (st *Store) Status() Status {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.active == nil {
		return Status{State: Idle}
	}
	return st.active.status()
}

// PlainText is the active content flattened for the AI assist call.
func (st *Store) PlainText() string {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.active == nil {
		return ""
	}
	return lexical.ExtractPlainText(st.active.doc)
}

func (st *Store) checkOpen() error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.closed {
		return ErrClosed
	}
	return nil
}

func (st *Store) activeLocked() (*session, error) {
	if st.closed {
		return nil, ErrClosed
	}
	if st.active == nil {
		return nil, ErrNoActivePost
	}
	return st.active, nil
}

func (st *Store) findPost(id string) (postapi.Post, bool) {
	for _, p := range st.posts {
		if p.ID == id {
			return p, true
		}
	}
	return postapi.Post{}, false
}

// replacePost swaps in the server's copy. Posts no longer cached (deleted
// meanwhile) are not re-added.
func (st *Store) replacePost(post postapi.Post) {
	for i := range st.posts {
		if st.posts[i].ID == post.ID {
			st.posts[i] = post
			return
		}
	}
}

func (st *Store) copyPosts() []postapi.Post {
	return append([]postapi.Post(nil), st.posts...)
}

// unlockAndNotify releases the lock and reports the active session's status
// if s is still active.
func (st *Store) unlockAndNotify(s *session) {
	var (
		status Status
		notify bool
	)
	if st.listener != nil && s != nil && s == st.active {
		status, notify = s.status(), true
	}
	st.mu.Unlock()
	if notify {
		st.listener(status)
	}
}
