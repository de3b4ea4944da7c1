package editor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"smart-blog-be/pkg/lexical"
	"smart-blog-be/pkg/postapi"

	"go.uber.org/zap"
)

// DefaultDelay is the quiet period after the last edit before autosave runs.
const DefaultDelay = 1500 * time.Millisecond

var (
	ErrSaveFailed   = errors.New("save failed")
	ErrNoActivePost = errors.New("no active post")
	ErrClosed       = errors.New("editor store closed")
)

// State is the autosave state of the active post.
type State int

const (
	Idle State = iota
	Pending
	Saving
	Saved
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Saving:
		return "saving"
	case Saved:
		return "saved"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Status is a snapshot of the active session, for status indicators.
type Status struct {
	PostID      string
	State       State
	LastSavedAt time.Time
	LastError   error
}

// session is the editing state of one activated post. A new session is
// created on every activation; timers are keyed on the session pointer.
type session struct {
	postID string
	title  string
	doc    *lexical.Document

	state       State
	inflight    int
	lastSavedAt time.Time
	lastSaved   *snapshot
	lastErr     error
}

type snapshot struct {
	title   string
	content []byte
}

func (s *session) status() Status {
	return Status{
		PostID:      s.postID,
		State:       s.state,
		LastSavedAt: s.lastSavedAt,
		LastError:   s.lastErr,
	}
}

// dirty reports whether the session differs from what was last saved.
func (s *session) dirty() bool {
	if s.lastSaved == nil {
		return true
	}
	return s.title != s.lastSaved.title || !bytes.Equal(s.doc.Bytes(), s.lastSaved.content)
}

// autosave is the debouncer action. It runs on the timer goroutine.
func (st *Store) autosave(s *session) {
	st.mu.Lock()
	switch {
	case st.closed:
		st.mu.Unlock()
		return
	case s != st.active:
		// Stale timer for a session that is no longer active.
		autosaveSkipped.WithLabelValues("inactive").Inc()
		st.mu.Unlock()
		return
	case s.doc == nil:
		autosaveSkipped.WithLabelValues("empty").Inc()
		s.state = Idle
		st.unlockAndNotify(s)
		return
	}

	title, doc := s.title, s.doc
	s.state = Saving
	s.inflight++
	st.unlockAndNotify(s)

	ctx, cancel := context.WithTimeout(context.Background(), st.saveTimeout)
	defer cancel()
	_ = st.save(ctx, s, title, doc, "autosave")
}

// save issues the update call for one session and reconciles the result.
// The store lock must not be held.
func (st *Store) save(ctx context.Context, s *session, title string, doc *lexical.Document, origin string) error {
	started := st.clock.Now()
	post, err := st.api.UpdatePost(ctx, s.postID, postapi.UpdatePostRequest{
		Title:   &title,
		Content: doc,
	})
	saveDuration.Observe(st.clock.Now().Sub(started).Seconds())

	st.mu.Lock()
	s.inflight--

	if err != nil {
		saveResults.WithLabelValues(origin, "failure").Inc()
		s.lastErr = fmt.Errorf("%w: %w", ErrSaveFailed, err)
		// A newer edit or save keeps its own state.
		if s.state == Saving && s.inflight == 0 {
			s.state = Idle
		}
		st.logger.Warn("save failed",
			zap.String("post_id", s.postID),
			zap.String("origin", origin),
			zap.Error(err),
		)
		st.unlockAndNotify(s)
		return s.lastErr
	}

	saveResults.WithLabelValues(origin, "success").Inc()
	st.replacePost(*post)
	s.lastSavedAt = st.clock.Now()
	s.lastSaved = &snapshot{title: title, content: doc.Bytes()}
	s.lastErr = nil
	if s.state == Saving && s.inflight == 0 {
		s.state = Saved
	}
	st.logger.Debug("saved",
		zap.String("post_id", s.postID),
		zap.String("origin", origin),
		zap.Time("updated_at", post.UpdatedAt),
	)
	st.unlockAndNotify(s)
	return nil
}

// touch records a content change on the active session and re-arms the timer.
// Called with the lock held.
func (st *Store) touch(s *session) {
	s.state = Pending
	autosaveTriggers.Inc()
	st.saver.Trigger(s)
}

func cloneDocument(doc *lexical.Document) *lexical.Document {
	if doc == nil {
		return nil
	}
	out, err := lexical.ParseDocument(doc.Bytes())
	if err != nil {
		return nil
	}
	return out
}
