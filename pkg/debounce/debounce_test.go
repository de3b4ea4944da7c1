package debounce

import (
	"sync"
	"testing"
	"time"

	"smart-blog-be/pkg/clock"

	"github.com/stretchr/testify/assert"
)

const delay = 1500 * time.Millisecond

type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) record(prefix string) func(string) {
	return func(arg string) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.calls = append(r.calls, prefix+arg)
	}
}

func (r *recorder) got() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func newTestDebouncer(r *recorder) (*Debouncer[string], *clock.Manual) {
	clk := clock.NewManual(time.Unix(0, 0))
	return New(r.record(""), delay, WithClock(clk)), clk
}

func TestTriggerCoalescesToLastArgument(t *testing.T) {
	r := &recorder{}
	d, clk := newTestDebouncer(r)

	d.Trigger("a")
	clk.Advance(delay * 3 / 10)
	d.Trigger("b")
	clk.Advance(delay * 3 / 10)
	d.Trigger("c")

	// 1.5D after the first trigger, only 0.9D after the last.
	clk.Advance(delay * 9 / 10)
	assert.Empty(t, r.got())
	assert.True(t, d.Pending())

	// 1.6D after the first trigger.
	clk.Advance(delay / 10)
	assert.Equal(t, []string{"c"}, r.got())
	assert.False(t, d.Pending())

	clk.Advance(10 * delay)
	assert.Equal(t, []string{"c"}, r.got())
}

func TestFiresExactlyAtDelay(t *testing.T) {
	r := &recorder{}
	d, clk := newTestDebouncer(r)

	d.Trigger("x")
	clk.Advance(delay - time.Nanosecond)
	assert.Empty(t, r.got())
	clk.Advance(time.Nanosecond)
	assert.Equal(t, []string{"x"}, r.got())
}

func TestActionIsReadAtFireTime(t *testing.T) {
	r := &recorder{}
	d, clk := newTestDebouncer(r)

	d.Trigger("doc")
	d.SetAction(r.record("new:"))
	clk.Advance(delay)

	assert.Equal(t, []string{"new:doc"}, r.got())
}

func TestDisposeSuppressesPendingAndFutureCalls(t *testing.T) {
	r := &recorder{}
	d, clk := newTestDebouncer(r)

	d.Trigger("a")
	d.Dispose()
	clk.Advance(2 * delay)
	assert.Empty(t, r.got())

	d.Trigger("b")
	clk.Advance(2 * delay)
	assert.Empty(t, r.got())
	assert.False(t, d.Pending())
	assert.Equal(t, 0, clk.Pending())
}

func TestCancel(t *testing.T) {
	r := &recorder{}
	d, clk := newTestDebouncer(r)

	assert.False(t, d.Cancel())

	d.Trigger("a")
	assert.True(t, d.Cancel())
	clk.Advance(2 * delay)
	assert.Empty(t, r.got())

	// Still usable after Cancel.
	d.Trigger("b")
	clk.Advance(delay)
	assert.Equal(t, []string{"b"}, r.got())
}

func TestSeparateBurstsFireSeparately(t *testing.T) {
	r := &recorder{}
	d, clk := newTestDebouncer(r)

	d.Trigger("first")
	clk.Advance(delay)
	d.Trigger("second")
	clk.Advance(delay)

	assert.Equal(t, []string{"first", "second"}, r.got())
}

func TestRealClock(t *testing.T) {
	r := &recorder{}
	d := New(r.record(""), 20*time.Millisecond)

	d.Trigger("a")
	d.Trigger("b")

	assert.Eventually(t, func() bool { return len(r.got()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"b"}, r.got())
}
