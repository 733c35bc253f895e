package toast

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects every list delivered to a listener.
type recorder struct {
	mu    sync.Mutex
	calls [][]Toast
}

func (r *recorder) listen(ts []Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, ts)
}

func (r *recorder) last() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return nil
	}
	return r.calls[len(r.calls)-1]
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func TestSubscribeReceivesSnapshot(t *testing.T) {
	s := New(time.Hour)
	defer s.Close()

	s.Info("first")

	rec := &recorder{}
	s.Subscribe(rec.listen)
	require.Equal(t, 1, rec.count())
	require.Len(t, rec.last(), 1)
	assert.Equal(t, "first", rec.last()[0].Message)
}

func TestShowAndRemove(t *testing.T) {
	s := New(time.Hour)
	defer s.Close()

	rec := &recorder{}
	unsubscribe := s.Subscribe(rec.listen)

	id := s.Show("saved", KindSuccess, 0)
	require.NotEmpty(t, id)
	require.Len(t, rec.last(), 1)
	assert.Equal(t, Toast{ID: id, Message: "saved", Kind: KindSuccess, Duration: time.Hour}, rec.last()[0])

	other := s.Error("boom")
	assert.NotEqual(t, id, other)
	assert.Len(t, s.Toasts(), 2)

	s.Remove(id)
	require.Len(t, rec.last(), 1)
	assert.Equal(t, other, rec.last()[0].ID)

	calls := rec.count()
	s.Remove("missing")
	assert.Equal(t, calls+1, rec.count(), "remove always notifies")

	unsubscribe()
	s.Warning("unseen")
	assert.Equal(t, calls+1, rec.count())
}

func TestHelpersSetKind(t *testing.T) {
	s := New(time.Hour)
	defer s.Close()

	s.Success("a")
	s.Error("b")
	s.Info("c")
	s.Warning("d")

	var kinds []Kind
	for _, ts := range s.Toasts() {
		kinds = append(kinds, ts.Kind)
	}
	assert.Equal(t, []Kind{KindSuccess, KindError, KindInfo, KindWarning}, kinds)
}

func TestToastExpires(t *testing.T) {
	s := New(time.Hour)
	defer s.Close()

	rec := &recorder{}
	s.Subscribe(rec.listen)

	s.Show("short", KindInfo, 20*time.Millisecond)
	s.Show("long", KindInfo, time.Hour)

	require.Eventually(t, func() bool {
		last := rec.last()
		return len(last) == 1 && last[0].Message == "long"
	}, time.Second, 5*time.Millisecond)
}

func TestExpireWithFakeTimers(t *testing.T) {
	s := New(time.Hour)
	defer s.Close()

	var fire []func()
	s.afterFunc = func(d time.Duration, f func()) *time.Timer {
		fire = append(fire, f)
		return time.NewTimer(time.Hour)
	}

	id := s.Info("x")
	require.Len(t, fire, 1)

	s.Remove(id)
	fire[0]()
	assert.Empty(t, s.Toasts(), "expiring a removed toast is a no-op")

	s.Info("y")
	fire[1]()
	assert.Empty(t, s.Toasts())
}

func TestClear(t *testing.T) {
	s := New(time.Hour)
	defer s.Close()

	rec := &recorder{}
	s.Subscribe(rec.listen)
	s.Info("a")
	s.Info("b")

	s.Clear()
	assert.Empty(t, rec.last())
	assert.Empty(t, s.Toasts())
}

func TestIndependentServices(t *testing.T) {
	a := New(time.Hour)
	b := New(time.Hour)
	defer a.Close()
	defer b.Close()

	recA, recB := &recorder{}, &recorder{}
	a.Subscribe(recA.listen)
	b.Subscribe(recB.listen)

	a.Info("only a")
	assert.Len(t, recA.last(), 1)
	assert.Empty(t, recB.last())
	assert.Empty(t, b.Toasts())
}

func TestClose(t *testing.T) {
	s := New(0)
	rec := &recorder{}
	s.Subscribe(rec.listen)
	s.Info("pending")

	s.Close()
	s.Close()

	calls := rec.count()
	assert.Empty(t, s.Show("after close", KindInfo, 0))
	s.Remove("x")
	s.Clear()
	assert.Equal(t, calls, rec.count())
	assert.Empty(t, s.Toasts())

	s.Subscribe(rec.listen)
	assert.Equal(t, calls, rec.count())
}

func TestListenerMayReenter(t *testing.T) {
	s := New(time.Hour)
	defer s.Close()

	done := false
	s.Subscribe(func(ts []Toast) {
		if len(ts) == 1 && !done {
			done = true
			s.Remove(ts[0].ID)
		}
	})
	s.Info("bounce")
	assert.Empty(t, s.Toasts())
}

func TestRender(t *testing.T) {
	ts := Toast{Message: "Task created", Kind: KindSuccess}
	assert.Equal(t, "✓ Task created", Render(ts, false))
	assert.Contains(t, Render(ts, true), "Task created")

	assert.Equal(t, "✗", KindError.Icon())
	assert.Equal(t, "!", KindWarning.Icon())
	assert.Equal(t, "i", KindInfo.Icon())
	assert.Equal(t, "i", Kind("other").Icon())
}

func TestPrinterWritesOnce(t *testing.T) {
	var buf bytes.Buffer
	s := New(time.Hour)
	defer s.Close()

	p := NewPrinter(&buf, false)
	s.Subscribe(p.Listen)

	s.Success("one")
	s.Info("two")

	assert.Equal(t, "✓ one\ni two\n", buf.String())
}
