// ABOUTME: Tests for the camera session
// ABOUTME: Covers fly-to recording, back/forward, jumps, and debounced auto-recording

package session

import (
	"sync"
	"testing"
	"time"

	"github.com/harper/vantage/internal/history"
	"github.com/harper/vantage/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func view(lon float64) models.Viewpoint {
	return models.NewFocalViewpoint(lon, 0, 0).WithRange(1000)
}

// flush settles a pending auto-record synchronously.
func flush(s *Session) {
	s.mu.Lock()
	gen, pending := s.generation, s.timer != nil
	s.mu.Unlock()
	if pending {
		s.settle(gen)
	}
}

// newManual returns a session whose timer never fires on its own during a test.
func newManual(t *testing.T, opts ...Option) *Session {
	t.Helper()
	s := New(history.New(), append([]Option{WithSettleDelay(time.Hour)}, opts...)...)
	t.Cleanup(s.Close)
	return s
}

func TestNavigate_RecordsPrevious(t *testing.T) {
	s := newManual(t)

	require.NoError(t, s.Navigate(view(1)))
	assert.Equal(t, 0, s.State().Count, "first placement has nothing to record")

	require.NoError(t, s.Navigate(view(2)))
	require.NoError(t, s.Navigate(view(3)))

	st := s.State()
	assert.Equal(t, 2, st.Count)
	assert.True(t, st.CanGoBack)
	assert.False(t, st.CanGoForward)

	cur, ok := s.Current()
	require.True(t, ok)
	assert.True(t, history.ViewpointsEqual(view(3), cur))
}

func TestNavigate_RejectsInvalid(t *testing.T) {
	s := newManual(t)
	err := s.Navigate(models.NewFocalViewpoint(0, 120, 0))
	assert.Error(t, err)
	_, ok := s.Current()
	assert.False(t, ok)
}

func TestBackForward(t *testing.T) {
	s := newManual(t)
	for i := 1; i <= 3; i++ {
		require.NoError(t, s.Navigate(view(float64(i))))
	}

	prev, err := s.Back()
	require.NoError(t, err)
	assert.True(t, history.ViewpointsEqual(view(2), prev))

	prev, err = s.Back()
	require.NoError(t, err)
	assert.True(t, history.ViewpointsEqual(view(1), prev))

	_, err = s.Back()
	assert.ErrorIs(t, err, ErrNoBack)

	next, err := s.Forward()
	require.NoError(t, err)
	assert.True(t, history.ViewpointsEqual(view(2), next))

	next, err = s.Forward()
	require.NoError(t, err)
	assert.True(t, history.ViewpointsEqual(view(3), next))

	_, err = s.Forward()
	assert.ErrorIs(t, err, ErrNoForward)
}

func TestBackForward_NoCurrent(t *testing.T) {
	s := newManual(t)

	_, err := s.Back()
	assert.ErrorIs(t, err, ErrNoCurrent)
	_, err = s.Forward()
	assert.ErrorIs(t, err, ErrNoCurrent)
	_, _, err = s.JumpTo(0)
	assert.ErrorIs(t, err, ErrNoCurrent)
	assert.Nil(t, s.History())
}

func TestNavigate_AfterBackDropsForward(t *testing.T) {
	s := newManual(t)
	for i := 1; i <= 3; i++ {
		require.NoError(t, s.Navigate(view(float64(i))))
	}
	_, err := s.Back()
	require.NoError(t, err)
	require.True(t, s.State().CanGoForward)

	require.NoError(t, s.Navigate(view(9)))
	assert.False(t, s.State().CanGoForward)
}

func TestHistory_ListsAroundCurrent(t *testing.T) {
	s := newManual(t)
	for i := 1; i <= 3; i++ {
		require.NoError(t, s.Navigate(view(float64(i))))
	}
	_, err := s.Back()
	require.NoError(t, err)

	items := s.History()
	require.Len(t, items, 3)
	assert.False(t, items[0].IsCurrent)
	assert.True(t, items[1].IsCurrent)
	assert.False(t, items[2].IsCurrent)
	assert.Equal(t, history.CurrentLabel, items[1].DisplayName)
}

func TestJumpTo(t *testing.T) {
	s := newManual(t)
	for i := 1; i <= 4; i++ {
		require.NoError(t, s.Navigate(view(float64(i))))
	}
	before := s.State().Count

	target, recorded, err := s.JumpTo(0)
	require.NoError(t, err)
	assert.True(t, recorded, "target comes from the history")
	assert.True(t, history.ViewpointsEqual(view(1), target))
	assert.Equal(t, before, s.State().Count, "recorded jump does not change the stacks")

	cur, _ := s.Current()
	assert.True(t, history.ViewpointsEqual(view(1), cur))
}

func TestJumpTo_Rejects(t *testing.T) {
	s := newManual(t)
	require.NoError(t, s.Navigate(view(1)))
	require.NoError(t, s.Navigate(view(2)))

	_, _, err := s.JumpTo(1)
	assert.ErrorIs(t, err, ErrAlreadyCurrent)

	_, _, err = s.JumpTo(5)
	assert.Error(t, err)
	_, _, err = s.JumpTo(-1)
	assert.Error(t, err)
}

func TestObserve_FirstObservationPlacesCamera(t *testing.T) {
	s := newManual(t)
	require.NoError(t, s.Observe(view(1)))

	cur, ok := s.Current()
	require.True(t, ok)
	assert.True(t, history.ViewpointsEqual(view(1), cur))
	assert.False(t, s.Pending())
}

func TestObserve_RecordsSettledViewpointBeingLeft(t *testing.T) {
	s := newManual(t)
	require.NoError(t, s.Observe(view(1)))

	require.NoError(t, s.Observe(view(2)))
	require.NoError(t, s.Observe(view(3)))
	assert.True(t, s.Pending())
	assert.Equal(t, 0, s.State().Count, "nothing recorded while moving")

	flush(s)
	assert.False(t, s.Pending())
	require.Equal(t, 1, s.State().Count)

	prev, err := s.Back()
	require.NoError(t, err)
	assert.True(t, history.ViewpointsEqual(view(1), prev), "back returns where the camera last rested")
}

func TestObserve_NoMovementRecordsNothing(t *testing.T) {
	s := newManual(t)
	require.NoError(t, s.Observe(view(1)))
	require.NoError(t, s.Observe(view(1)))
	flush(s)
	assert.Equal(t, 0, s.State().Count)
}

func TestObserve_ProgrammaticMoveCancelsPending(t *testing.T) {
	s := newManual(t)
	require.NoError(t, s.Navigate(view(1)))
	require.NoError(t, s.Observe(view(2)))
	require.True(t, s.Pending())

	require.NoError(t, s.Navigate(view(5)))
	assert.False(t, s.Pending())

	items := s.History()
	require.Len(t, items, 2)
	assert.True(t, history.ViewpointsEqual(view(2), items[0].Viewpoint))
}

func TestObserve_SettlesAfterDelay(t *testing.T) {
	s := New(history.New(), WithSettleDelay(10*time.Millisecond))
	t.Cleanup(s.Close)

	require.NoError(t, s.Observe(view(1)))
	require.NoError(t, s.Observe(view(2)))

	require.Eventually(t, func() bool { return s.State().Count == 1 }, time.Second, 5*time.Millisecond)
	assert.False(t, s.Pending())
}

func TestObserve_ZeroDelayDisablesRecording(t *testing.T) {
	s := New(history.New(), WithSettleDelay(0))
	t.Cleanup(s.Close)

	require.NoError(t, s.Observe(view(1)))
	require.NoError(t, s.Observe(view(2)))
	assert.False(t, s.Pending())
	assert.Equal(t, 0, s.State().Count)
}

func TestClose(t *testing.T) {
	s := New(history.New(), WithSettleDelay(time.Hour), WithStart(view(1)))
	require.NoError(t, s.Observe(view(2)))
	require.True(t, s.Pending())

	s.Close()
	assert.False(t, s.Pending())
	assert.ErrorIs(t, s.Navigate(view(3)), ErrClosed)
	assert.ErrorIs(t, s.Observe(view(3)), ErrClosed)
	_, err := s.Back()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestClear_KeepsCurrent(t *testing.T) {
	s := newManual(t)
	require.NoError(t, s.Navigate(view(1)))
	require.NoError(t, s.Navigate(view(2)))

	s.Clear()
	assert.Equal(t, State{}, s.State())
	cur, ok := s.Current()
	require.True(t, ok)
	assert.True(t, history.ViewpointsEqual(view(2), cur))
}

func TestOnStateChanged(t *testing.T) {
	s := newManual(t)

	var mu sync.Mutex
	var calls [][2]bool
	cancel := s.OnStateChanged(func(canBack, canForward bool) {
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, [2]bool{canBack, canForward})
	})

	require.NoError(t, s.Navigate(view(1)))
	require.NoError(t, s.Navigate(view(2)))
	_, err := s.Back()
	require.NoError(t, err)

	cancel()
	require.NoError(t, s.Navigate(view(3)))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, [][2]bool{{true, false}, {false, true}}, calls)
}

func TestInHistory(t *testing.T) {
	s := newManual(t)
	require.NoError(t, s.Navigate(view(1)))
	require.NoError(t, s.Navigate(view(2)))

	assert.True(t, s.InHistory(view(1)))
	assert.False(t, s.InHistory(view(2)), "the current viewpoint is not part of the history")
}

func TestConcurrentObserve(t *testing.T) {
	s := New(history.New(), WithSettleDelay(time.Millisecond), WithStart(view(0)))
	t.Cleanup(s.Close)

	var wg sync.WaitGroup
	for i := 1; i <= 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				_ = s.Observe(view(float64(i*10 + j)))
				_ = s.State()
			}
		}(i)
	}
	wg.Wait()

	require.Eventually(t, func() bool { return !s.Pending() }, time.Second, 5*time.Millisecond)
	assert.LessOrEqual(t, s.State().Count, history.DefaultMaxSize)
}
