package feedback

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"thirdcoast.systems/adminkit/pkg/ui/patch"
)

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{d: d, f: f}
	c.timers = append(c.timers, t)
	return t
}

// fire runs timer i even if it was stopped, simulating a timer that raced
// past Stop.
func (c *fakeClock) fire(i int) {
	c.mu.Lock()
	t := c.timers[i]
	c.mu.Unlock()
	t.f()
}

func html(t *testing.T, patches []patch.Patch) string {
	t.Helper()
	require.Len(t, patches, 1)
	out, err := patch.Render(context.Background(), patches[0].Element)
	require.NoError(t, err)
	return out
}

func TestBanner_ShowAndHide(t *testing.T) {
	t.Parallel()

	b := NewBanner(RegionGeneric)
	gen, shown := b.Show(ModeSuccess, "ok")
	require.Equal(t, "#genericFeedback", shown[0].Selector)
	require.Equal(t, patch.ModeOuter, shown[0].Mode)
	require.Equal(t,
		`<div id="genericFeedback" class="feedback visible" role="status" aria-live="polite"><strong class="text-success">ok</strong></div>`,
		html(t, shown))

	hidden := html(t, b.Hide(gen))
	require.Contains(t, hidden, ClassInvisible)
	require.NotContains(t, hidden, ClassSuccess)
	require.NotContains(t, hidden, ClassError)
	require.NotContains(t, hidden, "ok")
	require.False(t, b.State().Visible)

	require.Nil(t, b.Hide(gen))
}

func TestBanner_ErrorModeAndEscaping(t *testing.T) {
	t.Parallel()

	b := NewBanner(RegionForm)
	_, shown := b.Show("anything", "<b>failed</b>")
	out := html(t, shown)
	require.Contains(t, out, `class="text-danger"`)
	require.Contains(t, out, "&lt;b&gt;failed&lt;/b&gt;")
}

func TestBanner_StaleHideIgnored(t *testing.T) {
	t.Parallel()

	b := NewBanner(RegionGeneric)
	first, _ := b.Show(ModeError, "one")
	_, _ = b.Show(ModeSuccess, "two")
	require.Nil(t, b.Hide(first))
	require.Equal(t, "two", b.State().Text)
}

func TestScheduler_HidesAfterDelay(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{}
	var rec patch.Recorder
	s := NewScheduler(&rec, WithAfterFunc(clock.AfterFunc))

	shown, err := s.Show(RegionGeneric, ModeSuccess, "ok", 0)
	require.NoError(t, err)
	require.Contains(t, html(t, shown), ClassSuccess)
	require.Len(t, clock.timers, 1)
	require.Equal(t, DefaultDelay, clock.timers[0].d)
	require.Empty(t, rec.Patches())

	clock.fire(0)
	hidden := html(t, rec.Patches())
	require.Contains(t, hidden, `class="feedback invisible"`)
	require.NotContains(t, hidden, ClassSuccess)
	require.NotContains(t, hidden, ClassError)
	require.False(t, s.Banner(RegionGeneric).State().Visible)
	require.Zero(t, s.PendingRegions())
}

func TestScheduler_ReshowCancelsPriorHide(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{}
	var rec patch.Recorder
	s := NewScheduler(&rec, WithAfterFunc(clock.AfterFunc), WithDelay(time.Second))

	_, err := s.Show(RegionGeneric, ModeError, "first", 0)
	require.NoError(t, err)
	_, err = s.Show(RegionGeneric, ModeSuccess, "second", 5*time.Second)
	require.NoError(t, err)

	require.True(t, clock.timers[0].stopped)
	require.Equal(t, time.Second, clock.timers[0].d)
	require.Equal(t, 5*time.Second, clock.timers[1].d)

	// The first timer fires anyway; the newer content stays up.
	clock.fire(0)
	require.Empty(t, rec.Patches())
	require.Equal(t, "second", s.Banner(RegionGeneric).State().Text)

	clock.fire(1)
	require.Len(t, rec.Patches(), 1)
}

func TestScheduler_RegionsAreIndependent(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{}
	var rec patch.Recorder
	s := NewScheduler(&rec, WithAfterFunc(clock.AfterFunc))

	_, _ = s.Show(RegionGeneric, ModeSuccess, "a", 0)
	_, _ = s.Show(RegionForm, ModeError, "b", 0)
	require.Equal(t, 2, s.PendingRegions())
	require.False(t, clock.timers[0].stopped)

	clock.fire(1)
	patches := rec.Patches()
	require.Len(t, patches, 1)
	require.Equal(t, "#formFeedback", patches[0].Selector)
	require.True(t, s.Banner(RegionGeneric).State().Visible)
}

func TestScheduler_HideAndStop(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{}
	var rec patch.Recorder
	s := NewScheduler(&rec, WithAfterFunc(clock.AfterFunc))

	_, _ = s.Show(RegionGeneric, ModeSuccess, "a", 0)
	out := s.Hide(RegionGeneric)
	require.Len(t, out, 1)
	require.True(t, clock.timers[0].stopped)
	require.Nil(t, s.Hide("unknown"))

	_, _ = s.Show(RegionForm, ModeSuccess, "b", 0)
	s.Stop()
	require.True(t, clock.timers[1].stopped)
	require.Zero(t, s.PendingRegions())

	_, err := s.Show(RegionForm, ModeSuccess, "c", 0)
	require.NoError(t, err)
	require.Len(t, clock.timers, 2)

	_, err = s.Show("", ModeSuccess, "c", 0)
	require.ErrorIs(t, err, patch.ErrEmptyID)
}

func TestScheduler_RealClock(t *testing.T) {
	t.Parallel()

	var rec patch.Recorder
	s := NewScheduler(&rec)
	defer s.Stop()

	_, err := s.Show(RegionGeneric, ModeSuccess, "ok", 20*time.Millisecond)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		p := rec.Patches()
		if len(p) != 1 {
			return false
		}
		out, err := patch.Render(context.Background(), p[0].Element)
		return err == nil && strings.Contains(out, ClassInvisible)
	}, 2*time.Second, 5*time.Millisecond)
}
