package uihub

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"thirdcoast.systems/adminkit/pkg/ui/feedback"
	"thirdcoast.systems/adminkit/pkg/ui/patch"
)

func TestHub_ClientIsStable(t *testing.T) {
	t.Parallel()

	h := NewHub()
	a := h.Client("a")
	require.Same(t, a, h.Client("a"))
	require.NotSame(t, a, h.Client("b"))
	require.Equal(t, 2, h.Len())
}

func TestHub_StreamCaps(t *testing.T) {
	t.Parallel()

	h := NewHub()
	for i := 0; i < maxStreamsPerClient; i++ {
		require.True(t, h.AcquireStream("a"))
	}
	require.False(t, h.AcquireStream("a"))

	client, total := h.Streams("a")
	require.Equal(t, maxStreamsPerClient, client)
	require.Equal(t, maxStreamsPerClient, total)

	h.ReleaseStream("a")
	require.True(t, h.AcquireStream("a"))

	// Releasing an unknown client is a no-op.
	h.ReleaseStream("nobody")
	_, total = h.Streams("a")
	require.Equal(t, maxStreamsPerClient, total)
}

func TestHub_ApplyFansOut(t *testing.T) {
	t.Parallel()

	h := NewHub()
	one, unsubOne := h.Subscribe("a")
	two, unsubTwo := h.Subscribe("a")
	defer unsubTwo()
	other, unsubOther := h.Subscribe("b")
	defer unsubOther()

	p := patch.Remove("x")
	require.NoError(t, h.Client("a").Apply(p))

	require.Equal(t, []patch.Patch{p}, <-one)
	require.Equal(t, []patch.Patch{p}, <-two)
	require.Empty(t, other)

	unsubOne()
	_, ok := <-one
	require.False(t, ok)
	// Unsubscribing twice is harmless.
	unsubOne()
}

func TestHub_ApplyDropsWhenFull(t *testing.T) {
	t.Parallel()

	h := NewHub()
	ch, unsub := h.Subscribe("a")
	defer unsub()

	c := h.Client("a")
	for i := 0; i < subscriberBuffer+10; i++ {
		require.NoError(t, c.Apply(patch.Remove("x")))
	}
	require.Len(t, ch, subscriberBuffer)
	require.NoError(t, c.Apply())
}

func TestHub_BannerHideReachesStream(t *testing.T) {
	t.Parallel()

	h := NewHub(WithFeedbackDelay(10 * time.Millisecond))
	ch, unsub := h.Subscribe("a")
	defer unsub()

	c := h.Client("a")
	shown, err := c.Banners.Show(feedback.RegionGeneric, feedback.ModeSuccess, "saved", 0)
	require.NoError(t, err)
	require.Len(t, shown, 1)

	select {
	case got := <-ch:
		require.Len(t, got, 1)
		require.Equal(t, "#"+feedback.RegionGeneric, got[0].Selector)
	case <-time.After(2 * time.Second):
		t.Fatal("hide patch not delivered")
	}
	require.False(t, c.Banners.Banner(feedback.RegionGeneric).State().Visible)
}

func TestHub_PruneIdle(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	h := NewHub(WithClock(func() time.Time { return now }))

	h.Client("idle")
	require.True(t, h.AcquireStream("streaming"))
	ch, _ := h.Subscribe("idle")

	require.Zero(t, h.PruneIdle(now.Add(time.Minute)))
	require.Equal(t, 1, h.PruneIdle(now.Add(ClientIdleAfter+time.Second)))
	require.Equal(t, 1, h.Len())

	_, ok := <-ch
	require.False(t, ok)
}

func TestHub_Forget(t *testing.T) {
	t.Parallel()

	h := NewHub()
	before := h.Client("a")
	require.True(t, h.AcquireStream("a"))
	ch, unsubscribe := h.Subscribe("a")

	require.True(t, h.Forget("a"))
	require.False(t, h.Forget("a"))

	_, ok := <-ch
	require.False(t, ok)
	unsubscribe()

	// The stream's deferred release must not underflow the total.
	h.ReleaseStream("a")
	_, total := h.Streams("a")
	require.Zero(t, total)

	require.NotSame(t, before, h.Client("a"))
}
