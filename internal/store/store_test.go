package store

import (
	"testing"

	"github.com/dustin/go-humanize"
	"github.com/stretchr/testify/require"
)

func TestSettingsCache(t *testing.T) {
	t.Parallel()

	c := NewSettingsCache()
	require.Equal(t, DefaultGoModSettings(), c.Get())
	require.Equal(t, "32 MiB", c.Get().UploadLimitDisplay())

	c.Set(GoModSettings{GoBinary: "/bin/go", GoPath: "/tmp", UploadLimit: 0})
	require.Equal(t, "/bin/go", c.Get().GoBinary)
	require.Equal(t, "", c.Get().UploadLimitDisplay())
}

func TestUploadLimitDisplayRoundTrips(t *testing.T) {
	t.Parallel()

	s := GoModSettings{UploadLimit: 5 * humanize.GiByte}
	n, err := humanize.ParseBytes(s.UploadLimitDisplay())
	require.NoError(t, err)
	require.Equal(t, s.UploadLimit, n)
}

func TestVanity(t *testing.T) {
	t.Parallel()

	v := NewVanity("go.example.com", "alpha.example.com")
	list := v.List()
	require.Len(t, list, 2)
	require.Equal(t, "alpha.example.com", list[0].Host)

	_, err := v.Add(" GO.example.com ")
	require.ErrorIs(t, err, ErrVanityExists)

	h, err := v.Add("beta.example.com")
	require.NoError(t, err)
	got, ok := v.Get(h.ID)
	require.True(t, ok)
	require.Equal(t, "beta.example.com", got.Host)

	deleted, err := v.Delete(h.ID)
	require.NoError(t, err)
	require.Equal(t, h, deleted)

	_, err = v.Delete(h.ID)
	require.ErrorIs(t, err, ErrVanityNotFound)
	require.Len(t, v.List(), 2)
}
