package passwords

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_Matches(t *testing.T) {
	t.Parallel()

	h, err := New("correct horse")
	require.NoError(t, err)
	require.True(t, IsArgonEncoded(h.String()))

	ok, err := h.Matches("correct horse")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = h.Matches("CORRECT HORSE")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestNew_Length(t *testing.T) {
	t.Parallel()

	_, err := New("short")
	require.Error(t, err)

	_, err = New(strings.Repeat("x", MaxLength+1))
	require.Error(t, err)
}

func TestParse(t *testing.T) {
	t.Parallel()

	h, err := New("correct horse")
	require.NoError(t, err)

	parsed, err := Parse("  " + h.String() + "\n")
	require.NoError(t, err)
	require.Equal(t, h, parsed)

	p, err := parsed.Params()
	require.NoError(t, err)
	require.Equal(t, uint32(4), p.Iterations)
	require.Equal(t, uint32(128*1024), p.Memory)

	_, err = Parse("plaintext")
	require.ErrorIs(t, err, ErrNotArgonEncoded)

	_, err = Parse("$argon2id$garbage")
	require.ErrorIs(t, err, ErrNotArgonEncoded)
}

func TestIsArgonEncoded(t *testing.T) {
	t.Parallel()

	require.True(t, IsArgonEncoded("$argon2id$v=19$m=65536,t=3,p=2$abc$def"))
	require.False(t, IsArgonEncoded(""))
	require.False(t, IsArgonEncoded("$argon2i$v=19$m=65536,t=3,p=2$abc$def"))
}
