package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alexedwards/argon2id"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestHashPassword(t *testing.T) {
	out, err := run(t, "correct horse battery\n", "hash-password")
	require.NoError(t, err)

	hash := strings.TrimSpace(out)
	require.True(t, strings.HasPrefix(hash, "$argon2id$"))
	ok, err := argon2id.ComparePasswordAndHash("correct horse battery", hash)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestHashPassword_TooShort(t *testing.T) {
	_, err := run(t, "short\n", "hash-password")
	require.Error(t, err)
}

func TestHashPassword_NoInput(t *testing.T) {
	_, err := run(t, "", "hash-password")
	require.EqualError(t, err, "no password on stdin")
}

func TestCheckConfig(t *testing.T) {
	hash, err := argon2id.CreateHash("correct horse battery", argon2id.DefaultParams)
	require.NoError(t, err)

	t.Setenv("WEBSERVER_PORT", "8080")
	t.Setenv("ADMIN_PASSWORD_HASH", hash)
	t.Setenv("ADMIN_HOST", "")
	t.Setenv("ADMIN_ALLOW_ONLY", "10.0.0.0/8")
	t.Setenv("TRUSTED_PROXIES", "")

	out, err := run(t, "", "check-config")
	require.NoError(t, err)
	require.Contains(t, out, "port:           8080")
	require.Contains(t, out, "allowed IPs:    10.0.0.0/8")
	require.Contains(t, out, "admin host:     (any)")
	require.Contains(t, out, "trusted proxies: (none)")
	require.True(t, strings.HasSuffix(strings.TrimSpace(out), "ok"))
}

func TestCheckConfig_MissingHash(t *testing.T) {
	t.Setenv("WEBSERVER_PORT", "8080")
	t.Setenv("ADMIN_PASSWORD_HASH", "")

	_, err := run(t, "", "check-config")
	require.Error(t, err)
}
