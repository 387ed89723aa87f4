package config

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

const testHash = "$argon2id$v=19$m=65536,t=3,p=2$c2FsdHNhbHQ$aGFzaGhhc2g"

func TestLoadConfig_Success_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("WEBSERVER_PORT", "8080")
	t.Setenv("ADMIN_PASSWORD_HASH", testHash)

	cfg, err := LoadConfig(context.Background())
	require.NoError(t, err)
	require.NotNil(t, cfg)
	require.Equal(t, 8080, cfg.WebServerPort)
	require.Equal(t, "admin", cfg.AdminUsername)
	require.Equal(t, 3000, cfg.FeedbackDelayMS) // default
	require.Equal(t, 3*time.Second, cfg.FeedbackDelay())
	require.False(t, cfg.ConfirmMarkdown)
	require.Nil(t, cfg.AllowedIPs())
	require.Empty(t, cfg.ProxyRanges())
}

func TestLoadConfig_ValidationError(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("WEBSERVER_PORT", "8080")
	// Missing ADMIN_PASSWORD_HASH

	cfg, err := LoadConfig(context.Background())
	require.Error(t, err)
	require.Nil(t, cfg)
}

func TestLoadConfig_RejectsPlaintextPassword(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("WEBSERVER_PORT", "8080")
	t.Setenv("ADMIN_PASSWORD_HASH", "hunter22")

	_, err := LoadConfig(context.Background())
	require.Error(t, err)
}

func TestLoadConfig_Overrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("WEBSERVER_PORT", "9000")
	t.Setenv("ADMIN_PASSWORD_HASH", testHash)
	t.Setenv("ADMIN_USERNAME", "root")
	t.Setenv("ADMIN_HOST", "admin.example.com")
	t.Setenv("ADMIN_ALLOW_ONLY", " 10.0.0.5, ,192.168.1.1")
	t.Setenv("FEEDBACK_DELAY_MS", "1500")
	t.Setenv("CONFIRM_MARKDOWN", "true")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1, 172.16.0.0/12,")

	cfg, err := LoadConfig(context.Background())
	require.NoError(t, err)
	require.Equal(t, "root", cfg.AdminUsername)
	require.Equal(t, "admin.example.com", cfg.AdminHost)
	require.Equal(t, 1500*time.Millisecond, cfg.FeedbackDelay())
	require.True(t, cfg.ConfirmMarkdown)
	require.Equal(t, []string{"10.0.0.5", "192.168.1.1", "127.0.0.1", "::1"}, cfg.AllowedIPs())
	require.Equal(t, []string{"10.0.0.1", "172.16.0.0/12"}, cfg.ProxyRanges())
}

func TestConfig_LogValueHidesSecrets(t *testing.T) {
	t.Parallel()

	cfg := Config{SessionSecret: "s3cret", AdminPasswordHash: testHash}
	out := cfg.LogValue().String()
	require.NotContains(t, out, "s3cret")
	require.NotContains(t, out, "argon2id")
}
