package config

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	// WebServer Configuration
	WebServerPort int    `mapstructure:"WEBSERVER_PORT" validate:"required,min=1,max=65535"`
	SessionSecret string `mapstructure:"SESSION_SECRET"`

	// Admin access
	AdminHost         string `mapstructure:"ADMIN_HOST" validate:"omitempty,hostname_port|hostname"`
	AdminAllowOnly    string `mapstructure:"ADMIN_ALLOW_ONLY"`
	AdminUsername     string `mapstructure:"ADMIN_USERNAME" validate:"required"`
	AdminPasswordHash string `mapstructure:"ADMIN_PASSWORD_HASH" validate:"required,startswith=$argon2id$"`

	// Reverse proxies whose X-Forwarded-For header is believed. Empty means
	// the client address is always the TCP peer.
	TrustedProxies string `mapstructure:"TRUSTED_PROXIES"`

	// UI behaviour
	FeedbackDelayMS int  `mapstructure:"FEEDBACK_DELAY_MS" validate:"min=0"`
	ConfirmMarkdown bool `mapstructure:"CONFIRM_MARKDOWN"`
}

// FeedbackDelay is how long feedback banners stay visible.
func (c Config) FeedbackDelay() time.Duration {
	return time.Duration(c.FeedbackDelayMS) * time.Millisecond
}

// AllowedIPs splits ADMIN_ALLOW_ONLY. Loopback addresses are always appended
// when the list is set, so the admin UI stays reachable from the host itself.
func (c Config) AllowedIPs() []string {
	var out []string
	for _, part := range strings.Split(c.AdminAllowOnly, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return append(out, "127.0.0.1", "::1")
}

// ProxyRanges splits TRUSTED_PROXIES into addresses and CIDR ranges.
func (c Config) ProxyRanges() []string {
	var out []string
	for _, part := range strings.Split(c.TrustedProxies, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// LogValue keeps secrets out of the logs.
func (c Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("WEBSERVER_PORT", c.WebServerPort),
		slog.Bool("SESSION_SECRET_SET", c.SessionSecret != ""),
		slog.String("ADMIN_HOST", c.AdminHost),
		slog.String("ADMIN_ALLOW_ONLY", c.AdminAllowOnly),
		slog.String("ADMIN_USERNAME", c.AdminUsername),
		slog.Bool("ADMIN_PASSWORD_HASH_SET", c.AdminPasswordHash != ""),
		slog.String("TRUSTED_PROXIES", c.TrustedProxies),
		slog.Int("FEEDBACK_DELAY_MS", c.FeedbackDelayMS),
		slog.Bool("CONFIRM_MARKDOWN", c.ConfirmMarkdown),
	)
}

// use reflect to bind environment variables based on mapstructure tags
func bindEnv(c Config) {
	val := reflect.ValueOf(c)
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := typ.Field(i)
		fieldVal := val.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag != "" {
			viper.BindEnv(tag)
		}

		// Handle nested structs
		if field.Type.Kind() == reflect.Struct && tag == "" {
			nestedTyp := fieldVal.Type()
			for j := 0; j < fieldVal.NumField(); j++ {
				nestedField := nestedTyp.Field(j)
				nestedTag := nestedField.Tag.Get("mapstructure")
				if nestedTag != "" {
					viper.BindEnv(nestedTag)
				}
			}
		}
	}
	slog.Debug("Environment variables bound")
}

func LoadConfig(ctx context.Context) (*Config, error) {
	bindEnv(Config{})
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("FEEDBACK_DELAY_MS", 3000)
	viper.SetDefault("ADMIN_USERNAME", "admin")

	cfg := Config{}
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	slog.Info("Loaded configuration", "config", cfg)

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
