// Package store keeps the demo admin settings in process memory.
package store

import (
	"sync"

	"github.com/dustin/go-humanize"
)

// GoModSettings configures the Go module proxy pages.
type GoModSettings struct {
	GoBinary    string
	GoPath      string
	UploadLimit uint64
}

// UploadLimitDisplay formats the limit the way the form accepts it back.
func (s GoModSettings) UploadLimitDisplay() string {
	if s.UploadLimit == 0 {
		return ""
	}
	return humanize.IBytes(s.UploadLimit)
}

// DefaultGoModSettings are used until an admin saves the form.
func DefaultGoModSettings() GoModSettings {
	return GoModSettings{
		GoBinary:    "/usr/local/go/bin/go",
		GoPath:      "/var/lib/adminkit/gopath",
		UploadLimit: 32 * humanize.MiByte,
	}
}

// SettingsCache provides thread-safe access to the Go module settings.
type SettingsCache struct {
	mu       sync.RWMutex
	settings GoModSettings
}

// NewSettingsCache returns a cache holding the defaults.
func NewSettingsCache() *SettingsCache {
	return &SettingsCache{settings: DefaultGoModSettings()}
}

// Get returns the current settings. Safe for concurrent reads.
func (c *SettingsCache) Get() GoModSettings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings
}

// Set replaces the settings.
func (c *SettingsCache) Set(s GoModSettings) {
	c.mu.Lock()
	c.settings = s
	c.mu.Unlock()
}
