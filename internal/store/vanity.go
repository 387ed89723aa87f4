package store

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrVanityExists   = errors.New("vanity host already exists")
	ErrVanityNotFound = errors.New("vanity host not found")
)

// VanityHost is a domain served as a Go vanity import path.
type VanityHost struct {
	ID   string
	Host string
}

// Vanity holds the vanity hosts, ordered by host name.
type Vanity struct {
	mu    sync.RWMutex
	hosts map[string]VanityHost
}

func NewVanity(hosts ...string) *Vanity {
	v := &Vanity{hosts: make(map[string]VanityHost)}
	for _, h := range hosts {
		_, _ = v.Add(h)
	}
	return v
}

// Add registers host. Hosts are compared case-insensitively.
func (v *Vanity) Add(host string) (VanityHost, error) {
	host = strings.ToLower(strings.TrimSpace(host))
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, h := range v.hosts {
		if h.Host == host {
			return VanityHost{}, ErrVanityExists
		}
	}
	h := VanityHost{ID: uuid.NewString(), Host: host}
	v.hosts[h.ID] = h
	return h, nil
}

// Delete removes the host with the given id.
func (v *Vanity) Delete(id string) (VanityHost, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	h, ok := v.hosts[id]
	if !ok {
		return VanityHost{}, ErrVanityNotFound
	}
	delete(v.hosts, id)
	return h, nil
}

// Get looks a host up by id.
func (v *Vanity) Get(id string) (VanityHost, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	h, ok := v.hosts[id]
	return h, ok
}

// List returns all hosts sorted by name.
func (v *Vanity) List() []VanityHost {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]VanityHost, 0, len(v.hosts))
	for _, h := range v.hosts {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Host < out[j].Host })
	return out
}
