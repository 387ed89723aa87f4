// Package uihub keeps the per-browser UI state of the admin pages and fans
// out patches produced outside a request (delayed banner hides) to the
// browser's open streams.
package uihub

import (
	"sync"
	"time"

	"thirdcoast.systems/adminkit/pkg/ui/busy"
	"thirdcoast.systems/adminkit/pkg/ui/confirm"
	"thirdcoast.systems/adminkit/pkg/ui/feedback"
	"thirdcoast.systems/adminkit/pkg/ui/fielderr"
	"thirdcoast.systems/adminkit/pkg/ui/patch"
)

const (
	// A client with no open stream and no request for this long is dropped.
	ClientIdleAfter = 30 * time.Minute

	// ConfirmActionBase is where dialog buttons post their answer.
	ConfirmActionBase = "/admin/confirm"

	// Hard caps to keep the web process responsive even if someone opens
	// a silly number of tabs.
	maxStreamsPerClient = 5
	maxTotalStreams     = 200

	subscriberBuffer = 32
)

// Client is the UI state of one browser session.
type Client struct {
	ID      string
	Busy    *busy.Registry
	Dialogs *confirm.Manager
	Forms   *fielderr.Binder
	Banners *feedback.Scheduler

	hub      *Hub
	streams  int
	lastSeen time.Time
	subs     map[chan []patch.Patch]struct{}
}

// Apply fans patches out to every stream of the client. Slow streams miss
// patches rather than block the caller.
func (c *Client) Apply(patches ...patch.Patch) error {
	if len(patches) == 0 {
		return nil
	}
	h := c.hub
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range c.subs {
		select {
		case sub <- patches:
		default:
			// Drop rather than block the webserver.
		}
	}
	return nil
}

// Hub manages per-client UI state and stream subscribers.
type Hub struct {
	mu sync.Mutex

	clients       map[string]*Client
	feedbackDelay time.Duration
	now           func() time.Time

	totalStreams int
}

type Option func(*Hub)

// WithFeedbackDelay sets how long banners stay visible.
func WithFeedbackDelay(d time.Duration) Option {
	return func(h *Hub) { h.feedbackDelay = d }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(h *Hub) { h.now = now }
}

// NewHub creates a new UI hub.
func NewHub(opts ...Option) *Hub {
	h := &Hub{
		clients:       make(map[string]*Client),
		feedbackDelay: feedback.DefaultDelay,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Hub) getOrCreateClient(id string) *Client {
	c, ok := h.clients[id]
	if ok {
		c.lastSeen = h.now()
		return c
	}

	c = &Client{
		ID:       id,
		Busy:     busy.NewRegistry(),
		Dialogs:  confirm.NewManager(ConfirmActionBase),
		Forms:    fielderr.NewBinder(),
		hub:      h,
		lastSeen: h.now(),
		subs:     make(map[chan []patch.Patch]struct{}),
	}
	c.Banners = feedback.NewScheduler(c, feedback.WithDelay(h.feedbackDelay))
	h.clients[id] = c
	return c
}

// Client returns the state for the browser with the given id, creating it on
// first use.
func (h *Hub) Client(id string) *Client {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.getOrCreateClient(id)
}

// AcquireStream attempts to reserve an SSE slot for the given client.
func (h *Hub) AcquireStream(id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.totalStreams >= maxTotalStreams {
		return false
	}

	c := h.getOrCreateClient(id)
	if c.streams >= maxStreamsPerClient {
		return false
	}

	c.streams++
	h.totalStreams++
	return true
}

// ReleaseStream frees an SSE slot for the given client.
func (h *Hub) ReleaseStream(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.clients[id]
	if !ok {
		return
	}
	if c.streams > 0 {
		c.streams--
	}
	if h.totalStreams > 0 {
		h.totalStreams--
	}
	c.lastSeen = h.now()
}

// Subscribe returns a channel that receives patches for the given client, and an unsubscribe function.
func (h *Hub) Subscribe(id string) (<-chan []patch.Patch, func()) {
	ch := make(chan []patch.Patch, subscriberBuffer)

	h.mu.Lock()
	c := h.getOrCreateClient(id)
	c.subs[ch] = struct{}{}
	h.mu.Unlock()

	unsubscribe := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := c.subs[ch]; ok {
			delete(c.subs, ch)
			close(ch)
		}
	}

	return ch, unsubscribe
}

// Streams reports the number of open streams for id and in total.
func (h *Hub) Streams(id string) (client, total int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[id]; ok {
		client = c.streams
	}
	return client, h.totalStreams
}

// PruneIdle drops clients that have no open stream and have not been seen
// within ClientIdleAfter. Their pending banner hides are cancelled.
func (h *Hub) PruneIdle(now time.Time) int {
	h.mu.Lock()
	var idle []*Client
	for _, c := range h.clients {
		if c.streams > 0 || now.Sub(c.lastSeen) <= ClientIdleAfter {
			continue
		}
		h.drop(c)
		idle = append(idle, c)
	}
	h.mu.Unlock()

	// Scheduler.Stop takes its own lock; a hide firing concurrently calls
	// back into Apply, which needs h.mu.
	for _, c := range idle {
		c.Banners.Stop()
	}
	return len(idle)
}

// Forget drops the client with the given id, closing its open streams.
func (h *Hub) Forget(id string) bool {
	h.mu.Lock()
	c, ok := h.clients[id]
	if ok {
		h.drop(c)
	}
	h.mu.Unlock()

	if ok {
		c.Banners.Stop()
	}
	return ok
}

// drop removes c and closes its subscribers. Its stream slots are returned
// here since ReleaseStream ignores unknown clients. Callers hold h.mu.
func (h *Hub) drop(c *Client) {
	delete(h.clients, c.ID)
	for sub := range c.subs {
		delete(c.subs, sub)
		close(sub)
	}
	h.totalStreams -= c.streams
	if h.totalStreams < 0 {
		h.totalStreams = 0
	}
	c.streams = 0
}

// Len returns the number of known clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
