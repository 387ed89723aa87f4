package feedback

import (
	"log/slog"
	"sync"
	"time"

	"thirdcoast.systems/adminkit/pkg/ui/patch"
)

// DefaultDelay is how long a banner stays up when no delay is given.
const DefaultDelay = 3000 * time.Millisecond

// Timer is the part of *time.Timer the scheduler needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc satisfies it once wrapped.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type SchedulerOption func(*Scheduler)

// WithDelay sets the delay used when Show is called with delay <= 0.
func WithDelay(d time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		if d > 0 {
			s.delay = d
		}
	}
}

// WithAfterFunc replaces the clock, for tests.
func WithAfterFunc(f AfterFunc) SchedulerOption {
	return func(s *Scheduler) { s.afterFunc = f }
}

type pending struct {
	timer Timer
	gen   uint64
}

// Scheduler owns one banner and at most one pending hide per region.
// Showing a region again cancels its pending hide; the last Show wins.
type Scheduler struct {
	mu        sync.Mutex
	out       patch.Applier
	delay     time.Duration
	afterFunc AfterFunc
	banners   map[string]*Banner
	timers    map[string]pending
	stopped   bool
}

// NewScheduler delivers hide patches to out when their delay expires.
func NewScheduler(out patch.Applier, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		out:       out,
		delay:     DefaultDelay,
		afterFunc: realAfterFunc,
		banners:   make(map[string]*Banner),
		timers:    make(map[string]pending),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Banner returns the banner for region, creating it on first use.
func (s *Scheduler) Banner(region string) *Banner {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bannerLocked(region)
}

func (s *Scheduler) bannerLocked(region string) *Banner {
	b, ok := s.banners[region]
	if !ok {
		b = NewBanner(region)
		s.banners[region] = b
	}
	return b
}

// Show displays text in region and schedules it to hide after delay
// (the scheduler default when delay <= 0). The returned patches show the
// banner and are for the caller to deliver; the later hide goes to the
// scheduler's Applier.
func (s *Scheduler) Show(region string, mode Mode, text string, delay time.Duration) ([]patch.Patch, error) {
	if _, err := patch.ID(region); err != nil {
		return nil, err
	}
	if delay <= 0 {
		delay = s.delay
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.bannerLocked(region)
	gen, out := b.Show(mode, text)

	if prev, ok := s.timers[region]; ok {
		prev.timer.Stop()
		delete(s.timers, region)
	}
	if s.stopped {
		return out, nil
	}
	s.timers[region] = pending{
		gen:   gen,
		timer: s.afterFunc(delay, func() { s.fire(region, gen) }),
	}
	return out, nil
}

// Hide hides region now and cancels its pending hide.
func (s *Scheduler) Hide(region string) []patch.Patch {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.banners[region]
	if !ok {
		return nil
	}
	if prev, ok := s.timers[region]; ok {
		prev.timer.Stop()
		delete(s.timers, region)
	}
	return b.Hide(b.State().Generation)
}

func (s *Scheduler) fire(region string, gen uint64) {
	s.mu.Lock()
	p, ok := s.timers[region]
	if !ok || p.gen != gen {
		// Replaced by a newer Show or cancelled.
		s.mu.Unlock()
		return
	}
	delete(s.timers, region)
	out := s.banners[region].Hide(gen)
	s.mu.Unlock()

	if len(out) == 0 {
		return
	}
	if err := s.out.Apply(out...); err != nil {
		slog.Warn("failed to deliver feedback hide", "region", region, "error", err)
	}
}

// PendingRegions counts regions with a scheduled hide.
func (s *Scheduler) PendingRegions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Stop cancels every pending hide. Later Shows still display but never
// schedule a hide.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	for region, p := range s.timers {
		p.timer.Stop()
		delete(s.timers, region)
	}
}
