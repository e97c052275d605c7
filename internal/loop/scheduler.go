package loop

import "time"

type timer struct {
	id     uint64
	due    time.Duration
	period time.Duration // zero for one-shot timers
	fn     func()
}

// Scheduler is a manual clock with setTimeout/setInterval style timers.
type Scheduler struct {
	now    time.Duration
	nextID uint64
	timers map[uint64]*timer
	closed bool
}

// NewScheduler creates a scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{timers: make(map[uint64]*timer)}
}

// Now returns the elapsed scheduler time.
func (s *Scheduler) Now() time.Duration { return s.now }

// Pending returns the number of live timers.
func (s *Scheduler) Pending() int { return len(s.timers) }

// After runs fn once, d after the current scheduler time.
func (s *Scheduler) After(d time.Duration, fn func()) *Subscription {
	return s.add(d, 0, fn)
}

// Every runs fn every d until cancelled. A non-positive period is rejected
// and returns an inactive handle.
func (s *Scheduler) Every(d time.Duration, fn func()) *Subscription {
	if d <= 0 {
		return &Subscription{}
	}
	return s.add(d, d, fn)
}

func (s *Scheduler) add(d, period time.Duration, fn func()) *Subscription {
	if s.closed || fn == nil {
		return &Subscription{}
	}
	if d < 0 {
		d = 0
	}
	s.nextID++
	t := &timer{id: s.nextID, due: s.now + d, period: period, fn: fn}
	s.timers[t.id] = t
	return &Subscription{id: t.id, cancel: s.remove}
}

func (s *Scheduler) remove(id uint64) {
	delete(s.timers, id)
}

// Advance moves the clock forward by dt and fires every timer that falls due,
// earliest first. Ties fire in registration order. Intervals that were due
// several times within dt fire once per period.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt < 0 {
		return
	}
	target := s.now + dt
	for {
		t := s.nextDue(target)
		if t == nil {
			break
		}
		s.now = t.due
		if t.period > 0 {
			t.due += t.period
		} else {
			delete(s.timers, t.id)
		}
		t.fn()
	}
	s.now = target
}

func (s *Scheduler) nextDue(limit time.Duration) *timer {
	var best *timer
	for _, t := range s.timers {
		if t.due > limit {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.id < best.id) {
			best = t
		}
	}
	return best
}

// Close cancels every timer and refuses new ones.
func (s *Scheduler) Close() {
	s.closed = true
	clear(s.timers)
}
