// Package loop drives timeouts, intervals and input listeners from the
// single-threaded game update.
//
// Nothing here spawns goroutines. Time only moves when Scheduler.Advance is
// called, and events are delivered synchronously by Bus.Emit*.
package loop

// Subscription is a handle to a registered timer or listener.
type Subscription struct {
	id     uint64
	cancel func(uint64)
}

// Cancel removes the timer or listener. Safe to call more than once and on a
// nil handle.
func (s *Subscription) Cancel() {
	if s == nil || s.cancel == nil {
		return
	}
	cancel := s.cancel
	s.cancel = nil
	cancel(s.id)
}

// Active reports whether Cancel has not been called yet.
func (s *Subscription) Active() bool {
	return s != nil && s.cancel != nil
}

// Group collects subscriptions so they can be torn down together.
type Group struct {
	subs []*Subscription
}

// Add registers handles with the group; nil handles are ignored.
func (g *Group) Add(subs ...*Subscription) {
	for _, s := range subs {
		if s != nil {
			g.subs = append(g.subs, s)
		}
	}
}

// Len returns the number of collected handles.
func (g *Group) Len() int { return len(g.subs) }

// CancelAll cancels every collected handle and empties the group.
func (g *Group) CancelAll() {
	for _, s := range g.subs {
		s.Cancel()
	}
	g.subs = nil
}
