package effects

import (
	"math"
	"strconv"
	"time"

	"github.com/olivierh59500/portfolio-fx/internal/loop"
	"github.com/olivierh59500/portfolio-fx/internal/page"
)

// Counter tween timing
const (
	CounterDuration = 2 * time.Second
	CounterTick     = 16 * time.Millisecond
)

// Counter counts an element up to a target.
type Counter struct {
	el        *page.Element
	target    float64
	current   float64
	increment float64
	done      bool
	sub       *loop.Subscription
}

// StartCounter starts counting el from 0 to target over duration, one step
// per tick.
func StartCounter(s *loop.Scheduler, el *page.Element, target int, duration, tick time.Duration) *Counter {
	c := &Counter{el: el, target: float64(target)}
	if el == nil || tick <= 0 {
		return c
	}
	steps := float64(duration) / float64(tick)
	if steps > 0 {
		c.increment = c.target / steps
	}
	c.sub = s.Every(tick, c.step)
	return c
}

func (c *Counter) step() {
	c.current += c.increment
	if c.current >= c.target {
		c.current = c.target
		c.done = true
		c.sub.Cancel()
	}
	c.el.Text = strconv.Itoa(int(math.Floor(c.current)))
}

// Value returns the current count.
func (c *Counter) Value() float64 { return c.current }

// Done reports whether the target was reached.
func (c *Counter) Done() bool { return c.done }

// Stop cancels the tween.
func (c *Counter) Stop() { c.sub.Cancel() }

// StatsObserver starts the counters of a stats strip the first time at least
// Threshold of it is on screen.
type StatsObserver struct {
	Threshold float64

	stats    *page.Stats
	s        *loop.Scheduler
	counters []*Counter
	fired    bool
	subs     loop.Group
}

// NewStatsObserver watches stats. A nil strip makes it a no-op.
func NewStatsObserver(stats *page.Stats) *StatsObserver {
	return &StatsObserver{Threshold: 0.5, stats: stats}
}

// Observe subscribes to viewport changes and checks the initial viewport.
func (o *StatsObserver) Observe(s *loop.Scheduler, bus *loop.Bus, vp *Viewport) {
	if o.stats == nil {
		return
	}
	o.s = s
	check := func() { o.Check(vp.ScrollY, vp.Height) }
	o.subs.Add(
		bus.OnScroll(func(loop.ScrollEvent) { check() }),
		bus.OnResize(func(loop.ResizeEvent) { check() }),
	)
	check()
}

// Check starts the counters if the strip is visible enough. After firing once
// the observer unsubscribes.
func (o *StatsObserver) Check(scrollY, viewHeight float64) {
	if o.fired || o.stats == nil {
		return
	}
	if VisibleRatio(o.stats.Bounds, scrollY, viewHeight, 0) < o.Threshold {
		return
	}
	o.fired = true
	o.subs.CancelAll()
	for _, st := range o.stats.Items {
		o.counters = append(o.counters, StartCounter(o.s, st.Value, st.Target, CounterDuration, CounterTick))
	}
}

// Counters returns the counters started so far.
func (o *StatsObserver) Counters() []*Counter { return o.counters }

// Stop unsubscribes and cancels running counters.
func (o *StatsObserver) Stop() {
	o.subs.CancelAll()
	for _, c := range o.counters {
		c.Stop()
	}
}
