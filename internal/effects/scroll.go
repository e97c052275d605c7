package effects

import (
	"math"
	"strings"

	"github.com/charmbracelet/harmonica"

	"github.com/olivierh59500/portfolio-fx/internal/loop"
	"github.com/olivierh59500/portfolio-fx/internal/page"
)

// Scroll tuning
const (
	WheelStep = 40.0

	// The smooth scroll is a critically damped spring. At this frequency it
	// settles on a page-long jump in about 0.6s.
	SpringFrequency = 18.0
	SpringDamping   = 1.0

	settleDistance = 0.5 // px
	settleSpeed    = 5.0 // px/s
)

var springStep = harmonica.FPS(60)

// Scroller owns the page scroll offset and animates smooth scrolls.
type Scroller struct {
	vp     *Viewport
	pg     *page.Page
	bus    *loop.Bus
	spring harmonica.Spring

	pos, vel  float64
	to        float64
	acc       float64 // seconds not yet stepped
	animating bool
}

// NewScroller drives vp.ScrollY for pg and reports changes on bus.
func NewScroller(vp *Viewport, pg *page.Page, bus *loop.Bus) *Scroller {
	return &Scroller{
		vp:     vp,
		pg:     pg,
		bus:    bus,
		spring: harmonica.NewSpring(springStep, SpringFrequency, SpringDamping),
	}
}

// Animating reports whether a smooth scroll is in progress.
func (s *Scroller) Animating() bool { return s.animating }

// Wheel scrolls by dy wheel notches immediately and cancels any smooth
// scroll.
func (s *Scroller) Wheel(dy float64) {
	if dy == 0 {
		return
	}
	s.stop()
	s.set(s.vp.ScrollY - dy*WheelStep)
}

// ScrollTo starts a smooth scroll to y. A scroll already in flight keeps its
// velocity.
func (s *Scroller) ScrollTo(y float64) {
	if !s.animating {
		s.pos, s.vel, s.acc = s.vp.ScrollY, 0, 0
	}
	s.to = s.clamp(y)
	s.animating = true
}

// Clamp re-applies the scroll limits, e.g. after a resize.
func (s *Scroller) Clamp() {
	if s.animating {
		s.to = s.clamp(s.to)
	}
	s.set(s.vp.ScrollY)
}

// Tick advances a smooth scroll by dt seconds, in fixed spring steps.
func (s *Scroller) Tick(dt float64) {
	if !s.animating {
		return
	}
	s.acc += dt
	for s.acc >= springStep {
		s.acc -= springStep
		s.pos, s.vel = s.spring.Update(s.pos, s.vel, s.to)
		if math.Abs(s.to-s.pos) < settleDistance && math.Abs(s.vel) < settleSpeed {
			s.stop()
			s.set(s.to)
			return
		}
	}
	s.set(s.pos)
}

func (s *Scroller) stop() {
	s.animating = false
	s.vel, s.acc = 0, 0
}

func (s *Scroller) clamp(y float64) float64 {
	return math.Max(0, math.Min(y, s.pg.MaxScroll(s.vp.Height)))
}

func (s *Scroller) set(y float64) {
	y = s.clamp(y)
	if y == s.vp.ScrollY {
		return
	}
	s.vp.ScrollY = y
	s.bus.EmitScroll(loop.ScrollEvent{Y: y})
}

// AnchorNav turns clicks on nav links into smooth scrolls to their section.
type AnchorNav struct {
	pg       *page.Page
	scroller *Scroller
	sub      *loop.Subscription
}

// NewAnchorNav binds nav links of pg to scroller.
func NewAnchorNav(pg *page.Page, scroller *Scroller) *AnchorNav {
	return &AnchorNav{pg: pg, scroller: scroller}
}

// Observe subscribes to clicks.
func (a *AnchorNav) Observe(bus *loop.Bus) {
	if len(a.pg.Nav) == 0 {
		return
	}
	a.sub = bus.OnClick(func(e loop.ClickEvent) { a.Click(e.X, e.Y) })
}

// Click handles a click in viewport coordinates. It reports whether a link
// was hit; links to missing sections do nothing.
func (a *AnchorNav) Click(x, y float64) bool {
	for _, l := range a.pg.Nav {
		if !l.Bounds.Contains(x, y) {
			continue
		}
		id, ok := strings.CutPrefix(l.Href, "#")
		if !ok {
			return true
		}
		if target := a.pg.Section(id); target != nil {
			a.scroller.ScrollTo(target.Bounds.Y)
		}
		return true
	}
	return false
}

// Stop unsubscribes.
func (a *AnchorNav) Stop() { a.sub.Cancel() }
