package effects

import (
	"math"
	"time"

	"github.com/olivierh59500/portfolio-fx/internal/loop"
	"github.com/olivierh59500/portfolio-fx/internal/page"
)

// Reveal tuning
const (
	RevealThreshold   = 0.1
	RevealBottomInset = 50.0
	RevealDuration    = time.Second
	RevealRise        = 30.0
	ParallaxFactor    = 0.5
)

// Viewport is the visible window onto the page.
type Viewport struct {
	Width, Height float64
	ScrollY       float64
}

// VisibleRatio returns the fraction of r's height inside the viewport band
// [scrollY, scrollY+viewHeight-bottomInset].
func VisibleRatio(r page.Rect, scrollY, viewHeight, bottomInset float64) float64 {
	if r.H <= 0 {
		return 0
	}
	top := math.Max(r.Y, scrollY)
	bottom := math.Min(r.Y+r.H, scrollY+viewHeight-bottomInset)
	if bottom <= top {
		return 0
	}
	return (bottom - top) / r.H
}

// RevealObserver marks sections as revealed once enough of them scrolled
// into view. Revealed sections stay revealed.
type RevealObserver struct {
	sections []*page.Section
	s        *loop.Scheduler
	subs     loop.Group
}

// NewRevealObserver watches sections.
func NewRevealObserver(sections ...*page.Section) *RevealObserver {
	o := &RevealObserver{}
	for _, sec := range sections {
		if sec != nil {
			o.sections = append(o.sections, sec)
		}
	}
	return o
}

// Observe subscribes to viewport changes and checks the initial viewport.
func (o *RevealObserver) Observe(s *loop.Scheduler, bus *loop.Bus, vp *Viewport) {
	if len(o.sections) == 0 {
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

// Check reveals every section at or above the threshold.
func (o *RevealObserver) Check(scrollY, viewHeight float64) {
	now := 0.0
	if o.s != nil {
		now = o.s.Now().Seconds()
	}
	for _, sec := range o.sections {
		if sec.Revealed {
			continue
		}
		if VisibleRatio(sec.Bounds, scrollY, viewHeight, RevealBottomInset) >= RevealThreshold {
			sec.Revealed = true
			sec.RevealedAt = now
		}
	}
}

// Stop unsubscribes.
func (o *RevealObserver) Stop() { o.subs.CancelAll() }

// FadeInUp returns the opacity and downward offset of a section elapsed
// seconds after it was revealed.
func FadeInUp(elapsed float64) (opacity, offset float64) {
	t := elapsed / RevealDuration.Seconds()
	if t <= 0 {
		return 0, RevealRise
	}
	if t >= 1 {
		return 1, 0
	}
	e := 1 - math.Pow(1-t, 3) // ease-out
	return e, RevealRise * (1 - e)
}

// SectionStyle returns how to draw sec at time now (seconds). Sections are
// hidden until revealed.
func SectionStyle(sec *page.Section, now float64) (opacity, offset float64) {
	if !sec.Revealed {
		return 0, RevealRise
	}
	return FadeInUp(now - sec.RevealedAt)
}

// Parallax tracks the planet glow offset.
type Parallax struct {
	Offset float64

	sub *loop.Subscription
}

// Observe follows scroll events if the page has a glow.
func (p *Parallax) Observe(bus *loop.Bus, glow *page.Element) {
	if glow == nil {
		return
	}
	p.sub = bus.OnScroll(func(e loop.ScrollEvent) {
		p.Offset = e.Y * ParallaxFactor
	})
}

// Stop unsubscribes.
func (p *Parallax) Stop() { p.sub.Cancel() }
