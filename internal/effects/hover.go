package effects

import (
	"math"

	"github.com/olivierh59500/portfolio-fx/internal/loop"
	"github.com/olivierh59500/portfolio-fx/internal/page"
)

// Hover scales
const (
	PulseAmplitude = 0.1
	PulsePeriod    = 1.0 // seconds
	CardZoom       = 1.05
)

// Hover makes skill chips pulse and project cards zoom while the pointer is
// over them.
type Hover struct {
	skills   []*page.Hoverable
	projects []*page.Hoverable
	vp       *Viewport
	s        *loop.Scheduler

	px, py float64
	known  bool
	subs   loop.Group
}

// NewHover binds the hover effect to the page's chips and cards.
func NewHover(pg *page.Page, vp *Viewport) *Hover {
	return &Hover{skills: pg.Skills, projects: pg.Projects, vp: vp}
}

// Observe follows the pointer, the scroll position and layout changes.
func (h *Hover) Observe(s *loop.Scheduler, bus *loop.Bus) {
	if len(h.skills) == 0 && len(h.projects) == 0 {
		return
	}
	h.s = s
	h.subs.Add(
		bus.OnPointer(func(e loop.PointerEvent) {
			h.px, h.py, h.known = e.X, e.Y, true
			h.update()
		}),
		bus.OnScroll(func(loop.ScrollEvent) { h.update() }),
		bus.OnResize(func(loop.ResizeEvent) { h.update() }),
	)
}

func (h *Hover) update() {
	if !h.known {
		return
	}
	now := h.s.Now().Seconds()
	x, y := h.px, h.py+h.vp.ScrollY
	for _, it := range append(append([]*page.Hoverable(nil), h.skills...), h.projects...) {
		over := it.Bounds.Contains(x, y)
		if over && !it.Hovered {
			it.HoverSince = now
		}
		it.Hovered = over
	}
}

// Tick recomputes scales at time now (seconds).
func (h *Hover) Tick(now float64) {
	for _, it := range h.skills {
		it.Scale = 1
		if it.Hovered {
			it.Scale = Pulse(now - it.HoverSince)
		}
	}
	for _, it := range h.projects {
		it.Scale = 1
		if it.Hovered {
			it.Scale = CardZoom
		}
	}
}

// Pulse is the 1 -> 1.1 -> 1 keyframe scale, elapsed seconds into the loop.
func Pulse(elapsed float64) float64 {
	f := math.Mod(elapsed, PulsePeriod) / PulsePeriod
	if f < 0 {
		f += 1
	}
	return 1 + PulseAmplitude*(1-math.Abs(2*f-1))
}

// Stop unsubscribes and resets the scales.
func (h *Hover) Stop() {
	h.subs.CancelAll()
	for _, it := range append(append([]*page.Hoverable(nil), h.skills...), h.projects...) {
		it.Hovered = false
		it.Scale = 1
	}
}
