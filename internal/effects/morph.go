package effects

import (
	"time"

	"github.com/olivierh59500/portfolio-fx/internal/loop"
	"github.com/olivierh59500/portfolio-fx/internal/page"
)

// FadeDuration is how long text and images stay faded out before a swap.
const FadeDuration = 500 * time.Millisecond

// MorphText fades an element out and back in with the next phrase.
type MorphText struct {
	el       *page.Element
	texts    []string
	interval time.Duration
	idx      int
	tick     *loop.Subscription
	swap     *loop.Subscription
}

// NewMorphText cycles el through texts. If el already shows one of them the
// cycle continues after it.
func NewMorphText(el *page.Element, texts []string, interval time.Duration) *MorphText {
	m := &MorphText{el: el, texts: texts, interval: interval}
	if el != nil {
		for i, t := range texts {
			if t == el.Text {
				m.idx = (i + 1) % len(texts)
				break
			}
		}
	}
	return m
}

// Start schedules the swaps.
func (m *MorphText) Start(s *loop.Scheduler) {
	if m.el == nil || len(m.texts) == 0 {
		return
	}
	m.tick = s.Every(m.interval, func() {
		m.el.Opacity = 0
		m.swap = s.After(FadeDuration, func() {
			m.el.Text = m.texts[m.idx]
			m.el.Opacity = 1
			m.idx = (m.idx + 1) % len(m.texts)
		})
	})
}

// Stop cancels the interval and any pending swap.
func (m *MorphText) Stop() {
	m.tick.Cancel()
	m.swap.Cancel()
}

// Banner rotates the image of a banner.
type Banner struct {
	b        *page.Banner
	interval time.Duration
	idx      int
	tick     *loop.Subscription
	swap     *loop.Subscription
}

// NewBanner binds the rotation to b. A nil banner or an empty image list make
// it a no-op.
func NewBanner(b *page.Banner, interval time.Duration) *Banner {
	return &Banner{b: b, interval: interval}
}

// Index returns the index of the image on display.
func (r *Banner) Index() int { return r.idx }

// Start schedules the rotation.
func (r *Banner) Start(s *loop.Scheduler) {
	if r.b == nil || r.b.Image == nil || len(r.b.Images) == 0 {
		return
	}
	r.tick = s.Every(r.interval, func() {
		r.b.Image.Opacity = 0
		r.swap = s.After(FadeDuration, func() {
			r.idx = (r.idx + 1) % len(r.b.Images)
			r.b.Image.Src = r.b.Images[r.idx]
			r.b.Image.Opacity = 1
		})
	})
}

// Stop cancels the rotation.
func (r *Banner) Stop() {
	r.tick.Cancel()
	r.swap.Cancel()
}
