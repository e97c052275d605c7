package effects

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olivierh59500/portfolio-fx/internal/loop"
	"github.com/olivierh59500/portfolio-fx/internal/page"
)

func TestCounterReachesTargetExactly(t *testing.T) {
	s := loop.NewScheduler()
	el := page.NewElement("stat", "0")
	c := StartCounter(s, el, 42, CounterDuration, CounterTick)

	last := 0.0
	for i := 0; i < 200 && !c.Done(); i++ {
		s.Advance(CounterTick)
		require.LessOrEqual(t, c.Value(), 42.0)
		require.GreaterOrEqual(t, c.Value(), last)
		last = c.Value()
	}
	require.True(t, c.Done())
	assert.Equal(t, 42.0, c.Value())
	assert.Equal(t, "42", el.Text)
	assert.Equal(t, 0, s.Pending())

	s.Advance(time.Second)
	assert.Equal(t, "42", el.Text)
}

func TestCounterShowsFloor(t *testing.T) {
	s := loop.NewScheduler()
	el := page.NewElement("stat", "0")
	StartCounter(s, el, 250, CounterDuration, CounterTick) // 2 per tick

	s.Advance(CounterTick)
	assert.Equal(t, "2", el.Text)
	s.Advance(CounterDuration)
	assert.Equal(t, "250", el.Text)
}

func TestCounterZeroTarget(t *testing.T) {
	s := loop.NewScheduler()
	el := page.NewElement("stat", "")
	c := StartCounter(s, el, 0, CounterDuration, CounterTick)
	s.Advance(CounterTick)
	assert.True(t, c.Done())
	assert.Equal(t, "0", el.Text)
}

func TestCounterNilElement(t *testing.T) {
	s := loop.NewScheduler()
	c := StartCounter(s, nil, 10, CounterDuration, CounterTick)
	assert.Equal(t, 0, s.Pending())
	c.Stop()
}

func TestStatsObserverFiresOnce(t *testing.T) {
	s := loop.NewScheduler()
	bus := loop.NewBus()
	stats := &page.Stats{
		Items:  []*page.Stat{{Target: 10, Value: page.NewElement("a", "0")}, {Target: 20, Value: page.NewElement("b", "0")}},
		Bounds: page.Rect{Y: 1000, H: 100},
	}
	vp := &Viewport{Width: 800, Height: 600}

	o := NewStatsObserver(stats)
	o.Observe(s, bus, vp)
	assert.Empty(t, o.Counters(), "strip is below the fold")

	vp.ScrollY = 430 // 30% visible
	bus.EmitScroll(loop.ScrollEvent{Y: vp.ScrollY})
	assert.Empty(t, o.Counters())

	vp.ScrollY = 460 // 60% visible
	bus.EmitScroll(loop.ScrollEvent{Y: vp.ScrollY})
	require.Len(t, o.Counters(), 2)
	assert.Equal(t, 0, bus.Listeners(), "unobserved after firing")

	s.Advance(3 * time.Second)
	assert.Equal(t, "10", stats.Items[0].Value.Text)
	assert.Equal(t, "20", stats.Items[1].Value.Text)
}

func TestStatsObserverMissingStrip(t *testing.T) {
	bus := loop.NewBus()
	o := NewStatsObserver(nil)
	o.Observe(loop.NewScheduler(), bus, &Viewport{Height: 600})
	assert.Equal(t, 0, bus.Listeners())
	o.Stop()
}

func TestTypewriter(t *testing.T) {
	s := loop.NewScheduler()
	el := page.NewElement("name", "old")
	tw := NewTypewriter(el, "Añn", 100*time.Millisecond)
	tw.Start(s, time.Second, 500*time.Millisecond)

	s.Advance(999 * time.Millisecond)
	assert.Equal(t, "old", el.Text)
	s.Advance(time.Millisecond)
	assert.Equal(t, "", el.Text)
	s.Advance(500 * time.Millisecond)
	assert.Equal(t, "A", el.Text)
	s.Advance(100 * time.Millisecond)
	assert.Equal(t, "Añ", el.Text)
	s.Advance(100 * time.Millisecond)
	assert.Equal(t, "Añn", el.Text)
	assert.False(t, tw.Done())
	s.Advance(100 * time.Millisecond)
	assert.True(t, tw.Done())
	assert.Equal(t, 0, s.Pending())
}

func TestTypewriterWithoutLead(t *testing.T) {
	s := loop.NewScheduler()
	el := page.NewElement("tag", "")
	NewTypewriter(el, "ok", 100*time.Millisecond).Start(s, time.Second, 0)
	s.Advance(time.Second)
	assert.Equal(t, "o", el.Text)
}

func TestTypewriterStopAndNil(t *testing.T) {
	s := loop.NewScheduler()
	el := page.NewElement("tag", "")
	tw := NewTypewriter(el, "hello", 100*time.Millisecond)
	tw.Start(s, 0, 0)
	s.Advance(150 * time.Millisecond)
	tw.Stop()
	s.Advance(time.Second)
	assert.Equal(t, "he", el.Text)

	NewTypewriter(nil, "x", time.Millisecond).Start(s, 0, 0)
	assert.Equal(t, 0, s.Pending())
}

func TestTypingLoopCycles(t *testing.T) {
	s := loop.NewScheduler()
	el := page.NewElement("typing", "")
	cfg := DefaultTypingConfig()
	l := NewTypingLoop(el, []string{"ab", "c"}, cfg)
	l.Start(s)

	assert.Equal(t, "a", el.Text)
	s.Advance(cfg.Speed)
	assert.Equal(t, "ab", el.Text)
	s.Advance(cfg.Speed) // finished typing, hold starts
	s.Advance(cfg.Hold)
	assert.Equal(t, "a", el.Text)
	s.Advance(cfg.EraseRate)
	assert.Equal(t, "", el.Text)
	assert.Equal(t, 0, l.Phrase())
	s.Advance(cfg.EraseRate) // nothing left, gap starts
	assert.Equal(t, 1, l.Phrase())
	s.Advance(cfg.Gap)
	assert.Equal(t, "c", el.Text)

	l.Stop()
	assert.Equal(t, 0, s.Pending())
}

func TestTypingLoopNoop(t *testing.T) {
	s := loop.NewScheduler()
	NewTypingLoop(nil, []string{"a"}, DefaultTypingConfig()).Start(s)
	NewTypingLoop(page.NewElement("t", ""), nil, DefaultTypingConfig()).Start(s)
	assert.Equal(t, 0, s.Pending())
}

func TestMorphText(t *testing.T) {
	s := loop.NewScheduler()
	texts := []string{"one", "two", "three"}
	el := page.NewElement("morph", "one")
	m := NewMorphText(el, texts, 3*time.Second)
	m.Start(s)

	s.Advance(3 * time.Second)
	assert.Equal(t, 0.0, el.Opacity)
	assert.Equal(t, "one", el.Text)
	s.Advance(FadeDuration)
	assert.Equal(t, 1.0, el.Opacity)
	assert.Equal(t, "two", el.Text)

	s.Advance(6 * time.Second)
	assert.Equal(t, "one", el.Text, "wraps around")

	m.Stop()
	assert.Equal(t, 0, s.Pending())
}

func TestMorphTextUnknownStart(t *testing.T) {
	s := loop.NewScheduler()
	el := page.NewElement("morph", "intro")
	NewMorphText(el, []string{"a", "b"}, time.Second).Start(s)
	s.Advance(time.Second + FadeDuration)
	assert.Equal(t, "a", el.Text)
}

func TestBannerRotates(t *testing.T) {
	s := loop.NewScheduler()
	img := page.NewElement("img", "")
	img.Src = "a.png"
	b := &page.Banner{Image: img, Images: []string{"a.png", "b.png"}}
	r := NewBanner(b, 8*time.Second)
	r.Start(s)

	s.Advance(8 * time.Second)
	assert.Equal(t, 0.0, img.Opacity)
	assert.Equal(t, "a.png", img.Src)
	s.Advance(FadeDuration)
	assert.Equal(t, "b.png", img.Src)
	assert.Equal(t, 1, r.Index())
	s.Advance(8 * time.Second)
	assert.Equal(t, "a.png", img.Src)
	assert.Equal(t, 0, r.Index())

	r.Stop()
	assert.Equal(t, 0, s.Pending())
}

func TestBannerMissing(t *testing.T) {
	s := loop.NewScheduler()
	NewBanner(nil, time.Second).Start(s)
	NewBanner(&page.Banner{Image: page.NewElement("img", "")}, time.Second).Start(s)
	assert.Equal(t, 0, s.Pending())
}

func TestMatrixRain(t *testing.T) {
	cfg := DefaultMatrixConfig()
	m := NewMatrixRain(cfg, rand.New(rand.NewSource(1)))
	m.Resize(100, 28)
	require.Equal(t, 8, m.Columns()) // ceil(100/14)
	for _, d := range m.Drops() {
		assert.Equal(t, 1, d)
	}

	glyphs := m.Frame()
	require.Len(t, glyphs, 8)
	assert.Equal(t, 14.0, glyphs[1].X)
	assert.Equal(t, 14.0, glyphs[1].Y)
	for _, g := range glyphs {
		assert.Contains(t, "01", string(g.Ch))
	}
	assert.Equal(t, 2, m.Drops()[0])

	// Columns past the bottom eventually restart.
	for i := 0; i < 500; i++ {
		m.Frame()
	}
	for _, d := range m.Drops() {
		assert.Less(t, d, 500)
	}
}

func TestMatrixRainNeverResetsAboveBottom(t *testing.T) {
	cfg := DefaultMatrixConfig()
	cfg.ResetChance = 1
	m := NewMatrixRain(cfg, rand.New(rand.NewSource(1)))
	m.Resize(14, 42)
	for i := 0; i < 3; i++ {
		m.Frame()
	}
	assert.Equal(t, 4, m.Drops()[0], "row 3 is at the bottom edge, not past it")
	m.Frame()
	assert.Equal(t, 1, m.Drops()[0])
}

func TestMatrixRainTimerAndDrain(t *testing.T) {
	s := loop.NewScheduler()
	m := NewMatrixRain(DefaultMatrixConfig(), rand.New(rand.NewSource(1)))
	m.Resize(28, 100)
	m.Start(s)

	s.Advance(100 * time.Millisecond)
	frames := m.Drain()
	assert.Len(t, frames, 2)
	assert.Empty(t, m.Drain())

	s.Advance(time.Second)
	assert.Len(t, m.Drain(), maxPending)

	m.Stop()
	s.Advance(time.Second)
	assert.Empty(t, m.Drain())
}

func TestVisibleRatio(t *testing.T) {
	r := page.Rect{Y: 100, H: 100}
	assert.Equal(t, 1.0, VisibleRatio(r, 0, 600, 0))
	assert.Equal(t, 0.5, VisibleRatio(r, 150, 600, 0))
	assert.Equal(t, 0.0, VisibleRatio(r, 0, 150, 50))
	assert.Equal(t, 0.0, VisibleRatio(page.Rect{}, 0, 600, 0))
}

func TestRevealObserver(t *testing.T) {
	s := loop.NewScheduler()
	bus := loop.NewBus()
	vp := &Viewport{Width: 800, Height: 600}
	top := &page.Section{ID: "top", Bounds: page.Rect{Y: 0, H: 400}}
	below := &page.Section{ID: "below", Bounds: page.Rect{Y: 600, H: 500}}

	o := NewRevealObserver(top, below, nil)
	o.Observe(s, bus, vp)
	assert.True(t, top.Revealed)
	assert.False(t, below.Revealed)

	s.Advance(2 * time.Second)
	// 40px visible above the 50px inset: 8%.
	vp.ScrollY = 90
	bus.EmitScroll(loop.ScrollEvent{Y: vp.ScrollY})
	assert.False(t, below.Revealed)

	vp.ScrollY = 100 // 50px: 10%
	bus.EmitScroll(loop.ScrollEvent{Y: vp.ScrollY})
	assert.True(t, below.Revealed)
	assert.Equal(t, 2.0, below.RevealedAt)

	vp.ScrollY = 0
	bus.EmitScroll(loop.ScrollEvent{})
	assert.True(t, below.Revealed, "revealed sections stay revealed")

	o.Stop()
	assert.Equal(t, 0, bus.Listeners())
}

func TestFadeInUp(t *testing.T) {
	op, off := FadeInUp(0)
	assert.Equal(t, 0.0, op)
	assert.Equal(t, RevealRise, off)

	op, off = FadeInUp(0.5)
	assert.InDelta(t, 0.875, op, 1e-9)
	assert.InDelta(t, RevealRise*0.125, off, 1e-9)

	op, off = FadeInUp(2)
	assert.Equal(t, 1.0, op)
	assert.Equal(t, 0.0, off)

	op, _ = SectionStyle(&page.Section{}, 10)
	assert.Equal(t, 0.0, op)
}

func TestParallax(t *testing.T) {
	bus := loop.NewBus()
	var p Parallax
	p.Observe(bus, page.NewElement("glow", ""))
	bus.EmitScroll(loop.ScrollEvent{Y: 300})
	assert.Equal(t, 150.0, p.Offset)
	p.Stop()

	var none Parallax
	none.Observe(bus, nil)
	assert.Equal(t, 0, bus.Listeners())
}

func testPage() *page.Page {
	pg := page.Build(page.Config{
		Sections: []page.SectionConfig{
			{ID: "about", Title: "About", Height: 500},
			{ID: "skills", Title: "Skills", Height: 500, Skills: []string{"Go"}},
			{ID: "work", Title: "Work", Height: 500, Projects: []page.ProjectConfig{{Title: "p"}}},
		},
	})
	pg.Layout(1000, 600)
	return pg
}

func TestScrollerWheelClamps(t *testing.T) {
	pg := testPage()
	vp := &Viewport{Width: 1000, Height: 600}
	bus := loop.NewBus()
	var got []float64
	bus.OnScroll(func(e loop.ScrollEvent) { got = append(got, e.Y) })
	sc := NewScroller(vp, pg, bus)

	sc.Wheel(1) // wheel up at the top
	assert.Empty(t, got)
	sc.Wheel(-2)
	assert.Equal(t, 80.0, vp.ScrollY)
	sc.Wheel(-1000)
	assert.Equal(t, pg.MaxScroll(600), vp.ScrollY)
	assert.Equal(t, []float64{80, pg.MaxScroll(600)}, got)
}

func TestAnchorNavSmoothScroll(t *testing.T) {
	pg := testPage()
	vp := &Viewport{Width: 1000, Height: 600}
	bus := loop.NewBus()
	sc := NewScroller(vp, pg, bus)
	nav := NewAnchorNav(pg, sc)
	nav.Observe(bus)

	link := pg.Nav[1] // #skills
	bus.EmitClick(loop.ClickEvent{X: link.Bounds.X + 1, Y: link.Bounds.Y + 1})
	require.True(t, sc.Animating())

	target := pg.Section("skills").Bounds.Y
	prev := vp.ScrollY
	for i := 0; i < 60 && sc.Animating(); i++ {
		sc.Tick(1.0 / 60)
		assert.GreaterOrEqual(t, vp.ScrollY, prev, "frame %d", i)
		assert.LessOrEqual(t, vp.ScrollY, target+1e-6, "frame %d", i)
		prev = vp.ScrollY
	}
	assert.False(t, sc.Animating())
	assert.Equal(t, target, vp.ScrollY)

	assert.False(t, nav.Click(-10, -10))
	nav.Stop()
}

func TestScrollerWheelCancelsSmoothScroll(t *testing.T) {
	pg := testPage()
	vp := &Viewport{Width: 1000, Height: 600}
	sc := NewScroller(vp, pg, loop.NewBus())

	sc.ScrollTo(pg.MaxScroll(600))
	sc.Tick(0.1)
	require.True(t, sc.Animating())
	mid := vp.ScrollY
	assert.Greater(t, mid, 0.0)

	sc.Wheel(1)
	assert.False(t, sc.Animating())
	assert.Equal(t, mid-WheelStep, vp.ScrollY)
	sc.Tick(1)
	assert.Equal(t, mid-WheelStep, vp.ScrollY)
}

func TestScrollerRetargetsInFlight(t *testing.T) {
	pg := testPage()
	vp := &Viewport{Width: 1000, Height: 600}
	sc := NewScroller(vp, pg, loop.NewBus())

	sc.ScrollTo(pg.MaxScroll(600))
	sc.Tick(0.1)
	sc.ScrollTo(0)
	sc.Tick(2)
	assert.False(t, sc.Animating())
	assert.Equal(t, 0.0, vp.ScrollY)
}

func TestAnchorNavMissingTarget(t *testing.T) {
	pg := testPage()
	pg.Nav[0].Href = "#nowhere"
	vp := &Viewport{Height: 600}
	sc := NewScroller(vp, pg, loop.NewBus())
	nav := NewAnchorNav(pg, sc)

	l := pg.Nav[0]
	assert.True(t, nav.Click(l.Bounds.X+1, l.Bounds.Y+1))
	assert.False(t, sc.Animating())
}

func TestHoverPulseAndZoom(t *testing.T) {
	pg := testPage()
	vp := &Viewport{Width: 1000, Height: 600}
	s := loop.NewScheduler()
	bus := loop.NewBus()
	h := NewHover(pg, vp)
	h.Observe(s, bus)

	chip := pg.Skills[0]
	card := pg.Projects[0]

	vp.ScrollY = chip.Bounds.Y - 100
	bus.EmitScroll(loop.ScrollEvent{Y: vp.ScrollY})
	s.Advance(time.Second)
	bus.EmitPointer(loop.PointerEvent{X: chip.Bounds.X + 1, Y: 101})
	require.True(t, chip.Hovered)
	assert.False(t, card.Hovered)

	h.Tick(1.5)
	assert.InDelta(t, 1.1, chip.Scale, 1e-9)
	h.Tick(2)
	assert.InDelta(t, 1.0, chip.Scale, 1e-9)
	assert.Equal(t, 1.0, card.Scale)

	// Scrolling moves the card under the resting pointer.
	vp.ScrollY = card.Bounds.Y - 101 + 1
	bus.EmitScroll(loop.ScrollEvent{Y: vp.ScrollY})
	assert.False(t, chip.Hovered)
	assert.True(t, card.Hovered)
	h.Tick(3)
	assert.Equal(t, CardZoom, card.Scale)
	assert.Equal(t, 1.0, chip.Scale)

	h.Stop()
	assert.Equal(t, 1.0, card.Scale)
	assert.Equal(t, 0, bus.Listeners())
}

func TestHoverFollowsRelayout(t *testing.T) {
	pg := testPage()
	vp := &Viewport{Width: 1000, Height: 600}
	bus := loop.NewBus()
	h := NewHover(pg, vp)
	h.Observe(loop.NewScheduler(), bus)
	defer h.Stop()

	chip := pg.Skills[0]
	vp.ScrollY = chip.Bounds.Y - 100
	bus.EmitPointer(loop.PointerEvent{X: chip.Bounds.X + 1, Y: 101})
	require.True(t, chip.Hovered)

	// A taller viewport pushes the sections down under the resting pointer.
	pg.Layout(1000, 900)
	vp.Height = 900
	bus.EmitResize(loop.ResizeEvent{Width: 1000, Height: 900})
	assert.False(t, chip.Hovered)
}

func TestPulse(t *testing.T) {
	assert.InDelta(t, 1.0, Pulse(0), 1e-9)
	assert.InDelta(t, 1.05, Pulse(0.25), 1e-9)
	assert.InDelta(t, 1.1, Pulse(0.5), 1e-9)
	assert.InDelta(t, 1.0, Pulse(3), 1e-9)
}

func TestFloaters(t *testing.T) {
	f := NewFloaters(DefaultFloaters, rand.New(rand.NewSource(7)))
	require.Len(t, f.Items(), DefaultFloaters)
	box := page.Rect{X: 500, Y: 100, W: 400, H: 300}

	for _, it := range f.Items() {
		assert.GreaterOrEqual(t, it.Delay, 0.0)
		assert.Less(t, it.Delay, 5.0)
		assert.GreaterOrEqual(t, it.Duration, 10.0)
		assert.Less(t, it.Duration, 20.0)
	}

	for i, st := range f.States(box, 800, 0) {
		it := f.Items()[i]
		assert.Equal(t, 1.0, st.Opacity, "not started yet")
		assert.InDelta(t, box.X+it.Left*box.W, st.X, 1e-9)
		assert.InDelta(t, box.Y+it.Top*box.H, st.Y, 1e-9)
	}

	it := f.Items()[0]
	mid := f.States(box, 800, it.Delay+it.Duration/2)[0]
	assert.Equal(t, 1.0, mid.Opacity)
	assert.InDelta(t, box.Y+it.Top*box.H-400, mid.Y, 1e-9)
	assert.InDelta(t, math.Pi, mid.Rotation, 1e-9)
	assert.InDelta(t, box.X+it.Left*box.W, mid.X, swayAmplitude*4)

	early := f.States(box, 800, it.Delay+it.Duration*0.05)[0]
	assert.InDelta(t, 0.5, early.Opacity, 1e-9)
}

func TestFloatOpacity(t *testing.T) {
	assert.Equal(t, 0.0, floatOpacity(0))
	assert.Equal(t, 1.0, floatOpacity(0.5))
	assert.InDelta(t, 0.5, floatOpacity(0.95), 1e-9)
}
