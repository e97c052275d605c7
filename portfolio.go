package main

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/olivierh59500/portfolio-fx/internal/config"
	"github.com/olivierh59500/portfolio-fx/internal/contact"
	"github.com/olivierh59500/portfolio-fx/internal/effects"
	"github.com/olivierh59500/portfolio-fx/internal/loop"
	"github.com/olivierh59500/portfolio-fx/internal/page"
	"github.com/olivierh59500/portfolio-fx/internal/particles"
)

// maxFrameStep caps the time fed to timers after a stall (window drag,
// breakpoint) so intervals do not fire in a burst.
const maxFrameStep = 250 * time.Millisecond

// Options carries the collaborators of a Portfolio.
type Options struct {
	Context  context.Context // cancelling it ends the game
	Logger   *zap.Logger
	Rand     *rand.Rand
	Mail     contact.MailHandler
	Watcher  *config.Watcher
	Override func(*config.Config) // command line settings, reapplied on reload
	HUD      bool
	Headless bool // no renderer, for tests
}

// Portfolio is the page: it owns every effect and implements ebiten.Game.
type Portfolio struct {
	ctx context.Context
	cfg *config.Config
	log *zap.Logger
	rng *rand.Rand

	sched *loop.Scheduler
	bus   *loop.Bus
	subs  loop.Group

	pg       *page.Page
	vp       effects.Viewport
	field    *particles.Field
	matrix   *effects.MatrixRain
	floaters *effects.Floaters
	scroller *effects.Scroller
	nav      *effects.AnchorNav
	reveal   *effects.RevealObserver
	stats    *effects.StatsObserver
	parallax effects.Parallax
	hover    *effects.Hover
	name     *effects.Typewriter
	newTag   *effects.Typewriter
	typing   *effects.TypingLoop
	morph    *effects.MorphText
	banner   *effects.Banner

	form       *contact.Form
	formActive bool
	formStatus string

	watcher  *config.Watcher
	override func(*config.Config)
	input    inputState
	renderer *renderer
	paused   bool // particle motion frozen
	hud      bool

	outW, outH int // size reported by Layout
	width      int
	height     int
	lastTick   time.Time
	closed     bool
}

// NewPortfolio builds the page and starts its timers. Nothing is sized until
// the first resize.
func NewPortfolio(cfg *config.Config, opts Options) (*Portfolio, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Override != nil {
		opts.Override(cfg)
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	p := &Portfolio{
		ctx:      ctx,
		cfg:      cfg,
		log:      log,
		rng:      rng,
		sched:    loop.NewScheduler(),
		bus:      loop.NewBus(),
		pg:       page.Build(cfg.Page),
		watcher:  opts.Watcher,
		override: opts.Override,
		hud:      opts.HUD,
	}
	p.field = particles.New(cfg.Particles, rng)
	p.floaters = effects.NewFloaters(0, rng)
	if p.pg.HeroVisual != nil {
		p.floaters = effects.NewFloaters(cfg.Timing.Floaters, rng)
	}
	p.form = contact.NewForm(cfg.Contact.Recipient, opts.Mail, log.Named("contact"))
	p.scroller = effects.NewScroller(&p.vp, p.pg, p.bus)

	if !opts.Headless {
		r, err := newRenderer(log.Named("render"))
		if err != nil {
			return nil, err
		}
		p.renderer = r
	}

	// Page layout must follow a resize before any observer checks it.
	p.subs.Add(
		p.bus.OnResize(p.onResize),
		p.bus.OnPointer(func(e loop.PointerEvent) { p.field.SetPointer(e.X, e.Y) }),
		p.bus.OnClick(p.onClick),
	)

	if cfg.Matrix.Enabled {
		p.matrix = effects.NewMatrixRain(cfg.Matrix, rng)
		p.subs.Add(p.matrix.Start(p.sched))
	}

	p.nav = effects.NewAnchorNav(p.pg, p.scroller)
	p.nav.Observe(p.bus)
	p.reveal = effects.NewRevealObserver(append(append([]*page.Section(nil), p.pg.Sections...), p.pg.Contact)...)
	p.reveal.Observe(p.sched, p.bus, &p.vp)
	p.stats = effects.NewStatsObserver(p.pg.Stats)
	p.stats.Observe(p.sched, p.bus, &p.vp)
	p.parallax.Observe(p.bus, p.pg.PlanetGlow)
	p.hover = effects.NewHover(p.pg, &p.vp)
	p.hover.Observe(p.sched, p.bus)

	t := cfg.Timing
	p.newTag = effects.NewTypewriter(p.pg.NewTag, cfg.Page.NewTag, cfg.Typing.Speed)
	p.newTag.Start(p.sched, t.IntroDelay, 0)
	p.name = effects.NewTypewriter(p.pg.Name, cfg.Page.Name, cfg.Typing.Speed)
	p.name.Start(p.sched, t.IntroDelay, t.NameLead)
	p.typing = effects.NewTypingLoop(p.pg.Typing, cfg.Page.Typing, cfg.Typing)
	p.typing.Start(p.sched)
	p.morph = effects.NewMorphText(p.pg.MorphTitle, cfg.Page.Morphing, t.MorphInterval)
	p.morph.Start(p.sched)
	p.banner = effects.NewBanner(p.pg.Banner, t.BannerInterval)
	p.banner.Start(p.sched)

	log.Info("portfolio ready",
		zap.Int("particles", cfg.Particles.Count),
		zap.Bool("matrix", cfg.Matrix.Enabled),
		zap.Int("sections", len(p.pg.Sections)),
	)
	return p, nil
}

// Update is called once per display refresh by Ebitengine
func (p *Portfolio) Update() error {
	if p.ctx.Err() != nil {
		return ebiten.Termination
	}
	now := time.Now()
	var dt time.Duration
	if !p.lastTick.IsZero() {
		dt = now.Sub(p.lastTick)
	}
	p.lastTick = now

	p.pollInput()
	p.step(dt)
	return nil
}

// step advances the page by dt: config reloads, resizes, timers, animations
// and finally the particle field.
func (p *Portfolio) step(dt time.Duration) {
	if p.closed {
		return
	}
	if dt > maxFrameStep {
		dt = maxFrameStep
	}
	p.drainConfig()
	if p.outW != p.width || p.outH != p.height {
		p.bus.EmitResize(loop.ResizeEvent{Width: p.outW, Height: p.outH})
	}

	p.sched.Advance(dt)
	secs := dt.Seconds()
	p.scroller.Tick(secs)
	p.hover.Tick(p.now())
	p.pg.Tick(secs)
	if !p.paused {
		p.field.Step()
	}
}

// Layout tracks the window size; the logical screen always matches it.
func (p *Portfolio) Layout(outsideWidth, outsideHeight int) (int, int) {
	p.outW, p.outH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Draw is called each frame by Ebitengine
func (p *Portfolio) Draw(screen *ebiten.Image) {
	if p.renderer == nil || p.closed {
		return
	}
	p.renderer.draw(screen, p)
}

func (p *Portfolio) now() float64 { return p.sched.Now().Seconds() }

func (p *Portfolio) onResize(e loop.ResizeEvent) {
	p.width, p.height = e.Width, e.Height
	w, h := float64(e.Width), float64(e.Height)
	p.vp.Width, p.vp.Height = w, h
	p.pg.Layout(w, h)
	p.scroller.Clamp()
	p.field.Resize(w, h)
	if p.matrix != nil {
		p.matrix.Resize(w, h)
	}
	if p.renderer != nil {
		p.renderer.resize(e.Width, e.Height)
	}
	p.log.Debug("viewport resized", zap.Int("width", e.Width), zap.Int("height", e.Height))
}

func (p *Portfolio) onClick(e loop.ClickEvent) {
	if p.pg.Contact == nil || !p.pg.Contact.Revealed {
		return
	}
	y := e.Y + p.vp.ScrollY
	for i, r := range p.formRects() {
		if r.Contains(e.X, y) {
			p.form.SetFocus(contact.Field(i))
			p.formActive = true
			return
		}
	}
	p.formActive = false
}

// formRects lays out the name, email and message inputs inside the contact
// section, in page coordinates.
func (p *Portfolio) formRects() [3]page.Rect {
	c := p.pg.Contact.Bounds
	y := c.Y + page.Margin + 3*page.LineHeight
	if body := p.pg.Contact.Body; body != nil {
		y += float64(len(page.Wrap(body.Text, c.W-2*page.Margin))) * page.LineHeight
	}
	w := math.Min(480, c.W-2*page.Margin)
	return [3]page.Rect{
		{X: page.Margin, Y: y, W: w, H: 32},
		{X: page.Margin, Y: y + 44, W: w, H: 32},
		{X: page.Margin, Y: y + 88, W: w, H: 96},
	}
}

func (p *Portfolio) submitForm() {
	ev, err := p.form.Submit()
	if err != nil {
		p.formStatus = "Could not open your mail client."
		p.log.Warn("contact hand-off failed", zap.Error(err))
		return
	}
	if ev.DefaultPrevented() {
		p.formStatus = "Opening your mail client..."
	}
}

func (p *Portfolio) drainConfig() {
	if p.watcher == nil {
		return
	}
	select {
	case cfg := <-p.watcher.Updates():
		p.applyConfig(cfg)
	default:
	}
}

// applyConfig takes over the settings that can change without rebuilding the
// page: particle tuning and the mail recipient. Command line overrides win
// over the file.
func (p *Portfolio) applyConfig(cfg *config.Config) {
	if p.override != nil {
		p.override(cfg)
	}
	p.cfg.Particles = cfg.Particles
	p.cfg.Contact = cfg.Contact
	p.field.SetConfig(cfg.Particles)
	p.form.Recipient = cfg.Contact.Recipient
	p.log.Info("config applied", zap.Int("particles", cfg.Particles.Count))
}

// Close cancels every timer and listener and stops the config watcher.
func (p *Portfolio) Close() {
	if p.closed {
		return
	}
	p.closed = true

	p.subs.CancelAll()
	p.nav.Stop()
	p.reveal.Stop()
	p.stats.Stop()
	p.parallax.Stop()
	p.hover.Stop()
	p.name.Stop()
	p.newTag.Stop()
	p.typing.Stop()
	p.morph.Stop()
	p.banner.Stop()
	if p.matrix != nil {
		p.matrix.Stop()
	}
	p.sched.Close()
	p.bus.Close()
	if p.watcher != nil {
		p.watcher.Stop()
	}
	if p.renderer != nil {
		p.renderer.dispose()
	}
	p.log.Info("portfolio closed")
}
