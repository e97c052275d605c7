package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/olivierh59500/portfolio-fx/internal/contact"
	"github.com/olivierh59500/portfolio-fx/internal/effects"
	"github.com/olivierh59500/portfolio-fx/internal/page"
)

const glowSize = 64

var (
	colorBackground = color.RGBA{0x0a, 0x0a, 0x14, 0xff}
	colorText       = color.RGBA{0xe6, 0xe6, 0xf0, 0xff}
	colorMuted      = color.RGBA{0x9a, 0x9a, 0xb0, 0xff}
	colorAccent     = color.RGBA{0x00, 0xff, 0xff, 0xff}
	colorPanel      = color.RGBA{0x16, 0x16, 0x28, 0xff}
	colorPlanet     = color.RGBA{0x7b, 0x2f, 0xf7, 0xff}
	colorNav        = color.RGBA{0x0a, 0x0a, 0x14, 0xd8}
)

// renderer draws a Portfolio. It keeps the GPU resources: faces, the glow
// sprite, the matrix layer and loaded banner images.
type renderer struct {
	log    *zap.Logger
	body   *text.GoTextFace
	small  *text.GoTextFace
	title  *text.GoTextFace
	hero   *text.GoTextFace
	glow   *ebiten.Image
	matrix *ebiten.Image
	images map[string]*ebiten.Image // nil entries remember failed loads
}

func newRenderer(log *zap.Logger) (*renderer, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	return &renderer{
		log:    log,
		body:   &text.GoTextFace{Source: src, Size: 14},
		small:  &text.GoTextFace{Source: src, Size: 12},
		title:  &text.GoTextFace{Source: src, Size: 28},
		hero:   &text.GoTextFace{Source: src, Size: 40},
		glow:   glowSprite(glowSize),
		images: make(map[string]*ebiten.Image),
	}, nil
}

// glowSprite renders a white radial falloff, tinted per draw to fake a
// shadow blur.
func glowSprite(size int) *ebiten.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	c := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)+0.5-c, float64(y)+0.5-c) / c
			if d >= 1 {
				continue
			}
			a := uint8(255 * (1 - d) * (1 - d))
			img.SetRGBA(x, y, color.RGBA{a, a, a, a})
		}
	}
	return ebiten.NewImageFromImage(img)
}

func (r *renderer) resize(width, height int) {
	if r.matrix != nil {
		r.matrix.Deallocate()
		r.matrix = nil
	}
	if width > 0 && height > 0 {
		r.matrix = ebiten.NewImage(width, height)
	}
}

func (r *renderer) dispose() {
	if r.matrix != nil {
		r.matrix.Deallocate()
	}
	for _, img := range r.images {
		if img != nil {
			img.Deallocate()
		}
	}
	r.glow.Deallocate()
}

func (r *renderer) draw(screen *ebiten.Image, p *Portfolio) {
	screen.Fill(colorBackground)
	now := p.now()
	scroll := p.vp.ScrollY

	r.drawMatrix(screen, p)
	r.drawHeroVisual(screen, p, now, scroll)
	for _, pt := range p.field.Particles() {
		blur := p.field.Config().GlowBlur
		r.drawGlow(screen, pt.X, pt.Y, pt.R+blur, pt.Color, 0.6)
		vector.DrawFilledCircle(screen, float32(pt.X), float32(pt.Y), float32(pt.R), pt.Color, true)
	}
	r.drawHero(screen, p, now, scroll)
	for _, sec := range p.pg.Sections {
		r.drawSection(screen, sec, now, scroll)
	}
	for _, h := range p.pg.Skills {
		r.drawChip(screen, h, scroll)
	}
	for _, h := range p.pg.Projects {
		r.drawCard(screen, h, scroll)
	}
	if p.pg.Contact != nil {
		r.drawSection(screen, p.pg.Contact, now, scroll)
		r.drawForm(screen, p, now, scroll)
	}
	r.drawNav(screen, p)

	if p.hud {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %.0f  FPS %.0f  particles %d  scroll %.0f",
			ebiten.ActualTPS(), ebiten.ActualFPS(), len(p.field.Particles()), scroll), 4, int(page.NavHeight)+4)
	}
}

// drawMatrix paints the frames produced since the last draw onto the
// persistent layer, fading what was there, then shows the layer faintly.
func (r *renderer) drawMatrix(screen *ebiten.Image, p *Portfolio) {
	if p.matrix == nil || r.matrix == nil {
		return
	}
	cfg := p.matrix.Config()
	w, h := r.matrix.Bounds().Dx(), r.matrix.Bounds().Dy()
	fade := color.RGBA{A: uint8(cfg.Fade * 255)}
	face := &text.GoTextFace{Source: r.body.Source, Size: cfg.FontSize}
	for _, frame := range p.matrix.Drain() {
		vector.DrawFilledRect(r.matrix, 0, 0, float32(w), float32(h), fade, false)
		for _, g := range frame {
			// Glyph positions are baselines.
			r.drawText(r.matrix, string(g.Ch), face, g.X, g.Y-cfg.FontSize, 1, colorAccent, 1)
		}
	}
	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleAlpha(float32(cfg.Opacity))
	screen.DrawImage(r.matrix, op)
}

func (r *renderer) drawHeroVisual(screen *ebiten.Image, p *Portfolio, now, scroll float64) {
	box := p.pg.HeroVisual
	if box == nil {
		return
	}
	if glow := p.pg.PlanetGlow; glow != nil {
		cx := box.X + box.W/2
		cy := box.Y + box.H/2 - scroll + p.parallax.Offset
		radius := math.Min(box.W, box.H) / 2
		r.drawGlow(screen, cx, cy, radius, colorPlanet, 0.8*glow.Alpha)
		r.drawGlow(screen, cx, cy, radius*0.5, colorAccent, 0.3*glow.Alpha)
	}
	for _, st := range p.floaters.States(*box, p.vp.Height, now) {
		y := st.Y - scroll
		r.drawGlow(screen, st.X, y, effects.FloaterSize+10, colorAccent, st.Opacity)
		c := colorAccent
		c.A = uint8(255 * st.Opacity)
		c.R, c.G, c.B = uint8(float64(c.R)*st.Opacity), uint8(float64(c.G)*st.Opacity), uint8(float64(c.B)*st.Opacity)
		vector.DrawFilledCircle(screen, float32(st.X), float32(y), effects.FloaterSize/2, c, true)
	}
}

func (r *renderer) drawHero(screen *ebiten.Image, p *Portfolio, now, scroll float64) {
	pg := p.pg
	hero := pg.Hero
	y := func(f float64) float64 { return hero.Y + hero.H*f - scroll }

	if e := pg.NewTag; e != nil {
		r.drawText(screen, e.Text, r.body, page.Margin, y(0.2), 1, colorAccent, e.Alpha)
	}
	if e := pg.Name; e != nil {
		r.drawText(screen, e.Text, r.hero, page.Margin, y(0.26), 1, colorText, e.Alpha)
		// Blinking caret, on for the first half of every second.
		if math.Mod(now, 1) < 0.5 {
			x := page.Margin + text.Advance(e.Text, r.hero) + 4
			vector.DrawFilledRect(screen, float32(x), float32(y(0.26)), 3, float32(r.hero.Size*1.2), colorAccent, false)
		}
	}
	if e := pg.Typing; e != nil {
		r.drawText(screen, e.Text, r.title, page.Margin, y(0.36), 1, colorText, e.Alpha)
	}
	if e := pg.MorphTitle; e != nil {
		for i, line := range page.Wrap(e.Text, hero.W*0.45-page.Margin) {
			r.drawText(screen, line, r.body, page.Margin, y(0.46)+float64(i)*page.LineHeight, 1, colorMuted, e.Alpha)
		}
	}
	if b := pg.Banner; b != nil && b.Image != nil {
		r.drawBanner(screen, b, scroll)
	}
	if s := pg.Stats; s != nil && len(s.Items) > 0 {
		w := s.Bounds.W / float64(len(s.Items))
		for i, st := range s.Items {
			x := s.Bounds.X + float64(i)*w
			r.drawText(screen, st.Value.Text+"+", r.title, x, s.Bounds.Y-scroll, 1, colorAccent, st.Value.Alpha)
			r.drawText(screen, st.Label, r.small, x, s.Bounds.Y+40-scroll, 1, colorMuted, 1)
		}
	}
}

func (r *renderer) drawBanner(screen *ebiten.Image, b *page.Banner, scroll float64) {
	box := b.Bounds
	box.Y -= scroll
	vector.DrawFilledRect(screen, float32(box.X), float32(box.Y), float32(box.W), float32(box.H), colorPanel, false)

	img := r.image(b.Image.Src)
	if img == nil {
		r.drawText(screen, b.Image.Src, r.small, box.X+8, box.Y+box.H/2, 1, colorMuted, b.Image.Alpha)
		return
	}
	iw, ih := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
	s := math.Min(box.W/iw, box.H/ih)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(box.X+(box.W-iw*s)/2, box.Y+(box.H-ih*s)/2)
	op.ColorScale.ScaleAlpha(float32(b.Image.Alpha))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

// image loads src once. Missing files are logged once and drawn as their
// path.
func (r *renderer) image(src string) *ebiten.Image {
	if img, ok := r.images[src]; ok {
		return img
	}
	img, _, err := ebitenutil.NewImageFromFile(src)
	if err != nil {
		r.log.Warn("banner image unavailable", zap.String("src", src), zap.Error(err))
		img = nil
	}
	r.images[src] = img
	return img
}

func (r *renderer) drawSection(screen *ebiten.Image, sec *page.Section, now, scroll float64) {
	opacity, offset := effects.SectionStyle(sec, now)
	if opacity <= 0 {
		return
	}
	top := sec.Bounds.Y - scroll + offset
	if top > float64(screen.Bounds().Dy()) || top+sec.Bounds.H < 0 {
		return
	}
	if e := sec.Title; e != nil {
		r.drawText(screen, e.Text, r.title, page.Margin, top+page.Margin, 1, colorText, opacity*e.Alpha)
	}
	if e := sec.Body; e != nil {
		y := top + page.Margin + 3*page.LineHeight
		for _, line := range page.Wrap(e.Text, sec.Bounds.W-2*page.Margin) {
			r.drawText(screen, line, r.body, page.Margin, y, 1, colorMuted, opacity*e.Alpha)
			y += page.LineHeight
		}
	}
}

func (r *renderer) drawChip(screen *ebiten.Image, h *page.Hoverable, scroll float64) {
	b := scaled(h.Bounds, h.Scale)
	b.Y -= scroll
	border := colorMuted
	if h.Hovered {
		border = colorAccent
	}
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), colorPanel, true)
	vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 1, border, true)
	pad := (h.Bounds.W - page.TextWidth(h.Title.Text)) / 2 * h.Scale
	r.drawText(screen, h.Title.Text, r.body, b.X+pad, b.Y+8*h.Scale, h.Scale, colorText, h.Title.Alpha)
}

func (r *renderer) drawCard(screen *ebiten.Image, h *page.Hoverable, scroll float64) {
	b := scaled(h.Bounds, h.Scale)
	b.Y -= scroll
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), colorPanel, true)
	if h.Hovered {
		vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 1, colorAccent, true)
	}
	x, y := b.X+16*h.Scale, b.Y+16*h.Scale
	r.drawText(screen, h.Title.Text, r.body, x, y, h.Scale, colorAccent, h.Title.Alpha)
	if d := h.Description; d != nil {
		y += 2 * page.LineHeight * h.Scale
		for _, line := range page.Wrap(d.Text, h.Bounds.W-32) {
			r.drawText(screen, line, r.small, x, y, h.Scale, colorMuted, d.Alpha)
			y += page.LineHeight * h.Scale
		}
	}
}

func (r *renderer) drawForm(screen *ebiten.Image, p *Portfolio, now, scroll float64) {
	opacity, offset := effects.SectionStyle(p.pg.Contact, now)
	if opacity <= 0 {
		return
	}
	labels := [...]string{"Name", "Email", "Message"}
	for i, b := range p.formRects() {
		b.Y += offset - scroll
		field := contact.Field(i)
		border := colorMuted
		if p.formActive && p.form.Focus() == field {
			border = colorAccent
		}
		vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), colorPanel, false)
		vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 1, border, false)

		v := p.form.Value(field)
		clr := colorText
		if v == "" {
			v, clr = labels[i], colorMuted
		}
		r.drawText(screen, v, r.body, b.X+8, b.Y+8, 1, clr, opacity)
	}
	if p.formStatus != "" {
		last := p.formRects()[2]
		r.drawText(screen, p.formStatus, r.small, last.X, last.Y+last.H+12+offset-scroll, 1, colorAccent, opacity)
	}
}

func (r *renderer) drawNav(screen *ebiten.Image, p *Portfolio) {
	w := float32(screen.Bounds().Dx())
	vector.DrawFilledRect(screen, 0, 0, w, page.NavHeight, colorNav, false)
	for _, l := range p.pg.Nav {
		b := l.Bounds
		r.drawText(screen, l.Label, r.body, b.X+(b.W-page.TextWidth(l.Label))/2, b.Y+(b.H-page.LineHeight)/2, 1, colorText, 1)
	}
}

// drawGlow adds a soft disc of the given radius, tinted clr.
func (r *renderer) drawGlow(dst *ebiten.Image, x, y, radius float64, clr color.Color, alpha float64) {
	if radius <= 0 || alpha <= 0 {
		return
	}
	s := 2 * radius / glowSize
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(x-radius, y-radius)
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Blend = ebiten.BlendLighter
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(r.glow, op)
}

// drawText draws s with its top-left corner at (x, y), scaled by scale.
func (r *renderer) drawText(dst *ebiten.Image, s string, face text.Face, x, y, scale float64, clr color.Color, alpha float64) {
	if s == "" || alpha <= 0 {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.LineSpacing = page.LineHeight
	text.Draw(dst, s, face, op)
}

// scaled grows r about its center.
func scaled(r page.Rect, s float64) page.Rect {
	if s == 0 {
		s = 1
	}
	w, h := r.W*s, r.H*s
	return page.Rect{X: r.X - (w-r.W)/2, Y: r.Y - (h-r.H)/2, W: w, H: h}
}
