package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/olivierh59500/portfolio-fx/internal/contact"
	"github.com/olivierh59500/portfolio-fx/internal/loop"
)

// inputState remembers the previous cursor position so only real moves
// become pointer events.
type inputState struct {
	mx, my int
	seen   bool
	runes  []rune
	keys   []ebiten.Key
}

// pollInput turns this frame's mouse and keyboard state into page events.
func (p *Portfolio) pollInput() {
	mx, my := ebiten.CursorPosition()
	if !p.input.seen {
		p.input.mx, p.input.my, p.input.seen = mx, my, true
	} else if mx != p.input.mx || my != p.input.my {
		p.input.mx, p.input.my = mx, my
		p.moveCursor(mx, my)
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		p.scroller.Wheel(wy)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		p.bus.EmitClick(loop.ClickEvent{X: float64(mx), Y: float64(my)})
	}

	if p.formActive {
		p.input.runes = ebiten.AppendInputChars(p.input.runes[:0])
		if len(p.input.runes) > 0 {
			p.form.Type(p.input.runes...)
		}
		if d := inpututil.KeyPressDuration(ebiten.KeyBackspace); d > 1 && repeating(d) {
			p.handleKey(ebiten.KeyBackspace, false)
		}
	}
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	p.input.keys = inpututil.AppendJustPressedKeys(p.input.keys[:0])
	for _, k := range p.input.keys {
		p.handleKey(k, shift)
	}
}

// moveCursor reports a cursor move. Leaving the window forgets the pointer.
func (p *Portfolio) moveCursor(x, y int) {
	if x < 0 || y < 0 || x >= p.outW || y >= p.outH {
		p.field.ClearPointer()
		return
	}
	p.bus.EmitPointer(loop.PointerEvent{X: float64(x), Y: float64(y)})
}

// handleKey runs the action bound to a freshly pressed key. While the contact
// form is focused keys edit it, otherwise they are hotkeys.
func (p *Portfolio) handleKey(k ebiten.Key, shift bool) {
	if p.formActive {
		switch k {
		case ebiten.KeyBackspace:
			p.form.Backspace()
		case ebiten.KeyTab:
			p.form.FocusNext()
		case ebiten.KeyEscape:
			p.formActive = false
		case ebiten.KeyEnter, ebiten.KeyNumpadEnter:
			if shift && p.form.Focus() == contact.FieldMessage {
				p.form.Type('\n')
			} else {
				p.submitForm()
			}
		}
		return
	}

	switch k {
	case ebiten.KeySpace:
		p.paused = !p.paused
	case ebiten.KeyH:
		p.hud = !p.hud
	case ebiten.KeyR:
		p.field.SetConfig(p.field.Config())
	case ebiten.KeyHome:
		p.scroller.ScrollTo(0)
	case ebiten.KeyEnd:
		p.scroller.ScrollTo(p.pg.MaxScroll(p.vp.Height))
	}
}

// repeating reports whether a key held for d ticks fires a repeat.
func repeating(d int) bool {
	const (
		delay    = 30 // ticks
		interval = 3
	)
	return d >= delay && (d-delay)%interval == 0
}
