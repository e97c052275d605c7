// Package effects holds the timer-driven decorations of the page: matrix
// rain, typewriters, morphing text, counters, the rotating banner, floating
// hero dots, scroll reveals and hover reactions.
//
// Effects only mutate page elements and their own state; drawing lives in the
// binary.
package effects

import (
	"math"
	"math/rand"
	"time"

	"github.com/olivierh59500/portfolio-fx/internal/loop"
)

// MatrixConfig controls the rain overlay.
type MatrixConfig struct {
	Enabled     bool          `yaml:"enabled"`
	Glyphs      string        `yaml:"glyphs"`
	FontSize    float64       `yaml:"font_size"`
	Interval    time.Duration `yaml:"interval"`
	ResetChance float64       `yaml:"reset_chance"`
	Opacity     float64       `yaml:"opacity"` // layer opacity
	Fade        float64       `yaml:"fade"`    // black wash alpha per frame
}

// DefaultMatrixConfig is a faint binary rain.
func DefaultMatrixConfig() MatrixConfig {
	return MatrixConfig{
		Enabled:     true,
		Glyphs:      "01",
		FontSize:    14,
		Interval:    35 * time.Millisecond,
		ResetChance: 0.025,
		Opacity:     0.1,
		Fade:        0.04,
	}
}

// maxPending bounds the frames kept between two draws.
const maxPending = 16

// Glyph is one character painted by a rain frame.
type Glyph struct {
	X, Y float64
	Ch   rune
}

// MatrixRain tracks the falling columns. Frames accumulate until the renderer
// drains them, so the persistent layer sees every fade and glyph in order.
type MatrixRain struct {
	cfg           MatrixConfig
	glyphs        []rune
	width, height float64
	drops         []int
	pending       [][]Glyph
	rng           *rand.Rand
	sub           *loop.Subscription
}

// NewMatrixRain creates an unsized rain.
func NewMatrixRain(cfg MatrixConfig, rng *rand.Rand) *MatrixRain {
	glyphs := []rune(cfg.Glyphs)
	if len(glyphs) == 0 {
		glyphs = []rune("01")
	}
	if cfg.FontSize <= 0 {
		cfg.FontSize = 14
	}
	return &MatrixRain{cfg: cfg, glyphs: glyphs, rng: rng}
}

// Config returns the active configuration.
func (m *MatrixRain) Config() MatrixConfig { return m.cfg }

// Columns returns the number of columns.
func (m *MatrixRain) Columns() int { return len(m.drops) }

// Drops exposes the current row of every column.
func (m *MatrixRain) Drops() []int { return m.drops }

// Resize rebuilds one column per font width, every drop back at row 1.
func (m *MatrixRain) Resize(width, height float64) {
	m.width, m.height = width, height
	n := 0
	if width > 0 {
		n = int(math.Ceil(width / m.cfg.FontSize))
	}
	m.drops = make([]int, n)
	for i := range m.drops {
		m.drops[i] = 1
	}
}

// Frame advances every column by one row and returns the glyphs to paint.
func (m *MatrixRain) Frame() []Glyph {
	fs := m.cfg.FontSize
	out := make([]Glyph, 0, len(m.drops))
	for i := range m.drops {
		ch := m.glyphs[m.rng.Intn(len(m.glyphs))]
		out = append(out, Glyph{X: float64(i) * fs, Y: float64(m.drops[i]) * fs, Ch: ch})

		if float64(m.drops[i])*fs > m.height && m.rng.Float64() > 1-m.cfg.ResetChance {
			m.drops[i] = 0
		}
		m.drops[i]++
	}
	return out
}

// Start runs a frame every interval.
func (m *MatrixRain) Start(s *loop.Scheduler) *loop.Subscription {
	m.Stop()
	m.sub = s.Every(m.cfg.Interval, func() {
		if len(m.pending) == maxPending {
			m.pending = m.pending[1:]
		}
		m.pending = append(m.pending, m.Frame())
	})
	return m.sub
}

// Stop cancels the frame timer.
func (m *MatrixRain) Stop() {
	m.sub.Cancel()
	m.sub = nil
}

// Drain hands the frames produced since the last call to the renderer.
func (m *MatrixRain) Drain() [][]Glyph {
	frames := m.pending
	m.pending = nil
	return frames
}
