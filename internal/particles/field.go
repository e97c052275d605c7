// Package particles implements the ambient particle field drawn behind the
// page: a batch of drifting dots that bounce off the viewport edges and shy
// away from the pointer.
package particles

import (
	"image/color"
	"math"
	"math/rand"
)

// Field defaults
const (
	DefaultCount     = 100
	DefaultProximity = 100.0
	DefaultRepulsion = 0.01
	DefaultGlowBlur  = 10.0
)

// Config controls batch generation and per-frame behaviour.
type Config struct {
	Count      int     `yaml:"count"`
	MinRadius  float64 `yaml:"min_radius"`
	MaxRadius  float64 `yaml:"max_radius"`
	MaxSpeed   float64 `yaml:"max_speed"` // per axis, per frame
	HueMin     float64 `yaml:"hue_min"`
	HueMax     float64 `yaml:"hue_max"`
	Saturation float64 `yaml:"saturation"`
	Lightness  float64 `yaml:"lightness"`
	Proximity  float64 `yaml:"proximity"`
	Repulsion  float64 `yaml:"repulsion"`
	GlowBlur   float64 `yaml:"glow_blur"`
}

// DefaultConfig returns cyan-to-blue dots drifting at up to a quarter pixel
// per frame.
func DefaultConfig() Config {
	return Config{
		Count:      DefaultCount,
		MinRadius:  1,
		MaxRadius:  4,
		MaxSpeed:   0.25,
		HueMin:     180,
		HueMax:     240,
		Saturation: 1,
		Lightness:  0.7,
		Proximity:  DefaultProximity,
		Repulsion:  DefaultRepulsion,
		GlowBlur:   DefaultGlowBlur,
	}
}

// Particle is a single dot of the field.
type Particle struct {
	X, Y   float64 // Position
	VX, VY float64 // Velocity
	R      float64 // Radius
	Color  color.RGBA
}

// Pointer is the last observed pointer position. Known stays false until the
// first move.
type Pointer struct {
	X, Y  float64
	Known bool
}

// Field owns the particle batch, the surface size and the pointer state.
type Field struct {
	cfg           Config
	width, height float64
	particles     []Particle
	pointer       Pointer
	rng           *rand.Rand
}

// New creates an empty field. Call Resize to size it and spawn particles.
func New(cfg Config, rng *rand.Rand) *Field {
	if cfg.Count < 0 {
		cfg.Count = 0
	}
	return &Field{cfg: cfg, rng: rng}
}

// Config returns the active configuration.
func (f *Field) Config() Config { return f.cfg }

// SetConfig swaps the configuration and respawns the batch at the current
// size.
func (f *Field) SetConfig(cfg Config) {
	if cfg.Count < 0 {
		cfg.Count = 0
	}
	f.cfg = cfg
	f.Resize(f.width, f.height)
}

// Size returns the surface dimensions.
func (f *Field) Size() (float64, float64) { return f.width, f.height }

// Particles exposes the current batch. The slice is replaced on Resize.
func (f *Field) Particles() []Particle { return f.particles }

// Pointer returns the current pointer state.
func (f *Field) Pointer() Pointer { return f.pointer }

// SetPointer records a pointer move.
func (f *Field) SetPointer(x, y float64) {
	f.pointer = Pointer{X: x, Y: y, Known: true}
}

// ClearPointer forgets the pointer, e.g. when it leaves the window.
func (f *Field) ClearPointer() {
	f.pointer = Pointer{}
}

// Resize syncs the surface size and replaces the whole batch. A zero or
// negative dimension leaves the field empty.
func (f *Field) Resize(width, height float64) {
	f.width, f.height = width, height
	if width <= 0 || height <= 0 {
		f.particles = nil
		return
	}
	batch := make([]Particle, f.cfg.Count)
	for i := range batch {
		batch[i] = f.spawn()
	}
	f.particles = batch
}

func (f *Field) spawn() Particle {
	c := f.cfg
	return Particle{
		X:     f.rng.Float64() * f.width,
		Y:     f.rng.Float64() * f.height,
		R:     c.MinRadius + f.rng.Float64()*(c.MaxRadius-c.MinRadius),
		VX:    (f.rng.Float64()*2 - 1) * c.MaxSpeed,
		VY:    (f.rng.Float64()*2 - 1) * c.MaxSpeed,
		Color: HueColor(c.HueMin+f.rng.Float64()*(c.HueMax-c.HueMin), c.Saturation, c.Lightness),
	}
}

// Step advances every particle by one frame: move, bounce, then repel.
func (f *Field) Step() {
	for i := range f.particles {
		p := &f.particles[i]

		p.X += p.VX
		p.Y += p.VY

		// Reflect the velocity back inside; the position is left as is, so a
		// particle may sit past the edge for a frame.
		if (p.X < 0 && p.VX < 0) || (p.X > f.width && p.VX > 0) {
			p.VX = -p.VX
		}
		if (p.Y < 0 && p.VY < 0) || (p.Y > f.height && p.VY > 0) {
			p.VY = -p.VY
		}

		if f.pointer.Known {
			dx := f.pointer.X - p.X
			dy := f.pointer.Y - p.Y
			if math.Sqrt(dx*dx+dy*dy) < f.cfg.Proximity {
				p.X -= dx * f.cfg.Repulsion
				p.Y -= dy * f.cfg.Repulsion
			}
		}
	}
}
