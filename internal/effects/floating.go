package effects

import (
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"

	"github.com/olivierh59500/portfolio-fx/internal/page"
)

// Floating element constants
const (
	DefaultFloaters = 5
	FloaterSize     = 4.0
	swayAmplitude   = 12.0
	swayFrequency   = 0.3
)

// Floater is a small glowing dot drifting up through the hero visual.
type Floater struct {
	Left, Top float64 // fractions of the hero visual
	Delay     float64 // seconds
	Duration  float64 // seconds
	seed      float64
}

// FloaterState is where and how to draw a floater.
type FloaterState struct {
	X, Y     float64
	Rotation float64 // radians
	Opacity  float64
}

// Floaters animates the hero decorations.
type Floaters struct {
	items []Floater
	noise *perlin.Perlin
}

// NewFloaters scatters n floaters. Pass 0 to leave the hero visual bare.
func NewFloaters(n int, rng *rand.Rand) *Floaters {
	f := &Floaters{noise: perlin.NewPerlin(2, 2, 3, rng.Int63())}
	for i := 0; i < n; i++ {
		f.items = append(f.items, Floater{
			Left:     rng.Float64(),
			Top:      rng.Float64(),
			Delay:    rng.Float64() * 5,
			Duration: rng.Float64()*10 + 10,
			seed:     float64(i) * 17.3,
		})
	}
	return f
}

// Items returns the floaters.
func (f *Floaters) Items() []Floater { return f.items }

// States places every floater inside box at time now (seconds). The rise
// spans one viewport height.
func (f *Floaters) States(box page.Rect, viewHeight, now float64) []FloaterState {
	out := make([]FloaterState, len(f.items))
	for i, it := range f.items {
		st := FloaterState{
			X:       box.X + it.Left*box.W,
			Y:       box.Y + it.Top*box.H,
			Opacity: 1,
		}
		t := now - it.Delay
		if t >= 0 {
			p := math.Mod(t, it.Duration) / it.Duration
			st.Y -= p * viewHeight
			st.Rotation = p * 2 * math.Pi
			st.Opacity = floatOpacity(p)
			st.X += f.noise.Noise1D(it.seed+t*swayFrequency) * swayAmplitude
		}
		out[i] = st
	}
	return out
}

// floatOpacity fades in over the first 10% of the rise and out over the last
// 10%.
func floatOpacity(p float64) float64 {
	switch {
	case p < 0.1:
		return p / 0.1
	case p > 0.9:
		return (1 - p) / 0.1
	default:
		return 1
	}
}
