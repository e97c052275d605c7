package effects

import (
	"time"

	"github.com/olivierh59500/portfolio-fx/internal/loop"
	"github.com/olivierh59500/portfolio-fx/internal/page"
)

// TypingConfig holds the typewriter speeds.
type TypingConfig struct {
	Speed     time.Duration `yaml:"speed"`
	EraseRate time.Duration `yaml:"erase_rate"`
	Hold      time.Duration `yaml:"hold"`
	Gap       time.Duration `yaml:"gap"`
}

// DefaultTypingConfig types at 10 runes a second and erases twice as fast.
func DefaultTypingConfig() TypingConfig {
	return TypingConfig{
		Speed:     100 * time.Millisecond,
		EraseRate: 50 * time.Millisecond,
		Hold:      2 * time.Second,
		Gap:       500 * time.Millisecond,
	}
}

// Typewriter types a text into an element once.
type Typewriter struct {
	el    *page.Element
	text  []rune
	speed time.Duration
	i     int
	done  bool
	s     *loop.Scheduler
	next  *loop.Subscription
}

// NewTypewriter binds a typewriter to el. A nil element makes it a no-op.
func NewTypewriter(el *page.Element, text string, speed time.Duration) *Typewriter {
	return &Typewriter{el: el, text: []rune(text), speed: speed}
}

// Start clears the element after delay and types the first rune lead later.
func (t *Typewriter) Start(s *loop.Scheduler, delay, lead time.Duration) {
	if t.el == nil {
		return
	}
	t.s = s
	t.next = s.After(delay, func() {
		t.el.Text = ""
		t.i = 0
		if lead > 0 {
			t.next = s.After(lead, t.step)
			return
		}
		t.step()
	})
}

func (t *Typewriter) step() {
	if t.i >= len(t.text) {
		t.done = true
		t.next = nil
		return
	}
	t.el.Text += string(t.text[t.i])
	t.i++
	t.next = t.s.After(t.speed, t.step)
}

// Done reports whether the whole text has been typed.
func (t *Typewriter) Done() bool { return t.done }

// Stop cancels any pending keystroke.
func (t *Typewriter) Stop() {
	t.next.Cancel()
	t.next = nil
}

// TypingLoop types and erases a list of phrases forever.
type TypingLoop struct {
	el      *page.Element
	phrases [][]rune
	cfg     TypingConfig
	phrase  int
	n       int
	s       *loop.Scheduler
	next    *loop.Subscription
}

// NewTypingLoop binds the loop to el. A nil element or no phrases make it a
// no-op.
func NewTypingLoop(el *page.Element, phrases []string, cfg TypingConfig) *TypingLoop {
	l := &TypingLoop{el: el, cfg: cfg}
	for _, p := range phrases {
		l.phrases = append(l.phrases, []rune(p))
	}
	return l
}

// Phrase returns the index of the phrase being typed or erased.
func (l *TypingLoop) Phrase() int { return l.phrase }

// Start types the first rune immediately.
func (l *TypingLoop) Start(s *loop.Scheduler) {
	if l.el == nil || len(l.phrases) == 0 {
		return
	}
	l.s = s
	l.typeRune()
}

func (l *TypingLoop) typeRune() {
	p := l.phrases[l.phrase]
	if l.n < len(p) {
		l.el.Text += string(p[l.n])
		l.n++
		l.next = l.s.After(l.cfg.Speed, l.typeRune)
		return
	}
	l.next = l.s.After(l.cfg.Hold, l.erase)
}

func (l *TypingLoop) erase() {
	if l.n > 0 {
		l.el.Text = string(l.phrases[l.phrase][:l.n-1])
		l.n--
		l.next = l.s.After(l.cfg.EraseRate, l.erase)
		return
	}
	l.phrase = (l.phrase + 1) % len(l.phrases)
	l.next = l.s.After(l.cfg.Gap, l.typeRune)
}

// Stop cancels the pending keystroke.
func (l *TypingLoop) Stop() {
	l.next.Cancel()
	l.next = nil
}
