// Package page models the portfolio page as a set of optional elements laid
// out top to bottom. A nil element means the page does not have it, and any
// effect bound to it is skipped.
package page

import "math"

// Transition is how long an opacity change takes to show.
const Transition = 0.5 // seconds

// Element is a text or image node whose content effects may rewrite.
type Element struct {
	ID      string
	Text    string
	Src     string  // image source for image elements
	Opacity float64 // target opacity
	Alpha   float64 // displayed opacity, eased toward Opacity
}

// NewElement returns a fully visible element.
func NewElement(id, text string) *Element {
	return &Element{ID: id, Text: text, Opacity: 1, Alpha: 1}
}

// Tick eases the displayed alpha toward the target opacity.
func (e *Element) Tick(dt float64) {
	if e == nil {
		return
	}
	step := dt / Transition
	switch {
	case e.Alpha < e.Opacity:
		e.Alpha = math.Min(e.Opacity, e.Alpha+step)
	case e.Alpha > e.Opacity:
		e.Alpha = math.Max(e.Opacity, e.Alpha-step)
	}
}

// Rect is an axis-aligned box in page coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether the point lies in the box.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Section is a block of the page that reveals itself on scroll.
type Section struct {
	ID     string
	Title  *Element
	Body   *Element
	Bounds Rect

	Revealed   bool
	RevealedAt float64 // seconds since load
}

// Stat is a single counter in the statistics strip.
type Stat struct {
	Label  string
	Target int
	Value  *Element
}

// Stats is the statistics strip observed for the counters.
type Stats struct {
	Items  []*Stat
	Bounds Rect
}

// Hoverable is a skill chip or project card reacting to the pointer.
type Hoverable struct {
	Title       *Element
	Description *Element
	Bounds      Rect

	Hovered    bool
	HoverSince float64
	Scale      float64
}

// NavLink is an in-page anchor.
type NavLink struct {
	Label  string
	Href   string // "#section-id"
	Bounds Rect  // viewport coordinates, the nav bar does not scroll
}

// Banner is the rotating image.
type Banner struct {
	Image  *Element
	Images []string
	Bounds Rect
}

// Page is the whole document. Every pointer field is optional.
type Page struct {
	Nav        []*NavLink
	Name       *Element
	NewTag     *Element
	Typing     *Element
	MorphTitle *Element
	PlanetGlow *Element
	HeroVisual *Rect
	Banner     *Banner
	Stats      *Stats
	Sections   []*Section
	Skills     []*Hoverable
	Projects   []*Hoverable
	Contact    *Section

	Hero   Rect
	height float64

	sectionCfg []SectionConfig
	contactCfg SectionConfig
}

// Height returns the total laid out page height.
func (p *Page) Height() float64 { return p.height }

// Section looks up a section by id, including the contact section.
func (p *Page) Section(id string) *Section {
	for _, s := range p.Sections {
		if s.ID == id {
			return s
		}
	}
	if p.Contact != nil && p.Contact.ID == id {
		return p.Contact
	}
	return nil
}

// Elements returns every non-nil text element, for per-frame easing.
func (p *Page) Elements() []*Element {
	var out []*Element
	add := func(es ...*Element) {
		for _, e := range es {
			if e != nil {
				out = append(out, e)
			}
		}
	}
	add(p.Name, p.NewTag, p.Typing, p.MorphTitle, p.PlanetGlow)
	if p.Banner != nil {
		add(p.Banner.Image)
	}
	if p.Stats != nil {
		for _, s := range p.Stats.Items {
			add(s.Value)
		}
	}
	for _, s := range p.Sections {
		add(s.Title, s.Body)
	}
	for _, h := range append(append([]*Hoverable(nil), p.Skills...), p.Projects...) {
		add(h.Title, h.Description)
	}
	if p.Contact != nil {
		add(p.Contact.Title, p.Contact.Body)
	}
	return out
}

// Tick eases every element.
func (p *Page) Tick(dt float64) {
	for _, e := range p.Elements() {
		e.Tick(dt)
	}
}
