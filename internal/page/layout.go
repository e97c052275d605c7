package page

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Layout metrics, in logical pixels.
const (
	NavHeight     = 40.0
	Margin        = 60.0
	CharWidth     = 8.4 // advance of the 14px monospace face
	LineHeight    = 20.0
	chipHeight    = 32.0
	chipPad       = 12.0
	cardHeight    = 160.0
	cardGap       = 24.0
	cardsPerRow   = 3
	defaultHeight = 420.0
)

// SectionConfig describes one content section.
type SectionConfig struct {
	ID       string          `yaml:"id"`
	Title    string          `yaml:"title"`
	Body     string          `yaml:"body"`
	Height   float64         `yaml:"height"`
	Skills   []string        `yaml:"skills"`
	Projects []ProjectConfig `yaml:"projects"`
}

// ProjectConfig is a project card.
type ProjectConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// StatConfig is a counter of the statistics strip.
type StatConfig struct {
	Label  string `yaml:"label"`
	Target int    `yaml:"target"`
}

// Config lists the page content. Empty entries leave the element out.
type Config struct {
	Name       string          `yaml:"name"`
	NewTag     string          `yaml:"new_tag"`
	Typing     []string        `yaml:"typing"`
	Morphing   []string        `yaml:"morphing"`
	PlanetGlow bool            `yaml:"planet_glow"`
	HeroVisual bool            `yaml:"hero_visual"`
	Banner     []string        `yaml:"banner"`
	Stats      []StatConfig    `yaml:"stats"`
	Sections   []SectionConfig `yaml:"sections"`
	Contact    *SectionConfig  `yaml:"contact"`
}

// Build creates the page elements. Call Layout before drawing.
func Build(cfg Config) *Page {
	p := &Page{}
	if cfg.Name != "" {
		// The typewriter fills it in.
		p.Name = NewElement("name", "")
	}
	if cfg.NewTag != "" {
		p.NewTag = NewElement("new-tag", "")
	}
	if len(cfg.Typing) > 0 {
		p.Typing = NewElement("typing", "")
	}
	if len(cfg.Morphing) > 0 {
		p.MorphTitle = NewElement("morphing-text", cfg.Morphing[0])
	}
	if cfg.PlanetGlow {
		p.PlanetGlow = NewElement("planet-glow", "")
	}
	if cfg.HeroVisual {
		p.HeroVisual = &Rect{}
	}
	if len(cfg.Banner) > 0 {
		img := NewElement("rotating-image", "")
		img.Src = cfg.Banner[0]
		p.Banner = &Banner{Image: img, Images: append([]string(nil), cfg.Banner...)}
	}
	if len(cfg.Stats) > 0 {
		p.Stats = &Stats{}
		for _, s := range cfg.Stats {
			p.Stats.Items = append(p.Stats.Items, &Stat{
				Label:  s.Label,
				Target: s.Target,
				Value:  NewElement("stat-number", "0"),
			})
		}
	}
	for _, sc := range cfg.Sections {
		s := newSection(sc)
		p.Sections = append(p.Sections, s)
		for _, name := range sc.Skills {
			p.Skills = append(p.Skills, &Hoverable{Title: NewElement("skill-item", name), Scale: 1})
		}
		for _, pc := range sc.Projects {
			p.Projects = append(p.Projects, &Hoverable{
				Title:       NewElement("project-title", pc.Title),
				Description: NewElement("project-description", pc.Description),
				Scale:       1,
			})
		}
		p.Nav = append(p.Nav, &NavLink{Label: navLabel(sc), Href: "#" + sc.ID})
	}
	if cfg.Contact != nil {
		p.Contact = newSection(*cfg.Contact)
		p.Nav = append(p.Nav, &NavLink{Label: navLabel(*cfg.Contact), Href: "#" + cfg.Contact.ID})
	}
	p.sectionCfg = append([]SectionConfig(nil), cfg.Sections...)
	if cfg.Contact != nil {
		p.contactCfg = *cfg.Contact
	}
	return p
}

func newSection(sc SectionConfig) *Section {
	s := &Section{ID: sc.ID, Title: NewElement("section-title", sc.Title)}
	if sc.Body != "" {
		s.Body = NewElement("section-body", sc.Body)
	}
	return s
}

func navLabel(sc SectionConfig) string {
	if sc.Title != "" {
		return sc.Title
	}
	return sc.ID
}

// TextWidth estimates the drawn width of s.
func TextWidth(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * CharWidth
}

// Layout positions every element for a width x height viewport.
func (p *Page) Layout(width, height float64) {
	p.Hero = Rect{X: 0, Y: 0, W: width, H: height}

	x := width - Margin
	for i := len(p.Nav) - 1; i >= 0; i-- {
		l := p.Nav[i]
		w := TextWidth(l.Label) + 2*chipPad
		x -= w
		l.Bounds = Rect{X: x, Y: 0, W: w, H: NavHeight}
	}

	if p.HeroVisual != nil {
		*p.HeroVisual = Rect{X: width * 0.55, Y: height * 0.2, W: width * 0.4, H: height * 0.5}
	}
	if p.Banner != nil {
		p.Banner.Bounds = Rect{X: width * 0.6, Y: height * 0.25, W: width * 0.3, H: height * 0.3}
	}
	if p.Stats != nil {
		p.Stats.Bounds = Rect{X: Margin, Y: height * 0.72, W: width*0.45 - Margin, H: 80}
	}

	y := height
	skill, project := 0, 0
	for i, s := range p.Sections {
		sc := p.sectionCfg[i]
		h := sc.Height
		if h <= 0 {
			h = defaultHeight
		}
		s.Bounds = Rect{X: 0, Y: y, W: width, H: h}

		cx, cy := Margin, y+Margin+3*LineHeight
		if s.Body != nil {
			cy += float64(len(Wrap(s.Body.Text, width-2*Margin))) * LineHeight
		}
		for range sc.Skills {
			chip := p.Skills[skill]
			w := TextWidth(chip.Title.Text) + 2*chipPad
			if cx+w > width-Margin && cx > Margin {
				cx = Margin
				cy += chipHeight + chipPad
			}
			chip.Bounds = Rect{X: cx, Y: cy, W: w, H: chipHeight}
			cx += w + chipPad
			skill++
		}
		cardW := (width - 2*Margin - (cardsPerRow-1)*cardGap) / cardsPerRow
		for j := range sc.Projects {
			row, col := j/cardsPerRow, j%cardsPerRow
			p.Projects[project].Bounds = Rect{
				X: Margin + float64(col)*(cardW+cardGap),
				Y: cy + float64(row)*(cardHeight+cardGap),
				W: cardW,
				H: cardHeight,
			}
			project++
		}
		y += h
	}
	if p.Contact != nil {
		h := p.contactCfg.Height
		if h <= 0 {
			h = defaultHeight
		}
		p.Contact.Bounds = Rect{X: 0, Y: y, W: width, H: h}
		y += h
	}
	p.height = y
}

// MaxScroll is the largest scroll offset for the given viewport height.
func (p *Page) MaxScroll(viewportHeight float64) float64 {
	return math.Max(0, p.height-viewportHeight)
}

// Wrap splits s into lines of at most width pixels, breaking on spaces.
func Wrap(s string, width float64) []string {
	perLine := int(math.Max(1, math.Floor(width/CharWidth)))
	var lines []string
	var line []rune
	for _, word := range strings.Fields(s) {
		w := []rune(word)
		if len(line) > 0 && len(line)+1+len(w) > perLine {
			lines = append(lines, string(line))
			line = line[:0]
		}
		if len(line) > 0 {
			line = append(line, ' ')
		}
		line = append(line, w...)
	}
	if len(line) > 0 {
		lines = append(lines, string(line))
	}
	return lines
}
