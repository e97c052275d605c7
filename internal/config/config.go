// Package config loads the page configuration: built-in defaults, an
// optional YAML file and environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/olivierh59500/portfolio-fx/internal/effects"
	"github.com/olivierh59500/portfolio-fx/internal/logging"
	"github.com/olivierh59500/portfolio-fx/internal/page"
	"github.com/olivierh59500/portfolio-fx/internal/particles"
)

// Environment overrides
const (
	EnvRecipient = "PORTFOLIO_RECIPIENT"
	EnvParticles = "PORTFOLIO_PARTICLES"
	EnvLogLevel  = "PORTFOLIO_LOG_LEVEL"
)

// WindowConfig is the initial window.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// TimingConfig holds the intervals of the timed effects.
type TimingConfig struct {
	MorphInterval  time.Duration `yaml:"morph_interval"`
	BannerInterval time.Duration `yaml:"banner_interval"`
	IntroDelay     time.Duration `yaml:"intro_delay"`
	NameLead       time.Duration `yaml:"name_lead"`
	Floaters       int           `yaml:"floaters"`
}

// ContactConfig holds the mail recipient.
type ContactConfig struct {
	Recipient string `yaml:"recipient"`
}

// Config is the complete configuration.
type Config struct {
	Window    WindowConfig         `yaml:"window"`
	Particles particles.Config     `yaml:"particles"`
	Matrix    effects.MatrixConfig `yaml:"matrix"`
	Typing    effects.TypingConfig `yaml:"typing"`
	Timing    TimingConfig         `yaml:"timing"`
	Page      page.Config          `yaml:"page"`
	Contact   ContactConfig        `yaml:"contact"`
	Logging   logging.Config       `yaml:"logging"`
}

// Default returns the built-in page.
func Default() *Config {
	return &Config{
		Window:    WindowConfig{Title: "Portfolio", Width: 1280, Height: 800},
		Particles: particles.DefaultConfig(),
		Matrix:    effects.DefaultMatrixConfig(),
		Typing:    effects.DefaultTypingConfig(),
		Timing: TimingConfig{
			MorphInterval:  3 * time.Second,
			BannerInterval: 8 * time.Second,
			IntroDelay:     time.Second,
			NameLead:       500 * time.Millisecond,
			Floaters:       effects.DefaultFloaters,
		},
		Page: page.Config{
			Name:   "Nitish Mahajan",
			NewTag: "🚀 Next Ventures is live!",
			Typing: []string{
				"Hey There! I'm Nitish Mahajan 🚀",
				"Full Stack Developer | AI Enthusiast",
				"Building Scalable Microservices & Dashboards",
			},
			Morphing: []string{
				"I help founders turn ideas into seamless digital experiences",
				"I craft innovative solutions with cutting-edge technology",
				"I build scalable applications that drive business growth",
			},
			PlanetGlow: true,
			HeroVisual: true,
			Banner: []string{
				"assets/banner/cash-withdrawal.png",
				"assets/banner/search-suggestions.png",
				"assets/banner/notes-app.png",
				"assets/banner/password-validator.png",
				"assets/banner/stopwatch.png",
				"assets/banner/digital-timer.png",
				"assets/banner/click-counter.png",
			},
			Stats: []page.StatConfig{
				{Label: "Projects", Target: 42},
				{Label: "Clients", Target: 18},
				{Label: "Years", Target: 5},
			},
			Sections: []page.SectionConfig{
				{
					ID:    "about",
					Title: "About",
					Body:  "Full stack developer building scalable microservices, dashboards and AI-powered products.",
				},
				{
					ID:     "skills",
					Title:  "Skills",
					Skills: []string{"Go", "TypeScript", "React", "Node.js", "PostgreSQL", "Docker", "Kubernetes", "AWS"},
				},
				{
					ID:    "projects",
					Title: "Projects",
					Projects: []page.ProjectConfig{
						{Title: "Cash Withdrawal", Description: "Denomination breakdown for ATM withdrawals."},
						{Title: "Search Suggestions", Description: "Instant suggestions with history."},
						{Title: "Notes App", Description: "Hooks-based notes with local state."},
						{Title: "Password Validator", Description: "Live strength rules."},
						{Title: "Stopwatch", Description: "Start, stop and reset timer."},
						{Title: "Digital Timer", Description: "Countdown with pause."},
					},
					Height: 560,
				},
			},
			Contact: &page.SectionConfig{
				ID:    "contact",
				Title: "Contact",
				Body:  "Tab moves between fields, Enter sends, Shift+Enter adds a line.",
			},
		},
		Contact: ContactConfig{Recipient: "hello@example.com"},
		Logging: logging.Config{Level: "info"},
	}
}

// Load reads path on top of the defaults and applies environment overrides.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvRecipient); v != "" {
		c.Contact.Recipient = v
	}
	if v := os.Getenv(EnvParticles); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvParticles, err)
		}
		c.Particles.Count = n
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	return nil
}

// Validate rejects settings the effects cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	p := c.Particles
	if p.Count < 0 {
		errs = append(errs, fmt.Errorf("particles.count %d must not be negative", p.Count))
	}
	if p.MinRadius <= 0 || p.MaxRadius < p.MinRadius {
		errs = append(errs, fmt.Errorf("particles radius range [%g,%g) is invalid", p.MinRadius, p.MaxRadius))
	}
	if p.Proximity < 0 || p.Repulsion < 0 {
		errs = append(errs, errors.New("particles.proximity and particles.repulsion must not be negative"))
	}
	if c.Matrix.Enabled && c.Matrix.Interval <= 0 {
		errs = append(errs, errors.New("matrix.interval must be positive"))
	}
	if c.Typing.Speed <= 0 || c.Typing.EraseRate <= 0 {
		errs = append(errs, errors.New("typing speeds must be positive"))
	}
	if c.Timing.MorphInterval <= 0 || c.Timing.BannerInterval <= 0 {
		errs = append(errs, errors.New("timing intervals must be positive"))
	}
	if c.Contact.Recipient == "" {
		errs = append(errs, errors.New("contact.recipient is required"))
	}
	return errors.Join(errs...)
}
