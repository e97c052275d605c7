package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/olivierh59500/portfolio-fx/internal/config"
	"github.com/olivierh59500/portfolio-fx/internal/contact"
	"github.com/olivierh59500/portfolio-fx/internal/logging"
)

var (
	configPath    string
	particleCount int
	seed          int64
	debug         bool
	watch         bool

	mailName    string
	mailEmail   string
	mailMessage string
)

var rootCmd = &cobra.Command{
	Use:   "portfolio-fx",
	Short: "Animated portfolio page with an interactive particle field",
	Long: `portfolio-fx opens a window showing a personal portfolio page: a particle
field pushed around by the pointer, matrix rain, typing and morphing hero text,
counters and sections revealed on scroll, and a contact form that hands the
message to the system mail client.

Keys: Space pauses the particles, R respawns them, H toggles the HUD,
Home and End scroll to the top and bottom.`,
	SilenceUsage: true,
	RunE:         runPortfolio,
}

var mailtoCmd = &cobra.Command{
	Use:   "mailto",
	Short: "Print the mailto link the contact form would open",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), contact.Compose(cfg.Contact.Recipient, mailName, mailEmail, mailMessage))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.Flags().IntVarP(&particleCount, "particles", "n", 0, "override the particle count")
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 uses the clock)")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "development logging and HUD")
	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the config file when it changes")

	mailtoCmd.Flags().StringVar(&mailName, "name", "", "sender name")
	mailtoCmd.Flags().StringVar(&mailEmail, "email", "", "sender email")
	mailtoCmd.Flags().StringVar(&mailMessage, "message", "", "message body")
	rootCmd.AddCommand(mailtoCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runPortfolio(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	override := func(c *config.Config) {
		if cmd.Flags().Changed("particles") {
			c.Particles.Count = particleCount
		}
	}
	if debug {
		cfg.Logging.Development = true
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var watcher *config.Watcher
	if watch && configPath != "" {
		watcher, err = config.NewWatcher(configPath, logger.Named("config"))
		if err != nil {
			return err
		}
		if err := watcher.Start(ctx); err != nil {
			watcher.Stop()
			return err
		}
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Debug("starting", zap.Int64("seed", seed), zap.String("config", configPath))

	game, err := NewPortfolio(cfg, Options{
		Context:  ctx,
		Logger:   logger,
		Rand:     rand.New(rand.NewSource(seed)),
		Mail:     contact.SystemMailHandler{},
		Watcher:  watcher,
		Override: override,
		HUD:      debug,
	})
	if err != nil {
		if watcher != nil {
			watcher.Stop()
		}
		return err
	}
	defer game.Close()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ebiten.SyncWithFPS) // one update per displayed frame

	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
