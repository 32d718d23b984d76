package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/adapter/source"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/motion"
	"github.com/mmcdole/marquee/internal/search"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/mmcdole/marquee/internal/tui"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

func main() {
	var (
		showVersion bool
		category    string
		logout      bool
		clearCache  bool
	)
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&category, "category", "", "listing to open (now_playing, popular, top_rated, upcoming)")
	flag.BoolVar(&logout, "logout", false, "remove the stored API token")
	flag.BoolVar(&clearCache, "clear-cache", false, "delete cached listings and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("marquee %s\n", Version)
		return
	}

	if err := run(category, logout, clearCache); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(category string, logout, clearCache bool) error {
	// Load configuration
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting marquee", "version", Version)

	if logout {
		if err := adapter.DeleteToken(); err != nil {
			return err
		}
		fmt.Println("✓ API token removed")
		return nil
	}
	if clearCache {
		if err := adapter.ClearCache(cfg.Cache.Dir); err != nil {
			return err
		}
		fmt.Println("✓ Cache cleared")
		return nil
	}

	start := cfg.HomeCategory()
	if category != "" {
		if start, err = domain.ParseCategory(category); err != nil {
			return err
		}
	}

	token, err := adapter.ResolveToken(cfg)
	if err != nil {
		return err
	}
	if token == "" {
		return runSetupFlow(cfg, logger)
	}

	// Create API client
	client, err := source.NewClientFromConfig(cfg, token, logger)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	cacheDir, err := adapter.ExpandHome(cfg.Cache.Dir)
	if err != nil {
		return err
	}
	st, err := store.NewListingStore(cacheDir, cfg.API.BaseURL)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	defer st.Close()

	// Create services
	listingSvc := service.NewListingService(client, st, cfg.Cache.TTL, logger)
	detailsSvc := service.NewDetailsService(client, st, logger)
	searchSvc := search.NewService(listingSvc, logger)
	launcher := adapter.NewLauncher(cfg.UI.OpenCommand, logger)

	zones := zone.New()
	defer zones.Close()

	// Create TUI model
	model := tui.NewModel(tui.Options{
		Listings: listingSvc,
		Details:  detailsSvc,
		Search:   searchSvc,
		Opener:   launcher,
		Config:   cfg,
		Category: start,
		Sizer:    motion.NewTerminalSizer(),
		Zones:    zones,
		Logger:   logger,
	})

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseAllMotion())
	}
	p := tea.NewProgram(model, opts...)

	if adapter.WatchConfig(func(c *adapter.Config, err error) {
		p.Send(tui.ConfigReloadedMsg{Config: c, Err: err})
	}) {
		logger.Info("watching config file")
	}

	logger.Info("starting TUI", "category", start)

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runSetupFlow asks for an API token when none is configured
func runSetupFlow(cfg *adapter.Config, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to Marquee!")
	fmt.Println()
	fmt.Println("Marquee needs a TMDB API read access token.")
	fmt.Println("Create one at https://www.themoviedb.org/settings/api")
	fmt.Println()

	for {
		fmt.Print("API token: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		token := strings.TrimSpace(string(raw))

		if token == "" {
			fmt.Println("Token cannot be empty. Please try again.")
			continue
		}

		err = verifyWithSpinner(cfg, token, logger)
		if errors.Is(err, domain.ErrAuthFailed) {
			fmt.Println("✗ The API rejected this token. Please try again.")
			fmt.Println()
			continue
		}
		if err != nil {
			return err
		}

		if err := adapter.SaveToken(token); err != nil {
			return err
		}
		break
	}

	fmt.Println("✓ Token saved to the system keyring")
	fmt.Println()
	fmt.Println("Run marquee again to start browsing.")
	return nil
}

// verifyWithSpinner checks the token with a visual spinner
func verifyWithSpinner(cfg *adapter.Config, token string, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	resultCh := make(chan error, 1)
	go func() {
		resultCh <- source.VerifyToken(ctx, cfg, token, logger)
	}()

	frames := spinner.Dot.Frames
	frame := 0
	fmt.Printf("\r%s Verifying token...", frames[frame])

	ticker := time.NewTicker(spinner.Dot.FPS)
	defer ticker.Stop()

	for {
		select {
		case err := <-resultCh:
			fmt.Print(clearSpinnerLine)
			if err == nil {
				fmt.Println("✓ Token verified")
			}
			return err

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Verifying token...", frames[frame%len(frames)])

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return fmt.Errorf("verification timed out")
		}
	}
}
