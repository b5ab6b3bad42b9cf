package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"bluepriori-dashboard/config"
	"bluepriori-dashboard/pkg/interfaces"
	"bluepriori-dashboard/pkg/models"
	service "bluepriori-dashboard/pkg/services"
	"bluepriori-dashboard/pkg/utils"

	"github.com/spf13/cobra"
)

const pollInterval = 50 * time.Millisecond

var (
	configPath  string
	baseURL     string
	waitTimeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "inventory",
	Short: "browse the BluePriori asset inventory from a terminal",
	Long: `browse the BluePriori asset inventory from a terminal.

           Assets are read from the inventory API configured in config.yaml,
           or through INVENTORY_URL / --url when no file is present.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default $CONFIG_PATH or config/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&baseURL, "url", "u", "", "inventory API base URL, overrides the configuration")
	rootCmd.PersistentFlags().DurationVarP(&waitTimeout, "wait", "w", 30*time.Second, "how long to wait for the inventory API")
}

func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error

	switch path := config.Path(); {
	case configPath != "":
		cfg, err = config.LoadConfig(configPath)
	default:
		if _, statErr := os.Stat(path); errors.Is(statErr, fs.ErrNotExist) {
			cfg, err = config.FromEnv()
		} else {
			cfg, err = config.LoadConfig(path)
		}
	}
	if err != nil {
		return nil, err
	}

	if baseURL != "" {
		cfg.Inventory.BaseURL = baseURL
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// session owns one dashboard for the lifetime of a command
type session struct {
	dashboard *service.Dashboard
	loop      *service.EventLoop
	cache     interfaces.DetailCacheInterface
	log       *utils.Logger
}

func openSession(ctx context.Context) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log := utils.NewLogger(utils.Config{
		LogLevel:  cfg.Logging.Level,
		LogFormat: cfg.Logging.Format,
	})
	// stdout is reserved for the tables
	log.SetOutput(os.Stderr)

	cache, err := service.NewDetailCache(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	client, err := service.NewInventoryClient(cfg, cache, log)
	if err != nil {
		if cache != nil {
			cache.Close()
		}
		return nil, err
	}

	loop := service.NewEventLoop(ctx)
	return &session{
		dashboard: service.NewLoopDashboard(client, loop, cfg.Inventory.PerPage, log),
		loop:      loop,
		cache:     cache,
		log:       log,
	}, nil
}

func (s *session) Close() {
	s.loop.Stop()
	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			s.log.WithError(err).Warn("Failed to close vulnerability cache")
		}
	}
}

// await polls the view until ready accepts it
func (s *session) await(ctx context.Context, ready func(models.ViewModel) bool) (models.ViewModel, error) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		view, err := s.dashboard.View()
		if err != nil {
			return view, err
		}
		if ready(view) {
			return view, nil
		}
		select {
		case <-ctx.Done():
			return view, fmt.Errorf("timed out waiting for the inventory api: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}

func pageSettled(view models.ViewModel) bool {
	return !view.Loading
}

func detailSettled(view models.ViewModel) bool {
	return view.Detail.Status != models.DetailLoading
}
