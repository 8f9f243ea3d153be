// ABOUTME: Root Cobra command and global state
// ABOUTME: Loads config, builds the logger, and opens the saved places database

package main

import (
	"fmt"
	"os"

	"github.com/harper/vantage/internal/config"
	"github.com/harper/vantage/internal/history"
	"github.com/harper/vantage/internal/logging"
	"github.com/harper/vantage/internal/models"
	"github.com/harper/vantage/internal/session"
	"github.com/harper/vantage/internal/storage"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	db     *storage.SQLiteDB
	cfg    *config.Config
	logger = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "vantage",
	Short: "Camera viewpoint history for globe viewers",
	Long: `
██╗   ██╗ █████╗ ███╗   ██╗████████╗ █████╗  ██████╗ ███████╗
██║   ██║██╔══██╗████╗  ██║╚══██╔══╝██╔══██╗██╔════╝ ██╔════╝
██║   ██║███████║██╔██╗ ██║   ██║   ███████║██║  ███╗█████╗
╚██╗ ██╔╝██╔══██║██║╚██╗██║   ██║   ██╔══██║██║   ██║██╔══╝
 ╚████╔╝ ██║  ██║██║ ╚████║   ██║   ██║  ██║╚██████╔╝███████╗
  ╚═══╝  ╚═╝  ╚═╝╚═╝  ╚═══╝   ╚═╝   ╚═╝  ╚═╝ ╚═════╝ ╚══════╝

       Back and forward through where the camera has been

Examples:
  vantage shell
  vantage place add office --lon -87.6298 --lat 41.8781 --range 1500
  vantage place goto office
  vantage export --projection 3857 -o places.geojson`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logger = logging.New(os.Stderr, cfg.GetLogLevel())

		db, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		logger.Debug().Str("path", db.Path()).Msg("opened places database")
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if db != nil {
			return db.Close()
		}
		return nil
	},
}

// activeConfig returns the loaded config, or defaults when commands run without the root hooks.
func activeConfig() *config.Config {
	if cfg == nil {
		return config.Default()
	}
	return cfg
}

// newSession builds a navigation session from config, optionally starting at a saved place.
func newSession(start *models.Place) (*session.Session, error) {
	c := activeConfig()
	delay, err := c.GetSettleDelay()
	if err != nil {
		return nil, err
	}

	nav := history.New(
		history.WithMaxSize(c.GetMaxHistorySize()),
		history.WithLogger(logger),
	)
	opts := []session.Option{
		session.WithSettleDelay(delay),
		session.WithLogger(logger),
	}
	if start != nil {
		opts = append(opts, session.WithStart(start.Viewpoint))
	}
	return session.New(nav, opts...), nil
}
