package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/five82/marquee/internal/catalog"
	"github.com/five82/marquee/internal/config"
	"github.com/five82/marquee/internal/logging"
	"github.com/five82/marquee/internal/prefs"
	"github.com/five82/marquee/internal/state"
	"github.com/five82/marquee/internal/tmdb"
	"github.com/five82/marquee/internal/ui"
	"github.com/five82/marquee/internal/web"
)

// Options configure the marquee application.
type Options struct {
	ConfigPath string
	ServeAddr  string // non-empty serves the web view instead of the TUI
	Debug      bool
	Stdout     io.Writer // console log sink in serve mode; nil uses os.Stdout
}

// Run boots marquee until the front end exits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logOpts := logging.Options{Dir: cfg.LogDir, Debug: opts.Debug}
	if opts.ServeAddr != "" {
		logOpts.Console = opts.Stdout
		if logOpts.Console == nil {
			logOpts.Console = os.Stdout
		}
	}
	logger, err := logging.New(logOpts)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	loader, err := newLoader(cfg, logger)
	if err != nil {
		return err
	}

	store := &state.Store{}
	mount := catalog.NewMount(ctx)
	logger.Info("mount opened",
		zap.String("mount_id", mount.ID()),
		zap.Bool("serve", opts.ServeAddr != ""),
	)
	done := StartLoader(mount, store, loader, logger)
	defer func() {
		mount.Close()
		<-done
		logger.Info("mount closed", zap.String("mount_id", mount.ID()))
	}()

	if opts.ServeAddr != "" {
		return web.Serve(mount.Context(), web.Options{
			Addr:   opts.ServeAddr,
			Store:  store,
			Logger: logger,
		})
	}

	userPrefs, err := prefs.Load(cfg.PrefsPath)
	if err != nil {
		logger.Warn("prefs unavailable; using defaults", zap.Error(err))
	}
	return ui.Run(ui.Options{
		Context:   mount.Context(),
		Store:     store,
		ThemeName: userPrefs.Theme,
		Density:   userPrefs.Density,
		PrefsPath: cfg.PrefsPath,
		LogPath:   cfg.LogPath(),
		Logger:    logger,
	})
}

func newLoader(cfg config.Config, logger *zap.Logger) (*catalog.Loader, error) {
	if !cfg.HasCredential() {
		logger.Warn("no TMDB credential configured; set TMDB_API_KEY or api_key in the config file")
	}
	client, err := tmdb.NewClient(tmdb.ClientOptions{
		BaseURL: cfg.BaseURL,
		Credentials: tmdb.Credentials{
			APIKey:      cfg.APIKey,
			AccessToken: cfg.AccessToken,
		},
		Timeout: cfg.Timeout,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("init tmdb client: %w", err)
	}
	return catalog.NewLoader(client, catalog.LoaderOptions{
		Language:     cfg.Language,
		Page:         cfg.Page,
		ImageBaseURL: cfg.ImageBaseURL,
		Logger:       logger,
	}), nil
}
