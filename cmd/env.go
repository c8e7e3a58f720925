package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/salesdojo/callcoach/internal/config"
	"github.com/salesdojo/callcoach/internal/content"
	"github.com/salesdojo/callcoach/internal/exercises"
	"github.com/salesdojo/callcoach/internal/logging"
	"github.com/salesdojo/callcoach/internal/media"
	"github.com/salesdojo/callcoach/internal/playlist"
	"github.com/salesdojo/callcoach/internal/screen"
	"github.com/salesdojo/callcoach/internal/screens/player"
	"github.com/salesdojo/callcoach/internal/screens/practice"
	"github.com/salesdojo/callcoach/internal/screens/scripts"
)

// environment is everything a command needs once config, logging and
// content are loaded.
type environment struct {
	cfg      config.Config
	log      *slog.Logger
	logFile  io.Closer
	pack     *content.Pack
	catalog  *exercises.Catalog
	resolver playlist.Resolver
}

// setup loads and validates the config, opens the log file and loads the
// content pack.
func setup(cmd *cobra.Command) (*environment, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	level, _ := config.ParseLevel(cfg.Log.Level)
	logger, logFile, err := logging.Open(cfg.Log.File, level)
	if err != nil {
		return nil, err
	}
	env := &environment{cfg: cfg, log: logger, logFile: logFile}

	env.pack, err = content.Load(content.LoadOptions{Dir: cfg.Content.Dir, Logger: logger})
	if err != nil {
		env.Close()
		return nil, fmt.Errorf("load content: %w", err)
	}
	env.catalog, err = exercises.NewCatalog(env.pack.Exercises)
	if err != nil {
		env.Close()
		return nil, fmt.Errorf("load exercises: %w", err)
	}

	root := cfg.Media.AudioRoot
	if root != "" && !strings.Contains(root, "://") {
		if root, err = config.ExpandPath(root); err != nil {
			env.Close()
			return nil, err
		}
	}
	env.resolver = playlist.Resolver{Root: root}

	logger.Info("callcoach starting",
		"version", version,
		"backend", cfg.Media.Backend,
		"tracks", len(env.pack.Tracks),
		"exercises", len(env.catalog.List()))
	return env, nil
}

// loadConfig resolves the effective config, applying flag overrides last.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	explicit, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.LoadOptions{ExplicitPath: explicit})
	if err != nil {
		return config.Config{}, err
	}
	if dir, _ := cmd.Flags().GetString("content"); dir != "" {
		cfg.Content.Dir = dir
	}
	if backend, _ := cmd.Flags().GetString("backend"); backend != "" {
		cfg.Media.Backend = config.Backend(strings.ToLower(backend))
	}
	if err := config.Validate(cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func (e *environment) Close() {
	if e.logFile != nil {
		e.logFile.Close()
	}
}

func (e *environment) practiceOptions() practice.Options {
	return practice.Options{
		Catalog: e.catalog,
		Tree:    e.pack.DecisionTree,
		Seed:    e.cfg.Exercises.Seed,
		Logger:  e.log,
	}
}

// newElement starts the configured audio backend.
func (e *environment) newElement(ctx context.Context) (media.Element, error) {
	switch e.cfg.Media.Backend {
	case config.BackendMPV:
		mpv, err := media.StartMPV(ctx, media.MPVOptions{
			Path:   e.cfg.Media.MPVPath,
			Logger: e.log,
		})
		if err != nil {
			return nil, err
		}
		return mpv, nil
	default:
		durations := make(map[string]float64, len(e.pack.Tracks))
		for _, t := range e.pack.Tracks {
			t.CacheSensitive = false
			durations[e.resolver.Resolve(t)] = float64(t.DurationSeconds)
		}
		var opts []media.SimulatedOption
		if e.cfg.Media.SimulateAutoplayBlock {
			opts = append(opts, media.WithAutoplayBlock())
		}
		return media.NewSimulated(func(src string) float64 {
			if d, ok := durations[src]; ok {
				return d
			}
			// Cache-busted sources carry a v= query suffix.
			if i := strings.LastIndex(src, "v="); i > 0 {
				return durations[src[:i-1]]
			}
			return 0
		}, opts...), nil
	}
}

// listenFunc returns a factory for player screens, each with its own
// element.
func (e *environment) listenFunc(ctx context.Context, autoplay bool) scripts.ListenFunc {
	return func(start int) (screen.Screen, error) {
		volume := e.cfg.Playback.Volume
		el, err := e.newElement(ctx)
		if err != nil {
			return nil, fmt.Errorf("start audio backend: %w", err)
		}
		return player.New(player.Options{
			Pack:        e.pack,
			Element:     el,
			Start:       start,
			Autoplay:    autoplay,
			Tick:        e.cfg.Media.Tick(),
			Resolver:    e.resolver,
			SettleDelay: e.cfg.Media.SettleDelay(),
			Volume:      &volume,
			Rate:        e.cfg.Playback.Rate,
			Logger:      logging.Session(e.log, "player"),
		}), nil
	}
}
