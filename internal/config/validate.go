package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
)

type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 {
		return "invalid config"
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(e.Problems, "; "))
}

func Validate(cfg Config) error {
	problems := []string{}

	if cfg.Version != 1 {
		problems = append(problems, "version must be 1")
	}

	switch cfg.Media.Backend {
	case BackendSimulated, BackendMPV:
	default:
		problems = append(problems, fmt.Sprintf("media.backend %q must be %q or %q", cfg.Media.Backend, BackendSimulated, BackendMPV))
	}
	if cfg.Media.Backend == BackendMPV && strings.TrimSpace(cfg.Media.MPVPath) == "" {
		problems = append(problems, "media.mpv_path must be set for the mpv backend")
	}
	if cfg.Media.SettleDelayMS < 0 {
		problems = append(problems, "media.settle_delay_ms must be >= 0")
	}
	if cfg.Media.TickMS <= 0 {
		problems = append(problems, "media.tick_ms must be > 0")
	}

	if cfg.Playback.Volume < 0 || cfg.Playback.Volume > 1 {
		problems = append(problems, "playback.volume must be within [0, 1]")
	}
	if cfg.Playback.Rate < 0.5 || cfg.Playback.Rate > 2 {
		problems = append(problems, "playback.rate must be within [0.5, 2]")
	}

	if _, err := ParseLevel(cfg.Log.Level); err != nil {
		problems = append(problems, err.Error())
	}
	logFile, err := ExpandPath(cfg.Log.File)
	if err != nil || strings.TrimSpace(logFile) == "" {
		problems = append(problems, "log.file must be a valid path")
	} else if !filepath.IsAbs(logFile) {
		problems = append(problems, "log.file must resolve to an absolute path")
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// ParseLevel maps a config level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return 0, fmt.Errorf("log.level %q must be debug, info, warn or error", name)
	}
	return level, nil
}
