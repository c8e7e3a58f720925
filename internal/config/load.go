package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const envPrefix = "CALLCOACH_"

type LoadOptions struct {
	ExplicitPath string
	WorkingDir   string
	// Env replaces the process environment. A .env file in WorkingDir
	// fills keys Env does not set.
	Env map[string]string
}

type fileConfig struct {
	Version   *int          `yaml:"version"`
	Content   fileContent   `yaml:"content"`
	Media     fileMedia     `yaml:"media"`
	Playback  filePlayback  `yaml:"playback"`
	Exercises fileExercises `yaml:"exercises"`
	Log       fileLog       `yaml:"log"`
}

type fileContent struct {
	Dir *string `yaml:"dir"`
}

type fileMedia struct {
	Backend               *string `yaml:"backend"`
	AudioRoot             *string `yaml:"audio_root"`
	MPVPath               *string `yaml:"mpv_path"`
	SettleDelayMS         *int    `yaml:"settle_delay_ms"`
	TickMS                *int    `yaml:"tick_ms"`
	SimulateAutoplayBlock *bool   `yaml:"simulate_autoplay_block"`
}

type filePlayback struct {
	Volume *float64 `yaml:"volume"`
	Rate   *float64 `yaml:"rate"`
}

type fileExercises struct {
	Seed *uint64 `yaml:"seed"`
}

type fileLog struct {
	File  *string `yaml:"file"`
	Level *string `yaml:"level"`
}

// Load builds the effective config: defaults, then the user file and the
// project file (or only the explicit file), then environment overrides.
func Load(opts LoadOptions) (Config, error) {
	cfg := DefaultConfig()

	cwd := opts.WorkingDir
	if strings.TrimSpace(cwd) == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("resolve working directory: %w", err)
		}
		cwd = wd
	}

	env := opts.Env
	if env == nil {
		env = osEnvMap()
	}
	env, err := withDotEnv(env, DotEnvPath(cwd))
	if err != nil {
		return Config{}, err
	}

	if explicit := strings.TrimSpace(opts.ExplicitPath); explicit != "" {
		if err := mergeFile(&cfg, explicit, true); err != nil {
			return Config{}, err
		}
	} else {
		userPath, err := UserConfigPath()
		if err != nil {
			return Config{}, err
		}
		if err := mergeFile(&cfg, userPath, false); err != nil {
			return Config{}, err
		}

		if err := mergeFile(&cfg, ProjectConfigPath(cwd), false); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnvOverrides(&cfg, env); err != nil {
		return Config{}, err
	}

	normalize(&cfg)
	return cfg, nil
}

func mergeFile(cfg *Config, path string, required bool) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("config file does not exist: %s", path)
		}
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(payload, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.Version != nil {
		cfg.Version = *fc.Version
	}
	if fc.Content.Dir != nil {
		cfg.Content.Dir = strings.TrimSpace(*fc.Content.Dir)
	}

	m := fc.Media
	if m.Backend != nil {
		cfg.Media.Backend = Backend(strings.TrimSpace(*m.Backend))
	}
	if m.AudioRoot != nil {
		cfg.Media.AudioRoot = strings.TrimSpace(*m.AudioRoot)
	}
	if m.MPVPath != nil {
		cfg.Media.MPVPath = strings.TrimSpace(*m.MPVPath)
	}
	if m.SettleDelayMS != nil {
		cfg.Media.SettleDelayMS = *m.SettleDelayMS
	}
	if m.TickMS != nil {
		cfg.Media.TickMS = *m.TickMS
	}
	if m.SimulateAutoplayBlock != nil {
		cfg.Media.SimulateAutoplayBlock = *m.SimulateAutoplayBlock
	}

	if fc.Playback.Volume != nil {
		cfg.Playback.Volume = *fc.Playback.Volume
	}
	if fc.Playback.Rate != nil {
		cfg.Playback.Rate = *fc.Playback.Rate
	}
	if fc.Exercises.Seed != nil {
		cfg.Exercises.Seed = *fc.Exercises.Seed
	}
	if fc.Log.File != nil {
		cfg.Log.File = strings.TrimSpace(*fc.Log.File)
	}
	if fc.Log.Level != nil {
		cfg.Log.Level = strings.TrimSpace(*fc.Log.Level)
	}

	return nil
}

func applyEnvOverrides(cfg *Config, env map[string]string) error {
	if value := strings.TrimSpace(env[envPrefix+"MEDIA_BACKEND"]); value != "" {
		cfg.Media.Backend = Backend(value)
	}
	if value := strings.TrimSpace(env[envPrefix+"AUDIO_ROOT"]); value != "" {
		cfg.Media.AudioRoot = value
	}
	if value := strings.TrimSpace(env[envPrefix+"CONTENT_DIR"]); value != "" {
		cfg.Content.Dir = value
	}
	if value := strings.TrimSpace(env[envPrefix+"LOG_LEVEL"]); value != "" {
		cfg.Log.Level = value
	}
	if value := strings.TrimSpace(env[envPrefix+"LOG_FILE"]); value != "" {
		cfg.Log.File = value
	}
	if value := strings.TrimSpace(env[envPrefix+"SETTLE_DELAY_MS"]); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid %sSETTLE_DELAY_MS value %q: %w", envPrefix, value, err)
		}
		cfg.Media.SettleDelayMS = parsed
	}
	if value := strings.TrimSpace(env[envPrefix+"EXERCISE_SEED"]); value != "" {
		parsed, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %sEXERCISE_SEED value %q: %w", envPrefix, value, err)
		}
		cfg.Exercises.Seed = parsed
	}
	return nil
}

func normalize(cfg *Config) {
	cfg.Media.Backend = Backend(strings.ToLower(string(cfg.Media.Backend)))
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	if cfg.Media.MPVPath == "" {
		cfg.Media.MPVPath = "mpv"
	}
}

// withDotEnv returns env plus any keys from the .env file at path that env
// does not already define. A missing file is not an error.
func withDotEnv(env map[string]string, path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return env, nil
		}
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}

	merged := make(map[string]string, len(env)+len(values))
	for k, v := range values {
		merged[k] = v
	}
	for k, v := range env {
		merged[k] = v
	}
	return merged, nil
}

func osEnvMap() map[string]string {
	result := map[string]string{}
	for _, pair := range os.Environ() {
		pieces := strings.SplitN(pair, "=", 2)
		if len(pieces) == 2 {
			result[pieces[0]] = pieces[1]
		}
	}
	return result
}
