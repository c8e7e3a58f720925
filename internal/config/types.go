package config

import "time"

// Backend selects the media element implementation.
type Backend string

const (
	BackendSimulated Backend = "simulated"
	BackendMPV       Backend = "mpv"
)

type Config struct {
	Version   int       `yaml:"version"`
	Content   Content   `yaml:"content"`
	Media     Media     `yaml:"media"`
	Playback  Playback  `yaml:"playback"`
	Exercises Exercises `yaml:"exercises"`
	Log       Log       `yaml:"log"`
}

type Content struct {
	// Dir overrides embedded content files with same-named files found here.
	Dir string `yaml:"dir,omitempty"`
}

type Media struct {
	Backend               Backend `yaml:"backend"`
	AudioRoot             string  `yaml:"audio_root,omitempty"`
	MPVPath               string  `yaml:"mpv_path"`
	SettleDelayMS         int     `yaml:"settle_delay_ms"`
	TickMS                int     `yaml:"tick_ms"`
	SimulateAutoplayBlock bool    `yaml:"simulate_autoplay_block"`
}

func (m Media) SettleDelay() time.Duration {
	return time.Duration(m.SettleDelayMS) * time.Millisecond
}

func (m Media) Tick() time.Duration {
	return time.Duration(m.TickMS) * time.Millisecond
}

type Playback struct {
	Volume float64 `yaml:"volume"`
	Rate   float64 `yaml:"rate"`
}

type Exercises struct {
	// Seed fixes the shuffle of unplaced items. Zero means random.
	Seed uint64 `yaml:"seed"`
}

type Log struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

func DefaultConfig() Config {
	return Config{
		Version: 1,
		Media: Media{
			Backend:       BackendSimulated,
			MPVPath:       "mpv",
			SettleDelayMS: 100,
			TickMS:        250,
		},
		Playback: Playback{
			Volume: 1,
			Rate:   1,
		},
		Log: Log{
			File:  defaultLogFile(),
			Level: "info",
		},
	}
}
