package config

import "fmt"

func DefaultTemplate() string {
	return fmt.Sprintf(`version: 1
content:
  # Directory whose YAML files replace the built-in ones of the same name.
  dir: ""
media:
  # simulated runs a virtual clock; mpv plays real audio through mpv.
  backend: "simulated"
  audio_root: "~/callcoach/audio"
  mpv_path: "mpv"
  settle_delay_ms: %d
  tick_ms: %d
  simulate_autoplay_block: false
playback:
  volume: 1
  rate: 1
exercises:
  seed: 0
log:
  file: %q
  level: "info"
`, 100, 250, defaultLogFile())
}
