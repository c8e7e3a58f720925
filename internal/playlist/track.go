package playlist

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Track is one audio file in the fixed training playlist.
type Track struct {
	ID              int    `yaml:"id" json:"id"`
	ModuleKey       string `yaml:"module" json:"module"`
	Title           string `yaml:"title" json:"title"`
	Source          string `yaml:"source" json:"source"`
	DisplayDuration string `yaml:"duration" json:"duration"`
	DurationSeconds int    `yaml:"duration_seconds" json:"duration_seconds"`
	Color           string `yaml:"color" json:"color"`
	// CacheSensitive tracks get a fresh cache-busting query on every load.
	CacheSensitive bool `yaml:"cache_sensitive" json:"cache_sensitive"`
}

// Resolver turns a track's relative source into something the media
// element can open.
type Resolver struct {
	// Root is a directory or an http(s) base URL. Empty leaves sources as-is.
	Root string
	// Now is used for cache-busting. Defaults to time.Now.
	Now func() time.Time
}

// Resolve returns the source for t, applying the cache-busting suffix for
// cache-sensitive tracks served over the network.
func (r Resolver) Resolve(t Track) string {
	src := r.join(t.Source)
	if t.CacheSensitive && isNetworkSource(src) {
		now := time.Now
		if r.Now != nil {
			now = r.Now
		}
		src = CacheBust(src, now())
	}
	return src
}

func (r Resolver) join(src string) string {
	if r.Root == "" || isNetworkSource(src) || filepath.IsAbs(src) {
		return src
	}
	if isNetworkSource(r.Root) {
		base, err := url.Parse(r.Root)
		if err != nil {
			return src
		}
		base.Path = path.Join(base.Path, src)
		return base.String()
	}
	return filepath.Join(r.Root, src)
}

// CacheBust appends a v=<unix-ms> query parameter to src.
func CacheBust(src string, now time.Time) string {
	sep := "?"
	if strings.Contains(src, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%sv=%d", src, sep, now.UnixMilli())
}

func isNetworkSource(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// TotalDuration sums the nominal durations of tracks in seconds.
func TotalDuration(tracks []Track) int {
	total := 0
	for _, t := range tracks {
		total += t.DurationSeconds
	}
	return total
}

// FormatTime renders seconds as m:ss. Negative and NaN inputs render 0:00.
func FormatTime(seconds float64) string {
	if seconds != seconds || seconds < 0 {
		seconds = 0
	}
	s := int(seconds)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
