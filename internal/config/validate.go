package config

import (
	"fmt"
	"strings"
)

var validSortKeys = map[string]struct{}{
	"title":      {},
	"artist":     {},
	"album":      {},
	"downloaded": {},
}

var validLogFormats = map[string]struct{}{
	"console": {},
	"json":    {},
}

var validLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// Validate reports the first configuration problem encountered.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Paths.LibraryDir) == "" {
		return fmt.Errorf("paths.library_dir must be set")
	}
	if _, ok := validSortKeys[c.Library.SortBy]; !ok {
		return fmt.Errorf("library.sort_by: unsupported value %q (expected title, artist, album, or downloaded)", c.Library.SortBy)
	}
	if _, ok := validLogFormats[c.Logging.Format]; !ok {
		return fmt.Errorf("logging.format: unsupported value %q (expected console or json)", c.Logging.Format)
	}
	if _, ok := validLogLevels[c.Logging.Level]; !ok {
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	if c.Tools.DownloadTimeout < 0 {
		return fmt.Errorf("tools.download_timeout must not be negative")
	}
	if c.Tools.TrimTimeout < 0 {
		return fmt.Errorf("tools.trim_timeout must not be negative")
	}
	return nil
}
