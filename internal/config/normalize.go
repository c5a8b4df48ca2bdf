package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTools()
	c.normalizeLibrary()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LibraryDir) == "" {
		c.Paths.LibraryDir = defaultLibraryDir
	}
	if c.Paths.LibraryDir, err = ExpandPath(c.Paths.LibraryDir); err != nil {
		return fmt.Errorf("paths.library_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = ExpandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTools() {
	c.Tools.Ytdlp = strings.TrimSpace(c.Tools.Ytdlp)
	if c.Tools.Ytdlp == "" {
		c.Tools.Ytdlp = defaultYtdlpBinary
	}
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	if c.Tools.FFmpeg == "" {
		c.Tools.FFmpeg = defaultFFmpegBinary
	}
	if c.Tools.MetadataWaitTimeout <= 0 {
		c.Tools.MetadataWaitTimeout = defaultMetadataWaitTimeout
	}
}

func (c *Config) normalizeLibrary() {
	c.Library.SortBy = strings.ToLower(strings.TrimSpace(c.Library.SortBy))
	if c.Library.SortBy == "" {
		c.Library.SortBy = defaultSortBy
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
