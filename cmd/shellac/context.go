package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"shellac/internal/config"
	"shellac/internal/library"
	"shellac/internal/logging"
	"shellac/internal/services"
	"shellac/internal/services/ffmpeg"
	"shellac/internal/services/ytdlp"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

// openLibrary constructs and scans the library at the configured root.
func (c *commandContext) openLibrary() (*library.Library, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	lib := library.New(cfg.Paths.LibraryDir, library.WithLogger(logger))
	if err := lib.Scan(); err != nil {
		return nil, err
	}
	return lib, nil
}

// withSong runs fn on the song with the given video id while holding the
// library lock. The lock covers the scan too, so fn always sees fresh state.
func (c *commandContext) withSong(videoID string, fn func(*library.Song) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return err
	}

	lib := library.New(cfg.Paths.LibraryDir, library.WithLogger(logger))
	lock, err := lib.AcquireLock()
	if err != nil {
		return err
	}
	defer lock.Release()

	if err := lib.Scan(); err != nil {
		return err
	}
	song, err := findSong(lib, videoID)
	if err != nil {
		return err
	}
	return fn(song)
}

func findSong(lib *library.Library, videoID string) (*library.Song, error) {
	videoID = strings.TrimSpace(videoID)
	for _, song := range lib.Songs() {
		if song.Metadata.VideoID == videoID {
			return song, nil
		}
	}
	return nil, services.Wrap(services.ErrNotFound, "library", "find song",
		fmt.Sprintf("no song with video id %q", videoID), nil)
}

func (c *commandContext) newTrimmer() (*ffmpeg.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return ffmpeg.New(cfg.Tools.FFmpeg, time.Duration(cfg.Tools.TrimTimeout)*time.Second)
}

func (c *commandContext) newDownloader() (*ytdlp.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return ytdlp.New(cfg.Tools.Ytdlp, time.Duration(cfg.Tools.DownloadTimeout)*time.Second)
}
