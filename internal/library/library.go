package library

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"shellac/internal/logging"
	"shellac/internal/tags"
)

const songExtension = ".mp3"

// Library owns the canonical on-disk root path and a snapshot of the songs
// found there. The snapshot only changes on Scan; external mutations leave it
// stale until the caller rescans.
type Library struct {
	path   string
	logger *slog.Logger

	mu    sync.RWMutex
	songs []*Song
}

// Option configures a Library.
type Option func(*Library)

// WithLogger injects a logger; scans log skipped files at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Library) {
		if logger != nil {
			l.logger = logging.WithComponent(logger, "library")
		}
	}
}

// New constructs a Library rooted at path. No scan is performed.
func New(path string, opts ...Option) *Library {
	lib := &Library{path: path, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(lib)
	}
	return lib
}

// Path returns the library root directory.
func (l *Library) Path() string { return l.path }

// Scan rebuilds the song snapshot from the immediate entries of the root
// directory. Files without a readable tag or without the fetch-source id are
// skipped silently; only failure to enumerate the directory itself is an
// error. The new snapshot replaces the old one atomically.
func (l *Library) Scan() error {
	entries, err := os.ReadDir(l.path)
	if err != nil {
		return fmt.Errorf("read library directory: %w", err)
	}

	songs := make([]*Song, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.EqualFold(filepath.Ext(name), songExtension) {
			continue
		}
		path := filepath.Join(l.path, name)

		meta, err := ReadSongFile(path)
		if err != nil {
			if tags.IsMissingField(err) {
				// Not one of ours; an MP3 someone copied in by hand.
				continue
			}
			l.logger.Debug("skipping unreadable song file", slog.String("path", path), logging.Error(err))
			continue
		}
		songs = append(songs, &Song{Path: path, Metadata: meta})
	}

	l.mu.Lock()
	l.songs = songs
	l.mu.Unlock()

	l.logger.Debug("library scan complete", slog.Int("songs", len(songs)))
	return nil
}

// Songs returns the current snapshot. The returned slice is a copy and stays
// valid across later scans; the songs it points at reflect the state as of
// the scan that found them.
func (l *Library) Songs() []*Song {
	l.mu.RLock()
	defer l.mu.RUnlock()
	snapshot := make([]*Song, len(l.songs))
	copy(snapshot, l.songs)
	return snapshot
}

// Len reports the number of songs in the current snapshot.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.songs)
}
