package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"shellac/internal/artwork"
	"shellac/internal/library"
	"shellac/internal/logging"
	"shellac/internal/services"
	"shellac/internal/services/ytdlp"
	"shellac/internal/tags"
)

// thumbnailExtensions in lookup order. yt-dlp keeps whatever format the site
// served, so all common ones are tried.
var thumbnailExtensions = []string{".jpg", ".jpeg", ".webp", ".png"}

func (m *Manager) run(ctx context.Context, job *Job) {
	defer close(job.done)
	defer job.cancel()

	logger := logging.WithContext(ctx, m.logger)
	job.Progress.setStage(StageDownloading)

	var sidecarWG sync.WaitGroup
	_, err := m.downloader.Download(ctx, job.URL, m.libraryDir, func(update ytdlp.ProgressUpdate) {
		if update.InfoJSONPath != "" {
			// Read the sidecar off the scanner goroutine; it may take a
			// moment to become readable while audio keeps streaming.
			sidecarWG.Add(1)
			go func(path string) {
				defer sidecarWG.Done()
				m.publishSidecar(ctx, logger, job, path)
			}(update.InfoJSONPath)
			return
		}
		job.Progress.setPercent(update.Percent)
	})
	sidecarWG.Wait()

	if err != nil {
		failJob(logger, job, err)
		return
	}

	job.Progress.setStage(StageTagging)
	meta, err := m.finalize(logger, job)
	if err != nil {
		failJob(logger, job, err)
		return
	}

	job.Progress.setMetadata(meta)
	job.Progress.finish()
	logger.Info("download job complete", slog.String("title", meta.Title))
}

func failJob(logger *slog.Logger, job *Job, err error) {
	job.Progress.fail(err)
	logger.Error("download job failed", logging.Error(err))
}

// sidecarInfo is the slice of yt-dlp's info.json the library cares about.
type sidecarInfo struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Uploader string `json:"uploader"`
	Channel  string `json:"channel"`
}

// publishSidecar waits for the announced metadata file, parses it, publishes
// the partial metadata so observers can show a title mid-download, and
// removes the sidecar. Failures here are logged but never fail the job; the
// fallback metadata covers for them.
func (m *Manager) publishSidecar(ctx context.Context, logger *slog.Logger, job *Job, path string) {
	info, err := m.readSidecar(ctx, path)
	if err != nil {
		logger.Warn("metadata sidecar unusable", slog.String("path", path), logging.Error(err))
		return
	}
	defer func() {
		if err := os.Remove(path); err != nil {
			logger.Debug("could not remove metadata sidecar", slog.String("path", path), logging.Error(err))
		}
	}()

	job.Progress.setMetadata(metadataFromSidecar(job.VideoID, info))
}

// readSidecar polls with backoff until the sidecar parses or the wait times
// out. The tool announces the file slightly before it finishes writing it,
// so the first reads may see a partial document.
func (m *Manager) readSidecar(ctx context.Context, path string) (sidecarInfo, error) {
	deadline := time.Now().Add(m.metadataWait)
	delay := 50 * time.Millisecond

	var lastErr error
	for {
		data, err := os.ReadFile(path)
		if err == nil {
			var info sidecarInfo
			if err := json.Unmarshal(data, &info); err == nil {
				return info, nil
			}
			lastErr = err
		} else {
			lastErr = err
		}

		if time.Now().After(deadline) {
			return sidecarInfo{}, services.Wrap(services.ErrTimeout, "ingest", "read sidecar", path, lastErr)
		}
		select {
		case <-ctx.Done():
			return sidecarInfo{}, ctx.Err()
		case <-time.After(delay):
		}
		if delay < time.Second {
			delay *= 2
		}
	}
}

func metadataFromSidecar(videoID string, info sidecarInfo) library.SongMetadata {
	title := strings.TrimSpace(info.Title)
	if title == "" {
		title = videoID
	}
	artist := strings.TrimSpace(info.Artist)
	if artist == "" {
		artist = strings.TrimSpace(info.Uploader)
	}
	if artist == "" {
		artist = strings.TrimSpace(info.Channel)
	}
	if artist == "" {
		artist = tags.UnknownArtist
	}
	return library.SongMetadata{
		Title:   title,
		Artist:  artist,
		Album:   tags.UnknownAlbum,
		VideoID: videoID,
	}
}

// finalize locates the audio and thumbnail yt-dlp left behind, embeds the
// normalized artwork, stamps the download time, and writes the tags. The
// song file is not tagged at all unless every required artifact is present.
func (m *Manager) finalize(logger *slog.Logger, job *Job) (library.SongMetadata, error) {
	audioPath := filepath.Join(m.libraryDir, job.VideoID+".mp3")
	if _, err := os.Stat(audioPath); err != nil {
		return library.SongMetadata{}, services.Wrap(ErrAudioMissing, "ingest", "finalize", audioPath, err)
	}

	thumbPath, ok := m.findThumbnail(job.VideoID)
	if !ok {
		return library.SongMetadata{}, services.Wrap(ErrThumbnailMissing, "ingest", "finalize", job.VideoID, nil)
	}
	thumbData, err := os.ReadFile(thumbPath)
	if err != nil {
		return library.SongMetadata{}, fmt.Errorf("read thumbnail: %w", err)
	}
	art, _, err := artwork.Normalize(thumbData)
	if err != nil {
		return library.SongMetadata{}, fmt.Errorf("normalize thumbnail %s: %w", thumbPath, err)
	}
	if err := os.Remove(thumbPath); err != nil {
		logger.Debug("could not remove thumbnail", slog.String("path", thumbPath), logging.Error(err))
	}

	meta := m.baseMetadata(job)
	meta.Art = art
	meta.ArtMime = artwork.MIMEType
	meta.DownloadedAt = m.now().Unix()

	if err := meta.WriteFile(audioPath); err != nil {
		return library.SongMetadata{}, err
	}
	return meta, nil
}

// baseMetadata returns the sidecar-derived metadata when it arrived, or the
// id-named fallback when it never did.
func (m *Manager) baseMetadata(job *Job) library.SongMetadata {
	if published := job.Progress.metadataCopy(); published != nil {
		return *published
	}
	return library.SongMetadata{
		Title:   job.VideoID,
		Artist:  tags.UnknownArtist,
		Album:   tags.UnknownAlbum,
		VideoID: job.VideoID,
	}
}

func (m *Manager) findThumbnail(videoID string) (string, bool) {
	for _, ext := range thumbnailExtensions {
		path := filepath.Join(m.libraryDir, videoID+ext)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}
