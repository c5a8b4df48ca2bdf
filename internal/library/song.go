package library

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"shellac/internal/fileutil"
)

// BackupSuffix is appended to a song's visible name to form its original-copy
// sibling.
const BackupSuffix = ".original"

const hiddenPrefix = "."

// Trimmer cuts a time-bounded slice of an audio file. Implemented by the
// ffmpeg client; stubbed in tests.
type Trimmer interface {
	Trim(ctx context.Context, src, dst string, start, end time.Duration) error
}

// Song is one managed track: the current working file plus its decoded
// metadata. The zero value is not usable; songs come from a Library scan or
// from the ingestion pipeline.
type Song struct {
	Path     string
	Metadata SongMetadata
}

// BackupPath returns the original-copy sibling path. It is derived from the
// unhidden file name so hiding a song never orphans its backup.
func (s *Song) BackupPath() string {
	dir := filepath.Dir(s.Path)
	base := strings.TrimPrefix(filepath.Base(s.Path), hiddenPrefix)
	return filepath.Join(dir, base+BackupSuffix)
}

// HasBackup reports whether the original copy exists on disk.
func (s *Song) HasBackup() bool {
	return fileutil.PathExists(s.BackupPath())
}

// EnsureBackup byte-copies the working file to the backup path unless a
// backup already exists. Every destructive mutation calls this first; the
// backup is made at most once and never overwritten.
func (s *Song) EnsureBackup() error {
	if s.HasBackup() {
		return nil
	}
	if err := fileutil.CopyFile(s.Path, s.BackupPath()); err != nil {
		return fmt.Errorf("create original copy: %w", err)
	}
	return nil
}

// Crop trims the song to [start, end). The trim always reads from the
// pristine backup, never the working file, so repeated crops re-derive from
// the original rather than accumulating. On tool failure the metadata and
// flags are left untouched.
func (s *Song) Crop(ctx context.Context, trimmer Trimmer, start, end time.Duration) error {
	if trimmer == nil {
		return fmt.Errorf("crop %s: no trimmer provided", s.Path)
	}
	if end <= start {
		return fmt.Errorf("crop %s: end %v not after start %v", s.Path, end, start)
	}
	if err := s.EnsureBackup(); err != nil {
		return err
	}
	if err := trimmer.Trim(ctx, s.BackupPath(), s.Path, start, end); err != nil {
		return err
	}
	s.Metadata.Cropped = true
	return s.Metadata.WriteFile(s.Path)
}

// EditMetadata applies user-edited display fields and persists them, marking
// the song as edited.
func (s *Song) EditMetadata(title, artist, album string) error {
	if err := s.EnsureBackup(); err != nil {
		return err
	}
	s.Metadata.Title = title
	s.Metadata.Artist = artist
	s.Metadata.Album = album
	s.Metadata.Edited = true
	return s.Metadata.WriteFile(s.Path)
}

// Restore byte-copies the backup over the working file, discarding whatever
// audio and tag state the working file holds. The backup is kept so restore
// can be repeated. Callers should rescan afterwards.
func (s *Song) Restore() error {
	if !s.HasBackup() {
		return fmt.Errorf("restore %s: no original copy present", s.Path)
	}
	if err := fileutil.CopyFile(s.BackupPath(), s.Path); err != nil {
		return fmt.Errorf("restore original copy: %w", err)
	}
	return nil
}

// Delete removes the backup (when present) and then the working file.
// Partial failure is surfaced: a backup that cannot be removed aborts before
// the working file is touched.
func (s *Song) Delete() error {
	if err := fileutil.RemoveIfExists(s.BackupPath()); err != nil {
		return fmt.Errorf("remove original copy: %w", err)
	}
	if err := os.Remove(s.Path); err != nil {
		return fmt.Errorf("remove song file: %w", err)
	}
	return nil
}

// IsHidden reports whether the working file carries the hidden dot prefix.
func (s *Song) IsHidden() bool {
	return strings.HasPrefix(filepath.Base(s.Path), hiddenPrefix)
}

// Hide renames the working file with a dot prefix so generic media players
// skip it. The library's own scan still sees it.
func (s *Song) Hide() error {
	if s.IsHidden() {
		return nil
	}
	hidden := filepath.Join(filepath.Dir(s.Path), hiddenPrefix+filepath.Base(s.Path))
	if err := os.Rename(s.Path, hidden); err != nil {
		return fmt.Errorf("hide song: %w", err)
	}
	s.Path = hidden
	return nil
}

// Unhide restores the song's visible file name.
func (s *Song) Unhide() error {
	if !s.IsHidden() {
		return nil
	}
	visible := filepath.Join(filepath.Dir(s.Path), strings.TrimPrefix(filepath.Base(s.Path), hiddenPrefix))
	if err := os.Rename(s.Path, visible); err != nil {
		return fmt.Errorf("unhide song: %w", err)
	}
	s.Path = visible
	return nil
}

// IsModified reports whether any destructive mutation has been recorded.
// It gates whether restoring the original is offered.
func (s *Song) IsModified() bool {
	return s.Metadata.Cropped || s.Metadata.Edited
}
