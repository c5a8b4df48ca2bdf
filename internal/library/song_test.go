package library_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bogem/id3v2/v2"

	"shellac/internal/fileutil"
	"shellac/internal/library"
	"shellac/internal/tags"
	"shellac/internal/testsupport"
)

type trimCall struct {
	src, dst   string
	start, end time.Duration
}

// stubTrimmer records calls and copies the source over the destination, which
// is close enough to what the real tool does for path assertions.
type stubTrimmer struct {
	calls []trimCall
	err   error
}

func (s *stubTrimmer) Trim(_ context.Context, src, dst string, start, end time.Duration) error {
	s.calls = append(s.calls, trimCall{src: src, dst: dst, start: start, end: end})
	if s.err != nil {
		return s.err
	}
	return fileutil.CopyFile(src, dst)
}

func newTestSong(t *testing.T, dir, name string) *library.Song {
	t.Helper()
	path := filepath.Join(dir, name)
	testsupport.WriteSongFile(t, path, func(tag *id3v2.Tag) {
		tag.SetTitle("Original Title")
		tags.VideoID.Write(tag, "vid42")
	})
	meta, err := library.ReadSongFile(path)
	if err != nil {
		t.Fatalf("read song file: %v", err)
	}
	return &library.Song{Path: path, Metadata: meta}
}

func TestEnsureBackupIsIdempotent(t *testing.T) {
	song := newTestSong(t, t.TempDir(), "track.mp3")

	if err := song.EnsureBackup(); err != nil {
		t.Fatalf("EnsureBackup: %v", err)
	}
	if !song.HasBackup() {
		t.Fatal("expected backup to exist")
	}

	// Plant a sentinel so a second call overwriting the backup is visible.
	sentinel := []byte("pristine sentinel")
	if err := os.WriteFile(song.BackupPath(), sentinel, 0o644); err != nil {
		t.Fatalf("write sentinel: %v", err)
	}
	if err := song.EnsureBackup(); err != nil {
		t.Fatalf("second EnsureBackup: %v", err)
	}
	got, err := os.ReadFile(song.BackupPath())
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(got) != string(sentinel) {
		t.Fatal("second EnsureBackup overwrote the existing backup")
	}
}

func TestCropAlwaysReadsFromBackup(t *testing.T) {
	song := newTestSong(t, t.TempDir(), "track.mp3")
	trimmer := &stubTrimmer{}

	if err := song.Crop(context.Background(), trimmer, 2*time.Second, 10*time.Second); err != nil {
		t.Fatalf("first Crop: %v", err)
	}
	if err := song.Crop(context.Background(), trimmer, 4*time.Second, 8*time.Second); err != nil {
		t.Fatalf("second Crop: %v", err)
	}

	if len(trimmer.calls) != 2 {
		t.Fatalf("expected 2 trim calls, got %d", len(trimmer.calls))
	}
	for i, call := range trimmer.calls {
		if call.src != song.BackupPath() {
			t.Errorf("call %d read from %s, want backup %s", i, call.src, song.BackupPath())
		}
		if call.dst != song.Path {
			t.Errorf("call %d wrote to %s, want working file %s", i, call.dst, song.Path)
		}
	}

	meta, err := library.ReadSongFile(song.Path)
	if err != nil {
		t.Fatalf("re-read song: %v", err)
	}
	if !meta.Cropped {
		t.Fatal("expected cropped flag to persist")
	}
}

func TestCropRejectsEmptyRange(t *testing.T) {
	song := newTestSong(t, t.TempDir(), "track.mp3")
	trimmer := &stubTrimmer{}

	err := song.Crop(context.Background(), trimmer, 5*time.Second, 5*time.Second)
	if err == nil {
		t.Fatal("expected error for end == start")
	}
	if len(trimmer.calls) != 0 {
		t.Fatal("trimmer must not run for an invalid range")
	}
	if song.HasBackup() {
		t.Fatal("no backup should be made for an invalid range")
	}
}

func TestCropToolFailureLeavesFlagsUntouched(t *testing.T) {
	song := newTestSong(t, t.TempDir(), "track.mp3")
	trimmer := &stubTrimmer{err: os.ErrPermission}

	if err := song.Crop(context.Background(), trimmer, 0, time.Second); err == nil {
		t.Fatal("expected trim failure to propagate")
	}
	meta, err := library.ReadSongFile(song.Path)
	if err != nil {
		t.Fatalf("re-read song: %v", err)
	}
	if meta.Cropped {
		t.Fatal("cropped flag must not be set when the tool fails")
	}
}

func TestEditMetadataPersistsAndMarksEdited(t *testing.T) {
	song := newTestSong(t, t.TempDir(), "track.mp3")

	if err := song.EditMetadata("New Title", "New Artist", "New Album"); err != nil {
		t.Fatalf("EditMetadata: %v", err)
	}
	if !song.HasBackup() {
		t.Fatal("edit must create a backup first")
	}

	meta, err := library.ReadSongFile(song.Path)
	if err != nil {
		t.Fatalf("re-read song: %v", err)
	}
	if meta.Title != "New Title" || meta.Artist != "New Artist" || meta.Album != "New Album" {
		t.Fatalf("unexpected metadata after edit: %+v", meta)
	}
	if !meta.Edited {
		t.Fatal("expected edited flag to persist")
	}
}

func TestRestoreBringsBackOriginal(t *testing.T) {
	song := newTestSong(t, t.TempDir(), "track.mp3")

	if err := song.EditMetadata("Changed", "Changed", "Changed"); err != nil {
		t.Fatalf("EditMetadata: %v", err)
	}
	if err := song.Restore(); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	meta, err := library.ReadSongFile(song.Path)
	if err != nil {
		t.Fatalf("re-read song: %v", err)
	}
	if meta.Title != "Original Title" {
		t.Fatalf("expected original title back, got %q", meta.Title)
	}
	if meta.Edited || meta.Cropped {
		t.Fatalf("expected modification flags cleared by restore, got %+v", meta)
	}
	if !song.HasBackup() {
		t.Fatal("restore must keep the backup for later use")
	}
}

func TestRestoreWithoutBackupFails(t *testing.T) {
	song := newTestSong(t, t.TempDir(), "track.mp3")
	if err := song.Restore(); err == nil {
		t.Fatal("expected error restoring a song with no backup")
	}
}

func TestDeleteRemovesWorkingFileAndBackup(t *testing.T) {
	song := newTestSong(t, t.TempDir(), "track.mp3")
	if err := song.EnsureBackup(); err != nil {
		t.Fatalf("EnsureBackup: %v", err)
	}

	if err := song.Delete(); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if fileutil.PathExists(song.Path) {
		t.Fatal("working file should be gone")
	}
	if song.HasBackup() {
		t.Fatal("backup should be gone")
	}
}

func TestDeleteWithoutBackup(t *testing.T) {
	song := newTestSong(t, t.TempDir(), "track.mp3")
	if err := song.Delete(); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if fileutil.PathExists(song.Path) {
		t.Fatal("working file should be gone")
	}
}

func TestHideUnhideRoundTrip(t *testing.T) {
	dir := t.TempDir()
	song := newTestSong(t, dir, "track.mp3")
	visible := song.Path

	if err := song.Hide(); err != nil {
		t.Fatalf("Hide: %v", err)
	}
	if !song.IsHidden() {
		t.Fatal("song should report hidden")
	}
	if song.Path != filepath.Join(dir, ".track.mp3") {
		t.Fatalf("unexpected hidden path %s", song.Path)
	}
	if fileutil.PathExists(visible) {
		t.Fatal("visible file should be gone after hide")
	}
	// Hiding twice is a no-op.
	if err := song.Hide(); err != nil {
		t.Fatalf("second Hide: %v", err)
	}

	if err := song.Unhide(); err != nil {
		t.Fatalf("Unhide: %v", err)
	}
	if song.IsHidden() {
		t.Fatal("song should be visible again")
	}
	if song.Path != visible {
		t.Fatalf("expected path %s back, got %s", visible, song.Path)
	}
}

func TestBackupPathIgnoresHiddenPrefix(t *testing.T) {
	dir := t.TempDir()
	song := newTestSong(t, dir, "track.mp3")

	want := song.BackupPath()
	if err := song.EnsureBackup(); err != nil {
		t.Fatalf("EnsureBackup: %v", err)
	}
	if err := song.Hide(); err != nil {
		t.Fatalf("Hide: %v", err)
	}
	if got := song.BackupPath(); got != want {
		t.Fatalf("backup path changed after hide: %s != %s", got, want)
	}
	if !song.HasBackup() {
		t.Fatal("hidden song must still find its backup")
	}
}

func TestIsModified(t *testing.T) {
	song := newTestSong(t, t.TempDir(), "track.mp3")
	if song.IsModified() {
		t.Fatal("fresh song should not report modified")
	}
	if err := song.EditMetadata("T", "A", "B"); err != nil {
		t.Fatalf("EditMetadata: %v", err)
	}
	if !song.IsModified() {
		t.Fatal("edited song should report modified")
	}
}
