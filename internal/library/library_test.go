package library_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2/v2"

	"shellac/internal/library"
	"shellac/internal/tags"
	"shellac/internal/testsupport"
)

func TestScanIncludesOnlyManagedFiles(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteSongFile(t, filepath.Join(dir, "ours.mp3"), func(tag *id3v2.Tag) {
		tag.SetTitle("Ours")
		tags.VideoID.Write(tag, "abc123")
	})
	// A tagged MP3 with no fetch-source id is somebody else's file.
	testsupport.WriteSongFile(t, filepath.Join(dir, "theirs.mp3"), func(tag *id3v2.Tag) {
		tag.SetTitle("Theirs")
	})
	// Non-MP3 files and directories are ignored outright.
	testsupport.WriteFile(t, filepath.Join(dir, "cover.jpg"), []byte("jpg"))
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	lib := library.New(dir)
	if err := lib.Scan(); err != nil {
		t.Fatalf("Scan: %v", err)
	}

	songs := lib.Songs()
	if len(songs) != 1 {
		t.Fatalf("expected exactly one managed song, got %d", len(songs))
	}
	if songs[0].Metadata.VideoID != "abc123" || songs[0].Metadata.Title != "Ours" {
		t.Fatalf("unexpected song: %+v", songs[0].Metadata)
	}
}

func TestScanSeesHiddenSongs(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteSongFile(t, filepath.Join(dir, ".hidden.mp3"), func(tag *id3v2.Tag) {
		tags.VideoID.Write(tag, "hid111")
	})

	lib := library.New(dir)
	if err := lib.Scan(); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	songs := lib.Songs()
	if len(songs) != 1 {
		t.Fatalf("expected hidden song to be scanned, got %d songs", len(songs))
	}
	if !songs[0].IsHidden() {
		t.Fatal("expected song to report hidden")
	}
}

func TestScanMissingDirectoryIsFatal(t *testing.T) {
	lib := library.New(filepath.Join(t.TempDir(), "absent"))
	if err := lib.Scan(); err == nil {
		t.Fatal("expected error for missing library directory")
	}
}

func TestScanReplacesSnapshotWholesale(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "one.mp3")
	testsupport.WriteSongFile(t, path, func(tag *id3v2.Tag) {
		tags.VideoID.Write(tag, "one")
	})

	lib := library.New(dir)
	if err := lib.Scan(); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	before := lib.Songs()
	if len(before) != 1 {
		t.Fatalf("expected 1 song, got %d", len(before))
	}

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	testsupport.WriteSongFile(t, filepath.Join(dir, "two.mp3"), func(tag *id3v2.Tag) {
		tags.VideoID.Write(tag, "two")
	})
	if err := lib.Scan(); err != nil {
		t.Fatalf("rescan: %v", err)
	}

	after := lib.Songs()
	if len(after) != 1 || after[0].Metadata.VideoID != "two" {
		t.Fatalf("expected rebuilt snapshot, got %+v", after)
	}
	// The earlier snapshot copy is untouched by the rescan.
	if before[0].Metadata.VideoID != "one" {
		t.Fatalf("expected old snapshot to keep its contents, got %+v", before[0].Metadata)
	}
}

func TestMetadataRoundTripThroughFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "song.mp3")
	testsupport.WriteSongFile(t, path, nil)

	want := library.SongMetadata{
		Title:        "Resonance",
		Artist:       "Some Band",
		Album:        "First Pressing",
		VideoID:      "dQw4w9WgXcQ",
		Art:          []byte{0xff, 0xd8, 0xff, 0xe0},
		ArtMime:      "image/jpeg",
		Cropped:      true,
		Edited:       true,
		DownloadedAt: 1700000000,
	}
	if err := want.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := library.ReadSongFile(path)
	if err != nil {
		t.Fatalf("ReadSongFile: %v", err)
	}
	if got.Title != want.Title || got.Artist != want.Artist || got.Album != want.Album {
		t.Fatalf("display fields mismatch: %+v", got)
	}
	if got.VideoID != want.VideoID || got.DownloadedAt != want.DownloadedAt {
		t.Fatalf("custom fields mismatch: %+v", got)
	}
	if !got.Cropped || !got.Edited {
		t.Fatalf("flags mismatch: %+v", got)
	}
	if string(got.Art) != string(want.Art) || got.ArtMime != want.ArtMime {
		t.Fatalf("art mismatch: mime=%q len=%d", got.ArtMime, len(got.Art))
	}
}

func TestMetadataFalseFlagsReadAsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "song.mp3")
	testsupport.WriteSongFile(t, path, nil)

	meta := library.SongMetadata{
		Title:   "Plain",
		Artist:  "Nobody",
		Album:   "Nothing",
		VideoID: "xyz",
		// Cropped, Edited false; DownloadedAt zero.
	}
	if err := meta.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := library.ReadSongFile(path)
	if err != nil {
		t.Fatalf("ReadSongFile: %v", err)
	}
	if got.Cropped || got.Edited || got.DownloadedAt != 0 {
		t.Fatalf("expected unset values to read as defaults, got %+v", got)
	}
}

func TestAcquireLockExcludesSecondHolder(t *testing.T) {
	dir := t.TempDir()
	lib := library.New(dir)

	lock, err := lib.AcquireLock()
	if err != nil {
		t.Fatalf("AcquireLock: %v", err)
	}

	// flock treats separate descriptors independently, so a second acquire
	// conflicts even within one process.
	if _, err := lib.AcquireLock(); !errors.Is(err, library.ErrLocked) {
		t.Fatalf("expected ErrLocked for second holder, got %v", err)
	}

	if err := lock.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	again, err := lib.AcquireLock()
	if err != nil {
		t.Fatalf("re-acquire after release: %v", err)
	}
	if err := again.Release(); err != nil {
		t.Fatalf("release again: %v", err)
	}

	var nilLock *library.Lock
	if err := nilLock.Release(); err != nil {
		t.Fatalf("nil release: %v", err)
	}
}
