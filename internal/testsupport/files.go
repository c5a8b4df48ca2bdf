// Package testsupport provides shared helpers for exercising the library and
// ingestion code against real files in temp directories.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2/v2"
)

// WriteFile creates path (and parent directories) with the given content.
func WriteFile(t testing.TB, path string, content []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteSongFile creates an MP3-shaped file at path: a real ID3v2 tag built by
// the supplied function, followed by placeholder audio bytes. The result is
// parseable by the tag codec without needing actual MPEG frames.
func WriteSongFile(t testing.TB, path string, build func(tag *id3v2.Tag)) {
	t.Helper()

	tag := id3v2.NewEmptyTag()
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	if build != nil {
		build(tag)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer file.Close()

	if _, err := tag.WriteTo(file); err != nil {
		t.Fatalf("write tag to %s: %v", path, err)
	}
	audio := make([]byte, 512)
	for i := range audio {
		audio[i] = 0x42
	}
	if _, err := file.Write(audio); err != nil {
		t.Fatalf("write audio bytes to %s: %v", path, err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("close %s: %v", path, err)
	}
}
