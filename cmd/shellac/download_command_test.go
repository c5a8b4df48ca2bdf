package main

import (
	"strings"
	"testing"

	"shellac/internal/ingest"
	"shellac/internal/library"
)

func TestRenderJobLine(t *testing.T) {
	meta := &library.SongMetadata{Title: "A Song"}

	tests := []struct {
		name string
		snap ingest.Snapshot
		want string
	}{
		{"pending", ingest.Snapshot{Stage: ingest.StagePending}, "vid1: queued"},
		{"no metadata yet", ingest.Snapshot{Stage: ingest.StageDownloading}, "vid1: looking up video info..."},
		{"downloading", ingest.Snapshot{Stage: ingest.StageDownloading, Percent: 42.3, Metadata: meta}, "A Song: downloading 42%"},
		{"tagging", ingest.Snapshot{Stage: ingest.StageTagging, Metadata: meta}, "A Song: writing tags"},
		{"done", ingest.Snapshot{Stage: ingest.StageDone, Metadata: meta}, "A Song: done"},
		{"failed without metadata", ingest.Snapshot{Stage: ingest.StageFailed}, "vid1: failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderJobLine("vid1", tt.snap); got != tt.want {
				t.Fatalf("renderJobLine = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLiveRender(t *testing.T) {
	tests := []struct {
		name     string
		terminal bool
		jobCount int
		want     bool
	}{
		{"terminal single job", true, 1, true},
		{"terminal multiple jobs", true, 3, false},
		{"plain single job", false, 1, false},
		{"plain multiple jobs", false, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := liveRender(tt.terminal, tt.jobCount); got != tt.want {
				t.Fatalf("liveRender(%v, %d) = %v, want %v", tt.terminal, tt.jobCount, got, tt.want)
			}
		})
	}
}

func TestRenderStatusLine(t *testing.T) {
	plain := renderStatusLine("vid1", statusOK, "A Song", false)
	if plain != "vid1: [OK] A Song" {
		t.Fatalf("plain = %q", plain)
	}
	colored := renderStatusLine("vid1", statusError, "boom", true)
	if !strings.HasPrefix(colored, ansiRed) || !strings.HasSuffix(colored, ansiReset) {
		t.Fatalf("colored = %q", colored)
	}
}
