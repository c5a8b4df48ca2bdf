package ingest

import (
	"sync"

	"shellac/internal/library"
)

// Stage identifies where a job is in its lifecycle.
type Stage string

const (
	StagePending     Stage = "pending"
	StageDownloading Stage = "downloading"
	StageTagging     Stage = "tagging"
	StageDone        Stage = "done"
	StageFailed      Stage = "failed"
)

// Snapshot is a point-in-time copy of a job's progress, safe to hold after
// the job moves on. Metadata is nil until the sidecar has been read.
type Snapshot struct {
	Stage    Stage
	Percent  float64
	Metadata *library.SongMetadata
	Err      error
}

// Progress is the shared state between a job goroutine and its observers.
// The job goroutine is the sole writer.
type Progress struct {
	mu       sync.Mutex
	stage    Stage
	percent  float64
	metadata *library.SongMetadata
	err      error
}

func newProgress() *Progress {
	return &Progress{stage: StagePending}
}

// Snapshot returns a copy of the current state. The embedded metadata is
// cloned so callers can read it without racing the job.
func (p *Progress) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	snap := Snapshot{Stage: p.stage, Percent: p.percent, Err: p.err}
	if p.metadata != nil {
		clone := *p.metadata
		snap.Metadata = &clone
	}
	return snap
}

func (p *Progress) setStage(stage Stage) {
	p.mu.Lock()
	p.stage = stage
	p.mu.Unlock()
}

func (p *Progress) setPercent(percent float64) {
	p.mu.Lock()
	p.percent = percent
	p.mu.Unlock()
}

func (p *Progress) setMetadata(meta library.SongMetadata) {
	p.mu.Lock()
	p.metadata = &meta
	p.mu.Unlock()
}

// metadataCopy returns the current metadata, or nil when none published yet.
func (p *Progress) metadataCopy() *library.SongMetadata {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.metadata == nil {
		return nil
	}
	clone := *p.metadata
	return &clone
}

func (p *Progress) finish() {
	p.mu.Lock()
	p.stage = StageDone
	p.percent = 100
	p.mu.Unlock()
}

// fail records the terminal error. Any metadata published before the failure
// stays readable so observers can still name the song that failed.
func (p *Progress) fail(err error) {
	p.mu.Lock()
	p.stage = StageFailed
	p.err = err
	p.mu.Unlock()
}
