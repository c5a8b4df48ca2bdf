package ingest

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"shellac/internal/logging"
	"shellac/internal/services"
	"shellac/internal/services/ytdlp"
)

// Sentinels for expected output files yt-dlp failed to leave behind.
var (
	ErrAudioMissing     = errors.New("download produced no audio file")
	ErrThumbnailMissing = errors.New("download produced no thumbnail")
)

const defaultMetadataWait = 10 * time.Second

// Job is one in-flight (or finished) ingestion. Jobs are identified by a
// fresh uuid, never by video id, so the same video can be fetched twice
// concurrently without the two runs observing each other.
type Job struct {
	ID       string
	VideoID  string
	URL      string
	Progress *Progress

	cancel context.CancelFunc
	done   chan struct{}
}

// Done is closed when the job goroutine has finished, success or not.
func (j *Job) Done() <-chan struct{} { return j.done }

// Cancel aborts the job's context. The goroutine still runs to completion of
// its failure path; wait on Done before inspecting the final snapshot.
func (j *Job) Cancel() { j.cancel() }

// Wait blocks until the job finishes or ctx expires, then returns the job's
// terminal error (nil on success).
func (j *Job) Wait(ctx context.Context) error {
	select {
	case <-j.done:
		return j.Progress.Snapshot().Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Option configures the manager.
type Option func(*Manager)

// WithLogger injects a logger for job lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logging.WithComponent(logger, "ingest")
		}
	}
}

// WithMetadataWaitTimeout bounds how long a job waits for the metadata
// sidecar to become readable after the tool announces it.
func WithMetadataWaitTimeout(timeout time.Duration) Option {
	return func(m *Manager) {
		if timeout > 0 {
			m.metadataWait = timeout
		}
	}
}

// WithClock overrides the wall clock used for download timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// Manager starts download jobs and tracks them until the process exits.
// Finished jobs stay queryable; nothing is ever evicted.
type Manager struct {
	downloader   ytdlp.Downloader
	libraryDir   string
	metadataWait time.Duration
	logger       *slog.Logger
	now          func() time.Time

	mu   sync.Mutex
	jobs map[string]*Job
}

// NewManager constructs a Manager that downloads into libraryDir.
func NewManager(downloader ytdlp.Downloader, libraryDir string, opts ...Option) (*Manager, error) {
	if downloader == nil {
		return nil, errors.New("downloader required")
	}
	if strings.TrimSpace(libraryDir) == "" {
		return nil, errors.New("library directory required")
	}
	m := &Manager{
		downloader:   downloader,
		libraryDir:   libraryDir,
		metadataWait: defaultMetadataWait,
		logger:       logging.NewNop(),
		now:          time.Now,
		jobs:         make(map[string]*Job),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Start extracts the video id from input (a link or a bare id), spawns the
// job goroutine, and returns immediately.
func (m *Manager) Start(ctx context.Context, input string) (*Job, error) {
	videoID := ytdlp.ExtractVideoID(input)
	if videoID == "" {
		return nil, services.Wrap(services.ErrValidation, "ingest", "start", "empty video id", nil)
	}

	url := strings.TrimSpace(input)
	if !strings.Contains(url, "://") {
		url = "https://www.youtube.com/watch?v=" + videoID
	}

	id := uuid.NewString()
	jobCtx, cancel := context.WithCancel(services.WithJobID(services.WithVideoID(ctx, videoID), id))
	job := &Job{
		ID:       id,
		VideoID:  videoID,
		URL:      url,
		Progress: newProgress(),
		cancel:   cancel,
		done:     make(chan struct{}),
	}

	m.mu.Lock()
	m.jobs[job.ID] = job
	m.mu.Unlock()

	m.logger.Info("starting download job",
		slog.String(logging.FieldJobID, job.ID),
		slog.String(logging.FieldVideoID, job.VideoID))

	go m.run(jobCtx, job)
	return job, nil
}

// Job looks up a tracked job by id.
func (m *Manager) Job(id string) (*Job, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[id]
	return job, ok
}

// Jobs returns all tracked jobs in no particular order.
func (m *Manager) Jobs() []*Job {
	m.mu.Lock()
	defer m.mu.Unlock()
	jobs := make([]*Job, 0, len(m.jobs))
	for _, job := range m.jobs {
		jobs = append(jobs, job)
	}
	return jobs
}
