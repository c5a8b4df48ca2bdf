package ytdlp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"shellac/internal/services"
)

// ProgressUpdate captures yt-dlp download progress output. InfoJSONPath is
// non-empty only for the single update emitted when the tool announces its
// metadata sidecar; consumers can start reading it while audio still streams.
type ProgressUpdate struct {
	Percent      float64
	Message      string
	InfoJSONPath string
}

// DownloadResult reports what the tool left behind. InfoJSONPath is filled
// from the tool's own output when it announces the metadata sidecar; it may
// be empty when the announcement line never appeared.
type DownloadResult struct {
	InfoJSONPath string
}

// Downloader defines the behaviour required by the ingestion pipeline.
type Downloader interface {
	Download(ctx context.Context, url, destDir string, progress func(ProgressUpdate)) (DownloadResult, error)
}

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, onStdout func(string)) error
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client wraps yt-dlp CLI interactions.
type Client struct {
	binary  string
	timeout time.Duration
	exec    Executor
}

// New constructs a yt-dlp client.
func New(binary string, timeout time.Duration, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("yt-dlp binary required")
	}
	client := &Client{
		binary:  binary,
		timeout: timeout,
		exec:    commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Download fetches url as an MP3 into destDir, writing the metadata sidecar
// and thumbnail next to it. Output files are named after the video id.
func (c *Client) Download(ctx context.Context, url, destDir string, progress func(ProgressUpdate)) (DownloadResult, error) {
	if strings.TrimSpace(url) == "" {
		return DownloadResult{}, services.Wrap(services.ErrValidation, "yt-dlp", "download", "url required", nil)
	}
	if destDir == "" {
		return DownloadResult{}, services.Wrap(services.ErrValidation, "yt-dlp", "download", "destination directory required", nil)
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return DownloadResult{}, fmt.Errorf("create destination: %w", err)
	}

	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := []string{
		"--extract-audio",
		"--audio-format", "mp3",
		"--write-info-json",
		"--write-thumbnail",
		"--newline",
		"--output", filepath.Join(destDir, "%(id)s.%(ext)s"),
		url,
	}

	// The executor delivers stdout and stderr lines from separate
	// goroutines, so the closure state needs a lock.
	var mu sync.Mutex
	var result DownloadResult
	var lastPercent float64
	err := c.exec.Run(runCtx, c.binary, args, func(line string) {
		if path, ok := parseInfoJSONLine(line); ok {
			mu.Lock()
			result.InfoJSONPath = path
			percent := lastPercent
			mu.Unlock()
			if progress != nil {
				progress(ProgressUpdate{Percent: percent, Message: strings.TrimSpace(line), InfoJSONPath: path})
			}
			return
		}
		if update, ok := parseProgress(line); ok {
			mu.Lock()
			lastPercent = update.Percent
			mu.Unlock()
			if progress != nil {
				progress(update)
			}
		}
	})
	if err != nil {
		if runCtx.Err() != nil && errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return result, services.Wrap(services.ErrTimeout, "yt-dlp", "download", url, err)
		}
		return result, services.Wrap(services.ErrExternalTool, "yt-dlp", "download", url, err)
	}
	return result, nil
}

const infoJSONMarker = "Writing video metadata as JSON to:"

// parseInfoJSONLine extracts the sidecar path from the tool's announcement
// line, e.g. "[info] Writing video metadata as JSON to: /music/abc.info.json".
func parseInfoJSONLine(line string) (string, bool) {
	idx := strings.Index(line, infoJSONMarker)
	if idx < 0 {
		return "", false
	}
	path := strings.TrimSpace(line[idx+len(infoJSONMarker):])
	if path == "" {
		return "", false
	}
	return path, true
}

// parseProgress extracts a percentage from download status lines such as
// "[download]  42.3% of 3.45MiB at 1.23MiB/s ETA 00:02".
func parseProgress(line string) (ProgressUpdate, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "[download]") {
		return ProgressUpdate{}, false
	}
	rest := strings.TrimSpace(strings.TrimPrefix(trimmed, "[download]"))
	pct := strings.IndexByte(rest, '%')
	if pct < 0 {
		return ProgressUpdate{}, false
	}
	percent, err := strconv.ParseFloat(strings.TrimSpace(rest[:pct]), 64)
	if err != nil || percent < 0 || percent > 100 {
		return ProgressUpdate{}, false
	}
	return ProgressUpdate{Percent: percent, Message: rest}, true
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string, onStdout func(string)) error {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start command: %w", err)
	}

	var wg sync.WaitGroup
	var scanErr error
	var once sync.Once

	scan := func(r io.Reader, forward func(string)) {
		defer wg.Done()
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			forward(scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			once.Do(func() {
				scanErr = err
			})
		}
	}

	forward := func(line string) {
		if onStdout != nil {
			onStdout(line)
			return
		}
		fmt.Fprintln(os.Stderr, line)
	}

	wg.Add(2)
	go scan(stdout, forward)
	go scan(stderr, forward)

	wg.Wait()
	if scanErr != nil {
		_ = cmd.Process.Kill()
		return fmt.Errorf("scan output: %w", scanErr)
	}

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("wait command: %w", err)
	}
	return nil
}
