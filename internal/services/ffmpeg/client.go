package ffmpeg

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"shellac/internal/services"
)

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

// Client wraps ffmpeg CLI interactions.
type Client struct {
	binary  string
	timeout time.Duration
	exec    Executor
}

// New constructs an ffmpeg client.
func New(binary string, timeout time.Duration, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("ffmpeg binary required")
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

// Trim copies the [start, end) slice of src into dst without re-encoding.
// src and dst must be different files; ffmpeg cannot edit in place.
func (c *Client) Trim(ctx context.Context, src, dst string, start, end time.Duration) error {
	if src == "" || dst == "" {
		return services.Wrap(services.ErrValidation, "ffmpeg", "trim", "source and destination required", nil)
	}
	if src == dst {
		return services.Wrap(services.ErrValidation, "ffmpeg", "trim", "source and destination must differ", nil)
	}
	if end <= start {
		return services.Wrap(services.ErrValidation, "ffmpeg", "trim",
			fmt.Sprintf("end %v not after start %v", end, start), nil)
	}

	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := []string{
		"-y",
		"-ss", formatSeconds(start),
		"-to", formatSeconds(end),
		"-i", src,
		"-acodec", "copy",
		dst,
	}
	if err := c.exec.Run(runCtx, c.binary, args, nil); err != nil {
		if runCtx.Err() != nil && errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return services.Wrap(services.ErrTimeout, "ffmpeg", "trim", src, err)
		}
		return services.Wrap(services.ErrExternalTool, "ffmpeg", "trim", src, err)
	}
	return nil
}

// formatSeconds renders a duration as fractional seconds with millisecond
// precision, the way ffmpeg expects position arguments.
func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64)
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
