package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"shellac/internal/ingest"
)

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download <url-or-id>...",
		Short: "Download songs into the library",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDownload(cmd, ctx, args)
		},
	}
	return cmd
}

func runDownload(cmd *cobra.Command, ctx *commandContext, inputs []string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}
	downloader, err := ctx.newDownloader()
	if err != nil {
		return err
	}
	manager, err := ingest.NewManager(downloader, cfg.Paths.LibraryDir,
		ingest.WithLogger(logger),
		ingest.WithMetadataWaitTimeout(time.Duration(cfg.Tools.MetadataWaitTimeout)*time.Second))
	if err != nil {
		return err
	}

	jobs := make([]*ingest.Job, 0, len(inputs))
	for _, input := range inputs {
		job, err := manager.Start(cmd.Context(), input)
		if err != nil {
			return err
		}
		jobs = append(jobs, job)
	}

	out := cmd.OutOrStdout()
	terminal := shouldColorize(out)
	watchJobs(out, jobs, liveRender(terminal, len(jobs)))

	failed := 0
	for _, job := range jobs {
		snap := job.Progress.Snapshot()
		if snap.Err != nil {
			failed++
			fmt.Fprintln(out, renderStatusLine(job.VideoID, statusError, snap.Err.Error(), terminal))
			continue
		}
		fmt.Fprintln(out, renderStatusLine(job.VideoID, statusOK, snap.Metadata.Title, terminal))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d downloads failed", failed, len(jobs))
	}
	return nil
}

// liveRender reports whether progress should be rewritten in place. The
// rewrite uses a single terminal row, so with several jobs each update would
// clobber the others; those get plain line output instead.
func liveRender(terminal bool, jobCount int) bool {
	return terminal && jobCount == 1
}

// watchJobs polls job progress until every job finishes. In live mode the
// current state is rewritten in place; otherwise a line is printed whenever a
// job moves to a new stage or gains a readable title.
func watchJobs(out io.Writer, jobs []*ingest.Job, live bool) {
	lastPrinted := make([]string, len(jobs))

	for {
		remaining := 0
		for _, job := range jobs {
			select {
			case <-job.Done():
			default:
				remaining++
			}
		}

		for i, job := range jobs {
			snap := job.Progress.Snapshot()
			if live {
				fmt.Fprintf(out, "\r\x1b[K%s", renderJobLine(job.VideoID, snap))
				continue
			}
			// Bucket the percentage so plain output only logs every 10%.
			snap.Percent = float64(int(snap.Percent/10) * 10)
			line := renderJobLine(job.VideoID, snap)
			if line != lastPrinted[i] {
				fmt.Fprintln(out, line)
				lastPrinted[i] = line
			}
		}

		if remaining == 0 {
			if live {
				fmt.Fprintln(out)
			}
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
}

// renderJobLine is the one-line status for a job.
func renderJobLine(videoID string, snap ingest.Snapshot) string {
	name := videoID
	if snap.Metadata != nil && snap.Metadata.Title != "" {
		name = snap.Metadata.Title
	}
	switch snap.Stage {
	case ingest.StageDownloading:
		if snap.Metadata == nil {
			return fmt.Sprintf("%s: looking up video info...", videoID)
		}
		return fmt.Sprintf("%s: downloading %.0f%%", name, snap.Percent)
	case ingest.StageTagging:
		return fmt.Sprintf("%s: writing tags", name)
	case ingest.StageDone:
		return fmt.Sprintf("%s: done", name)
	case ingest.StageFailed:
		return fmt.Sprintf("%s: failed", name)
	default:
		return fmt.Sprintf("%s: queued", videoID)
	}
}
