// Package ytdlp mediates access to the yt-dlp CLI used for ingesting songs.
//
// It normalizes command invocation, parses per-line progress output, and
// exposes a testable interface for the ingestion pipeline.
//
// Prefer this package over ad-hoc exec.Command usage when fetching audio so
// progress reporting and timeout handling remain consistent.
package ytdlp
