// Package logging wires log/slog with console and JSON handlers plus the
// structured field conventions (component, job_id, video_id) used across the
// library and ingestion code.
package logging
