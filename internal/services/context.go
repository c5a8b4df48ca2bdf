package services

import "context"

type contextKey string

const (
	jobIDKey   contextKey = "job_id"
	videoIDKey contextKey = "video_id"
)

// WithJobID annotates context with the ingestion job identifier.
func WithJobID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, jobIDKey, id)
}

// JobIDFromContext extracts the ingestion job identifier if present.
func JobIDFromContext(ctx context.Context) (string, bool) {
	if str, ok := ctx.Value(jobIDKey).(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithVideoID annotates context with the fetch-source identifier.
func WithVideoID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, videoIDKey, id)
}

// VideoIDFromContext extracts the fetch-source identifier if present.
func VideoIDFromContext(ctx context.Context) (string, bool) {
	if str, ok := ctx.Value(videoIDKey).(string); ok && str != "" {
		return str, true
	}
	return "", false
}
