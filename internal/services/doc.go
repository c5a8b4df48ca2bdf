// Package services defines shared utilities consumed by the ingestion
// pipeline and external tool integrations.
//
// Key responsibilities:
//   - Context helpers that stamp job and video identifiers for logging.
//   - Structured error markers plus the Wrap helper that keep failure
//     classification (external tool vs validation vs missing artifact)
//     uniform across components.
//
// Use these helpers when wiring new tool clients so error handling and
// observability stay consistent.
package services
