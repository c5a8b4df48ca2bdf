// Package ffmpeg mediates access to the ffmpeg CLI used for trimming audio.
//
// Trims are stream copies so they finish quickly and never degrade quality.
package ffmpeg
