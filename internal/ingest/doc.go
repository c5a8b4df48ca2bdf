// Package ingest runs asynchronous download jobs that fetch a song, normalize
// its thumbnail into embedded artwork, and write the library's tag fields
// into the resulting file.
//
// Each job carries a mutex-guarded Progress that the CLI polls while the job
// goroutine streams tool output. Jobs are keyed by a fresh uuid rather than
// the video id, so duplicate requests for the same video stay independent.
package ingest
