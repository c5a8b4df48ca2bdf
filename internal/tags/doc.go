// Package tags implements the typed codec for shellac's custom metadata
// fields, stored as namespaced ID3v2 comment frames inside each MP3 file.
//
// The library keeps no database: a file's comment frames are the sole
// persistent record of where it came from and what has been done to it. The
// package exposes a closed catalogue of field descriptors (the fetch-source
// id, the crop and edit flags, and the download timestamp) plus helpers for
// the standard title/artist/album frames and the front-cover picture.
//
// Unset values are represented by the absence of the comment frame, never by
// a sentinel: writing a false flag or a zero timestamp deletes the frame.
package tags
