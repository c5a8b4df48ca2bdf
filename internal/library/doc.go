// Package library maintains the in-memory view of a managed song directory
// and the lifecycle of each track within it.
//
// A library is a single flat directory of MP3 files. Files are recognized as
// managed by the presence of the fetch-source comment written by the tag
// codec; everything else in the directory is ignored. The package owns the
// destructive operations on a song (crop, metadata edit, delete, hide) and
// the append-only ".original" backup that makes them reversible.
//
// The song snapshot built by Scan is a cache: any mutation performed outside
// the Library (a finished download, a crop, a delete) leaves it stale until
// the next Scan.
package library
