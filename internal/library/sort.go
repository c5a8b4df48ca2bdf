package library

import (
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the field songs are ordered by.
type SortKey string

const (
	SortTitle      SortKey = "title"
	SortArtist     SortKey = "artist"
	SortAlbum      SortKey = "album"
	SortDownloaded SortKey = "downloaded"
)

// ParseSortKey validates a user-supplied sort key.
func ParseSortKey(value string) (SortKey, error) {
	switch SortKey(value) {
	case SortTitle, SortArtist, SortAlbum, SortDownloaded:
		return SortKey(value), nil
	default:
		return "", fmt.Errorf("unknown sort key %q (expected title, artist, album, or downloaded)", value)
	}
}

// SortSongs orders songs in place. String keys collate case-insensitively;
// the downloaded key orders newest first. Reverse inverts whichever ordering
// is active. The sort is stable so equal keys keep their scan order.
func SortSongs(songs []*Song, key SortKey, reverse bool) {
	collator := collate.New(language.Und, collate.IgnoreCase)

	var less func(a, b *Song) bool
	switch key {
	case SortArtist:
		less = func(a, b *Song) bool {
			return collator.CompareString(a.Metadata.Artist, b.Metadata.Artist) < 0
		}
	case SortAlbum:
		less = func(a, b *Song) bool {
			return collator.CompareString(a.Metadata.Album, b.Metadata.Album) < 0
		}
	case SortDownloaded:
		// Newest first by default.
		less = func(a, b *Song) bool {
			return a.Metadata.DownloadedAt > b.Metadata.DownloadedAt
		}
	default:
		less = func(a, b *Song) bool {
			return collator.CompareString(a.Metadata.Title, b.Metadata.Title) < 0
		}
	}

	sort.SliceStable(songs, func(i, j int) bool { return less(songs[i], songs[j]) })

	if reverse {
		for i, j := 0, len(songs)-1; i < j; i, j = i+1, j-1 {
			songs[i], songs[j] = songs[j], songs[i]
		}
	}
}
