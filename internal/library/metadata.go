package library

import (
	"fmt"

	"github.com/bogem/id3v2/v2"

	"shellac/internal/tags"
)

// SongMetadata is the application state carried inside a song file's tag
// container. It round-trips through the tag codec; boolean flags and the
// timestamp read back as zero values when never written.
type SongMetadata struct {
	Title  string
	Artist string
	Album  string

	// VideoID is the fetch-source identifier. Its presence in a file's tags
	// is what marks the file as managed by this library.
	VideoID string

	// Art holds the embedded front-cover image, if any.
	Art     []byte
	ArtMime string

	Cropped bool
	Edited  bool

	// DownloadedAt is the unix time the file was ingested; 0 for files
	// downloaded before the field existed.
	DownloadedAt int64
}

// metadataFromTag decodes a full SongMetadata from a parsed tag. A missing
// fetch-source id surfaces as tags.MissingFieldError.
func metadataFromTag(tag *id3v2.Tag) (SongMetadata, error) {
	videoID, err := tags.VideoID.Read(tag)
	if err != nil {
		return SongMetadata{}, err
	}
	downloadedAt, err := tags.DownloadTime.Read(tag)
	if err != nil {
		return SongMetadata{}, err
	}

	meta := SongMetadata{
		Title:        tags.Title(tag),
		Artist:       tags.Artist(tag),
		Album:        tags.Album(tag),
		VideoID:      videoID,
		Cropped:      tags.Cropped.Read(tag),
		Edited:       tags.Edited.Read(tag),
		DownloadedAt: downloadedAt,
	}
	if data, mime, ok := tags.FrontCover(tag); ok {
		meta.Art = data
		meta.ArtMime = mime
	}
	return meta, nil
}

func (m SongMetadata) applyToTag(tag *id3v2.Tag) {
	tag.SetTitle(m.Title)
	tag.SetArtist(m.Artist)
	tag.SetAlbum(m.Album)
	tags.VideoID.Write(tag, m.VideoID)
	tags.Cropped.Write(tag, m.Cropped)
	tags.Edited.Write(tag, m.Edited)
	tags.DownloadTime.Write(tag, m.DownloadedAt)
	if len(m.Art) > 0 {
		tags.SetFrontCover(tag, m.Art, m.ArtMime)
	}
}

// WriteFile re-serializes the metadata into the file's tag container,
// replacing the managed fields and leaving unrelated frames alone. Tags are
// saved as ID3v2.3 so ordinary media players keep reading them.
func (m SongMetadata) WriteFile(path string) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open tag in %s: %w", path, err)
	}
	defer tag.Close()

	tag.SetVersion(3)
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	m.applyToTag(tag)

	if err := tag.Save(); err != nil {
		return fmt.Errorf("save tag in %s: %w", path, err)
	}
	return nil
}

// ReadSongFile decodes SongMetadata from the file at path.
func ReadSongFile(path string) (SongMetadata, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return SongMetadata{}, fmt.Errorf("read tag in %s: %w", path, err)
	}
	defer tag.Close()

	return metadataFromTag(tag)
}
