package tags

import (
	"strings"

	"github.com/bogem/id3v2/v2"
)

// Sentinel display values for files whose standard frames are unset.
const (
	UnknownTitle  = "Unknown Title"
	UnknownArtist = "Unknown Artist"
	UnknownAlbum  = "Unknown Album"
)

// Title returns the TIT2 frame or the unknown sentinel.
func Title(tag *id3v2.Tag) string {
	return fallback(tag.Title(), UnknownTitle)
}

// Artist returns the TPE1 frame or the unknown sentinel.
func Artist(tag *id3v2.Tag) string {
	return fallback(tag.Artist(), UnknownArtist)
}

// Album returns the TALB frame or the unknown sentinel.
func Album(tag *id3v2.Tag) string {
	return fallback(tag.Album(), UnknownAlbum)
}

// FrontCover extracts the front-cover picture frame if present.
func FrontCover(tag *id3v2.Tag) (data []byte, mime string, ok bool) {
	for _, frame := range tag.GetFrames(tag.CommonID("Attached picture")) {
		picture, isPicture := frame.(id3v2.PictureFrame)
		if !isPicture {
			continue
		}
		if picture.PictureType == id3v2.PTFrontCover {
			return picture.Picture, picture.MimeType, true
		}
	}
	return nil, "", false
}

// SetFrontCover replaces any attached pictures with a single front cover.
func SetFrontCover(tag *id3v2.Tag, data []byte, mime string) {
	tag.DeleteFrames(tag.CommonID("Attached picture"))
	if len(data) == 0 {
		return
	}
	tag.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    mime,
		PictureType: id3v2.PTFrontCover,
		Description: "Front cover",
		Picture:     data,
	})
}

func fallback(value, unknown string) string {
	if strings.TrimSpace(value) == "" {
		return unknown
	}
	return value
}
