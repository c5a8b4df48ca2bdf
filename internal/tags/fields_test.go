package tags_test

import (
	"testing"

	"github.com/bogem/id3v2/v2"

	"shellac/internal/tags"
)

func TestStringFieldRoundTrip(t *testing.T) {
	tag := id3v2.NewEmptyTag()
	tags.VideoID.Write(tag, "dQw4w9WgXcQ")

	got, err := tags.VideoID.Read(tag)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got != "dQw4w9WgXcQ" {
		t.Fatalf("expected video id to round-trip, got %q", got)
	}
}

func TestRequiredFieldMissing(t *testing.T) {
	tag := id3v2.NewEmptyTag()
	_, err := tags.VideoID.Read(tag)
	if err == nil {
		t.Fatal("expected error for missing required field")
	}
	if !tags.IsMissingField(err) {
		t.Fatalf("expected MissingFieldError, got %T: %v", err, err)
	}
}

func TestFlagFieldPresenceEncoding(t *testing.T) {
	tag := id3v2.NewEmptyTag()
	if tags.Cropped.Read(tag) {
		t.Fatal("expected missing flag to read false")
	}

	tags.Cropped.Write(tag, true)
	if !tags.Cropped.Read(tag) {
		t.Fatal("expected flag to read true after write")
	}

	// Writing false must delete the frame, indistinguishable from never
	// having written it.
	tags.Cropped.Write(tag, false)
	if tags.Cropped.Read(tag) {
		t.Fatal("expected false write to unset the flag")
	}
	for _, frame := range tag.GetFrames(tag.CommonID("Comments")) {
		comment, ok := frame.(id3v2.CommentFrame)
		if ok && comment.Description == tags.Cropped.Key() {
			t.Fatal("expected no residual comment frame after false write")
		}
	}
}

func TestUnixTimeFieldDefaultsAndZero(t *testing.T) {
	tag := id3v2.NewEmptyTag()
	secs, err := tags.DownloadTime.Read(tag)
	if err != nil || secs != 0 {
		t.Fatalf("expected missing timestamp to read 0, got %d err=%v", secs, err)
	}

	tags.DownloadTime.Write(tag, 1650000000)
	secs, err = tags.DownloadTime.Read(tag)
	if err != nil || secs != 1650000000 {
		t.Fatalf("expected timestamp round-trip, got %d err=%v", secs, err)
	}

	tags.DownloadTime.Write(tag, 0)
	secs, err = tags.DownloadTime.Read(tag)
	if err != nil || secs != 0 {
		t.Fatalf("expected zero write to unset, got %d err=%v", secs, err)
	}
}

func TestUnixTimeFieldMalformed(t *testing.T) {
	tag := id3v2.NewEmptyTag()
	tag.AddCommentFrame(id3v2.CommentFrame{
		Encoding:    id3v2.EncodingUTF8,
		Language:    "eng",
		Description: tags.DownloadTime.Key(),
		Text:        "not-a-number",
	})
	if _, err := tags.DownloadTime.Read(tag); err == nil {
		t.Fatal("expected parse error for malformed timestamp")
	}
}

func TestWriteReplacesExistingEntryWithoutDuplicates(t *testing.T) {
	tag := id3v2.NewEmptyTag()
	tags.VideoID.Write(tag, "first")
	tags.VideoID.Write(tag, "second")

	count := 0
	for _, frame := range tag.GetFrames(tag.CommonID("Comments")) {
		comment, ok := frame.(id3v2.CommentFrame)
		if ok && comment.Description == tags.VideoID.Key() {
			count++
			if comment.Text != "second" {
				t.Fatalf("expected replacement value, got %q", comment.Text)
			}
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one comment for key, got %d", count)
	}
}

func TestWritePreservesUnrelatedComments(t *testing.T) {
	tag := id3v2.NewEmptyTag()
	tag.AddCommentFrame(id3v2.CommentFrame{
		Encoding:    id3v2.EncodingUTF8,
		Language:    "eng",
		Description: "someone else's comment",
		Text:        "keep me",
	})
	tags.VideoID.Write(tag, "abc")
	tags.Cropped.Write(tag, true)

	found := false
	for _, frame := range tag.GetFrames(tag.CommonID("Comments")) {
		comment, ok := frame.(id3v2.CommentFrame)
		if ok && comment.Description == "someone else's comment" && comment.Text == "keep me" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected unrelated comment to survive field writes")
	}
}

func TestStandardFrameFallbacks(t *testing.T) {
	tag := id3v2.NewEmptyTag()
	if got := tags.Title(tag); got != tags.UnknownTitle {
		t.Fatalf("expected unknown title, got %q", got)
	}
	tag.SetTitle("Song")
	tag.SetArtist("Artist")
	if got := tags.Title(tag); got != "Song" {
		t.Fatalf("expected set title, got %q", got)
	}
	if got := tags.Artist(tag); got != "Artist" {
		t.Fatalf("expected set artist, got %q", got)
	}
	if got := tags.Album(tag); got != tags.UnknownAlbum {
		t.Fatalf("expected unknown album, got %q", got)
	}
}

func TestFrontCoverRoundTrip(t *testing.T) {
	tag := id3v2.NewEmptyTag()
	if _, _, ok := tags.FrontCover(tag); ok {
		t.Fatal("expected no cover on empty tag")
	}

	tags.SetFrontCover(tag, []byte{0xff, 0xd8, 0xff}, "image/jpeg")
	data, mime, ok := tags.FrontCover(tag)
	if !ok || mime != "image/jpeg" || len(data) != 3 {
		t.Fatalf("expected cover round-trip, got ok=%v mime=%q len=%d", ok, mime, len(data))
	}

	// Replacing with empty data clears the frame.
	tags.SetFrontCover(tag, nil, "")
	if _, _, ok := tags.FrontCover(tag); ok {
		t.Fatal("expected cover cleared")
	}
}
