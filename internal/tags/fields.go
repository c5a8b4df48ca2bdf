package tags

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/bogem/id3v2/v2"
)

// Custom comment descriptions. The bracketed prefix keeps them clear of
// anything another tagger would write.
const (
	keyVideoID      = "[Shellac] YouTube ID"
	keyCropped      = "[Shellac] Cropped"
	keyEdited       = "[Shellac] Metadata edited"
	keyDownloadTime = "[Shellac] Download time"
)

const commentLanguage = "eng"

// MissingFieldError reports a required custom field with no comment frame
// present. The library scanner uses it to recognize files shellac does not
// manage.
type MissingFieldError struct {
	Key string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required metadata item: %s", e.Key)
}

// IsMissingField reports whether err (or anything it wraps) is a
// MissingFieldError.
func IsMissingField(err error) bool {
	var missing *MissingFieldError
	return errors.As(err, &missing)
}

// field addresses one custom comment entry by its description.
type field struct {
	key      string
	required bool
}

// StringField round-trips a string value verbatim.
type StringField struct{ field }

// FlagField encodes a boolean by the presence or absence of the comment; the
// comment text itself is irrelevant and written empty.
type FlagField struct{ field }

// UnixTimeField round-trips a unix timestamp in seconds. Zero means unset and
// is encoded by deleting the comment.
type UnixTimeField struct{ field }

// The closed catalogue of custom fields.
var (
	VideoID      = StringField{field{key: keyVideoID, required: true}}
	Cropped      = FlagField{field{key: keyCropped}}
	Edited       = FlagField{field{key: keyEdited}}
	DownloadTime = UnixTimeField{field{key: keyDownloadTime}}
)

// Key returns the full comment description for the field.
func (f field) Key() string { return f.key }

func (f StringField) Read(tag *id3v2.Tag) (string, error) {
	text, ok := commentText(tag, f.key)
	if !ok {
		if f.required {
			return "", &MissingFieldError{Key: f.key}
		}
		return "", nil
	}
	return text, nil
}

func (f StringField) Write(tag *id3v2.Tag, value string) {
	setComment(tag, f.key, value, value != "" || f.required)
}

func (f FlagField) Read(tag *id3v2.Tag) bool {
	_, ok := commentText(tag, f.key)
	return ok
}

func (f FlagField) Write(tag *id3v2.Tag, value bool) {
	setComment(tag, f.key, "", value)
}

func (f UnixTimeField) Read(tag *id3v2.Tag) (int64, error) {
	text, ok := commentText(tag, f.key)
	if !ok {
		return 0, nil
	}
	secs, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", f.key, err)
	}
	return secs, nil
}

func (f UnixTimeField) Write(tag *id3v2.Tag, secs int64) {
	setComment(tag, f.key, strconv.FormatInt(secs, 10), secs != 0)
}

// commentText locates the comment frame with the given description.
func commentText(tag *id3v2.Tag, key string) (string, bool) {
	for _, frame := range tag.GetFrames(tag.CommonID("Comments")) {
		comment, ok := frame.(id3v2.CommentFrame)
		if !ok {
			continue
		}
		if comment.Description == key {
			return comment.Text, true
		}
	}
	return "", false
}

// setComment deletes any existing comment under key, then re-adds it with the
// given text when present is true. Duplicate entries for one key never
// coexist.
func setComment(tag *id3v2.Tag, key, text string, present bool) {
	id := tag.CommonID("Comments")
	kept := make([]id3v2.CommentFrame, 0, 4)
	for _, frame := range tag.GetFrames(id) {
		comment, ok := frame.(id3v2.CommentFrame)
		if !ok {
			continue
		}
		if comment.Description != key {
			kept = append(kept, comment)
		}
	}
	tag.DeleteFrames(id)
	for _, comment := range kept {
		tag.AddCommentFrame(comment)
	}
	if present {
		tag.AddCommentFrame(id3v2.CommentFrame{
			Encoding:    id3v2.EncodingUTF8,
			Language:    commentLanguage,
			Description: key,
			Text:        text,
		})
	}
}
