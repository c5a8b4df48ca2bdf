// Package artwork converts fetched thumbnails into the single canonical
// format embedded as cover art.
//
// Thumbnail files from the fetch tool are known to carry extensions that do
// not match their contents, so decoding always sniffs the actual format and
// never trusts the file name.
package artwork

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	_ "image/png"

	_ "golang.org/x/image/webp"
)

// MIMEType is the mime type of every image produced by Normalize.
const MIMEType = "image/jpeg"

const jpegQuality = 90

// Normalize decodes image data by content sniffing and re-encodes it as JPEG.
// It returns the source format alongside the encoded bytes.
func Normalize(data []byte) ([]byte, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode thumbnail: %w", err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, "", fmt.Errorf("encode cover art: %w", err)
	}
	return buf.Bytes(), format, nil
}
