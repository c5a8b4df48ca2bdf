package ytdlp

import "strings"

// ExtractVideoID pulls the video id out of common link shapes. Inputs that
// look like a bare id (or an unrecognized string) are returned verbatim; the
// tool itself is the final judge of validity.
func ExtractVideoID(input string) string {
	input = strings.TrimSpace(input)

	if idx := strings.Index(input, "watch?v="); idx >= 0 {
		id := input[idx+len("watch?v="):]
		return trimQuery(id)
	}
	if idx := strings.Index(input, "youtu.be/"); idx >= 0 {
		id := input[idx+len("youtu.be/"):]
		return trimQuery(id)
	}
	if idx := strings.Index(input, "/shorts/"); idx >= 0 {
		id := input[idx+len("/shorts/"):]
		return trimQuery(id)
	}
	return input
}

func trimQuery(id string) string {
	for _, sep := range []byte{'&', '?', '/', '#'} {
		if idx := strings.IndexByte(id, sep); idx >= 0 {
			id = id[:idx]
		}
	}
	return id
}
