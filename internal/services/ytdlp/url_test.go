package ytdlp

import "testing"

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch url with extras", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PL123&t=42", "dQw4w9WgXcQ"},
		{"short link", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"short link with query", "https://youtu.be/dQw4w9WgXcQ?si=xyz", "dQw4w9WgXcQ"},
		{"shorts url", "https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"bare id", "dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"whitespace", "  dQw4w9WgXcQ  ", "dQw4w9WgXcQ"},
		{"unrecognized", "not a url", "not a url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractVideoID(tt.input); got != tt.want {
				t.Errorf("ExtractVideoID(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseProgress(t *testing.T) {
	tests := []struct {
		name string
		line string
		want float64
		ok   bool
	}{
		{"mid download", "[download]  42.3% of 3.45MiB at 1.23MiB/s ETA 00:02", 42.3, true},
		{"complete", "[download] 100% of 3.45MiB in 00:03", 100, true},
		{"zero", "[download]   0.0% of 3.45MiB at Unknown B/s ETA Unknown", 0, true},
		{"destination line", "[download] Destination: /music/abc.webm", 0, false},
		{"other stage", "[ExtractAudio] Destination: /music/abc.mp3", 0, false},
		{"empty", "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			update, ok := parseProgress(tt.line)
			if ok != tt.ok {
				t.Fatalf("parseProgress(%q) ok = %v, want %v", tt.line, ok, tt.ok)
			}
			if ok && update.Percent != tt.want {
				t.Errorf("parseProgress(%q) = %v, want %v", tt.line, update.Percent, tt.want)
			}
		})
	}
}

func TestParseInfoJSONLine(t *testing.T) {
	path, ok := parseInfoJSONLine("[info] Writing video metadata as JSON to: /music/abc.info.json")
	if !ok || path != "/music/abc.info.json" {
		t.Fatalf("got %q, %v", path, ok)
	}
	if _, ok := parseInfoJSONLine("[info] Downloading thumbnail"); ok {
		t.Fatal("unrelated line should not match")
	}
	if _, ok := parseInfoJSONLine("Writing video metadata as JSON to: "); ok {
		t.Fatal("empty path should not match")
	}
}
