package config

const (
	defaultLibraryDir          = "~/Music/Shellac"
	defaultLogDir              = "~/.local/share/shellac/logs"
	defaultYtdlpBinary         = "yt-dlp"
	defaultFFmpegBinary        = "ffmpeg"
	defaultDownloadTimeout     = 3600
	defaultTrimTimeout         = 300
	defaultMetadataWaitTimeout = 10
	defaultSortBy              = "downloaded"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDir: defaultLibraryDir,
			LogDir:     defaultLogDir,
		},
		Tools: Tools{
			Ytdlp:               defaultYtdlpBinary,
			FFmpeg:              defaultFFmpegBinary,
			DownloadTimeout:     defaultDownloadTimeout,
			TrimTimeout:         defaultTrimTimeout,
			MetadataWaitTimeout: defaultMetadataWaitTimeout,
		},
		Library: Library{
			SortBy: defaultSortBy,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
