// Package consts holds various global, unchanging values.
package consts

// Program
const (
	ProgramName = "vidgrab"
	EnvPrefix   = "VIDGRAB"
	DefaultPort = 5000
)

// CleanupExtensions are the media extensions removed by a cleanup call.
var CleanupExtensions = [...]string{".mp4", ".webm", ".m4a"}

// AllVidExtensions is a list of media file extensions yt-dlp may produce.
var AllVidExtensions = [...]string{".3gp", ".avi", ".f4v", ".flv", ".m4a", ".m4v", ".mkv",
	".mov", ".mp3", ".mp4", ".mpeg", ".mpg", ".ogg", ".opus", ".ts", ".wav", ".webm"}

// Extensions each download type's format selector can produce.
var (
	VideoOutputExtensions = [...]string{".mp4"}
	AudioOutputExtensions = [...]string{".m4a", ".webm", ".opus", ".mp3", ".ogg", ".wav"}
)

// Cookie defaults
const (
	DefaultCookieFile   = "cookies.txt"
	DefaultCookieSite   = "https://www.youtube.com"
	DefaultCookieDomain = "youtube.com"
)

// Search
const (
	SearchProviderYtsearch = "ytsearch"
	SearchProviderScrape   = "scrape"
	DefaultSearchLimit     = 10
)

// Watch URL base for video IDs.
const (
	YouTubeWatchURL   = "https://www.youtube.com/watch"
	YouTubeResultsURL = "https://www.youtube.com/results"
)

// Browser user agent used for scraping and headless sessions.
const UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
