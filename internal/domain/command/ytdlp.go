// Package command holds the yt-dlp vocabulary used by the engine adapter.
package command

// Format selectors
const (
	FormatVideo = "best[ext=mp4][vcodec!=none][acodec!=none]"
	FormatAudio = "bestaudio/best"
)

// Output templates
const (
	OutputTemplate = "%(id)s.%(ext)s"
	AfterMove      = "after_move:%(filepath)s"
)

// Progress statuses reported by the engine.
const (
	ProgressDownloading = "downloading"
	ProgressFinished    = "finished"
)
