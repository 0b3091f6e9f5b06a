package models

// QueryKind is the branch a submitted query is routed to.
type QueryKind int

const (
	QueryEmpty QueryKind = iota
	QuerySearch
	QueryURL
)

// VideoInfo holds the metadata resolved by the extractor.
//
// JSON keys match yt-dlp's info dictionary.
type VideoInfo struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Uploader    string        `json:"uploader"`
	Channel     string        `json:"channel"`
	Description string        `json:"description"`
	Thumbnail   string        `json:"thumbnail"`
	WebpageURL  string        `json:"webpage_url"`
	UploadDate  string        `json:"upload_date"`
	Extractor   string        `json:"extractor"`
	Duration    float64       `json:"duration"`
	ViewCount   int64         `json:"view_count"`
	Formats     []VideoFormat `json:"formats"`
}

// VideoFormat is one downloadable stream variant.
type VideoFormat struct {
	FormatID   string `json:"format_id"`
	Ext        string `json:"ext"`
	Resolution string `json:"resolution"`
	VCodec     string `json:"vcodec"`
	ACodec     string `json:"acodec"`
	Note       string `json:"format_note"`
	Filesize   int64  `json:"filesize"`
}

// HasVideo returns true if the format carries a video stream.
func (f VideoFormat) HasVideo() bool {
	return f.VCodec != "" && f.VCodec != "none"
}

// HasAudio returns true if the format carries an audio stream.
func (f VideoFormat) HasAudio() bool {
	return f.ACodec != "" && f.ACodec != "none"
}
