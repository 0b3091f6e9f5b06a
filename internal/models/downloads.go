package models

import (
	"time"

	"vidgrab/internal/domain/consts"
)

// DownloadType selects between the video and audio download options.
type DownloadType string

const (
	DownloadVideo DownloadType = "video"
	DownloadAudio DownloadType = "audio"
)

// DownloadRequest is derived from the download route's path.
type DownloadRequest struct {
	VideoID string
	Type    DownloadType
}

// Key identifies requests which would produce the same file.
func (r DownloadRequest) Key() string {
	return r.VideoID + "/" + string(r.Type)
}

// DownloadedFile is a media file written into the work directory.
type DownloadedFile struct {
	Path string
	Name string
	Size int64
}

// DownloadRecord is one row of download history.
type DownloadRecord struct {
	ID           string                `json:"id"`
	VideoID      string                `json:"video_id"`
	Type         DownloadType          `json:"download_type"`
	Status       consts.DownloadStatus `json:"status"`
	Percent      float64               `json:"percent"`
	FilePath     string                `json:"file_path,omitempty"`
	ErrorMessage string                `json:"error_message,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}
