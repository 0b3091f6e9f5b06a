package models

import "vidgrab/internal/domain/consts"

// StatusUpdate models updates to the status of a download record.
type StatusUpdate struct {
	RecordID string
	Status   consts.DownloadStatus
	Percent  float64
	FilePath string
	Error    string
}

// ProgressUpdate is reported by the download engine while it runs.
type ProgressUpdate struct {
	Status     string
	Percent    float64
	PercentStr string
	Downloaded int
	Total      int
	Filename   string
}
