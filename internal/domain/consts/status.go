package consts

// DownloadStatus is the state of a download record.
type DownloadStatus string

const (
	DLStatusPending     DownloadStatus = "pending"
	DLStatusDownloading DownloadStatus = "downloading"
	DLStatusCompleted   DownloadStatus = "completed"
	DLStatusFailed      DownloadStatus = "failed"
)
