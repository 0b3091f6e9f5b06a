package consts

// Tables
const (
	DBDownloads = "downloads"
)

// Downloads
const (
	QDLID           = "id"
	QDLVideoID      = "video_id"
	QDLType         = "download_type"
	QDLStatus       = "status"
	QDLPct          = "percent"
	QDLFilePath     = "file_path"
	QDLErrorMessage = "error_message"
	QDLCreatedAt    = "created_at"
	QDLUpdatedAt    = "updated_at"
)
