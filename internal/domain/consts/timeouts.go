package consts

import "time"

// Browser automation
const (
	DefaultCookieWait     = 5 * time.Second
	DefaultBrowserTimeout = 60 * time.Second
)

// Network timeouts
const (
	SearchTimeout   = 20 * time.Second
	ScraperTimeout  = 30 * time.Second
	DatabaseTimeout = 5 * time.Second
)

// Shared engine runs, detached from any single request
const (
	InfoTimeout     = 2 * time.Minute
	DownloadTimeout = time.Hour
)

// Server
const (
	ReadHeaderTimeout = 10 * time.Second
	ShutdownTimeout   = 10 * time.Second
)

// Retry configuration
const (
	DefaultMaxRetries = 3
	RetryBackoff      = 100 * time.Millisecond
)

// Progress logging frequency for the download engine.
const ProgressInterval = 500 * time.Millisecond
