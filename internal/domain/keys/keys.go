// Package keys holds the configuration keys used by cobra and viper.
package keys

// Server
const (
	Host string = "host"
	Port string = "port"
)

// Files and directories
const (
	WorkDir    string = "work-dir"
	DBFile     string = "db-file"
	LogFile    string = "log-file"
	ConfigFile string = "config-file"
)

// Cookies
const (
	CookieFile         string = "cookie-file"
	CookieSite         string = "cookie-site"
	CookieDomain       string = "cookie-domain"
	CookieWait         string = "cookie-wait"
	BrowserHarvest     string = "browser-harvest"
	BrowserPath        string = "browser-path"
	BrowserTimeout     string = "browser-timeout"
	Headless           string = "headless"
	CookiesFromBrowser string = "cookies-from-browser"
)

// Search
const (
	SearchProvider string = "search-provider"
	SearchLimit    string = "search-limit"
)

// External programs
const (
	YtdlpPath string = "ytdlp-path"
)

// Logging
const (
	DebugLevel string = "debug-level"
)

// Program state
const (
	Execute string = "execute"
)
