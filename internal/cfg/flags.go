package cfg

import (
	"vidgrab/internal/domain/consts"
	"vidgrab/internal/domain/keys"
	"vidgrab/internal/domain/paths"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// bindFlags binds the named flags to their viper keys.
func bindFlags(flags *pflag.FlagSet, names ...string) error {
	for _, name := range names {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			return err
		}
	}
	return nil
}

// initProgramFlags initializes program file and logging flags.
func initProgramFlags(rootCmd *cobra.Command) error {
	rootCmd.PersistentFlags().String(keys.ConfigFile, "", "Config file to load settings from (any format Viper reads)")
	rootCmd.PersistentFlags().String(keys.DBFile, paths.DBFilePath, "Download history database (empty disables history)")
	rootCmd.PersistentFlags().String(keys.LogFile, paths.VidgrabLogFilePath, "Log file (empty logs to the console only)")
	rootCmd.PersistentFlags().IntP(keys.DebugLevel, "d", 0, "Debug level (0-5)")

	return bindFlags(rootCmd.PersistentFlags(), keys.ConfigFile, keys.DBFile, keys.LogFile, keys.DebugLevel)
}

// initServerFlags initializes web server flags.
func initServerFlags(rootCmd *cobra.Command) error {
	rootCmd.Flags().String(keys.Host, "127.0.0.1", "Address to listen on")
	rootCmd.Flags().IntP(keys.Port, "p", consts.DefaultPort, "Port to listen on")

	return bindFlags(rootCmd.Flags(), keys.Host, keys.Port)
}

// initCookieFlags initializes cookie acquisition flags.
func initCookieFlags(rootCmd *cobra.Command) error {
	rootCmd.Flags().String(keys.CookieFile, consts.DefaultCookieFile, "Netscape cookie file used when no browser cookies are available")
	rootCmd.Flags().Bool(keys.BrowserHarvest, true, "Harvest session cookies with a headless browser")
	rootCmd.Flags().String(keys.CookieSite, consts.DefaultCookieSite, "Site the headless browser opens to collect cookies")
	rootCmd.Flags().String(keys.CookieDomain, consts.DefaultCookieDomain, "Only keep harvested cookies whose domain contains this")
	rootCmd.Flags().Duration(keys.CookieWait, consts.DefaultCookieWait, "Time to wait on the site before reading cookies")
	rootCmd.Flags().Duration(keys.BrowserTimeout, consts.DefaultBrowserTimeout, "Upper bound on a headless browser session")
	rootCmd.Flags().String(keys.BrowserPath, "", "Chrome/Chromium binary (auto-detected when empty)")
	rootCmd.Flags().Bool(keys.Headless, true, "Run the browser without a window")
	rootCmd.Flags().Bool(keys.CookiesFromBrowser, false, "Also read cookies from local browser profiles")

	return bindFlags(rootCmd.Flags(),
		keys.CookieFile,
		keys.BrowserHarvest,
		keys.CookieSite,
		keys.CookieDomain,
		keys.CookieWait,
		keys.BrowserTimeout,
		keys.BrowserPath,
		keys.Headless,
		keys.CookiesFromBrowser,
	)
}

// initDownloadFlags initializes search and download flags.
func initDownloadFlags(rootCmd *cobra.Command) error {
	rootCmd.Flags().StringP(keys.WorkDir, "w", ".", "Directory downloads are written to and cleaned from")
	rootCmd.Flags().String(keys.YtdlpPath, "", "yt-dlp executable (PATH lookup when empty)")
	rootCmd.Flags().String(keys.SearchProvider, consts.SearchProviderYtsearch, "Search provider (ytsearch or scrape)")
	rootCmd.Flags().Int(keys.SearchLimit, consts.DefaultSearchLimit, "Maximum search results shown")

	return bindFlags(rootCmd.Flags(), keys.WorkDir, keys.YtdlpPath, keys.SearchProvider, keys.SearchLimit)
}
