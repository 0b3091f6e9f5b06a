package main

import (
	"context"
	"fmt"
	"path/filepath"

	"vidgrab/internal/cookies"
	"vidgrab/internal/database"
	"vidgrab/internal/domain/keys"
	"vidgrab/internal/downloads"
	"vidgrab/internal/logging"
	"vidgrab/internal/repo"
	"vidgrab/internal/search"
	"vidgrab/internal/server"
	"vidgrab/internal/ytdlp"

	"github.com/spf13/viper"
)

// run wires the application together and serves until ctx is done.
func run(ctx context.Context) error {
	workDir, err := filepath.Abs(viper.GetString(keys.WorkDir))
	if err != nil {
		return fmt.Errorf("failed to resolve work directory: %w", err)
	}

	// Download history
	var (
		history server.HistoryStore
		tracker *downloads.DownloadTracker
	)
	if dbFile := viper.GetString(keys.DBFile); dbFile != "" {
		db, err := database.Open(dbFile)
		if err != nil {
			return err
		}
		defer db.Close()

		store := repo.GetDownloadStore(db.DB)
		history = store
		tracker = downloads.NewDownloadTracker(store)
		tracker.Start(ctx)
		defer tracker.Stop()
	} else {
		logging.I("No database file set, download history is disabled")
	}

	cookieManager := initCookieManager()

	searcher, err := search.New(viper.GetString(keys.SearchProvider), cookieManager)
	if err != nil {
		return err
	}

	svc := downloads.NewService(cookieManager, ytdlp.New(viper.GetString(keys.YtdlpPath)), tracker, workDir)

	srv, err := server.New(searcher, svc, history, viper.GetInt(keys.SearchLimit))
	if err != nil {
		return err
	}

	logging.I("Writing downloads to %q", workDir)
	return srv.Run(ctx, viper.GetString(keys.Host), viper.GetInt(keys.Port))
}

// initCookieManager builds the cookie sources from the configuration.
func initCookieManager() *cookies.Manager {
	var harvester cookies.Harvester
	if viper.GetBool(keys.BrowserHarvest) {
		harvester = cookies.NewBrowserHarvester(cookies.BrowserConfig{
			Site:     viper.GetString(keys.CookieSite),
			Domain:   viper.GetString(keys.CookieDomain),
			Wait:     viper.GetDuration(keys.CookieWait),
			Timeout:  viper.GetDuration(keys.BrowserTimeout),
			ExecPath: viper.GetString(keys.BrowserPath),
			Headless: viper.GetBool(keys.Headless),
		})
	}

	var stores cookies.StoreReader
	if viper.GetBool(keys.CookiesFromBrowser) {
		stores = cookies.BrowserStores{}
	}

	cookieFile := viper.GetString(keys.CookieFile)
	if cookieFile != "" && !filepath.IsAbs(cookieFile) {
		if abs, err := filepath.Abs(cookieFile); err == nil {
			cookieFile = abs
		}
	}

	logging.D(1, "Cookie sources: browser harvest %v, browser stores %v, file %q",
		harvester != nil, stores != nil, cookieFile)
	return cookies.NewManager(harvester, stores, cookies.Config{CookieFile: cookieFile})
}
