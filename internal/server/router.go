// Package server sets up the vidgrab web server.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net"
	"net/http"
	"strconv"

	"vidgrab/internal/domain/consts"
	"vidgrab/internal/logging"
	"vidgrab/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Searcher resolves a search term into ordered results.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]models.SearchResult, error)
}

// Downloader resolves metadata, downloads streams and cleans up files.
type Downloader interface {
	VideoInfo(ctx context.Context, videoURL string) (*models.VideoInfo, error)
	Download(ctx context.Context, req models.DownloadRequest) (*models.DownloadedFile, error)
	Cleanup() ([]string, error)
}

// HistoryStore lists recorded downloads.
type HistoryStore interface {
	LatestDownloads(ctx context.Context, limit int) ([]models.DownloadRecord, error)
}

// Server holds the handlers' collaborators.
type Server struct {
	search      Searcher
	downloads   Downloader
	history     HistoryStore
	searchLimit int
	pages       pages
}

// New returns a server. history may be nil.
func New(search Searcher, dl Downloader, history HistoryStore, searchLimit int) (*Server, error) {
	p, err := loadPages()
	if err != nil {
		return nil, err
	}
	if searchLimit <= 0 {
		searchLimit = consts.DefaultSearchLimit
	}
	return &Server{
		search:      search,
		downloads:   dl,
		history:     history,
		searchLimit: searchLimit,
		pages:       p,
	}, nil
}

// NewRouter returns a http Handler.
func (s *Server) NewRouter() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  log.New(logging.Writer(), "", 0),
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Post("/process", s.handleProcess)
	r.Get("/video", s.handleVideo)
	r.Get("/download/{video_id}/{download_type}", s.handleDownload)
	r.Get("/cleanup", s.handleCleanup)

	r.Route("/api", func(r chi.Router) {
		r.Get("/downloads", s.handleLatestDownloads)
	})

	r.Handle("/static/*", StaticHandler())
	return r
}

// Run serves on host:port until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, host string, port int) error {
	srv := &http.Server{
		Addr:              net.JoinHostPort(host, strconv.Itoa(port)),
		Handler:           s.NewRouter(),
		ReadHeaderTimeout: consts.ReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logging.S("%s web server running on http://%s", consts.ProgramName, srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logging.I("Shutting down web server...")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), consts.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

// StaticHandler serves the embedded static assets.
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
