package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"vidgrab/internal/downloads"
	"vidgrab/internal/logging"
	"vidgrab/internal/models"
	"vidgrab/internal/parsing"

	"github.com/go-chi/chi/v5"
)

// handleIndex renders the query form.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.pages.render(w, pageIndex, nil)
}

// handleProcess routes a query to the video page or to a search.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	query := strings.TrimSpace(r.PostFormValue("query"))

	switch parsing.ClassifyQuery(query) {
	case models.QueryEmpty:
		http.Redirect(w, r, "/", http.StatusFound)

	case models.QueryURL:
		http.Redirect(w, r, "/video?url="+url.QueryEscape(query), http.StatusFound)

	default:
		results, err := s.search.Search(r.Context(), query, s.searchLimit)
		if err != nil {
			logging.E("Search for %q failed: %v", query, err)
			http.Error(w, fmt.Sprintf("Search error: %v", err), http.StatusInternalServerError)
			return
		}
		s.pages.render(w, pageResults, struct {
			Query   string
			Results []models.SearchResult
		}{query, results})
	}
}

// handleVideo renders details and download links for a URL.
func (s *Server) handleVideo(w http.ResponseWriter, r *http.Request) {
	videoURL := strings.TrimSpace(r.URL.Query().Get("url"))
	if videoURL == "" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	info, err := s.downloads.VideoInfo(r.Context(), videoURL)
	if err != nil {
		logging.E("Info for %q failed: %v", videoURL, err)
		http.Error(w, fmt.Sprintf("Error retrieving video info: %v", err), http.StatusInternalServerError)
		return
	}
	s.pages.render(w, pageVideo, info)
}

// handleDownload downloads the requested stream and serves it as an attachment.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	req, err := parsing.ParseDownloadRequest(chi.URLParam(r, "video_id"), chi.URLParam(r, "download_type"))
	if err != nil {
		http.Error(w, fmt.Sprintf("Download error: %v", err), http.StatusBadRequest)
		return
	}

	f, err := s.downloads.Download(r.Context(), req)
	switch {
	case errors.Is(err, downloads.ErrFileNotFound):
		http.Error(w, "Downloaded file not found.", http.StatusNotFound)
		return
	case errors.Is(err, parsing.ErrInvalidDownloadType):
		http.Error(w, fmt.Sprintf("Download error: %v", err), http.StatusBadRequest)
		return
	case err != nil:
		logging.E("Download of %q failed: %v", req.Key(), err)
		http.Error(w, fmt.Sprintf("Download error: %v", err), http.StatusInternalServerError)
		return
	}

	file, err := os.Open(f.Path)
	if err != nil {
		http.Error(w, "Downloaded file not found.", http.StatusNotFound)
		return
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil || stat.IsDir() {
		http.Error(w, "Downloaded file not found.", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": f.Name}))
	http.ServeContent(w, r, f.Name, stat.ModTime(), file)
}

// handleCleanup removes downloaded media files.
func (s *Server) handleCleanup(w http.ResponseWriter, r *http.Request) {
	removed, err := s.downloads.Cleanup()
	if err != nil {
		logging.E("Cleanup failed: %v", err)
		http.Error(w, fmt.Sprintf("Cleanup error: %v", err), http.StatusInternalServerError)
		return
	}
	s.pages.render(w, pageDone, struct{ Removed []string }{removed})
}

// handleLatestDownloads returns the latest download records as JSON.
func (s *Server) handleLatestDownloads(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	records := []models.DownloadRecord{}
	if s.history != nil {
		var err error
		if records, err = s.history.LatestDownloads(r.Context(), limit); err != nil {
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(records); err != nil {
		logging.D(1, "Failed to encode downloads: %v", err)
	}
}
