// Package downloads orchestrates metadata lookups, downloads and cleanup.
package downloads

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"vidgrab/internal/domain/command"
	"vidgrab/internal/domain/consts"
	"vidgrab/internal/logging"
	"vidgrab/internal/models"
	"vidgrab/internal/parsing"
	"vidgrab/internal/ytdlp"

	"golang.org/x/sync/singleflight"
)

// ErrFileNotFound is returned when a finished download left no file behind.
var ErrFileNotFound = errors.New("downloaded file not found")

// CookieAcquirer supplies a per-request cookie set and its cleanup.
type CookieAcquirer interface {
	Acquire(ctx context.Context, targetURL string) (*models.CookieSet, func())
}

// Service runs info lookups and downloads against the work directory.
type Service struct {
	cookies CookieAcquirer
	engine  ytdlp.Engine
	tracker *DownloadTracker
	workDir string

	infoGroup singleflight.Group
	dlGroup   singleflight.Group
}

// NewService returns a download service. tracker may be nil.
func NewService(cookies CookieAcquirer, engine ytdlp.Engine, tracker *DownloadTracker, workDir string) *Service {
	return &Service{
		cookies: cookies,
		engine:  engine,
		tracker: tracker,
		workDir: workDir,
	}
}

// WorkDir returns the directory downloads are written to.
func (s *Service) WorkDir() string {
	return s.workDir
}

// VideoInfo resolves metadata for a URL.
func (s *Service) VideoInfo(ctx context.Context, videoURL string) (*models.VideoInfo, error) {
	videoURL = strings.TrimSpace(videoURL)
	if videoURL == "" {
		return nil, errors.New("no video URL entered")
	}

	// Shared lookups outlive any one caller's request.
	ch := s.infoGroup.DoChan(parsing.NormalizeURL(videoURL), func() (any, error) {
		runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), consts.InfoTimeout)
		defer cancel()

		set, cleanup := s.cookies.Acquire(runCtx, videoURL)
		defer cleanup()

		logging.D(1, "Fetching info for %q using %s cookies", videoURL, set.Source)
		info, err := s.engine.Info(runCtx, videoURL, ytdlp.BuildInfoOptions(set.FilePath))
		if err != nil {
			logBotDetection(videoURL, err)
			return nil, err
		}
		return info, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			logging.D(2, "Shared info lookup for %q", videoURL)
		}

		// Callers get their own copy.
		info := *res.Val.(*models.VideoInfo)
		return &info, nil
	}
}

// Download downloads the requested stream and returns the resulting file.
//
// The download type is checked before any cookie or engine work.
func (s *Service) Download(ctx context.Context, req models.DownloadRequest) (*models.DownloadedFile, error) {
	if _, err := parsing.ParseDownloadType(string(req.Type)); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.VideoID) == "" {
		return nil, errors.New("no video ID entered")
	}

	ch := s.dlGroup.DoChan(req.Key(), func() (any, error) {
		runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), consts.DownloadTimeout)
		defer cancel()
		return s.download(runCtx, req)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			logging.I("Joined in-flight download of %q", req.Key())
		}

		f := *res.Val.(*models.DownloadedFile)
		return &f, nil
	}
}

// download runs one download through the engine and tracks its status.
func (s *Service) download(ctx context.Context, req models.DownloadRequest) (*models.DownloadedFile, error) {
	target := parsing.WatchURL(req.VideoID)

	set, cleanup := s.cookies.Acquire(ctx, target)
	defer cleanup()

	opts, err := ytdlp.BuildDownloadOptions(req.Type, s.workDir, set.FilePath)
	if err != nil {
		return nil, err
	}

	recordID := s.tracker.begin(ctx, req)
	s.tracker.sendUpdate(models.StatusUpdate{
		RecordID: recordID,
		Status:   consts.DLStatusDownloading,
	})

	logging.I("Downloading %s for %q using %s cookies", req.Type, req.VideoID, set.Source)
	filename, err := s.engine.Download(ctx, target, opts, func(u models.ProgressUpdate) {
		switch u.Status {
		case command.ProgressDownloading:
			logging.I("Download progress: %s", u.PercentStr)
			s.tracker.sendUpdate(models.StatusUpdate{
				RecordID: recordID,
				Status:   consts.DLStatusDownloading,
				Percent:  u.Percent,
			})
		case command.ProgressFinished:
			logging.D(1, "Finished downloading %q", u.Filename)
		}
	})
	if err != nil {
		logBotDetection(target, err)
		s.fail(recordID, err)
		return nil, err
	}

	f, err := s.resolveFile(filename, req)
	if err != nil {
		s.fail(recordID, err)
		return nil, err
	}

	s.tracker.sendUpdate(models.StatusUpdate{
		RecordID: recordID,
		Status:   consts.DLStatusCompleted,
		Percent:  100,
		FilePath: f.Path,
	})
	logging.S("Downloaded %q (%d bytes)", f.Name, f.Size)
	return f, nil
}

// fail records a failed download.
func (s *Service) fail(recordID string, err error) {
	s.tracker.sendUpdate(models.StatusUpdate{
		RecordID: recordID,
		Status:   consts.DLStatusFailed,
		Error:    err.Error(),
	})
}

// resolveFile checks the reported filename, falling back to the first <id>.* file
// with an extension the download type can produce.
func (s *Service) resolveFile(filename string, req models.DownloadRequest) (*models.DownloadedFile, error) {
	candidates := make([]string, 0, 2)
	if filename != "" {
		if !filepath.IsAbs(filename) {
			filename = filepath.Join(s.workDir, filename)
		}
		candidates = append(candidates, filename)
	}
	if match := locateByID(s.workDir, req.VideoID, outputExtensions(req.Type)); match != "" {
		candidates = append(candidates, match)
	}

	for _, c := range candidates {
		info, err := verifyVideoDownload(c)
		if err != nil {
			logging.D(1, "Rejected download candidate: %v", err)
			continue
		}
		return &models.DownloadedFile{
			Path: c,
			Name: filepath.Base(c),
			Size: info.Size(),
		}, nil
	}

	if filename == "" {
		filename = filepath.Join(s.workDir, req.VideoID)
	}
	return nil, fmt.Errorf("%w: %s", ErrFileNotFound, filepath.Base(filename))
}

// Cleanup removes media files with the cleanup extensions from the work directory.
//
// Everything else is left untouched. Returns the removed file names.
func (s *Service) Cleanup() ([]string, error) {
	entries, err := os.ReadDir(s.workDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read work directory %q: %w", s.workDir, err)
	}

	var (
		removed []string
		errs    []error
	)
	for _, e := range entries {
		if e.IsDir() || !hasCleanupExtension(e.Name()) {
			continue
		}

		path := filepath.Join(s.workDir, e.Name())
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
			continue
		}
		logging.D(1, "Removed %q", path)
		removed = append(removed, e.Name())
	}

	if len(removed) > 0 {
		logging.I("Cleanup removed %d file(s) from %q", len(removed), s.workDir)
	}
	return removed, errors.Join(errs...)
}
