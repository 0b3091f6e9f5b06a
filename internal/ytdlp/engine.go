package ytdlp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"vidgrab/internal/domain/command"
	"vidgrab/internal/domain/consts"
	"vidgrab/internal/logging"
	"vidgrab/internal/models"
	"vidgrab/internal/parsing"

	"github.com/lrstanley/go-ytdlp"
)

// ProgressFunc receives progress reports during a download.
type ProgressFunc func(models.ProgressUpdate)

// Engine resolves metadata and performs downloads.
type Engine interface {
	Info(ctx context.Context, url string, opts Options) (*models.VideoInfo, error)
	Download(ctx context.Context, url string, opts Options, progress ProgressFunc) (string, error)
}

// Ytdlp is the Engine backed by the yt-dlp executable.
type Ytdlp struct {
	executable string
}

// New returns a yt-dlp engine. An empty executable uses yt-dlp from PATH.
func New(executable string) *Ytdlp {
	return &Ytdlp{executable: executable}
}

// command builds the go-ytdlp command for the given options.
func (y *Ytdlp) command(opts Options) *ytdlp.Command {
	dl := ytdlp.New()
	if y.executable != "" {
		dl = dl.SetExecutable(y.executable)
	}
	if opts.Format != "" {
		dl = dl.Format(opts.Format)
	}
	if opts.OutputTemplate != "" {
		dl = dl.Output(opts.OutputTemplate)
	}
	if opts.CookieFile != "" {
		dl = dl.Cookies(opts.CookieFile)
	}
	if opts.SkipDownload {
		dl = dl.SkipDownload()
	}
	if opts.DumpJSON {
		dl = dl.DumpSingleJSON()
	}
	if opts.Quiet {
		dl = dl.Quiet()
	}
	if opts.NoWarnings {
		dl = dl.NoWarnings()
	}
	if opts.NoPlaylist {
		dl = dl.NoPlaylist()
	}
	return dl
}

// Info extracts metadata for a URL without downloading.
func (y *Ytdlp) Info(ctx context.Context, url string, opts Options) (*models.VideoInfo, error) {
	opts.SkipDownload = true
	opts.DumpJSON = true

	logging.D(1, "Extracting info for %q with args %v", url, opts.Args())
	res, err := y.command(opts).Run(ctx, url)
	if err != nil {
		return nil, engineError(res, err)
	}
	return parseInfo([]byte(res.Stdout))
}

// Download downloads a URL and returns the resulting filename.
func (y *Ytdlp) Download(ctx context.Context, url string, opts Options, progress ProgressFunc) (string, error) {
	var (
		mu       sync.Mutex
		lastFile string
	)

	// Printing implies quiet, so progress output is forced back on.
	dl := y.command(opts).Print(command.AfterMove).Progress()
	dl = dl.ProgressFunc(consts.ProgressInterval, func(u ytdlp.ProgressUpdate) {
		update := models.ProgressUpdate{
			Status:     string(u.Status),
			Downloaded: int(u.DownloadedBytes),
			Total:      int(u.TotalBytes),
			Filename:   u.Filename,
		}
		if update.Total > 0 {
			update.Percent = float64(update.Downloaded) / float64(update.Total) * 100
		}
		update.PercentStr = fmt.Sprintf("%.1f%%", update.Percent)
		if update.Filename != "" {
			mu.Lock()
			lastFile = update.Filename
			mu.Unlock()
		}
		if progress != nil {
			progress(update)
		}
	})

	logging.D(1, "Downloading %q with args %v", url, opts.Args())
	res, err := dl.Run(ctx, url)
	if err != nil {
		return "", engineError(res, err)
	}

	if f := filenameFromOutput(res.Stdout); f != "" {
		return f, nil
	}
	if info, err := res.GetExtractedInfo(); err == nil {
		for _, i := range info {
			if i.Filename != nil && *i.Filename != "" {
				return *i.Filename, nil
			}
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if lastFile != "" {
		return lastFile, nil
	}
	return "", errors.New("extractor did not report an output filename")
}

// parseInfo decodes yt-dlp's single JSON dump.
func parseInfo(b []byte) (*models.VideoInfo, error) {
	if len(strings.TrimSpace(string(b))) == 0 {
		return nil, errors.New("extractor returned no metadata")
	}

	var info models.VideoInfo
	if err := json.Unmarshal(b, &info); err != nil {
		return nil, fmt.Errorf("failed to decode extractor metadata: %w", err)
	}
	if info.ID == "" {
		return nil, errors.New("extractor metadata has no video ID")
	}
	if info.Uploader == "" {
		info.Uploader = info.Channel
	}
	info.UploadDate = parsing.FormatUploadDate(info.UploadDate)
	return &info, nil
}

// filenameFromOutput finds the last printed media file path.
func filenameFromOutput(stdout string) string {
	lines := strings.Split(stdout, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		ext := strings.ToLower(filepath.Ext(line))
		for _, validExt := range consts.AllVidExtensions {
			if ext == validExt {
				return line
			}
		}
	}
	return ""
}

// engineError attaches the extractor's error output to a failed run.
func engineError(res *ytdlp.Result, err error) error {
	if res == nil {
		return err
	}
	if msg := lastErrorLine(res.Stderr); msg != "" {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return err
}

// lastErrorLine returns the last "ERROR:" line, else the last non-empty line.
func lastErrorLine(stderr string) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	var last string
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "ERROR:") {
			return line
		}
		if last == "" {
			last = line
		}
	}
	return last
}
