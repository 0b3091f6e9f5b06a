// Package ytdlp resolves download options and drives the yt-dlp extractor.
package ytdlp

import (
	"fmt"
	"path/filepath"

	"vidgrab/internal/domain/command"
	"vidgrab/internal/models"
	"vidgrab/internal/parsing"
)

// Options is the option structure handed to the engine.
type Options struct {
	Format         string
	OutputTemplate string
	CookieFile     string
	SkipDownload   bool
	DumpJSON       bool
	Quiet          bool
	NoWarnings     bool
	NoPlaylist     bool
}

// BuildDownloadOptions selects the format for a download type and points the
// output template at the work directory.
func BuildDownloadOptions(t models.DownloadType, workDir, cookieFile string) (Options, error) {
	var format string
	switch t {
	case models.DownloadVideo:
		format = command.FormatVideo
	case models.DownloadAudio:
		format = command.FormatAudio
	default:
		return Options{}, fmt.Errorf("%w: %q", parsing.ErrInvalidDownloadType, t)
	}

	return Options{
		Format:         format,
		OutputTemplate: filepath.Join(workDir, command.OutputTemplate),
		CookieFile:     cookieFile,
		NoPlaylist:     true,
	}, nil
}

// BuildInfoOptions returns the options for a metadata-only extraction.
func BuildInfoOptions(cookieFile string) Options {
	return Options{
		CookieFile:   cookieFile,
		SkipDownload: true,
		DumpJSON:     true,
		Quiet:        true,
		NoWarnings:   true,
		NoPlaylist:   true,
	}
}

// Args renders the options as yt-dlp command-line flags.
func (o Options) Args() []string {
	args := make([]string, 0, 12)
	if o.Format != "" {
		args = append(args, "-f", o.Format)
	}
	if o.OutputTemplate != "" {
		args = append(args, "-o", o.OutputTemplate)
	}
	if o.CookieFile != "" {
		args = append(args, "--cookies", o.CookieFile)
	}
	if o.SkipDownload {
		args = append(args, "--skip-download")
	}
	if o.DumpJSON {
		args = append(args, "--dump-single-json")
	}
	if o.Quiet {
		args = append(args, "--quiet")
	}
	if o.NoWarnings {
		args = append(args, "--no-warnings")
	}
	if o.NoPlaylist {
		args = append(args, "--no-playlist")
	}
	return args
}
