package downloads

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"vidgrab/internal/domain/consts"
	"vidgrab/internal/logging"
	"vidgrab/internal/models"
)

// verifyVideoDownload checks if the specified file exists and is a regular file.
func verifyVideoDownload(videoPath string) (os.FileInfo, error) {
	info, err := os.Stat(videoPath)
	if err != nil {
		return nil, fmt.Errorf("video file verification failed: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("video path %q is a directory", videoPath)
	}
	return info, nil
}

// locateByID returns the first file in dir named <videoID><ext> for one of exts.
func locateByID(dir, videoID string, exts []string) string {
	if videoID == "" || strings.ContainsAny(videoID, `/\`) {
		return ""
	}

	matches, err := filepath.Glob(filepath.Join(dir, escapeGlob(videoID)+".*"))
	if err != nil {
		return ""
	}
	for _, m := range matches {
		if slices.Contains(exts, strings.ToLower(filepath.Ext(m))) {
			return m
		}
	}
	return ""
}

// outputExtensions returns the extensions a download type's format selector produces.
func outputExtensions(t models.DownloadType) []string {
	switch t {
	case models.DownloadVideo:
		return consts.VideoOutputExtensions[:]
	case models.DownloadAudio:
		return consts.AudioOutputExtensions[:]
	default:
		return nil
	}
}

// escapeGlob escapes glob metacharacters in a literal name.
func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// hasCleanupExtension reports whether name ends in one of the cleanup extensions.
func hasCleanupExtension(name string) bool {
	ext := filepath.Ext(name)
	for _, c := range consts.CleanupExtensions {
		if ext == c {
			return true
		}
	}
	return false
}

// logBotDetection warns when the site rejected the request as automated.
func logBotDetection(uri string, inputErr error) {
	msg := strings.ToLower(inputErr.Error())
	if strings.Contains(msg, "confirm you’re not a bot") || // Curly apostrophe
		strings.Contains(msg, "confirm you're not a bot") ||
		strings.Contains(msg, "not a robot") ||
		strings.Contains(msg, "sign in to confirm") {
		logging.W("Site rejected %q as bot activity, check the browser harvest or %q cookie file", uri, consts.DefaultCookieFile)
	}
}
