// Package parsing turns user input into the values the rest of the program works with.
package parsing

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"vidgrab/internal/domain/consts"
	"vidgrab/internal/models"

	"golang.org/x/net/publicsuffix"
)

// ErrInvalidDownloadType is returned for download types other than video and audio.
var ErrInvalidDownloadType = errors.New("invalid download type specified")

// ClassifyQuery decides whether a submitted query is a URL or a search term.
//
// Only the scheme prefix is checked, and it is case-sensitive.
func ClassifyQuery(query string) models.QueryKind {
	q := strings.TrimSpace(query)
	switch {
	case q == "":
		return models.QueryEmpty
	case strings.HasPrefix(q, "http://"), strings.HasPrefix(q, "https://"):
		return models.QueryURL
	default:
		return models.QuerySearch
	}
}

// ParseDownloadType validates a download type path segment.
func ParseDownloadType(s string) (models.DownloadType, error) {
	switch models.DownloadType(s) {
	case models.DownloadVideo:
		return models.DownloadVideo, nil
	case models.DownloadAudio:
		return models.DownloadAudio, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDownloadType, s)
	}
}

// ParseDownloadRequest builds a download request from the route's path values.
func ParseDownloadRequest(videoID, downloadType string) (models.DownloadRequest, error) {
	t, err := ParseDownloadType(downloadType)
	if err != nil {
		return models.DownloadRequest{}, err
	}
	if strings.TrimSpace(videoID) == "" {
		return models.DownloadRequest{}, errors.New("video ID is empty")
	}
	return models.DownloadRequest{VideoID: videoID, Type: t}, nil
}

// WatchURL returns the watch page URL for a video ID.
func WatchURL(videoID string) string {
	return consts.YouTubeWatchURL + "?v=" + url.QueryEscape(videoID)
}

// BaseDomain returns the base domain (eTLD+1) for an inputted URL.
func BaseDomain(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	host := u.Hostname()
	if host == "" {
		return "", fmt.Errorf("no host in URL %q", rawURL)
	}
	return publicsuffix.EffectiveTLDPlusOne(host)
}

// NormalizeURL standardizes URLs for comparison by removing protocol and any trailing slashes.
//
// Do NOT add a "ToLower" function as some sites like YouTube have case-sensitive URLs.
func NormalizeURL(inputURL string) string {
	cleanURL := strings.TrimPrefix(inputURL, "https://")
	cleanURL = strings.TrimPrefix(cleanURL, "http://")
	return strings.TrimSuffix(cleanURL, "/")
}
