package search

import (
	"context"
	"fmt"

	"vidgrab/internal/models"
	"vidgrab/internal/parsing"

	"github.com/raitonoberu/ytsearch"
)

// YtSearch queries YouTube through the ytsearch client.
type YtSearch struct{}

type ytOutcome struct {
	results []models.SearchResult
	err     error
}

// Search returns up to limit video results.
func (YtSearch) Search(ctx context.Context, query string, limit int) ([]models.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	done := make(chan ytOutcome, 1)

	// The client takes no context: on cancellation the request runs to
	// completion in the background and its outcome is dropped.
	go func() {
		res, err := ytsearch.VideoSearch(query).Next()
		if err != nil {
			done <- ytOutcome{err: fmt.Errorf("search for %q failed: %w", query, err)}
			return
		}

		items := make([]models.SearchResult, 0, limit)
		for _, video := range res.Videos {
			if len(items) >= limit {
				break
			}
			if video.ID == "" {
				continue
			}

			thumbnail := ""
			if len(video.Thumbnails) > 0 {
				thumbnail = video.Thumbnails[0].URL
			}

			items = append(items, models.SearchResult{
				ID:        video.ID,
				Title:     video.Title,
				Channel:   video.Channel.Title,
				Duration:  parsing.FormatDuration(video.Duration),
				Thumbnail: thumbnail,
				URL:       parsing.WatchURL(video.ID),
			})
		}
		done <- ytOutcome{results: items}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case out := <-done:
		return out.results, out.err
	}
}
