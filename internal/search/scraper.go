package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"vidgrab/internal/domain/consts"
	"vidgrab/internal/logging"
	"vidgrab/internal/models"
	"vidgrab/internal/parsing"

	"github.com/gocolly/colly"
)

var initialDataMarkers = []string{
	"var ytInitialData = ",
	`window["ytInitialData"] = `,
	"ytInitialData = ",
}

// Scraper reads search results from the results page.
type Scraper struct {
	cookies    CookieSource
	resultsURL string
	timeout    time.Duration
}

// NewScraper returns a results page scraper. cookies may be nil.
func NewScraper(cookies CookieSource) *Scraper {
	return &Scraper{
		cookies:    cookies,
		resultsURL: consts.YouTubeResultsURL,
		timeout:    consts.ScraperTimeout,
	}
}

// Search visits the results page and returns up to limit videos.
func (s *Scraper) Search(ctx context.Context, query string, limit int) ([]models.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	target := s.resultsURL + "?search_query=" + url.QueryEscape(query)
	c := colly.NewCollector(colly.UserAgent(consts.UserAgent))
	c.SetRequestTimeout(s.timeout)

	if s.cookies != nil {
		set, cleanup := s.cookies.Acquire(ctx, target)
		defer cleanup()
		if set.Len() > 0 {
			if err := c.SetCookies(target, set.Cookies); err != nil {
				return nil, err
			}
			logging.D(2, "Set %d %s cookies on scraper", set.Len(), set.Source)
		}
	}

	var (
		body      []byte
		statusErr error
	)
	c.OnResponse(func(r *colly.Response) {
		body = r.Body
	})
	c.OnError(func(r *colly.Response, err error) {
		statusErr = fmt.Errorf("results page returned status %d: %w", r.StatusCode, err)
	})

	if err := c.Visit(target); err != nil {
		if statusErr != nil {
			return nil, statusErr
		}
		return nil, fmt.Errorf("error visiting webpage (%s): %w", target, err)
	}
	c.Wait()

	if statusErr != nil {
		return nil, statusErr
	}

	data, err := extractInitialData(body)
	if err != nil {
		return nil, err
	}
	return parseVideoRenderers(data, limit)
}

// extractInitialData pulls the embedded results JSON out of a page body.
func extractInitialData(body []byte) (json.RawMessage, error) {
	for _, marker := range initialDataMarkers {
		i := bytes.Index(body, []byte(marker))
		if i < 0 {
			continue
		}

		var raw json.RawMessage
		dec := json.NewDecoder(bytes.NewReader(body[i+len(marker):]))
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to decode results data: %w", err)
		}
		return raw, nil
	}
	return nil, errors.New("results data not found in page")
}

type textRuns struct {
	SimpleText string `json:"simpleText"`
	Runs       []struct {
		Text string `json:"text"`
	} `json:"runs"`
}

func (t textRuns) String() string {
	if t.SimpleText != "" {
		return t.SimpleText
	}
	var b strings.Builder
	for _, r := range t.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

type videoRenderer struct {
	VideoID        string   `json:"videoId"`
	Title          textRuns `json:"title"`
	OwnerText      textRuns `json:"ownerText"`
	LongBylineText textRuns `json:"longBylineText"`
	LengthText     textRuns `json:"lengthText"`
	Thumbnail      struct {
		Thumbnails []struct {
			URL string `json:"url"`
		} `json:"thumbnails"`
	} `json:"thumbnail"`
}

func (v videoRenderer) result() models.SearchResult {
	channel := v.OwnerText.String()
	if channel == "" {
		channel = v.LongBylineText.String()
	}

	duration := v.LengthText.String()
	if duration == "" {
		duration = parsing.FormatDuration(0)
	}

	thumbnail := ""
	if n := len(v.Thumbnail.Thumbnails); n > 0 {
		thumbnail = v.Thumbnail.Thumbnails[n-1].URL
	}

	return models.SearchResult{
		ID:        v.VideoID,
		Title:     v.Title.String(),
		Channel:   channel,
		Duration:  duration,
		Thumbnail: thumbnail,
		URL:       parsing.WatchURL(v.VideoID),
	}
}

// parseVideoRenderers collects video entries depth first.
//
// Array elements keep their page order. Object keys are walked in sorted
// order, since the decoded map does not keep theirs.
func parseVideoRenderers(data json.RawMessage, limit int) ([]models.SearchResult, error) {
	results := make([]models.SearchResult, 0, limit)
	seen := make(map[string]struct{})

	var walk func(raw json.RawMessage) error
	walk = func(raw json.RawMessage) error {
		if len(results) >= limit {
			return nil
		}
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 {
			return nil
		}

		switch raw[0] {
		case '[':
			var arr []json.RawMessage
			if err := json.Unmarshal(raw, &arr); err != nil {
				return err
			}
			for _, item := range arr {
				if err := walk(item); err != nil {
					return err
				}
			}
		case '{':
			var obj map[string]json.RawMessage
			if err := json.Unmarshal(raw, &obj); err != nil {
				return err
			}
			if vr, ok := obj["videoRenderer"]; ok {
				var v videoRenderer
				if err := json.Unmarshal(vr, &v); err != nil {
					return err
				}
				if _, dup := seen[v.VideoID]; v.VideoID != "" && !dup {
					seen[v.VideoID] = struct{}{}
					results = append(results, v.result())
				}
				return nil
			}

			keys := make([]string, 0, len(obj))
			for k := range obj {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				if err := walk(obj[k]); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if err := walk(data); err != nil {
		return nil, fmt.Errorf("failed to parse results data: %w", err)
	}
	return results, nil
}
