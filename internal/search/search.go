// Package search resolves free-text queries into ordered video results.
package search

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"vidgrab/internal/domain/consts"
	"vidgrab/internal/logging"
	"vidgrab/internal/models"

	"golang.org/x/sync/singleflight"
)

// Provider returns ordered results for a search term.
type Provider interface {
	Search(ctx context.Context, query string, limit int) ([]models.SearchResult, error)
}

// CookieSource supplies cookies for a target URL.
type CookieSource interface {
	Acquire(ctx context.Context, targetURL string) (*models.CookieSet, func())
}

// New returns the named provider, coalescing identical concurrent searches.
func New(name string, cookies CookieSource) (*Coalesced, error) {
	var p Provider
	switch strings.ToLower(name) {
	case "", consts.SearchProviderYtsearch:
		p = YtSearch{}
	case consts.SearchProviderScrape:
		p = NewScraper(cookies)
	default:
		return nil, fmt.Errorf("unknown search provider %q", name)
	}
	logging.D(1, "Using search provider %T", p)
	return NewCoalesced(p), nil
}

// Coalesced shares one in-flight search between identical callers.
type Coalesced struct {
	provider Provider
	group    singleflight.Group
}

// NewCoalesced wraps a provider.
func NewCoalesced(p Provider) *Coalesced {
	return &Coalesced{provider: p}
}

// Search runs the wrapped provider once per distinct in-flight query and limit.
func (c *Coalesced) Search(ctx context.Context, query string, limit int) ([]models.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = consts.DefaultSearchLimit
	}

	key := query + ":" + strconv.Itoa(limit)
	ch := c.group.DoChan(key, func() (any, error) {
		searchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), consts.SearchTimeout)
		defer cancel()
		return c.provider.Search(searchCtx, query, limit)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			logging.D(2, "Shared search result for %q", query)
		}
		results, _ := res.Val.([]models.SearchResult)

		// Callers must not share the backing array.
		out := make([]models.SearchResult, len(results))
		copy(out, results)
		return out, nil
	}
}
