package cookies

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"vidgrab/internal/domain/consts"
	"vidgrab/internal/logging"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// BrowserConfig holds the headless browser session settings.
type BrowserConfig struct {
	Site     string        // page to open
	Domain   string        // substring a cookie's domain must contain
	Wait     time.Duration // delay after navigation before reading cookies
	Timeout  time.Duration // bound on the whole session
	ExecPath string        // browser binary, empty for auto-detection
	Headless bool
}

// BrowserHarvester reads cookies from a headless Chrome session.
type BrowserHarvester struct {
	cfg BrowserConfig
}

// NewBrowserHarvester returns a harvester, filling in defaults for unset fields.
func NewBrowserHarvester(cfg BrowserConfig) *BrowserHarvester {
	if cfg.Site == "" {
		cfg.Site = consts.DefaultCookieSite
	}
	if cfg.Domain == "" {
		cfg.Domain = consts.DefaultCookieDomain
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = consts.DefaultBrowserTimeout
	}
	return &BrowserHarvester{cfg: cfg}
}

// Harvest opens the configured site, waits, and returns the session's cookies
// for the configured domain.
func (h *BrowserHarvester) Harvest(ctx context.Context) ([]*http.Cookie, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", h.cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.UserAgent(consts.UserAgent),
	)
	if h.cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(h.cfg.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(format string, args ...any) {
		logging.D(4, format, args...)
	}))
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, h.cfg.Timeout)
	defer cancelTimeout()

	logging.D(1, "Harvesting cookies from %q (wait %v)", h.cfg.Site, h.cfg.Wait)

	var netCookies []*network.Cookie
	if err := chromedp.Run(browserCtx,
		chromedp.Navigate(h.cfg.Site),
		chromedp.Sleep(h.cfg.Wait),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			netCookies, err = network.GetCookies().Do(ctx)
			return err
		}),
	); err != nil {
		return nil, fmt.Errorf("browser session at %q failed: %w", h.cfg.Site, err)
	}

	cookies := filterByDomain(convertNetworkCookies(netCookies), h.cfg.Domain)
	logging.D(1, "Browser session returned %d cookies, %d match %q", len(netCookies), len(cookies), h.cfg.Domain)
	return cookies, nil
}

// convertNetworkCookies converts DevTools cookies to http.Cookie format.
func convertNetworkCookies(netCookies []*network.Cookie) []*http.Cookie {
	httpCookies := make([]*http.Cookie, 0, len(netCookies))
	for _, c := range netCookies {
		if c == nil {
			continue
		}
		hc := &http.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Domain:   c.Domain,
			Secure:   c.Secure,
			HttpOnly: c.HTTPOnly,
		}
		// Session cookies report -1
		if c.Expires > 0 {
			hc.Expires = time.Unix(int64(c.Expires), 0)
		}
		httpCookies = append(httpCookies, hc)
	}
	return httpCookies
}

// filterByDomain keeps cookies whose domain contains the given substring.
func filterByDomain(cookies []*http.Cookie, domain string) []*http.Cookie {
	if domain == "" {
		return cookies
	}
	filtered := make([]*http.Cookie, 0, len(cookies))
	for _, c := range cookies {
		if strings.Contains(c.Domain, domain) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
