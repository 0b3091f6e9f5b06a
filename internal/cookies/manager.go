// Package cookies acquires authentication cookies for extractor requests.
//
// Sources are tried in order: a headless browser session, the local browser
// cookie stores (when enabled) and finally the static cookie file.
package cookies

import (
	"context"
	"net/http"
	"os"
	"path/filepath"

	"vidgrab/internal/logging"
	"vidgrab/internal/models"
	"vidgrab/internal/parsing"

	"github.com/google/uuid"
)

// Harvester obtains cookies from a live browser session.
type Harvester interface {
	Harvest(ctx context.Context) ([]*http.Cookie, error)
}

// StoreReader reads cookies for a domain from local browser profiles.
type StoreReader interface {
	ReadCookies(ctx context.Context, domain string) ([]*http.Cookie, error)
}

// Config holds the cookie manager settings.
type Config struct {
	// CookieFile is the static Netscape cookie file used as the last resort.
	CookieFile string
	// TempDir receives per-request cookie files. Defaults to os.TempDir().
	TempDir string
}

// Manager hands out a cookie set per request.
type Manager struct {
	harvester Harvester
	stores    StoreReader
	cfg       Config
}

// NewManager returns a cookie manager. Either source may be nil to disable it.
func NewManager(h Harvester, s StoreReader, cfg Config) *Manager {
	if cfg.TempDir == "" {
		cfg.TempDir = os.TempDir()
	}
	return &Manager{
		harvester: h,
		stores:    s,
		cfg:       cfg,
	}
}

// Acquire returns the cookies to use for a request to targetURL.
//
// Failures of the browser sources are logged and swallowed. The returned
// cleanup removes any per-request cookie file and is never nil.
func (m *Manager) Acquire(ctx context.Context, targetURL string) (*models.CookieSet, func()) {
	domain, err := parsing.BaseDomain(targetURL)
	if err != nil {
		logging.D(2, "Could not get base domain for %q: %v", targetURL, err)
	}

	// Live browser session
	if m.harvester != nil && ctx.Err() == nil {
		cookies, err := m.harvester.Harvest(ctx)
		switch {
		case err != nil:
			logging.D(1, "Browser cookie harvest failed, falling back: %v", err)
		case len(cookies) == 0:
			logging.D(1, "Browser session returned no cookies, falling back")
		default:
			if set, cleanup, ok := m.tempSet(cookies, domain, models.CookieSourceBrowser); ok {
				return set, cleanup
			}
		}
	}

	// Local browser stores
	if m.stores != nil && domain != "" && ctx.Err() == nil {
		cookies, err := m.stores.ReadCookies(ctx, domain)
		switch {
		case err != nil:
			logging.D(1, "Failed reading browser cookie stores, falling back: %v", err)
		case len(cookies) == 0:
			logging.D(1, "No stored browser cookies for %q", domain)
		default:
			if set, cleanup, ok := m.tempSet(cookies, domain, models.CookieSourceStore); ok {
				return set, cleanup
			}
		}
	}

	return m.staticSet(domain), func() {}
}

// tempSet writes cookies to a per-request cookie file.
func (m *Manager) tempSet(cookies []*http.Cookie, domain string, source models.CookieSource) (*models.CookieSet, func(), bool) {
	path := filepath.Join(m.cfg.TempDir, "cookies-"+uuid.NewString()+".txt")
	if err := WriteNetscapeFile(path, cookies, domain); err != nil {
		logging.E("Failed to write cookie file %q: %v", path, err)
		removeFile(path)
		return nil, nil, false
	}

	logging.I("Using %d cookies from %s for %q", len(cookies), source, domain)
	set := &models.CookieSet{
		Domain:   domain,
		Source:   source,
		FilePath: path,
		Cookies:  cookies,
	}
	return set, func() { removeFile(path) }, true
}

// staticSet returns the static cookie file, if present.
func (m *Manager) staticSet(domain string) *models.CookieSet {
	f := m.cfg.CookieFile
	if f == "" {
		return &models.CookieSet{Domain: domain, Source: models.CookieSourceNone}
	}
	if _, err := os.Stat(f); err != nil {
		logging.D(1, "Static cookie file %q unavailable, proceeding without cookies: %v", f, err)
		return &models.CookieSet{Domain: domain, Source: models.CookieSourceNone}
	}

	cookies, err := ReadNetscapeFile(f)
	if err != nil {
		// The extractor may still understand the file
		logging.W("Could not parse cookie file %q: %v", f, err)
	}

	logging.D(1, "Using static cookie file %q (%d cookies)", f, len(cookies))
	return &models.CookieSet{
		Domain:   domain,
		Source:   models.CookieSourceFile,
		FilePath: f,
		Cookies:  cookies,
	}
}

func removeFile(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logging.E("Failed to remove cookie file %q: %v", path, err)
	}
}
