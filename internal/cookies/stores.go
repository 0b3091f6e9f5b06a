package cookies

import (
	"context"
	"net/http"

	"vidgrab/internal/logging"

	"github.com/browserutils/kooky"
	// Use all browsers for Kooky:
	_ "github.com/browserutils/kooky/browser/all"
)

// BrowserStores reads cookies from the local browsers' cookie stores.
type BrowserStores struct{}

// ReadCookies loads the valid cookies associated with a domain.
//
// Stores that cannot be read are skipped by kooky, so the only error is ctx's.
func (BrowserStores) ReadCookies(ctx context.Context, domain string) ([]*http.Cookie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	kookyCookies := kooky.ReadCookies(kooky.Valid, kooky.DomainHasSuffix(domain))
	logging.D(1, "Found %d stored browser cookies for %s", len(kookyCookies), domain)
	return convertToHTTPCookies(kookyCookies), nil
}

// convertToHTTPCookies converts kooky cookies to http.Cookie format.
func convertToHTTPCookies(kookyCookies []*kooky.Cookie) []*http.Cookie {
	httpCookies := make([]*http.Cookie, len(kookyCookies))
	for i, c := range kookyCookies {
		httpCookies[i] = &http.Cookie{
			Name:    c.Name,
			Value:   c.Value,
			Path:    c.Path,
			Domain:  c.Domain,
			Secure:  c.Secure,
			Expires: c.Expires,
		}
	}
	return httpCookies
}
