package models

import "net/http"

// CookieSource is where a cookie set was obtained.
type CookieSource string

const (
	CookieSourceBrowser CookieSource = "browser"
	CookieSourceStore   CookieSource = "browser-store"
	CookieSourceFile    CookieSource = "file"
	CookieSourceNone    CookieSource = "none"
)

// CookieSet holds the cookies for one domain, valid for a single request.
//
// FilePath is the Netscape cookie file handed to the extractor (may be empty).
type CookieSet struct {
	Domain   string
	Source   CookieSource
	FilePath string
	Cookies  []*http.Cookie
}

// Values returns the cookies as a name to value mapping.
func (c *CookieSet) Values() map[string]string {
	if c == nil {
		return nil
	}
	m := make(map[string]string, len(c.Cookies))
	for _, ck := range c.Cookies {
		m[ck.Name] = ck.Value
	}
	return m
}

// Len returns the number of cookies held.
func (c *CookieSet) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Cookies)
}
