package cookies

import (
	"bufio"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"vidgrab/internal/domain/consts"
	"vidgrab/internal/logging"
)

const (
	netscapeHeader = "# Netscape HTTP Cookie File\n# https://curl.haxx.se/rfc/cookie_spec.html\n# This is a generated file! Do not edit.\n\n"
	httpOnlyPrefix = "#HttpOnly_"
)

// WriteNetscapeFile saves the cookies to a file in Netscape format.
//
// Cookies without a domain are written under fallbackDomain.
func WriteNetscapeFile(path string, cookies []*http.Cookie, fallbackDomain string) (err error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, consts.PermsCookieFile)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	w := bufio.NewWriter(file)
	if _, err := w.WriteString(netscapeHeader); err != nil {
		return err
	}

	logging.D(2, "Saving %d cookies to file %s...", len(cookies), path)

	for _, cookie := range cookies {
		domain := cookie.Domain
		if domain == "" {
			domain = fallbackDomain
		}
		if domain == "" {
			continue
		}

		includeSubdomains := "FALSE"
		if strings.HasPrefix(domain, ".") {
			includeSubdomains = "TRUE"
		}

		cookiePath := cookie.Path
		if cookiePath == "" {
			cookiePath = "/"
		}

		secure := "FALSE"
		if cookie.Secure {
			secure = "TRUE"
		}

		expires := int64(0)
		if !cookie.Expires.IsZero() {
			expires = cookie.Expires.Unix()
		}

		if cookie.HttpOnly {
			domain = httpOnlyPrefix + domain
		}

		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			domain, includeSubdomains, cookiePath, secure, expires, cookie.Name, cookie.Value); err != nil {
			return err
		}
	}
	return w.Flush()
}

// ReadNetscapeFile parses a Netscape cookie file.
//
// Comment and malformed lines are skipped.
func ReadNetscapeFile(path string) ([]*http.Cookie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cookies []*http.Cookie
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		httpOnly := false
		if strings.HasPrefix(line, httpOnlyPrefix) {
			httpOnly = true
			line = strings.TrimPrefix(line, httpOnlyPrefix)
		} else if strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 7 {
			continue
		}

		c := &http.Cookie{
			Domain:   fields[0],
			Path:     fields[2],
			Secure:   fields[3] == "TRUE",
			Name:     fields[5],
			Value:    fields[6],
			HttpOnly: httpOnly,
		}
		if exp, err := strconv.ParseInt(fields[4], 10, 64); err == nil && exp > 0 {
			c.Expires = time.Unix(exp, 0)
		}
		cookies = append(cookies, c)
	}
	if err := scanner.Err(); err != nil {
		return cookies, fmt.Errorf("failed reading cookie file %q: %w", path, err)
	}
	return cookies, nil
}
