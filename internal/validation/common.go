// Package validation checks user configuration before the server starts.
package validation

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"vidgrab/internal/domain/consts"
	"vidgrab/internal/domain/keys"
	"vidgrab/internal/logging"

	"github.com/spf13/viper"
)

// ValidateDirectory validates that the directory exists, else creates it if desired.
func ValidateDirectory(dir string, createIfNotFound bool) (os.FileInfo, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("directory path is empty")
	}
	logging.D(3, "Statting directory %q...", dir)

	info, err := os.Stat(dir)
	switch {
	case err == nil:
		if !info.IsDir() {
			return nil, fmt.Errorf("path %q is a file, not a directory", dir)
		}
		return info, nil

	case os.IsNotExist(err) && createIfNotFound:
		logging.D(1, "Directory %q does not exist, creating it", dir)
		if err := os.MkdirAll(dir, consts.PermsGenericDir); err != nil {
			return nil, fmt.Errorf("directory %q does not exist and creation failed: %w", dir, err)
		}
		return os.Stat(dir)

	default:
		return nil, fmt.Errorf("failed to stat directory %q: %w", dir, err)
	}
}

// ValidatePort checks the port is in the usable range.
func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("port %d is out of range (1-65535)", port)
	}
	return nil
}

// ValidateSearchProvider checks the search provider name is known.
func ValidateSearchProvider(p string) error {
	switch strings.ToLower(p) {
	case consts.SearchProviderYtsearch, consts.SearchProviderScrape:
		return nil
	default:
		return fmt.Errorf("unknown search provider %q (use %q or %q)", p, consts.SearchProviderYtsearch, consts.SearchProviderScrape)
	}
}

// ValidateSearchLimit clamps the search limit to a sensible range.
func ValidateSearchLimit(n int) int {
	if n <= 0 {
		return consts.DefaultSearchLimit
	}
	if n > 50 {
		return 50
	}
	return n
}

// ValidateDebugLevel clamps the debug level to 0 - 5.
func ValidateDebugLevel(l int) int {
	switch {
	case l < 0:
		return 0
	case l > 5:
		return 5
	default:
		return l
	}
}

// ValidateViperFlags verifies that the user input flags are valid, modifying them to defaults or returning errors.
func ValidateViperFlags() error {
	if err := ValidatePort(viper.GetInt(keys.Port)); err != nil {
		return err
	}

	if _, err := ValidateDirectory(viper.GetString(keys.WorkDir), true); err != nil {
		return fmt.Errorf("invalid work directory: %w", err)
	}

	if err := ValidateSearchProvider(viper.GetString(keys.SearchProvider)); err != nil {
		return err
	}
	viper.Set(keys.SearchLimit, ValidateSearchLimit(viper.GetInt(keys.SearchLimit)))
	viper.Set(keys.DebugLevel, ValidateDebugLevel(viper.GetInt(keys.DebugLevel)))

	if viper.GetDuration(keys.CookieWait) < 0 {
		return fmt.Errorf("cookie wait %v cannot be negative", viper.GetDuration(keys.CookieWait))
	}

	// A missing cookie file is allowed, requests then proceed without cookies
	if f := viper.GetString(keys.CookieFile); f != "" {
		if info, err := os.Stat(f); err != nil {
			logging.W("Cookie file %q not found, fallback requests will run without cookies", f)
		} else if info.IsDir() {
			return fmt.Errorf("cookie file %q is a directory", f)
		}
	}
	return nil
}

// ValidateFile checks the path is an existing, non-empty regular file.
func ValidateFile(path string) (os.FileInfo, error) {
	info, err := os.Stat(path)
	switch {
	case err != nil:
		return nil, fmt.Errorf("failed check for file path %q: %w", path, err)
	case info.IsDir():
		return nil, fmt.Errorf("file %q passed in as directory, should be file", path)
	case !info.Mode().IsRegular():
		return nil, fmt.Errorf("%q is not a regular file", path)
	case info.Size() == 0:
		return nil, fmt.Errorf("file %q is empty", path)
	}
	return info, nil
}
