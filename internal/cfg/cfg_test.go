package cfg

import (
	"os"
	"path/filepath"
	"testing"

	"vidgrab/internal/domain/keys"

	"github.com/spf13/viper"
)

func TestLoadConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "vidgrab.yaml")
	content := "port: 6000\nsearch-provider: scrape\ncookie-wait: 2s\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if err := loadConfigFile(path); err != nil {
		t.Fatalf("loadConfigFile() error: %v", err)
	}
	if got := viper.GetInt(keys.Port); got != 6000 {
		t.Errorf("port = %d, want 6000", got)
	}
	if got := viper.GetString(keys.SearchProvider); got != "scrape" {
		t.Errorf("search provider = %q, want scrape", got)
	}
	if got := viper.GetDuration(keys.CookieWait).Seconds(); got != 2 {
		t.Errorf("cookie wait = %vs, want 2s", got)
	}
}

func TestLoadTomlConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "vidgrab.toml")
	content := "port = 7000\nheadless = false\ncookie-file = \"/tmp/cookies.txt\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if err := loadConfigFile(path); err != nil {
		t.Fatalf("loadConfigFile() error: %v", err)
	}
	if got := viper.GetInt(keys.Port); got != 7000 {
		t.Errorf("port = %d, want 7000", got)
	}
	if viper.GetBool(keys.Headless) {
		t.Error("headless = true, want false")
	}
	if got := viper.GetString(keys.CookieFile); got != "/tmp/cookies.txt" {
		t.Errorf("cookie file = %q, want /tmp/cookies.txt", got)
	}
}

func TestLoadConfigFileRejectsDirectory(t *testing.T) {
	t.Cleanup(viper.Reset)

	if err := loadConfigFile(t.TempDir()); err == nil {
		t.Fatal("expected error for a directory")
	}
}

func TestLoadConfigFileRejectsBadToml(t *testing.T) {
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "broken.toml")
	if err := os.WriteFile(path, []byte("port = = 1\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if err := loadConfigFile(path); err == nil {
		t.Fatal("expected decode error")
	}
}
