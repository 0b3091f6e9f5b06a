package ytdlp

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"vidgrab/internal/domain/command"
	"vidgrab/internal/models"
	"vidgrab/internal/parsing"

	"github.com/lrstanley/go-ytdlp"
)

func TestBuildDownloadOptions(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()
	tests := []struct {
		name       string
		dlType     models.DownloadType
		wantFormat string
	}{
		{"video", models.DownloadVideo, command.FormatVideo},
		{"audio", models.DownloadAudio, command.FormatAudio},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := BuildDownloadOptions(tt.dlType, workDir, "/tmp/c.txt")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if opts.Format != tt.wantFormat {
				t.Errorf("format = %q, want %q", opts.Format, tt.wantFormat)
			}
			if want := filepath.Join(workDir, "%(id)s.%(ext)s"); opts.OutputTemplate != want {
				t.Errorf("output template = %q, want %q", opts.OutputTemplate, want)
			}
			if opts.CookieFile != "/tmp/c.txt" {
				t.Errorf("cookie file = %q", opts.CookieFile)
			}
			if opts.SkipDownload {
				t.Error("download options must not skip download")
			}
		})
	}
}

func TestBuildDownloadOptionsRejectsUnknownType(t *testing.T) {
	t.Parallel()

	_, err := BuildDownloadOptions(models.DownloadType("flac"), t.TempDir(), "")
	if !errors.Is(err, parsing.ErrInvalidDownloadType) {
		t.Fatalf("expected ErrInvalidDownloadType, got %v", err)
	}
}

func TestBuildInfoOptions(t *testing.T) {
	t.Parallel()

	opts := BuildInfoOptions("")
	if !opts.SkipDownload || !opts.Quiet || !opts.NoWarnings {
		t.Fatalf("info options should be quiet and skip download: %+v", opts)
	}

	args := opts.Args()
	for _, want := range []string{"--skip-download", "--quiet", "--no-warnings"} {
		if !slices.Contains(args, want) {
			t.Errorf("args %v missing %q", args, want)
		}
	}
	if slices.Contains(args, "--cookies") {
		t.Errorf("args %v should not carry --cookies without a cookie file", args)
	}
}

func TestArgsCarryCookieFile(t *testing.T) {
	t.Parallel()

	opts, err := BuildDownloadOptions(models.DownloadAudio, "/work", "/tmp/cookies.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	args := opts.Args()
	i := slices.Index(args, "--cookies")
	if i < 0 || i+1 >= len(args) || args[i+1] != "/tmp/cookies.txt" {
		t.Fatalf("args %v should pass the cookie file", args)
	}
	j := slices.Index(args, "-f")
	if j < 0 || args[j+1] != command.FormatAudio {
		t.Fatalf("args %v should select the audio format", args)
	}
}

func TestParseInfo(t *testing.T) {
	t.Parallel()

	raw := `{
		"id": "dQw4w9WgXcQ",
		"title": "Test Video",
		"channel": "Test Channel",
		"description": "desc",
		"thumbnail": "https://i.ytimg.com/vi/dQw4w9WgXcQ/hq.jpg",
		"upload_date": "20091025",
		"duration": 212,
		"view_count": 1500,
		"formats": [
			{"format_id": "18", "ext": "mp4", "vcodec": "avc1", "acodec": "mp4a"},
			{"format_id": "140", "ext": "m4a", "vcodec": "none", "acodec": "mp4a"}
		]
	}`

	info, err := parseInfo([]byte(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.ID != "dQw4w9WgXcQ" || info.Title != "Test Video" {
		t.Errorf("unexpected identity: %+v", info)
	}
	if info.Uploader != "Test Channel" {
		t.Errorf("uploader should fall back to channel, got %q", info.Uploader)
	}
	if info.UploadDate != "2009-10-25" {
		t.Errorf("upload date = %q, want 2009-10-25", info.UploadDate)
	}
	if info.Duration != 212 || info.ViewCount != 1500 {
		t.Errorf("unexpected counters: duration %v, views %d", info.Duration, info.ViewCount)
	}
	if len(info.Formats) != 2 || info.Formats[1].HasVideo() {
		t.Errorf("unexpected formats: %+v", info.Formats)
	}
}

func TestParseInfoErrors(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "   ", "not json", `{"title":"no id"}`} {
		if _, err := parseInfo([]byte(raw)); err == nil {
			t.Errorf("parseInfo(%q) should fail", raw)
		}
	}
}

func TestFilenameFromOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		stdout string
		want   string
	}{
		{"single line", "/work/abc.mp4\n", "/work/abc.mp4"},
		{"last media line wins", "/work/abc.f140.m4a\n/work/abc.webm\n\n", "/work/abc.webm"},
		{"noise ignored", "[download] 100%\n/work/abc.m4a\nDone\n", "/work/abc.m4a"},
		{"no media", "nothing here\n", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := filenameFromOutput(tt.stdout); got != tt.want {
				t.Errorf("filenameFromOutput() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEngineError(t *testing.T) {
	t.Parallel()

	base := errors.New("exit status 1")

	if err := engineError(nil, base); err != base {
		t.Fatalf("nil result should return the base error, got %v", err)
	}

	res := &ytdlp.Result{Stderr: "WARNING: something\nERROR: [youtube] abc: Video unavailable\n"}
	err := engineError(res, base)
	if !errors.Is(err, base) {
		t.Fatalf("wrapped error should unwrap to base")
	}
	if want := "ERROR: [youtube] abc: Video unavailable: exit status 1"; err.Error() != want {
		t.Fatalf("error = %q, want %q", err.Error(), want)
	}
}

func TestLastErrorLine(t *testing.T) {
	t.Parallel()

	if got := lastErrorLine("first\nsecond\n"); got != "second" {
		t.Errorf("lastErrorLine() = %q, want second", got)
	}
	if got := lastErrorLine(""); got != "" {
		t.Errorf("lastErrorLine(empty) = %q", got)
	}
}
