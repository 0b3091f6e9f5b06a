package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"vidgrab/internal/logging"
	"vidgrab/internal/parsing"
)

var (
	//go:embed templates/*.html
	templateFS embed.FS

	//go:embed static
	staticFS embed.FS
)

const (
	pageIndex   = "index.html"
	pageResults = "results.html"
	pageVideo   = "video.html"
	pageDone    = "done.html"
)

type pages map[string]*template.Template

var templateFuncs = template.FuncMap{
	"duration": func(seconds float64) string {
		return parsing.FormatDuration(int(seconds))
	},
	"filesize": formatFilesize,
}

// loadPages parses every page against the shared layout.
func loadPages() (pages, error) {
	p := make(pages)
	for _, name := range []string{pageIndex, pageResults, pageVideo, pageDone} {
		t, err := template.New(name).Funcs(templateFuncs).ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %q: %w", name, err)
		}
		p[name] = t
	}
	return p, nil
}

// render executes a page into a buffer so template errors become a 500.
func (p pages) render(w http.ResponseWriter, name string, data any) {
	t, ok := p[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		logging.E("Failed to render %q: %v", name, err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		logging.D(1, "Failed writing %q response: %v", name, err)
	}
}

// formatFilesize renders a byte count in binary units.
func formatFilesize(n int64) string {
	if n <= 0 {
		return "-"
	}
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
