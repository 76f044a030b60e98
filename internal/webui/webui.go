// Package webui serves the server-rendered trip planning dashboard.
package webui

import (
	"bytes"
	"context"
	"eld-trip-planner/internal/domain"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"math"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/klauspost/compress/gzhttp"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Planner runs one form submission. Implemented by services.TripService.
type Planner interface {
	Plan(ctx context.Context, req domain.TripRequest) (*domain.TripResult, error)
}

type WebUI struct {
	planner Planner
	tmpl    *template.Template
	static  fs.FS
}

// New builds the dashboard. When staticDir is set, assets are read from disk
// instead of the embedded bundle.
func New(p Planner, staticDir string) (*WebUI, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"hours":      formatHours,
		"miles":      func(f float64) int { return int(math.Round(f)) },
		"restTitle":  restStopTitle,
		"hourLabels": hourLabels,
		"overCycle":  func(h float64) bool { return h > domain.CycleLimitHours },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("webui: parse templates: %w", err)
	}

	var assets fs.FS
	if staticDir != "" {
		st, err := os.Stat(staticDir)
		if err != nil {
			return nil, fmt.Errorf("webui: static dir: %w", err)
		}
		if !st.IsDir() {
			return nil, fmt.Errorf("webui: static dir %q is not a directory", staticDir)
		}
		assets = os.DirFS(staticDir)
	} else {
		assets, err = fs.Sub(staticFS, "static")
		if err != nil {
			return nil, fmt.Errorf("webui: static bundle: %w", err)
		}
	}

	return &WebUI{planner: p, tmpl: tmpl, static: assets}, nil
}

// Handler returns the dashboard routes, gzip-compressed. Any GET that matches
// neither a route nor an asset renders the entry document.
func (ui *WebUI) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/", ui.index)
	r.Post("/plan", ui.plan)
	r.Get("/static/*", ui.serveStatic)
	r.NotFound(ui.fallback)
	return gzhttp.GzipHandler(r)
}

func (ui *WebUI) index(w http.ResponseWriter, r *http.Request) {
	tab := ParseTab(r.URL.Query().Get("tab"))
	ui.render(w, http.StatusOK, newPage(TabState{}.Navigate(tab)))
}

func (ui *WebUI) fallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}
	ui.index(w, r)
}

// render executes the page into a buffer first so a template error never
// leaves a half-written response.
func (ui *WebUI) render(w http.ResponseWriter, status int, p page) {
	var buf bytes.Buffer
	if err := ui.tmpl.ExecuteTemplate(&buf, "index.html", p); err != nil {
		log.Printf("render dashboard failed: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
