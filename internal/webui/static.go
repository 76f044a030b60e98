package webui

import (
	"io/fs"
	"log"
	"net/http"
	"path"
	"strings"
)

var allowedExtensions = map[string]bool{
	".html": true, ".css": true, ".js": true, ".map": true,
	".png": true, ".jpg": true, ".jpeg": true, ".svg": true,
	".ico": true, ".json": true, ".txt": true, ".woff": true, ".woff2": true,
}

// serveStatic serves /static/<name> from the asset bundle. Unknown assets
// fall through to the entry document like any other unmatched route.
func (ui *WebUI) serveStatic(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/static/")

	// Ensure no path traversal attempts
	if strings.Contains(name, "..") || strings.Contains(name, `\`) || strings.HasPrefix(name, "/") {
		log.Printf("path traversal attempt blocked: path=%q", r.URL.Path)
		http.Error(w, "Invalid file name", http.StatusBadRequest)
		return
	}

	if !fs.ValidPath(name) || !allowedExtensions[strings.ToLower(path.Ext(name))] {
		ui.index(w, r)
		return
	}

	st, err := fs.Stat(ui.static, name)
	if err != nil || st.IsDir() {
		ui.index(w, r)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=3600")
	http.ServeFileFS(w, r, ui.static, name)
}
