// Package ui embeds the admin login page and the dashboard shell.
package ui

import (
	"bytes"
	"embed"
	"io/fs"
	"net/http"
	"time"
)

//go:embed pages
var pages embed.FS

// startedAt stands in for the embedded files' modification time, which
// embed.FS does not record.
var startedAt = time.Now()

// Pages returns the embedded page files, rooted at pages/.
func Pages() fs.FS {
	sub, err := fs.Sub(pages, "pages")
	if err != nil {
		panic(err) // the directory is embedded at build time
	}
	return sub
}

// LoginPage serves the sign-in form.
func LoginPage(w http.ResponseWriter, r *http.Request) {
	servePage(w, r, "login.html")
}

// AdminShell serves the dashboard page for every /admin route.
func AdminShell(w http.ResponseWriter, r *http.Request) {
	servePage(w, r, "admin.html")
}

func servePage(w http.ResponseWriter, r *http.Request, name string) {
	data, err := fs.ReadFile(Pages(), name)
	if err != nil {
		http.Error(w, "page not available", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	http.ServeContent(w, r, name, startedAt, bytes.NewReader(data))
}
