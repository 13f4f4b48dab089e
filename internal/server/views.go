package server

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/desertthunder/lix/internal/models"
)

//go:embed views
var viewsFS embed.FS

// templates holds the parsed page templates from the embedded views directory.
var templates = template.Must(template.ParseFS(viewsFS, "views/*.html"))

// IndexData carries everything the feed page can render.
//
// Unauthenticated renders show the sign-in section with AuthURL;
// authenticated renders show the compose form and the member's posts.
type IndexData struct {
	Authenticated bool
	AuthURL       string
	Posts         []models.Post
	Error         string
}

// Assets serves the embedded stylesheets under /static/.
//
// Implements the [Handler] interface.
type Assets struct {
	fileServer http.Handler
}

// NewAssets creates the static asset handler from the embedded views directory.
func NewAssets() *Assets {
	sub, err := fs.Sub(viewsFS, "views/static")
	if err != nil {
		panic("server: embedded static assets missing: " + err.Error())
	}

	return &Assets{
		fileServer: http.StripPrefix("/static/", http.FileServer(http.FS(sub))),
	}
}

// Routes returns the path patterns this handler serves.
func (a *Assets) Routes() []string {
	return []string{"/static/"}
}

// ServeHTTP serves the requested asset.
func (a *Assets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.fileServer.ServeHTTP(w, r)
}
