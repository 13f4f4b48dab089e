package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/lix/internal/models"
	"github.com/desertthunder/lix/internal/services"
	"github.com/desertthunder/lix/internal/shared"
	"github.com/desertthunder/lix/internal/store"
)

// App wires the LinkedIn feed web handlers to their dependencies.
type App struct {
	service  services.Service
	store    store.SessionStore
	sessions *Sessions
	logger   *log.Logger
}

// NewApp creates the web application handler set.
func NewApp(service services.Service, sessionStore store.SessionStore, sessions *Sessions, logger *log.Logger) *App {
	return &App{
		service:  service,
		store:    sessionStore,
		sessions: sessions,
		logger:   logger,
	}
}

// Register attaches every application route to the router.
//
// Middleware must already be registered on the router.
func (a *App) Register(r Router) {
	r.HandleFunc(http.MethodGet, "/", a.index)
	r.HandleFunc(http.MethodGet, "/login", a.login)
	r.HandleFunc(http.MethodGet, "/callback", a.callback)
	r.HandleFunc(http.MethodPost, "/create_post", a.createPost)
	r.HandleFunc(http.MethodGet, "/refresh_posts", a.refreshPosts)
	r.HandleFunc(http.MethodGet, "/logout", a.logout)
	r.HandleFunc(http.MethodGet, "/healthz", a.health)
	r.Handler(NewAssets())
}

// index renders the sign-in page, or the member's feed when a session exists.
func (a *App) index(w http.ResponseWriter, r *http.Request) {
	// The mux routes every unmatched path here.
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	memberID, ok := MemberID(r)
	if !ok {
		a.renderSignIn(w, "")
		return
	}

	record, err := a.store.Get(memberID)
	if err != nil {
		// Valid cookie but no stored token; force re-authentication.
		a.sessions.Clear(w)
		a.renderSignIn(w, "")
		return
	}

	a.render(w, IndexData{Authenticated: true, Posts: a.feed(r.Context(), record)})
}

// login redirects the browser to the LinkedIn authorization page.
func (a *App) login(w http.ResponseWriter, r *http.Request) {
	state, err := shared.GenerateState()
	if err != nil {
		a.logger.Error("failed to generate state", "error", err)
		http.Error(w, "Failed to generate LinkedIn auth URL", http.StatusInternalServerError)
		return
	}

	url, err := a.service.AuthURL(state)
	if err != nil {
		a.logger.Error("failed to build authorization URL", "error", err)
		http.Error(w, "Failed to generate LinkedIn auth URL", http.StatusInternalServerError)
		return
	}

	writeStateCookie(w, state)
	http.Redirect(w, r, url, http.StatusFound)
}

// callback completes the authorization code flow.
//
// The provider error is checked before anything else, so a response carrying
// both error and code still fails. The state parameter must match the value
// issued to this browser when the flow started.
func (a *App) callback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if errParam := query.Get("error"); errParam != "" {
		a.logger.Error("authorization denied", "error", errParam, "description", query.Get("error_description"))
		http.Error(w, fmt.Sprintf("LinkedIn authorization failed: %s", errParam), http.StatusBadRequest)
		return
	}

	code := query.Get("code")
	if code == "" {
		a.logger.Error("no authorization code received")
		http.Error(w, "No authorization code received", http.StatusBadRequest)
		return
	}

	expected, err := readStateCookie(r)
	if err != nil || expected == "" || query.Get("state") != expected {
		a.logger.Error("state parameter mismatch on callback")
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}
	clearStateCookie(w)

	token, err := a.service.Exchange(r.Context(), code)
	if err != nil {
		a.logger.Error("token exchange failed", "error", err)
		http.Error(w, "Failed to retrieve access token from LinkedIn", http.StatusInternalServerError)
		return
	}

	profile, err := a.service.Profile(r.Context(), token.AccessToken)
	if err != nil {
		a.logger.Error("profile fetch failed", "error", err)
		http.Error(w, "Failed to retrieve user profile from LinkedIn", http.StatusInternalServerError)
		return
	}

	record := store.TokenRecord{
		MemberID:    profile.ID,
		AccessToken: token.AccessToken,
		AuthorURN:   profile.URN(),
		CreatedAt:   time.Now(),
		ExpiresAt:   token.Expiry,
	}
	if err := a.store.Put(record); err != nil {
		a.logger.Error("failed to store token record", "error", err)
		http.Error(w, "Failed to persist session", http.StatusInternalServerError)
		return
	}

	if err := a.sessions.Write(w, profile.ID); err != nil {
		a.logger.Error("failed to issue session cookie", "error", err)
		http.Error(w, "Failed to establish session", http.StatusInternalServerError)
		return
	}

	a.logger.Info("member authenticated", "member", profile.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// createPost publishes the submitted form content to LinkedIn.
func (a *App) createPost(w http.ResponseWriter, r *http.Request) {
	memberID, ok := MemberID(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	record, err := a.store.Get(memberID)
	if err != nil {
		a.sessions.Clear(w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	content := strings.TrimSpace(r.FormValue("post_content"))
	if content == "" {
		a.render(w, IndexData{
			Authenticated: true,
			Posts:         []models.Post{},
			Error:         "Post content cannot be empty.",
		})
		return
	}

	if _, err := a.service.CreatePost(r.Context(), record.AccessToken, record.AuthorURN, content); err != nil {
		a.logger.Error("failed to create post", "member", memberID, "error", err)
		a.render(w, IndexData{
			Authenticated: true,
			Posts:         a.feed(r.Context(), record),
			Error:         "Failed to create post.",
		})
		return
	}

	a.logger.Info("post published", "member", memberID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// refreshPosts re-fetches the member's posts and renders the feed.
func (a *App) refreshPosts(w http.ResponseWriter, r *http.Request) {
	memberID, ok := MemberID(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	record, err := a.store.Get(memberID)
	if err != nil {
		a.sessions.Clear(w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	a.render(w, IndexData{Authenticated: true, Posts: a.feed(r.Context(), record)})
}

// logout deletes the stored token record and clears the session cookie.
func (a *App) logout(w http.ResponseWriter, r *http.Request) {
	if memberID, ok := MemberID(r); ok {
		if err := a.store.Delete(memberID); err != nil {
			a.logger.Error("failed to delete token record", "member", memberID, "error", err)
		}
	}

	a.sessions.Clear(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// health reports liveness for deployment probes.
func (a *App) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, `{"status":"ok"}`)
}

// renderSignIn shows the sign-in page with a fresh authorization URL.
//
// When credentials are missing the page renders without a sign-in link so the
// operator sees the configuration problem instead of a broken redirect.
func (a *App) renderSignIn(w http.ResponseWriter, errMsg string) {
	data := IndexData{Error: errMsg}

	state, err := shared.GenerateState()
	if err != nil {
		a.logger.Error("failed to generate state", "error", err)
		a.render(w, data)
		return
	}

	url, err := a.service.AuthURL(state)
	if err != nil {
		a.logger.Warn("authorization URL unavailable", "error", err)
		if data.Error == "" {
			data.Error = "LinkedIn credentials are not configured."
		}
		a.render(w, data)
		return
	}

	writeStateCookie(w, state)
	data.AuthURL = url
	a.render(w, data)
}

// feed fetches the member's posts, degrading to an empty feed on API errors.
func (a *App) feed(ctx context.Context, record store.TokenRecord) []models.Post {
	posts, err := a.service.FetchPosts(ctx, record.AccessToken, record.AuthorURN)
	if err != nil {
		a.logger.Error("failed to fetch posts", "member", record.MemberID, "error", err)
		return []models.Post{}
	}

	return posts
}

// render writes the feed page.
func (a *App) render(w http.ResponseWriter, data IndexData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := templates.ExecuteTemplate(w, "index.html", data); err != nil {
		a.logger.Error("failed to render template", "error", err)
	}
}
