package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/desertthunder/lix/internal/shared"
)

const (
	// SessionCookieName carries the signed member session between requests.
	SessionCookieName = "lix_session"

	// stateCookieName holds the pending OAuth state during the authorization round trip.
	stateCookieName = "lix_oauth_state"

	// stateCookieMaxAge bounds how long an authorization round trip may take.
	stateCookieMaxAge = 10 * time.Minute
)

// sessionClaims is the JWT payload stored in the session cookie.
type sessionClaims struct {
	jwt.RegisteredClaims
	MemberID string `json:"member_id"`
}

// Sessions signs and verifies the browser session cookie.
//
// The cookie value is an HS256 JWT carrying the LinkedIn member ID. Access
// tokens never leave the server; the cookie only identifies which stored
// record belongs to the request.
type Sessions struct {
	secret []byte
	ttl    time.Duration
}

// NewSessions creates a session codec from the shared secret.
//
// The TTL bounds both the JWT expiry and the cookie max age. A zero or
// negative TTL falls back to 24 hours.
func NewSessions(secret string, ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &Sessions{secret: []byte(secret), ttl: ttl}
}

// Issue signs a session token for the given member ID.
func (s *Sessions) Issue(memberID string) (string, error) {
	if memberID == "" {
		return "", fmt.Errorf("%w: empty member ID", shared.ErrInvalidSession)
	}

	now := time.Now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   memberID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		MemberID: memberID,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return token, nil
}

// Verify parses a signed session token and returns the member ID it carries.
func (s *Sessions) Verify(token string) (string, error) {
	var claims sessionClaims

	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%w: session cookie expired", shared.ErrTokenExpired)
		}

		return "", fmt.Errorf("%w: %v", shared.ErrInvalidSession, err)
	}

	if !parsed.Valid || claims.MemberID == "" {
		return "", shared.ErrInvalidSession
	}

	return claims.MemberID, nil
}

// Write issues a session token for the member and sets the session cookie.
func (s *Sessions) Write(w http.ResponseWriter, memberID string) error {
	token, err := s.Issue(memberID)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// Read extracts and verifies the session cookie from the request.
func (s *Sessions) Read(r *http.Request) (string, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return "", fmt.Errorf("%w: no session cookie", shared.ErrNotAuthenticated)
	}

	return s.Verify(cookie.Value)
}

// Clear expires the session cookie.
func (s *Sessions) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Middleware resolves the session cookie into a member ID on the request context.
//
// Requests without a valid session pass through unchanged; handlers decide
// whether authentication is required.
func (s *Sessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if memberID, err := s.Read(r); err == nil {
			r = r.WithContext(context.WithValue(r.Context(), memberContextKey, memberID))
		}

		next.ServeHTTP(w, r)
	})
}

// contextKey scopes values this package stores on request contexts.
type contextKey string

const memberContextKey contextKey = "lix.member"

// MemberID returns the authenticated member ID stored by [Sessions.Middleware].
func MemberID(r *http.Request) (string, bool) {
	memberID, ok := r.Context().Value(memberContextKey).(string)
	return memberID, ok && memberID != ""
}

// writeStateCookie stores the OAuth state for callback validation.
func writeStateCookie(w http.ResponseWriter, state string) {
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   int(stateCookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// readStateCookie returns the pending OAuth state, if any.
func readStateCookie(r *http.Request) (string, error) {
	cookie, err := r.Cookie(stateCookieName)
	if err != nil {
		return "", fmt.Errorf("%w: no pending state", shared.ErrStateMismatch)
	}

	return cookie.Value, nil
}

// clearStateCookie removes the state cookie once the round trip completes.
func clearStateCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
