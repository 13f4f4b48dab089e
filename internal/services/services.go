// package services defines interfaces for interacting with HTTP APIs
//
// LinkedIn (profile, shares), Gemini (text generation)
package services

import (
	"context"

	"github.com/desertthunder/lix/internal/models"
	"golang.org/x/oauth2"
)

// Service defines the interface for feed providers that authenticate members
// and read and publish their posts.
type Service interface {
	// AuthURL returns the provider authorization URL embedding the given state.
	// Wraps shared.ErrMissingConfig when credentials are incomplete, never
	// returning a malformed URL.
	AuthURL(state string) (string, error)

	// Exchange trades an authorization code for an access token.
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)

	// Profile retrieves the authenticated member's identity.
	Profile(ctx context.Context, accessToken string) (*models.Profile, error)

	// FetchPosts retrieves the first page of the member's posts.
	// A response without elements yields an empty slice, not an error.
	FetchPosts(ctx context.Context, accessToken, authorURN string) ([]models.Post, error)

	// FetchAllPosts pages through the member's full post history.
	FetchAllPosts(ctx context.Context, accessToken, authorURN string, pageSize int) ([]models.Post, error)

	// CreatePost publishes text as a new share and returns the created post ID.
	CreatePost(ctx context.Context, accessToken, authorURN, text string) (string, error)

	// Name returns the name of the provider (e.g., "LinkedIn")
	Name() string
}

// Generator defines the interface for text generation providers backing
// the drafting features.
type Generator interface {
	// Generate produces text for an arbitrary prompt.
	Generate(ctx context.Context, prompt string) (string, error)

	// Summarize produces a short summary of existing post text.
	Summarize(ctx context.Context, text string) (string, error)

	// Name returns the name of the provider (e.g., "Gemini")
	Name() string
}
