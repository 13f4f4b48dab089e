// LinkedIn API implementation of [Service]
//
// Response types based on https://learn.microsoft.com/en-us/linkedin/consumer/integrations/self-serve/share-on-linkedin
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/desertthunder/lix/internal/models"
	"github.com/desertthunder/lix/internal/shared"
	"golang.org/x/oauth2"
)

const (
	linkedinAuthURL  = "https://www.linkedin.com/oauth/v2/authorization"
	linkedinTokenURL = "https://www.linkedin.com/oauth/v2/accessToken"
	linkedinBaseURL  = "https://api.linkedin.com/v2"

	// shareContentKey is the specificContent entry carrying commentary text.
	shareContentKey = "com.linkedin.ugc.ShareContent"
	// memberVisibilityKey selects who can see a created share.
	memberVisibilityKey = "com.linkedin.ugc.MemberNetworkVisibility"

	// restliHeader is required on v2 UGC write calls.
	restliHeader  = "X-Restli-Protocol-Version"
	restliVersion = "2.0.0"

	defaultRedirectURI = "http://localhost:8000/callback"
	defaultPageSize    = 50
)

// linkedinScopes are requested during authorization.
var linkedinScopes = []string{"r_liteprofile", "r_emailaddress", "w_member_social"}

// LinkedInProfile represents the /me profile response.
type LinkedInProfile struct {
	ID                 string `json:"id"`
	LocalizedFirstName string `json:"localizedFirstName"`
	LocalizedLastName  string `json:"localizedLastName"`
}

type shareCommentary struct {
	Text string `json:"text"`
}

type shareContent struct {
	ShareCommentary    shareCommentary `json:"shareCommentary"`
	ShareMediaCategory string          `json:"shareMediaCategory"`
}

type ugcCreated struct {
	Time int64 `json:"time"` // epoch milliseconds
}

type ugcPaging struct {
	Start int `json:"start"`
	Count int `json:"count"`
	Total int `json:"total"`
}

// LinkedInPost represents a single UGC element from the posts listing.
type LinkedInPost struct {
	ID              string                  `json:"id"`
	Created         ugcCreated              `json:"created"`
	SpecificContent map[string]shareContent `json:"specificContent"`
}

// LinkedInPosts represents the UGC posts listing.
type LinkedInPosts struct {
	Elements []LinkedInPost `json:"elements"`
	Paging   ugcPaging      `json:"paging"`
}

// ugcShare is the request payload for creating a text share.
type ugcShare struct {
	Author          string                  `json:"author"`
	LifecycleState  string                  `json:"lifecycleState"`
	SpecificContent map[string]shareContent `json:"specificContent"`
	Visibility      map[string]string       `json:"visibility"`
}

// LinkedInService implements the [Service] interface for LinkedIn API interactions.
// Uses [oauth2] for the authorization-code flow; API calls carry per-member bearer tokens.
type LinkedInService struct {
	config     *oauth2.Config
	httpClient *http.Client
	baseURL    string
}

// NewLinkedInService creates a LinkedIn service with the given OAuth2 credentials.
//
// Construction never fails: absent credentials surface as shared.ErrMissingConfig
// from [LinkedInService.AuthURL] or [LinkedInService.Exchange], so the web
// server can boot unconfigured and report the problem at login time.
func NewLinkedInService(credentials map[string]string) *LinkedInService {
	redirectURI := credentials["redirect_uri"]
	if redirectURI == "" {
		redirectURI = defaultRedirectURI
	}

	config := &oauth2.Config{
		ClientID:     credentials["client_id"],
		ClientSecret: credentials["client_secret"],
		RedirectURL:  redirectURI,
		Scopes:       linkedinScopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  linkedinAuthURL,
			TokenURL: linkedinTokenURL,
			// LinkedIn wants client credentials in the POST body.
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	return &LinkedInService{
		config:     config,
		httpClient: http.DefaultClient,
		baseURL:    linkedinBaseURL,
	}
}

func (s *LinkedInService) Name() string {
	return "LinkedIn"
}

// AuthURL returns the OAuth2 authorization URL for member login.
func (s *LinkedInService) AuthURL(state string) (string, error) {
	if s.config == nil || s.config.ClientID == "" {
		return "", fmt.Errorf("%w: linkedin client_id is not set", shared.ErrMissingConfig)
	}
	if s.config.RedirectURL == "" {
		return "", fmt.Errorf("%w: linkedin redirect_uri is not set", shared.ErrMissingConfig)
	}
	return s.config.AuthCodeURL(state), nil
}

// Exchange trades an authorization code for an access token.
func (s *LinkedInService) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: empty authorization code", shared.ErrInvalidInput)
	}
	if s.config == nil || s.config.ClientID == "" || s.config.ClientSecret == "" {
		return nil, fmt.Errorf("%w: linkedin client credentials are not set", shared.ErrMissingConfig)
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
	token, err := s.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: token exchange: %v", shared.ErrAuthFailed, err)
	}

	return token, nil
}

// doRequest performs an authenticated HTTP request against the LinkedIn API.
//
// Write requests are JSON encoded and carry the Rest.li protocol header.
func (s *LinkedInService) doRequest(ctx context.Context, method, endpoint, accessToken string, body, result any) error {
	if accessToken == "" {
		return fmt.Errorf("%w: no access token", shared.ErrNotAuthenticated)
	}

	apiURL := s.baseURL + endpoint

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(restliHeader, restliVersion)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		if len(detail) > 0 {
			return fmt.Errorf("%w: status %d: %s", shared.ErrAPIRequest, resp.StatusCode, strings.TrimSpace(string(detail)))
		}
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Profile retrieves the authenticated member's profile.
func (s *LinkedInService) Profile(ctx context.Context, accessToken string) (*models.Profile, error) {
	var profile LinkedInProfile
	if err := s.doRequest(ctx, "GET", "/me", accessToken, nil, &profile); err != nil {
		return nil, err
	}

	return &models.Profile{
		ID:        profile.ID,
		FirstName: profile.LocalizedFirstName,
		LastName:  profile.LocalizedLastName,
	}, nil
}

// FetchPosts retrieves the first page of the member's shares.
func (s *LinkedInService) FetchPosts(ctx context.Context, accessToken, authorURN string) ([]models.Post, error) {
	if authorURN == "" {
		return nil, fmt.Errorf("%w: no author URN", shared.ErrNotAuthenticated)
	}

	endpoint := fmt.Sprintf("/ugcPosts?author=%s", url.QueryEscape(authorURN))

	var listing LinkedInPosts
	if err := s.doRequest(ctx, "GET", endpoint, accessToken, nil, &listing); err != nil {
		return nil, err
	}

	return mapPosts(listing.Elements), nil
}

// FetchAllPosts pages through the member's full share history.
// pageSize falls back to 50 when zero or negative.
func (s *LinkedInService) FetchAllPosts(ctx context.Context, accessToken, authorURN string, pageSize int) ([]models.Post, error) {
	if authorURN == "" {
		return nil, fmt.Errorf("%w: no author URN", shared.ErrNotAuthenticated)
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	all := []models.Post{}
	start := 0

	for {
		endpoint := fmt.Sprintf("/ugcPosts?author=%s&start=%d&count=%d", url.QueryEscape(authorURN), start, pageSize)

		var listing LinkedInPosts
		if err := s.doRequest(ctx, "GET", endpoint, accessToken, nil, &listing); err != nil {
			return nil, err
		}

		all = append(all, mapPosts(listing.Elements)...)

		// A short page means the listing is exhausted.
		if len(listing.Elements) < pageSize {
			break
		}
		start += pageSize
	}

	return all, nil
}

// CreatePost publishes text as a new PUBLIC text share.
func (s *LinkedInService) CreatePost(ctx context.Context, accessToken, authorURN, text string) (string, error) {
	if text == "" {
		return "", fmt.Errorf("%w: post content is empty", shared.ErrInvalidInput)
	}
	if authorURN == "" {
		return "", fmt.Errorf("%w: no author URN", shared.ErrNotAuthenticated)
	}

	share := ugcShare{
		Author:         authorURN,
		LifecycleState: "PUBLISHED",
		SpecificContent: map[string]shareContent{
			shareContentKey: {
				ShareCommentary:    shareCommentary{Text: text},
				ShareMediaCategory: "NONE",
			},
		},
		Visibility: map[string]string{memberVisibilityKey: "PUBLIC"},
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := s.doRequest(ctx, "POST", "/ugcPosts", accessToken, share, &created); err != nil {
		return "", err
	}

	return created.ID, nil
}

// mapPosts converts UGC elements into view models. The author name is fixed
// to "You" since only the member's own posts are listed.
func mapPosts(elements []LinkedInPost) []models.Post {
	posts := make([]models.Post, 0, len(elements))
	for _, element := range elements {
		post := models.Post{
			ID:         element.ID,
			AuthorName: "You",
		}
		if content, ok := element.SpecificContent[shareContentKey]; ok {
			post.Text = content.ShareCommentary.Text
		}
		if element.Created.Time > 0 {
			post.CreatedAt = time.UnixMilli(element.Created.Time)
		}
		posts = append(posts, post)
	}
	return posts
}
