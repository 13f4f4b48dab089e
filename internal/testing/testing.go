// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"golang.org/x/oauth2"

	"github.com/desertthunder/lix/internal/models"
)

// MockService is a configurable test double for [services.Service].
//
// Unset function fields fall back to benign defaults so tests only stub
// what they assert on.
type MockService struct {
	AuthURLFunc       func(state string) (string, error)
	ExchangeFunc      func(ctx context.Context, code string) (*oauth2.Token, error)
	ProfileFunc       func(ctx context.Context, accessToken string) (*models.Profile, error)
	FetchPostsFunc    func(ctx context.Context, accessToken, authorURN string) ([]models.Post, error)
	FetchAllPostsFunc func(ctx context.Context, accessToken, authorURN string, pageSize int) ([]models.Post, error)
	CreatePostFunc    func(ctx context.Context, accessToken, authorURN, text string) (string, error)
}

func (m *MockService) AuthURL(state string) (string, error) {
	if m.AuthURLFunc != nil {
		return m.AuthURLFunc(state)
	}
	return "https://auth.example.com/authorize?state=" + state, nil
}

func (m *MockService) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, code)
	}
	return &oauth2.Token{AccessToken: "mock-access-token"}, nil
}

func (m *MockService) Profile(ctx context.Context, accessToken string) (*models.Profile, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx, accessToken)
	}
	return &models.Profile{ID: "mock-member", FirstName: "Mock", LastName: "Member"}, nil
}

func (m *MockService) FetchPosts(ctx context.Context, accessToken, authorURN string) ([]models.Post, error) {
	if m.FetchPostsFunc != nil {
		return m.FetchPostsFunc(ctx, accessToken, authorURN)
	}
	return []models.Post{}, nil
}

func (m *MockService) FetchAllPosts(ctx context.Context, accessToken, authorURN string, pageSize int) ([]models.Post, error) {
	if m.FetchAllPostsFunc != nil {
		return m.FetchAllPostsFunc(ctx, accessToken, authorURN, pageSize)
	}
	return m.FetchPosts(ctx, accessToken, authorURN)
}

func (m *MockService) CreatePost(ctx context.Context, accessToken, authorURN, text string) (string, error) {
	if m.CreatePostFunc != nil {
		return m.CreatePostFunc(ctx, accessToken, authorURN, text)
	}
	return "urn:li:share:mock", nil
}

func (m *MockService) Name() string { return "mock" }

// MockGenerator is a configurable test double for [services.Generator].
type MockGenerator struct {
	GenerateFunc  func(ctx context.Context, prompt string) (string, error)
	SummarizeFunc func(ctx context.Context, text string) (string, error)
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt)
	}
	return "generated text", nil
}

func (m *MockGenerator) Summarize(ctx context.Context, text string) (string, error) {
	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, text)
	}
	return "summary", nil
}

func (m *MockGenerator) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
