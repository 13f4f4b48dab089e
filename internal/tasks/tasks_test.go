package tasks

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/lix/internal/shared"
	tu "github.com/desertthunder/lix/internal/testing"
)

func TestPostEngine_Publish(t *testing.T) {
	t.Run("publishes trimmed content", func(t *testing.T) {
		var published string
		svc := &tu.MockService{
			CreatePostFunc: func(ctx context.Context, accessToken, authorURN, text string) (string, error) {
				published = text
				return "urn:li:share:42", nil
			},
		}
		engine := NewPostEngine(svc, nil)

		result, err := engine.Publish(context.Background(), nil, "token", "urn:li:person:abc", "  shipping soon  \n", false)
		if err != nil {
			t.Fatalf("Publish() error = %v", err)
		}

		if published != "shipping soon" {
			t.Errorf("published text = %q, want %q", published, "shipping soon")
		}
		if result.ShareID != "urn:li:share:42" {
			t.Errorf("ShareID = %q, want %q", result.ShareID, "urn:li:share:42")
		}
		if result.Enhanced {
			t.Error("Enhanced should be false without a generator")
		}
	})

	t.Run("requires post content", func(t *testing.T) {
		engine := NewPostEngine(&tu.MockService{}, nil)

		for _, text := range []string{"", "   \n\t "} {
			_, err := engine.Publish(context.Background(), nil, "token", "urn:li:person:abc", text, false)
			if !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("Publish(%q) error = %v, want ErrInvalidInput", text, err)
			}
		}
	})

	t.Run("requires a service", func(t *testing.T) {
		engine := NewPostEngine(nil, nil)

		_, err := engine.Publish(context.Background(), nil, "token", "urn:li:person:abc", "hello", false)
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("Publish() error = %v, want ErrServiceUnavailable", err)
		}
	})

	t.Run("enhances content when requested", func(t *testing.T) {
		var prompt, published string
		svc := &tu.MockService{
			CreatePostFunc: func(ctx context.Context, accessToken, authorURN, text string) (string, error) {
				published = text
				return "urn:li:share:42", nil
			},
		}
		gen := &tu.MockGenerator{
			GenerateFunc: func(ctx context.Context, p string) (string, error) {
				prompt = p
				return " A much better post. ", nil
			},
		}
		engine := NewPostEngine(svc, gen)

		result, err := engine.Publish(context.Background(), nil, "token", "urn:li:person:abc", "a post", true)
		if err != nil {
			t.Fatalf("Publish() error = %v", err)
		}

		if !strings.HasSuffix(prompt, "a post") {
			t.Errorf("generator prompt = %q, should end with the original content", prompt)
		}
		if published != "A much better post." {
			t.Errorf("published text = %q, want the trimmed enhanced content", published)
		}
		if !result.Enhanced {
			t.Error("Enhanced should be true")
		}
	})

	t.Run("falls back when enhancement fails", func(t *testing.T) {
		var published string
		svc := &tu.MockService{
			CreatePostFunc: func(ctx context.Context, accessToken, authorURN, text string) (string, error) {
				published = text
				return "urn:li:share:42", nil
			},
		}
		gen := &tu.MockGenerator{
			GenerateFunc: func(ctx context.Context, p string) (string, error) {
				return "", errors.New("model overloaded")
			},
		}
		engine := NewPostEngine(svc, gen)

		result, err := engine.Publish(context.Background(), nil, "token", "urn:li:person:abc", "a post", true)
		if err != nil {
			t.Fatalf("Publish() error = %v", err)
		}

		if published != "a post" {
			t.Errorf("published text = %q, want the original content", published)
		}
		if result.Enhanced {
			t.Error("Enhanced should be false when generation fails")
		}
	})

	t.Run("skips enhancement without a generator", func(t *testing.T) {
		var published string
		svc := &tu.MockService{
			CreatePostFunc: func(ctx context.Context, accessToken, authorURN, text string) (string, error) {
				published = text
				return "urn:li:share:42", nil
			},
		}
		engine := NewPostEngine(svc, nil)

		if _, err := engine.Publish(context.Background(), nil, "token", "urn:li:person:abc", "a post", true); err != nil {
			t.Fatalf("Publish() error = %v", err)
		}
		if published != "a post" {
			t.Errorf("published text = %q, want the original content", published)
		}
	})

	t.Run("propagates publish errors", func(t *testing.T) {
		svc := &tu.MockService{
			CreatePostFunc: func(ctx context.Context, accessToken, authorURN, text string) (string, error) {
				return "", errors.New("422 unprocessable")
			},
		}
		engine := NewPostEngine(svc, nil)

		if _, err := engine.Publish(context.Background(), nil, "token", "urn:li:person:abc", "a post", false); err == nil {
			t.Error("Publish() expected error from service")
		}
	})

	t.Run("reports progress", func(t *testing.T) {
		engine := NewPostEngine(&tu.MockService{}, nil)

		progressCh := make(chan ProgressUpdate, 16)
		if _, err := engine.Publish(context.Background(), progressCh, "token", "urn:li:person:abc", "a post", false); err != nil {
			t.Fatalf("Publish() error = %v", err)
		}
		close(progressCh)

		updates := []ProgressUpdate{}
		for update := range progressCh {
			updates = append(updates, update)
		}

		if len(updates) != 2 {
			t.Fatalf("got %d progress updates, want 2", len(updates))
		}
		for _, update := range updates {
			if update.Phase != PublishPost {
				t.Errorf("update phase = %v, want PublishPost", update.Phase)
			}
		}
	})
}

func TestPostEngine_Draft(t *testing.T) {
	t.Run("generates a draft", func(t *testing.T) {
		gen := &tu.MockGenerator{
			GenerateFunc: func(ctx context.Context, prompt string) (string, error) {
				return "Excited to announce our Q3 launch!", nil
			},
		}
		engine := NewPostEngine(&tu.MockService{}, gen)

		progressCh := make(chan ProgressUpdate, 16)
		result, err := engine.Draft(context.Background(), progressCh, "  write about our launch  ")
		if err != nil {
			t.Fatalf("Draft() error = %v", err)
		}
		close(progressCh)

		if result.Prompt != "write about our launch" {
			t.Errorf("Prompt = %q, want the trimmed prompt", result.Prompt)
		}
		if result.Text != "Excited to announce our Q3 launch!" {
			t.Errorf("Text = %q, want the generated content", result.Text)
		}

		count := 0
		for range progressCh {
			count++
		}
		if count == 0 {
			t.Error("Draft() should send progress updates")
		}
	})

	t.Run("requires a generator", func(t *testing.T) {
		engine := NewPostEngine(&tu.MockService{}, nil)

		_, err := engine.Draft(context.Background(), nil, "a prompt")
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("Draft() error = %v, want ErrServiceUnavailable", err)
		}
	})

	t.Run("requires a prompt", func(t *testing.T) {
		engine := NewPostEngine(&tu.MockService{}, &tu.MockGenerator{})

		_, err := engine.Draft(context.Background(), nil, "   ")
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("Draft() error = %v, want ErrInvalidInput", err)
		}
	})

	t.Run("propagates generator errors", func(t *testing.T) {
		gen := &tu.MockGenerator{
			GenerateFunc: func(ctx context.Context, prompt string) (string, error) {
				return "", errors.New("quota exceeded")
			},
		}
		engine := NewPostEngine(&tu.MockService{}, gen)

		if _, err := engine.Draft(context.Background(), nil, "a prompt"); err == nil {
			t.Error("Draft() expected error from generator")
		}
	})
}

func TestProgressUpdate_NonBlocking(t *testing.T) {
	engine := NewPostEngine(&tu.MockService{}, &tu.MockGenerator{})

	// Create a channel with buffer 0 to test non-blocking behavior
	progressCh := make(chan ProgressUpdate)

	// Don't consume from channel to simulate blocked consumer
	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := engine.Publish(context.Background(), progressCh, "token", "urn:li:person:abc", "a post", true); err != nil {
			t.Errorf("Publish() error = %v", err)
		}
	}()

	select {
	case <-done:
		// Success - operation completed even with blocked progress channel
	case <-time.After(5 * time.Second):
		t.Fatal("Publish() should not block on progress sends")
	}
}
