package main

import (
	"bytes"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/lix/internal/shared"
	"github.com/desertthunder/lix/internal/store"
	tu "github.com/desertthunder/lix/internal/testing"
)

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			service := &tu.MockService{}
			generator := &tu.MockGenerator{}
			sessionStore := store.NewMemoryStore()

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
				Service:    service,
				Generator:  generator,
				Store:      sessionStore,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.service != service {
				t.Error("expected service to be set")
			}
			if runner.generator != generator {
				t.Error("expected generator to be set")
			}
			if runner.store != sessionStore {
				t.Error("expected store to be set")
			}
			if runner.engine == nil {
				t.Error("expected post engine to be constructed")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Config: nil,
			})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Logger: nil,
			})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Output: nil,
			})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil httpClient uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				HTTPClient: nil,
			})

			if runner.httpClient != http.DefaultClient {
				t.Error("expected httpClient to default to http.DefaultClient")
			}
		})

		t.Run("with configPath sets field", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				ConfigPath: "/test/path/config.toml",
			})

			if runner.configPath != "/test/path/config.toml" {
				t.Errorf("expected configPath to be set, got %s", runner.configPath)
			}
		})
	})

	t.Run("SetLogger", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		replacement := shared.NewLogger(&bytes.Buffer{})

		runner.SetLogger(replacement)

		if runner.logger != replacement {
			t.Error("expected logger to be replaced")
		}
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, true)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			expected := `{"key":"value"}` + "\n"
			if result != expected {
				t.Errorf("expected %q, got %q", expected, result)
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			// channels cannot be marshaled to JSON
			data := make(chan int)
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			data := map[string]string{"key": "value"}
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writePlain("hello %s", "world")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if result != "hello world" {
				t.Errorf("expected 'hello world', got %q", result)
			}
		})

		t.Run("writes plain text without formatting", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writePlain("simple text")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if result != "simple text" {
				t.Errorf("expected 'simple text', got %q", result)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			err := runner.writePlain("test")

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) != 5 {
			t.Errorf("expected 5 commands, got %d", len(commands))
		}

		names := map[string]bool{}
		for i, cmd := range commands {
			if cmd == nil {
				t.Fatalf("command at index %d is nil", i)
			}
			names[cmd.Name] = true
		}

		for _, want := range []string{"setup", "auth", "posts", "serve", "tui"} {
			if !names[want] {
				t.Errorf("expected %s command to be registered", want)
			}
		}
	})

	t.Run("openStore", func(t *testing.T) {
		t.Run("returns the injected store", func(t *testing.T) {
			injected := store.NewMemoryStore()
			runner := NewRunner(RunnerOpts{Store: injected})

			s, err := runner.openStore()
			if err != nil {
				t.Fatalf("failed to open store: %v", err)
			}
			if s != store.SessionStore(injected) {
				t.Error("expected the injected store to be returned")
			}
		})

		t.Run("opens the configured database once", func(t *testing.T) {
			config := shared.DefaultConfig()
			config.Database.Path = filepath.Join(t.TempDir(), "lix.db")

			runner := NewRunner(RunnerOpts{Config: config})

			s, err := runner.openStore()
			if err != nil {
				t.Fatalf("failed to open store: %v", err)
			}

			record := store.TokenRecord{
				MemberID:    "abc123",
				AccessToken: "token",
				AuthorURN:   "urn:li:person:abc123",
				CreatedAt:   time.Now(),
			}
			if err := s.Put(record); err != nil {
				t.Fatalf("failed to put record: %v", err)
			}

			again, err := runner.openStore()
			if err != nil {
				t.Fatalf("failed to reopen store: %v", err)
			}
			if again != s {
				t.Error("expected the store handle to be reused")
			}

			got, err := again.Get("abc123")
			if err != nil {
				t.Fatalf("failed to get record: %v", err)
			}
			if got.AccessToken != "token" {
				t.Errorf("expected stored token, got %q", got.AccessToken)
			}
		})
	})

	t.Run("resolveRecord", func(t *testing.T) {
		record := store.TokenRecord{
			MemberID:    "abc123",
			AccessToken: "token",
			AuthorURN:   "urn:li:person:abc123",
			CreatedAt:   time.Now(),
		}

		t.Run("returns the sole stored record", func(t *testing.T) {
			s := store.NewMemoryStore()
			if err := s.Put(record); err != nil {
				t.Fatalf("failed to put record: %v", err)
			}
			runner := NewRunner(RunnerOpts{Store: s})

			got, err := runner.resolveRecord("")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got.MemberID != "abc123" {
				t.Errorf("expected abc123, got %s", got.MemberID)
			}
		})

		t.Run("errors when nothing is stored", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Store: store.NewMemoryStore()})

			_, err := runner.resolveRecord("")
			if !errors.Is(err, shared.ErrNotAuthenticated) {
				t.Errorf("expected ErrNotAuthenticated, got %v", err)
			}
		})

		t.Run("requires member with multiple sessions", func(t *testing.T) {
			s := store.NewMemoryStore()
			second := record
			second.MemberID = "def456"
			for _, rec := range []store.TokenRecord{record, second} {
				if err := s.Put(rec); err != nil {
					t.Fatalf("failed to put record: %v", err)
				}
			}
			runner := NewRunner(RunnerOpts{Store: s})

			_, err := runner.resolveRecord("")
			if !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}

			got, err := runner.resolveRecord("def456")
			if err != nil {
				t.Fatalf("expected no error selecting by member, got %v", err)
			}
			if got.MemberID != "def456" {
				t.Errorf("expected def456, got %s", got.MemberID)
			}
		})

		t.Run("errors for unknown member", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Store: store.NewMemoryStore()})

			_, err := runner.resolveRecord("ghost")
			if !errors.Is(err, shared.ErrNotAuthenticated) {
				t.Errorf("expected ErrNotAuthenticated, got %v", err)
			}
		})

		t.Run("rejects expired tokens", func(t *testing.T) {
			s := store.NewMemoryStore()
			expired := record
			expired.ExpiresAt = time.Now().Add(-time.Hour)
			if err := s.Put(expired); err != nil {
				t.Fatalf("failed to put record: %v", err)
			}
			runner := NewRunner(RunnerOpts{Store: s})

			_, err := runner.resolveRecord("")
			if !errors.Is(err, shared.ErrTokenExpired) {
				t.Errorf("expected ErrTokenExpired, got %v", err)
			}
		})
	})
}
