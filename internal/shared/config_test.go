package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./lix.db" {
			t.Errorf("expected database path ./lix.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 8000 {
			t.Errorf("expected server port 8000, got %d", config.Server.Port)
		}

		if config.Credentials.LinkedIn.ClientID != "your_linkedin_client_id" {
			t.Errorf("expected linkedin client_id your_linkedin_client_id, got %s", config.Credentials.LinkedIn.ClientID)
		}

		if config.Credentials.LinkedIn.RedirectURI != "http://localhost:8000/callback" {
			t.Errorf("expected redirect URI http://localhost:8000/callback, got %s", config.Credentials.LinkedIn.RedirectURI)
		}

		if config.Credentials.Gemini.Model != "gemini-flash-lite" {
			t.Errorf("expected gemini model gemini-flash-lite, got %s", config.Credentials.Gemini.Model)
		}

		if config.Session.Store != "memory" {
			t.Errorf("expected session store memory, got %s", config.Session.Store)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10

[server]
host = "0.0.0.0"
port = 9000

[session]
secret = "file_secret"
store = "sqlite"
ttl_hours = 12

[credentials.linkedin]
client_id = "test_client_id"
client_secret = "test_secret"
redirect_uri = "http://localhost:9000/callback"

[credentials.gemini]
api_key = "test_api_key"
model = "gemini-test"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 9000 {
			t.Errorf("expected server port 9000, got %d", config.Server.Port)
		}

		if config.Credentials.LinkedIn.ClientID != "test_client_id" {
			t.Errorf("expected linkedin client_id test_client_id, got %s", config.Credentials.LinkedIn.ClientID)
		}

		if config.Session.Store != "sqlite" {
			t.Errorf("expected session store sqlite, got %s", config.Session.Store)
		}
	})

	t.Run("ApplyEnv Overrides File Values", func(t *testing.T) {
		t.Setenv("LINKEDIN_CLIENT_ID", "env_client_id")
		t.Setenv("LINKEDIN_REDIRECT_URI", "http://localhost:1234/callback")
		t.Setenv("GEMINI_API_KEY", "env_gemini_key")
		t.Setenv("LIX_SESSION_SECRET", "env_secret")
		t.Setenv("LIX_SERVER_PORT", "1234")

		config := DefaultConfig()
		if err := config.ApplyEnv(); err != nil {
			t.Fatalf("failed to apply env: %v", err)
		}

		if config.Credentials.LinkedIn.ClientID != "env_client_id" {
			t.Errorf("expected env_client_id, got %s", config.Credentials.LinkedIn.ClientID)
		}
		if config.Credentials.LinkedIn.RedirectURI != "http://localhost:1234/callback" {
			t.Errorf("expected env redirect URI, got %s", config.Credentials.LinkedIn.RedirectURI)
		}
		if config.Credentials.Gemini.APIKey != "env_gemini_key" {
			t.Errorf("expected env_gemini_key, got %s", config.Credentials.Gemini.APIKey)
		}
		if config.Session.Secret != "env_secret" {
			t.Errorf("expected env_secret, got %s", config.Session.Secret)
		}
		if config.Server.Port != 1234 {
			t.Errorf("expected port 1234, got %d", config.Server.Port)
		}
	})

	t.Run("ApplyEnv Leaves Unset Values", func(t *testing.T) {
		t.Setenv("LINKEDIN_CLIENT_ID", "env_client_id")

		config := DefaultConfig()
		if err := config.ApplyEnv(); err != nil {
			t.Fatalf("failed to apply env: %v", err)
		}

		if config.Credentials.LinkedIn.ClientSecret != "your_linkedin_client_secret" {
			t.Errorf("unset env var should not override file value, got %s", config.Credentials.LinkedIn.ClientSecret)
		}
		if config.Server.Port != 8000 {
			t.Errorf("unset env var should not override port, got %d", config.Server.Port)
		}
	})

	t.Run("ResolveConfig Defaults When Path Empty", func(t *testing.T) {
		config, err := ResolveConfig("")
		if err != nil {
			t.Fatalf("failed to resolve config: %v", err)
		}

		if config.Database.Path != "./lix.db" {
			t.Errorf("expected default database path, got %s", config.Database.Path)
		}
	})

	t.Run("ResolveConfig Missing File", func(t *testing.T) {
		if _, err := ResolveConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})
}
