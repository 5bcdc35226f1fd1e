package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:4200" {
		t.Errorf("expected default addr, got %q", cfg.Server.Addr)
	}
	if cfg.API.BaseURL != "http://localhost:3000/api" {
		t.Errorf("expected default api url, got %q", cfg.API.BaseURL)
	}
	if cfg.Storage.KeyPrefix != "movies" {
		t.Errorf("expected default key prefix, got %q", cfg.Storage.KeyPrefix)
	}
	if cfg.Storage.PresignMinutes != 60 {
		t.Errorf("expected 60 presign minutes, got %d", cfg.Storage.PresignMinutes)
	}
	if cfg.App.Name != "NINAMovie" {
		t.Errorf("expected app name NINAMovie, got %q", cfg.App.Name)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("NINAMOVIE_API_BASEURL", "https://api.example.com/api/")
	t.Setenv("NINAMOVIE_STORAGE_BUCKET", "films")

	cfg, err := load(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.BaseURL != "https://api.example.com/api" {
		t.Errorf("expected trimmed base url, got %q", cfg.API.BaseURL)
	}
	if cfg.Storage.Bucket != "films" {
		t.Errorf("expected bucket films, got %q", cfg.Storage.Bucket)
	}
}

func TestLoadDatabaseDriver(t *testing.T) {
	t.Setenv("NINAMOVIE_DATABASE_DRIVER", "Redis")
	if _, err := load(t.TempDir()); err == nil {
		t.Fatal("expected error without redis url")
	}

	t.Setenv("NINAMOVIE_REDIS_URL", "redis://localhost:6379/0")
	cfg, err := load(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.Driver != "redis" || cfg.Redis.URL != "redis://localhost:6379/0" {
		t.Errorf("unexpected database config %+v / %+v", cfg.Database, cfg.Redis)
	}

	t.Setenv("NINAMOVIE_DATABASE_DRIVER", "postgres")
	if _, err := load(t.TempDir()); err == nil {
		t.Fatal("expected unsupported driver error")
	}
}

func TestLoadDotEnvDoesNotOverrideEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# comment\nNINAMOVIE_TEST_A=from-file\nNINAMOVIE_TEST_B=\"quoted\"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("NINAMOVIE_TEST_A", "from-env")
	t.Setenv("NINAMOVIE_TEST_B", "")
	os.Unsetenv("NINAMOVIE_TEST_B")

	if err := loadDotEnv(path); err != nil {
		t.Fatalf("loadDotEnv: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("NINAMOVIE_TEST_B") })

	if got := os.Getenv("NINAMOVIE_TEST_A"); got != "from-env" {
		t.Errorf("expected env to win, got %q", got)
	}
	if got := os.Getenv("NINAMOVIE_TEST_B"); got != "quoted" {
		t.Errorf("expected unquoted value, got %q", got)
	}
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	if err := loadDotEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Fatalf("expected missing file to be ignored, got %v", err)
	}
}
