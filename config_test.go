package cryptasium

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigDefaults(t *testing.T) {
	var cfg SiteConfig
	cfg.setDefaults()

	if cfg.Name != "Cryptasium" {
		t.Errorf("Name = %q", cfg.Name)
	}
	if cfg.Addr != ":3000" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.DatabasePath != "instance/cryptasium.db" {
		t.Errorf("DatabasePath = %q", cfg.DatabasePath)
	}
	if cfg.AdminUsername != "admin" {
		t.Errorf("AdminUsername = %q", cfg.AdminUsername)
	}
	if cfg.PostsPerPage != 12 || cfg.VideosPerPage != 12 || cfg.ShortsPerPage != 20 {
		t.Errorf("page sizes = %d/%d/%d", cfg.PostsPerPage, cfg.VideosPerPage, cfg.ShortsPerPage)
	}
	if cfg.Production() {
		t.Error("default env should not be production")
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("SITE_NAME", "Test Site")
	t.Setenv("SITE_URL", "https://example.com/")
	t.Setenv("APP_ENV", "production")
	t.Setenv("ADMIN_USERNAME", "boss")
	t.Setenv("ADMIN_PASSWORD", "hunter2")
	t.Setenv("SECRET_KEY", "sekrit")
	t.Setenv("POSTS_PER_PAGE", "5")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv failed: %v", err)
	}
	if cfg.Name != "Test Site" {
		t.Errorf("Name = %q", cfg.Name)
	}
	if cfg.URL != "https://example.com" {
		t.Errorf("URL = %q, trailing slash should be stripped", cfg.URL)
	}
	if !cfg.Production() {
		t.Error("Production() should be true")
	}
	if cfg.AdminUsername != "boss" || cfg.AdminPassword != "hunter2" {
		t.Errorf("admin credentials not read from env")
	}
	if cfg.SessionSecret != "sekrit" {
		t.Errorf("SessionSecret = %q", cfg.SessionSecret)
	}
	if cfg.PostsPerPage != 5 {
		t.Errorf("PostsPerPage = %d, want 5", cfg.PostsPerPage)
	}
}

func TestConfigFromEnvBadInt(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("POSTS_PER_PAGE", "lots")

	if _, err := ConfigFromEnv(); err == nil {
		t.Fatal("expected error for non-numeric POSTS_PER_PAGE")
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	data := `
[site]
name = "File Site"
url = "https://file.example.com"
author = "Filer"

[server]
env = "production"
addr = ":9000"
database_path = "data/site.db"

[pagination]
posts_per_page = 7
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_PATH", path)
	// Env still wins over the file.
	t.Setenv("SITE_NAME", "Env Site")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv failed: %v", err)
	}
	if cfg.Name != "Env Site" {
		t.Errorf("Name = %q, env should override file", cfg.Name)
	}
	if cfg.URL != "https://file.example.com" {
		t.Errorf("URL = %q", cfg.URL)
	}
	if cfg.Author != "Filer" {
		t.Errorf("Author = %q", cfg.Author)
	}
	if cfg.Addr != ":9000" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.DatabasePath != "data/site.db" {
		t.Errorf("DatabasePath = %q", cfg.DatabasePath)
	}
	if cfg.PostsPerPage != 7 {
		t.Errorf("PostsPerPage = %d, want 7", cfg.PostsPerPage)
	}
	if !cfg.Production() {
		t.Error("Production() should be true from file")
	}
}

func TestConfigFileMissingExplicitPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.toml"))

	if _, err := ConfigFromEnv(); err == nil {
		t.Fatal("explicitly named missing config file should error")
	}
}
