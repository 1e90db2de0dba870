package cryptasium

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"cryptasium/views"
)

// SiteConfig holds all configuration for a cryptasium site.
type SiteConfig struct {
	Name        string // Site name (default "Cryptasium")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Default content author

	Env          string // "development" or "production"
	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "instance/cryptasium.db")

	AdminUsername     string // Admin login username (default "admin")
	AdminPassword     string // Required unless AdminPasswordHash is set
	AdminPasswordHash string // Optional bcrypt hash; takes precedence over AdminPassword
	SessionSecret     string // Required: session encryption secret
	CookieSecure      bool   // Set true for HTTPS

	PostsPerPage  int // Blog/podcast/community page size (default 12)
	VideosPerPage int // Video page size (default 12)
	ShortsPerPage int // Shorts page size (default 20)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Cryptasium"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Env == "" {
		c.Env = "development"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "instance/cryptasium.db"
	}
	if c.AdminUsername == "" {
		c.AdminUsername = "admin"
	}
	if c.PostsPerPage <= 0 {
		c.PostsPerPage = 12
	}
	if c.VideosPerPage <= 0 {
		c.VideosPerPage = 12
	}
	if c.ShortsPerPage <= 0 {
		c.ShortsPerPage = 20
	}
}

// Site returns the branding subset of the config passed to templates.
func (c SiteConfig) Site() views.Site {
	return views.Site{
		Name:        c.Name,
		URL:         c.URL,
		Description: c.Description,
		Author:      c.Author,
	}
}

// Production reports whether the site runs in production mode.
func (c SiteConfig) Production() bool {
	return strings.EqualFold(c.Env, "production")
}

// fileConfig mirrors the optional TOML config file. Every field is optional;
// values from the file are overridden by environment variables.
type fileConfig struct {
	Site struct {
		Name        string `toml:"name"`
		URL         string `toml:"url"`
		Description string `toml:"description"`
		Author      string `toml:"author"`
	} `toml:"site"`
	Server struct {
		Env          string `toml:"env"`
		Addr         string `toml:"addr"`
		DatabasePath string `toml:"database_path"`
		CookieSecure bool   `toml:"cookie_secure"`
	} `toml:"server"`
	Pagination struct {
		Posts  int `toml:"posts_per_page"`
		Videos int `toml:"videos_per_page"`
		Shorts int `toml:"shorts_per_page"`
	} `toml:"pagination"`
}

// ConfigFromEnv builds a SiteConfig from the optional TOML file named by
// CONFIG_PATH (default "config.toml" when present) overlaid with environment
// variables. Secrets only come from the environment, never from the file.
func ConfigFromEnv() (SiteConfig, error) {
	var cfg SiteConfig

	path := EnvOr("CONFIG_PATH", "config.toml")
	if err := loadConfigFile(path, &cfg); err != nil {
		return SiteConfig{}, err
	}

	cfg.Name = EnvOr("SITE_NAME", cfg.Name)
	cfg.URL = strings.TrimSuffix(EnvOr("SITE_URL", cfg.URL), "/")
	cfg.Description = EnvOr("SITE_DESCRIPTION", cfg.Description)
	cfg.Author = EnvOr("SITE_AUTHOR", cfg.Author)
	cfg.Env = EnvOr("APP_ENV", cfg.Env)
	cfg.Addr = EnvOr("ADDR", cfg.Addr)
	cfg.DatabasePath = EnvOr("DATABASE_PATH", cfg.DatabasePath)

	cfg.AdminUsername = EnvOr("ADMIN_USERNAME", cfg.AdminUsername)
	cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	cfg.AdminPasswordHash = os.Getenv("ADMIN_PASSWORD_HASH")
	cfg.SessionSecret = os.Getenv("SECRET_KEY")
	if strings.EqualFold(os.Getenv("COOKIE_SECURE"), "true") {
		cfg.CookieSecure = true
	}

	var err error
	if cfg.PostsPerPage, err = envInt("POSTS_PER_PAGE", cfg.PostsPerPage); err != nil {
		return SiteConfig{}, err
	}
	if cfg.VideosPerPage, err = envInt("VIDEOS_PER_PAGE", cfg.VideosPerPage); err != nil {
		return SiteConfig{}, err
	}
	if cfg.ShortsPerPage, err = envInt("SHORTS_PER_PAGE", cfg.ShortsPerPage); err != nil {
		return SiteConfig{}, err
	}

	cfg.setDefaults()
	return cfg, nil
}

// loadConfigFile overlays values from a TOML file onto cfg. A missing file is
// only an error when the path was set explicitly via CONFIG_PATH.
func loadConfigFile(path string, cfg *SiteConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && os.Getenv("CONFIG_PATH") == "" {
			return nil
		}
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	cfg.Name = fc.Site.Name
	cfg.URL = fc.Site.URL
	cfg.Description = fc.Site.Description
	cfg.Author = fc.Site.Author
	cfg.Env = fc.Server.Env
	cfg.Addr = fc.Server.Addr
	cfg.DatabasePath = fc.Server.DatabasePath
	cfg.CookieSecure = fc.Server.CookieSecure
	cfg.PostsPerPage = fc.Pagination.Posts
	cfg.VideosPerPage = fc.Pagination.Videos
	cfg.ShortsPerPage = fc.Pagination.Shorts
	return nil
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("cryptasium: required environment variable %s is not set", key)
	}
	return v
}
