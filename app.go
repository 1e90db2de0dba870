// Package cryptasium is a content site for a crypto-education channel: blog
// posts, YouTube videos, podcast episodes, shorts, and community posts served
// from SQLite, with a credential-gated admin area for managing all of them.
package cryptasium

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// App wires together the store, handlers, middleware, and configuration.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store

	loginLimiter *LoginLimiter
	staticDir    string
	stopCleanup  func()
}

// Option configures additional App behavior.
type Option func(*App)

// WithStaticDir sets the directory for static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// New creates an App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		staticDir: "public",
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Start initializes the database, middleware, and routes, then serves until
// the listener fails or the server is shut down.
func (a *App) Start() error {
	if err := a.init(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// init performs everything Start does short of listening. Split out so tests
// can exercise the full route table without a socket.
func (a *App) init() error {
	if a.Config.AdminPassword == "" && a.Config.AdminPasswordHash == "" {
		return fmt.Errorf("cryptasium: ADMIN_PASSWORD (or ADMIN_PASSWORD_HASH) is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("cryptasium: SECRET_KEY is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("cryptasium: init store: %w", err)
	}
	a.Store = store

	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	// Keep 90 days of the page-view log, pruning daily.
	a.stopCleanup = a.Store.StartCleanupScheduler(90*24*time.Hour, 24*time.Hour, a.Echo.Logger.Infof)

	a.setupMiddleware()
	a.setupRoutes()
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	e.GET("/", a.handleHome)
	e.GET("/about/", a.handleAbout)
	e.GET("/submit-idea/", a.handleIdeaForm)
	e.POST("/submit-idea/", a.handleIdeaSubmit)

	e.GET("/blog/", a.handleBlogList)
	e.GET("/blog/:slug/", a.handleBlogDetail)
	e.GET("/youtube/", a.handleVideoList)
	e.GET("/youtube/:id/", a.handleVideoDetail)
	e.GET("/podcast/", a.handlePodcastList)
	e.GET("/podcast/:id/", a.handlePodcastDetail)
	e.GET("/shorts/", a.handleShortList)
	e.GET("/shorts/:id/", a.handleShortDetail)
	e.GET("/community/", a.handleCommunityList)
	e.GET("/community/:id/", a.handleCommunityDetail)

	// Admin area. Every handler below checks the session itself so
	// unauthenticated requests land on the login page.
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)

	e.GET("/admin/blog/", a.handleAdminBlogList)
	e.GET("/admin/blog/new/", a.handleAdminBlogNew)
	e.POST("/admin/blog/new/", a.handleAdminBlogCreate)
	e.GET("/admin/blog/:id/edit/", a.handleAdminBlogEdit)
	e.POST("/admin/blog/:id/edit/", a.handleAdminBlogUpdate)
	e.POST("/admin/blog/:id/toggle/", a.handleAdminBlogToggle)
	e.POST("/admin/blog/:id/delete/", a.handleAdminBlogDelete)

	e.GET("/admin/youtube/", a.handleAdminVideoList)
	e.GET("/admin/youtube/new/", a.handleAdminVideoNew)
	e.POST("/admin/youtube/new/", a.handleAdminVideoCreate)
	e.GET("/admin/youtube/:id/edit/", a.handleAdminVideoEdit)
	e.POST("/admin/youtube/:id/edit/", a.handleAdminVideoUpdate)
	e.POST("/admin/youtube/:id/toggle/", a.handleAdminVideoToggle)
	e.POST("/admin/youtube/:id/delete/", a.handleAdminVideoDelete)

	e.GET("/admin/podcast/", a.handleAdminPodcastList)
	e.GET("/admin/podcast/new/", a.handleAdminPodcastNew)
	e.POST("/admin/podcast/new/", a.handleAdminPodcastCreate)
	e.GET("/admin/podcast/:id/edit/", a.handleAdminPodcastEdit)
	e.POST("/admin/podcast/:id/edit/", a.handleAdminPodcastUpdate)
	e.POST("/admin/podcast/:id/toggle/", a.handleAdminPodcastToggle)
	e.POST("/admin/podcast/:id/delete/", a.handleAdminPodcastDelete)

	e.GET("/admin/shorts/", a.handleAdminShortList)
	e.GET("/admin/shorts/new/", a.handleAdminShortNew)
	e.POST("/admin/shorts/new/", a.handleAdminShortCreate)
	e.GET("/admin/shorts/:id/edit/", a.handleAdminShortEdit)
	e.POST("/admin/shorts/:id/edit/", a.handleAdminShortUpdate)
	e.POST("/admin/shorts/:id/toggle/", a.handleAdminShortToggle)
	e.POST("/admin/shorts/:id/delete/", a.handleAdminShortDelete)

	e.GET("/admin/community/", a.handleAdminCommunityList)
	e.GET("/admin/community/new/", a.handleAdminCommunityNew)
	e.POST("/admin/community/new/", a.handleAdminCommunityCreate)
	e.GET("/admin/community/:id/edit/", a.handleAdminCommunityEdit)
	e.POST("/admin/community/:id/edit/", a.handleAdminCommunityUpdate)
	e.POST("/admin/community/:id/toggle/", a.handleAdminCommunityToggle)
	e.POST("/admin/community/:id/delete/", a.handleAdminCommunityDelete)

	e.GET("/admin/ideas/", a.handleAdminIdeaList)
	e.POST("/admin/ideas/:id/approve/", a.handleAdminIdeaApprove)
	e.POST("/admin/ideas/:id/reject/", a.handleAdminIdeaReject)
	e.POST("/admin/ideas/:id/delete/", a.handleAdminIdeaDelete)

	e.GET("/admin/images/", a.handleImageList)
	e.POST("/admin/images/upload/", a.handleImageUpload)
	e.POST("/admin/images/:filename/delete/", a.handleImageDelete)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.stopCleanup != nil {
		a.stopCleanup()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
