package cryptasium

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"cryptasium/views"
)

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

// handleRobots generates robots.txt dynamically using the canonical site URL.
func (a *App) handleRobots(c echo.Context) error {
	body := "User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: " + a.Config.URL + "/sitemap.xml\n"
	return c.String(http.StatusOK, body)
}

// handleHome serves the landing page: the latest blog post plus the three
// newest videos and shorts.
func (a *App) handleHome(c echo.Context) error {
	latest, err := a.Store.LatestBlogPost()
	var latestPtr *views.BlogPost
	switch {
	case err == nil:
		latestPtr = &latest
	case err != sql.ErrNoRows:
		return err
	}
	videos, err := a.Store.LatestVideos(3)
	if err != nil {
		return err
	}
	shorts, err := a.Store.LatestShorts(3)
	if err != nil {
		return err
	}
	return Render(c, views.Home(a.Config.Site(), latestPtr, videos, shorts))
}

func (a *App) handleAbout(c echo.Context) error {
	return Render(c, views.About(a.Config.Site()))
}

func (a *App) handleBlogList(c echo.Context) error {
	posts, pg, err := a.Store.ListBlogPosts(pageParam(c), a.Config.PostsPerPage)
	if err != nil {
		return err
	}
	return Render(c, views.BlogList(a.Config.Site(), posts, pg))
}

func (a *App) handleBlogDetail(c echo.Context) error {
	slug := c.Param("slug")
	post, err := a.Store.GetBlogPostBySlug(slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return RenderStatus(c, http.StatusNotFound, views.NotFound(a.Config.Site()))
		}
		return err
	}
	a.recordView(c, "blog", post.ID, a.Store.IncrementBlogPostViews)
	return Render(c, views.BlogDetail(a.Config.Site(), post))
}

func (a *App) handleVideoList(c echo.Context) error {
	videos, pg, err := a.Store.ListVideos(pageParam(c), a.Config.VideosPerPage)
	if err != nil {
		return err
	}
	return Render(c, views.VideoList(a.Config.Site(), videos, pg))
}

func (a *App) handleVideoDetail(c echo.Context) error {
	id, ok := idParam(c)
	if !ok {
		return RenderStatus(c, http.StatusNotFound, views.NotFound(a.Config.Site()))
	}
	video, err := a.Store.GetVideo(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return RenderStatus(c, http.StatusNotFound, views.NotFound(a.Config.Site()))
		}
		return err
	}
	a.recordView(c, "youtube", video.ID, a.Store.IncrementVideoViews)
	return Render(c, views.VideoDetail(a.Config.Site(), video))
}

func (a *App) handlePodcastList(c echo.Context) error {
	podcasts, pg, err := a.Store.ListPodcasts(pageParam(c), a.Config.PostsPerPage)
	if err != nil {
		return err
	}
	return Render(c, views.PodcastList(a.Config.Site(), podcasts, pg))
}

func (a *App) handlePodcastDetail(c echo.Context) error {
	id, ok := idParam(c)
	if !ok {
		return RenderStatus(c, http.StatusNotFound, views.NotFound(a.Config.Site()))
	}
	episode, err := a.Store.GetPodcast(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return RenderStatus(c, http.StatusNotFound, views.NotFound(a.Config.Site()))
		}
		return err
	}
	a.recordView(c, "podcast", episode.ID, a.Store.IncrementPodcastViews)
	return Render(c, views.PodcastDetail(a.Config.Site(), episode))
}

func (a *App) handleShortList(c echo.Context) error {
	shorts, pg, err := a.Store.ListShorts(pageParam(c), a.Config.ShortsPerPage)
	if err != nil {
		return err
	}
	return Render(c, views.ShortList(a.Config.Site(), shorts, pg))
}

func (a *App) handleShortDetail(c echo.Context) error {
	id, ok := idParam(c)
	if !ok {
		return RenderStatus(c, http.StatusNotFound, views.NotFound(a.Config.Site()))
	}
	short, err := a.Store.GetShort(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return RenderStatus(c, http.StatusNotFound, views.NotFound(a.Config.Site()))
		}
		return err
	}
	a.recordView(c, "shorts", short.ID, a.Store.IncrementShortViews)
	return Render(c, views.ShortDetail(a.Config.Site(), short))
}

func (a *App) handleCommunityList(c echo.Context) error {
	posts, pg, err := a.Store.ListCommunityPosts(pageParam(c), a.Config.PostsPerPage)
	if err != nil {
		return err
	}
	return Render(c, views.CommunityList(a.Config.Site(), posts, pg))
}

func (a *App) handleCommunityDetail(c echo.Context) error {
	id, ok := idParam(c)
	if !ok {
		return RenderStatus(c, http.StatusNotFound, views.NotFound(a.Config.Site()))
	}
	post, err := a.Store.GetCommunityPost(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return RenderStatus(c, http.StatusNotFound, views.NotFound(a.Config.Site()))
		}
		return err
	}
	a.recordView(c, "community", post.ID, a.Store.IncrementCommunityPostViews)
	return Render(c, views.CommunityDetail(a.Config.Site(), post))
}

// handleIdeaForm serves the public topic-idea submission form.
func (a *App) handleIdeaForm(c echo.Context) error {
	return Render(c, views.SubmitIdea(a.Config.Site(), "", "", CsrfToken(c)))
}

// handleIdeaSubmit validates and stores a submitted idea, then re-renders the
// form with the generated reference as a receipt.
func (a *App) handleIdeaSubmit(c echo.Context) error {
	var form TopicIdeaForm
	if err := c.Bind(&form); err != nil {
		return err
	}
	if msg := ValidateForm(form); msg != "" {
		return Render(c, views.SubmitIdea(a.Config.Site(), msg, "", CsrfToken(c)))
	}
	idea := TopicIdea{
		Topic:       form.Topic,
		Description: form.Description,
		Name:        form.Name,
		Email:       form.Email,
	}
	if err := a.Store.CreateTopicIdea(&idea); err != nil {
		return err
	}
	return Render(c, views.SubmitIdea(a.Config.Site(), "", idea.Reference, CsrfToken(c)))
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, views.NotFound(a.Config.Site()))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, views.ServerError(a.Config.Site()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

// recordView bumps the record's counter and appends to the page-view log.
// Failures are logged, never surfaced to the visitor.
func (a *App) recordView(c echo.Context, kind string, id int64, increment func(int64) error) {
	if err := increment(id); err != nil {
		c.Logger().Errorf("increment %s views: %v", kind, err)
		return
	}
	ipHash := HashIP(a.Config.SessionSecret, c.RealIP())
	if err := a.Store.RecordPageView(kind, id, c.Request().URL.Path, ipHash); err != nil {
		c.Logger().Errorf("record %s page view: %v", kind, err)
	}
}

// pageParam reads ?page=N, defaulting to 1 for missing or malformed values.
func pageParam(c echo.Context) int {
	n, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// idParam reads the :id path segment as an integer identifier.
func idParam(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
