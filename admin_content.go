package cryptasium

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"cryptasium/views"
)

// Admin CRUD handlers for the five content kinds. Every kind follows the same
// flow: list -> new/edit form -> validated save -> redirect with a flash
// message in the query string.

func redirectWithMsg(c echo.Context, path, msg string) error {
	return c.Redirect(http.StatusSeeOther, path+"?msg="+url.QueryEscape(msg))
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint failure
// (duplicate slug or external video ID).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// --- Blog posts ---

func (a *App) handleAdminBlogList(c echo.Context) error {
	if !requireAdmin(c) {
		return nil
	}
	posts, err := a.Store.ListAllBlogPosts()
	if err != nil {
		return err
	}
	return Render(c, views.AdminBlogList(a.Config.Site(), posts, c.QueryParam("msg"), CsrfToken(c)))
}

func (a *App) handleAdminBlogNew(c echo.Context) error {
	if !requireAdmin(c) {
		return nil
	}
	return Render(c, views.AdminBlogForm(a.Config.Site(), BlogPost{Author: a.Config.Author}, true, "", CsrfToken(c)))
}

// bindBlogForm binds and validates the blog form, returning the entity to
// save. A non-empty message means validation failed.
func (a *App) bindBlogForm(c echo.Context, post *BlogPost) (string, error) {
	var form BlogPostForm
	if err := c.Bind(&form); err != nil {
		return "", err
	}
	form.Title = strings.TrimSpace(form.Title)
	form.Slug = strings.TrimSpace(form.Slug)
	if form.Slug == "" {
		form.Slug = Slugify(form.Title)
	}
	post.Title = form.Title
	post.Slug = form.Slug
	post.Excerpt = form.Excerpt
	post.Content = form.Content
	post.FeaturedImage = form.FeaturedImage
	post.Author = form.Author
	post.Published = form.Published
	if msg := ValidateForm(form); msg != "" {
		return msg, nil
	}
	if post.Slug == "" {
		return "A slug is required. Add a title or slug.", nil
	}
	return "", nil
}

func (a *App) handleAdminBlogCreate(c echo.Context) error {
	if !requireAdmin(c) {
		return nil
	}
	var post BlogPost
	msg, err := a.bindBlogForm(c, &post)
	if err != nil {
		return err
	}
	if msg != "" {
		return Render(c, views.AdminBlogForm(a.Config.Site(), post, true, msg, CsrfToken(c)))
	}
	if err := a.Store.CreateBlogPost(&post); err != nil {
		if isUniqueViolation(err) {
			return Render(c, views.AdminBlogForm(a.Config.Site(), post, true, "That slug is already in use.", CsrfToken(c)))
		}
		return err
	}
	return redirectWithMsg(c, "/admin/blog/", "Blog post created.")
}

func (a *App) handleAdminBlogEdit(c echo.Context) error {
	if !requireAdmin(c) {
		return nil
	}
	id, ok := idParam(c)
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	post, err := a.Store.GetBlogPostAny(id)
	if err != nil {
		if err == ErrNotFound {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	return Render(c, views.AdminBlogForm(a.Config.Site(), post, false, "", CsrfToken(c)))
}

func (a *App) handleAdminBlogUpdate(c echo.Context) error {
	if !requireAdmin(c) {
		return nil
	}
	id, ok := idParam(c)
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	post, err := a.Store.GetBlogPostAny(id)
	if err != nil {
		if err == ErrNotFound {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	msg, err := a.bindBlogForm(c, &post)
	if err != nil {
		return err
	}
	if msg != "" {
		return Render(c, views.AdminBlogForm(a.Config.Site(), post, false, msg, CsrfToken(c)))
	}
	if err := a.Store.UpdateBlogPost(&post); err != nil {
		if isUniqueViolation(err) {
			return Render(c, views.AdminBlogForm(a.Config.Site(), post, false, "That slug is already in use.", CsrfToken(c)))
		}
		return err
	}
	return redirectWithMsg(c, "/admin/blog/", "Blog post updated.")
}

func (a *App) handleAdminBlogToggle(c echo.Context) error {
	return a.togglePublished(c, "/admin/blog/", a.Store.ToggleBlogPostPublished)
}

func (a *App) handleAdminBlogDelete(c echo.Context) error {
	return a.deleteByID(c, "/admin/blog/", "Blog post deleted.", a.Store.DeleteBlogPost)
}

// togglePublished and deleteByID factor the shared tail of every kind's
// toggle/delete handlers.
func (a *App) togglePublished(c echo.Context, listPath string, toggle func(int64) error) error {
	if !requireAdmin(c) {
		return nil
	}
	id, ok := idParam(c)
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	if err := toggle(id); err != nil {
		if err == ErrNotFound {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	return redirectWithMsg(c, listPath, "Published status updated.")
}

func (a *App) deleteByID(c echo.Context, listPath, msg string, del func(int64) error) error {
	if !requireAdmin(c) {
		return nil
	}
	id, ok := idParam(c)
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	if err := del(id); err != nil {
		return err
	}
	return redirectWithMsg(c, listPath, msg)
}

// --- Videos ---

func (a *App) handleAdminVideoList(c echo.Context) error {
	if !requireAdmin(c) {
		return nil
	}
	videos, err := a.Store.ListAllVideos()
	if err != nil {
		return err
	}
	return Render(c, views.AdminVideoList(a.Config.Site(), videos, c.QueryParam("msg"), CsrfToken(c)))
}

func (a *App) handleAdminVideoNew(c echo.Context) error {
	if !requireAdmin(c) {
		return nil
	}
	return Render(c, views.AdminVideoForm(a.Config.Site(), Video{}, true, "", CsrfToken(c)))
}

func bindVideoForm(c echo.Context, v *Video) (string, error) {
	var form VideoForm
	if err := c.Bind(&form); err != nil {
		return "", err
	}
	v.Title = strings.TrimSpace(form.Title)
	v.Description = form.Description
	v.VideoID = strings.TrimSpace(form.VideoID)
	v.ThumbnailURL = form.ThumbnailURL
	v.Duration = form.Duration
	v.Published = form.Published
	return ValidateForm(form), nil
}

func (a *App) handleAdminVideoCreate(c echo.Context) error {
	if !requireAdmin(c) {
		return nil
	}
	var video Video
	msg, err := bindVideoForm(c, &video)
	if err != nil {
		return err
	}
	if msg != "" {
		return Render(c, views.AdminVideoForm(a.Config.Site(), video, true, msg, CsrfToken(c)))
	}
	if err := a.Store.CreateVideo(&video); err != nil {
		if isUniqueViolation(err) {
			return Render(c, views.AdminVideoForm(a.Config.Site(), video, true, "That video ID already exists.", CsrfToken(c)))
		}
		return err
	}
	return redirectWithMsg(c, "/admin/youtube/", "Video added.")
}

func (a *App) handleAdminVideoEdit(c echo.Context) error {
	if !requireAdmin(c) {
		return nil
	}
	id, ok := idParam(c)
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	video, err := a.Store.GetVideoAny(id)
	if err != nil {
		if err == ErrNotFound {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	return Render(c, views.AdminVideoForm(a.Config.Site(), video, false, "", CsrfToken(c)))
}

func (a *App) handleAdminVideoUpdate(c echo.Context) error {
	if !requireAdmin(c) {
		return nil
	}
	id, ok := idParam(c)
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	video, err := a.Store.GetVideoAny(id)
	if err != nil {
		if err == ErrNotFound {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	msg, err := bindVideoForm(c, &video)
	if err != nil {
		return err
	}
	if msg != "" {
		return Render(c, views.AdminVideoForm(a.Config.Site(), video, false, msg, CsrfToken(c)))
	}
	if err := a.Store.UpdateVideo(&video); err != nil {
		if isUniqueViolation(err) {
			return Render(c, views.AdminVideoForm(a.Config.Site(), video, false, "That video ID already exists.", CsrfToken(c)))
		}
		return err
	}
	return redirectWithMsg(c, "/admin/youtube/", "Video updated.")
}

func (a *App) handleAdminVideoToggle(c echo.Context) error {
	return a.togglePublished(c, "/admin/youtube/", a.Store.ToggleVideoPublished)
}

func (a *App) handleAdminVideoDelete(c echo.Context) error {
	return a.deleteByID(c, "/admin/youtube/", "Video deleted.", a.Store.DeleteVideo)
}

// --- Podcasts ---

func (a *App) handleAdminPodcastList(c echo.Context) error {
	if !requireAdmin(c) {
		return nil
	}
	podcasts, err := a.Store.ListAllPodcasts()
	if err != nil {
		return err
	}
	return Render(c, views.AdminPodcastList(a.Config.Site(), podcasts, c.QueryParam("msg"), CsrfToken(c)))
}

func (a *App) handleAdminPodcastNew(c echo.Context) error {
	if !requireAdmin(c) {
		return nil
	}
	return Render(c, views.AdminPodcastForm(a.Config.Site(), Podcast{}, true, "", CsrfToken(c)))
}

func bindPodcastForm(c echo.Context, p *Podcast) (string, error) {
	var form PodcastForm
	if err := c.Bind(&form); err != nil {
		return "", err
	}
	p.Title = strings.TrimSpace(form.Title)
	p.Description = form.Description
	p.EpisodeNumber = form.EpisodeNumber
	p.AudioURL = form.AudioURL
	p.ThumbnailURL = form.ThumbnailURL
	p.Duration = form.Duration
	p.Published = form.Published
	return ValidateForm(form), nil
}

func (a *App) handleAdminPodcastCreate(c echo.Context) error {
	if !requireAdmin(c) {
		return nil
	}
	var episode Podcast
	msg, err := bindPodcastForm(c, &episode)
	if err != nil {
		return err
	}
	if msg != "" {
		return Render(c, views.AdminPodcastForm(a.Config.Site(), episode, true, msg, CsrfToken(c)))
	}
	if err := a.Store.CreatePodcast(&episode); err != nil {
		return err
	}
	return redirectWithMsg(c, "/admin/podcast/", "Podcast episode added.")
}

func (a *App) handleAdminPodcastEdit(c echo.Context) error {
	if !requireAdmin(c) {
		return nil
	}
	id, ok := idParam(c)
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	episode, err := a.Store.GetPodcastAny(id)
	if err != nil {
		if err == ErrNotFound {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	return Render(c, views.AdminPodcastForm(a.Config.Site(), episode, false, "", CsrfToken(c)))
}

func (a *App) handleAdminPodcastUpdate(c echo.Context) error {
	if !requireAdmin(c) {
		return nil
	}
	id, ok := idParam(c)
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	episode, err := a.Store.GetPodcastAny(id)
	if err != nil {
		if err == ErrNotFound {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	msg, err := bindPodcastForm(c, &episode)
	if err != nil {
		return err
	}
	if msg != "" {
		return Render(c, views.AdminPodcastForm(a.Config.Site(), episode, false, msg, CsrfToken(c)))
	}
	if err := a.Store.UpdatePodcast(&episode); err != nil {
		return err
	}
	return redirectWithMsg(c, "/admin/podcast/", "Podcast episode updated.")
}

func (a *App) handleAdminPodcastToggle(c echo.Context) error {
	return a.togglePublished(c, "/admin/podcast/", a.Store.TogglePodcastPublished)
}

func (a *App) handleAdminPodcastDelete(c echo.Context) error {
	return a.deleteByID(c, "/admin/podcast/", "Podcast episode deleted.", a.Store.DeletePodcast)
}

// --- Shorts ---

func (a *App) handleAdminShortList(c echo.Context) error {
	if !requireAdmin(c) {
		return nil
	}
	shorts, err := a.Store.ListAllShorts()
	if err != nil {
		return err
	}
	return Render(c, views.AdminShortList(a.Config.Site(), shorts, c.QueryParam("msg"), CsrfToken(c)))
}

func (a *App) handleAdminShortNew(c echo.Context) error {
	if !requireAdmin(c) {
		return nil
	}
	return Render(c, views.AdminShortForm(a.Config.Site(), Short{}, true, "", CsrfToken(c)))
}

func bindShortForm(c echo.Context, sh *Short) (string, error) {
	var form VideoForm
	if err := c.Bind(&form); err != nil {
		return "", err
	}
	sh.Title = strings.TrimSpace(form.Title)
	sh.Description = form.Description
	sh.VideoID = strings.TrimSpace(form.VideoID)
	sh.ThumbnailURL = form.ThumbnailURL
	sh.Duration = form.Duration
	sh.Published = form.Published
	return ValidateForm(form), nil
}

func (a *App) handleAdminShortCreate(c echo.Context) error {
	if !requireAdmin(c) {
		return nil
	}
	var short Short
	msg, err := bindShortForm(c, &short)
	if err != nil {
		return err
	}
	if msg != "" {
		return Render(c, views.AdminShortForm(a.Config.Site(), short, true, msg, CsrfToken(c)))
	}
	if err := a.Store.CreateShort(&short); err != nil {
		if isUniqueViolation(err) {
			return Render(c, views.AdminShortForm(a.Config.Site(), short, true, "That video ID already exists.", CsrfToken(c)))
		}
		return err
	}
	return redirectWithMsg(c, "/admin/shorts/", "Short added.")
}

func (a *App) handleAdminShortEdit(c echo.Context) error {
	if !requireAdmin(c) {
		return nil
	}
	id, ok := idParam(c)
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	short, err := a.Store.GetShortAny(id)
	if err != nil {
		if err == ErrNotFound {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	return Render(c, views.AdminShortForm(a.Config.Site(), short, false, "", CsrfToken(c)))
}

func (a *App) handleAdminShortUpdate(c echo.Context) error {
	if !requireAdmin(c) {
		return nil
	}
	id, ok := idParam(c)
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	short, err := a.Store.GetShortAny(id)
	if err != nil {
		if err == ErrNotFound {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	msg, err := bindShortForm(c, &short)
	if err != nil {
		return err
	}
	if msg != "" {
		return Render(c, views.AdminShortForm(a.Config.Site(), short, false, msg, CsrfToken(c)))
	}
	if err := a.Store.UpdateShort(&short); err != nil {
		if isUniqueViolation(err) {
			return Render(c, views.AdminShortForm(a.Config.Site(), short, false, "That video ID already exists.", CsrfToken(c)))
		}
		return err
	}
	return redirectWithMsg(c, "/admin/shorts/", "Short updated.")
}

func (a *App) handleAdminShortToggle(c echo.Context) error {
	return a.togglePublished(c, "/admin/shorts/", a.Store.ToggleShortPublished)
}

func (a *App) handleAdminShortDelete(c echo.Context) error {
	return a.deleteByID(c, "/admin/shorts/", "Short deleted.", a.Store.DeleteShort)
}

// --- Community posts ---

func (a *App) handleAdminCommunityList(c echo.Context) error {
	if !requireAdmin(c) {
		return nil
	}
	posts, err := a.Store.ListAllCommunityPosts()
	if err != nil {
		return err
	}
	return Render(c, views.AdminCommunityList(a.Config.Site(), posts, c.QueryParam("msg"), CsrfToken(c)))
}

func (a *App) handleAdminCommunityNew(c echo.Context) error {
	if !requireAdmin(c) {
		return nil
	}
	return Render(c, views.AdminCommunityForm(a.Config.Site(), CommunityPost{}, true, "", CsrfToken(c)))
}

func bindCommunityForm(c echo.Context, p *CommunityPost) (string, error) {
	var form CommunityPostForm
	if err := c.Bind(&form); err != nil {
		return "", err
	}
	p.Title = strings.TrimSpace(form.Title)
	p.Content = form.Content
	p.Author = form.Author
	p.Category = form.Category
	p.Published = form.Published
	return ValidateForm(form), nil
}

func (a *App) handleAdminCommunityCreate(c echo.Context) error {
	if !requireAdmin(c) {
		return nil
	}
	var post CommunityPost
	msg, err := bindCommunityForm(c, &post)
	if err != nil {
		return err
	}
	if msg != "" {
		return Render(c, views.AdminCommunityForm(a.Config.Site(), post, true, msg, CsrfToken(c)))
	}
	if err := a.Store.CreateCommunityPost(&post); err != nil {
		return err
	}
	return redirectWithMsg(c, "/admin/community/", "Community post created.")
}

func (a *App) handleAdminCommunityEdit(c echo.Context) error {
	if !requireAdmin(c) {
		return nil
	}
	id, ok := idParam(c)
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	post, err := a.Store.GetCommunityPostAny(id)
	if err != nil {
		if err == ErrNotFound {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	return Render(c, views.AdminCommunityForm(a.Config.Site(), post, false, "", CsrfToken(c)))
}

func (a *App) handleAdminCommunityUpdate(c echo.Context) error {
	if !requireAdmin(c) {
		return nil
	}
	id, ok := idParam(c)
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	post, err := a.Store.GetCommunityPostAny(id)
	if err != nil {
		if err == ErrNotFound {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	msg, err := bindCommunityForm(c, &post)
	if err != nil {
		return err
	}
	if msg != "" {
		return Render(c, views.AdminCommunityForm(a.Config.Site(), post, false, msg, CsrfToken(c)))
	}
	if err := a.Store.UpdateCommunityPost(&post); err != nil {
		return err
	}
	return redirectWithMsg(c, "/admin/community/", "Community post updated.")
}

func (a *App) handleAdminCommunityToggle(c echo.Context) error {
	return a.togglePublished(c, "/admin/community/", a.Store.ToggleCommunityPostPublished)
}

func (a *App) handleAdminCommunityDelete(c echo.Context) error {
	return a.deleteByID(c, "/admin/community/", "Community post deleted.", a.Store.DeleteCommunityPost)
}
