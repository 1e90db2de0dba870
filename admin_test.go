package cryptasium

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func login(t *testing.T, a *App) []*http.Cookie {
	t.Helper()
	rec := postForm(a, "/admin/login/", url.Values{
		"username": {"admin"},
		"password": {"secret"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/admin/", rec.Header().Get("Location"))
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func TestAdminShowsLoginWhenAnonymous(t *testing.T) {
	a := newTestApp(t)

	rec := get(a, "/admin/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Log in")
	assert.NotContains(t, rec.Body.String(), "Dashboard")
}

func TestAdminSectionsRedirectWhenAnonymous(t *testing.T) {
	a := newTestApp(t)

	for _, path := range []string{
		"/admin/blog/", "/admin/youtube/", "/admin/podcast/",
		"/admin/shorts/", "/admin/community/", "/admin/ideas/", "/admin/images/",
	} {
		rec := get(a, path)
		assert.Equal(t, http.StatusSeeOther, rec.Code, path)
		assert.Equal(t, "/admin/", rec.Header().Get("Location"), path)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	a := newTestApp(t)

	rec := postForm(a, "/admin/login/", url.Values{
		"username": {"admin"},
		"password": {"wrong"},
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid username or password")
	assert.Empty(t, rec.Result().Cookies())
}

func TestLoginRateLimited(t *testing.T) {
	a := newTestApp(t)

	form := url.Values{"username": {"admin"}, "password": {"wrong"}}
	for i := 0; i < 5; i++ {
		rec := postForm(a, "/admin/login/", form)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
	rec := postForm(a, "/admin/login/", form)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestLoginAndDashboard(t *testing.T) {
	a := newTestApp(t)

	post := BlogPost{Title: "P", Slug: "p", Content: "c", Published: true}
	require.NoError(t, a.Store.CreateBlogPost(&post))

	cookies := login(t, a)
	rec := get(a, "/admin/", cookies...)
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Dashboard")
	assert.Contains(t, body, "Blog posts")
}

func TestLogout(t *testing.T) {
	a := newTestApp(t)

	cookies := login(t, a)
	rec := postForm(a, "/admin/logout/", url.Values{}, cookies...)
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	// The cleared cookie replaces the session; the old one no longer grants access.
	cleared := rec.Result().Cookies()
	rec = get(a, "/admin/blog/", cleared...)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestAdminBlogCreate(t *testing.T) {
	a := newTestApp(t)
	cookies := login(t, a)

	rec := postForm(a, "/admin/blog/new/", url.Values{
		"title":     {"Cold Storage Guide"},
		"content":   {"Keep keys offline."},
		"published": {"true"},
	}, cookies...)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "/admin/blog/")

	// Slug derives from the title when left blank.
	got, err := a.Store.GetBlogPostBySlug("cold-storage-guide")
	require.NoError(t, err)
	assert.Equal(t, "Cold Storage Guide", got.Title)
	assert.True(t, got.Published)
}

func TestAdminBlogCreateValidation(t *testing.T) {
	a := newTestApp(t)
	cookies := login(t, a)

	rec := postForm(a, "/admin/blog/new/", url.Values{
		"content": {"body without title"},
	}, cookies...)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "title")

	posts, err := a.Store.ListAllBlogPosts()
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestAdminBlogCreateDuplicateSlug(t *testing.T) {
	a := newTestApp(t)
	cookies := login(t, a)

	existing := BlogPost{Title: "First", Slug: "same-slug", Content: "c", Published: true}
	require.NoError(t, a.Store.CreateBlogPost(&existing))

	rec := postForm(a, "/admin/blog/new/", url.Values{
		"title":   {"Second"},
		"slug":    {"same-slug"},
		"content": {"c"},
	}, cookies...)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "already in use")
}

func TestAdminBlogUpdateToggleDelete(t *testing.T) {
	a := newTestApp(t)
	cookies := login(t, a)

	post := BlogPost{Title: "Original", Slug: "original", Content: "c", Published: false}
	require.NoError(t, a.Store.CreateBlogPost(&post))
	id := itoaID(post.ID)

	rec := postForm(a, "/admin/blog/"+id+"/edit/", url.Values{
		"title":   {"Renamed"},
		"slug":    {"original"},
		"content": {"c2"},
	}, cookies...)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	got, err := a.Store.GetBlogPostAny(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, "c2", got.Content)

	rec = postForm(a, "/admin/blog/"+id+"/toggle/", url.Values{}, cookies...)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	got, _ = a.Store.GetBlogPostAny(post.ID)
	assert.True(t, got.Published)

	rec = postForm(a, "/admin/blog/"+id+"/delete/", url.Values{}, cookies...)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	_, err = a.Store.GetBlogPostAny(post.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdminBlogEditMissing(t *testing.T) {
	a := newTestApp(t)
	cookies := login(t, a)

	rec := get(a, "/admin/blog/999/edit/", cookies...)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminVideoCreate(t *testing.T) {
	a := newTestApp(t)
	cookies := login(t, a)

	rec := postForm(a, "/admin/youtube/new/", url.Values{
		"title":     {"Seed phrases"},
		"video_id":  {"seed0001"},
		"published": {"true"},
	}, cookies...)
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	videos, err := a.Store.ListAllVideos()
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "seed0001", videos[0].VideoID)
}

func TestAdminIdeaReview(t *testing.T) {
	a := newTestApp(t)
	cookies := login(t, a)

	idea := TopicIdea{Topic: "Explain mempool"}
	require.NoError(t, a.Store.CreateTopicIdea(&idea))
	id := itoaID(idea.ID)

	rec := get(a, "/admin/ideas/", cookies...)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Explain mempool")

	rec = postForm(a, "/admin/ideas/"+id+"/approve/", url.Values{}, cookies...)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	ideas, _ := a.Store.ListTopicIdeas()
	require.Len(t, ideas, 1)
	assert.Equal(t, IdeaApproved, ideas[0].Status)

	rec = postForm(a, "/admin/ideas/"+id+"/delete/", url.Values{}, cookies...)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	ideas, _ = a.Store.ListTopicIdeas()
	assert.Empty(t, ideas)
}

func TestCheckCredentialsBcrypt(t *testing.T) {
	a := newTestApp(t)
	// bcrypt hash of "password", cost 10.
	a.Config.AdminPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

	assert.True(t, a.checkCredentials("admin", "password"))
	assert.False(t, a.checkCredentials("wrong", "password"))
	// Hash takes precedence: the plaintext config password stops working.
	assert.False(t, a.checkCredentials("admin", "secret"))
}
