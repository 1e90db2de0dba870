package cryptasium

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestApp wires the full route table with a temp database. CSRF middleware
// is left out so tests can POST forms directly; session middleware stays in
// because the admin flow depends on it.
func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := SiteConfig{
		Name:          "Cryptasium",
		URL:           "http://localhost:3000",
		Description:   "Crypto education, minus the hype",
		DatabasePath:  filepath.Join(t.TempDir(), "test.db"),
		AdminUsername: "admin",
		AdminPassword: "secret",
		SessionSecret: "test-secret-key",
	}
	a := New(cfg)

	store, err := NewStore(cfg.DatabasePath)
	require.NoError(t, err)
	a.Store = store
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	a.Echo.HTTPErrorHandler = a.httpErrorHandler
	a.Echo.Use(session.Middleware(a.newSessionStore()))
	a.setupRoutes()

	t.Cleanup(func() { store.Close() })
	return a
}

func get(a *App, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func postForm(a *App, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func TestHomePage(t *testing.T) {
	a := newTestApp(t)

	rec := get(a, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cryptasium")
	assert.Contains(t, rec.Body.String(), "Crypto education")
}

func TestHomePageShowsLatestContent(t *testing.T) {
	a := newTestApp(t)

	post := BlogPost{Title: "Why self-custody matters", Slug: "self-custody", Content: "c", Published: true}
	require.NoError(t, a.Store.CreateBlogPost(&post))
	video := Video{Title: "Wallet setup walkthrough", VideoID: "abc123", Published: true}
	require.NoError(t, a.Store.CreateVideo(&video))

	rec := get(a, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Why self-custody matters")
	assert.Contains(t, rec.Body.String(), "Wallet setup walkthrough")
}

func TestBlogListEmpty(t *testing.T) {
	a := newTestApp(t)

	rec := get(a, "/blog/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No posts yet")
}

func TestBlogDetail(t *testing.T) {
	a := newTestApp(t)

	post := BlogPost{
		Title:     "Proof of Work explained",
		Slug:      "proof-of-work",
		Content:   "## Mining\n\nHashes **everywhere**.",
		Published: true,
	}
	require.NoError(t, a.Store.CreateBlogPost(&post))

	rec := get(a, "/blog/proof-of-work/")
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Proof of Work explained")
	assert.Contains(t, body, "<h2>Mining</h2>")
	assert.Contains(t, body, "<strong>everywhere</strong>")

	// Each detail view bumps the counter.
	got, err := a.Store.GetBlogPostAny(post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Views)
}

func TestBlogDetailDraftHidden(t *testing.T) {
	a := newTestApp(t)

	post := BlogPost{Title: "Draft", Slug: "draft", Content: "c", Published: false}
	require.NoError(t, a.Store.CreateBlogPost(&post))

	rec := get(a, "/blog/draft/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")
}

func TestUnknownPathRenders404(t *testing.T) {
	a := newTestApp(t)

	rec := get(a, "/definitely-not-a-page/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")
}

func TestVideoDetail(t *testing.T) {
	a := newTestApp(t)

	video := Video{Title: "Nodes 101", VideoID: "xyz789", Published: true}
	require.NoError(t, a.Store.CreateVideo(&video))

	rec := get(a, "/youtube/"+itoaID(video.ID)+"/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "youtube-nocookie.com/embed/xyz789")

	rec = get(a, "/youtube/abc/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBlogListPaginationLinks(t *testing.T) {
	a := newTestApp(t)

	for i := 0; i < 15; i++ {
		post := BlogPost{Title: "P", Slug: "p-" + itoaID(int64(i)), Content: "c", Published: true}
		require.NoError(t, a.Store.CreateBlogPost(&post))
	}

	rec := get(a, "/blog/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/blog/?page=2")

	rec = get(a, "/blog/?page=2")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page 2 of 2")
}

func TestSubmitIdeaFlow(t *testing.T) {
	a := newTestApp(t)

	rec := get(a, "/submit-idea/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Suggest a topic")

	rec = postForm(a, "/submit-idea/", url.Values{
		"topic":       {"Explain rollups"},
		"description": {"L2s are confusing"},
		"email":       {"viewer@example.com"},
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Reference:")

	ideas, err := a.Store.ListTopicIdeas()
	require.NoError(t, err)
	require.Len(t, ideas, 1)
	assert.Equal(t, "Explain rollups", ideas[0].Topic)
	assert.Equal(t, IdeaPending, ideas[0].Status)
}

func TestSubmitIdeaValidation(t *testing.T) {
	a := newTestApp(t)

	rec := postForm(a, "/submit-idea/", url.Values{"description": {"no topic"}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "topic")

	ideas, err := a.Store.ListTopicIdeas()
	require.NoError(t, err)
	assert.Empty(t, ideas)
}

func TestFeed(t *testing.T) {
	a := newTestApp(t)

	post := BlogPost{Title: "Halving history", Slug: "halving", Excerpt: "Every four years", Content: "c", Published: true}
	require.NoError(t, a.Store.CreateBlogPost(&post))

	rec := get(a, "/feed.xml")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "application/rss+xml")
	body := rec.Body.String()
	assert.Contains(t, body, "<rss")
	assert.Contains(t, body, "Halving history")
	assert.Contains(t, body, "http://localhost:3000/blog/halving/")
}

func TestSitemap(t *testing.T) {
	a := newTestApp(t)

	post := BlogPost{Title: "Keys", Slug: "keys", Content: "c", Published: true}
	require.NoError(t, a.Store.CreateBlogPost(&post))
	draft := BlogPost{Title: "Hidden", Slug: "hidden", Content: "c"}
	require.NoError(t, a.Store.CreateBlogPost(&draft))

	rec := get(a, "/sitemap.xml")
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<urlset")
	assert.Contains(t, body, "http://localhost:3000/blog/keys/")
	assert.NotContains(t, body, "hidden")
}

func TestRobots(t *testing.T) {
	a := newTestApp(t)

	rec := get(a, "/robots.txt")
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Disallow: /admin/")
	assert.Contains(t, body, "Sitemap: http://localhost:3000/sitemap.xml")
}

func itoaID(id int64) string {
	return strconv.FormatInt(id, 10)
}
