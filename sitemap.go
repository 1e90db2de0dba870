package cryptasium

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// handleSitemap serves the sitemap: the landing page, every section index,
// and each published blog post.
func (a *App) handleSitemap(c echo.Context) error {
	base := a.Config.URL
	urls := []sitemapURL{
		{Loc: BuildURL(base)},
		{Loc: BuildURL(base, "about")},
		{Loc: BuildURL(base, "blog")},
		{Loc: BuildURL(base, "youtube")},
		{Loc: BuildURL(base, "podcast")},
		{Loc: BuildURL(base, "shorts")},
		{Loc: BuildURL(base, "community")},
		{Loc: BuildURL(base, "submit-idea")},
	}

	// Published posts only; iterate all pages so the sitemap stays complete.
	for page := 1; ; page++ {
		posts, pg, err := a.Store.ListBlogPosts(page, 100)
		if err != nil {
			return err
		}
		for _, p := range posts {
			urls = append(urls, sitemapURL{
				Loc:     BuildURL(base, "blog", p.Slug),
				LastMod: p.UpdatedAt.Format("2006-01-02"),
			})
		}
		if page >= pg.TotalPages {
			break
		}
	}

	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
