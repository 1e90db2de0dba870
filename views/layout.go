package views

import (
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// navItem is one entry in the site header.
type navItem struct {
	Label string
	Path  string
}

var navItems = []navItem{
	{"Home", "/"},
	{"Blog", "/blog/"},
	{"YouTube", "/youtube/"},
	{"Podcast", "/podcast/"},
	{"Shorts", "/shorts/"},
	{"Community", "/community/"},
	{"About", "/about/"},
}

// shell wraps body in the full HTML document: head metadata, header nav,
// and footer. active marks the current nav section.
func shell(site Site, meta PageMeta, active string, body func(b *strings.Builder)) templ.Component {
	return component(func(b *strings.Builder) {
		title := site.Name
		if meta.Title != "" {
			title = meta.Title + " | " + site.Name
		}
		desc := meta.Description
		if desc == "" {
			desc = site.Description
		}
		ogType := meta.OGType
		if ogType == "" {
			ogType = "website"
		}

		b.WriteString("<!DOCTYPE html><html lang=\"en\"><head>")
		b.WriteString("<meta charset=\"utf-8\"/>")
		b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"/>")
		b.WriteString("<title>" + esc(title) + "</title>")
		if desc != "" {
			b.WriteString("<meta name=\"description\" content=\"" + esc(desc) + "\"/>")
		}
		if meta.URL != "" {
			b.WriteString("<link rel=\"canonical\" href=\"" + esc(meta.URL) + "\"/>")
			b.WriteString("<meta property=\"og:url\" content=\"" + esc(meta.URL) + "\"/>")
		}
		b.WriteString("<meta property=\"og:title\" content=\"" + esc(title) + "\"/>")
		b.WriteString("<meta property=\"og:type\" content=\"" + esc(ogType) + "\"/>")
		if desc != "" {
			b.WriteString("<meta property=\"og:description\" content=\"" + esc(desc) + "\"/>")
		}
		b.WriteString("<link rel=\"icon\" type=\"image/svg+xml\" href=\"/favicon.svg\"/>")
		b.WriteString("<link rel=\"alternate\" type=\"application/rss+xml\" title=\"" + esc(site.Name) + "\" href=\"/feed.xml\"/>")
		b.WriteString("<link rel=\"stylesheet\" href=\"/public/style.css\"/>")
		b.WriteString(`<script type="application/ld+json">` + WebsiteJsonLD(site) + `</script>`)
		b.WriteString("</head><body>")

		b.WriteString("<header class=\"site-header\"><nav>")
		b.WriteString("<a class=\"brand\" href=\"/\">" + esc(site.Name) + "</a>")
		b.WriteString("<ul class=\"nav-links\">")
		for _, item := range navItems {
			cls := ""
			if item.Path == active {
				cls = " class=\"active\""
			}
			b.WriteString("<li><a" + cls + " href=\"" + item.Path + "\">" + item.Label + "</a></li>")
		}
		b.WriteString("</ul></nav></header>")

		b.WriteString("<main>")
		body(b)
		b.WriteString("</main>")

		b.WriteString("<footer class=\"site-footer\">")
		b.WriteString("<p>&copy; " + esc(site.Name) + ". <a href=\"/submit-idea/\">Suggest a topic</a> &middot; <a href=\"/feed.xml\">RSS</a></p>")
		b.WriteString("</footer>")
		b.WriteString("</body></html>")
	})
}

// adminShell is the reduced chrome for admin pages: no public nav, a small
// toolbar linking the admin sections instead.
func adminShell(site Site, title string, body func(b *strings.Builder)) templ.Component {
	return component(func(b *strings.Builder) {
		b.WriteString("<!DOCTYPE html><html lang=\"en\"><head>")
		b.WriteString("<meta charset=\"utf-8\"/>")
		b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"/>")
		b.WriteString("<meta name=\"robots\" content=\"noindex\"/>")
		b.WriteString("<title>" + esc(title) + " | " + esc(site.Name) + " Admin</title>")
		b.WriteString("<link rel=\"stylesheet\" href=\"/public/style.css\"/>")
		b.WriteString("</head><body class=\"admin\">")
		b.WriteString("<header class=\"admin-header\"><nav>")
		b.WriteString("<a class=\"brand\" href=\"/admin/\">" + esc(site.Name) + " Admin</a>")
		b.WriteString("<ul class=\"nav-links\">")
		b.WriteString("<li><a href=\"/admin/blog/\">Blog</a></li>")
		b.WriteString("<li><a href=\"/admin/youtube/\">Videos</a></li>")
		b.WriteString("<li><a href=\"/admin/podcast/\">Podcast</a></li>")
		b.WriteString("<li><a href=\"/admin/shorts/\">Shorts</a></li>")
		b.WriteString("<li><a href=\"/admin/community/\">Community</a></li>")
		b.WriteString("<li><a href=\"/admin/ideas/\">Ideas</a></li>")
		b.WriteString("<li><a href=\"/admin/images/\">Images</a></li>")
		b.WriteString("<li><a href=\"/\" target=\"_blank\">View site</a></li>")
		b.WriteString("</ul></nav></header>")
		b.WriteString("<main>")
		body(b)
		b.WriteString("</main>")
		b.WriteString("</body></html>")
	})
}

// writeFlash renders a one-line notice passed back through the query string.
func writeFlash(b *strings.Builder, msg string) {
	if msg == "" {
		return
	}
	b.WriteString("<p class=\"flash\">" + esc(msg) + "</p>")
}

// writePagination renders prev/next links for a paginated list.
func writePagination(b *strings.Builder, basePath string, pg Pagination) {
	if pg.TotalPages <= 1 {
		return
	}
	b.WriteString("<nav class=\"pagination\">")
	if pg.HasPrev() {
		b.WriteString("<a rel=\"prev\" href=\"" + basePath + "?page=" + strconv.Itoa(pg.Page-1) + "\">&larr; Newer</a>")
	}
	b.WriteString("<span>Page " + strconv.Itoa(pg.Page) + " of " + strconv.Itoa(pg.TotalPages) + "</span>")
	if pg.HasNext() {
		b.WriteString("<a rel=\"next\" href=\"" + basePath + "?page=" + strconv.Itoa(pg.Page+1) + "\">Older &rarr;</a>")
	}
	b.WriteString("</nav>")
}

// writeCSRF renders the hidden CSRF input every POST form carries.
func writeCSRF(b *strings.Builder, token string) {
	b.WriteString("<input type=\"hidden\" name=\"_csrf\" value=\"" + esc(token) + "\"/>")
}
