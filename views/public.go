package views

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"cryptasium/markdown"
)

func writeMarkdown(b *strings.Builder, content string) {
	var buf bytes.Buffer
	markdown.RenderMarkdown(&buf, content)
	b.WriteString(buf.String())
}

// Home is the landing page: hero, the latest post, and recent videos/shorts.
func Home(site Site, latest *BlogPost, videos []Video, shorts []Short) templ.Component {
	meta := PageMeta{URL: buildURL(site.URL)}
	return shell(site, meta, "/", func(b *strings.Builder) {
		b.WriteString("<section class=\"hero\">")
		b.WriteString("<h1>" + esc(site.Name) + "</h1>")
		if site.Description != "" {
			b.WriteString("<p class=\"tagline\">" + esc(site.Description) + "</p>")
		}
		b.WriteString("</section>")

		if latest != nil {
			b.WriteString("<section class=\"latest-post\"><h2>Latest from the blog</h2>")
			writeBlogCard(b, *latest)
			b.WriteString("</section>")
		}

		if len(videos) > 0 {
			b.WriteString("<section class=\"recent-videos\"><h2>Recent videos</h2><ul class=\"card-grid\">")
			for _, v := range videos {
				b.WriteString("<li>")
				writeVideoCard(b, "/youtube/", v.ID, v.Title, v.VideoID, v.ThumbnailURL, v.Duration)
				b.WriteString("</li>")
			}
			b.WriteString("</ul><p><a href=\"/youtube/\">All videos &rarr;</a></p></section>")
		}

		if len(shorts) > 0 {
			b.WriteString("<section class=\"recent-shorts\"><h2>Recent shorts</h2><ul class=\"card-grid shorts\">")
			for _, s := range shorts {
				b.WriteString("<li>")
				writeVideoCard(b, "/shorts/", s.ID, s.Title, s.VideoID, s.ThumbnailURL, s.Duration)
				b.WriteString("</li>")
			}
			b.WriteString("</ul><p><a href=\"/shorts/\">All shorts &rarr;</a></p></section>")
		}
	})
}

// About is the static about page.
func About(site Site) templ.Component {
	meta := PageMeta{Title: "About", URL: buildURL(site.URL, "about")}
	return shell(site, meta, "/about/", func(b *strings.Builder) {
		b.WriteString("<article class=\"about\"><h1>About " + esc(site.Name) + "</h1>")
		b.WriteString("<p>" + esc(site.Description) + "</p>")
		if site.Author != "" {
			b.WriteString("<p>Run by " + esc(site.Author) + ".</p>")
		}
		b.WriteString("<p>Have a topic you want covered? <a href=\"/submit-idea/\">Suggest one</a>.</p>")
		b.WriteString("</article>")
	})
}

func writeBlogCard(b *strings.Builder, p BlogPost) {
	b.WriteString("<article class=\"post-card\">")
	if p.FeaturedImage != "" {
		b.WriteString("<a href=\"" + p.Link() + "\"><img src=\"" + esc(p.FeaturedImage) + "\" alt=\"" + esc(p.Title) + "\" loading=\"lazy\"/></a>")
	}
	b.WriteString("<h3><a href=\"" + p.Link() + "\">" + esc(p.Title) + "</a></h3>")
	b.WriteString("<p class=\"meta\">" + esc(FormatDate(p.CreatedAt)))
	if p.Author != "" {
		b.WriteString(" &middot; " + esc(p.Author))
	}
	b.WriteString("</p>")
	if p.Excerpt != "" {
		b.WriteString("<p>" + esc(p.Excerpt) + "</p>")
	}
	b.WriteString("</article>")
}

func writeVideoCard(b *strings.Builder, basePath string, id int64, title, videoID, thumbnailURL, duration string) {
	link := basePath + itoa64(id) + "/"
	thumb := thumbnailURL
	if thumb == "" && videoID != "" {
		thumb = "https://i.ytimg.com/vi/" + PathEscape(videoID) + "/hqdefault.jpg"
	}
	b.WriteString("<article class=\"video-card\">")
	if thumb != "" {
		b.WriteString("<a href=\"" + link + "\"><img src=\"" + esc(thumb) + "\" alt=\"" + esc(title) + "\" loading=\"lazy\"/></a>")
	}
	b.WriteString("<h3><a href=\"" + link + "\">" + esc(title) + "</a></h3>")
	if duration != "" {
		b.WriteString("<p class=\"meta\">" + esc(duration) + "</p>")
	}
	b.WriteString("</article>")
}

func itoa64(n int64) string {
	return strconv.FormatInt(n, 10)
}

// BlogList is the paginated blog index.
func BlogList(site Site, posts []BlogPost, pg Pagination) templ.Component {
	meta := PageMeta{Title: "Blog", URL: buildURL(site.URL, "blog")}
	return shell(site, meta, "/blog/", func(b *strings.Builder) {
		b.WriteString("<h1>Blog</h1>")
		if len(posts) == 0 {
			b.WriteString("<p class=\"empty\">No posts yet. Check back soon.</p>")
			return
		}
		b.WriteString("<div class=\"post-list\">")
		for _, p := range posts {
			writeBlogCard(b, p)
		}
		b.WriteString("</div>")
		writePagination(b, "/blog/", pg)
	})
}

// BlogDetail renders one post, markdown body included.
func BlogDetail(site Site, post BlogPost) templ.Component {
	meta := PageMeta{
		Title:       post.Title,
		Description: post.Excerpt,
		URL:         buildURL(site.URL, "blog", post.Slug),
		OGType:      "article",
	}
	return shell(site, meta, "/blog/", func(b *strings.Builder) {
		b.WriteString(`<script type="application/ld+json">` + BlogPostingJsonLD(site, post) + `</script>`)
		b.WriteString("<article class=\"post\">")
		b.WriteString("<h1>" + esc(post.Title) + "</h1>")
		b.WriteString("<p class=\"meta\">" + esc(FormatDate(post.CreatedAt)))
		if post.Author != "" {
			b.WriteString(" &middot; " + esc(post.Author))
		}
		b.WriteString(" &middot; " + FormatViews(post.Views) + " views</p>")
		if post.FeaturedImage != "" {
			b.WriteString("<img class=\"featured\" src=\"" + esc(post.FeaturedImage) + "\" alt=\"" + esc(post.Title) + "\"/>")
		}
		b.WriteString("<div class=\"content\">")
		writeMarkdown(b, post.Content)
		b.WriteString("</div>")
		b.WriteString("</article>")
		b.WriteString("<p><a href=\"/blog/\">&larr; All posts</a></p>")
	})
}

// VideoList is the paginated YouTube video index.
func VideoList(site Site, videos []Video, pg Pagination) templ.Component {
	meta := PageMeta{Title: "Videos", URL: buildURL(site.URL, "youtube")}
	return shell(site, meta, "/youtube/", func(b *strings.Builder) {
		b.WriteString("<h1>Videos</h1>")
		if len(videos) == 0 {
			b.WriteString("<p class=\"empty\">No videos yet.</p>")
			return
		}
		b.WriteString("<ul class=\"card-grid\">")
		for _, v := range videos {
			b.WriteString("<li>")
			writeVideoCard(b, "/youtube/", v.ID, v.Title, v.VideoID, v.ThumbnailURL, v.Duration)
			b.WriteString("</li>")
		}
		b.WriteString("</ul>")
		writePagination(b, "/youtube/", pg)
	})
}

func writeEmbed(b *strings.Builder, videoID, title string) {
	b.WriteString("<div class=\"embed\"><iframe src=\"https://www.youtube-nocookie.com/embed/" + PathEscape(videoID) + "\" title=\"" + esc(title) + "\" allow=\"accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture\" allowfullscreen></iframe></div>")
}

// VideoDetail renders one video with its embedded player.
func VideoDetail(site Site, video Video) templ.Component {
	meta := PageMeta{
		Title:       video.Title,
		Description: video.Description,
		URL:         buildURL(site.URL, "youtube", itoa64(video.ID)),
		OGType:      "article",
	}
	return shell(site, meta, "/youtube/", func(b *strings.Builder) {
		b.WriteString("<article class=\"video\">")
		b.WriteString("<h1>" + esc(video.Title) + "</h1>")
		b.WriteString("<p class=\"meta\">" + esc(FormatDate(video.CreatedAt)) + " &middot; " + FormatViews(video.Views) + " views</p>")
		writeEmbed(b, video.VideoID, video.Title)
		if video.Description != "" {
			b.WriteString("<div class=\"content\">")
			writeMarkdown(b, video.Description)
			b.WriteString("</div>")
		}
		b.WriteString("</article>")
		b.WriteString("<p><a href=\"/youtube/\">&larr; All videos</a></p>")
	})
}

// PodcastList is the paginated episode index.
func PodcastList(site Site, episodes []Podcast, pg Pagination) templ.Component {
	meta := PageMeta{Title: "Podcast", URL: buildURL(site.URL, "podcast")}
	return shell(site, meta, "/podcast/", func(b *strings.Builder) {
		b.WriteString("<h1>Podcast</h1>")
		if len(episodes) == 0 {
			b.WriteString("<p class=\"empty\">No episodes yet.</p>")
			return
		}
		b.WriteString("<ol class=\"episode-list\" reversed>")
		for _, ep := range episodes {
			link := "/podcast/" + itoa64(ep.ID) + "/"
			b.WriteString("<li><article class=\"episode-card\">")
			b.WriteString("<h3><a href=\"" + link + "\">")
			if ep.EpisodeNumber > 0 {
				b.WriteString("#" + strconv.Itoa(ep.EpisodeNumber) + " ")
			}
			b.WriteString(esc(ep.Title) + "</a></h3>")
			b.WriteString("<p class=\"meta\">" + esc(FormatDate(ep.CreatedAt)))
			if ep.Duration != "" {
				b.WriteString(" &middot; " + esc(ep.Duration))
			}
			b.WriteString("</p>")
			b.WriteString("</article></li>")
		}
		b.WriteString("</ol>")
		writePagination(b, "/podcast/", pg)
	})
}

// PodcastDetail renders one episode with an inline audio player.
func PodcastDetail(site Site, episode Podcast) templ.Component {
	meta := PageMeta{
		Title:       episode.Title,
		Description: episode.Description,
		URL:         buildURL(site.URL, "podcast", itoa64(episode.ID)),
		OGType:      "article",
	}
	return shell(site, meta, "/podcast/", func(b *strings.Builder) {
		b.WriteString("<article class=\"episode\">")
		b.WriteString("<h1>")
		if episode.EpisodeNumber > 0 {
			b.WriteString("#" + strconv.Itoa(episode.EpisodeNumber) + " ")
		}
		b.WriteString(esc(episode.Title) + "</h1>")
		b.WriteString("<p class=\"meta\">" + esc(FormatDate(episode.CreatedAt)) + " &middot; " + FormatViews(episode.Views) + " listens</p>")
		if episode.AudioURL != "" {
			b.WriteString("<audio controls preload=\"none\" src=\"" + esc(episode.AudioURL) + "\"></audio>")
		}
		if episode.Description != "" {
			b.WriteString("<div class=\"content\">")
			writeMarkdown(b, episode.Description)
			b.WriteString("</div>")
		}
		b.WriteString("</article>")
		b.WriteString("<p><a href=\"/podcast/\">&larr; All episodes</a></p>")
	})
}

// ShortList is the paginated shorts index.
func ShortList(site Site, shorts []Short, pg Pagination) templ.Component {
	meta := PageMeta{Title: "Shorts", URL: buildURL(site.URL, "shorts")}
	return shell(site, meta, "/shorts/", func(b *strings.Builder) {
		b.WriteString("<h1>Shorts</h1>")
		if len(shorts) == 0 {
			b.WriteString("<p class=\"empty\">No shorts yet.</p>")
			return
		}
		b.WriteString("<ul class=\"card-grid shorts\">")
		for _, s := range shorts {
			b.WriteString("<li>")
			writeVideoCard(b, "/shorts/", s.ID, s.Title, s.VideoID, s.ThumbnailURL, s.Duration)
			b.WriteString("</li>")
		}
		b.WriteString("</ul>")
		writePagination(b, "/shorts/", pg)
	})
}

// ShortDetail renders one short with a portrait embed.
func ShortDetail(site Site, short Short) templ.Component {
	meta := PageMeta{
		Title:       short.Title,
		Description: short.Description,
		URL:         buildURL(site.URL, "shorts", itoa64(short.ID)),
		OGType:      "article",
	}
	return shell(site, meta, "/shorts/", func(b *strings.Builder) {
		b.WriteString("<article class=\"short\">")
		b.WriteString("<h1>" + esc(short.Title) + "</h1>")
		b.WriteString("<p class=\"meta\">" + esc(FormatDate(short.CreatedAt)) + " &middot; " + FormatViews(short.Views) + " views</p>")
		writeEmbed(b, short.VideoID, short.Title)
		if short.Description != "" {
			b.WriteString("<div class=\"content\">")
			writeMarkdown(b, short.Description)
			b.WriteString("</div>")
		}
		b.WriteString("</article>")
		b.WriteString("<p><a href=\"/shorts/\">&larr; All shorts</a></p>")
	})
}

// CommunityList is the paginated community post index.
func CommunityList(site Site, posts []CommunityPost, pg Pagination) templ.Component {
	meta := PageMeta{Title: "Community", URL: buildURL(site.URL, "community")}
	return shell(site, meta, "/community/", func(b *strings.Builder) {
		b.WriteString("<h1>Community</h1>")
		if len(posts) == 0 {
			b.WriteString("<p class=\"empty\">Nothing here yet.</p>")
			return
		}
		b.WriteString("<div class=\"post-list\">")
		for _, p := range posts {
			link := "/community/" + itoa64(p.ID) + "/"
			b.WriteString("<article class=\"post-card\">")
			b.WriteString("<h3><a href=\"" + link + "\">" + esc(p.Title) + "</a></h3>")
			b.WriteString("<p class=\"meta\">" + esc(FormatDate(p.CreatedAt)))
			if p.Author != "" {
				b.WriteString(" &middot; " + esc(p.Author))
			}
			if p.Category != "" {
				b.WriteString(" &middot; <span class=\"category\">" + esc(p.Category) + "</span>")
			}
			b.WriteString("</p>")
			b.WriteString("</article>")
		}
		b.WriteString("</div>")
		writePagination(b, "/community/", pg)
	})
}

// CommunityDetail renders one community post.
func CommunityDetail(site Site, post CommunityPost) templ.Component {
	meta := PageMeta{
		Title:  post.Title,
		URL:    buildURL(site.URL, "community", itoa64(post.ID)),
		OGType: "article",
	}
	return shell(site, meta, "/community/", func(b *strings.Builder) {
		b.WriteString("<article class=\"post\">")
		b.WriteString("<h1>" + esc(post.Title) + "</h1>")
		b.WriteString("<p class=\"meta\">" + esc(FormatDate(post.CreatedAt)))
		if post.Author != "" {
			b.WriteString(" &middot; " + esc(post.Author))
		}
		if post.Category != "" {
			b.WriteString(" &middot; <span class=\"category\">" + esc(post.Category) + "</span>")
		}
		b.WriteString("</p>")
		b.WriteString("<div class=\"content\">")
		writeMarkdown(b, post.Content)
		b.WriteString("</div>")
		b.WriteString("</article>")
		b.WriteString("<p><a href=\"/community/\">&larr; All community posts</a></p>")
	})
}

// SubmitIdea is the public topic-suggestion form. reference, when set, is the
// receipt shown after a successful submission; errMsg re-renders the form
// with a validation message.
func SubmitIdea(site Site, errMsg, reference, csrfToken string) templ.Component {
	meta := PageMeta{Title: "Suggest a topic", URL: buildURL(site.URL, "submit-idea")}
	return shell(site, meta, "", func(b *strings.Builder) {
		b.WriteString("<h1>Suggest a topic</h1>")
		if reference != "" {
			b.WriteString("<div class=\"notice success\"><p>Thanks! Your idea was submitted.</p>")
			b.WriteString("<p>Reference: <code>" + esc(reference) + "</code></p></div>")
			b.WriteString("<p><a href=\"/\">&larr; Back home</a></p>")
			return
		}
		if errMsg != "" {
			b.WriteString("<p class=\"error\">" + esc(errMsg) + "</p>")
		}
		b.WriteString("<form method=\"post\" action=\"/submit-idea/\">")
		writeCSRF(b, csrfToken)
		b.WriteString("<label>Topic<input type=\"text\" name=\"topic\" maxlength=\"200\" required/></label>")
		b.WriteString("<label>Tell us more<textarea name=\"description\" rows=\"6\"></textarea></label>")
		b.WriteString("<label>Your name (optional)<input type=\"text\" name=\"name\" maxlength=\"100\"/></label>")
		b.WriteString("<label>Email (optional)<input type=\"email\" name=\"email\" maxlength=\"200\"/></label>")
		b.WriteString("<button type=\"submit\">Submit idea</button>")
		b.WriteString("</form>")
	})
}

// NotFound is the 404 page.
func NotFound(site Site) templ.Component {
	return shell(site, PageMeta{Title: "Not found"}, "", func(b *strings.Builder) {
		b.WriteString("<h1>Page not found</h1>")
		b.WriteString("<p>The page you are looking for does not exist or was removed.</p>")
		b.WriteString("<p><a href=\"/\">&larr; Back home</a></p>")
	})
}

// ServerError is the 500 page.
func ServerError(site Site) templ.Component {
	return shell(site, PageMeta{Title: "Something went wrong"}, "", func(b *strings.Builder) {
		b.WriteString("<h1>Something went wrong</h1>")
		b.WriteString("<p>An unexpected error occurred. Try again in a moment.</p>")
		b.WriteString("<p><a href=\"/\">&larr; Back home</a></p>")
	})
}
