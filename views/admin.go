package views

import (
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// AdminLogin is the credential form shown to unauthenticated visitors of
// /admin/.
func AdminLogin(site Site, showError bool, csrfToken string) templ.Component {
	return adminShell(site, "Log in", func(b *strings.Builder) {
		b.WriteString("<h1>Log in</h1>")
		if showError {
			b.WriteString("<p class=\"error\">Invalid username or password.</p>")
		}
		b.WriteString("<form method=\"post\" action=\"/admin/login/\" class=\"login-form\">")
		writeCSRF(b, csrfToken)
		b.WriteString("<label>Username<input type=\"text\" name=\"username\" autocomplete=\"username\" required/></label>")
		b.WriteString("<label>Password<input type=\"password\" name=\"password\" autocomplete=\"current-password\" required/></label>")
		b.WriteString("<button type=\"submit\">Log in</button>")
		b.WriteString("</form>")
	})
}

// AdminDashboard shows per-kind content counts and traffic numbers.
func AdminDashboard(site Site, stats StatsSummary, msg, csrfToken string) templ.Component {
	return adminShell(site, "Dashboard", func(b *strings.Builder) {
		b.WriteString("<h1>Dashboard</h1>")
		writeFlash(b, msg)

		b.WriteString("<table class=\"stats\"><thead><tr><th>Kind</th><th>Total</th><th>Published</th><th>Views</th></tr></thead><tbody>")
		for _, k := range stats.Kinds {
			b.WriteString("<tr>")
			b.WriteString("<td>" + esc(k.Kind) + "</td>")
			b.WriteString("<td>" + strconv.Itoa(k.Total) + "</td>")
			b.WriteString("<td>" + strconv.Itoa(k.Published) + "</td>")
			b.WriteString("<td>" + FormatViews(k.Views) + "</td>")
			b.WriteString("</tr>")
		}
		b.WriteString("</tbody></table>")

		b.WriteString("<p class=\"summary\">")
		b.WriteString(FormatViews(stats.TotalViews) + " total views &middot; ")
		b.WriteString(strconv.Itoa(stats.ViewsLast7d) + " in the last 7 days &middot; ")
		b.WriteString("<a href=\"/admin/ideas/\">" + strconv.Itoa(stats.PendingIdeas) + " pending ideas</a>")
		b.WriteString("</p>")

		b.WriteString("<form method=\"post\" action=\"/admin/logout/\">")
		writeCSRF(b, csrfToken)
		b.WriteString("<button type=\"submit\">Log out</button>")
		b.WriteString("</form>")
	})
}

// writeRowActions renders the edit link plus toggle/delete forms for one row.
func writeRowActions(b *strings.Builder, base string, id int64, published bool, csrfToken string) {
	idStr := strconv.FormatInt(id, 10)
	b.WriteString("<td class=\"actions\">")
	b.WriteString("<a href=\"" + base + idStr + "/edit/\">Edit</a>")
	b.WriteString("<form method=\"post\" action=\"" + base + idStr + "/toggle/\">")
	writeCSRF(b, csrfToken)
	if published {
		b.WriteString("<button type=\"submit\">Unpublish</button>")
	} else {
		b.WriteString("<button type=\"submit\">Publish</button>")
	}
	b.WriteString("</form>")
	b.WriteString("<form method=\"post\" action=\"" + base + idStr + "/delete/\" onsubmit=\"return confirm('Delete this entry?')\">")
	writeCSRF(b, csrfToken)
	b.WriteString("<button type=\"submit\" class=\"danger\">Delete</button>")
	b.WriteString("</form>")
	b.WriteString("</td>")
}

func writeListHeader(b *strings.Builder, title, newPath, msg string) {
	b.WriteString("<h1>" + esc(title) + "</h1>")
	writeFlash(b, msg)
	b.WriteString("<p><a class=\"button\" href=\"" + newPath + "\">New</a></p>")
}

func writePublishedCell(b *strings.Builder, published bool) {
	if published {
		b.WriteString("<td><span class=\"badge published\">Published</span></td>")
	} else {
		b.WriteString("<td><span class=\"badge draft\">Draft</span></td>")
	}
}

// AdminBlogList is the blog post management table.
func AdminBlogList(site Site, posts []BlogPost, msg, csrfToken string) templ.Component {
	return adminShell(site, "Blog posts", func(b *strings.Builder) {
		writeListHeader(b, "Blog posts", "/admin/blog/new/", msg)
		if len(posts) == 0 {
			b.WriteString("<p class=\"empty\">No posts yet.</p>")
			return
		}
		b.WriteString("<table><thead><tr><th>Title</th><th>Slug</th><th>Status</th><th>Views</th><th>Created</th><th></th></tr></thead><tbody>")
		for _, p := range posts {
			b.WriteString("<tr>")
			b.WriteString("<td>" + esc(p.Title) + "</td>")
			b.WriteString("<td><code>" + esc(p.Slug) + "</code></td>")
			writePublishedCell(b, p.Published)
			b.WriteString("<td>" + FormatViews(p.Views) + "</td>")
			b.WriteString("<td>" + esc(FormatDate(p.CreatedAt)) + "</td>")
			writeRowActions(b, "/admin/blog/", p.ID, p.Published, csrfToken)
			b.WriteString("</tr>")
		}
		b.WriteString("</tbody></table>")
	})
}

func formAction(base string, isNew bool, id int64) string {
	if isNew {
		return base + "new/"
	}
	return base + strconv.FormatInt(id, 10) + "/edit/"
}

func writeCheckbox(b *strings.Builder, name, label string, checked bool) {
	b.WriteString("<label class=\"checkbox\"><input type=\"checkbox\" name=\"" + name + "\" value=\"true\"")
	if checked {
		b.WriteString(" checked")
	}
	b.WriteString("/>" + esc(label) + "</label>")
}

func writeTextInput(b *strings.Builder, name, label, value string, required bool) {
	b.WriteString("<label>" + esc(label) + "<input type=\"text\" name=\"" + name + "\" value=\"" + esc(value) + "\"")
	if required {
		b.WriteString(" required")
	}
	b.WriteString("/></label>")
}

func writeTextarea(b *strings.Builder, name, label, value string, rows int) {
	b.WriteString("<label>" + esc(label) + "<textarea name=\"" + name + "\" rows=\"" + strconv.Itoa(rows) + "\">" + esc(value) + "</textarea></label>")
}

// AdminBlogForm is the create/edit form for a blog post.
func AdminBlogForm(site Site, post BlogPost, isNew bool, errMsg, csrfToken string) templ.Component {
	title := "Edit blog post"
	if isNew {
		title = "New blog post"
	}
	return adminShell(site, title, func(b *strings.Builder) {
		b.WriteString("<h1>" + title + "</h1>")
		if errMsg != "" {
			b.WriteString("<p class=\"error\">" + esc(errMsg) + "</p>")
		}
		b.WriteString("<form method=\"post\" action=\"" + formAction("/admin/blog/", isNew, post.ID) + "\" class=\"edit-form\">")
		writeCSRF(b, csrfToken)
		writeTextInput(b, "title", "Title", post.Title, true)
		writeTextInput(b, "slug", "Slug (leave blank to derive from title)", post.Slug, false)
		writeTextarea(b, "excerpt", "Excerpt", post.Excerpt, 3)
		writeTextarea(b, "content", "Content (markdown)", post.Content, 20)
		writeTextInput(b, "featured_image", "Featured image URL", post.FeaturedImage, false)
		writeTextInput(b, "author", "Author", post.Author, false)
		writeCheckbox(b, "published", "Published", post.Published)
		b.WriteString("<button type=\"submit\">Save</button>")
		b.WriteString(" <a href=\"/admin/blog/\">Cancel</a>")
		b.WriteString("</form>")
	})
}

// AdminVideoList is the video management table.
func AdminVideoList(site Site, videos []Video, msg, csrfToken string) templ.Component {
	return adminShell(site, "Videos", func(b *strings.Builder) {
		writeListHeader(b, "Videos", "/admin/youtube/new/", msg)
		if len(videos) == 0 {
			b.WriteString("<p class=\"empty\">No videos yet.</p>")
			return
		}
		b.WriteString("<table><thead><tr><th>Title</th><th>Video ID</th><th>Status</th><th>Views</th><th></th></tr></thead><tbody>")
		for _, v := range videos {
			b.WriteString("<tr>")
			b.WriteString("<td>" + esc(v.Title) + "</td>")
			b.WriteString("<td><code>" + esc(v.VideoID) + "</code></td>")
			writePublishedCell(b, v.Published)
			b.WriteString("<td>" + FormatViews(v.Views) + "</td>")
			writeRowActions(b, "/admin/youtube/", v.ID, v.Published, csrfToken)
			b.WriteString("</tr>")
		}
		b.WriteString("</tbody></table>")
	})
}

// AdminVideoForm is the create/edit form for a video.
func AdminVideoForm(site Site, video Video, isNew bool, errMsg, csrfToken string) templ.Component {
	title := "Edit video"
	if isNew {
		title = "New video"
	}
	return adminShell(site, title, func(b *strings.Builder) {
		b.WriteString("<h1>" + title + "</h1>")
		if errMsg != "" {
			b.WriteString("<p class=\"error\">" + esc(errMsg) + "</p>")
		}
		b.WriteString("<form method=\"post\" action=\"" + formAction("/admin/youtube/", isNew, video.ID) + "\" class=\"edit-form\">")
		writeCSRF(b, csrfToken)
		writeTextInput(b, "title", "Title", video.Title, true)
		writeTextInput(b, "video_id", "YouTube video ID", video.VideoID, true)
		writeTextarea(b, "description", "Description (markdown)", video.Description, 8)
		writeTextInput(b, "thumbnail_url", "Thumbnail URL (optional)", video.ThumbnailURL, false)
		writeTextInput(b, "duration", "Duration (e.g. 12:34)", video.Duration, false)
		writeCheckbox(b, "published", "Published", video.Published)
		b.WriteString("<button type=\"submit\">Save</button>")
		b.WriteString(" <a href=\"/admin/youtube/\">Cancel</a>")
		b.WriteString("</form>")
	})
}

// AdminPodcastList is the episode management table.
func AdminPodcastList(site Site, episodes []Podcast, msg, csrfToken string) templ.Component {
	return adminShell(site, "Podcast", func(b *strings.Builder) {
		writeListHeader(b, "Podcast episodes", "/admin/podcast/new/", msg)
		if len(episodes) == 0 {
			b.WriteString("<p class=\"empty\">No episodes yet.</p>")
			return
		}
		b.WriteString("<table><thead><tr><th>#</th><th>Title</th><th>Status</th><th>Views</th><th></th></tr></thead><tbody>")
		for _, ep := range episodes {
			b.WriteString("<tr>")
			b.WriteString("<td>" + strconv.Itoa(ep.EpisodeNumber) + "</td>")
			b.WriteString("<td>" + esc(ep.Title) + "</td>")
			writePublishedCell(b, ep.Published)
			b.WriteString("<td>" + FormatViews(ep.Views) + "</td>")
			writeRowActions(b, "/admin/podcast/", ep.ID, ep.Published, csrfToken)
			b.WriteString("</tr>")
		}
		b.WriteString("</tbody></table>")
	})
}

// AdminPodcastForm is the create/edit form for an episode.
func AdminPodcastForm(site Site, episode Podcast, isNew bool, errMsg, csrfToken string) templ.Component {
	title := "Edit episode"
	if isNew {
		title = "New episode"
	}
	return adminShell(site, title, func(b *strings.Builder) {
		b.WriteString("<h1>" + title + "</h1>")
		if errMsg != "" {
			b.WriteString("<p class=\"error\">" + esc(errMsg) + "</p>")
		}
		b.WriteString("<form method=\"post\" action=\"" + formAction("/admin/podcast/", isNew, episode.ID) + "\" class=\"edit-form\">")
		writeCSRF(b, csrfToken)
		writeTextInput(b, "title", "Title", episode.Title, true)
		episodeNum := ""
		if episode.EpisodeNumber > 0 {
			episodeNum = strconv.Itoa(episode.EpisodeNumber)
		}
		b.WriteString("<label>Episode number<input type=\"number\" name=\"episode_number\" min=\"1\" value=\"" + episodeNum + "\"/></label>")
		writeTextInput(b, "audio_url", "Audio URL", episode.AudioURL, true)
		writeTextarea(b, "description", "Show notes (markdown)", episode.Description, 8)
		writeTextInput(b, "thumbnail_url", "Thumbnail URL (optional)", episode.ThumbnailURL, false)
		writeTextInput(b, "duration", "Duration (e.g. 45:10)", episode.Duration, false)
		writeCheckbox(b, "published", "Published", episode.Published)
		b.WriteString("<button type=\"submit\">Save</button>")
		b.WriteString(" <a href=\"/admin/podcast/\">Cancel</a>")
		b.WriteString("</form>")
	})
}

// AdminShortList is the shorts management table.
func AdminShortList(site Site, shorts []Short, msg, csrfToken string) templ.Component {
	return adminShell(site, "Shorts", func(b *strings.Builder) {
		writeListHeader(b, "Shorts", "/admin/shorts/new/", msg)
		if len(shorts) == 0 {
			b.WriteString("<p class=\"empty\">No shorts yet.</p>")
			return
		}
		b.WriteString("<table><thead><tr><th>Title</th><th>Video ID</th><th>Status</th><th>Views</th><th></th></tr></thead><tbody>")
		for _, s := range shorts {
			b.WriteString("<tr>")
			b.WriteString("<td>" + esc(s.Title) + "</td>")
			b.WriteString("<td><code>" + esc(s.VideoID) + "</code></td>")
			writePublishedCell(b, s.Published)
			b.WriteString("<td>" + FormatViews(s.Views) + "</td>")
			writeRowActions(b, "/admin/shorts/", s.ID, s.Published, csrfToken)
			b.WriteString("</tr>")
		}
		b.WriteString("</tbody></table>")
	})
}

// AdminShortForm is the create/edit form for a short.
func AdminShortForm(site Site, short Short, isNew bool, errMsg, csrfToken string) templ.Component {
	title := "Edit short"
	if isNew {
		title = "New short"
	}
	return adminShell(site, title, func(b *strings.Builder) {
		b.WriteString("<h1>" + title + "</h1>")
		if errMsg != "" {
			b.WriteString("<p class=\"error\">" + esc(errMsg) + "</p>")
		}
		b.WriteString("<form method=\"post\" action=\"" + formAction("/admin/shorts/", isNew, short.ID) + "\" class=\"edit-form\">")
		writeCSRF(b, csrfToken)
		writeTextInput(b, "title", "Title", short.Title, true)
		writeTextInput(b, "video_id", "YouTube video ID", short.VideoID, true)
		writeTextarea(b, "description", "Description (markdown)", short.Description, 5)
		writeTextInput(b, "thumbnail_url", "Thumbnail URL (optional)", short.ThumbnailURL, false)
		writeTextInput(b, "duration", "Duration (e.g. 0:58)", short.Duration, false)
		writeCheckbox(b, "published", "Published", short.Published)
		b.WriteString("<button type=\"submit\">Save</button>")
		b.WriteString(" <a href=\"/admin/shorts/\">Cancel</a>")
		b.WriteString("</form>")
	})
}

// AdminCommunityList is the community post management table.
func AdminCommunityList(site Site, posts []CommunityPost, msg, csrfToken string) templ.Component {
	return adminShell(site, "Community", func(b *strings.Builder) {
		writeListHeader(b, "Community posts", "/admin/community/new/", msg)
		if len(posts) == 0 {
			b.WriteString("<p class=\"empty\">No posts yet.</p>")
			return
		}
		b.WriteString("<table><thead><tr><th>Title</th><th>Category</th><th>Status</th><th>Views</th><th></th></tr></thead><tbody>")
		for _, p := range posts {
			b.WriteString("<tr>")
			b.WriteString("<td>" + esc(p.Title) + "</td>")
			b.WriteString("<td>" + esc(p.Category) + "</td>")
			writePublishedCell(b, p.Published)
			b.WriteString("<td>" + FormatViews(p.Views) + "</td>")
			writeRowActions(b, "/admin/community/", p.ID, p.Published, csrfToken)
			b.WriteString("</tr>")
		}
		b.WriteString("</tbody></table>")
	})
}

// AdminCommunityForm is the create/edit form for a community post.
func AdminCommunityForm(site Site, post CommunityPost, isNew bool, errMsg, csrfToken string) templ.Component {
	title := "Edit community post"
	if isNew {
		title = "New community post"
	}
	return adminShell(site, title, func(b *strings.Builder) {
		b.WriteString("<h1>" + title + "</h1>")
		if errMsg != "" {
			b.WriteString("<p class=\"error\">" + esc(errMsg) + "</p>")
		}
		b.WriteString("<form method=\"post\" action=\"" + formAction("/admin/community/", isNew, post.ID) + "\" class=\"edit-form\">")
		writeCSRF(b, csrfToken)
		writeTextInput(b, "title", "Title", post.Title, true)
		writeTextInput(b, "author", "Author", post.Author, false)
		writeTextInput(b, "category", "Category", post.Category, false)
		writeTextarea(b, "content", "Content (markdown)", post.Content, 12)
		writeCheckbox(b, "published", "Published", post.Published)
		b.WriteString("<button type=\"submit\">Save</button>")
		b.WriteString(" <a href=\"/admin/community/\">Cancel</a>")
		b.WriteString("</form>")
	})
}

// AdminIdeaList is the topic-idea review queue, pending entries first.
func AdminIdeaList(site Site, ideas []TopicIdea, msg, csrfToken string) templ.Component {
	return adminShell(site, "Topic ideas", func(b *strings.Builder) {
		b.WriteString("<h1>Topic ideas</h1>")
		writeFlash(b, msg)
		if len(ideas) == 0 {
			b.WriteString("<p class=\"empty\">No ideas submitted yet.</p>")
			return
		}
		b.WriteString("<table><thead><tr><th>Topic</th><th>From</th><th>Status</th><th>Submitted</th><th></th></tr></thead><tbody>")
		for _, idea := range ideas {
			idStr := strconv.FormatInt(idea.ID, 10)
			b.WriteString("<tr>")
			b.WriteString("<td><strong>" + esc(idea.Topic) + "</strong>")
			if idea.Description != "" {
				b.WriteString("<br/><small>" + esc(idea.Description) + "</small>")
			}
			b.WriteString("<br/><code>" + esc(idea.Reference) + "</code></td>")
			b.WriteString("<td>" + esc(idea.Name))
			if idea.Email != "" {
				b.WriteString("<br/><small>" + esc(idea.Email) + "</small>")
			}
			b.WriteString("</td>")
			b.WriteString("<td><span class=\"badge " + esc(idea.Status) + "\">" + esc(idea.Status) + "</span></td>")
			b.WriteString("<td>" + esc(FormatDate(idea.CreatedAt)) + "</td>")
			b.WriteString("<td class=\"actions\">")
			b.WriteString("<form method=\"post\" action=\"/admin/ideas/" + idStr + "/approve/\">")
			writeCSRF(b, csrfToken)
			b.WriteString("<button type=\"submit\">Approve</button></form>")
			b.WriteString("<form method=\"post\" action=\"/admin/ideas/" + idStr + "/reject/\">")
			writeCSRF(b, csrfToken)
			b.WriteString("<button type=\"submit\">Reject</button></form>")
			b.WriteString("<form method=\"post\" action=\"/admin/ideas/" + idStr + "/delete/\" onsubmit=\"return confirm('Delete this idea?')\">")
			writeCSRF(b, csrfToken)
			b.WriteString("<button type=\"submit\" class=\"danger\">Delete</button></form>")
			b.WriteString("</td>")
			b.WriteString("</tr>")
		}
		b.WriteString("</tbody></table>")
	})
}

// AdminImages is the upload manager for featured images and thumbnails.
func AdminImages(site Site, images []Image, msg, csrfToken string) templ.Component {
	return adminShell(site, "Images", func(b *strings.Builder) {
		b.WriteString("<h1>Images</h1>")
		writeFlash(b, msg)
		b.WriteString("<form method=\"post\" action=\"/admin/images/upload/\" enctype=\"multipart/form-data\" class=\"upload-form\">")
		writeCSRF(b, csrfToken)
		b.WriteString("<label>Upload image<input type=\"file\" name=\"image\" accept=\"image/*\" required/></label>")
		b.WriteString("<button type=\"submit\">Upload</button>")
		b.WriteString("</form>")
		if len(images) == 0 {
			b.WriteString("<p class=\"empty\">No images uploaded yet.</p>")
			return
		}
		b.WriteString("<ul class=\"image-grid\">")
		for _, img := range images {
			src := "/public/uploads/" + PathEscape(img.Filename)
			b.WriteString("<li>")
			b.WriteString("<img src=\"" + esc(src) + "\" alt=\"" + esc(img.OriginalName) + "\" loading=\"lazy\"/>")
			b.WriteString("<p><code>" + esc(img.Filename) + "</code><br/>")
			b.WriteString(strconv.Itoa(img.Width) + "&times;" + strconv.Itoa(img.Height) + ", " + strconv.Itoa(img.Size/1024) + " KB</p>")
			b.WriteString("<form method=\"post\" action=\"/admin/images/" + PathEscape(img.Filename) + "/delete/\" onsubmit=\"return confirm('Delete this image?')\">")
			writeCSRF(b, csrfToken)
			b.WriteString("<button type=\"submit\" class=\"danger\">Delete</button></form>")
			b.WriteString("</li>")
		}
		b.WriteString("</ul>")
	})
}
