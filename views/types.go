// Package views renders every page of the site as a templ.Component.
// Components are built with templ.ComponentFunc and write HTML directly,
// escaping all record-sourced text.
package views

import "time"

// Site holds site-wide branding passed to every page shell.
type Site struct {
	Name        string
	URL         string
	Description string
	Author      string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head>.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}

// BlogPost is a long-form article rendered from markdown.
type BlogPost struct {
	ID            int64
	Title         string
	Slug          string
	Excerpt       string
	Content       string
	FeaturedImage string
	Author        string
	Published     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Views         int64
}

// Link returns the public path of the post.
func (p BlogPost) Link() string {
	return "/blog/" + p.Slug + "/"
}

// Video is a published YouTube video referenced by its external video ID.
type Video struct {
	ID           int64
	Title        string
	Description  string
	VideoID      string
	ThumbnailURL string
	Duration     string
	Published    bool
	CreatedAt    time.Time
	Views        int64
}

// Podcast is a single podcast episode with an external audio resource.
type Podcast struct {
	ID            int64
	Title         string
	Description   string
	EpisodeNumber int
	AudioURL      string
	ThumbnailURL  string
	Duration      string
	Published     bool
	CreatedAt     time.Time
	Views         int64
}

// Short is a short-form video, stored separately from regular videos.
type Short struct {
	ID           int64
	Title        string
	Description  string
	VideoID      string
	ThumbnailURL string
	Duration     string
	Published    bool
	CreatedAt    time.Time
	Views        int64
}

// CommunityPost is a categorized discussion post shown on the community page.
type CommunityPost struct {
	ID        int64
	Title     string
	Content   string
	Author    string
	Category  string
	Published bool
	CreatedAt time.Time
	Views     int64
}

// TopicIdea is a visitor-submitted content idea awaiting admin review.
type TopicIdea struct {
	ID          int64
	Reference   string
	Topic       string
	Description string
	Name        string
	Email       string
	Status      string
	CreatedAt   time.Time
}

// Image is metadata for an uploaded featured image or thumbnail.
type Image struct {
	Filename     string
	OriginalName string
	Width        int
	Height       int
	Size         int
	UploadedAt   string
}

// Pagination describes one page of a list query.
type Pagination struct {
	Page       int
	PerPage    int
	Total      int
	TotalPages int
}

// HasPrev reports whether an earlier page exists.
func (p Pagination) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a later page exists.
func (p Pagination) HasNext() bool { return p.Page < p.TotalPages }

// KindStats summarizes one content kind for the admin dashboard.
type KindStats struct {
	Kind      string
	Total     int
	Published int
	Views     int64
}

// StatsSummary aggregates content and traffic numbers for the dashboard.
type StatsSummary struct {
	Kinds        []KindStats
	TotalViews   int64
	ViewsLast7d  int
	PendingIdeas int
}
