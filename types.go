package cryptasium

import "cryptasium/views"

// Content records are defined in the views package so templates can render
// them without an import cycle; the store works with the same types through
// these aliases.
type (
	BlogPost      = views.BlogPost
	Video         = views.Video
	Podcast       = views.Podcast
	Short         = views.Short
	CommunityPost = views.CommunityPost
	TopicIdea     = views.TopicIdea
	Image         = views.Image
	Pagination    = views.Pagination
	KindStats     = views.KindStats
	StatsSummary  = views.StatsSummary
)

// Idea status values.
const (
	IdeaPending  = "pending"
	IdeaApproved = "approved"
	IdeaRejected = "rejected"
)

// --- Admin form payloads ---
// Bound from POST forms and checked with the package validator before any
// store write. URL fields accept empty values; when present they must parse.

// BlogPostForm carries blog create/edit form fields.
type BlogPostForm struct {
	Title         string `form:"title" validate:"required,max=200"`
	Slug          string `form:"slug" validate:"max=200"`
	Excerpt       string `form:"excerpt"`
	Content       string `form:"content" validate:"required"`
	FeaturedImage string `form:"featured_image" validate:"omitempty,max=500"`
	Author        string `form:"author" validate:"max=100"`
	Published     bool   `form:"published"`
}

// VideoForm carries video and short create/edit form fields.
type VideoForm struct {
	Title        string `form:"title" validate:"required,max=200"`
	Description  string `form:"description"`
	VideoID      string `form:"video_id" validate:"required,max=50"`
	ThumbnailURL string `form:"thumbnail_url" validate:"omitempty,url,max=500"`
	Duration     string `form:"duration" validate:"max=20"`
	Published    bool   `form:"published"`
}

// PodcastForm carries podcast create/edit form fields.
type PodcastForm struct {
	Title         string `form:"title" validate:"required,max=200"`
	Description   string `form:"description"`
	EpisodeNumber int    `form:"episode_number" validate:"gte=0"`
	AudioURL      string `form:"audio_url" validate:"omitempty,url,max=500"`
	ThumbnailURL  string `form:"thumbnail_url" validate:"omitempty,url,max=500"`
	Duration      string `form:"duration" validate:"max=20"`
	Published     bool   `form:"published"`
}

// CommunityPostForm carries community post create/edit form fields.
type CommunityPostForm struct {
	Title     string `form:"title" validate:"required,max=200"`
	Content   string `form:"content" validate:"required"`
	Author    string `form:"author" validate:"max=100"`
	Category  string `form:"category" validate:"max=50"`
	Published bool   `form:"published"`
}

// TopicIdeaForm carries the public idea submission form fields.
type TopicIdeaForm struct {
	Topic       string `form:"topic" validate:"required,max=200"`
	Description string `form:"description" validate:"max=2000"`
	Name        string `form:"name" validate:"max=100"`
	Email       string `form:"email" validate:"omitempty,email,max=200"`
}
