package cryptasium

import (
	"fmt"
	"path/filepath"
	"testing"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewStore(t *testing.T) {
	s := setupTestStore(t)
	if s.db == nil {
		t.Fatal("db should not be nil")
	}
}

func TestCreateAndGetBlogPost(t *testing.T) {
	s := setupTestStore(t)

	post := BlogPost{
		Title:     "Hello",
		Slug:      "hello",
		Excerpt:   "World",
		Content:   "# Hello\n\nWorld",
		Author:    "Satoshi",
		Published: true,
	}
	if err := s.CreateBlogPost(&post); err != nil {
		t.Fatalf("CreateBlogPost failed: %v", err)
	}
	if post.ID == 0 {
		t.Fatal("CreateBlogPost should assign an ID")
	}
	if post.CreatedAt.IsZero() {
		t.Fatal("CreateBlogPost should set CreatedAt")
	}

	got, err := s.GetBlogPostBySlug("hello")
	if err != nil {
		t.Fatalf("GetBlogPostBySlug failed: %v", err)
	}
	if got.Title != "Hello" {
		t.Errorf("Title = %q, want %q", got.Title, "Hello")
	}
	if got.Excerpt != "World" {
		t.Errorf("Excerpt = %q, want %q", got.Excerpt, "World")
	}
	if got.Content != post.Content {
		t.Errorf("Content = %q, want %q", got.Content, post.Content)
	}
	if !got.CreatedAt.Equal(post.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, post.CreatedAt)
	}
	if got.Link() != "/blog/hello/" {
		t.Errorf("Link = %q, want %q", got.Link(), "/blog/hello/")
	}
}

func TestGetBlogPostBySlugUnpublished(t *testing.T) {
	s := setupTestStore(t)

	post := BlogPost{Title: "Draft", Slug: "draft", Content: "c", Published: false}
	if err := s.CreateBlogPost(&post); err != nil {
		t.Fatalf("CreateBlogPost failed: %v", err)
	}

	if _, err := s.GetBlogPostBySlug("draft"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound for draft, got %v", err)
	}

	got, err := s.GetBlogPostAny(post.ID)
	if err != nil {
		t.Fatalf("GetBlogPostAny failed: %v", err)
	}
	if got.Published {
		t.Error("Published should be false")
	}
}

func TestUpdateBlogPost(t *testing.T) {
	s := setupTestStore(t)

	post := BlogPost{Title: "Original", Slug: "original", Content: "c", Published: true}
	if err := s.CreateBlogPost(&post); err != nil {
		t.Fatalf("CreateBlogPost failed: %v", err)
	}

	post.Title = "Updated"
	if err := s.UpdateBlogPost(&post); err != nil {
		t.Fatalf("UpdateBlogPost failed: %v", err)
	}

	got, err := s.GetBlogPostAny(post.ID)
	if err != nil {
		t.Fatalf("GetBlogPostAny failed: %v", err)
	}
	if got.Title != "Updated" {
		t.Errorf("Title = %q, want %q", got.Title, "Updated")
	}
	if got.UpdatedAt.Before(got.CreatedAt) {
		t.Error("UpdatedAt should not precede CreatedAt")
	}
}

func TestUpdateBlogPostNotFound(t *testing.T) {
	s := setupTestStore(t)

	post := BlogPost{ID: 999, Title: "Ghost", Slug: "ghost", Content: "c"}
	if err := s.UpdateBlogPost(&post); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestToggleBlogPostPublished(t *testing.T) {
	s := setupTestStore(t)

	post := BlogPost{Title: "Toggle", Slug: "toggle", Content: "c", Published: false}
	if err := s.CreateBlogPost(&post); err != nil {
		t.Fatalf("CreateBlogPost failed: %v", err)
	}

	if err := s.ToggleBlogPostPublished(post.ID); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	got, _ := s.GetBlogPostAny(post.ID)
	if !got.Published {
		t.Error("post should be published after first toggle")
	}

	if err := s.ToggleBlogPostPublished(post.ID); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	got, _ = s.GetBlogPostAny(post.ID)
	if got.Published {
		t.Error("post should be a draft after second toggle")
	}

	if err := s.ToggleBlogPostPublished(4242); err != ErrNotFound {
		t.Errorf("expected ErrNotFound for missing ID, got %v", err)
	}
}

func TestDeleteBlogPost(t *testing.T) {
	s := setupTestStore(t)

	post := BlogPost{Title: "Gone", Slug: "gone", Content: "c", Published: true}
	if err := s.CreateBlogPost(&post); err != nil {
		t.Fatalf("CreateBlogPost failed: %v", err)
	}

	if err := s.DeleteBlogPost(post.ID); err != nil {
		t.Fatalf("DeleteBlogPost failed: %v", err)
	}
	if _, err := s.GetBlogPostAny(post.ID); err != ErrNotFound {
		t.Errorf("post should not exist after delete, got %v", err)
	}

	// Deleting again is not an error.
	if err := s.DeleteBlogPost(post.ID); err != nil {
		t.Errorf("second delete should be a no-op, got %v", err)
	}
}

func TestIncrementBlogPostViews(t *testing.T) {
	s := setupTestStore(t)

	post := BlogPost{Title: "Counted", Slug: "counted", Content: "c", Published: true}
	if err := s.CreateBlogPost(&post); err != nil {
		t.Fatalf("CreateBlogPost failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := s.IncrementBlogPostViews(post.ID); err != nil {
			t.Fatalf("IncrementBlogPostViews failed: %v", err)
		}
	}
	got, _ := s.GetBlogPostAny(post.ID)
	if got.Views != 3 {
		t.Errorf("Views = %d, want 3", got.Views)
	}
}

func TestListBlogPostsPagination(t *testing.T) {
	s := setupTestStore(t)

	for i := 1; i <= 25; i++ {
		post := BlogPost{
			Title:     fmt.Sprintf("Post %d", i),
			Slug:      fmt.Sprintf("post-%d", i),
			Content:   "c",
			Published: true,
		}
		if err := s.CreateBlogPost(&post); err != nil {
			t.Fatalf("CreateBlogPost failed: %v", err)
		}
	}
	// One draft that must not count.
	draft := BlogPost{Title: "Draft", Slug: "a-draft", Content: "c"}
	if err := s.CreateBlogPost(&draft); err != nil {
		t.Fatalf("CreateBlogPost failed: %v", err)
	}

	seen := make(map[int64]bool)
	for page := 1; page <= 3; page++ {
		posts, pg, err := s.ListBlogPosts(page, 10)
		if err != nil {
			t.Fatalf("ListBlogPosts(%d) failed: %v", page, err)
		}
		if pg.Total != 25 {
			t.Errorf("Total = %d, want 25", pg.Total)
		}
		if pg.TotalPages != 3 {
			t.Errorf("TotalPages = %d, want 3", pg.TotalPages)
		}
		want := 10
		if page == 3 {
			want = 5
		}
		if len(posts) != want {
			t.Errorf("page %d: len = %d, want %d", page, len(posts), want)
		}
		for _, p := range posts {
			if seen[p.ID] {
				t.Errorf("post %d appears on more than one page", p.ID)
			}
			seen[p.ID] = true
		}
	}
	if len(seen) != 25 {
		t.Errorf("pages covered %d posts, want 25", len(seen))
	}

	// Past the end: empty slice, totals intact.
	posts, pg, err := s.ListBlogPosts(4, 10)
	if err != nil {
		t.Fatalf("ListBlogPosts(4) failed: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("page past end should be empty, got %d", len(posts))
	}
	if pg.Total != 25 || pg.TotalPages != 3 {
		t.Errorf("past-end pagination = %+v, want Total 25 TotalPages 3", pg)
	}

	// Page below 1 clamps to 1.
	posts, pg, err = s.ListBlogPosts(0, 10)
	if err != nil {
		t.Fatalf("ListBlogPosts(0) failed: %v", err)
	}
	if pg.Page != 1 || len(posts) != 10 {
		t.Errorf("page 0 should clamp to page 1 with 10 posts, got page %d len %d", pg.Page, len(posts))
	}
}

func TestLatestBlogPost(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.LatestBlogPost(); err != ErrNotFound {
		t.Errorf("expected ErrNotFound on empty table, got %v", err)
	}

	for _, slug := range []string{"first", "second"} {
		post := BlogPost{Title: slug, Slug: slug, Content: "c", Published: true}
		if err := s.CreateBlogPost(&post); err != nil {
			t.Fatalf("CreateBlogPost failed: %v", err)
		}
	}
	got, err := s.LatestBlogPost()
	if err != nil {
		t.Fatalf("LatestBlogPost failed: %v", err)
	}
	if got.Slug != "second" {
		t.Errorf("latest = %q, want %q", got.Slug, "second")
	}
}

func TestVideoRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	video := Video{
		Title:     "Intro to Wallets",
		VideoID:   "dQw4w9WgXcQ",
		Duration:  "10:02",
		Published: true,
	}
	if err := s.CreateVideo(&video); err != nil {
		t.Fatalf("CreateVideo failed: %v", err)
	}

	got, err := s.GetVideo(video.ID)
	if err != nil {
		t.Fatalf("GetVideo failed: %v", err)
	}
	if got.VideoID != video.VideoID {
		t.Errorf("VideoID = %q, want %q", got.VideoID, video.VideoID)
	}

	video.Title = "Intro to Wallets (updated)"
	if err := s.UpdateVideo(&video); err != nil {
		t.Fatalf("UpdateVideo failed: %v", err)
	}
	got, _ = s.GetVideoAny(video.ID)
	if got.Title != video.Title {
		t.Errorf("Title = %q, want %q", got.Title, video.Title)
	}

	if err := s.DeleteVideo(video.ID); err != nil {
		t.Fatalf("DeleteVideo failed: %v", err)
	}
	if _, err := s.GetVideoAny(video.ID); err != ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestGetVideoUnpublished(t *testing.T) {
	s := setupTestStore(t)

	video := Video{Title: "Hidden", VideoID: "hidden123", Published: false}
	if err := s.CreateVideo(&video); err != nil {
		t.Fatalf("CreateVideo failed: %v", err)
	}
	if _, err := s.GetVideo(video.ID); err != ErrNotFound {
		t.Errorf("GetVideo should hide drafts, got %v", err)
	}
}

func TestLatestVideos(t *testing.T) {
	s := setupTestStore(t)

	for i := 1; i <= 5; i++ {
		v := Video{Title: fmt.Sprintf("V%d", i), VideoID: fmt.Sprintf("vid%d", i), Published: i != 5}
		if err := s.CreateVideo(&v); err != nil {
			t.Fatalf("CreateVideo failed: %v", err)
		}
	}
	got, err := s.LatestVideos(3)
	if err != nil {
		t.Fatalf("LatestVideos failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	// Newest published first; the draft (V5) must not appear.
	if got[0].VideoID != "vid4" {
		t.Errorf("first = %q, want vid4", got[0].VideoID)
	}
}

func TestShortRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	short := Short{Title: "Quick take", VideoID: "short001", Published: true}
	if err := s.CreateShort(&short); err != nil {
		t.Fatalf("CreateShort failed: %v", err)
	}

	got, err := s.GetShort(short.ID)
	if err != nil {
		t.Fatalf("GetShort failed: %v", err)
	}
	if got.Title != "Quick take" {
		t.Errorf("Title = %q", got.Title)
	}

	// Shorts and videos are separate tables: same external ID must not clash.
	video := Video{Title: "Same ID", VideoID: "short001", Published: true}
	if err := s.CreateVideo(&video); err != nil {
		t.Errorf("video with same external ID as a short should insert, got %v", err)
	}

	if err := s.ToggleShortPublished(short.ID); err != nil {
		t.Fatalf("ToggleShortPublished failed: %v", err)
	}
	if _, err := s.GetShort(short.ID); err != ErrNotFound {
		t.Errorf("unpublished short should be hidden, got %v", err)
	}
}

func TestPodcastRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	episode := Podcast{
		Title:         "Genesis Block",
		EpisodeNumber: 1,
		AudioURL:      "https://cdn.example.com/ep1.mp3",
		Duration:      "45:10",
		Published:     true,
	}
	if err := s.CreatePodcast(&episode); err != nil {
		t.Fatalf("CreatePodcast failed: %v", err)
	}

	got, err := s.GetPodcast(episode.ID)
	if err != nil {
		t.Fatalf("GetPodcast failed: %v", err)
	}
	if got.EpisodeNumber != 1 {
		t.Errorf("EpisodeNumber = %d, want 1", got.EpisodeNumber)
	}
	if got.AudioURL != episode.AudioURL {
		t.Errorf("AudioURL = %q, want %q", got.AudioURL, episode.AudioURL)
	}

	episodes, pg, err := s.ListPodcasts(1, 10)
	if err != nil {
		t.Fatalf("ListPodcasts failed: %v", err)
	}
	if len(episodes) != 1 || pg.Total != 1 {
		t.Errorf("ListPodcasts = %d episodes, total %d, want 1/1", len(episodes), pg.Total)
	}
}

func TestCommunityPostRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	post := CommunityPost{
		Title:     "AMA next week",
		Content:   "Ask me anything about cold storage.",
		Author:    "mod",
		Category:  "announcement",
		Published: true,
	}
	if err := s.CreateCommunityPost(&post); err != nil {
		t.Fatalf("CreateCommunityPost failed: %v", err)
	}

	got, err := s.GetCommunityPost(post.ID)
	if err != nil {
		t.Fatalf("GetCommunityPost failed: %v", err)
	}
	if got.Category != "announcement" {
		t.Errorf("Category = %q", got.Category)
	}

	if err := s.DeleteCommunityPost(post.ID); err != nil {
		t.Fatalf("DeleteCommunityPost failed: %v", err)
	}
	if _, err := s.GetCommunityPostAny(post.ID); err != ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestTopicIdeas(t *testing.T) {
	s := setupTestStore(t)

	first := TopicIdea{Topic: "Cover DeFi basics", Description: "please"}
	if err := s.CreateTopicIdea(&first); err != nil {
		t.Fatalf("CreateTopicIdea failed: %v", err)
	}
	if first.Reference == "" {
		t.Fatal("CreateTopicIdea should assign a reference")
	}
	if first.Status != IdeaPending {
		t.Errorf("Status = %q, want %q", first.Status, IdeaPending)
	}

	second := TopicIdea{Topic: "Lightning deep dive"}
	if err := s.CreateTopicIdea(&second); err != nil {
		t.Fatalf("CreateTopicIdea failed: %v", err)
	}
	if second.Reference == first.Reference {
		t.Error("references should be unique")
	}

	if err := s.SetTopicIdeaStatus(first.ID, IdeaApproved); err != nil {
		t.Fatalf("SetTopicIdeaStatus failed: %v", err)
	}

	n, err := s.CountPendingIdeas()
	if err != nil {
		t.Fatalf("CountPendingIdeas failed: %v", err)
	}
	if n != 1 {
		t.Errorf("pending count = %d, want 1", n)
	}

	// Pending ideas sort before reviewed ones.
	ideas, err := s.ListTopicIdeas()
	if err != nil {
		t.Fatalf("ListTopicIdeas failed: %v", err)
	}
	if len(ideas) != 2 {
		t.Fatalf("len = %d, want 2", len(ideas))
	}
	if ideas[0].Status != IdeaPending {
		t.Errorf("first idea status = %q, want pending first", ideas[0].Status)
	}

	if err := s.SetTopicIdeaStatus(999, IdeaRejected); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if err := s.DeleteTopicIdea(second.ID); err != nil {
		t.Fatalf("DeleteTopicIdea failed: %v", err)
	}
	ideas, _ = s.ListTopicIdeas()
	if len(ideas) != 1 {
		t.Errorf("len after delete = %d, want 1", len(ideas))
	}
}

func TestImages(t *testing.T) {
	s := setupTestStore(t)

	img := Image{
		Filename:     "chart.jpg",
		OriginalName: "My Chart.png",
		Width:        800,
		Height:       600,
		Size:         12345,
		UploadedAt:   "2026-01-02T03:04:05Z",
	}
	if err := s.SaveImage(img); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	// Saving the same filename again replaces the row.
	img.Size = 999
	if err := s.SaveImage(img); err != nil {
		t.Fatalf("SaveImage replace failed: %v", err)
	}

	images, err := s.ListImages()
	if err != nil {
		t.Fatalf("ListImages failed: %v", err)
	}
	if len(images) != 1 {
		t.Fatalf("len = %d, want 1", len(images))
	}
	if images[0].Size != 999 {
		t.Errorf("Size = %d, want 999", images[0].Size)
	}

	if err := s.DeleteImage("chart.jpg"); err != nil {
		t.Fatalf("DeleteImage failed: %v", err)
	}
	images, _ = s.ListImages()
	if len(images) != 0 {
		t.Errorf("len after delete = %d, want 0", len(images))
	}
}
