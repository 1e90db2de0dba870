package cryptasium

import (
	"testing"
	"time"
)

func TestHashIP(t *testing.T) {
	a := HashIP("salt", "203.0.113.1")
	b := HashIP("salt", "203.0.113.1")
	c := HashIP("salt", "203.0.113.2")
	d := HashIP("other-salt", "203.0.113.1")

	if a != b {
		t.Error("same salt and ip should hash identically")
	}
	if a == c {
		t.Error("different ips should hash differently")
	}
	if a == d {
		t.Error("different salts should hash differently")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(a))
	}
}

func TestRecordAndCountPageViews(t *testing.T) {
	s := setupTestStore(t)

	for i := 0; i < 3; i++ {
		if err := s.RecordPageView("blog", 1, "/blog/hello/", "deadbeef"); err != nil {
			t.Fatalf("RecordPageView failed: %v", err)
		}
	}

	n, err := s.CountPageViewsSince(time.Now().UTC().Add(-time.Hour))
	if err != nil {
		t.Fatalf("CountPageViewsSince failed: %v", err)
	}
	if n != 3 {
		t.Errorf("count = %d, want 3", n)
	}

	n, err = s.CountPageViewsSince(time.Now().UTC().Add(time.Hour))
	if err != nil {
		t.Fatalf("CountPageViewsSince failed: %v", err)
	}
	if n != 0 {
		t.Errorf("future cutoff count = %d, want 0", n)
	}
}

func TestCleanupPageViews(t *testing.T) {
	s := setupTestStore(t)

	if err := s.RecordPageView("blog", 1, "/blog/hello/", "deadbeef"); err != nil {
		t.Fatalf("RecordPageView failed: %v", err)
	}

	// Fresh rows survive a long retention.
	removed, err := s.CleanupPageViews(24 * time.Hour)
	if err != nil {
		t.Fatalf("CleanupPageViews failed: %v", err)
	}
	if removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}

	// A row past retention gets pruned.
	old := fmtTime(now().Add(-48 * time.Hour))
	if _, err := s.db.Exec(`INSERT INTO page_views (kind, content_id, path, ip_hash, timestamp) VALUES ('blog', 2, '/blog/old/', 'cafe', ?)`, old); err != nil {
		t.Fatalf("insert old row: %v", err)
	}
	removed, err = s.CleanupPageViews(24 * time.Hour)
	if err != nil {
		t.Fatalf("CleanupPageViews failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
}

func TestStats(t *testing.T) {
	s := setupTestStore(t)

	post := BlogPost{Title: "P", Slug: "p", Content: "c", Published: true}
	if err := s.CreateBlogPost(&post); err != nil {
		t.Fatalf("CreateBlogPost failed: %v", err)
	}
	draft := BlogPost{Title: "D", Slug: "d", Content: "c"}
	if err := s.CreateBlogPost(&draft); err != nil {
		t.Fatalf("CreateBlogPost failed: %v", err)
	}
	if err := s.IncrementBlogPostViews(post.ID); err != nil {
		t.Fatalf("IncrementBlogPostViews failed: %v", err)
	}
	idea := TopicIdea{Topic: "something"}
	if err := s.CreateTopicIdea(&idea); err != nil {
		t.Fatalf("CreateTopicIdea failed: %v", err)
	}
	if err := s.RecordPageView("blog", post.ID, "/blog/p/", "cafe"); err != nil {
		t.Fatalf("RecordPageView failed: %v", err)
	}

	stats, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if len(stats.Kinds) != 5 {
		t.Fatalf("kinds = %d, want 5", len(stats.Kinds))
	}
	blog := stats.Kinds[0]
	if blog.Total != 2 || blog.Published != 1 || blog.Views != 1 {
		t.Errorf("blog stats = %+v, want total 2 published 1 views 1", blog)
	}
	if stats.TotalViews != 1 {
		t.Errorf("TotalViews = %d, want 1", stats.TotalViews)
	}
	if stats.ViewsLast7d != 1 {
		t.Errorf("ViewsLast7d = %d, want 1", stats.ViewsLast7d)
	}
	if stats.PendingIdeas != 1 {
		t.Errorf("PendingIdeas = %d, want 1", stats.PendingIdeas)
	}
}

func TestStartCleanupScheduler(t *testing.T) {
	s := setupTestStore(t)

	var logged []string
	logf := func(format string, args ...any) {
		logged = append(logged, format)
	}
	stop := s.StartCleanupScheduler(time.Hour, 10*time.Millisecond, logf)
	time.Sleep(50 * time.Millisecond)
	stop()
	// Nothing to prune, so the scheduler should have stayed quiet.
	if len(logged) != 0 {
		t.Errorf("expected no log lines, got %v", logged)
	}
}
