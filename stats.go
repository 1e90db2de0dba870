package cryptasium

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Page-view tracking for the admin dashboard. Each public detail view bumps
// the record's counter and appends a row to the page_views log; the log is
// pruned by a retention scheduler so the database does not grow unbounded.
// IPs are never stored raw, only salted hashes.

// HashIP returns a salted, hex-encoded hash of an IP address.
func HashIP(salt, ip string) string {
	sum := sha256.Sum256([]byte(salt + "|" + ip))
	return hex.EncodeToString(sum[:])
}

// RecordPageView appends one row to the page_views log.
func (s *Store) RecordPageView(kind string, contentID int64, path, ipHash string) error {
	_, err := s.db.Exec(`INSERT INTO page_views (kind, content_id, path, ip_hash, timestamp) VALUES (?, ?, ?, ?, ?)`,
		kind, contentID, path, ipHash, fmtTime(now()))
	return err
}

// CountPageViewsSince returns the number of logged views at or after cutoff.
func (s *Store) CountPageViewsSince(cutoff time.Time) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM page_views WHERE timestamp >= ?`, fmtTime(cutoff)).Scan(&n)
	return n, err
}

// CleanupPageViews deletes log rows older than retention and returns the
// number removed.
func (s *Store) CleanupPageViews(retention time.Duration) (int64, error) {
	cutoff := now().Add(-retention)
	res, err := s.db.Exec(`DELETE FROM page_views WHERE timestamp < ?`, fmtTime(cutoff))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// StartCleanupScheduler prunes the page-view log every interval, keeping
// retention worth of rows. The returned func stops the scheduler.
func (s *Store) StartCleanupScheduler(retention, interval time.Duration, logf func(format string, args ...any)) func() {
	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				removed, err := s.CleanupPageViews(retention)
				if err != nil {
					logf("page view cleanup: %v", err)
				} else if removed > 0 {
					logf("page view cleanup: removed %d rows", removed)
				}
			case <-stop:
				return
			}
		}
	}()
	return func() { close(stop) }
}

// Stats gathers dashboard aggregates across all content kinds.
func (s *Store) Stats() (StatsSummary, error) {
	var out StatsSummary
	tables := []struct {
		kind, table string
	}{
		{"Blog posts", "blog_posts"},
		{"Videos", "videos"},
		{"Podcasts", "podcasts"},
		{"Shorts", "shorts"},
		{"Community posts", "community_posts"},
	}
	for _, t := range tables {
		var ks KindStats
		ks.Kind = t.kind
		err := s.db.QueryRow(`SELECT COUNT(*), COALESCE(SUM(published), 0), COALESCE(SUM(views), 0) FROM ` + t.table).
			Scan(&ks.Total, &ks.Published, &ks.Views)
		if err != nil {
			return StatsSummary{}, fmt.Errorf("stats for %s: %w", t.table, err)
		}
		out.Kinds = append(out.Kinds, ks)
		out.TotalViews += ks.Views
	}
	weekAgo := now().Add(-7 * 24 * time.Hour)
	var err error
	if out.ViewsLast7d, err = s.CountPageViewsSince(weekAgo); err != nil {
		return StatsSummary{}, fmt.Errorf("stats page views: %w", err)
	}
	if out.PendingIdeas, err = s.CountPendingIdeas(); err != nil {
		return StatsSummary{}, fmt.Errorf("stats pending ideas: %w", err)
	}
	return out, nil
}
