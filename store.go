package cryptasium

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = sql.ErrNoRows

// Store wraps a SQLite database and provides CRUD operations for all content
// kinds. The database file lives in an instance directory created on first run.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the
// instance directory exists, and runs schema setup.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Enable WAL mode for concurrent read/write access, set a busy timeout
	// so writers wait instead of returning SQLITE_BUSY immediately, and tune
	// performance: synchronous=NORMAL is safe with WAL and avoids an fsync
	// per transaction; larger cache and mmap reduce disk I/O.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
		PRAGMA mmap_size=268435456;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS blog_posts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    slug TEXT NOT NULL UNIQUE,
    excerpt TEXT NOT NULL DEFAULT '',
    content TEXT NOT NULL,
    featured_image TEXT NOT NULL DEFAULT '',
    author TEXT NOT NULL DEFAULT '',
    published INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    views INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_blog_posts_published ON blog_posts(published, created_at);

CREATE TABLE IF NOT EXISTS videos (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    video_id TEXT NOT NULL UNIQUE,
    thumbnail_url TEXT NOT NULL DEFAULT '',
    duration TEXT NOT NULL DEFAULT '',
    published INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    views INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_videos_published ON videos(published, created_at);

CREATE TABLE IF NOT EXISTS podcasts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    episode_number INTEGER NOT NULL DEFAULT 0,
    audio_url TEXT NOT NULL DEFAULT '',
    thumbnail_url TEXT NOT NULL DEFAULT '',
    duration TEXT NOT NULL DEFAULT '',
    published INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    views INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_podcasts_published ON podcasts(published, created_at);

CREATE TABLE IF NOT EXISTS shorts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    video_id TEXT NOT NULL UNIQUE,
    thumbnail_url TEXT NOT NULL DEFAULT '',
    duration TEXT NOT NULL DEFAULT '',
    published INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    views INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_shorts_published ON shorts(published, created_at);

CREATE TABLE IF NOT EXISTS community_posts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    author TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL DEFAULT '',
    published INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    views INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_community_posts_published ON community_posts(published, created_at);

CREATE TABLE IF NOT EXISTS topic_ideas (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    reference TEXT NOT NULL UNIQUE,
    topic TEXT NOT NULL,
    description TEXT NOT NULL,
    name TEXT NOT NULL DEFAULT '',
    email TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'pending',
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS images (
    filename TEXT PRIMARY KEY,
    original_name TEXT NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    size INTEGER NOT NULL,
    uploaded_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS page_views (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    kind TEXT NOT NULL,
    content_id INTEGER NOT NULL,
    path TEXT NOT NULL,
    ip_hash TEXT NOT NULL,
    timestamp TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_page_views_timestamp ON page_views(timestamp);
CREATE INDEX IF NOT EXISTS idx_page_views_kind ON page_views(kind, content_id);
`)
	return err
}

// Timestamps are stored as RFC3339 UTC text and truncated to whole seconds so
// values survive a write/read round trip unchanged.
func fmtTime(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// paginate computes page metadata. Pages below 1 clamp to 1; pages past the
// end keep their number so callers get an empty slice with correct totals.
func paginate(page, perPage, total int) Pagination {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}
	totalPages := 0
	if total > 0 {
		totalPages = (total + perPage - 1) / perPage
	}
	return Pagination{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

func (s *Store) countWhere(table, where string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM ` + table + where).Scan(&n)
	return n, err
}

// --- Blog posts ---

const blogCols = `id, title, slug, excerpt, content, featured_image, author, published, created_at, updated_at, views`

func scanBlogPost(row interface{ Scan(...any) error }) (BlogPost, error) {
	var p BlogPost
	var published int
	var created, updated string
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.FeaturedImage,
		&p.Author, &published, &created, &updated, &p.Views)
	if err != nil {
		return BlogPost{}, err
	}
	p.Published = published == 1
	p.CreatedAt = parseTime(created)
	p.UpdatedAt = parseTime(updated)
	return p, nil
}

// CreateBlogPost inserts a post and assigns its ID and creation timestamp.
func (s *Store) CreateBlogPost(p *BlogPost) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now()
	}
	p.UpdatedAt = p.CreatedAt
	res, err := s.db.Exec(`INSERT INTO blog_posts (title, slug, excerpt, content, featured_image, author, published, created_at, updated_at, views)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Slug, p.Excerpt, p.Content, p.FeaturedImage, p.Author,
		boolToInt(p.Published), fmtTime(p.CreatedAt), fmtTime(p.UpdatedAt), p.Views)
	if err != nil {
		return err
	}
	p.ID, err = res.LastInsertId()
	return err
}

// UpdateBlogPost rewrites an existing post and refreshes its update timestamp.
// Returns ErrNotFound when the ID does not exist.
func (s *Store) UpdateBlogPost(p *BlogPost) error {
	p.UpdatedAt = now()
	res, err := s.db.Exec(`UPDATE blog_posts SET title = ?, slug = ?, excerpt = ?, content = ?, featured_image = ?, author = ?, published = ?, updated_at = ? WHERE id = ?`,
		p.Title, p.Slug, p.Excerpt, p.Content, p.FeaturedImage, p.Author,
		boolToInt(p.Published), fmtTime(p.UpdatedAt), p.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// GetBlogPostBySlug returns a single published post by slug.
func (s *Store) GetBlogPostBySlug(slug string) (BlogPost, error) {
	row := s.db.QueryRow(`SELECT `+blogCols+` FROM blog_posts WHERE slug = ? AND published = 1`, slug)
	return scanBlogPost(row)
}

// GetBlogPostAny returns a post by ID regardless of published status (for admin).
func (s *Store) GetBlogPostAny(id int64) (BlogPost, error) {
	row := s.db.QueryRow(`SELECT `+blogCols+` FROM blog_posts WHERE id = ?`, id)
	return scanBlogPost(row)
}

// ListBlogPosts returns one page of published posts, newest first.
func (s *Store) ListBlogPosts(page, perPage int) ([]BlogPost, Pagination, error) {
	total, err := s.countWhere("blog_posts", " WHERE published = 1")
	if err != nil {
		return nil, Pagination{}, err
	}
	pg := paginate(page, perPage, total)
	rows, err := s.db.Query(`SELECT `+blogCols+` FROM blog_posts WHERE published = 1 ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		pg.PerPage, (pg.Page-1)*pg.PerPage)
	if err != nil {
		return nil, Pagination{}, err
	}
	defer rows.Close()

	var posts []BlogPost
	for rows.Next() {
		p, err := scanBlogPost(rows)
		if err != nil {
			return nil, Pagination{}, err
		}
		posts = append(posts, p)
	}
	return posts, pg, rows.Err()
}

// ListAllBlogPosts returns every post including drafts, newest first (for admin).
func (s *Store) ListAllBlogPosts() ([]BlogPost, error) {
	rows, err := s.db.Query(`SELECT ` + blogCols + ` FROM blog_posts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []BlogPost
	for rows.Next() {
		p, err := scanBlogPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// LatestBlogPost returns the newest published post, or ErrNotFound if none exist.
func (s *Store) LatestBlogPost() (BlogPost, error) {
	row := s.db.QueryRow(`SELECT ` + blogCols + ` FROM blog_posts WHERE published = 1 ORDER BY created_at DESC, id DESC LIMIT 1`)
	return scanBlogPost(row)
}

// ToggleBlogPostPublished flips the published flag. Returns ErrNotFound for
// missing IDs.
func (s *Store) ToggleBlogPostPublished(id int64) error {
	res, err := s.db.Exec(`UPDATE blog_posts SET published = 1 - published, updated_at = ? WHERE id = ?`, fmtTime(now()), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// DeleteBlogPost removes a post by ID. Deleting a missing ID is not an error.
func (s *Store) DeleteBlogPost(id int64) error {
	_, err := s.db.Exec(`DELETE FROM blog_posts WHERE id = ?`, id)
	return err
}

// IncrementBlogPostViews bumps the view counter for a post.
func (s *Store) IncrementBlogPostViews(id int64) error {
	_, err := s.db.Exec(`UPDATE blog_posts SET views = views + 1 WHERE id = ?`, id)
	return err
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
