package cryptasium

import "github.com/google/uuid"

// Store operations for community posts and visitor-submitted topic ideas.

const communityCols = `id, title, content, author, category, published, created_at, views`

func scanCommunityPost(row interface{ Scan(...any) error }) (CommunityPost, error) {
	var p CommunityPost
	var published int
	var created string
	err := row.Scan(&p.ID, &p.Title, &p.Content, &p.Author, &p.Category,
		&published, &created, &p.Views)
	if err != nil {
		return CommunityPost{}, err
	}
	p.Published = published == 1
	p.CreatedAt = parseTime(created)
	return p, nil
}

// CreateCommunityPost inserts a post and assigns its ID and creation timestamp.
func (s *Store) CreateCommunityPost(p *CommunityPost) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now()
	}
	res, err := s.db.Exec(`INSERT INTO community_posts (title, content, author, category, published, created_at, views)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Content, p.Author, p.Category, boolToInt(p.Published), fmtTime(p.CreatedAt), p.Views)
	if err != nil {
		return err
	}
	p.ID, err = res.LastInsertId()
	return err
}

// UpdateCommunityPost rewrites an existing post. Returns ErrNotFound for missing IDs.
func (s *Store) UpdateCommunityPost(p *CommunityPost) error {
	res, err := s.db.Exec(`UPDATE community_posts SET title = ?, content = ?, author = ?, category = ?, published = ? WHERE id = ?`,
		p.Title, p.Content, p.Author, p.Category, boolToInt(p.Published), p.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// GetCommunityPost returns a single published post by ID.
func (s *Store) GetCommunityPost(id int64) (CommunityPost, error) {
	row := s.db.QueryRow(`SELECT `+communityCols+` FROM community_posts WHERE id = ? AND published = 1`, id)
	return scanCommunityPost(row)
}

// GetCommunityPostAny returns a post by ID regardless of published status (for admin).
func (s *Store) GetCommunityPostAny(id int64) (CommunityPost, error) {
	row := s.db.QueryRow(`SELECT `+communityCols+` FROM community_posts WHERE id = ?`, id)
	return scanCommunityPost(row)
}

// ListCommunityPosts returns one page of published posts, newest first.
func (s *Store) ListCommunityPosts(page, perPage int) ([]CommunityPost, Pagination, error) {
	total, err := s.countWhere("community_posts", " WHERE published = 1")
	if err != nil {
		return nil, Pagination{}, err
	}
	pg := paginate(page, perPage, total)
	rows, err := s.db.Query(`SELECT `+communityCols+` FROM community_posts WHERE published = 1 ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		pg.PerPage, (pg.Page-1)*pg.PerPage)
	if err != nil {
		return nil, Pagination{}, err
	}
	defer rows.Close()

	var posts []CommunityPost
	for rows.Next() {
		p, err := scanCommunityPost(rows)
		if err != nil {
			return nil, Pagination{}, err
		}
		posts = append(posts, p)
	}
	return posts, pg, rows.Err()
}

// ListAllCommunityPosts returns every post including drafts, newest first (for admin).
func (s *Store) ListAllCommunityPosts() ([]CommunityPost, error) {
	rows, err := s.db.Query(`SELECT ` + communityCols + ` FROM community_posts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []CommunityPost
	for rows.Next() {
		p, err := scanCommunityPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// ToggleCommunityPostPublished flips the published flag. Returns ErrNotFound for missing IDs.
func (s *Store) ToggleCommunityPostPublished(id int64) error {
	res, err := s.db.Exec(`UPDATE community_posts SET published = 1 - published WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// DeleteCommunityPost removes a post by ID. Deleting a missing ID is not an error.
func (s *Store) DeleteCommunityPost(id int64) error {
	_, err := s.db.Exec(`DELETE FROM community_posts WHERE id = ?`, id)
	return err
}

// IncrementCommunityPostViews bumps the view counter for a post.
func (s *Store) IncrementCommunityPostViews(id int64) error {
	_, err := s.db.Exec(`UPDATE community_posts SET views = views + 1 WHERE id = ?`, id)
	return err
}

// --- Topic ideas ---

const ideaCols = `id, reference, topic, description, name, email, status, created_at`

func scanIdea(row interface{ Scan(...any) error }) (TopicIdea, error) {
	var i TopicIdea
	var created string
	err := row.Scan(&i.ID, &i.Reference, &i.Topic, &i.Description, &i.Name, &i.Email, &i.Status, &created)
	if err != nil {
		return TopicIdea{}, err
	}
	i.CreatedAt = parseTime(created)
	return i, nil
}

// CreateTopicIdea records a submitted idea as pending and assigns its ID,
// UUID reference, and creation timestamp.
func (s *Store) CreateTopicIdea(i *TopicIdea) error {
	if i.Reference == "" {
		i.Reference = uuid.NewString()
	}
	if i.Status == "" {
		i.Status = IdeaPending
	}
	if i.CreatedAt.IsZero() {
		i.CreatedAt = now()
	}
	res, err := s.db.Exec(`INSERT INTO topic_ideas (reference, topic, description, name, email, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		i.Reference, i.Topic, i.Description, i.Name, i.Email, i.Status, fmtTime(i.CreatedAt))
	if err != nil {
		return err
	}
	i.ID, err = res.LastInsertId()
	return err
}

// ListTopicIdeas returns all ideas, pending first, newest first within a status.
func (s *Store) ListTopicIdeas() ([]TopicIdea, error) {
	rows, err := s.db.Query(`SELECT ` + ideaCols + ` FROM topic_ideas
		ORDER BY CASE status WHEN 'pending' THEN 0 WHEN 'approved' THEN 1 ELSE 2 END, created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ideas []TopicIdea
	for rows.Next() {
		i, err := scanIdea(rows)
		if err != nil {
			return nil, err
		}
		ideas = append(ideas, i)
	}
	return ideas, rows.Err()
}

// CountPendingIdeas returns the number of ideas awaiting review.
func (s *Store) CountPendingIdeas() (int, error) {
	return s.countWhere("topic_ideas", ` WHERE status = 'pending'`)
}

// SetTopicIdeaStatus moves an idea to approved/rejected/pending. Returns
// ErrNotFound for missing IDs.
func (s *Store) SetTopicIdeaStatus(id int64, status string) error {
	res, err := s.db.Exec(`UPDATE topic_ideas SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// DeleteTopicIdea removes an idea by ID. Deleting a missing ID is not an error.
func (s *Store) DeleteTopicIdea(id int64) error {
	_, err := s.db.Exec(`DELETE FROM topic_ideas WHERE id = ?`, id)
	return err
}

// --- Uploaded images ---

// SaveImage records metadata for an uploaded image.
func (s *Store) SaveImage(img Image) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO images (filename, original_name, width, height, size, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		img.Filename, img.OriginalName, img.Width, img.Height, img.Size, img.UploadedAt)
	return err
}

// ListImages returns uploaded image metadata, newest first.
func (s *Store) ListImages() ([]Image, error) {
	rows, err := s.db.Query(`SELECT filename, original_name, width, height, size, uploaded_at FROM images ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.Filename, &img.OriginalName, &img.Width, &img.Height, &img.Size, &img.UploadedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// DeleteImage removes image metadata by filename. Missing filenames are not an error.
func (s *Store) DeleteImage(filename string) error {
	_, err := s.db.Exec(`DELETE FROM images WHERE filename = ?`, filename)
	return err
}
