package cryptasium

// Store operations for the media content kinds: videos, shorts, and podcast
// episodes. Videos and shorts share a shape but live in separate tables; the
// original site tracks them as distinct catalogs with their own page sizes.

const videoCols = `id, title, description, video_id, thumbnail_url, duration, published, created_at, views`

func scanVideo(row interface{ Scan(...any) error }) (Video, error) {
	var v Video
	var published int
	var created string
	err := row.Scan(&v.ID, &v.Title, &v.Description, &v.VideoID, &v.ThumbnailURL,
		&v.Duration, &published, &created, &v.Views)
	if err != nil {
		return Video{}, err
	}
	v.Published = published == 1
	v.CreatedAt = parseTime(created)
	return v, nil
}

// CreateVideo inserts a video and assigns its ID and creation timestamp.
func (s *Store) CreateVideo(v *Video) error {
	if v.CreatedAt.IsZero() {
		v.CreatedAt = now()
	}
	res, err := s.db.Exec(`INSERT INTO videos (title, description, video_id, thumbnail_url, duration, published, created_at, views)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		v.Title, v.Description, v.VideoID, v.ThumbnailURL, v.Duration,
		boolToInt(v.Published), fmtTime(v.CreatedAt), v.Views)
	if err != nil {
		return err
	}
	v.ID, err = res.LastInsertId()
	return err
}

// UpdateVideo rewrites an existing video. Returns ErrNotFound for missing IDs.
func (s *Store) UpdateVideo(v *Video) error {
	res, err := s.db.Exec(`UPDATE videos SET title = ?, description = ?, video_id = ?, thumbnail_url = ?, duration = ?, published = ? WHERE id = ?`,
		v.Title, v.Description, v.VideoID, v.ThumbnailURL, v.Duration, boolToInt(v.Published), v.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// GetVideo returns a single published video by ID.
func (s *Store) GetVideo(id int64) (Video, error) {
	row := s.db.QueryRow(`SELECT `+videoCols+` FROM videos WHERE id = ? AND published = 1`, id)
	return scanVideo(row)
}

// GetVideoAny returns a video by ID regardless of published status (for admin).
func (s *Store) GetVideoAny(id int64) (Video, error) {
	row := s.db.QueryRow(`SELECT `+videoCols+` FROM videos WHERE id = ?`, id)
	return scanVideo(row)
}

// ListVideos returns one page of published videos, newest first.
func (s *Store) ListVideos(page, perPage int) ([]Video, Pagination, error) {
	total, err := s.countWhere("videos", " WHERE published = 1")
	if err != nil {
		return nil, Pagination{}, err
	}
	pg := paginate(page, perPage, total)
	rows, err := s.db.Query(`SELECT `+videoCols+` FROM videos WHERE published = 1 ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		pg.PerPage, (pg.Page-1)*pg.PerPage)
	if err != nil {
		return nil, Pagination{}, err
	}
	defer rows.Close()

	var videos []Video
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, Pagination{}, err
		}
		videos = append(videos, v)
	}
	return videos, pg, rows.Err()
}

// ListAllVideos returns every video including drafts, newest first (for admin).
func (s *Store) ListAllVideos() ([]Video, error) {
	rows, err := s.db.Query(`SELECT ` + videoCols + ` FROM videos ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videos []Video
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

// LatestVideos returns up to n published videos, newest first (for the homepage).
func (s *Store) LatestVideos(n int) ([]Video, error) {
	rows, err := s.db.Query(`SELECT `+videoCols+` FROM videos WHERE published = 1 ORDER BY created_at DESC, id DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videos []Video
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

// ToggleVideoPublished flips the published flag. Returns ErrNotFound for missing IDs.
func (s *Store) ToggleVideoPublished(id int64) error {
	res, err := s.db.Exec(`UPDATE videos SET published = 1 - published WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// DeleteVideo removes a video by ID. Deleting a missing ID is not an error.
func (s *Store) DeleteVideo(id int64) error {
	_, err := s.db.Exec(`DELETE FROM videos WHERE id = ?`, id)
	return err
}

// IncrementVideoViews bumps the view counter for a video.
func (s *Store) IncrementVideoViews(id int64) error {
	_, err := s.db.Exec(`UPDATE videos SET views = views + 1 WHERE id = ?`, id)
	return err
}

// --- Shorts ---

func scanShort(row interface{ Scan(...any) error }) (Short, error) {
	var sh Short
	var published int
	var created string
	err := row.Scan(&sh.ID, &sh.Title, &sh.Description, &sh.VideoID, &sh.ThumbnailURL,
		&sh.Duration, &published, &created, &sh.Views)
	if err != nil {
		return Short{}, err
	}
	sh.Published = published == 1
	sh.CreatedAt = parseTime(created)
	return sh, nil
}

// CreateShort inserts a short and assigns its ID and creation timestamp.
func (s *Store) CreateShort(sh *Short) error {
	if sh.CreatedAt.IsZero() {
		sh.CreatedAt = now()
	}
	res, err := s.db.Exec(`INSERT INTO shorts (title, description, video_id, thumbnail_url, duration, published, created_at, views)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sh.Title, sh.Description, sh.VideoID, sh.ThumbnailURL, sh.Duration,
		boolToInt(sh.Published), fmtTime(sh.CreatedAt), sh.Views)
	if err != nil {
		return err
	}
	sh.ID, err = res.LastInsertId()
	return err
}

// UpdateShort rewrites an existing short. Returns ErrNotFound for missing IDs.
func (s *Store) UpdateShort(sh *Short) error {
	res, err := s.db.Exec(`UPDATE shorts SET title = ?, description = ?, video_id = ?, thumbnail_url = ?, duration = ?, published = ? WHERE id = ?`,
		sh.Title, sh.Description, sh.VideoID, sh.ThumbnailURL, sh.Duration, boolToInt(sh.Published), sh.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// GetShort returns a single published short by ID.
func (s *Store) GetShort(id int64) (Short, error) {
	row := s.db.QueryRow(`SELECT `+videoCols+` FROM shorts WHERE id = ? AND published = 1`, id)
	return scanShort(row)
}

// GetShortAny returns a short by ID regardless of published status (for admin).
func (s *Store) GetShortAny(id int64) (Short, error) {
	row := s.db.QueryRow(`SELECT `+videoCols+` FROM shorts WHERE id = ?`, id)
	return scanShort(row)
}

// ListShorts returns one page of published shorts, newest first.
func (s *Store) ListShorts(page, perPage int) ([]Short, Pagination, error) {
	total, err := s.countWhere("shorts", " WHERE published = 1")
	if err != nil {
		return nil, Pagination{}, err
	}
	pg := paginate(page, perPage, total)
	rows, err := s.db.Query(`SELECT `+videoCols+` FROM shorts WHERE published = 1 ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		pg.PerPage, (pg.Page-1)*pg.PerPage)
	if err != nil {
		return nil, Pagination{}, err
	}
	defer rows.Close()

	var shorts []Short
	for rows.Next() {
		sh, err := scanShort(rows)
		if err != nil {
			return nil, Pagination{}, err
		}
		shorts = append(shorts, sh)
	}
	return shorts, pg, rows.Err()
}

// ListAllShorts returns every short including drafts, newest first (for admin).
func (s *Store) ListAllShorts() ([]Short, error) {
	rows, err := s.db.Query(`SELECT ` + videoCols + ` FROM shorts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shorts []Short
	for rows.Next() {
		sh, err := scanShort(rows)
		if err != nil {
			return nil, err
		}
		shorts = append(shorts, sh)
	}
	return shorts, rows.Err()
}

// LatestShorts returns up to n published shorts, newest first (for the homepage).
func (s *Store) LatestShorts(n int) ([]Short, error) {
	rows, err := s.db.Query(`SELECT `+videoCols+` FROM shorts WHERE published = 1 ORDER BY created_at DESC, id DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shorts []Short
	for rows.Next() {
		sh, err := scanShort(rows)
		if err != nil {
			return nil, err
		}
		shorts = append(shorts, sh)
	}
	return shorts, rows.Err()
}

// ToggleShortPublished flips the published flag. Returns ErrNotFound for missing IDs.
func (s *Store) ToggleShortPublished(id int64) error {
	res, err := s.db.Exec(`UPDATE shorts SET published = 1 - published WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// DeleteShort removes a short by ID. Deleting a missing ID is not an error.
func (s *Store) DeleteShort(id int64) error {
	_, err := s.db.Exec(`DELETE FROM shorts WHERE id = ?`, id)
	return err
}

// IncrementShortViews bumps the view counter for a short.
func (s *Store) IncrementShortViews(id int64) error {
	_, err := s.db.Exec(`UPDATE shorts SET views = views + 1 WHERE id = ?`, id)
	return err
}

// --- Podcasts ---

const podcastCols = `id, title, description, episode_number, audio_url, thumbnail_url, duration, published, created_at, views`

func scanPodcast(row interface{ Scan(...any) error }) (Podcast, error) {
	var p Podcast
	var published int
	var created string
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.EpisodeNumber, &p.AudioURL,
		&p.ThumbnailURL, &p.Duration, &published, &created, &p.Views)
	if err != nil {
		return Podcast{}, err
	}
	p.Published = published == 1
	p.CreatedAt = parseTime(created)
	return p, nil
}

// CreatePodcast inserts an episode and assigns its ID and creation timestamp.
func (s *Store) CreatePodcast(p *Podcast) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now()
	}
	res, err := s.db.Exec(`INSERT INTO podcasts (title, description, episode_number, audio_url, thumbnail_url, duration, published, created_at, views)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Description, p.EpisodeNumber, p.AudioURL, p.ThumbnailURL, p.Duration,
		boolToInt(p.Published), fmtTime(p.CreatedAt), p.Views)
	if err != nil {
		return err
	}
	p.ID, err = res.LastInsertId()
	return err
}

// UpdatePodcast rewrites an existing episode. Returns ErrNotFound for missing IDs.
func (s *Store) UpdatePodcast(p *Podcast) error {
	res, err := s.db.Exec(`UPDATE podcasts SET title = ?, description = ?, episode_number = ?, audio_url = ?, thumbnail_url = ?, duration = ?, published = ? WHERE id = ?`,
		p.Title, p.Description, p.EpisodeNumber, p.AudioURL, p.ThumbnailURL, p.Duration, boolToInt(p.Published), p.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// GetPodcast returns a single published episode by ID.
func (s *Store) GetPodcast(id int64) (Podcast, error) {
	row := s.db.QueryRow(`SELECT `+podcastCols+` FROM podcasts WHERE id = ? AND published = 1`, id)
	return scanPodcast(row)
}

// GetPodcastAny returns an episode by ID regardless of published status (for admin).
func (s *Store) GetPodcastAny(id int64) (Podcast, error) {
	row := s.db.QueryRow(`SELECT `+podcastCols+` FROM podcasts WHERE id = ?`, id)
	return scanPodcast(row)
}

// ListPodcasts returns one page of published episodes, newest first.
func (s *Store) ListPodcasts(page, perPage int) ([]Podcast, Pagination, error) {
	total, err := s.countWhere("podcasts", " WHERE published = 1")
	if err != nil {
		return nil, Pagination{}, err
	}
	pg := paginate(page, perPage, total)
	rows, err := s.db.Query(`SELECT `+podcastCols+` FROM podcasts WHERE published = 1 ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		pg.PerPage, (pg.Page-1)*pg.PerPage)
	if err != nil {
		return nil, Pagination{}, err
	}
	defer rows.Close()

	var podcasts []Podcast
	for rows.Next() {
		p, err := scanPodcast(rows)
		if err != nil {
			return nil, Pagination{}, err
		}
		podcasts = append(podcasts, p)
	}
	return podcasts, pg, rows.Err()
}

// ListAllPodcasts returns every episode including drafts, newest first (for admin).
func (s *Store) ListAllPodcasts() ([]Podcast, error) {
	rows, err := s.db.Query(`SELECT ` + podcastCols + ` FROM podcasts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var podcasts []Podcast
	for rows.Next() {
		p, err := scanPodcast(rows)
		if err != nil {
			return nil, err
		}
		podcasts = append(podcasts, p)
	}
	return podcasts, rows.Err()
}

// TogglePodcastPublished flips the published flag. Returns ErrNotFound for missing IDs.
func (s *Store) TogglePodcastPublished(id int64) error {
	res, err := s.db.Exec(`UPDATE podcasts SET published = 1 - published WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// DeletePodcast removes an episode by ID. Deleting a missing ID is not an error.
func (s *Store) DeletePodcast(id int64) error {
	_, err := s.db.Exec(`DELETE FROM podcasts WHERE id = ?`, id)
	return err
}

// IncrementPodcastViews bumps the view counter for an episode.
func (s *Store) IncrementPodcastViews(id int64) error {
	_, err := s.db.Exec(`UPDATE podcasts SET views = views + 1 WHERE id = ?`, id)
	return err
}
