package postgres

import (
	"time"

	"github.com/lib/pq"

	"github.com/eguilbert/cineapi/internal/domain"
)

// FilmModel is the GORM model for the films table.
type FilmModel struct {
	ID int64 `gorm:"primaryKey;autoIncrement"`
	// Unique among imported films only; 0 marks a direct creation
	// (partial unique index, see migration 001).
	TmdbID int64 `gorm:"index;default:0"`

	Title    string         `gorm:"type:varchar(500);not null"`
	Synopsis string         `gorm:"type:text"`
	Genre    string         `gorm:"type:varchar(255)"`
	Duration int            `gorm:"default:0"`
	Origin   string         `gorm:"type:varchar(10)"`
	Country  string         `gorm:"type:varchar(100)"`
	Director string         `gorm:"type:varchar(255)"`
	Actors   pq.StringArray `gorm:"type:text[]"`
	Tags     pq.StringArray `gorm:"type:text[]"`

	PosterURL  string `gorm:"type:varchar(500)"`
	TrailerURL string `gorm:"type:varchar(500)"`

	Category string `gorm:"type:varchar(50);index"`
	Rating   int    `gorm:"default:0"`

	ReleaseDate *time.Time `gorm:"index"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime"`
}

func (FilmModel) TableName() string { return "films" }

// ToDomain converts FilmModel to domain.Film.
func (m *FilmModel) ToDomain() *domain.Film {
	return &domain.Film{
		ID:          m.ID,
		TmdbID:      m.TmdbID,
		Title:       m.Title,
		Synopsis:    m.Synopsis,
		Genre:       m.Genre,
		Duration:    m.Duration,
		Origin:      m.Origin,
		Country:     m.Country,
		Director:    m.Director,
		Actors:      m.Actors,
		Tags:        m.Tags,
		PosterURL:   m.PosterURL,
		TrailerURL:  m.TrailerURL,
		Category:    m.Category,
		Rating:      m.Rating,
		ReleaseDate: m.ReleaseDate,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FilmFromDomain creates a FilmModel from domain.Film.
func FilmFromDomain(f *domain.Film) *FilmModel {
	return &FilmModel{
		ID:          f.ID,
		TmdbID:      f.TmdbID,
		Title:       f.Title,
		Synopsis:    f.Synopsis,
		Genre:       f.Genre,
		Duration:    f.Duration,
		Origin:      f.Origin,
		Country:     f.Country,
		Director:    f.Director,
		Actors:      f.Actors,
		Tags:        f.Tags,
		PosterURL:   f.PosterURL,
		TrailerURL:  f.TrailerURL,
		Category:    f.Category,
		Rating:      f.Rating,
		ReleaseDate: f.ReleaseDate,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// InterestModel is one user's interest vote. One row per (user, film).
type InterestModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UserID    string    `gorm:"type:varchar(64);not null;index:idx_interests_user_film,unique"`
	FilmID    int64     `gorm:"not null;index:idx_interests_user_film,unique;index"`
	Value     string    `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Film *FilmModel `gorm:"foreignKey:FilmID"`
}

func (InterestModel) TableName() string { return "interests" }

func (m *InterestModel) ToDomain() *domain.Interest {
	i := &domain.Interest{
		ID:        m.ID,
		UserID:    m.UserID,
		FilmID:    m.FilmID,
		Value:     domain.InterestValue(m.Value),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.Film != nil {
		i.Film = m.Film.ToDomain()
	}

	return i
}

// RatingModel is one user's numeric rating. One row per (user, film).
type RatingModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UserID    string    `gorm:"type:varchar(64);not null;index:idx_ratings_user_film,unique"`
	FilmID    int64     `gorm:"not null;index:idx_ratings_user_film,unique;index"`
	Note      int       `gorm:"not null"`
	Comment   string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (RatingModel) TableName() string { return "ratings" }

// SelectionModel is a curated batch of films with a workflow status.
type SelectionModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Status    string    `gorm:"type:varchar(20);not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Films []SelectionFilmModel `gorm:"foreignKey:SelectionID"`
}

func (SelectionModel) TableName() string { return "selections" }

func (m *SelectionModel) ToDomain() *domain.Selection {
	s := &domain.Selection{
		ID:        m.ID,
		Name:      m.Name,
		Status:    domain.SelectionStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	for i := range m.Films {
		s.Films = append(s.Films, *m.Films[i].ToDomain())
	}

	return s
}

// SelectionFilmModel is the selection/film pivot. The score column is
// the frozen approval-time score.
type SelectionFilmModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	SelectionID int64  `gorm:"not null;index:idx_selection_films_pair,unique"`
	FilmID      int64  `gorm:"not null;index:idx_selection_films_pair,unique"`
	Selected    bool   `gorm:"default:false"`
	Score       int    `gorm:"default:0;index"`
	Category    string `gorm:"type:varchar(50)"`
	Comment     string `gorm:"type:text"`

	Film *FilmModel `gorm:"foreignKey:FilmID"`
}

func (SelectionFilmModel) TableName() string { return "selection_films" }

func (m *SelectionFilmModel) ToDomain() *domain.SelectionFilm {
	sf := &domain.SelectionFilm{
		ID:          m.ID,
		SelectionID: m.SelectionID,
		FilmID:      m.FilmID,
		Selected:    m.Selected,
		Score:       m.Score,
		Category:    m.Category,
		Comment:     m.Comment,
	}
	if m.Film != nil {
		sf.Film = m.Film.ToDomain()
	}

	return sf
}

// CinemaModel is one of the association's venues.
type CinemaModel struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"type:varchar(255);not null"`
	Slug string `gorm:"type:varchar(255);uniqueIndex"`
}

func (CinemaModel) TableName() string { return "cinemas" }

func (m *CinemaModel) ToDomain() *domain.Cinema {
	return &domain.Cinema{ID: m.ID, Name: m.Name, Slug: m.Slug}
}

// ProgrammingModel is the per-cinema seance allocation for an approved
// selection. One row per (selection, film, cinema).
type ProgrammingModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	SelectionID int64  `gorm:"not null;index:idx_programming_triple,unique"`
	FilmID      int64  `gorm:"not null;index:idx_programming_triple,unique"`
	CinemaID    int64  `gorm:"not null;index:idx_programming_triple,unique"`
	Suggested   int    `gorm:"not null;default:0"`
	CapLabel    string `gorm:"type:varchar(100)"`
	Notes       string `gorm:"type:text"`
	CycleID     *int64
}

func (ProgrammingModel) TableName() string { return "selection_film_programming" }

func (m *ProgrammingModel) ToDomain() domain.ProgrammingItem {
	return domain.ProgrammingItem{
		ID:          m.ID,
		SelectionID: m.SelectionID,
		FilmID:      m.FilmID,
		CinemaID:    m.CinemaID,
		Suggested:   m.Suggested,
		CapLabel:    m.CapLabel,
		Notes:       m.Notes,
		CycleID:     m.CycleID,
	}
}

// ProgrammingCommentModel is an append-only operator note.
type ProgrammingCommentModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	SelectionID int64     `gorm:"not null;index"`
	FilmID      int64     `gorm:"not null;index"`
	CinemaID    *int64    `gorm:"index"`
	UserID      string    `gorm:"type:varchar(64);not null"`
	Body        string    `gorm:"type:text;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (ProgrammingCommentModel) TableName() string { return "programming_comments" }

func (m *ProgrammingCommentModel) ToDomain() domain.ProgrammingComment {
	return domain.ProgrammingComment{
		ID:          m.ID,
		SelectionID: m.SelectionID,
		FilmID:      m.FilmID,
		CinemaID:    m.CinemaID,
		UserID:      m.UserID,
		Body:        m.Body,
		CreatedAt:   m.CreatedAt,
	}
}

// ListModel is a generic film collection outside the selection workflow.
type ListModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Slug        string    `gorm:"type:varchar(255);uniqueIndex"`
	Type        string    `gorm:"type:varchar(20);not null"`
	Kind        string    `gorm:"type:varchar(50)"`
	Description string    `gorm:"type:text"`
	CoverURL    string    `gorm:"type:varchar(500)"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (ListModel) TableName() string { return "lists" }

func (m *ListModel) ToDomain() *domain.List {
	return &domain.List{
		ID:          m.ID,
		Name:        m.Name,
		Slug:        m.Slug,
		Type:        domain.ListType(m.Type),
		Kind:        m.Kind,
		Description: m.Description,
		CoverURL:    m.CoverURL,
		CreatedAt:   m.CreatedAt,
	}
}

// ListFilmModel is the ranked pivot for curated lists.
type ListFilmModel struct {
	ID     int64 `gorm:"primaryKey;autoIncrement"`
	ListID int64 `gorm:"not null;index:idx_list_films_pair,unique"`
	FilmID int64 `gorm:"not null;index:idx_list_films_pair,unique"`
	Rank   int   `gorm:"default:0"`

	Film *FilmModel `gorm:"foreignKey:FilmID"`
}

func (ListFilmModel) TableName() string { return "list_films" }

// ActivityModel is one audit-trail row.
type ActivityModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UserID    string    `gorm:"type:varchar(64);not null;index"`
	Action    string    `gorm:"type:varchar(100);not null"`
	TargetID  int64     `gorm:"default:0"`
	Context   string    `gorm:"type:varchar(255)"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (ActivityModel) TableName() string { return "activity_log" }
