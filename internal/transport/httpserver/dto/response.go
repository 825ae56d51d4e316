package dto

import (
	"github.com/eguilbert/cineapi/internal/app/service"
	"github.com/eguilbert/cineapi/internal/domain"
)

// PaginationMeta holds pagination metadata.
type PaginationMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// FilmListResponse represents a catalog page.
type FilmListResponse struct {
	Films      []*domain.Film `json:"films"`
	Pagination PaginationMeta `json:"pagination"`
}

// NewFilmListResponse builds a catalog page from a repository result.
func NewFilmListResponse(films []*domain.Film, total int64, filter domain.FilmFilter) FilmListResponse {
	totalPages := int(total) / filter.PageSize
	if int(total)%filter.PageSize > 0 {
		totalPages++
	}

	return FilmListResponse{
		Films: films,
		Pagination: PaginationMeta{
			Total:      total,
			Page:       filter.Page,
			PageSize:   filter.PageSize,
			TotalPages: totalPages,
		},
	}
}

// RefreshResponse represents the outcome of a manual catalog refresh.
type RefreshResponse struct {
	Candidates int    `json:"candidates"`
	Refreshed  int    `json:"refreshed"`
	Failed     int    `json:"failed"`
	Duration   string `json:"duration"`
}

// FromRefreshResult converts a service.RefreshResult to a RefreshResponse.
func FromRefreshResult(r *service.RefreshResult) RefreshResponse {
	return RefreshResponse{
		Candidates: r.Candidates,
		Refreshed:  r.Refreshed,
		Failed:     r.Failed,
		Duration:   r.Duration.String(),
	}
}

// StatusResponse represents a simple status acknowledgment.
type StatusResponse struct {
	Status string `json:"status"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}
