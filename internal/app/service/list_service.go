package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/eguilbert/cineapi/internal/domain"
)

// ListService serves generic film collections: hand-curated lists and
// rule-based dynamic ones resolved against the catalog at read time.
type ListService struct {
	lists  domain.ListRepository
	films  domain.FilmRepository
	logger *zap.Logger
}

// NewListService creates a new ListService.
func NewListService(lists domain.ListRepository, films domain.FilmRepository, logger *zap.Logger) *ListService {
	return &ListService{
		lists:  lists,
		films:  films,
		logger: logger,
	}
}

// Lists returns collections, optionally filtered by type.
func (s *ListService) Lists(ctx context.Context, listType domain.ListType) ([]*domain.List, error) {
	if listType != "" && listType != domain.ListCurated && listType != domain.ListDynamic {
		return nil, domain.Validationf("unknown list type %q", listType)
	}

	return s.lists.List(ctx, listType)
}

// ListWithFilms is a collection resolved to its films.
type ListWithFilms struct {
	List  *domain.List   `json:"list"`
	Films []*domain.Film `json:"films"`
}

// Resolve returns a collection and its films. Curated lists read the
// ranked pivot; dynamic lists run their rule against the catalog.
func (s *ListService) Resolve(ctx context.Context, slug string, limit, offset int) (*ListWithFilms, error) {
	list, err := s.lists.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, domain.NotFoundf("list %q", slug)
	}

	var films []*domain.Film
	switch list.Type {
	case domain.ListCurated:
		films, err = s.lists.CuratedItems(ctx, list.ID, limit, offset)
	case domain.ListDynamic:
		films, err = s.films.ListByKind(ctx, list.Kind, limit)
	default:
		return nil, domain.Validationf("list %q has unknown type %q", slug, list.Type)
	}
	if err != nil {
		return nil, err
	}

	return &ListWithFilms{List: list, Films: films}, nil
}
