package service

import (
	"context"
	"sort"
	"time"

	"github.com/eguilbert/cineapi/internal/domain"
)

// In-memory fakes backing the service tests. Only the behavior the
// services rely on is implemented.

type fakeFilmRepo struct {
	films  map[int64]*domain.Film
	nextID int64
}

func newFakeFilmRepo() *fakeFilmRepo {
	return &fakeFilmRepo{films: map[int64]*domain.Film{}, nextID: 1}
}

func (f *fakeFilmRepo) add(film *domain.Film) *domain.Film {
	if film.ID == 0 {
		film.ID = f.nextID
		f.nextID++
	}
	f.films[film.ID] = film

	return film
}

func (f *fakeFilmRepo) List(_ context.Context, filter domain.FilmFilter) ([]*domain.Film, int64, error) {
	filter.Normalize()
	var all []*domain.Film
	for _, film := range f.films {
		all = append(all, film)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	return all, int64(len(all)), nil
}

func (f *fakeFilmRepo) GetByID(_ context.Context, id int64) (*domain.Film, error) {
	return f.films[id], nil
}

func (f *fakeFilmRepo) GetByTmdbID(_ context.Context, tmdbID int64) (*domain.Film, error) {
	for _, film := range f.films {
		if film.TmdbID == tmdbID && tmdbID != 0 {
			return film, nil
		}
	}

	return nil, nil
}

func (f *fakeFilmRepo) Upsert(_ context.Context, film *domain.Film) error {
	if film.TmdbID != 0 {
		for _, existing := range f.films {
			if existing.TmdbID == film.TmdbID {
				film.ID = existing.ID
				f.films[film.ID] = film

				return nil
			}
		}
	}
	f.add(film)

	return nil
}

func (f *fakeFilmRepo) Update(_ context.Context, film *domain.Film) error {
	if _, ok := f.films[film.ID]; !ok {
		return domain.NotFoundf("film %d", film.ID)
	}
	f.films[film.ID] = film

	return nil
}

func (f *fakeFilmRepo) ListUpcoming(_ context.Context, now time.Time) ([]*domain.Film, error) {
	var upcoming []*domain.Film
	for _, film := range f.films {
		if film.Upcoming(now) {
			upcoming = append(upcoming, film)
		}
	}
	sort.Slice(upcoming, func(i, j int) bool { return upcoming[i].ID < upcoming[j].ID })

	return upcoming, nil
}

func (f *fakeFilmRepo) ListByKind(_ context.Context, _ string, _ int) ([]*domain.Film, error) {
	return nil, nil
}

func (f *fakeFilmRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.films)), nil
}

type interestKey struct {
	user string
	film int64
}

type fakeInterestRepo struct {
	votes map[interestKey]domain.InterestValue
}

func newFakeInterestRepo() *fakeInterestRepo {
	return &fakeInterestRepo{votes: map[interestKey]domain.InterestValue{}}
}

func (f *fakeInterestRepo) vote(user string, film int64, value domain.InterestValue) {
	f.votes[interestKey{user, film}] = value
}

func (f *fakeInterestRepo) Upsert(_ context.Context, interest *domain.Interest) error {
	f.vote(interest.UserID, interest.FilmID, interest.Value)

	return nil
}

func (f *fakeInterestRepo) CountByValue(_ context.Context, filmID int64) (domain.RawInterestCounts, error) {
	counts := domain.RawInterestCounts{}
	for key, value := range f.votes {
		if key.film == filmID {
			counts[string(value)]++
		}
	}

	return counts, nil
}

func (f *fakeInterestRepo) CountByValueForFilms(_ context.Context, filmIDs []int64) (map[int64]domain.RawInterestCounts, error) {
	result := map[int64]domain.RawInterestCounts{}
	for _, id := range filmIDs {
		counts, _ := f.CountByValue(context.Background(), id)
		if len(counts) > 0 {
			result[id] = counts
		}
	}

	return result, nil
}

func (f *fakeInterestRepo) ListByUser(_ context.Context, userID string) ([]*domain.Interest, error) {
	var interests []*domain.Interest
	for key, value := range f.votes {
		if key.user == userID {
			interests = append(interests, &domain.Interest{UserID: userID, FilmID: key.film, Value: value})
		}
	}
	sort.Slice(interests, func(i, j int) bool { return interests[i].FilmID < interests[j].FilmID })

	return interests, nil
}

func (f *fakeInterestRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.votes)), nil
}

type fakeRatingRepo struct {
	notes map[interestKey]int
}

func newFakeRatingRepo() *fakeRatingRepo {
	return &fakeRatingRepo{notes: map[interestKey]int{}}
}

func (f *fakeRatingRepo) Upsert(_ context.Context, rating *domain.Rating) error {
	f.notes[interestKey{rating.UserID, rating.FilmID}] = rating.Note

	return nil
}

func (f *fakeRatingRepo) AverageForFilm(_ context.Context, filmID int64) (float64, error) {
	sum, n := 0, 0
	for key, note := range f.notes {
		if key.film == filmID {
			sum += note
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}

	return float64(sum) / float64(n), nil
}

type fakeSelectionRepo struct {
	selections map[int64]*domain.Selection
	nextID     int64
	nextPivot  int64
}

func newFakeSelectionRepo() *fakeSelectionRepo {
	return &fakeSelectionRepo{selections: map[int64]*domain.Selection{}, nextID: 1, nextPivot: 1}
}

func (f *fakeSelectionRepo) Create(_ context.Context, selection *domain.Selection, filmIDs []int64) error {
	selection.ID = f.nextID
	f.nextID++
	for _, filmID := range filmIDs {
		selection.Films = append(selection.Films, domain.SelectionFilm{
			ID:          f.nextPivot,
			SelectionID: selection.ID,
			FilmID:      filmID,
		})
		f.nextPivot++
	}
	f.selections[selection.ID] = selection

	return nil
}

func (f *fakeSelectionRepo) GetByID(_ context.Context, id int64) (*domain.Selection, error) {
	selection, ok := f.selections[id]
	if !ok {
		return nil, nil
	}
	clone := *selection
	clone.Films = append([]domain.SelectionFilm(nil), selection.Films...)
	sort.Slice(clone.Films, func(i, j int) bool { return clone.Films[i].Score > clone.Films[j].Score })

	return &clone, nil
}

func (f *fakeSelectionRepo) List(_ context.Context) ([]*domain.Selection, error) {
	var all []*domain.Selection
	for _, selection := range f.selections {
		all = append(all, selection)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	return all, nil
}

func (f *fakeSelectionRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.selections[id]; !ok {
		return domain.NotFoundf("selection %d", id)
	}
	delete(f.selections, id)

	return nil
}

func (f *fakeSelectionRepo) UpsertFilm(_ context.Context, sf *domain.SelectionFilm) error {
	selection, ok := f.selections[sf.SelectionID]
	if !ok {
		return domain.NotFoundf("selection %d", sf.SelectionID)
	}
	for i := range selection.Films {
		if selection.Films[i].FilmID == sf.FilmID {
			selection.Films[i].Category = sf.Category
			selection.Films[i].Comment = sf.Comment
			sf.ID = selection.Films[i].ID

			return nil
		}
	}
	sf.ID = f.nextPivot
	f.nextPivot++
	selection.Films = append(selection.Films, *sf)

	return nil
}

func (f *fakeSelectionRepo) RemoveFilm(_ context.Context, selectionID, filmID int64) error {
	selection, ok := f.selections[selectionID]
	if !ok {
		return domain.NotFoundf("selection %d", selectionID)
	}
	for i := range selection.Films {
		if selection.Films[i].FilmID == filmID {
			selection.Films = append(selection.Films[:i], selection.Films[i+1:]...)

			return nil
		}
	}

	return domain.NotFoundf("film %d in selection %d", filmID, selectionID)
}

func (f *fakeSelectionRepo) UpdateStatus(_ context.Context, id int64, status domain.SelectionStatus) error {
	selection, ok := f.selections[id]
	if !ok {
		return domain.NotFoundf("selection %d", id)
	}
	selection.Status = status

	return nil
}

func (f *fakeSelectionRepo) Approve(_ context.Context, selectionID int64, scores map[int64]int, status domain.SelectionStatus) error {
	selection, ok := f.selections[selectionID]
	if !ok {
		return domain.NotFoundf("selection %d", selectionID)
	}

	// All-or-nothing, as the real transaction behaves
	for filmID := range scores {
		found := false
		for i := range selection.Films {
			if selection.Films[i].FilmID == filmID {
				found = true
				break
			}
		}
		if !found {
			return domain.NotFoundf("film %d in selection %d", filmID, selectionID)
		}
	}

	for filmID, score := range scores {
		for i := range selection.Films {
			if selection.Films[i].FilmID == filmID {
				selection.Films[i].Score = score
				selection.Films[i].Selected = true
			}
		}
	}
	selection.Status = status

	return nil
}

func (f *fakeSelectionRepo) CountByStatus(_ context.Context) (map[domain.SelectionStatus]int64, error) {
	counts := map[domain.SelectionStatus]int64{}
	for _, selection := range f.selections {
		counts[selection.Status]++
	}

	return counts, nil
}

type fakeActivityRepo struct {
	entries []*domain.ActivityEntry
}

func (f *fakeActivityRepo) Append(_ context.Context, entry *domain.ActivityEntry) error {
	f.entries = append(f.entries, entry)

	return nil
}

type fakeCatalog struct {
	movies map[int64]*domain.Film
	calls  int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{movies: map[int64]*domain.Film{}}
}

func (f *fakeCatalog) FetchMovie(_ context.Context, tmdbID int64) (*domain.Film, error) {
	f.calls++
	film, ok := f.movies[tmdbID]
	if !ok {
		return nil, domain.NotFoundf("tmdb movie %d", tmdbID)
	}
	clone := *film

	return &clone, nil
}

func (f *fakeCatalog) HealthCheck(_ context.Context) error {
	return nil
}

type fakeCache struct {
	entries map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (f *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	return f.entries[key], nil
}

func (f *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	f.entries[key] = value

	return nil
}

func (f *fakeCache) Delete(_ context.Context, key string) error {
	delete(f.entries, key)

	return nil
}
