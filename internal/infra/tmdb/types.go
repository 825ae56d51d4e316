package tmdb

import (
	"math"
	"strings"
	"time"

	"github.com/eguilbert/cineapi/internal/domain"
)

const posterBaseURL = "https://image.tmdb.org/t/p/w500"

// movieResponse is the /movie/{id} payload with credits and videos
// appended.
type movieResponse struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	Overview         string  `json:"overview"`
	Runtime          int     `json:"runtime"`
	PosterPath       string  `json:"poster_path"`
	ReleaseDate      string  `json:"release_date"`
	OriginalLanguage string  `json:"original_language"`
	VoteAverage      float64 `json:"vote_average"`

	Genres              []genre             `json:"genres"`
	ProductionCountries []productionCountry `json:"production_countries"`
	Credits             credits             `json:"credits"`
	Videos              videoList           `json:"videos"`
}

type genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type productionCountry struct {
	ISO  string `json:"iso_3166_1"`
	Name string `json:"name"`
}

type credits struct {
	Cast []castMember `json:"cast"`
	Crew []crewMember `json:"crew"`
}

type castMember struct {
	Name  string `json:"name"`
	Order int    `json:"order"`
}

type crewMember struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

type videoList struct {
	Results []video `json:"results"`
}

type video struct {
	Key      string `json:"key"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	ISO639   string `json:"iso_639_1"`
	Official bool   `json:"official"`
}

// ToDomain converts the TMDB payload to a domain.Film. The film carries
// no internal ID; the repository assigns one on upsert.
func (m *movieResponse) ToDomain() *domain.Film {
	film := &domain.Film{
		TmdbID:     m.ID,
		Title:      m.Title,
		Synopsis:   m.Overview,
		Genre:      m.genreText(),
		Duration:   m.Runtime,
		Origin:     strings.ToUpper(m.OriginalLanguage),
		Director:   m.director(),
		Actors:     m.topCast(5),
		PosterURL:  m.posterURL(),
		TrailerURL: m.trailerURL(),
		Rating:     int(math.Round(m.VoteAverage)),
	}

	if len(m.ProductionCountries) > 0 {
		film.Country = m.ProductionCountries[0].Name
	}

	if m.ReleaseDate != "" {
		if release, err := time.Parse("2006-01-02", m.ReleaseDate); err == nil {
			film.ReleaseDate = &release
		}
	}

	return film
}

func (m *movieResponse) genreText() string {
	names := make([]string, 0, len(m.Genres))
	for _, g := range m.Genres {
		names = append(names, g.Name)
	}

	return strings.Join(names, ", ")
}

func (m *movieResponse) director() string {
	for _, member := range m.Credits.Crew {
		if member.Job == "Director" {
			return member.Name
		}
	}

	return ""
}

func (m *movieResponse) topCast(n int) []string {
	cast := m.Credits.Cast
	if len(cast) > n {
		cast = cast[:n]
	}

	names := make([]string, 0, len(cast))
	for _, member := range cast {
		names = append(names, member.Name)
	}

	return names
}

func (m *movieResponse) posterURL() string {
	if m.PosterPath == "" {
		return ""
	}

	return posterBaseURL + m.PosterPath
}

// trailerURL picks the best YouTube trailer: French first, English as a
// fallback, then any trailer at all.
func (m *movieResponse) trailerURL() string {
	var french, english, any string
	for _, v := range m.Videos.Results {
		if v.Site != "YouTube" || v.Type != "Trailer" || v.Key == "" {
			continue
		}

		switch v.ISO639 {
		case "fr":
			if french == "" {
				french = v.Key
			}
		case "en":
			if english == "" {
				english = v.Key
			}
		}
		if any == "" {
			any = v.Key
		}
	}

	key := french
	if key == "" {
		key = english
	}
	if key == "" {
		key = any
	}
	if key == "" {
		return ""
	}

	return "https://www.youtube.com/watch?v=" + key
}
