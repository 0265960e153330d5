package catalog

import (
	"errors"
	"strings"

	"github.com/actuallystonmai/group-recommender/internal/domain"
)

// genreNames maps TMDB movie genre ids to names. Search results only carry ids.
var genreNames = map[int]string{
	28: "Action", 12: "Adventure", 16: "Animation", 35: "Comedy", 80: "Crime",
	99: "Documentary", 18: "Drama", 10751: "Family", 14: "Fantasy", 36: "History",
	27: "Horror", 10402: "Music", 9648: "Mystery", 10749: "Romance",
	878: "Science Fiction", 10770: "TV Movie", 53: "Thriller", 10752: "War", 37: "Western",
}

type tmdbGenre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type tmdbMovie struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	ReleaseDate string      `json:"release_date"`
	Runtime     int         `json:"runtime"`
	VoteAverage float64     `json:"vote_average"`
	VoteCount   int         `json:"vote_count"`
	Popularity  float64     `json:"popularity"`
	PosterPath  string      `json:"poster_path"`
	Overview    string      `json:"overview"`
	Genres      []tmdbGenre `json:"genres"`
	GenreIDs    []int       `json:"genre_ids"`
}

type tmdbCredits struct {
	Cast []struct {
		Name  string `json:"name"`
		Order int    `json:"order"`
	} `json:"cast"`
	Crew []struct {
		Name string `json:"name"`
		Job  string `json:"job"`
	} `json:"crew"`
}

type tmdbSearchResult struct {
	Page         int         `json:"page"`
	TotalResults int         `json:"total_results"`
	Results      []tmdbMovie `json:"results"`
}

const topCastSize = 3

func (m tmdbMovie) toMetadata() domain.ItemMetadata {
	meta := domain.ItemMetadata{
		ID:             domain.ItemID(m.ID),
		Title:          strings.TrimSpace(m.Title),
		ReleaseDate:    m.ReleaseDate,
		ReleaseYear:    domain.ParseReleaseYear(m.ReleaseDate),
		RuntimeMinutes: m.Runtime,
		AverageRating:  m.VoteAverage,
		VoteCount:      m.VoteCount,
		Popularity:     m.Popularity,
		PosterPath:     m.PosterPath,
		Overview:       m.Overview,
	}
	if len(m.Genres) > 0 {
		for _, g := range m.Genres {
			meta.Genres = append(meta.Genres, g.Name)
		}
	} else {
		for _, id := range m.GenreIDs {
			if name, ok := genreNames[id]; ok {
				meta.Genres = append(meta.Genres, name)
			}
		}
	}
	return meta
}

// applyTo fills directors in crew order and the first three billed cast.
func (cr tmdbCredits) applyTo(meta *domain.ItemMetadata) {
	for _, p := range cr.Crew {
		if p.Job == "Director" {
			meta.Directors = append(meta.Directors, p.Name)
		}
	}
	for i, p := range cr.Cast {
		if i == topCastSize {
			break
		}
		meta.TopCast = append(meta.TopCast, p.Name)
	}
}

func (m tmdbMovie) validate() error {
	if m.ID <= 0 {
		return errors.New("payload has no movie id")
	}
	return nil
}
