package domain

import "strconv"

type ItemID int64

func (id ItemID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

type ItemMetadata struct {
	ID             ItemID   `json:"id"`
	Title          string   `json:"title"`
	ReleaseYear    int      `json:"release_year"`
	ReleaseDate    string   `json:"release_date"`
	RuntimeMinutes int      `json:"runtime_minutes"`
	AverageRating  float64  `json:"average_rating"`
	VoteCount      int      `json:"vote_count"`
	Popularity     float64  `json:"popularity"`
	PosterPath     string   `json:"poster_path"`
	Directors      []string `json:"directors,omitempty"`
	TopCast        []string `json:"top_cast,omitempty"`
	Genres         []string `json:"genres,omitempty"`
	Overview       string   `json:"overview"`
}

// ReleaseYearPrefix returns the first four characters of the release date,
// or "" when the date is shorter than that.
func (m ItemMetadata) ReleaseYearPrefix() string {
	if len(m.ReleaseDate) < 4 {
		return ""
	}
	return m.ReleaseDate[:4]
}

// ParseReleaseYear extracts the year from a catalog date such as "2021-09-15".
// It returns 0 when the first four characters are not all digits.
func ParseReleaseYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	for _, r := range date[:4] {
		if r < '0' || r > '9' {
			return 0
		}
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}
