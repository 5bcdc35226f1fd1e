package presentation

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"nina-movie/internal/domain"
)

type sampleSeed struct {
	id, title, genre string
	year             int
	rating           float64
}

var (
	featuredSeeds = []sampleSeed{
		{"1", "The Matrix", "Action, Sci-Fi", 1999, 8.7},
		{"2", "Inception", "Action, Thriller", 2010, 8.8},
		{"3", "Interstellar", "Drama, Sci-Fi", 2014, 8.6},
		{"4", "The Dark Knight", "Action, Crime", 2008, 9.0},
		{"5", "Pulp Fiction", "Crime, Drama", 1994, 8.9},
	}
	popularSeeds = []sampleSeed{
		{"6", "Avatar", "Action, Adventure", 2009, 7.8},
		{"7", "Titanic", "Drama, Romance", 1997, 7.9},
		{"8", "Star Wars", "Adventure, Fantasy", 1977, 8.6},
		{"9", "Jurassic Park", "Adventure, Sci-Fi", 1993, 8.1},
		{"10", "The Godfather", "Crime, Drama", 1972, 9.2},
	}
	actionSeeds = []sampleSeed{
		{"11", "John Wick", "Action, Thriller", 2014, 7.4},
		{"12", "Mad Max: Fury Road", "Action, Adventure", 2015, 8.1},
		{"13", "Die Hard", "Action, Thriller", 1988, 8.2},
		{"14", "Mission Impossible", "Action, Adventure", 1996, 7.1},
		{"15", "The Terminator", "Action, Sci-Fi", 1984, 8.0},
	}
)

// SampleRows is the demonstration catalog shown on the home page.
type SampleRows struct {
	Featured []domain.Movie
	Popular  []domain.Movie
	Action   []domain.Movie
}

// SampleMovies builds the demonstration rows. Durations are drawn from rnd in
// [120, 180); a nil rnd uses the global source.
func SampleMovies(rnd *rand.Rand, now time.Time) SampleRows {
	build := func(seeds []sampleSeed) []domain.Movie {
		out := make([]domain.Movie, len(seeds))
		for i, s := range seeds {
			out[i] = sampleMovie(s, rnd, now)
		}
		return out
	}
	return SampleRows{
		Featured: build(featuredSeeds),
		Popular:  build(popularSeeds),
		Action:   build(actionSeeds),
	}
}

func sampleMovie(s sampleSeed, rnd *rand.Rand, now time.Time) domain.Movie {
	var extra int
	if rnd != nil {
		extra = rnd.IntN(60)
	} else {
		extra = rand.IntN(60)
	}
	return domain.Movie{
		ID:    s.id,
		Title: s.title,
		Description: fmt.Sprintf("Experience the thrilling adventure of %s. "+
			"A captivating story that will keep you on the edge of your seat.", s.title),
		Genre:       strings.Split(s.genre, ", "),
		Director:    "Sample Director",
		Cast:        []string{"Actor 1", "Actor 2", "Actor 3"},
		Year:        s.year,
		Duration:    120 + extra,
		Rating:      s.rating,
		PosterURL:   "https://picsum.photos/300/450?random=" + s.id,
		BackdropURL: "https://picsum.photos/1200/675?random=" + s.id,
		Quality:     []domain.VideoQuality{domain.VideoQualityHD, domain.VideoQualityFullHD},
		Language:    "English",
		Subtitles:   []string{"English", "Spanish", "French"},
		CreatedAt:   now,
		UpdatedAt:   now,
		IsActive:    true,
	}
}
