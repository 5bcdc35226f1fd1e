package presentation

import (
	"math/rand/v2"
	"testing"
	"time"

	"nina-movie/internal/domain"
)

func movies(n int) []domain.Movie {
	out := make([]domain.Movie, n)
	for i := range out {
		out[i] = domain.Movie{ID: string(rune('a' + i)), Title: "m", Duration: 90, Rating: 8}
	}
	return out
}

func TestCarouselMaxSlides(t *testing.T) {
	// 1200 / (220+16) = 5 visible cards
	c := NewCarousel("Row", movies(8), CardMedium, false, 0)
	if c.MaxSlides != 3 {
		t.Fatalf("expected 3 slides, got %d", c.MaxSlides)
	}

	small := NewCarousel("Row", movies(3), CardSmall, false, 1200)
	if small.MaxSlides != 0 {
		t.Fatalf("expected no slides, got %d", small.MaxSlides)
	}

	// 800 / (280+16) = 2 visible cards
	large := NewCarousel("Row", movies(5), CardLarge, false, 800)
	if large.MaxSlides != 3 {
		t.Fatalf("expected 3 slides, got %d", large.MaxSlides)
	}
}

func TestCarouselNavigation(t *testing.T) {
	c := NewCarousel("Row", movies(7), CardMedium, false, 1200)
	if !c.PreviousDisabled() || c.NextDisabled() {
		t.Fatal("unexpected initial button state")
	}

	c.Previous()
	if c.CurrentSlide != 0 {
		t.Fatalf("expected 0, got %d", c.CurrentSlide)
	}
	c.Next()
	c.Next()
	c.Next()
	if c.CurrentSlide != 2 || !c.NextDisabled() {
		t.Fatalf("expected bounded at 2, got %d", c.CurrentSlide)
	}
	if c.Offset() != 472 || c.Transform() != "translateX(-472px)" {
		t.Fatalf("unexpected offset %d %s", c.Offset(), c.Transform())
	}

	c.Resize(2400)
	if c.MaxSlides != 0 || c.CurrentSlide != 0 {
		t.Fatalf("expected reset after resize, got %d/%d", c.CurrentSlide, c.MaxSlides)
	}
}

func TestCardPosterFallback(t *testing.T) {
	m := domain.Movie{
		ID:          "42",
		Title:       "Untitled",
		Description: "plot",
		Duration:    45,
		Rating:      6.1,
		Year:        2001,
		Quality:     []domain.VideoQuality{domain.VideoQualityUHD},
	}
	c := NewCard(m, "", false)
	if c.Size != CardMedium || c.PosterImage != PlaceholderImage(0, 0) {
		t.Fatalf("unexpected card %+v", c)
	}
	if c.Duration != "45m" || c.RatingStars != 3 || c.Year != "2001" || c.Description != "" {
		t.Fatalf("unexpected card %+v", c)
	}
	if len(c.Qualities) != 1 || c.Qualities[0].Color != "#ff6b6b" {
		t.Fatalf("unexpected badges %+v", c.Qualities)
	}
	if c.PlayPath != "/player/42" {
		t.Fatalf("unexpected play path %s", c.PlayPath)
	}
}

func TestSampleMoviesAndHome(t *testing.T) {
	now := time.Now()
	rows := SampleMovies(rand.New(rand.NewPCG(1, 2)), now)
	if len(rows.Featured) != 5 || len(rows.Popular) != 5 || len(rows.Action) != 5 {
		t.Fatalf("unexpected row sizes %d/%d/%d", len(rows.Featured), len(rows.Popular), len(rows.Action))
	}
	for _, row := range [][]domain.Movie{rows.Featured, rows.Popular, rows.Action} {
		for _, m := range row {
			if m.Duration < 120 || m.Duration >= 180 {
				t.Errorf("%s duration %d out of range", m.Title, m.Duration)
			}
			if !IsRecentlyAdded(m.CreatedAt, now) {
				t.Errorf("%s should be recent", m.Title)
			}
		}
	}
	if g := rows.Featured[0].Genre; len(g) != 2 || g[0] != "Action" || g[1] != "Sci-Fi" {
		t.Errorf("unexpected genres %v", g)
	}

	home := NewHome(rows.Featured, rows.Popular, rows.Action, 0)
	if home.Hero == nil || home.Hero.Title != "The Matrix" {
		t.Fatalf("unexpected hero %+v", home.Hero)
	}
	if len(home.Carousels) != 3 || home.Carousels[0].CardSize != CardLarge {
		t.Fatalf("unexpected carousels %+v", home.Carousels)
	}
	if empty := NewHome(nil, nil, nil, 0); empty.Hero != nil || empty.Carousels[0].MaxSlides != 0 {
		t.Fatal("expected empty home")
	}
}
