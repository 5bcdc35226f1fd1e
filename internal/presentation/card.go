package presentation

import "nina-movie/internal/domain"

type CardSize string

const (
	CardSmall  CardSize = "small"
	CardMedium CardSize = "medium"
	CardLarge  CardSize = "large"
)

const cardGap = 16

// Width is the rendered card width in pixels, excluding the gap.
func (s CardSize) Width() int {
	switch s {
	case CardSmall:
		return 180
	case CardLarge:
		return 280
	default:
		return 220
	}
}

// Card is the display form of one movie tile.
type Card struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description,omitempty"`
	Year            string   `json:"year"`
	Genre           []string `json:"genre"`
	Duration        string   `json:"duration"`
	RatingStars     int      `json:"ratingStars"`
	PosterImage     string   `json:"posterImage"`
	Qualities       []Badge  `json:"qualities"`
	Size            CardSize `json:"size"`
	PlayPath        string   `json:"playPath"`
	DetailPath      string   `json:"detailPath"`
	ShowDescription bool     `json:"showDescription"`
}

type Badge struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// NewCard builds the card for m. An empty size means medium.
func NewCard(m domain.Movie, size CardSize, showDescription bool) Card {
	if size == "" {
		size = CardMedium
	}
	poster := m.PosterURL
	if poster == "" {
		poster = PlaceholderImage(0, 0)
	}
	badges := make([]Badge, 0, len(m.Quality))
	for _, q := range m.Quality {
		badges = append(badges, Badge{Label: string(q), Color: QualityColor(string(q))})
	}
	c := Card{
		ID:              m.ID,
		Title:           m.Title,
		Year:            FormatYear(m.Year),
		Genre:           m.Genre,
		Duration:        FormatDuration(m.Duration),
		RatingStars:     RatingStars(m.Rating),
		PosterImage:     poster,
		Qualities:       badges,
		Size:            size,
		PlayPath:        "/player/" + m.ID,
		DetailPath:      "/movies/" + m.ID,
		ShowDescription: showDescription,
	}
	if showDescription {
		c.Description = TruncateText(m.Description, 120)
	}
	return c
}
