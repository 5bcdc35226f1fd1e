package presentation

import "nina-movie/internal/domain"

// Home is the landing page view.
type Home struct {
	Hero      *Card       `json:"hero,omitempty"`
	Carousels []*Carousel `json:"carousels"`
}

// NewHome lays out the three home rows. The first featured movie becomes the
// hero banner.
func NewHome(featured, popular, action []domain.Movie, containerWidth int) Home {
	h := Home{
		Carousels: []*Carousel{
			NewCarousel("Featured", featured, CardLarge, true, containerWidth),
			NewCarousel("Popular on NINAMovie", popular, CardMedium, false, containerWidth),
			NewCarousel("Action Movies", action, CardMedium, false, containerWidth),
		},
	}
	if len(featured) > 0 {
		hero := NewCard(featured[0], CardLarge, true)
		h.Hero = &hero
	}
	return h
}
