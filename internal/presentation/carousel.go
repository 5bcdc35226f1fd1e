package presentation

import (
	"fmt"

	"nina-movie/internal/domain"
)

const DefaultContainerWidth = 1200

// Carousel is a horizontally scrolling row of cards.
type Carousel struct {
	Title        string   `json:"title"`
	Cards        []Card   `json:"cards"`
	CardSize     CardSize `json:"cardSize"`
	CurrentSlide int      `json:"currentSlide"`
	MaxSlides    int      `json:"maxSlides"`
}

// NewCarousel lays movies out for a container of the given width. A
// non-positive width uses DefaultContainerWidth.
func NewCarousel(title string, movies []domain.Movie, size CardSize, showDescription bool, containerWidth int) *Carousel {
	if size == "" {
		size = CardMedium
	}
	cards := make([]Card, len(movies))
	for i, m := range movies {
		cards[i] = NewCard(m, size, showDescription)
	}
	c := &Carousel{Title: title, Cards: cards, CardSize: size}
	c.Resize(containerWidth)
	return c
}

// Resize recomputes MaxSlides and pulls CurrentSlide back into range.
func (c *Carousel) Resize(containerWidth int) {
	if containerWidth <= 0 {
		containerWidth = DefaultContainerWidth
	}
	visible := containerWidth / c.step()
	c.MaxSlides = max(0, len(c.Cards)-visible)
	c.CurrentSlide = min(c.CurrentSlide, c.MaxSlides)
}

func (c *Carousel) step() int {
	return c.CardSize.Width() + cardGap
}

func (c *Carousel) Next() {
	if c.CurrentSlide < c.MaxSlides {
		c.CurrentSlide++
	}
}

func (c *Carousel) Previous() {
	if c.CurrentSlide > 0 {
		c.CurrentSlide--
	}
}

func (c *Carousel) PreviousDisabled() bool { return c.CurrentSlide == 0 }
func (c *Carousel) NextDisabled() bool     { return c.CurrentSlide >= c.MaxSlides }

// Offset is the horizontal translation of the row in pixels.
func (c *Carousel) Offset() int {
	return c.CurrentSlide * c.step()
}

// Transform is Offset as a CSS transform.
func (c *Carousel) Transform() string {
	return fmt.Sprintf("translateX(-%dpx)", c.Offset())
}
