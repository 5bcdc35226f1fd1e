// Package presentation holds the view models and display helpers used by the
// home page and movie listings.
package presentation

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

const (
	DefaultPlaceholderWidth  = 300
	DefaultPlaceholderHeight = 450

	recentWindow = 30 * 24 * time.Hour
)

// FormatDuration renders minutes as "45m" or "2h 5m".
func FormatDuration(minutes int) string {
	hours, rest := minutes/60, minutes%60
	if hours == 0 {
		return fmt.Sprintf("%dm", rest)
	}
	return fmt.Sprintf("%dh %dm", hours, rest)
}

// RatingStars maps a 0-10 rating onto 0-5 stars.
func RatingStars(rating float64) int {
	return int(math.Round(rating / 2))
}

func FormatYear(year int) string {
	return strconv.Itoa(year)
}

// QualityColor is the badge color for a quality label.
func QualityColor(quality string) string {
	switch quality {
	case "4K":
		return "#ff6b6b"
	case "1080p":
		return "#4ecdc4"
	case "720p":
		return "#45b7d1"
	default:
		return "#95a5a6"
	}
}

// TruncateText cuts text to maxLength runes and appends "...".
func TruncateText(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	return string(runes[:max(0, maxLength)]) + "..."
}

// PlaceholderImage returns a placeholder poster URL. Non-positive sizes use the defaults.
func PlaceholderImage(width, height int) string {
	if width <= 0 {
		width = DefaultPlaceholderWidth
	}
	if height <= 0 {
		height = DefaultPlaceholderHeight
	}
	return fmt.Sprintf("https://via.placeholder.com/%dx%d/2c3e50/ecf0f1?text=No+Image", width, height)
}

// IsRecentlyAdded reports whether createdAt falls within the 30 days before now.
func IsRecentlyAdded(createdAt, now time.Time) bool {
	return createdAt.After(now.Add(-recentWindow))
}
