package domain

// PlayerState mirrors the media element for display.
type PlayerState struct {
	IsPlaying        bool    `json:"isPlaying"`
	IsPaused         bool    `json:"isPaused"`
	CurrentTime      float64 `json:"currentTime"`
	Duration         float64 `json:"duration"`
	Volume           float64 `json:"volume"`
	Quality          string  `json:"quality"`
	IsFullscreen     bool    `json:"isFullscreen"`
	SubtitlesEnabled bool    `json:"subtitlesEnabled"`
	IsLoading        bool    `json:"isLoading"`
	Error            string  `json:"error,omitempty"`
}

// InitialPlayerState is the state of a player with nothing loaded.
func InitialPlayerState() PlayerState {
	return PlayerState{
		Volume:  1,
		Quality: string(VideoQualityHD),
	}
}

// VideoSource is one playable rendition of a movie.
type VideoSource struct {
	URL     string `json:"url"`
	Quality string `json:"quality"`
	Type    string `json:"type"`
}

// Subtitle is a text track offered alongside a movie.
type Subtitle struct {
	Language  string `json:"language"`
	Label     string `json:"label"`
	URL       string `json:"url"`
	IsDefault bool   `json:"isDefault,omitempty"`
}
