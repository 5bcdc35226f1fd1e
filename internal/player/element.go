package player

import "nina-movie/internal/domain"

type EventType string

const (
	EventLoadedMetadata   EventType = "loadedmetadata"
	EventTimeUpdate       EventType = "timeupdate"
	EventEnded            EventType = "ended"
	EventError            EventType = "error"
	EventWaiting          EventType = "waiting"
	EventCanPlay          EventType = "canplay"
	EventFullscreenChange EventType = "fullscreenchange"
)

// Event is a notification raised by the media element.
type Event struct {
	Type EventType
	Err  error
}

// Element is the native media playback handle the player drives.
type Element interface {
	Play() error
	Pause()
	Paused() bool
	CurrentTime() float64
	SetCurrentTime(t float64)
	Duration() float64
	Volume() float64
	SetVolume(v float64)
	SetSource(url string)
	Fullscreen() bool
	RequestFullscreen() error
	ExitFullscreen() error
	// SetSubtitlesVisible shows or hides every subtitle track.
	SetSubtitlesVisible(visible bool)
	ClearSubtitleTracks()
	AddSubtitleTrack(sub domain.Subtitle, visible bool)
	// Listen registers fn for element events until stop is called.
	Listen(fn func(Event)) (stop func())
}
