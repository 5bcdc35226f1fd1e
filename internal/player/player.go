// Package player mirrors a media element into an observable state record.
package player

import (
	"sync"

	"github.com/sirupsen/logrus"

	"nina-movie/internal/domain"
	"nina-movie/internal/observable"
)

// Messages recorded in PlayerState.Error.
const (
	PlayFailedMessage = "Failed to play video"
	MediaErrorMessage = "Video playback error"
)

// Player drives one Element. Every operation is a no-op until Attach.
// Failures are recorded in the state's Error field and never returned.
type Player struct {
	mu        sync.Mutex
	el        Element
	stop      func()
	sources   []domain.VideoSource
	subtitles []domain.Subtitle
	state     *observable.Subject[domain.PlayerState]
	logger    *logrus.Logger
}

func New(logger *logrus.Logger) *Player {
	if logger == nil {
		logger = logrus.New()
	}
	return &Player{
		state:  observable.NewSubject(domain.InitialPlayerState()),
		logger: logger,
	}
}

// Attach binds the player to el and starts mirroring its events.
func (p *Player) Attach(el Element) {
	p.mu.Lock()
	if p.stop != nil {
		p.stop()
	}
	p.el = el
	p.mu.Unlock()

	stop := el.Listen(p.handleEvent)

	p.mu.Lock()
	p.stop = stop
	p.mu.Unlock()
}

func (p *Player) element() Element {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.el
}

// SetSources loads the first source and records its quality.
func (p *Player) SetSources(sources []domain.VideoSource) {
	p.mu.Lock()
	p.sources = append([]domain.VideoSource(nil), sources...)
	el := p.el
	p.mu.Unlock()

	if el == nil || len(sources) == 0 {
		return
	}
	el.SetSource(sources[0].URL)
	p.update(func(s *domain.PlayerState) { s.Quality = sources[0].Quality })
}

// SetSubtitles replaces the element's subtitle tracks.
func (p *Player) SetSubtitles(subtitles []domain.Subtitle) {
	p.mu.Lock()
	p.subtitles = append([]domain.Subtitle(nil), subtitles...)
	el := p.el
	p.mu.Unlock()

	if el == nil {
		return
	}
	el.ClearSubtitleTracks()
	for _, sub := range subtitles {
		el.AddSubtitleTrack(sub, sub.IsDefault)
	}
}

func (p *Player) Play() {
	el := p.element()
	if el == nil {
		return
	}
	p.update(func(s *domain.PlayerState) { s.IsLoading = true })
	if err := el.Play(); err != nil {
		p.logger.WithError(err).Error("failed to play video")
		p.update(func(s *domain.PlayerState) {
			s.IsLoading = false
			s.Error = PlayFailedMessage
		})
		return
	}
	p.update(func(s *domain.PlayerState) {
		s.IsPlaying = true
		s.IsPaused = false
		s.IsLoading = false
	})
}

func (p *Player) Pause() {
	el := p.element()
	if el == nil {
		return
	}
	el.Pause()
	p.update(func(s *domain.PlayerState) {
		s.IsPlaying = false
		s.IsPaused = true
	})
}

func (p *Player) Stop() {
	el := p.element()
	if el == nil {
		return
	}
	el.Pause()
	el.SetCurrentTime(0)
	p.update(func(s *domain.PlayerState) {
		s.IsPlaying = false
		s.IsPaused = false
		s.CurrentTime = 0
	})
}

func (p *Player) Seek(t float64) {
	el := p.element()
	if el == nil {
		return
	}
	el.SetCurrentTime(t)
	p.update(func(s *domain.PlayerState) { s.CurrentTime = t })
}

// SetVolume clamps v to [0, 1].
func (p *Player) SetVolume(v float64) {
	el := p.element()
	if el == nil {
		return
	}
	el.SetVolume(min(1, max(0, v)))
	vol := el.Volume()
	p.update(func(s *domain.PlayerState) { s.Volume = vol })
}

// SetQuality switches to the source with quality q, keeping the playback
// position and resuming if the element was playing. Unknown qualities are ignored.
func (p *Player) SetQuality(q string) {
	p.mu.Lock()
	el := p.el
	var source *domain.VideoSource
	for i := range p.sources {
		if p.sources[i].Quality == q {
			source = &p.sources[i]
			break
		}
	}
	p.mu.Unlock()

	if el == nil || source == nil {
		return
	}

	position := el.CurrentTime()
	wasPlaying := !el.Paused()

	el.SetSource(source.URL)
	el.SetCurrentTime(position)

	var playErr error
	if wasPlaying {
		playErr = el.Play()
	}

	p.update(func(s *domain.PlayerState) {
		s.Quality = q
		s.CurrentTime = position
		if playErr != nil {
			s.IsPlaying = false
			s.Error = PlayFailedMessage
		}
	})
	if playErr != nil {
		p.logger.WithError(playErr).Error("failed to resume after quality switch")
	}
}

func (p *Player) ToggleFullscreen() {
	el := p.element()
	if el == nil {
		return
	}
	if !el.Fullscreen() {
		if err := el.RequestFullscreen(); err != nil {
			p.logger.WithError(err).Warn("request fullscreen")
			p.update(func(s *domain.PlayerState) { s.Error = err.Error() })
			return
		}
		p.update(func(s *domain.PlayerState) { s.IsFullscreen = true })
		return
	}
	if err := el.ExitFullscreen(); err != nil {
		p.logger.WithError(err).Warn("exit fullscreen")
		p.update(func(s *domain.PlayerState) { s.Error = err.Error() })
		return
	}
	p.update(func(s *domain.PlayerState) { s.IsFullscreen = false })
}

// ToggleSubtitles flips subtitle visibility; the state flips even without an element.
func (p *Player) ToggleSubtitles() {
	enabled := !p.state.Value().SubtitlesEnabled
	if el := p.element(); el != nil {
		el.SetSubtitlesVisible(enabled)
	}
	p.update(func(s *domain.PlayerState) { s.SubtitlesEnabled = enabled })
}

func (p *Player) State() domain.PlayerState {
	return p.state.Value()
}

// Subscribe replays the current state and then every change. Callbacks may
// call back into the player; the resulting state is delivered afterwards.
func (p *Player) Subscribe(fn func(domain.PlayerState)) (cancel func()) {
	return p.state.Subscribe(fn)
}

func (p *Player) AvailableQualities() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.sources))
	for i, s := range p.sources {
		out[i] = s.Quality
	}
	return out
}

func (p *Player) AvailableSubtitles() []domain.Subtitle {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.Subtitle{}, p.subtitles...)
}

// Destroy releases the element and resets the state.
func (p *Player) Destroy() {
	p.mu.Lock()
	el, stop := p.el, p.stop
	p.el, p.stop = nil, nil
	p.mu.Unlock()

	if stop != nil {
		stop()
	}
	if el != nil {
		el.Pause()
		el.SetSource("")
	}
	p.state.Next(domain.InitialPlayerState())
}

func (p *Player) handleEvent(ev Event) {
	el := p.element()
	if el == nil {
		return
	}
	switch ev.Type {
	case EventLoadedMetadata:
		d := el.Duration()
		p.update(func(s *domain.PlayerState) { s.Duration = d })
	case EventTimeUpdate:
		t := el.CurrentTime()
		p.update(func(s *domain.PlayerState) { s.CurrentTime = t })
	case EventEnded:
		p.update(func(s *domain.PlayerState) {
			s.IsPlaying = false
			s.IsPaused = false
		})
	case EventError:
		p.logger.WithError(ev.Err).Error("video error")
		p.update(func(s *domain.PlayerState) {
			s.Error = MediaErrorMessage
			s.IsLoading = false
		})
	case EventWaiting:
		p.update(func(s *domain.PlayerState) { s.IsLoading = true })
	case EventCanPlay:
		p.update(func(s *domain.PlayerState) { s.IsLoading = false })
	case EventFullscreenChange:
		fs := el.Fullscreen()
		p.update(func(s *domain.PlayerState) { s.IsFullscreen = fs })
	}
}

func (p *Player) update(fn func(*domain.PlayerState)) {
	p.state.Update(func(s domain.PlayerState) domain.PlayerState {
		fn(&s)
		return s
	})
}
