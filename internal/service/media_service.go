package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"nina-movie/internal/domain"
	"nina-movie/internal/storage"
)

// ErrStorageNotConfigured is returned by admin operations when no bucket is set.
var ErrStorageNotConfigured = errors.New("storage service not configured")

// MediaConfig locates movie media in object storage.
type MediaConfig struct {
	Bucket    string
	KeyPrefix string
	URLExpiry time.Duration
	Logger    *logrus.Logger
}

// MediaService resolves the player sources of a movie. Objects live under
// <prefix>/<movieID>/ as <quality>.<ext> and <language>.vtt.
type MediaService struct {
	cfg   MediaConfig
	store storage.Service
}

func NewMediaService(cfg MediaConfig, store storage.Service) *MediaService {
	if cfg.URLExpiry <= 0 {
		cfg.URLExpiry = time.Hour
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	cfg.KeyPrefix = strings.Trim(cfg.KeyPrefix, "/")
	return &MediaService{cfg: cfg, store: store}
}

func (s *MediaService) configured() bool {
	return s.store != nil && s.cfg.Bucket != ""
}

// MoviePrefix is the storage prefix holding a movie's media.
func (s *MediaService) MoviePrefix(movieID string) string {
	if s.cfg.KeyPrefix == "" {
		return movieID + "/"
	}
	return s.cfg.KeyPrefix + "/" + movieID + "/"
}

// Sources lists playable sources and subtitles for movie. When storage is
// unavailable or empty the movie's own videoUrl is the only 720p source.
func (s *MediaService) Sources(ctx context.Context, movie domain.Movie) ([]domain.VideoSource, []domain.Subtitle) {
	var sources []domain.VideoSource
	var subtitles []domain.Subtitle

	if s.configured() {
		var err error
		sources, subtitles, err = s.resolve(ctx, movie.ID)
		if err != nil {
			s.cfg.Logger.WithError(err).WithField("movie_id", movie.ID).Warn("resolve media sources")
		}
	}

	if len(sources) == 0 && movie.VideoURL != "" {
		sources = []domain.VideoSource{{
			URL:     movie.VideoURL,
			Quality: string(domain.VideoQualityHD),
			Type:    sourceType(movie.VideoURL),
		}}
	}
	if sources == nil {
		sources = []domain.VideoSource{}
	}
	if subtitles == nil {
		subtitles = []domain.Subtitle{}
	}
	return sources, subtitles
}

func (s *MediaService) resolve(ctx context.Context, movieID string) ([]domain.VideoSource, []domain.Subtitle, error) {
	objects, err := s.store.ListObjects(ctx, s.cfg.Bucket, s.MoviePrefix(movieID))
	if err != nil {
		return nil, nil, err
	}

	var sources []domain.VideoSource
	var subtitles []domain.Subtitle
	for _, obj := range objects {
		base := path.Base(obj.Key)
		ext := strings.ToLower(path.Ext(base))
		stem := strings.TrimSuffix(base, path.Ext(base))
		contentType := storage.ContentType(base)
		if contentType == "" || stem == "" {
			continue
		}

		url, err := s.store.GetObjectURL(ctx, s.cfg.Bucket, obj.Key, s.cfg.URLExpiry)
		if err != nil {
			return nil, nil, err
		}

		if ext == ".vtt" {
			subtitles = append(subtitles, domain.Subtitle{
				Language:  stem,
				Label:     subtitleLabel(stem),
				URL:       url,
				IsDefault: stem == "en",
			})
			continue
		}
		quality, ok := qualityFromName(stem)
		if !ok {
			continue
		}
		sources = append(sources, domain.VideoSource{URL: url, Quality: quality, Type: contentType})
	}

	sort.SliceStable(sources, func(i, j int) bool {
		return qualityRank(sources[i].Quality) < qualityRank(sources[j].Quality)
	})
	sort.SliceStable(subtitles, func(i, j int) bool {
		return subtitles[i].Language < subtitles[j].Language
	})
	return sources, subtitles, nil
}

// Publish uploads a local rendition directory for movieID.
func (s *MediaService) Publish(ctx context.Context, movieID, localDir string, progress func(done, total int64)) (string, error) {
	if !s.configured() {
		return "", ErrStorageNotConfigured
	}
	if strings.TrimSpace(movieID) == "" || strings.Contains(movieID, "/") {
		return "", fmt.Errorf("%w: movie id %q", ErrInvalidInput, movieID)
	}
	location, err := s.store.UploadDirectory(ctx, localDir, storage.UploadOptions{
		Bucket:    s.cfg.Bucket,
		KeyPrefix: s.MoviePrefix(movieID),
		Progress:  progress,
	})
	if err != nil {
		return "", fmt.Errorf("publish movie %s: %w", movieID, err)
	}
	s.cfg.Logger.Infof("published media for movie %s to %s", movieID, location)
	return location, nil
}

// Unpublish removes every stored object of movieID.
func (s *MediaService) Unpublish(ctx context.Context, movieID string) error {
	if !s.configured() {
		return ErrStorageNotConfigured
	}
	if strings.TrimSpace(movieID) == "" || strings.Contains(movieID, "/") {
		return fmt.Errorf("%w: movie id %q", ErrInvalidInput, movieID)
	}
	return s.store.DeletePrefix(ctx, s.cfg.Bucket, s.MoviePrefix(movieID))
}

// Objects lists stored media for the admin area.
func (s *MediaService) Objects(ctx context.Context, movieID string) ([]storage.Object, error) {
	if !s.configured() {
		return nil, ErrStorageNotConfigured
	}
	var prefix string
	switch {
	case movieID != "":
		prefix = s.MoviePrefix(movieID)
	case s.cfg.KeyPrefix != "":
		prefix = s.cfg.KeyPrefix + "/"
	}
	return s.store.ListObjects(ctx, s.cfg.Bucket, prefix)
}

var qualityOrder = []domain.VideoQuality{
	domain.VideoQualityHD,
	domain.VideoQualityFullHD,
	domain.VideoQualityUHD,
}

func qualityFromName(stem string) (string, bool) {
	for _, q := range qualityOrder {
		if strings.EqualFold(stem, string(q)) {
			return string(q), true
		}
	}
	return "", false
}

func qualityRank(q string) int {
	for i, known := range qualityOrder {
		if string(known) == q {
			return i
		}
	}
	return len(qualityOrder)
}

var subtitleLabels = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"pt": "Portuguese",
}

func subtitleLabel(lang string) string {
	if label, ok := subtitleLabels[strings.ToLower(lang)]; ok {
		return label
	}
	return strings.ToUpper(lang)
}

func sourceType(rawURL string) string {
	u := rawURL
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	if ct := storage.ContentType(u); ct != "" {
		return ct
	}
	return "video/mp4"
}
