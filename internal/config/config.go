package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	App struct {
		Name       string
		Version    string
		Production bool
	}
	Server struct {
		Addr string
	}
	API struct {
		BaseURL        string
		TimeoutSeconds int
	}
	Database struct {
		Driver string
		Path   string
	}
	Redis struct {
		URL string
	}
	Storage struct {
		Bucket         string
		KeyPrefix      string
		Region         string
		Endpoint       string
		PresignMinutes int
	}
	AWS struct {
		Profile string
	}
}

// Load reads configuration from environment variables and optional config files.
func Load() (Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return Config{}, err
	}
	return load(".")
}

func load(configPath string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("NINAMOVIE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app.name", "NINAMovie")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.production", false)
	v.SetDefault("server.addr", "127.0.0.1:4200")
	v.SetDefault("api.baseurl", "http://localhost:3000/api")
	v.SetDefault("api.timeoutseconds", 15)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "data/nina-movie.db")
	v.SetDefault("redis.url", "")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.keyprefix", "movies")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.presignminutes", 60)
	v.SetDefault("aws.profile", "")

	v.SetConfigName("config")
	v.AddConfigPath(configPath)
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.API.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.API.BaseURL), "/")
	if cfg.API.BaseURL == "" {
		return Config{}, fmt.Errorf("api base url is required")
	}
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	switch cfg.Database.Driver {
	case "sqlite":
	case "redis":
		if cfg.Redis.URL == "" {
			return Config{}, fmt.Errorf("redis url is required for the redis driver")
		}
	default:
		return Config{}, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if cfg.API.TimeoutSeconds <= 0 {
		cfg.API.TimeoutSeconds = 15
	}
	if cfg.Storage.PresignMinutes <= 0 {
		cfg.Storage.PresignMinutes = 60
	}

	return cfg, nil
}

// loadDotEnv copies an optional .env file into the environment. Variables
// that are already set win.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
