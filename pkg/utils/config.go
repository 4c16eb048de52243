package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Session  SessionConfig
	TMDB     TMDBConfig
}

type AppConfig struct {
	Name     string
	Port     string
	Debug    bool
	LogPath  string
	PageSize int
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type SessionConfig struct {
	SecretKey  string
	CookieName string
	MaxAgeDays int
}

type TMDBConfig struct {
	APIKey         string
	BaseURL        string
	ImageBaseURL   string
	Language       string
	TimeoutSeconds int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "cinetheque")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("PAGE_SIZE", 24)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("SESSION_COOKIE", "cinetheque_session")
	viper.SetDefault("SESSION_MAX_AGE_DAYS", 30)
	viper.SetDefault("TMDB_BASE_URL", "https://api.themoviedb.org/3")
	viper.SetDefault("TMDB_IMAGE_BASE_URL", "https://image.tmdb.org/t/p/w500")
	viper.SetDefault("TMDB_LANGUAGE", "fr-FR")
	viper.SetDefault("TMDB_TIMEOUT_SECONDS", 10)

	if err := viper.ReadInConfig(); err != nil {
		// .env is optional when everything comes from the environment
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:     viper.GetString("APP_NAME"),
			Port:     viper.GetString("PORT"),
			Debug:    viper.GetBool("DEBUG"),
			LogPath:  viper.GetString("LOG_PATH"),
			PageSize: viper.GetInt("PAGE_SIZE"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Session: SessionConfig{
			SecretKey:  viper.GetString("SECRET_KEY"),
			CookieName: viper.GetString("SESSION_COOKIE"),
			MaxAgeDays: viper.GetInt("SESSION_MAX_AGE_DAYS"),
		},
		TMDB: TMDBConfig{
			APIKey:         viper.GetString("TMDB_API_KEY"),
			BaseURL:        viper.GetString("TMDB_BASE_URL"),
			ImageBaseURL:   viper.GetString("TMDB_IMAGE_BASE_URL"),
			Language:       viper.GetString("TMDB_LANGUAGE"),
			TimeoutSeconds: viper.GetInt("TMDB_TIMEOUT_SECONDS"),
		},
	}

	return config, nil
}
