package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	API      API
	Store    Store
	Log      Log
	Server   Server
	Database Database
	Auth     Auth
	// GeminiApiKey enables model grading of open paragraph answers on the dev server.
	GeminiApiKey string
}

// API is how the terminal client reaches the backend.
type API struct {
	BaseURL    string
	AuthScheme string
	Timeout    time.Duration
}

// Store is the device storage used by the terminal client.
type Store struct {
	Driver    string // sqlite, redis or memory
	Path      string
	RedisAddr string
	RedisDB   int
}

type Log struct {
	Level  string
	Pretty bool
}

type Server struct {
	Port string
}

type Database struct {
	Driver   string // sqlite or postgres
	Path     string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type Auth struct {
	JWTSecret string
	TokenTTL  time.Duration
}

func init() {
	viper.SetDefault("API_BASE_URL", "http://localhost:8080")
	viper.SetDefault("API_AUTH_SCHEME", "Token")
	viper.SetDefault("API_TIMEOUT", "0s")
	viper.SetDefault("STORE_DRIVER", "sqlite")
	viper.SetDefault("STORE_PATH", defaultStorePath())
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_PRETTY", true)
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_PATH", "edugress-dev.db")
	viper.SetDefault("DATABASE_PORT", "5432")
	viper.SetDefault("JWT_SECRET", "dev-secret")
	viper.SetDefault("TOKEN_TTL", "720h")
}

func defaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "edugress.db"
	}
	return filepath.Join(dir, "edugress", "store.db")
}

// NewConfig reads .env from the working directory (or the file set under
// "config" by a flag binding) and the environment.
func NewConfig() (*Config, error) {
	if file := viper.GetString("config"); file != "" {
		viper.SetConfigFile(file)
	} else {
		viper.SetConfigName(".env")
		viper.SetConfigType("env")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && viper.GetString("config") != "" {
			return nil, err
		}
		log.Debug().Err(err).Msg("No config file, using environment")
	}

	var config Config

	config.API.BaseURL = viper.GetString("API_BASE_URL")
	config.API.AuthScheme = viper.GetString("API_AUTH_SCHEME")
	config.API.Timeout = viper.GetDuration("API_TIMEOUT")

	config.Store.Driver = viper.GetString("STORE_DRIVER")
	config.Store.Path = viper.GetString("STORE_PATH")
	config.Store.RedisAddr = viper.GetString("REDIS_ADDR")
	config.Store.RedisDB = viper.GetInt("REDIS_DB")

	config.Log.Level = viper.GetString("LOG_LEVEL")
	config.Log.Pretty = viper.GetBool("LOG_PRETTY")

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Driver = viper.GetString("DATABASE_DRIVER")
	config.Database.Path = viper.GetString("DATABASE_PATH")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Auth.JWTSecret = viper.GetString("JWT_SECRET")
	config.Auth.TokenTTL = viper.GetDuration("TOKEN_TTL")

	config.GeminiApiKey = viper.GetString("GEMINI_API_KEY")

	log.Debug().
		Str("api_base_url", config.API.BaseURL).
		Str("store_driver", config.Store.Driver).
		Str("database_driver", config.Database.Driver).
		Msg("Config loaded")
	return &config, nil
}
