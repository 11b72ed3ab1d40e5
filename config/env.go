package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

// Config holds the process settings read from the environment.
type Config struct {
	Port           string
	MongoURI       string
	DBName         string
	Store          string
	SecretKey      string
	Environment    string
	RequestTimeout time.Duration
	AdminEmail     string
	AdminPassword  string
}

// LoadEnv loads variables from .env when the file exists.
func LoadEnv(files ...string) error {
	err := godotenv.Load(files...)
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Load reads the configuration, applying defaults for unset values.
func Load() (Config, error) {
	cfg := Config{
		Port:           getEnv("PORT", "8000"),
		MongoURI:       os.Getenv("DB"),
		DBName:         getEnv("DB_NAME", "Veggio"),
		Store:          getEnv("STORE", StoreMongo),
		SecretKey:      os.Getenv("SECRET_KEY"),
		Environment:    getEnv("APP_ENV", "development"),
		RequestTimeout: 15 * time.Second,
		AdminEmail:     os.Getenv("ADMIN_EMAIL"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
	}

	if raw := os.Getenv("REQUEST_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return cfg, errors.New("REQUEST_TIMEOUT must be a duration such as 15s")
		}
		cfg.RequestTimeout = d
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return cfg, errors.New("PORT must be a number")
	}
	if cfg.Store != StoreMongo && cfg.Store != StoreMemory {
		return cfg, errors.New("STORE must be mongo or memory")
	}
	if (cfg.AdminEmail == "") != (cfg.AdminPassword == "") {
		return cfg, errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}
	if cfg.SecretKey == "" {
		return cfg, errors.New("SECRET_KEY is not set in the environment variables")
	}
	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
