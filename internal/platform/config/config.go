package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backend selectors.
const (
	BackendMemory    = "memory"
	BackendFirestore = "firestore"
	BackendPgsql     = "pgsql"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	// StorageBackend selects the document store: memory, firestore or pgsql.
	StorageBackend string

	// Firestore backend settings.
	FirestoreProjectID       string
	FirestoreCredentialsFile string

	// Pgsql backend settings.
	DatabaseURL string

	// RateLimit is a ulule/limiter formatted rate, e.g. "60-M".
	RateLimit string

	// CORSAllowedOrigins is the comma-separated origin allow-list.
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("STORAGE_BACKEND", BackendMemory)
	viper.SetDefault("FIRESTORE_PROJECT_ID", "")
	viper.SetDefault("FIRESTORE_CREDENTIALS_FILE", "")
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("RATE_LIMIT", "60-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{
		Port:                     viper.GetString("PORT"),
		IsProduction:             viper.GetBool("IS_PRODUCTION"),
		StorageBackend:           viper.GetString("STORAGE_BACKEND"),
		FirestoreProjectID:       viper.GetString("FIRESTORE_PROJECT_ID"),
		FirestoreCredentialsFile: viper.GetString("FIRESTORE_CREDENTIALS_FILE"),
		DatabaseURL:              viper.GetString("PGSQL_URL"),
		RateLimit:                viper.GetString("RATE_LIMIT"),
	}

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	switch cfg.StorageBackend {
	case BackendMemory:
		if cfg.IsProduction {
			log.Println("Warning: memory storage backend selected in production; data will not survive a restart.")
		}
	case BackendFirestore:
		if cfg.FirestoreProjectID == "" {
			return nil, fmt.Errorf("FIRESTORE_PROJECT_ID is required for the firestore backend")
		}
	case BackendPgsql:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required for the pgsql backend")
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	return cfg, nil
}
