package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port          string
	DBPath        string
	MaxBody       string // echo BodyLimit, e.g. "5M"
	SeedHospitals string // optional .csv/.xlsx
	SeedCows      string // optional .csv/.xlsx
	ReportBaseURL string
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
		return def
	}
	cfg := AppConfig{
		Port:          get("PORT", "8080"),
		DBPath:        get("DB_PATH", "herdsos.db"),
		MaxBody:       get("MAX_BODY", "5M"),
		SeedHospitals: get("SEED_HOSPITALS", ""),
		SeedCows:      get("SEED_COWS", ""),
		ReportBaseURL: strings.TrimRight(get("REPORT_BASE_URL", "http://localhost:8080"), "/"),
	}
	log.Printf("[cfg] %+v", cfg)
	return cfg
}
