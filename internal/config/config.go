package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const defaultWorkers = 4

// AppConfig holds the process configuration read from the environment.
type AppConfig struct {
	// LogDir receives the rotating log file. Empty disables file logging.
	LogDir string
	// Workers bounds how many report statistics run at once.
	Workers int
	// Truncate is the default for --truncate.
	Truncate bool
	// Pretty indents JSON output.
	Pretty bool
}

// Load reads .env files (binary directory first, then the working directory)
// and resolves the configuration from the environment. Variables already set in
// the environment win over .env values.
func Load() (*AppConfig, error) {
	if exePath, err := os.Executable(); err == nil {
		envPath := filepath.Join(filepath.Dir(exePath), ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables")
	}

	return FromEnv(), nil
}

// FromEnv resolves the configuration from environment variables only.
func FromEnv() *AppConfig {
	workers := getEnvInt("TALLY_WORKERS", defaultWorkers)
	if workers < 1 {
		log.Warn().Int("workers", workers).Msg("TALLY_WORKERS must be positive, using default")
		workers = defaultWorkers
	}

	return &AppConfig{
		LogDir:   getEnv("TALLY_LOGS_FOLDER", ""),
		Workers:  workers,
		Truncate: getEnvBool("TALLY_TRUNCATE_SUBSECOND", false),
		Pretty:   getEnvBool("TALLY_PRETTY", true),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
