package server

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	defaultEnv          = "development"
	defaultPort         = "8080"
	defaultFetchSeconds = 10
)

// Config keeps the runtime configuration for the dashboard server.
type Config struct {
	Env            string
	Port           string
	BitbankBaseURL string        // empty means the public endpoint
	FetchTimeout   time.Duration // bound on the quote fetch phase of one upload
}

// LoadConfig builds Config from environment variables, reading a local
// .env file first when present.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found, using environment variables")
	}

	seconds, err := strconv.Atoi(getEnv("FETCH_TIMEOUT_SECONDS", strconv.Itoa(defaultFetchSeconds)))
	if err != nil || seconds <= 0 {
		seconds = defaultFetchSeconds
	}

	return &Config{
		Env:            getEnv("APP_ENV", defaultEnv),
		Port:           getEnv("SERVER_PORT", defaultPort),
		BitbankBaseURL: os.Getenv("BITBANK_BASE_URL"),
		FetchTimeout:   time.Duration(seconds) * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}
