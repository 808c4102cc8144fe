package config

import (
	"errors"
	"io/fs"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// DefaultAPIURL is used when API_URL is not configured anywhere.
const DefaultAPIURL = "http://localhost:8000"

var (
	Environment    string
	Port           string
	APIURL         string
	SessionSecret  string
	SessionMaxAge  int
	LogLevel       string
	LogFile        string
	CORSOrigins    []string
	RequestTimeout time.Duration

	// singleton lock
	loadConfigOnce sync.Once
)

// LoadConfig loads configuration from .env or config.yaml using Viper.
// Environment variables always win over file values. A missing file is not
// an error, a malformed one is.
func LoadConfig() error {
	var loadError error
	loadConfigOnce.Do(func() {
		setDefaults()
		viper.AutomaticEnv()

		if err := readConfigFile(".env"); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				loadError = err
				return
			}
			if err := readConfigFile("config.yaml"); err != nil && !errors.Is(err, fs.ErrNotExist) {
				loadError = err
				return
			}
		}

		applyConfig()
		log.Printf("configuration loaded, api=%s port=%s env=%s", APIURL, Port, Environment)
	})

	return loadError
}

func readConfigFile(path string) error {
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		log.Println("config file not used:", path, err)
		return err
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("API_URL", DefaultAPIURL)
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("SESSION_MAX_AGE", 86400)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FILE", "logs/app.log")
	viper.SetDefault("REQUEST_TIMEOUT", "0s")
}

// applyConfig copies the viper values into the package variables.
func applyConfig() {
	APIURL = strings.TrimRight(viper.GetString("API_URL"), "/")
	if APIURL == "" {
		APIURL = DefaultAPIURL
	}
	Port = viper.GetString("PORT")
	Environment = viper.GetString("ENVIRONMENT")
	SessionSecret = viper.GetString("SESSION_SECRET")
	SessionMaxAge = viper.GetInt("SESSION_MAX_AGE")
	LogLevel = viper.GetString("LOG_LEVEL")
	LogFile = viper.GetString("LOG_FILE")
	RequestTimeout = viper.GetDuration("REQUEST_TIMEOUT")
	CORSOrigins = splitList(viper.GetString("CORS_ORIGINS"))
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
