package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

func loadFromEnv(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	setDefaults()
	viper.AutomaticEnv()
	applyConfig()
}

func TestApplyConfigDefaults(t *testing.T) {
	loadFromEnv(t)

	if APIURL != DefaultAPIURL {
		t.Fatalf("expected default api url, got %s", APIURL)
	}
	if Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", Port)
	}
	if SessionMaxAge != 86400 {
		t.Fatalf("expected default session max age, got %d", SessionMaxAge)
	}
	if RequestTimeout != 0 {
		t.Fatalf("expected no request timeout by default, got %s", RequestTimeout)
	}
	if len(CORSOrigins) != 0 {
		t.Fatalf("expected no cors origins, got %v", CORSOrigins)
	}
}

func TestApplyConfigOverrides(t *testing.T) {
	t.Setenv("API_URL", "https://complaints.example.edu/")
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("SESSION_MAX_AGE", "3600")
	t.Setenv("REQUEST_TIMEOUT", "15s")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, http://127.0.0.1:3000,,")
	loadFromEnv(t)

	if APIURL != "https://complaints.example.edu" {
		t.Fatalf("expected trailing slash trimmed, got %s", APIURL)
	}
	if Port != "9090" {
		t.Fatalf("expected PORT override, got %s", Port)
	}
	if SessionSecret != "s3cret" {
		t.Fatalf("expected SESSION_SECRET override, got %s", SessionSecret)
	}
	if SessionMaxAge != 3600 {
		t.Fatalf("expected SESSION_MAX_AGE 3600, got %d", SessionMaxAge)
	}
	if RequestTimeout != 15*time.Second {
		t.Fatalf("expected REQUEST_TIMEOUT 15s, got %s", RequestTimeout)
	}
	if len(CORSOrigins) != 2 || CORSOrigins[1] != "http://127.0.0.1:3000" {
		t.Fatalf("unexpected cors origins: %v", CORSOrigins)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]logrus.Level{
		"debug":   logrus.DebugLevel,
		"warn":    logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
		"info":    logrus.InfoLevel,
		"verbose": logrus.InfoLevel,
	}
	for input, expect := range cases {
		if got := parseLevel(input); got != expect {
			t.Fatalf("parseLevel(%q) = %s, want %s", input, got, expect)
		}
	}
}
