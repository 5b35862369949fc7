package config

import (
	"fmt"
	"strings"
	"time"
)

const (
	BackendURLKey            = "BACKEND_URL"
	LegacyBackendURLKey      = "NEXT_PUBLIC_BACKEND_URL"
	PortKey                  = "WEDSITE_PORT"
	BackendTimeoutKey        = "BACKEND_TIMEOUT"
	BackendRetryCountKey     = "BACKEND_RETRY_COUNT"
	GroupCountConcurrencyKey = "GROUP_COUNT_CONCURRENCY"
	WeddingDateKey           = "WEDDING_DATE"
	LogLevelKey              = "LOG_LEVEL"
	DotenvPathKey            = "WEDSITE_DOTENV_PATH"
	StaticDirKey             = "WEDSITE_STATIC_DIR"
)

const (
	DefaultBackendURL            = "http://localhost:3001/api"
	DefaultPort                  = "3000"
	DefaultBackendTimeout        = 30 * time.Second
	DefaultBackendRetryCount     = 2
	DefaultGroupCountConcurrency = 4
	DefaultWeddingDate           = "2026-06-20T16:00:00+02:00"
	DefaultLogLevel              = "info"
	DefaultStaticDir             = "public"
)

// Settings is the typed view of the keys wedsited reads at startup.
type Settings struct {
	BackendURL            string
	Port                  string
	BackendTimeout        time.Duration
	BackendRetryCount     int
	GroupCountConcurrency int
	WeddingDate           time.Time
	LogLevel              string
	StaticDir             string
}

func LoadSettings(c Configer) (Settings, error) {
	s := Settings{
		BackendURL:            backendURL(c),
		Port:                  c.GetKeyWithDefault(PortKey, DefaultPort),
		BackendTimeout:        c.GetDurationKeyWithDefault(BackendTimeoutKey, DefaultBackendTimeout),
		BackendRetryCount:     c.GetIntKeyWithDefault(BackendRetryCountKey, DefaultBackendRetryCount),
		GroupCountConcurrency: c.GetIntKeyWithDefault(GroupCountConcurrencyKey, DefaultGroupCountConcurrency),
		LogLevel:              c.GetKeyWithDefault(LogLevelKey, DefaultLogLevel),
		StaticDir:             c.GetKeyWithDefault(StaticDirKey, DefaultStaticDir),
	}

	weddingDate := c.GetKeyWithDefault(WeddingDateKey, DefaultWeddingDate)
	t, err := time.Parse(time.RFC3339, weddingDate)
	if err != nil {
		return s, fmt.Errorf("invalid %s %q: %w", WeddingDateKey, weddingDate, err)
	}
	s.WeddingDate = t

	if s.BackendRetryCount < 0 {
		s.BackendRetryCount = 0
	}

	if s.GroupCountConcurrency < 1 {
		s.GroupCountConcurrency = 1
	}

	return s, nil
}

func backendURL(c Configer) string {
	u := c.GetKey(BackendURLKey)
	if u == "" {
		u = c.GetKeyWithDefault(LegacyBackendURLKey, DefaultBackendURL)
	}

	return strings.TrimRight(u, "/")
}
