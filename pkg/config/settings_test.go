package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := LoadSettings(NewMapConfig(nil))
	require.NoError(t, err)

	assert.Equal(t, DefaultBackendURL, s.BackendURL)
	assert.Equal(t, DefaultPort, s.Port)
	assert.Equal(t, DefaultBackendTimeout, s.BackendTimeout)
	assert.Equal(t, DefaultBackendRetryCount, s.BackendRetryCount)
	assert.Equal(t, DefaultGroupCountConcurrency, s.GroupCountConcurrency)
	assert.Equal(t, 2026, s.WeddingDate.Year())
}

func TestLoadSettingsOverrides(t *testing.T) {
	tests := []struct {
		name       string
		entries    map[string]string
		backendURL string
	}{
		{name: "Primary key", entries: map[string]string{BackendURLKey: "http://api:5000/api/"}, backendURL: "http://api:5000/api"},
		{name: "Legacy key", entries: map[string]string{LegacyBackendURLKey: "http://legacy:5000/api"}, backendURL: "http://legacy:5000/api"},
		{
			name:       "Primary wins over legacy",
			entries:    map[string]string{BackendURLKey: "http://a/api", LegacyBackendURLKey: "http://b/api"},
			backendURL: "http://a/api",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, err := LoadSettings(NewMapConfig(test.entries))
			require.NoError(t, err)
			assert.Equal(t, test.backendURL, s.BackendURL)
		})
	}
}

func TestLoadSettingsClampsAndParses(t *testing.T) {
	s, err := LoadSettings(NewMapConfig(map[string]string{
		BackendRetryCountKey:     "-3",
		GroupCountConcurrencyKey: "0",
		BackendTimeoutKey:        "5s",
	}))
	require.NoError(t, err)
	assert.Equal(t, 0, s.BackendRetryCount)
	assert.Equal(t, 1, s.GroupCountConcurrency)
	assert.Equal(t, 5*time.Second, s.BackendTimeout)
}

func TestLoadSettingsBadWeddingDate(t *testing.T) {
	_, err := LoadSettings(NewMapConfig(map[string]string{WeddingDateKey: "next june"}))
	assert.Error(t, err)
}
