package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobmate/careers-service/internal/config"
)

// ── Load ────────────────────────────────────────────────────────────────────

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	_, err := config.Load()
	assert.EqualError(t, err, "DATABASE_URL is required")
}

func TestLoad_RequiresRedisURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/careers")
	t.Setenv("REDIS_URL", "")
	_, err := config.Load()
	assert.EqualError(t, err, "REDIS_URL is required")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/careers")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	for _, k := range []string{"CAREERS_PORT", "CAREERS_GRPC_PORT", "SETTINGS_PATH",
		"SESSION_TTL_HOURS", "CACHE_TTL_MINUTES", "WARM_INTERVAL_MINUTES", "MAX_RESUME_MB", "CORS_ORIGINS"} {
		t.Setenv(k, "")
	}

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "8083", cfg.Port)
	assert.Equal(t, "9093", cfg.GRPCPort)
	assert.Equal(t, "app.json", cfg.SettingsPath)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 10*time.Minute, cfg.WarmInterval)
	assert.Equal(t, int64(10<<20), cfg.MaxResumeSize)
	assert.Empty(t, cfg.CORSOrigins)
}

func TestLoad_CORSOrigins(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/careers")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("CORS_ORIGINS", " https://careers.acme.test, ,http://localhost:4200")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://careers.acme.test", "http://localhost:4200"}, cfg.CORSOrigins)
}

func TestLoad_RejectsNonPositiveInterval(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/careers")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	for _, v := range []string{"0", "-3", "soon"} {
		t.Setenv("CACHE_TTL_MINUTES", v)
		_, err := config.Load()
		assert.Error(t, err, "CACHE_TTL_MINUTES=%q", v)
	}
}

// ── Settings ────────────────────────────────────────────────────────────────

const sampleSettings = `{
  "companyName": "Acme",
  "service": {"corpToken": "abc123", "swimlane": "31", "jobInfoChips": ["employmentType"]},
  "privacyConsent": {
    "consentCheckbox": true,
    "privacyPolicyUrl": "https://acme.test/privacy",
    "usePrivacyPolicyUrl": true,
    "privacyStatementParagraphs": ["We care.", "Really."]
  },
  "eeoc": {"genderRaceEthnicity": true, "veteran": false, "disability": true},
  "acceptedResumeTypes": ["PDF", "DOCX"]
}`

func TestLoadSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleSettings), 0o600))

	s, err := config.LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "Acme", s.CompanyName)
	assert.Equal(t, "en-US", s.DefaultLocale)
	assert.NotEmpty(t, s.Service.Fields)
	assert.True(t, s.EEOC.GenderRaceEthnicity)
	assert.False(t, s.EEOC.Veteran)
	assert.Equal(t, "We care.\r\nReally.", s.PrivacyStatement())
	assert.Equal(t, "Acme - Careers", s.PageTitle())
	assert.Equal(t, "https://public-rest31.bullhornstaffing.com:443/rest-services/abc123", s.SearchBaseURL())
}

func TestParseSettings_Invalid(t *testing.T) {
	cases := map[string]string{
		"not json":         `{`,
		"no company":       `{"companyName": ""}`,
		"policy url unset": `{"companyName": "Acme", "privacyConsent": {"usePrivacyPolicyUrl": true}}`,
	}
	for name, raw := range cases {
		_, err := config.ParseSettings([]byte(raw))
		assert.Error(t, err, name)
	}
}

func TestLoadSettings_MissingFile(t *testing.T) {
	_, err := config.LoadSettings(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
