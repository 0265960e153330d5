package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("CATALOG_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "https://api.themoviedb.org/3", cfg.Catalog.BaseURL)
	assert.Equal(t, "test-key", cfg.Catalog.APIKey)
	assert.Equal(t, 0.9, cfg.Match.SimilarityThreshold)
	assert.Equal(t, 1, cfg.Match.MinVoteCount)
	assert.Equal(t, 3, cfg.Match.CandidateWindow)
	assert.Equal(t, 10*time.Second, cfg.Catalog.Timeout)
	assert.Empty(t, cfg.Redis.URL)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("CATALOG_API_KEY", "k")
	t.Setenv("PORT", "9090")
	t.Setenv("SCORING_URL", "http://scorer:8000/give_recommendations/")
	t.Setenv("SCORING_TIMEOUT", "5s")
	t.Setenv("MATCH_SIMILARITY_THRESHOLD", "0.8")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "http://scorer:8000/give_recommendations/", cfg.Scoring.URL)
	assert.Equal(t, 5*time.Second, cfg.Scoring.Timeout)
	assert.Equal(t, 0.8, cfg.Match.SimilarityThreshold)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "catalog:\n  api_key: from-file\n  language: de-DE\npipeline:\n  concurrency: 2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.Catalog.APIKey)
	assert.Equal(t, "de-DE", cfg.Catalog.Language)
	assert.Equal(t, 2, cfg.Pipeline.Concurrency)
}

func TestValidate(t *testing.T) {
	cfg := defaultConfig()
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog.api_key")

	cfg.Catalog.APIKey = "k"
	assert.NoError(t, cfg.Validate())

	cfg.Match.SimilarityThreshold = 1.5
	assert.Error(t, cfg.Validate())

	cfg.Match.SimilarityThreshold = 0.9
	cfg.Pipeline.Concurrency = 0
	assert.Error(t, cfg.Validate())
}

func TestEnvTransformFunc(t *testing.T) {
	assert.Equal(t, "catalog.api_key", envTransformFunc("CATALOG_API_KEY"))
	assert.Equal(t, "database.url", envTransformFunc("DATABASE_URL"))
	assert.Equal(t, "", envTransformFunc("HOME"))
}
