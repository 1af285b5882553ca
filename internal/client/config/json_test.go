package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"bucket":          "photos",
		"bucket_url":      "https://cdn.example.com/photos",
		"signed_url_ttl":  "2h",
		"disable_tagging": true,
	})

	t.Run("loads from flags", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "photos", cfg.Bucket)
		assert.Equal(t, "https://cdn.example.com/photos", cfg.BucketURL)
		assert.Equal(t, 2*time.Hour, cfg.SignedURLTTL)
		assert.True(t, cfg.DisableTagging)
	})

	t.Run("no CONFIG and no flags → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{
			Bucket:       "defaults",
			SignedURLTTL: 42 * time.Second,
		}
		parseJson(cfg)

		assert.Equal(t, "defaults", cfg.Bucket)
		assert.Equal(t, 42*time.Second, cfg.SignedURLTTL)
	})

	t.Run("empty values keep existing config", func(t *testing.T) {
		p := writeTempJSON(t, dir, "partial.json", map[string]any{
			"region": "eu-central-1",
		})
		os.Args = []string{"testbin", "-config", p}

		cfg := &Config{Bucket: "keepme", Region: "us-east-1"}
		parseJson(cfg)

		assert.Equal(t, "keepme", cfg.Bucket)
		assert.Equal(t, "eu-central-1", cfg.Region)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}
