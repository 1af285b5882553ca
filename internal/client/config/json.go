package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/bucketdrive/internal/flagx"
	"github.com/dmitrijs2005/bucketdrive/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It
// relies on timex.Duration so the TTL can be given as "24h" or as
// integer nanoseconds. After parsing, values are copied into the
// runtime Config.
type JsonConfig struct {
	Bucket          string         `json:"bucket"`
	BucketURL       string         `json:"bucket_url"`
	Region          string         `json:"region"`
	BaseEndpoint    string         `json:"base_endpoint"`
	AccessKeyID     string         `json:"access_key_id"`
	SecretAccessKey string         `json:"secret_access_key"`
	IndexDBPath     string         `json:"index_db_path"`
	SignedURLTTL    timex.Duration `json:"signed_url_ttl"`
	DisableTagging  bool           `json:"disable_tagging"`
}

// parseJson overlays cfg with values loaded from the JSON file named
// by the -c/-config flags. Missing flag means no JSON is loaded.
// Read or unmarshal errors panic; intended usage is
// defaults -> parseJson -> parseFlags, later stages overriding.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.Bucket != "" {
		cfg.Bucket = jc.Bucket
	}
	if jc.BucketURL != "" {
		cfg.BucketURL = jc.BucketURL
	}
	if jc.Region != "" {
		cfg.Region = jc.Region
	}
	if jc.BaseEndpoint != "" {
		cfg.BaseEndpoint = jc.BaseEndpoint
	}
	if jc.AccessKeyID != "" {
		cfg.AccessKeyID = jc.AccessKeyID
	}
	if jc.SecretAccessKey != "" {
		cfg.SecretAccessKey = jc.SecretAccessKey
	}
	if jc.IndexDBPath != "" {
		cfg.IndexDBPath = jc.IndexDBPath
	}
	if jc.SignedURLTTL.Duration != 0 {
		cfg.SignedURLTTL = time.Duration(jc.SignedURLTTL.Duration)
	}
	if jc.DisableTagging {
		cfg.DisableTagging = true
	}
}
