// Package config handles configuration for the bucketdrive CLI,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the bucketdrive CLI.
//
// Fields:
//   - Bucket / Region / BaseEndpoint: object storage settings.
//     BaseEndpoint is optional and points at an S3-compatible
//     deployment such as MinIO.
//   - BucketURL: public base URL recorded on file/folder records.
//   - AccessKeyID / SecretAccessKey: static credentials; when empty
//     the SDK's default credential chain is used.
//   - IndexDBPath: location of the local folder index database.
//   - SignedURLTTL: validity window for minted file URLs.
//   - DisableTagging: set for store variants without a tagging API.
type Config struct {
	Bucket          string
	BucketURL       string
	Region          string
	BaseEndpoint    string
	AccessKeyID     string
	SecretAccessKey string
	IndexDBPath     string
	SignedURLTTL    time.Duration
	DisableTagging  bool
}

// LoadDefaults populates Config with development defaults aimed at a
// local MinIO.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.Bucket = "drive"
	c.BucketURL = "http://127.0.0.1:9000/drive"
	c.Region = "us-east-1"
	c.BaseEndpoint = "http://127.0.0.1:9000/"
	c.AccessKeyID = "admin"
	c.SecretAccessKey = "secretpassword"
	c.IndexDBPath = "folders.db"
	c.SignedURLTTL = 24 * time.Hour
}

// LoadConfig builds a Config by applying defaults, then overlaying
// values from an optional JSON file and finally from command-line
// flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
