package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/bucketdrive/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-b string   bucket name
//	-e string   base endpoint of the S3-compatible store
//	-r string   region
//	-u string   public bucket URL
//	-d string   path to the local folder index database
//	-t int      signed URL TTL in hours
//
// The function filters os.Args to only include the flags it knows
// about, using flagx.FilterArgs, to avoid interference with other
// components. Credentials are deliberately not accepted as flags.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-b", "-e", "-r", "-u", "-d", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Bucket, "b", cfg.Bucket, "bucket name")
	fs.StringVar(&cfg.BaseEndpoint, "e", cfg.BaseEndpoint, "base endpoint of the store")
	fs.StringVar(&cfg.Region, "r", cfg.Region, "region")
	fs.StringVar(&cfg.BucketURL, "u", cfg.BucketURL, "public bucket url")
	fs.StringVar(&cfg.IndexDBPath, "d", cfg.IndexDBPath, "folder index database path")
	ttlHours := fs.Int("t", int(cfg.SignedURLTTL.Hours()), "signed url ttl (in hours)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.SignedURLTTL = time.Duration(*ttlHours) * time.Hour
}
