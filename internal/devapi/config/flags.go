package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/pharmadmin/internal/flagx"
)

var knownFlags = []string{"-a", "-s", "-t", "-u", "-p", "-m", "-e", "-b", "-v"}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-s string   JWT HMAC secret key
//	-t int      token validity, minutes
//	-u string   admin email
//	-p string   admin password
//	-m string   media directory for disk storage
//	-e string   public base URL of uploaded assets
//	-b string   storage backend: disk or s3
//	-v string   log level
//
// S3 settings are read from the JSON file only.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("devapi", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ListenAddr, "a", cfg.ListenAddr, "address and port to run server")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key")
	validity := fs.Int("t", int(cfg.TokenValidity.Minutes()), "token validity (in minutes)")
	fs.StringVar(&cfg.AdminEmail, "u", cfg.AdminEmail, "admin email")
	fs.StringVar(&cfg.AdminPassword, "p", cfg.AdminPassword, "admin password")
	fs.StringVar(&cfg.MediaDir, "m", cfg.MediaDir, "media directory")
	fs.StringVar(&cfg.PublicBaseURL, "e", cfg.PublicBaseURL, "public base URL of uploads")
	fs.StringVar(&cfg.Storage, "b", cfg.Storage, "storage backend (disk or s3)")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	// -t only applies when given, so a sub-minute JSON value survives.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.TokenValidity = time.Duration(*validity) * time.Minute
		}
	})
	if cfg.Storage != StorageDisk && cfg.Storage != StorageS3 {
		return fmt.Errorf("unknown storage %q", cfg.Storage)
	}
	return nil
}
