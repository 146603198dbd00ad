// Package config handles configuration for the sandbox API server,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"time"

	"github.com/dmitrijs2005/pharmadmin/internal/flagx"
)

// Storage backends for uploaded assets.
const (
	StorageDisk = "disk"
	StorageS3   = "s3"
)

// Config holds runtime settings for the sandbox API.
//
// Fields:
//   - ListenAddr: bind address for the HTTP endpoint.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - TokenValidity: lifetime of an issued token.
//   - AdminEmail / AdminPassword: the one administrator account.
//   - MediaDir: directory for uploads when Storage is "disk".
//   - PublicBaseURL: prefix of the URLs handed back for uploads.
//   - Storage: "disk" or "s3".
//   - S3User / S3Password: credentials for the S3-compatible backend.
//   - S3Bucket / S3Region / S3BaseEndpoint: object storage settings.
//   - SeedDemoData: fill the store with a few records on start.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	ListenAddr     string
	SecretKey      string
	TokenValidity  time.Duration
	AdminEmail     string
	AdminPassword  string
	MediaDir       string
	PublicBaseURL  string
	Storage        string
	S3User         string
	S3Password     string
	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	SeedDemoData   bool
	LogLevel       string
}

// LoadDefaults populates c with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":8080"
	c.SecretKey = "secretKey"
	c.TokenValidity = 60 * time.Minute
	c.AdminEmail = "admin@pharmacy.local"
	c.AdminPassword = "admin"
	c.MediaDir = "media"
	c.PublicBaseURL = "http://127.0.0.1:8080/media/"
	c.Storage = StorageDisk
	c.S3User = "admin"
	c.S3Password = "secretpassword"
	c.S3Bucket = "pharmacy"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.SeedDemoData = true
	c.LogLevel = "info"
}

// Load builds a Config from args (without the program name): defaults, then
// the JSON file named by -c/-config, then flags. Later sources win.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig loads the configuration from the process command line.
func LoadConfig() (*Config, error) {
	return Load(flagx.CommandLine())
}
