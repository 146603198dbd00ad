package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/pharmadmin/internal/flagx"
	"github.com/dmitrijs2005/pharmadmin/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations use
// timex.Duration so they can be given as "1h" or integer nanoseconds.
// Absent members leave the current value in place.
type JsonConfig struct {
	ListenAddr     *string         `json:"listen_addr"`
	SecretKey      *string         `json:"secret_key"`
	TokenValidity  *timex.Duration `json:"token_validity"`
	AdminEmail     *string         `json:"admin_email"`
	AdminPassword  *string         `json:"admin_password"`
	MediaDir       *string         `json:"media_dir"`
	PublicBaseURL  *string         `json:"public_base_url"`
	Storage        *string         `json:"storage"`
	S3User         *string         `json:"s3_root_user"`
	S3Password     *string         `json:"s3_root_password"`
	S3Bucket       *string         `json:"s3_bucket"`
	S3Region       *string         `json:"s3_region"`
	S3BaseEndpoint *string         `json:"s3_base_endpoint"`
	SeedDemoData   *bool           `json:"seed_demo_data"`
	LogLevel       *string         `json:"log_level"`
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// parseJson overlays cfg with the JSON file named by -c or -config in args.
// Without such a flag it does nothing.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.ListenAddr, jc.ListenAddr)
	setString(&cfg.SecretKey, jc.SecretKey)
	if jc.TokenValidity != nil {
		cfg.TokenValidity = jc.TokenValidity.Duration
	}
	setString(&cfg.AdminEmail, jc.AdminEmail)
	setString(&cfg.AdminPassword, jc.AdminPassword)
	setString(&cfg.MediaDir, jc.MediaDir)
	setString(&cfg.PublicBaseURL, jc.PublicBaseURL)
	setString(&cfg.Storage, jc.Storage)
	setString(&cfg.S3User, jc.S3User)
	setString(&cfg.S3Password, jc.S3Password)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	if jc.SeedDemoData != nil {
		cfg.SeedDemoData = *jc.SeedDemoData
	}
	setString(&cfg.LogLevel, jc.LogLevel)
	return nil
}
