package config

import (
	"time"

	"github.com/dmitrijs2005/pharmadmin/internal/flagx"
)

// Config holds runtime settings for the admin REPL.
//
// Fields:
//   - APIBaseURL: root of the REST API, e.g. http://127.0.0.1:8080/api/.
//   - RequestTimeout: upper bound for one HTTP request.
//   - SessionDBPath: SQLite file keeping the signed-in session.
//   - PageSize: rows per list page.
//   - ConfirmLimit: most changes listed one by one before a save.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	SessionDBPath  string
	PageSize       int
	ConfirmLimit   int
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults. PHARMADMIN_API_URL, when
// set, replaces the default API address.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = flagx.EnvOr("PHARMADMIN_API_URL", "http://127.0.0.1:8080/api/")
	c.RequestTimeout = 15 * time.Second
	c.SessionDBPath = "pharmadmin.db"
	c.PageSize = 10
	c.ConfirmLimit = 5
	c.LogLevel = "warn"
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
