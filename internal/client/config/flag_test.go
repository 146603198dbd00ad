package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected  *Config
		name      string
		args      []string
		expectErr bool
	}{
		{name: "all flags", args: []string{"-a", "http://10.0.0.2:8080/api/", "-t", "30", "-d", "/tmp/s.db", "-p", "20", "-l", "3", "-v", "debug"},
			expected: &Config{APIBaseURL: "http://10.0.0.2:8080/api/", RequestTimeout: 30 * time.Second, SessionDBPath: "/tmp/s.db", PageSize: 20, ConfirmLimit: 3, LogLevel: "debug"}},
		{name: "foreign flags ignored", args: []string{"-x", "1", "-p=7"},
			expected: &Config{PageSize: 7}},
		{name: "incorrect timeout", args: []string{"-t", "abc"}, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}
			err := parseFlags(config, tt.args)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
