package buildinfo

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrintBuildData(t *testing.T) {
	oldV, oldC, oldD := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = oldV, oldC, oldD })
	Version, Commit, Date = "1.2.0", "abc123", "2026-01-02"

	var buf bytes.Buffer
	PrintBuildData(&buf, "pharmadmin")
	require.Equal(t, "pharmadmin 1.2.0 (commit abc123, built 2026-01-02)\n", buf.String())
}
