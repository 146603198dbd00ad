// Package buildinfo carries version data stamped in at link time, e.g.
//
//	go build -ldflags "-X github.com/dmitrijs2005/pharmadmin/internal/buildinfo.Version=1.2.0"
package buildinfo

import (
	"fmt"
	"io"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// PrintBuildData writes a one-line banner naming the program and its build.
func PrintBuildData(w io.Writer, program string) {
	fmt.Fprintf(w, "%s %s (commit %s, built %s)\n", program, Version, Commit, Date)
}
