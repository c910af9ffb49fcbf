// Package buildinfo carries version metadata stamped at link time:
//
//	go build -ldflags "-X github.com/dmitrijs2005/userdir/internal/buildinfo.Version=v1.2.0 \
//	  -X github.com/dmitrijs2005/userdir/internal/buildinfo.Commit=$(git rev-parse --short HEAD)"
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// String renders the version line printed by `udir version`.
func String() string {
	commit, date := Commit, Date
	if commit == "" {
		commit = vcsSetting("vcs.revision")
	}
	if date == "" {
		date = vcsSetting("vcs.time")
	}
	if commit == "" {
		commit = "unknown"
	}
	if date == "" {
		date = "unknown"
	}
	return fmt.Sprintf("udir %s (commit %s, built %s)", Version, commit, date)
}

func vcsSetting(key string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}
