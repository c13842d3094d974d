package version

import (
	"runtime/debug"
	"strings"
	"time"
)

const defaultModule = "pkt.systems/termview"

// buildVersion is set via -ldflags "-X pkt.systems/termview/internal/version.buildVersion=...".
var buildVersion = ""

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// Current returns the best available version string.
func Current() string {
	if v := strings.TrimSpace(buildVersion); v != "" {
		return v
	}
	info, ok := readBuildInfo()
	if !ok {
		return "v0.0.0-unknown"
	}
	if v := strings.TrimSpace(info.Main.Version); v != "" && v != "(devel)" {
		return v
	}
	if v := pseudoVersion(info); v != "" {
		return v
	}
	return "v0.0.0-unknown"
}

// Module returns the main module path.
func Module() string {
	if info, ok := readBuildInfo(); ok {
		if path := strings.TrimSpace(info.Main.Path); path != "" {
			return path
		}
	}
	return defaultModule
}

// Banner is the line shown on an empty screen.
func Banner() string {
	return "termview -- version " + Current()
}

// pseudoVersion derives a Go pseudo-version from VCS stamps.
func pseudoVersion(info *debug.BuildInfo) string {
	if info == nil {
		return ""
	}
	settings := make(map[string]string, len(info.Settings))
	for _, s := range info.Settings {
		settings[s.Key] = s.Value
	}
	revision, stamp := settings["vcs.revision"], settings["vcs.time"]
	if revision == "" || stamp == "" {
		return ""
	}
	parsed, err := time.Parse(time.RFC3339, stamp)
	if err != nil {
		return ""
	}
	if len(revision) > 12 {
		revision = revision[:12]
	}
	v := "v0.0.0-" + parsed.UTC().Format("20060102150405") + "-" + revision
	if settings["vcs.modified"] == "true" {
		v += "+dirty"
	}
	return v
}
