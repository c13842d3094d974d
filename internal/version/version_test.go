package version

import (
	"runtime/debug"
	"strings"
	"testing"
	"time"
)

func TestCurrentPrefersBuildVersion(t *testing.T) {
	old := buildVersion
	buildVersion = "v1.2.3"
	t.Cleanup(func() { buildVersion = old })

	if got := Current(); got != "v1.2.3" {
		t.Fatalf("expected build version, got %q", got)
	}
	if got := Banner(); got != "termview -- version v1.2.3" {
		t.Fatalf("unexpected banner %q", got)
	}
}

func TestCurrentWithoutBuildInfo(t *testing.T) {
	stubBuildInfo(t, nil, false)
	if got := Current(); got != "v0.0.0-unknown" {
		t.Fatalf("expected unknown version, got %q", got)
	}
	if got := Module(); got != defaultModule {
		t.Fatalf("expected default module, got %q", got)
	}
}

func TestCurrentUsesModuleVersion(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Path: "example.com/tv", Version: "v0.4.0"}}, true)
	if got := Current(); got != "v0.4.0" {
		t.Fatalf("expected module version, got %q", got)
	}
	if got := Module(); got != "example.com/tv" {
		t.Fatalf("expected module path, got %q", got)
	}
}

func TestPseudoVersion(t *testing.T) {
	ts := time.Date(2025, time.January, 2, 3, 4, 5, 0, time.UTC)
	info := &debug.BuildInfo{
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "1234567890abcdef"},
			{Key: "vcs.time", Value: ts.Format(time.RFC3339)},
			{Key: "vcs.modified", Value: "true"},
		},
	}
	got := pseudoVersion(info)
	if !strings.HasPrefix(got, "v0.0.0-20250102030405-1234567890ab") {
		t.Fatalf("unexpected version prefix: %q", got)
	}
	if !strings.HasSuffix(got, "+dirty") {
		t.Fatalf("expected dirty suffix, got %q", got)
	}
	if pseudoVersion(nil) != "" {
		t.Fatalf("expected empty version for nil build info")
	}
}

func stubBuildInfo(t *testing.T, info *debug.BuildInfo, ok bool) {
	t.Helper()
	oldRead, oldBuild := readBuildInfo, buildVersion
	readBuildInfo = func() (*debug.BuildInfo, bool) { return info, ok }
	buildVersion = ""
	t.Cleanup(func() {
		readBuildInfo = oldRead
		buildVersion = oldBuild
	})
}
