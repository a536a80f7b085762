package version

import (
	"strings"
	"testing"
)

func withBuildInfo(t *testing.T, v, commit string) {
	t.Helper()
	oldVersion, oldCommit := Version, Commit
	Version, Commit = v, commit
	t.Cleanup(func() { Version, Commit = oldVersion, oldCommit })
}

func TestSummary(t *testing.T) {
	withBuildInfo(t, "v1.1.0", "abcdef1234567")
	if got := Summary(); got != "cpmonk v1.1.0 (abcdef1)" {
		t.Errorf("Expected short commit in summary, got %q", got)
	}

	withBuildInfo(t, "", "none")
	if got := Summary(); got != "cpmonk dev" {
		t.Errorf("Expected dev summary, got %q", got)
	}
}

func TestUserAgent(t *testing.T) {
	withBuildInfo(t, "v1.1.0", "none")
	if got := UserAgent(); !strings.HasPrefix(got, "cpmonk/1.1.0 (") {
		t.Errorf("Unexpected user agent %q", got)
	}
}

func TestDetails(t *testing.T) {
	withBuildInfo(t, "v2.0.0", "deadbeef")
	out := Details()
	for _, want := range []string{"cpmonk version v2.0.0", "commit: deadbeef", "platform: " + Platform()} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in details:\n%s", want, out)
		}
	}
}
