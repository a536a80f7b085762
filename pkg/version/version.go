package version

import (
	"fmt"
	"runtime"
	"strings"
)

// These variables are set via ldflags during build.
var (
	Version   = "dev"
	Commit    = "none"
	Date      = "unknown"
	GoVersion = runtime.Version()
)

func Platform() string {
	return runtime.GOOS + "/" + runtime.GOARCH
}

// Summary returns the version with a short commit, e.g. "v1.1.0 (abc1234)".
func Summary() string {
	v := Version
	if v == "" {
		v = "dev"
	}
	if Commit != "" && Commit != "none" {
		short := Commit
		if len(short) > 7 {
			short = short[:7]
		}
		return fmt.Sprintf("cpmonk %s (%s)", v, short)
	}
	return "cpmonk " + v
}

// UserAgent returns the User-Agent sent with every chat request.
func UserAgent() string {
	v := strings.TrimPrefix(Version, "v")
	if v == "" {
		v = "dev"
	}
	return "cpmonk/" + v + " (" + Platform() + ")"
}

// Details returns the multi-line build report printed by the version command.
func Details() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "cpmonk version %s\n", Version)
	fmt.Fprintf(&sb, "  commit: %s\n", Commit)
	fmt.Fprintf(&sb, "  built: %s\n", Date)
	fmt.Fprintf(&sb, "  go: %s\n", GoVersion)
	fmt.Fprintf(&sb, "  platform: %s\n", Platform())
	return sb.String()
}
