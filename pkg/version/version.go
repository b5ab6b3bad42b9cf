package version

// Variables injected at build time via ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildInfo is served by /version
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
}

// Info returns the build information
func Info() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
	}
}

// String returns the version with the short commit hash when known (e.g. "v1.0.0-091fa6d")
func String() string {
	if Commit == "unknown" || Commit == "" {
		return Version
	}
	short := Commit
	if len(short) > 7 {
		short = short[:7]
	}
	return Version + "-" + short
}

// UserAgent identifies the dashboard to the inventory API
func UserAgent() string {
	return "bluepriori-dashboard/" + String()
}
