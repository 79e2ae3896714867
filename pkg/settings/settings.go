// Package settings provides build metadata, runtime configuration, and
// context helpers used across the gridx CLI and library packages.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "gridx"

// VersionInformation is populated at build time via ldflags and holds the
// commit hash, semantic version, and build timestamp of the running binary.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build, including the commit hash,
// build version, and build timestamp.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// InputSettings describes where the record collection comes from: a file
// path argument or piped stdin.
type InputSettings struct {
	FromStdin bool
	Path      string
}

// Run holds configuration settings for a single execution of the
// application: logging, input source, display, and error handling behavior.
type Run struct {
	MinLogLevel int8
	Input       InputSettings
	IsQuiet     bool
	NoColor     bool
	ExitOnError bool
}

// NewCliParams returns a Run with the default CLI parameters: info-level
// logging, color output, and exit-on-error enabled.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		IsQuiet:     false,
		NoColor:     false,
		ExitOnError: true,
	}
}
