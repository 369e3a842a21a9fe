package build

import "fmt"

// Injected at build time via -ldflags.
var (
	Version   = "dev"
	GitRef    = "unknown"
	BuildDate = "unknown"
)

var LongVersion = fmt.Sprintf("%s (ref: %s, date: %s)", Version, GitRef, BuildDate)
