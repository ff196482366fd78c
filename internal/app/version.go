package app

// Set at build time via -ldflags.
var (
	Version   = "dev"
	GitTag    = "unknown"
	BuildTime = "unknown"
)
