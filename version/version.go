package version

// Version is overwritten at build time with -ldflags.
var Version = "0.3.0"

var GitCommit = ""
