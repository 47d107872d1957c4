package version

// These variables are injected at build time with -ldflags "-X ...".

// AbsrsaVersion hosts the version of the app.
var AbsrsaVersion = "development"

// Commit is the commit hash of the build
var Commit string

// BuildDate is the date it was built
var BuildDate string
