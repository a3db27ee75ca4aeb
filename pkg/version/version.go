package version

// Version is the current bwtree version.
// Overridable at build time:
//
//	go build -ldflags "-X github.com/vanderheijden86/bwtree/pkg/version.Version=v0.2.0" ./cmd/bwtree
var Version = "v0.1.0"
