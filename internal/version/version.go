package version

// Version is the library version, overridable at build time:
// -ldflags "-X github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/version.Version=1.2.3"
// "main" marks a development build.
var Version = "v1.0.0"

// GetVersion returns the library version.
func GetVersion() string {
	return Version
}
