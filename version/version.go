package version

// GitHash and BuildTime are set at link time using
// -ldflags "-X github.com/xyzrian/PokeClock/version.GitHash=... -X github.com/xyzrian/PokeClock/version.BuildTime=..."
var (
	GitHash   = "unknown"
	BuildTime = "unknown"
)
