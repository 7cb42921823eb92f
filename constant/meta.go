// Package constant holds application-wide identifiers.
package constant

const (
	// Mediactl names the application in paths, env prefixes and metrics.
	Mediactl = "mediactl"

	Version = "0.3.0"
)

// Engine names accepted by the player.engine setting.
const (
	EngineLibVLC = "libvlc"
	EngineFake   = "fake"
)
