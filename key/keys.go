// Package key holds the configuration key names shared by config, cmd and the controller.
package key

// Engine selection and creation
const (
	PlayerEngine     = "player.engine"
	PlayerEngineArgs = "player.engine_args"
)

// Controller behaviour
const (
	PlayerStandardOptions = "player.standard_options"
	PlayerRepeat          = "player.repeat"
	PlayerPlaySubItems    = "player.play_sub_items"
	PlayerStartTimeout    = "player.start_timeout_ms"
)

// Video output detection
const (
	PlayerVideoOutputPoll    = "player.video_output_poll_ms"
	PlayerVideoOutputTimeout = "player.video_output_timeout_ms"
)

// Snapshots
const (
	SnapshotDirectory = "snapshot.directory"
	SnapshotKeepDays  = "snapshot.keep_days"
)

// History
const (
	HistorySave = "history.save"
)

// Metrics and status output
const (
	MetricsListen = "metrics.listen"
	StatusRate    = "status.rate"
)

// Icons
const (
	IconsVariant = "icons.variant"
)

// Logs
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI
const (
	CliColored = "cli.colored"
)
