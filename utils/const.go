package utils

const (
	Name    = "drivetap"
	Version = "0.1.0"
)

const (
	TokenFilename        = "token.json"
	DefaultStateFileName = "state.json"
	DefaultWatermarkFile = "watermarks.json"
)

const (
	DefaultMaxFiles  = 1000
	DefaultNameWidth = 40
	DefaultPathWidth = 60
	DefaultTimeout   = 5 * 60
	DefaultQuery     = "trashed = false and 'me' in owners"
)

const (
	ConfigDirEnv = "DRIVETAP_CONFIG_DIR"
)
