package config

// Default configuration values.
const (
	DefaultOutput = "auto"
	DefaultUIPort = 8711
)

// ConfigFileName is the name of the config file.
const ConfigFileName = "sqlmark.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "sqlmark.yml"
