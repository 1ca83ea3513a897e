package types

// AppConfig represents the complete application configuration
type AppConfig struct {
	Verbose bool       `mapstructure:"verbose"`
	Config  string     `mapstructure:"config"`
	Data    DataConfig `mapstructure:"data" validate:"required"`
	Log     LogConfig  `mapstructure:"log"`
}

// DataConfig holds data storage configuration
type DataConfig struct {
	// Dir is resolved by config.GetDataDir when left empty.
	Dir          string `mapstructure:"dir"`
	Backend      string `mapstructure:"backend" validate:"required,oneof=file sqlite memory"`
	Format       string `mapstructure:"format" validate:"required,oneof=json yaml yml toml"`
	ActiveKey    string `mapstructure:"activeKey" validate:"required,nefield=CompletedKey"`
	CompletedKey string `mapstructure:"completedKey" validate:"required"`
}

// LogConfig controls the slog handler used by every command.
type LogConfig struct {
	// File is relative to the data directory unless absolute. Empty logs to stderr.
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
}
