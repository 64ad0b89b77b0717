/*
Copyright © 2025 Halcyon Authors
*/
package types

// AppConfig represents the complete application configuration
type AppConfig struct {
	Verbose bool          `mapstructure:"verbose"`
	JSON    bool          `mapstructure:"json"`
	Config  string        `mapstructure:"config"`
	Project ProjectConfig `mapstructure:"project" validate:"required"`
	Data    DataConfig    `mapstructure:"data" validate:"required"`
	Prefs   PrefsConfig   `mapstructure:"preferences" validate:"required"`
}

// ProjectConfig holds project-related settings
type ProjectConfig struct {
	RootDir       string `mapstructure:"rootDir" validate:"required"`
	OutputLogPath string `mapstructure:"outputLogPath" validate:"required"`
}

// DataConfig holds data storage configuration
type DataConfig struct {
	File        string `mapstructure:"file" validate:"required"`
	HistoryFile string `mapstructure:"historyFile" validate:"required"`
	Format      string `mapstructure:"format" validate:"required,oneof=json yaml toml"`
	// Backend selects the history store implementation.
	Backend string `mapstructure:"backend" validate:"required,oneof=file sqlite"`
}

// PrefsConfig holds the user's daily rhythm, in local 24h clock hours.
type PrefsConfig struct {
	WakeHour  int `mapstructure:"wakeHour" validate:"min=0,max=23"`
	BedHour   int `mapstructure:"bedHour" validate:"min=0,max=23"`
	WorkStart int `mapstructure:"workStart" validate:"min=0,max=23"`
	WorkEnd   int `mapstructure:"workEnd" validate:"min=0,max=23"`
}
