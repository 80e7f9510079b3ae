package config

// RawConfig mirrors the YAML file. Nil fields were not set and keep their
// defaults.
type RawConfig struct {
	DefaultWidth  *int    `yaml:"default_width"`
	DefaultHeight *int    `yaml:"default_height"`
	Path          *string `yaml:"path"`
	File          *string `yaml:"file"`
	Maximize      *bool   `yaml:"maximize"`
	FullScreen    *bool   `yaml:"full_screen"`
	EventDelayMS  *int    `yaml:"event_delay_ms"`
	LogLevel      *string `yaml:"log_level"`
	Display       *string `yaml:"display"`
}
