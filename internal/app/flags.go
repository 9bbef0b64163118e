package app

import (
	"flag"
	"time"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Width    int
	Height   int
	Saves    string
	Interval time.Duration
	Sync     bool
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Width:    800,
		Height:   600,
		Saves:    "saves.json",
		Interval: 300 * time.Millisecond,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "window width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "window height in pixels")
	fs.StringVar(&c.Saves, "saves", c.Saves, "path of the save file")
	fs.DurationVar(&c.Interval, "interval", c.Interval, "pause between generations in auto-play")
	fs.BoolVar(&c.Sync, "sync", c.Sync, "compute steps on the main loop instead of a worker goroutine")
}
