package roompack

import (
	ini "gopkg.in/ini.v1"
)

const optionsSection = "pack"

// Options holds the configuration values that are not read from the dump.
type Options struct {
	Name      string `ini:"name"`
	Scale     int    `ini:"scale"`
	ShowPiano bool   `ini:"show_piano"`
}

// DefaultOptions returns the options for a pack called name.
func DefaultOptions(name string) Options {
	return Options{
		Name:  name,
		Scale: 1,
	}
}

// Load overrides o with any values set in the [pack] section of the INI file.
func (o *Options) Load(file string) error {
	cfg, err := ini.Load(file)
	if err != nil {
		return err
	}
	return cfg.Section(optionsSection).MapTo(o)
}
