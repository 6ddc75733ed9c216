package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/joeblew999/carto-fonts/pkg/font"
	"github.com/zeromicro/go-zero/core/conf"
)

// Config is the fonts YAML mapping, keyed by script name.
type Config struct {
	Fonts map[string]Script `json:"fonts"`
}

// Script holds the download sources of one script.
type Script struct {
	URLs       []string `json:"urls"`
	Variations []string `json:"variations,optional"`
}

// Load reads and validates the mapping at path. ${VAR} references are expanded from the environment.
func Load(path string) (Config, error) {
	var c Config
	if err := conf.Load(path, &c, conf.UseEnv()); err != nil {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Validate checks that every script has a source and known variations.
func (c Config) Validate() error {
	if len(c.Fonts) == 0 {
		return errors.New("no fonts configured")
	}
	for _, name := range c.ScriptNames() {
		script := c.Fonts[name]
		if len(script.URLs) == 0 {
			return fmt.Errorf("script %s has no urls", name)
		}
		for _, v := range script.Variations {
			if _, err := font.ParseVariation(v); err != nil {
				return fmt.Errorf("script %s: %w", name, err)
			}
		}
	}
	return nil
}

// ScriptNames returns the script names in alphabetical order.
func (c Config) ScriptNames() []string {
	names := make([]string, 0, len(c.Fonts))
	for name := range c.Fonts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Descriptors returns one font descriptor per script, in alphabetical order.
func (c Config) Descriptors() []font.Descriptor {
	descriptors := make([]font.Descriptor, 0, len(c.Fonts))
	for _, name := range c.ScriptNames() {
		script := c.Fonts[name]
		var variations []font.Variation
		for _, raw := range script.Variations {
			v, err := font.ParseVariation(raw)
			if err != nil {
				continue
			}
			variations = append(variations, v)
		}
		descriptors = append(descriptors, font.NewDescriptor(name, script.URLs, variations...))
	}
	return descriptors
}
