// Package config provides path configuration for the font provisioning tool.
package config

import (
	"os"
	"path/filepath"
)

const (
	// DefaultFontDir is used when FONTDIR is not set.
	DefaultFontDir = "./fonts"

	// DefaultFontsConfig is the YAML mapping of scripts to download sources.
	DefaultFontsConfig = "scripts/fonts.yaml"

	// DefaultStylesheet is the CartoCSS fragment that lists the font names.
	DefaultStylesheet = "style/fonts.mss"
)

// GetFontDir returns the font output directory.
// It checks for the FONTDIR environment variable, otherwise uses ./fonts.
func GetFontDir() string {
	if path := os.Getenv("FONTDIR"); path != "" {
		return path
	}
	return DefaultFontDir
}

// GetFontsConfigPath returns the path to the fonts YAML mapping.
// It checks for the FONTS_CONFIG environment variable, otherwise uses a default.
func GetFontsConfigPath() string {
	if path := os.Getenv("FONTS_CONFIG"); path != "" {
		return path
	}
	return DefaultFontsConfig
}

// GetStylesheetPath returns the path to the stylesheet fragment.
// It checks for the FONTS_STYLESHEET environment variable, otherwise uses a default.
func GetStylesheetPath() string {
	if path := os.Getenv("FONTS_STYLESHEET"); path != "" {
		return path
	}
	return DefaultStylesheet
}

// LockFile is the name of the lock file kept inside the font directory.
// Font loaders only pick up font extensions, so the dot file is ignored.
const LockFile = ".get-fonts.lock"

// GetLockPath returns the lock file guarding a font directory.
func GetLockPath(fontDir string) string {
	return filepath.Join(fontDir, LockFile)
}
