package font

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Use errors.Is to classify; the typed errors below carry details.
var (
	ErrDownloadExhausted = errors.New("all download sources failed")
	ErrMarkersMissing    = errors.New("stylesheet markers missing")
	ErrFontAmbiguous     = errors.New("ambiguous font in manifest")
	ErrFontNotFound      = errors.New("no font found in manifest")
)

// DownloadError is returned when every candidate URL of a file failed.
type DownloadError struct {
	Destination string
	URLs        []string
	Err         error // failure of the last URL tried
}

func (e *DownloadError) Error() string {
	msg := fmt.Sprintf("failed to download %s from [%s]", e.Destination, strings.Join(e.URLs, ", "))
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DownloadError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDownloadExhausted}
	}
	return []error{ErrDownloadExhausted, e.Err}
}

// MarkerError is returned when a stylesheet lacks a marker pair.
type MarkerError struct {
	Open  string
	Close string
}

func (e *MarkerError) Error() string {
	return fmt.Sprintf("stylesheet does not include %s %s tags", trimComment(e.Open), trimComment(e.Close))
}

func (e *MarkerError) Unwrap() error {
	return ErrMarkersMissing
}

// trimComment turns "/* {bold fonts} */" into "{bold fonts}".
func trimComment(marker string) string {
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(marker, "/*"), "*/"))
}

// LookupError is returned when a manifest lookup does not yield exactly one file.
type LookupError struct {
	Filename string
	Matches  []string
}

func (e *LookupError) Error() string {
	if len(e.Matches) == 0 {
		return fmt.Sprintf("no font found for %s", e.Filename)
	}
	return fmt.Sprintf("ambiguous font %s: %d matches [%s]", e.Filename, len(e.Matches), strings.Join(e.Matches, ", "))
}

func (e *LookupError) Unwrap() error {
	if len(e.Matches) == 0 {
		return ErrFontNotFound
	}
	return ErrFontAmbiguous
}
