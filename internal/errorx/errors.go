package errorx

import (
	"context"
	"errors"

	"github.com/joeblew999/carto-fonts/pkg/font"
)

// Reasons attached to a failed run in logs and the journal.
const (
	ReasonDownloadExhausted = "download_exhausted"
	ReasonMarkersMissing    = "markers_missing"
	ReasonManifestAmbiguous = "manifest_ambiguous"
	ReasonManifestNotFound  = "manifest_not_found"
	ReasonCanceled          = "canceled"
	ReasonInternal          = "internal"
)

// Reason classifies a run error. Errors outside the known kinds are "internal".
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, font.ErrDownloadExhausted):
		return ReasonDownloadExhausted
	case errors.Is(err, font.ErrMarkersMissing):
		return ReasonMarkersMissing
	case errors.Is(err, font.ErrFontAmbiguous):
		return ReasonManifestAmbiguous
	case errors.Is(err, font.ErrFontNotFound):
		return ReasonManifestNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ReasonCanceled
	default:
		return ReasonInternal
	}
}

// ExitCode returns the process exit status for a run error.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
