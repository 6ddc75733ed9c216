package font

import (
	"fmt"
	"os"
	"strings"

	"github.com/zeromicro/go-zero/core/stringx"
)

// PatchStylesheet rewrites the font lists of a stylesheet fragment.
// Everything between each opening and closing marker is replaced by one
// quoted, comma-terminated line per name. The baseline names are skipped
// because the fragment already lists them as the fallback default.
func PatchStylesheet(text string, regular, bold []string) (string, error) {
	text, err := replaceBetween(text, RegularOpenMarker, RegularCloseMarker, regular, BaselineRegular)
	if err != nil {
		return "", err
	}
	return replaceBetween(text, BoldOpenMarker, BoldCloseMarker, bold, BaselineBold)
}

// PatchStylesheetFile patches the file at path in place.
// The file is left untouched if any marker is missing.
func PatchStylesheetFile(path string, regular, bold []string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read stylesheet: %w", err)
	}

	patched, err := PatchStylesheet(string(data), regular, bold)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(patched), info.Mode().Perm())
}

func replaceBetween(text, open, close string, names []string, skip ...string) (string, error) {
	start := strings.Index(text, open)
	end := strings.Index(text, close)
	if start < 0 || end < 0 || end < start+len(open) {
		return "", &MarkerError{Open: open, Close: close}
	}

	var b strings.Builder
	b.WriteString(text[:start+len(open)])
	b.WriteString("\n")
	for _, name := range names {
		if stringx.Contains(skip, name) {
			continue
		}
		b.WriteString(StylesheetIndent + `"` + name + `",` + "\n")
	}
	b.WriteString(StylesheetIndent)
	b.WriteString(text[end:])
	return b.String(), nil
}
