// Package font resolves, downloads and unpacks the font files used by the
// map stylesheet, and keeps the stylesheet's font lists in sync with them.
package font

import (
	"fmt"
	"regexp"
	"strings"
)

// Variation is a style axis value of a font family.
type Variation string

// Supported variations.
const (
	Regular Variation = "regular"
	Bold    Variation = "bold"
	Italic  Variation = "italic"
	Black   Variation = "black"
)

// ParseVariation accepts a variation name in any letter case.
func ParseVariation(s string) (Variation, error) {
	v := Variation(strings.ToLower(strings.TrimSpace(s)))
	switch v {
	case Regular, Bold, Italic, Black:
		return v, nil
	}
	return "", fmt.Errorf("unknown variation %q", s)
}

// Title returns the variation as it appears in file and display names.
func (v Variation) Title() string {
	return Capitalize(string(v))
}

// IsHeavy reports whether fonts of this variation belong in the bold list.
func (v Variation) IsHeavy() bool {
	return v == Bold || v == Black
}

// Descriptor describes one script from the YAML mapping.
type Descriptor struct {
	Script     string
	Variations []Variation // always starts with Regular
	BaseURLs   []string    // earlier prefixes preferred
}

// NewDescriptor builds a descriptor with the implicit regular variation first.
func NewDescriptor(script string, baseURLs []string, extra ...Variation) Descriptor {
	variations := make([]Variation, 0, len(extra)+1)
	variations = append(variations, Regular)
	for _, v := range extra {
		if v == Regular {
			continue
		}
		variations = append(variations, v)
	}
	return Descriptor{
		Script:     script,
		Variations: variations,
		BaseURLs:   baseURLs,
	}
}

// Filename returns the file name of one variation, e.g. NotoSansCherokee-Bold.ttf.
func (d Descriptor) Filename(v Variation) string {
	return FileName(d.Script, v, DefaultFontFormat)
}

// CandidateURLs appends the variation's file name to every base URL, keeping their order.
func (d Descriptor) CandidateURLs(v Variation) []string {
	filename := d.Filename(v)
	urls := make([]string, 0, len(d.BaseURLs))
	for _, base := range d.BaseURLs {
		urls = append(urls, base+filename)
	}
	return urls
}

// FileName builds "{family}-{Variation}.{ext}".
func FileName(family string, v Variation, ext string) string {
	return fmt.Sprintf("%s-%s.%s", family, v.Title(), ext)
}

// Capitalize upper-cases the first letter and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

var camelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)

// DisplayName returns the name the stylesheet uses for an installed font.
// Example: NotoSansCherokee, bold -> Noto Sans Cherokee Bold.
// Mixed-case tails survive: NotoSansNKo -> Noto Sans NKo.
func DisplayName(script string, v Variation) string {
	return camelBoundary.ReplaceAllString(script, "$1 $2") + " " + v.Title()
}

// FileInfo describes a font file written to disk.
type FileInfo struct {
	Name string
	Path string
	URL  string
	Size int64
}
