package font

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/zeromicro/go-zero/core/jsonx"
)

// Manifest is the decoded font manifest, keyed by script.
type Manifest map[string]ManifestScript

// ManifestScript lists the families published for one script.
type ManifestScript struct {
	Name     string                    `json:"name,omitempty"`
	Families map[string]ManifestFamily `json:"families"`
}

// ManifestFamily lists the file paths of one family, relative to its script.
type ManifestFamily struct {
	Files []string `json:"files"`
}

// ParseManifest decodes manifest JSON.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := jsonx.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return m, nil
}

// FetchManifest downloads and decodes the manifest at url.
func (d *Downloader) FetchManifest(ctx context.Context, url string) (Manifest, error) {
	resp, err := d.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch manifest %s: %w", url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", url, err)
	}
	return ParseManifest(data)
}

// Index is the flattened list of "script/path" manifest keys.
type Index struct {
	base       string
	candidates []string
}

// NewIndex flattens the manifest. A key's download URL is base + key.
func NewIndex(m Manifest, base string) *Index {
	var candidates []string
	for script, info := range m {
		for _, family := range info.Families {
			for _, file := range family.Files {
				candidates = append(candidates, script+"/"+strings.TrimPrefix(file, "/"))
			}
		}
	}
	sort.Strings(candidates)

	return &Index{
		base:       base,
		candidates: candidates,
	}
}

// Candidates returns the sorted manifest keys.
func (ix *Index) Candidates() []string {
	return ix.candidates
}

// Len returns the number of manifest keys.
func (ix *Index) Len() int {
	return len(ix.candidates)
}

// URL returns the download URL of a manifest key.
func (ix *Index) URL(key string) string {
	return ix.base + key
}

// FindFontURL returns the URL of the single unhinted file whose key contains filename.
// When nothing matches and filename carries a UI qualifier, the lookup is
// retried once without it, since some scripts only publish the plain family.
func (ix *Index) FindFontURL(filename string) (string, error) {
	matches := ix.match(filename)
	if len(matches) == 0 && strings.Contains(filename, UIQualifier) {
		matches = ix.match(strings.Replace(filename, UIQualifier, "", 1))
	}

	switch len(matches) {
	case 0:
		return "", &LookupError{Filename: filename}
	case 1:
		return ix.URL(matches[0]), nil
	default:
		return "", &LookupError{Filename: filename, Matches: matches}
	}
}

func (ix *Index) match(filename string) []string {
	var matches []string
	for _, key := range ix.candidates {
		if strings.Contains(key, UnhintedMarker) && strings.Contains(key, filename) {
			matches = append(matches, key)
		}
	}
	return matches
}

// styleSuffixes are the first letters of the variation suffix in a file name.
var styleSuffixes = []string{"-R", "-B", "-I"}

// UIQualifiedURL points url at the UI build when destination names one and url does not.
// The manifest path of a plain family differs from its UI sibling in two places:
//
//	fonts/NotoSansBengali/unhinted/ttf/NotoSansBengali-Regular.ttf
//	fonts/NotoSansBengaliUI/unhinted/ttf/NotoSansBengaliUI-Regular.ttf
func UIQualifiedURL(url, destination string) string {
	if !strings.Contains(destination, UIQualifier+"-") || strings.Contains(url, UIQualifier) {
		return url
	}

	dir, file := url, ""
	if i := strings.LastIndex(url, "/"); i >= 0 {
		dir, file = url[:i+1], url[i+1:]
	}

	for _, suffix := range styleSuffixes {
		if i := strings.LastIndex(file, suffix); i >= 0 {
			file = file[:i] + UIQualifier + file[i:]
			break
		}
	}

	dir = strings.Replace(dir, "/"+UnhintedMarker, UIQualifier+"/"+UnhintedMarker, 1)
	return dir + file
}
