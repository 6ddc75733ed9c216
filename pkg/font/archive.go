package font

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/joeblew999/carto-fonts/pkg/log"
	"github.com/klauspost/compress/zip"
)

// ExtractEntries copies the named archive entries into destDir as flat files.
// Entries are matched by their exact in-archive path. An entry nested in the
// archive (static/NotoEmoji-Regular.ttf) is unpacked under destDir first and
// then moved to destDir/NotoEmoji-Regular.ttf, replacing any file already
// there; the intermediate directories are removed afterwards.
func ExtractEntries(zipPath string, entries []string, destDir string) ([]FileInfo, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	byName := make(map[string]*zip.File, len(r.File))
	for _, f := range r.File {
		byName[f.Name] = f
	}

	var (
		extracted []FileInfo
		leftovers = make(map[string]struct{})
	)
	for _, entry := range entries {
		f, ok := byName[entry]
		if !ok {
			return extracted, &fs.PathError{Op: "open", Path: entry, Err: fs.ErrNotExist}
		}
		if !filepath.IsLocal(filepath.FromSlash(entry)) {
			return extracted, fmt.Errorf("archive entry %s escapes %s", entry, destDir)
		}

		nested := filepath.Join(destDir, filepath.FromSlash(entry))
		size, err := extractFile(f, nested)
		if err != nil {
			return extracted, fmt.Errorf("extract %s: %w", entry, err)
		}

		flat := filepath.Join(destDir, path.Base(entry))
		if nested != flat {
			if err := os.Remove(flat); err != nil && !os.IsNotExist(err) {
				return extracted, err
			}
			if err := os.Rename(nested, flat); err != nil {
				return extracted, err
			}
			top, _, _ := strings.Cut(entry, "/")
			leftovers[filepath.Join(destDir, top)] = struct{}{}
		}

		log.Info("Extracted font", "file", path.Base(entry), "archive", zipPath, "bytes", size)
		extracted = append(extracted, FileInfo{Name: path.Base(entry), Path: flat, URL: zipPath + "#" + entry, Size: size})
	}

	for dir := range leftovers {
		if err := os.RemoveAll(dir); err != nil {
			log.Warn("Failed to remove extraction leftovers", "dir", dir, "error", err)
		}
	}

	return extracted, nil
}

func extractFile(f *zip.File, dest string) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return 0, err
	}

	src, err := f.Open()
	if err != nil {
		return 0, err
	}
	defer src.Close()

	out, err := os.Create(dest)
	if err != nil {
		return 0, err
	}
	defer out.Close()

	n, err := io.Copy(out, src)
	if err != nil {
		return n, err
	}
	return n, out.Close()
}
