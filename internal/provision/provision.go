// Package provision runs the font provisioning variants end to end.
package provision

import (
	"context"
	"fmt"

	paths "github.com/joeblew999/carto-fonts/pkg/config"
	"github.com/joeblew999/carto-fonts/pkg/font"
	"github.com/tharvik/flock"
	"github.com/zeromicro/go-zero/core/logx"
)

// Options configures a Provisioner. Zero values fall back to defaults.
type Options struct {
	FontDir      string
	Stylesheet   string // empty skips the stylesheet patch
	ManifestURL  string
	ManifestBase string
	Categories   []Category
	Extras       *Extras // nil skips the irregular fonts
	ScratchDir   string  // parent of the temporary archive directory; empty uses the OS default
}

// Result accumulates what a run produced. A failed run returns the partial result.
type Result struct {
	RegularFonts []string
	BoldFonts    []string
	Files        []font.FileInfo
}

func (r *Result) add(files ...font.FileInfo) {
	r.Files = append(r.Files, files...)
}

// Provisioner downloads fonts into one directory.
type Provisioner struct {
	downloader *font.Downloader
	opts       Options
}

// New creates a provisioner.
func New(d *font.Downloader, opts Options) *Provisioner {
	if opts.FontDir == "" {
		opts.FontDir = paths.GetFontDir()
	}
	if opts.ManifestURL == "" {
		opts.ManifestURL = font.DefaultManifestURL
	}
	if opts.ManifestBase == "" {
		opts.ManifestBase = font.DefaultManifestBase
	}
	if opts.Categories == nil {
		opts.Categories = DefaultCategories
	}
	return &Provisioner{
		downloader: d,
		opts:       opts,
	}
}

// FontDir returns the output directory.
func (p *Provisioner) FontDir() string {
	return p.opts.FontDir
}

// prepare creates the font directory and takes its lock.
func (p *Provisioner) prepare(ctx context.Context) (release func(), err error) {
	if err := font.EnsureDir(p.opts.FontDir); err != nil {
		return nil, err
	}

	lockPath := paths.GetLockPath(p.opts.FontDir)
	lock := flock.New(lockPath)
	logx.WithContext(ctx).Debugf("Locking %s", lockPath)
	if err := lock.Lock(); err != nil {
		lock.Close()
		return nil, fmt.Errorf("lock %s: %w", lockPath, err)
	}

	return func() {
		if err := lock.Unlock(); err != nil {
			logx.WithContext(ctx).Errorf("unlock %s: %v", lockPath, err)
		}
		lock.Close()
	}, nil
}
