package provision

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joeblew999/carto-fonts/pkg/font"
	"github.com/zeromicro/go-zero/core/logx"
)

// DirectFont is a single file that does not follow the per-script URL pattern.
type DirectFont struct {
	Filename string
	URLs     []string
}

// Archive is a zip that only ships the fonts we need inside a larger package.
type Archive struct {
	Filename string
	URLs     []string
	Entries  []string // exact in-archive paths
}

// Extras lists the irregularly distributed fonts.
type Extras struct {
	Direct   []DirectFont
	Archives []Archive
}

// DefaultExtras returns the CJK, emoji and CJK-extension fonts.
func DefaultExtras() *Extras {
	return &Extras{
		Direct: []DirectFont{
			{
				Filename: "NotoSansCJKjp-Regular.otf",
				URLs:     []string{"https://github.com/notofonts/noto-cjk/raw/main/Sans/OTF/Japanese/NotoSansCJKjp-Regular.otf"},
			},
			{
				Filename: "NotoSansCJKjp-Bold.otf",
				URLs:     []string{"https://github.com/notofonts/noto-cjk/raw/main/Sans/OTF/Japanese/NotoSansCJKjp-Bold.otf"},
			},
		},
		Archives: []Archive{
			{
				// Noto Emoji B&W is only published as part of this package
				Filename: "Noto_Emoji.zip",
				URLs:     []string{"https://archive.org/download/noto-emoji/Noto_Emoji.zip"},
				Entries:  []string{"static/NotoEmoji-Regular.ttf", "static/NotoEmoji-Bold.ttf"},
			},
			{
				Filename: "hanazono.zip",
				URLs:     []string{"https://mirrors.dotsrc.org/osdn/hanazono-font/68253/hanazono-20170904.zip"},
				Entries:  []string{"HanaMinA.ttf", "HanaMinB.ttf"},
			},
		},
	}
}

// fetchExtras downloads the direct fonts into the font directory and unpacks
// the archives through a scratch directory that is removed afterwards.
func (p *Provisioner) fetchExtras(ctx context.Context, res *Result) error {
	extras := p.opts.Extras
	if extras == nil {
		return nil
	}

	for _, f := range extras.Direct {
		info, err := p.downloader.DownloadToFile(ctx, f.URLs, f.Filename, p.opts.FontDir)
		if err != nil {
			return err
		}
		res.add(info)
	}

	if len(extras.Archives) == 0 {
		return nil
	}

	scratch, err := os.MkdirTemp(p.opts.ScratchDir, "get-fonts.")
	if err != nil {
		return err
	}
	defer func() {
		if err := os.RemoveAll(scratch); err != nil {
			logx.WithContext(ctx).Errorf("remove scratch directory %s: %v", scratch, err)
		}
	}()

	for _, a := range extras.Archives {
		zipInfo, err := p.downloader.DownloadToFile(ctx, a.URLs, a.Filename, scratch)
		if err != nil {
			return err
		}

		files, err := font.ExtractEntries(filepath.Join(scratch, a.Filename), a.Entries, p.opts.FontDir)
		if err != nil {
			return err
		}
		for i := range files {
			files[i].URL = zipInfo.URL + "#" + a.Entries[i]
		}
		res.add(files...)

		logx.WithContext(ctx).Infow("Extracted archive",
			logx.Field("archive", a.Filename),
			logx.Field("entries", len(files)))
	}

	return nil
}
