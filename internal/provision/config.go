package provision

import (
	"context"

	"github.com/joeblew999/carto-fonts/internal/config"
	"github.com/joeblew999/carto-fonts/pkg/font"
	"github.com/zeromicro/go-zero/core/logx"
)

// DisplayNames returns the stylesheet names of the given scripts.
// Every script contributes its regular name; bold and black variations go in the bold list.
func DisplayNames(descriptors []font.Descriptor) (regular, bold []string) {
	for _, d := range descriptors {
		regular = append(regular, font.DisplayName(d.Script, font.Regular))
		for _, v := range d.Variations {
			if v.IsHeavy() {
				bold = append(bold, font.DisplayName(d.Script, v))
			}
		}
	}
	return regular, bold
}

// RunConfig downloads every script of the mapping, patches the stylesheet,
// then fetches the irregular fonts.
func (p *Provisioner) RunConfig(ctx context.Context, c config.Config) (*Result, error) {
	descriptors := c.Descriptors()
	res := &Result{}
	res.RegularFonts, res.BoldFonts = DisplayNames(descriptors)

	release, err := p.prepare(ctx)
	if err != nil {
		return res, err
	}
	defer release()

	for _, d := range descriptors {
		logx.WithContext(ctx).Infow("Downloading script",
			logx.Field("script", d.Script),
			logx.Field("variations", len(d.Variations)))

		for _, v := range d.Variations {
			info, err := p.downloader.DownloadToFile(ctx, d.CandidateURLs(v), d.Filename(v), p.opts.FontDir)
			if err != nil {
				return res, err
			}
			res.add(info)
		}
	}

	if err := p.patchStylesheet(ctx, res.RegularFonts, res.BoldFonts); err != nil {
		return res, err
	}

	if err := p.fetchExtras(ctx, res); err != nil {
		return res, err
	}

	return res, nil
}

// PatchOnly rewrites the stylesheet font lists from the mapping without downloading.
func (p *Provisioner) PatchOnly(ctx context.Context, c config.Config) (*Result, error) {
	res := &Result{}
	res.RegularFonts, res.BoldFonts = DisplayNames(c.Descriptors())
	return res, p.patchStylesheet(ctx, res.RegularFonts, res.BoldFonts)
}

func (p *Provisioner) patchStylesheet(ctx context.Context, regular, bold []string) error {
	if p.opts.Stylesheet == "" {
		return nil
	}
	if err := font.PatchStylesheetFile(p.opts.Stylesheet, regular, bold); err != nil {
		return err
	}
	logx.WithContext(ctx).Infow("Patched stylesheet",
		logx.Field("path", p.opts.Stylesheet),
		logx.Field("regular", len(regular)),
		logx.Field("bold", len(bold)))
	return nil
}
