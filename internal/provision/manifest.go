package provision

import (
	"context"
	"fmt"

	"github.com/joeblew999/carto-fonts/pkg/font"
	"github.com/zeromicro/go-zero/core/logx"
)

// Category is a group of families fetched with the same variations.
type Category struct {
	Name       string
	Variations []font.Variation
	Families   []string
}

// DefaultCategories are the families the map style needs from the manifest.
var DefaultCategories = []Category{
	{
		Name:       "regular",
		Variations: []font.Variation{font.Regular},
		Families: []string{
			"NotoSansAdlamUnjoined",
			"NotoSansBalinese",
			"NotoSansBamum",
			"NotoSansBatak",
			"NotoSansBuginese",
			"NotoSansBuhid",
			"NotoSansCanadianAboriginal",
			"NotoSansCham",
			"NotoSansCoptic",
			"NotoSansJavanese",
			"NotoSansKayahLi",
			"NotoSansLepcha",
			"NotoSansLimbu",
			"NotoSansLisu",
			"NotoSansMandaic",
			"NotoSansMongolian",
			"NotoSansNewTaiLue",
			"NotoSansNKo",
			"NotoSansOlChiki",
			"NotoSansOsage",
			"NotoSansSaurashtra",
			"NotoSansSundanese",
			"NotoSansSymbols",
			"NotoSansSymbols2",
			"NotoSansSylotiNagri",
			"NotoSansTagalog",
			"NotoSansTagbanwa",
			"NotoSansTaiLe",
			"NotoSansTaiTham",
			"NotoSansTaiViet",
			"NotoSansTifinagh",
			"NotoSansVai",
			"NotoSansYi",
		},
	},
	{
		Name:       "regular+bold",
		Variations: []font.Variation{font.Regular, font.Bold},
		Families: []string{
			"NotoSansArabicUI",
			"NotoSansArmenian",
			"NotoSansBengaliUI",
			"NotoSansCherokee",
			"NotoSansDevanagariUI",
			"NotoSansEthiopic",
			"NotoSansGeorgian",
			"NotoSansGujaratiUI",
			"NotoSansGurmukhiUI",
			"NotoSansHebrew",
			"NotoSansKannadaUI",
			"NotoSansKhmerUI",
			"NotoSansLaoUI",
			"NotoSansMalayalamUI",
			"NotoSansMyanmarUI",
			"NotoSansOriyaUI",
			"NotoSansSinhalaUI",
			"NotoSansTamilUI",
			"NotoSansTeluguUI",
			"NotoSansThaana",
			"NotoSansThaiUI",
		},
	},
	{
		Name:       "regular+bold+italic",
		Variations: []font.Variation{font.Regular, font.Bold, font.Italic},
		Families: []string{
			"NotoSans",
		},
	},
	{
		Name:       "regular+black",
		Variations: []font.Variation{font.Regular, font.Black},
		Families: []string{
			"NotoSansSyriac",
		},
	},
}

// RunManifest resolves every category family against the remote manifest and downloads it.
func (p *Provisioner) RunManifest(ctx context.Context) (*Result, error) {
	res := &Result{}

	release, err := p.prepare(ctx)
	if err != nil {
		return res, err
	}
	defer release()

	m, err := p.downloader.FetchManifest(ctx, p.opts.ManifestURL)
	if err != nil {
		return res, err
	}
	ix := font.NewIndex(m, p.opts.ManifestBase)
	logx.WithContext(ctx).Infow("Fetched manifest",
		logx.Field("url", p.opts.ManifestURL),
		logx.Field("candidates", ix.Len()))

	for _, c := range p.opts.Categories {
		logx.WithContext(ctx).Infow("Downloading category",
			logx.Field("category", c.Name),
			logx.Field("families", len(c.Families)))

		for _, family := range c.Families {
			res.RegularFonts = append(res.RegularFonts, font.DisplayName(family, font.Regular))

			for _, v := range c.Variations {
				filename := font.FileName(family, v, font.DefaultFontFormat)
				url, err := ix.FindFontURL(filename)
				if err != nil {
					return res, fmt.Errorf("resolve %s: %w", filename, err)
				}

				info, err := p.downloader.DownloadToFile(ctx, []string{font.UIQualifiedURL(url, filename)}, filename, p.opts.FontDir)
				if err != nil {
					return res, err
				}
				res.add(info)

				if v.IsHeavy() {
					res.BoldFonts = append(res.BoldFonts, font.DisplayName(family, v))
				}
			}
		}
	}

	if err := p.fetchExtras(ctx, res); err != nil {
		return res, err
	}

	return res, nil
}
