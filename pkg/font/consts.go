package font

const (
	// DefaultUserAgent identifies the tool to font mirrors.
	DefaultUserAgent = "get-fonts/carto-fonts"

	// DefaultManifestURL lists every published Noto font file.
	DefaultManifestURL = "https://notofonts.github.io/noto.json"

	// DefaultManifestBase is prefixed to "script/path" manifest keys to form a download URL.
	DefaultManifestBase = "https://notofonts.github.io/"

	// DefaultFontFormat is the extension of script fonts built from the YAML mapping
	DefaultFontFormat = "ttf"

	// UnhintedMarker selects the unhinted builds among manifest candidates.
	UnhintedMarker = "unhinted"

	// UIQualifier marks the UI variant of a family (tighter vertical metrics).
	UIQualifier = "UI"
)

// Stylesheet markers. Font names are written between each opening and closing marker.
const (
	RegularOpenMarker  = "/* {regular fonts} */"
	RegularCloseMarker = "/* {/regular fonts} */"
	BoldOpenMarker     = "/* {bold fonts} */"
	BoldCloseMarker    = "/* {/bold fonts} */"
)

// Baseline names are listed in the stylesheet by hand as the fallback default,
// so the patcher never inserts them again.
const (
	BaselineRegular = "Noto Sans Regular"
	BaselineBold    = "Noto Sans Bold"
)

// StylesheetIndent prefixes every generated font-name line.
const StylesheetIndent = "                "
