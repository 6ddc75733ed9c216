package font

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		script    string
		variation Variation
		want      string
	}{
		{"NotoSansCherokee", Bold, "Noto Sans Cherokee Bold"},
		{"NotoSans", Regular, "Noto Sans Regular"},
		{"NotoSansNKo", Regular, "Noto Sans NKo Regular"},
		{"NotoSansSymbols2", Regular, "Noto Sans Symbols2 Regular"},
		{"NotoSansSyriac", Black, "Noto Sans Syriac Black"},
		{"NotoSansAdlamUnjoined", Italic, "Noto Sans Adlam Unjoined Italic"},
	}

	for _, tt := range tests {
		t.Run(tt.script+"/"+string(tt.variation), func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayName(tt.script, tt.variation))
		})
	}
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Bold", Capitalize("bold"))
	assert.Equal(t, "Bold", Capitalize("BOLD"))
	assert.Equal(t, "Regular", Capitalize("Regular"))
	assert.Equal(t, "", Capitalize(""))
}

func TestParseVariation(t *testing.T) {
	v, err := ParseVariation("Black")
	require.NoError(t, err)
	assert.Equal(t, Black, v)

	_, err = ParseVariation("condensed")
	assert.Error(t, err)
}

func TestDescriptor(t *testing.T) {
	d := NewDescriptor("NotoSansCherokee",
		[]string{"https://mirror-a.example/", "https://mirror-b.example/hinted/"},
		Regular, Bold)

	t.Run("RegularAlwaysFirst", func(t *testing.T) {
		assert.Equal(t, []Variation{Regular, Bold}, d.Variations)
	})

	t.Run("Filename", func(t *testing.T) {
		assert.Equal(t, "NotoSansCherokee-Regular.ttf", d.Filename(Regular))
		assert.Equal(t, "NotoSansCherokee-Bold.ttf", d.Filename(Bold))
	})

	t.Run("CandidateURLsKeepPrefixOrder", func(t *testing.T) {
		assert.Equal(t, []string{
			"https://mirror-a.example/NotoSansCherokee-Bold.ttf",
			"https://mirror-b.example/hinted/NotoSansCherokee-Bold.ttf",
		}, d.CandidateURLs(Bold))
	})
}

func TestVariationIsHeavy(t *testing.T) {
	assert.True(t, Bold.IsHeavy())
	assert.True(t, Black.IsHeavy())
	assert.False(t, Regular.IsHeavy())
	assert.False(t, Italic.IsHeavy())
}
