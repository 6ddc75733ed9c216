package font

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBase = "https://fonts.example/"

func testManifest() Manifest {
	return Manifest{
		"latin-greek-cyrillic": {
			Families: map[string]ManifestFamily{
				"Noto Sans": {Files: []string{
					"fonts/NotoSans/unhinted/ttf/NotoSans-Regular.ttf",
					"fonts/NotoSans/unhinted/ttf/NotoSans-Bold.ttf",
					"fonts/NotoSans/hinted/ttf/NotoSans-Regular.ttf",
				}},
			},
		},
		"bengali": {
			Families: map[string]ManifestFamily{
				"Noto Sans Bengali": {Files: []string{
					"fonts/NotoSansBengali/unhinted/ttf/NotoSansBengali-Regular.ttf",
					"fonts/NotoSansBengali/hinted/ttf/NotoSansBengali-Regular.ttf",
				}},
			},
		},
		"arabic": {
			Families: map[string]ManifestFamily{
				"Noto Sans Arabic": {Files: []string{
					"fonts/NotoSansArabic/unhinted/ttf/NotoSansArabic-Regular.ttf",
				}},
				"Noto Sans Arabic UI": {Files: []string{
					"fonts/NotoSansArabicUI/unhinted/ttf/NotoSansArabicUI-Regular.ttf",
				}},
			},
		},
		"syriac": {
			Families: map[string]ManifestFamily{
				"Noto Sans Syriac": {Files: []string{
					"fonts/NotoSansSyriac/unhinted/ttf/NotoSansSyriac-Black.ttf",
					"fonts/NotoSansSyriac/unhinted/slim-variable-ttf/NotoSansSyriac-Black.ttf",
				}},
			},
		},
	}
}

func TestIndex(t *testing.T) {
	ix := NewIndex(testManifest(), testBase)

	t.Run("FlattensAndSorts", func(t *testing.T) {
		assert.Equal(t, 9, ix.Len())
		assert.IsIncreasing(t, ix.Candidates())
		assert.Contains(t, ix.Candidates(), "bengali/fonts/NotoSansBengali/unhinted/ttf/NotoSansBengali-Regular.ttf")
	})

	t.Run("SingleUnhintedMatch", func(t *testing.T) {
		url, err := ix.FindFontURL("NotoSans-Regular.ttf")
		require.NoError(t, err)
		assert.Equal(t, testBase+"latin-greek-cyrillic/fonts/NotoSans/unhinted/ttf/NotoSans-Regular.ttf", url)
	})

	t.Run("UIQualifiedFamilyMatchesDirectly", func(t *testing.T) {
		url, err := ix.FindFontURL("NotoSansArabicUI-Regular.ttf")
		require.NoError(t, err)
		assert.Equal(t, testBase+"arabic/fonts/NotoSansArabicUI/unhinted/ttf/NotoSansArabicUI-Regular.ttf", url)
	})

	t.Run("UIFallback", func(t *testing.T) {
		url, err := ix.FindFontURL("NotoSansBengaliUI-Regular.ttf")
		require.NoError(t, err)
		assert.Equal(t, testBase+"bengali/fonts/NotoSansBengali/unhinted/ttf/NotoSansBengali-Regular.ttf", url)
	})

	t.Run("Ambiguous", func(t *testing.T) {
		_, err := ix.FindFontURL("NotoSansSyriac-Black.ttf")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrFontAmbiguous))

		var lookupErr *LookupError
		require.True(t, errors.As(err, &lookupErr))
		assert.Len(t, lookupErr.Matches, 2)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := ix.FindFontURL("NotoSansCherokee-Regular.ttf")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrFontNotFound))
		assert.Contains(t, err.Error(), "NotoSansCherokee-Regular.ttf")
	})

	t.Run("NotFoundAfterUIRetry", func(t *testing.T) {
		_, err := ix.FindFontURL("NotoSansTamilUI-Bold.ttf")
		assert.ErrorIs(t, err, ErrFontNotFound)
		assert.Contains(t, err.Error(), "NotoSansTamilUI-Bold.ttf")
	})

	t.Run("HintedBuildsIgnored", func(t *testing.T) {
		hinted := NewIndex(Manifest{
			"thai": {Families: map[string]ManifestFamily{
				"Noto Sans Thai": {Files: []string{"fonts/NotoSansThai/hinted/ttf/NotoSansThai-Regular.ttf"}},
			}},
		}, testBase)
		_, err := hinted.FindFontURL("NotoSansThai-Regular.ttf")
		assert.ErrorIs(t, err, ErrFontNotFound)
	})
}

func TestUIQualifiedURL(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		destination string
		want        string
	}{
		{
			name:        "Regular",
			url:         testBase + "bengali/fonts/NotoSansBengali/unhinted/ttf/NotoSansBengali-Regular.ttf",
			destination: "NotoSansBengaliUI-Regular.ttf",
			want:        testBase + "bengali/fonts/NotoSansBengaliUI/unhinted/ttf/NotoSansBengaliUI-Regular.ttf",
		},
		{
			name:        "Bold",
			url:         testBase + "tamil/fonts/NotoSansTamil/unhinted/ttf/NotoSansTamil-Bold.ttf",
			destination: "NotoSansTamilUI-Bold.ttf",
			want:        testBase + "tamil/fonts/NotoSansTamilUI/unhinted/ttf/NotoSansTamilUI-Bold.ttf",
		},
		{
			name:        "AlreadyQualified",
			url:         testBase + "arabic/fonts/NotoSansArabicUI/unhinted/ttf/NotoSansArabicUI-Regular.ttf",
			destination: "NotoSansArabicUI-Regular.ttf",
			want:        testBase + "arabic/fonts/NotoSansArabicUI/unhinted/ttf/NotoSansArabicUI-Regular.ttf",
		},
		{
			name:        "PlainDestination",
			url:         testBase + "thai/fonts/NotoSansThai/unhinted/ttf/NotoSansThai-Regular.ttf",
			destination: "NotoSansThai-Regular.ttf",
			want:        testBase + "thai/fonts/NotoSansThai/unhinted/ttf/NotoSansThai-Regular.ttf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UIQualifiedURL(tt.url, tt.destination))
		})
	}
}

func TestFetchManifest(t *testing.T) {
	const body = `{
  "bengali": {
    "name": "Bengali",
    "families": {
      "Noto Sans Bengali": {
        "latest_release": {"version": "2.003"},
        "files": ["fonts/NotoSansBengali/unhinted/ttf/NotoSansBengali-Regular.ttf"]
      }
    }
  }
}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	defer srv.Close()

	m, err := NewDownloader().FetchManifest(context.Background(), srv.URL+"/noto.json")
	require.NoError(t, err)
	require.Contains(t, m, "bengali")
	assert.Equal(t, "Bengali", m["bengali"].Name)
	assert.Equal(t,
		[]string{"fonts/NotoSansBengali/unhinted/ttf/NotoSansBengali-Regular.ttf"},
		m["bengali"].Families["Noto Sans Bengali"].Files)

	t.Run("BadStatus", func(t *testing.T) {
		missing := httptest.NewServer(http.NotFoundHandler())
		defer missing.Close()
		_, err := NewDownloader().FetchManifest(context.Background(), missing.URL)
		assert.Error(t, err)
	})

	t.Run("BadJSON", func(t *testing.T) {
		_, err := ParseManifest([]byte(`{"bengali": [`))
		assert.Error(t, err)
	})
}
