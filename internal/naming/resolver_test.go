package naming

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/kontentgen/pkg/types"
)

func TestCaseApply(t *testing.T) {
	tests := []struct {
		in   string
		c    Case
		want string
	}{
		{"movie_detail", PascalCase, "MovieDetail"},
		{"movie_detail", CamelCase, "movieDetail"},
		{"MovieDetail", SnakeCase, "movie_detail"},
		{"URLSlug", SnakeCase, "url_slug"},
		{"release date", CamelCase, "releaseDate"},
		{"item2name", CamelCase, "item2Name"},
		{"movie_detail", Unchanged, "movie_detail"},
		{"__", PascalCase, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.c.Apply(tt.in), "%s(%q)", tt.c, tt.in)
	}
}

func TestParseCase(t *testing.T) {
	c, err := ParseCase("camelCase")
	require.NoError(t, err)
	assert.Equal(t, CamelCase, c)

	c, err = ParseCase("")
	require.NoError(t, err)
	assert.Equal(t, Unchanged, c)

	_, err = ParseCase("kebabCase")
	require.Error(t, err)
}

func TestDefaultNames(t *testing.T) {
	r := NewResolver(Config{})
	movie := types.ContentType{ID: "c1", Codename: "movie_detail", Name: "Movie detail"}

	assert.Equal(t, "MovieDetail", r.TypeName(movie))
	assert.Equal(t, "movie_detail.ts", r.TypeFileName(movie, TSExtension))
	assert.Equal(t, "movie_detail", r.TypeFileName(movie, NoExtension))
	assert.Equal(t, "movie_detail.js", r.TypeFileName(movie, BrowserResolution.ImportExtension()))

	name, ok := r.FieldName(types.TextElement{ElementBase: types.ElementBase{Codename: "release_date"}})
	require.True(t, ok)
	assert.Equal(t, "releaseDate", name)

	assert.Equal(t, "Genres", r.TaxonomyName(types.TaxonomyGroup{Codename: "genres"}))
	assert.Empty(t, r.Describe())
}

func TestNameFallsBackToDisplayName(t *testing.T) {
	r := NewResolver(Config{})
	snippet := types.ContentTypeSnippet{ID: "s1", Name: "SEO metadata"}

	assert.Equal(t, "SeoMetadata", r.SnippetName(snippet))
	assert.Equal(t, "seo_metadata.ts", r.SnippetFileName(snippet, TSExtension))
}

func TestIdentifierStartingWithDigit(t *testing.T) {
	r := NewResolver(Config{})
	assert.Equal(t, "_3DModel", r.TypeName(types.ContentType{Codename: "3d_model"}))
}

func TestCustomStrategies(t *testing.T) {
	dropSecret := func(el types.Element) (string, bool) {
		if el.Base().Codename == "secret" {
			return "", false
		}
		return el.Base().Codename, true
	}
	r := NewResolver(Config{
		ContentType:  UseFunc(func(t types.ContentType) string { return "I" + strings.ToUpper(t.Codename) }),
		TaxonomyFile: UseCase[types.TaxonomyGroup](PascalCase),
		Element:      FieldStrategy{Func: dropSecret},
	})

	assert.Equal(t, "IMOVIE", r.TypeName(types.ContentType{Codename: "movie"}))
	assert.Equal(t, "Genres.ts", r.TaxonomyFileName(types.TaxonomyGroup{Codename: "genres"}, TSExtension))

	_, ok := r.FieldName(types.TextElement{ElementBase: types.ElementBase{Codename: "secret"}})
	assert.False(t, ok)
	name, ok := r.FieldName(types.TextElement{ElementBase: types.ElementBase{Codename: "title_text"}})
	require.True(t, ok)
	assert.Equal(t, "title_text", name)

	assert.Equal(t, []Usage{
		{Target: "content type elements", Strategy: "custom"},
		{Target: "content types", Strategy: "custom"},
		{Target: "taxonomy filenames", Strategy: "pascalCase"},
	}, r.Describe())
}

func TestParseModuleResolution(t *testing.T) {
	m, err := ParseModuleResolution("")
	require.NoError(t, err)
	assert.Equal(t, NodeResolution, m)
	assert.Equal(t, NoExtension, m.ImportExtension())

	m, err = ParseModuleResolution("browser")
	require.NoError(t, err)
	assert.Equal(t, JSExtension, m.ImportExtension())

	_, err = ParseModuleResolution("deno")
	require.Error(t, err)
}
