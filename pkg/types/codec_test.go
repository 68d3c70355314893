package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeElementKinds(t *testing.T) {
	tests := []struct {
		raw  string
		want Element
	}{
		{`{"type":"text","id":"1","codename":"title","name":"Title","is_required":true,"guidelines":"Short"}`,
			TextElement{ElementBase{ID: "1", Codename: "title", Name: "Title", Guidelines: "Short", Required: true}}},
		{`{"type":"number","id":"2","codename":"n"}`, NumberElement{ElementBase{ID: "2", Codename: "n"}}},
		{`{"type":"date_time","id":"3","codename":"d"}`, DateTimeElement{ElementBase{ID: "3", Codename: "d"}}},
		{`{"type":"asset","id":"4","codename":"a"}`, AssetElement{ElementBase{ID: "4", Codename: "a"}}},
		{`{"type":"rich_text","id":"5","codename":"r"}`, RichTextElement{ElementBase{ID: "5", Codename: "r"}}},
		{`{"type":"url_slug","id":"6","codename":"u"}`, URLSlugElement{ElementBase{ID: "6", Codename: "u"}}},
		{`{"type":"custom","id":"7","codename":"c"}`, CustomElement{ElementBase{ID: "7", Codename: "c"}}},
		{`{"type":"guidelines","id":"8","guidelines":"Read me"}`, GuidelinesElement{ElementBase{ID: "8", Guidelines: "Read me"}}},
		{`{"type":"multiple_choice","id":"9","codename":"m","options":[{"id":"o1","codename":"yes","name":"Yes"}]}`,
			MultipleChoiceElement{ElementBase: ElementBase{ID: "9", Codename: "m"}, Options: []MultipleChoiceOption{{ID: "o1", Codename: "yes", Name: "Yes"}}}},
		{`{"type":"taxonomy","id":"10","codename":"g","taxonomy_group":{"id":"t1"}}`,
			TaxonomyElement{ElementBase: ElementBase{ID: "10", Codename: "g"}, TaxonomyGroup: Reference{ID: "t1"}}},
		{`{"type":"modular_content","id":"11","codename":"l","allowed_content_types":[{"id":"m1"}]}`,
			LinkedItemsElement{ElementBase: ElementBase{ID: "11", Codename: "l"}, AllowedContentTypes: []Reference{{ID: "m1"}}}},
		{`{"type":"subpages","id":"12","codename":"s"}`, SubpagesElement{ElementBase: ElementBase{ID: "12", Codename: "s"}}},
		{`{"type":"snippet","id":"13","codename":"seo","snippet":{"id":"s1"}}`,
			SnippetElement{ElementBase: ElementBase{ID: "13", Codename: "seo"}, Snippet: Reference{ID: "s1"}}},
		{`{"type":"hologram","id":"14","codename":"h"}`, UnknownElement{ElementBase: ElementBase{ID: "14", Codename: "h"}, Type: "hologram"}},
	}
	for _, tt := range tests {
		got, err := DecodeElement([]byte(tt.raw))
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}

func TestUnknownKindKeepsType(t *testing.T) {
	el, err := DecodeElement([]byte(`{"type":"hologram","id":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, ElementKind("hologram"), el.Kind())
}

func TestContentTypeRoundTrip(t *testing.T) {
	raw := `{"id":"m1","codename":"movie","name":"Movie","elements":[` +
		`{"type":"taxonomy","id":"e1","codename":"genre","name":"Genre","taxonomy_group":{"id":"t1"}},` +
		`{"type":"snippet","id":"e2","codename":"seo","snippet":{"id":"s1"}}]}`
	var ct ContentType
	require.NoError(t, json.Unmarshal([]byte(raw), &ct))
	require.Len(t, ct.Elements, 2)

	data, err := json.Marshal(ct)
	require.NoError(t, err)
	var again ContentType
	require.NoError(t, json.Unmarshal(data, &again))
	assert.Equal(t, ct, again)
}

func TestDecodeElementsRejectsMalformed(t *testing.T) {
	var els Elements
	assert.Error(t, json.Unmarshal([]byte(`{"type":"text"}`), &els))
	_, err := DecodeElement([]byte(`not json`))
	assert.Error(t, err)
}
