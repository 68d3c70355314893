package types

import (
	"encoding/json"
	"fmt"
)

// Elements is an element list that (de)serializes using the management API shape.
type Elements []Element

// wireElement is the flat management API representation of any element kind.
type wireElement struct {
	Type                string                 `json:"type"`
	ID                  string                 `json:"id,omitempty"`
	Codename            string                 `json:"codename,omitempty"`
	Name                string                 `json:"name,omitempty"`
	Guidelines          string                 `json:"guidelines,omitempty"`
	IsRequired          bool                   `json:"is_required,omitempty"`
	AllowedContentTypes []Reference            `json:"allowed_content_types,omitempty"`
	TaxonomyGroup       *Reference             `json:"taxonomy_group,omitempty"`
	Snippet             *Reference             `json:"snippet,omitempty"`
	Options             []MultipleChoiceOption `json:"options,omitempty"`
}

// DecodeElement converts one raw management API element into its typed form.
// Kinds this version does not know decode to UnknownElement.
func DecodeElement(data []byte) (Element, error) {
	var w wireElement
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode element: %w", err)
	}
	return w.element(), nil
}

func (w wireElement) element() Element {
	base := ElementBase{
		ID:         w.ID,
		Codename:   w.Codename,
		Name:       w.Name,
		Guidelines: w.Guidelines,
		Required:   w.IsRequired,
	}
	switch ElementKind(w.Type) {
	case KindText:
		return TextElement{base}
	case KindNumber:
		return NumberElement{base}
	case KindDateTime:
		return DateTimeElement{base}
	case KindAsset:
		return AssetElement{base}
	case KindRichText:
		return RichTextElement{base}
	case KindURLSlug:
		return URLSlugElement{base}
	case KindCustom:
		return CustomElement{base}
	case KindGuidelines:
		return GuidelinesElement{base}
	case KindMultipleChoice:
		return MultipleChoiceElement{ElementBase: base, Options: w.Options}
	case KindTaxonomy:
		var group Reference
		if w.TaxonomyGroup != nil {
			group = *w.TaxonomyGroup
		}
		return TaxonomyElement{ElementBase: base, TaxonomyGroup: group}
	case KindLinkedItems:
		return LinkedItemsElement{ElementBase: base, AllowedContentTypes: w.AllowedContentTypes}
	case KindSubpages:
		return SubpagesElement{ElementBase: base, AllowedContentTypes: w.AllowedContentTypes}
	case KindSnippet:
		var snippet Reference
		if w.Snippet != nil {
			snippet = *w.Snippet
		}
		return SnippetElement{ElementBase: base, Snippet: snippet}
	default:
		return UnknownElement{ElementBase: base, Type: w.Type}
	}
}

func encodeElement(el Element) wireElement {
	b := el.Base()
	w := wireElement{
		Type:       string(el.Kind()),
		ID:         b.ID,
		Codename:   b.Codename,
		Name:       b.Name,
		Guidelines: b.Guidelines,
		IsRequired: b.Required,
	}
	switch e := el.(type) {
	case MultipleChoiceElement:
		w.Options = e.Options
	case TaxonomyElement:
		group := e.TaxonomyGroup
		w.TaxonomyGroup = &group
	case LinkedItemsElement:
		w.AllowedContentTypes = e.AllowedContentTypes
	case SubpagesElement:
		w.AllowedContentTypes = e.AllowedContentTypes
	case SnippetElement:
		snippet := e.Snippet
		w.Snippet = &snippet
	}
	return w
}

func (e Elements) MarshalJSON() ([]byte, error) {
	out := make([]wireElement, 0, len(e))
	for _, el := range e {
		if el == nil {
			continue
		}
		out = append(out, encodeElement(el))
	}
	return json.Marshal(out)
}

func (e *Elements) UnmarshalJSON(data []byte) error {
	var raw []wireElement
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode elements: %w", err)
	}
	out := make(Elements, 0, len(raw))
	for _, w := range raw {
		out = append(out, w.element())
	}
	*e = out
	return nil
}
