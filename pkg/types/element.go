package types

// ElementKind is the management API "type" of an element.
type ElementKind string

const (
	KindText           ElementKind = "text"
	KindNumber         ElementKind = "number"
	KindDateTime       ElementKind = "date_time"
	KindAsset          ElementKind = "asset"
	KindRichText       ElementKind = "rich_text"
	KindMultipleChoice ElementKind = "multiple_choice"
	KindURLSlug        ElementKind = "url_slug"
	KindCustom         ElementKind = "custom"
	KindTaxonomy       ElementKind = "taxonomy"
	KindLinkedItems    ElementKind = "modular_content"
	KindSubpages       ElementKind = "subpages"
	KindSnippet        ElementKind = "snippet"
	KindGuidelines     ElementKind = "guidelines"
)

// ElementBase holds the fields every element kind shares.
type ElementBase struct {
	ID         string
	Codename   string
	Name       string
	Guidelines string
	Required   bool
}

// Element is one field definition of a content type or snippet. The set of
// implementations is closed; switch on the concrete type to handle a kind.
type Element interface {
	Base() ElementBase
	Kind() ElementKind
	element()
}

func (b ElementBase) Base() ElementBase { return b }
func (ElementBase) element()            {}

type TextElement struct{ ElementBase }

type NumberElement struct{ ElementBase }

type DateTimeElement struct{ ElementBase }

type AssetElement struct{ ElementBase }

type RichTextElement struct{ ElementBase }

type URLSlugElement struct{ ElementBase }

type CustomElement struct{ ElementBase }

type GuidelinesElement struct{ ElementBase }

// MultipleChoiceOption is one selectable value of a multiple choice element.
type MultipleChoiceOption struct {
	ID       string `json:"id,omitempty"`
	Codename string `json:"codename,omitempty"`
	Name     string `json:"name"`
}

type MultipleChoiceElement struct {
	ElementBase
	Options []MultipleChoiceOption
}

// TaxonomyElement constrains values to the terms of one taxonomy group.
type TaxonomyElement struct {
	ElementBase
	TaxonomyGroup Reference
}

// LinkedItemsElement references other content items. An empty
// AllowedContentTypes means any content type is allowed.
type LinkedItemsElement struct {
	ElementBase
	AllowedContentTypes []Reference
}

// SubpagesElement behaves like LinkedItemsElement for page hierarchies.
type SubpagesElement struct {
	ElementBase
	AllowedContentTypes []Reference
}

// SnippetElement merges the elements of the referenced snippet into its owner.
type SnippetElement struct {
	ElementBase
	Snippet Reference
}

// UnknownElement keeps elements of kinds this version does not know about.
type UnknownElement struct {
	ElementBase
	Type string
}

func (TextElement) Kind() ElementKind           { return KindText }
func (NumberElement) Kind() ElementKind         { return KindNumber }
func (DateTimeElement) Kind() ElementKind       { return KindDateTime }
func (AssetElement) Kind() ElementKind          { return KindAsset }
func (RichTextElement) Kind() ElementKind       { return KindRichText }
func (URLSlugElement) Kind() ElementKind        { return KindURLSlug }
func (CustomElement) Kind() ElementKind         { return KindCustom }
func (GuidelinesElement) Kind() ElementKind     { return KindGuidelines }
func (MultipleChoiceElement) Kind() ElementKind { return KindMultipleChoice }
func (TaxonomyElement) Kind() ElementKind       { return KindTaxonomy }
func (LinkedItemsElement) Kind() ElementKind    { return KindLinkedItems }
func (SubpagesElement) Kind() ElementKind       { return KindSubpages }
func (SnippetElement) Kind() ElementKind        { return KindSnippet }
func (e UnknownElement) Kind() ElementKind      { return ElementKind(e.Type) }
