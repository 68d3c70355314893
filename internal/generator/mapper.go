package generator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yourorg/kontentgen/pkg/types"
)

// anyItemType is the item type used when a linked items element allows any type.
const anyItemType = "IContentItem"

// ExtendedElement is an element after type mapping and name resolution.
// An empty TypeExpr means the kind produces no field (snippet, guidelines,
// unknown kinds); an empty FieldName means the name resolver dropped it.
type ExtendedElement struct {
	Kind          types.ElementKind
	Source        types.Element
	TypeExpr      string
	FieldName     string
	// OriginSnippet is set on fields merged in from a snippet. Fields declared
	// in the snippet's own file leave it nil.
	OriginSnippet *types.ContentTypeSnippet
}

// HasField reports whether the element produces a generated property.
func (e ExtendedElement) HasField() bool {
	return e.TypeExpr != "" && e.FieldName != ""
}

// MapElement maps one element to its generated type expression and field name.
func MapElement(el types.Element, ctx *Context) (ExtendedElement, error) {
	ext := ExtendedElement{Kind: el.Kind(), Source: el}
	if name, ok := ctx.Names.FieldName(el); ok {
		ext.FieldName = name
	}

	switch e := el.(type) {
	case types.TextElement:
		ext.TypeExpr = "TextElement"
	case types.NumberElement:
		ext.TypeExpr = "NumberElement"
	case types.DateTimeElement:
		ext.TypeExpr = "DateTimeElement"
	case types.AssetElement:
		ext.TypeExpr = "AssetsElement"
	case types.RichTextElement:
		ext.TypeExpr = "RichTextElement"
	case types.MultipleChoiceElement:
		ext.TypeExpr = "MultipleChoiceElement"
	case types.URLSlugElement:
		ext.TypeExpr = "UrlSlugElement"
	case types.CustomElement:
		ext.TypeExpr = "CustomElement"
	case types.TaxonomyElement:
		name, err := taxonomyTypeName(e, ctx)
		if err != nil {
			return ext, err
		}
		if name == "" {
			ext.TypeExpr = "TaxonomyElement"
		} else {
			ext.TypeExpr = "TaxonomyElement<" + name + ">"
		}
	case types.LinkedItemsElement:
		names, err := allowedTypeNames(e.Base(), e.AllowedContentTypes, ctx)
		if err != nil {
			return ext, err
		}
		ext.TypeExpr = "LinkedItemsElement<" + strings.Join(names, " | ") + ">"
	case types.SubpagesElement:
		names, err := allowedTypeNames(e.Base(), e.AllowedContentTypes, ctx)
		if err != nil {
			return ext, err
		}
		ext.TypeExpr = "LinkedItemsElement<" + strings.Join(names, " | ") + ">"
	case types.SnippetElement, types.GuidelinesElement, types.UnknownElement:
		// no field
	}
	return ext, nil
}

// ExtendedElements maps every element of owner, ordered by resolved field name.
func ExtendedElements(owner Owner, ctx *Context) ([]ExtendedElement, error) {
	elements := owner.Elements()
	out := make([]ExtendedElement, 0, len(elements))
	for _, el := range elements {
		ext, err := MapElement(el, ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, ext)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].FieldName < out[j].FieldName })
	return out, nil
}

func taxonomyTypeName(e types.TaxonomyElement, ctx *Context) (string, error) {
	if e.TaxonomyGroup.ID == "" {
		return "", fmt.Errorf("invalid taxonomy group id for taxonomy element '%s'", e.ID)
	}
	group, err := ctx.Index.Taxonomy(e.TaxonomyGroup.ID)
	if err != nil {
		return "", fmt.Errorf("element '%s' (%s): %w", e.Codename, e.ID, err)
	}
	return ctx.Names.TaxonomyName(*group), nil
}

// allowedTypeNames resolves an allow-list to generated type names. Duplicates
// are dropped and an empty list yields the unconstrained item type.
func allowedTypeNames(base types.ElementBase, allowed []types.Reference, ctx *Context) ([]string, error) {
	if len(allowed) == 0 {
		return []string{anyItemType}, nil
	}
	seen := make(map[string]struct{}, len(allowed))
	names := make([]string, 0, len(allowed))
	for _, ref := range allowed {
		t, err := ctx.Index.ContentType(ref.ID)
		if err != nil {
			return nil, fmt.Errorf("element '%s' (%s): %w", base.Codename, base.ID, err)
		}
		name := ctx.Names.TypeName(*t)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names, nil
}
