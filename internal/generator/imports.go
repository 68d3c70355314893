package generator

import (
	"fmt"
	"sort"

	"github.com/yourorg/kontentgen/pkg/types"
)

// ReferenceDescriptor is one cross-file type import.
type ReferenceDescriptor struct {
	TypeName string
	Path     string
}

// Statement renders the descriptor as a type-only import.
func (d ReferenceDescriptor) Statement() string {
	return fmt.Sprintf("import { type %s } from '%s';", d.TypeName, d.Path)
}

// References is everything a model file pulls in from other generated files.
type References struct {
	Imports []ReferenceDescriptor
	// SnippetExtensions are the snippet type names the owner is intersected with.
	SnippetExtensions []string
	Elements          []ExtendedElement
}

// idSet remembers ids already turned into an import.
type idSet map[string]struct{}

func (s idSet) add(id string) bool {
	if _, ok := s[id]; ok {
		return false
	}
	s[id] = struct{}{}
	return true
}

// ComputeReferences discovers the types, snippets and taxonomy groups the
// owner depends on. Each target is imported once and the owner never imports
// itself. Taxonomy and linked-items elements dropped by the name resolver
// contribute nothing; snippet elements always extend the owner since they
// never produce a field of their own. Imports are sorted by statement text.
func ComputeReferences(owner Owner, ctx *Context) (References, error) {
	elements, err := ExtendedElements(owner, ctx)
	if err != nil {
		return References{}, err
	}

	var (
		imports    []ReferenceDescriptor
		extensions []string
		typeIDs    = idSet{}
		snippetIDs = idSet{}
		taxIDs     = idSet{}
		from       = owner.folder(ctx.Folders)
		ext        = ctx.importExt()
	)
	// self references never need an import
	if !owner.IsSnippet() {
		typeIDs.add(owner.ID())
	}

	for _, el := range elements {
		switch src := el.Source.(type) {
		case types.TaxonomyElement:
			if el.FieldName == "" {
				continue
			}
			group, err := ctx.Index.Taxonomy(src.TaxonomyGroup.ID)
			if err != nil {
				return References{}, err
			}
			if !taxIDs.add(group.ID) {
				continue
			}
			imports = append(imports, ReferenceDescriptor{
				TypeName: ctx.Names.TaxonomyName(*group),
				Path:     importPath(from, ctx.Folders.Taxonomies, ctx.Names.TaxonomyFileName(*group, ext)),
			})
		case types.LinkedItemsElement:
			if el.FieldName == "" {
				continue
			}
			refs, err := typeReferences(src.AllowedContentTypes, typeIDs, from, ctx)
			if err != nil {
				return References{}, err
			}
			imports = append(imports, refs...)
		case types.SubpagesElement:
			if el.FieldName == "" {
				continue
			}
			refs, err := typeReferences(src.AllowedContentTypes, typeIDs, from, ctx)
			if err != nil {
				return References{}, err
			}
			imports = append(imports, refs...)
		case types.SnippetElement:
			if src.Snippet.ID == "" {
				return References{}, fmt.Errorf("invalid snippet id for snippet element '%s'", src.ID)
			}
			snippet, err := ctx.Index.Snippet(src.Snippet.ID)
			if err != nil {
				return References{}, err
			}
			if !snippetIDs.add(snippet.ID) {
				continue
			}
			name := ctx.Names.SnippetName(*snippet)
			imports = append(imports, ReferenceDescriptor{
				TypeName: name,
				Path:     importPath(from, ctx.Folders.Snippets, ctx.Names.SnippetFileName(*snippet, ext)),
			})
			extensions = append(extensions, name)
		}
	}

	sort.SliceStable(imports, func(i, j int) bool { return imports[i].Statement() < imports[j].Statement() })
	return References{Imports: imports, SnippetExtensions: extensions, Elements: elements}, nil
}

func typeReferences(allowed []types.Reference, seen idSet, from string, ctx *Context) ([]ReferenceDescriptor, error) {
	var out []ReferenceDescriptor
	for _, ref := range allowed {
		t, err := ctx.Index.ContentType(ref.ID)
		if err != nil {
			return nil, err
		}
		if !seen.add(t.ID) {
			continue
		}
		out = append(out, ReferenceDescriptor{
			TypeName: ctx.Names.TypeName(*t),
			Path:     importPath(from, ctx.Folders.Types, ctx.Names.TypeFileName(*t, ctx.importExt())),
		})
	}
	return out, nil
}
