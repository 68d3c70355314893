// Package schema indexes a fetched snapshot so elements, which only carry ids,
// can be resolved to the entities they reference.
package schema

import (
	"fmt"

	"github.com/yourorg/kontentgen/pkg/types"
)

// EntityKind names the kind of entity a reference points at.
type EntityKind string

const (
	KindContentType EntityKind = "content type"
	KindSnippet     EntityKind = "content type snippet"
	KindTaxonomy    EntityKind = "taxonomy group"
)

// UnresolvedReferenceError reports an id with no matching entity in the
// snapshot. It always aborts generation.
type UnresolvedReferenceError struct {
	Kind EntityKind
	ID   string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("unresolved %s reference: no %s with id '%s' in the fetched schema", e.Kind, e.Kind, e.ID)
}

// Index maps ids to entities. It is built once per run and never mutated.
type Index struct {
	types      map[string]*types.ContentType
	snippets   map[string]*types.ContentTypeSnippet
	taxonomies map[string]*types.TaxonomyGroup
}

// New builds the index. Later duplicates of an id overwrite earlier ones.
func New(contentTypes []types.ContentType, snippets []types.ContentTypeSnippet, taxonomies []types.TaxonomyGroup) *Index {
	idx := &Index{
		types:      make(map[string]*types.ContentType, len(contentTypes)),
		snippets:   make(map[string]*types.ContentTypeSnippet, len(snippets)),
		taxonomies: make(map[string]*types.TaxonomyGroup, len(taxonomies)),
	}
	for i := range contentTypes {
		idx.types[contentTypes[i].ID] = &contentTypes[i]
	}
	for i := range snippets {
		idx.snippets[snippets[i].ID] = &snippets[i]
	}
	for i := range taxonomies {
		idx.taxonomies[taxonomies[i].ID] = &taxonomies[i]
	}
	return idx
}

// FromSnapshot indexes the entities of snap.
func FromSnapshot(snap *types.Snapshot) *Index {
	return New(snap.Types, snap.Snippets, snap.Taxonomies)
}

func (i *Index) ContentType(id string) (*types.ContentType, error) {
	if t, ok := i.types[id]; ok {
		return t, nil
	}
	return nil, &UnresolvedReferenceError{Kind: KindContentType, ID: id}
}

func (i *Index) Snippet(id string) (*types.ContentTypeSnippet, error) {
	if s, ok := i.snippets[id]; ok {
		return s, nil
	}
	return nil, &UnresolvedReferenceError{Kind: KindSnippet, ID: id}
}

func (i *Index) Taxonomy(id string) (*types.TaxonomyGroup, error) {
	if g, ok := i.taxonomies[id]; ok {
		return g, nil
	}
	return nil, &UnresolvedReferenceError{Kind: KindTaxonomy, ID: id}
}
