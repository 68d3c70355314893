package generator

import (
	"time"

	"github.com/yourorg/kontentgen/internal/naming"
	"github.com/yourorg/kontentgen/internal/schema"
	"github.com/yourorg/kontentgen/pkg/types"
)

const testNote = "This file has been auto-generated by 'kontentgen@test'."

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func base(id, codename, name string) types.ElementBase {
	return types.ElementBase{ID: id, Codename: codename, Name: name}
}

// movieSnapshot is a small schema: movies with genres and actors, an article
// type extending an SEO snippet.
func movieSnapshot() *types.Snapshot {
	return &types.Snapshot{
		ProjectID: "p1",
		Project:   &types.ProjectInfo{ID: "p1", Name: "Movie DB", Environment: "Production"},
		Taxonomies: []types.TaxonomyGroup{{
			ID: "t1", Codename: "genres", Name: "Genres",
			Terms: []types.TaxonomyTerm{
				{ID: "t1a", Codename: "drama", Name: "Drama"},
				{ID: "t1b", Codename: "action", Name: "Action", Terms: []types.TaxonomyTerm{
					{ID: "t1c", Codename: "heist", Name: "Heist"},
				}},
			},
		}},
		Snippets: []types.ContentTypeSnippet{{
			ID: "s1", Codename: "seo_metadata", Name: "SEO metadata",
			Elements: types.Elements{
				types.TextElement{ElementBase: types.ElementBase{
					ID: "s1e1", Codename: "meta_title", Name: "Meta title", Guidelines: "Shown in\nsearch results.",
				}},
			},
		}},
		Types: []types.ContentType{
			{
				ID: "m1", Codename: "movie", Name: "Movie",
				Elements: types.Elements{
					types.TextElement{ElementBase: types.ElementBase{ID: "e1", Codename: "title", Name: "Title", Required: true}},
					types.TaxonomyElement{ElementBase: base("e2", "genre", "Genre"), TaxonomyGroup: types.Reference{ID: "t1"}},
					types.LinkedItemsElement{ElementBase: base("e3", "cast", "Cast"), AllowedContentTypes: []types.Reference{{ID: "a1"}, {ID: "a1"}}},
					types.LinkedItemsElement{ElementBase: base("e4", "sequel", "Sequel"), AllowedContentTypes: []types.Reference{{ID: "m1"}}},
				},
			},
			{
				ID: "a1", Codename: "actor", Name: "Actor",
				Elements: types.Elements{
					types.TextElement{ElementBase: base("e5", "name", "Name")},
					types.LinkedItemsElement{ElementBase: base("e6", "movies", "Movies"), AllowedContentTypes: []types.Reference{{ID: "m1"}}},
				},
			},
			{
				ID: "r1", Codename: "article", Name: "Article",
				Elements: types.Elements{
					types.RichTextElement{ElementBase: base("e7", "body", "Body")},
					types.SnippetElement{ElementBase: base("e8", "seo_metadata", "SEO"), Snippet: types.Reference{ID: "s1"}},
					types.GuidelinesElement{ElementBase: base("e9", "editor_notes", "Notes")},
					types.LinkedItemsElement{ElementBase: base("e10", "related", "Related")},
				},
			},
		},
	}
}

func testContext(snap *types.Snapshot, cfg naming.Config) *Context {
	return &Context{
		Index:            schema.FromSnapshot(snap),
		Names:            naming.NewResolver(cfg),
		Folders:          Folders{Types: DefaultTypesFolder, Snippets: DefaultSnippetsFolder, Taxonomies: DefaultTaxonomiesFolder, Project: DefaultProjectFolder},
		ModuleResolution: naming.NodeResolution,
		SDKPackage:       DefaultSDKPackage,
		Note:             testNote,
	}
}

func typeByCodename(snap *types.Snapshot, codename string) *types.ContentType {
	for i := range snap.Types {
		if snap.Types[i].Codename == codename {
			return &snap.Types[i]
		}
	}
	return nil
}
