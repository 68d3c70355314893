package generator

import (
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/yourorg/kontentgen/internal/naming"
	"github.com/yourorg/kontentgen/pkg/types"
)

// tsObject is an object literal; entry values are string, bool, nil
// (rendered as undefined) or *tsObject.
type tsObject struct {
	entries []tsEntry
}

type tsEntry struct {
	key     string
	comment string
	value   any
}

func (o *tsObject) set(key string, value any) *tsObject {
	o.entries = append(o.entries, tsEntry{key: key, value: value})
	return o
}

// keyed adds an entry keyed by the camel-cased codename (or name), making the
// key unique within o. Entries are sorted by key when rendered.
func (o *tsObject) keyed(codename, name, id string, value *tsObject) {
	key := naming.CamelCase.Apply(codename)
	if key == "" {
		key = naming.CamelCase.Apply(name)
	}
	if key == "" {
		key = naming.CamelCase.Apply(id)
	}
	if key == "" || (key[0] >= '0' && key[0] <= '9') {
		key = "_" + key
	}
	base := key
	for n := 2; o.has(key); n++ {
		key = base + strconv.Itoa(n)
	}
	comment := name
	if comment == "" {
		comment = codename
	}
	o.entries = append(o.entries, tsEntry{key: key, comment: comment, value: value})
}

func (o *tsObject) has(key string) bool {
	for _, e := range o.entries {
		if e.key == key {
			return true
		}
	}
	return false
}

func (o *tsObject) write(b *strings.Builder, indent string, sorted bool) {
	if len(o.entries) == 0 {
		b.WriteString("{}")
		return
	}
	entries := o.entries
	if sorted {
		entries = append([]tsEntry(nil), entries...)
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
	}
	b.WriteString("{\n")
	inner := indent + "    "
	for i, e := range entries {
		if e.comment != "" {
			if i > 0 {
				b.WriteString("\n")
			}
			writeDoc(b, inner, e.comment)
		}
		fmt.Fprintf(b, "%s%s: ", inner, propertyKey(e.key))
		switch v := e.value.(type) {
		case string:
			b.WriteString(quote(v))
		case bool:
			b.WriteString(strconv.FormatBool(v))
		case *tsObject:
			v.write(b, inner, v.isKeyed())
		default:
			b.WriteString("undefined")
		}
		b.WriteString(",\n")
	}
	b.WriteString(indent)
	b.WriteString("}")
}

func (o *tsObject) isKeyed() bool {
	return len(o.entries) > 0 && o.entries[0].comment != ""
}

func optional(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// projectFacet is one generated project-level constant.
type projectFacet struct {
	file  string
	name  string
	value *tsObject
}

func projectFacets(snap *types.Snapshot, export types.ExportSettings) []projectFacet {
	var facets []projectFacet
	if export.Languages {
		obj := &tsObject{}
		for _, l := range snap.Languages {
			entry := (&tsObject{}).
				set("codename", l.Codename).
				set("id", l.ID).
				set("isActive", l.IsActive).
				set("isDefault", l.IsDefault)
			if l.FallbackTo != nil && l.FallbackTo.ID != "" {
				entry.set("fallbackLanguageId", l.FallbackTo.ID)
			}
			entry.set("name", l.Name)
			obj.keyed(l.Codename, l.Name, l.ID, entry)
		}
		facets = append(facets, projectFacet{file: "languages", name: "languages", value: obj})
	}
	if export.Collections {
		obj := &tsObject{}
		for _, c := range snap.Collections {
			obj.keyed(c.Codename, c.Name, c.ID, identity(c.Codename, c.ID, c.Name))
		}
		facets = append(facets, projectFacet{file: "collections", name: "collections", value: obj})
	}
	if export.Workflows {
		obj := &tsObject{}
		for _, w := range snap.Workflows {
			steps := &tsObject{}
			for _, s := range w.Steps {
				steps.keyed(s.Codename, s.Name, s.ID, identity(s.Codename, s.ID, s.Name))
			}
			obj.keyed(w.Codename, w.Name, w.ID, identity(w.Codename, w.ID, w.Name).set("steps", steps))
		}
		facets = append(facets, projectFacet{file: "workflows", name: "workflows", value: obj})
	}
	if export.Roles {
		obj := &tsObject{}
		for _, r := range snap.Roles {
			entry := (&tsObject{}).
				set("codename", optional(r.Codename)).
				set("id", r.ID).
				set("name", r.Name)
			obj.keyed(r.Codename, r.Name, r.ID, entry)
		}
		facets = append(facets, projectFacet{file: "roles", name: "roles", value: obj})
	}
	if export.AssetFolders {
		facets = append(facets, projectFacet{file: "assetFolders", name: "assetFolders", value: assetFolders(snap.AssetFolders)})
	}
	if export.Webhooks {
		obj := &tsObject{}
		for _, w := range snap.Webhooks {
			entry := (&tsObject{}).
				set("enabled", w.Enabled).
				set("id", w.ID).
				set("name", w.Name).
				set("url", w.URL)
			obj.keyed("", w.Name, w.ID, entry)
		}
		facets = append(facets, projectFacet{file: "webhooks", name: "webhooks", value: obj})
	}
	return facets
}

func identity(codename, id, name string) *tsObject {
	return (&tsObject{}).set("codename", codename).set("id", id).set("name", name)
}

func assetFolders(folders []types.AssetFolder) *tsObject {
	obj := &tsObject{}
	for _, f := range folders {
		entry := identity(f.Codename, f.ID, f.Name)
		if f.ExternalID != "" {
			entry.set("externalId", f.ExternalID)
		}
		entry.set("folders", assetFolders(f.Folders))
		obj.keyed(f.Codename, f.Name, f.ID, entry)
	}
	return obj
}

// EmitProjectFacets renders one constant file per enabled project facet.
func EmitProjectFacets(snap *types.Snapshot, export types.ExportSettings, ctx *Context) ([]EmittedFile, error) {
	header := []string{ctx.Note}
	if p := snap.Project; p != nil {
		header = append(header, "", "Project name: "+p.Name)
		if p.Environment != "" {
			header = append(header, "Environment: "+p.Environment)
		}
		header = append(header, "Project Id: "+p.ID)
	} else if snap.ProjectID != "" {
		header = append(header, "", "Project Id: "+snap.ProjectID)
	}

	var files []EmittedFile
	for _, f := range projectFacets(snap, export) {
		b := &strings.Builder{}
		writeDoc(b, "", header...)
		fmt.Fprintf(b, "export const %s = ", f.name)
		f.value.write(b, "", true)
		b.WriteString(" as const;\n")

		code, err := ctx.format(b.String())
		if err != nil {
			return nil, fmt.Errorf("project facet '%s': format: %w", f.name, err)
		}
		files = append(files, EmittedFile{
			Path: path.Join(ctx.Folders.Project, f.file+string(naming.TSExtension)),
			Code: code,
		})
	}
	return files, nil
}
