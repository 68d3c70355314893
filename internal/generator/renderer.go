package generator

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/yourorg/kontentgen/internal/naming"
	"github.com/yourorg/kontentgen/pkg/types"
)

// EmitTaxonomy renders a taxonomy group as a union of its term codenames.
func EmitTaxonomy(group *types.TaxonomyGroup, ctx *Context) (EmittedFile, error) {
	terms := termCodenames(group.Terms)
	union := "string"
	if len(terms) > 0 {
		quoted := make([]string, len(terms))
		for i, t := range terms {
			quoted[i] = quote(t)
		}
		union = strings.Join(quoted, " | ")
	}

	b := &strings.Builder{}
	writeDoc(b, "", ctx.Note, "", group.Name, "Id: "+group.ID, "Codename: "+group.Codename)
	fmt.Fprintf(b, "export type %s = %s;\n", ctx.Names.TaxonomyName(*group), union)

	code, err := ctx.format(b.String())
	if err != nil {
		return EmittedFile{}, fmt.Errorf("taxonomy '%s' (%s): format: %w", group.Codename, group.Name, err)
	}
	return EmittedFile{
		Path: path.Join(ctx.Folders.Taxonomies, ctx.Names.TaxonomyFileName(*group, naming.TSExtension)),
		Code: code,
	}, nil
}

// termCodenames flattens nested terms into a sorted, de-duplicated list.
func termCodenames(terms []types.TaxonomyTerm) []string {
	var all []string
	var walk func([]types.TaxonomyTerm)
	walk = func(ts []types.TaxonomyTerm) {
		for _, t := range ts {
			if t.Codename != "" {
				all = append(all, t.Codename)
			}
			walk(t.Terms)
		}
	}
	walk(terms)
	sort.Strings(all)
	return slices.Compact(all)
}

// EmitBarrel renders index.ts re-exporting every file of one folder. files
// are paths relative to the output dir.
func EmitBarrel(folder string, files []string, ctx *Context) (EmittedFile, error) {
	return barrelFile(folder, fileExports(files, ctx), ctx)
}

// EmitRootBarrel renders the top-level index.ts re-exporting each folder barrel.
func EmitRootBarrel(folders []string, ctx *Context) (EmittedFile, error) {
	return barrelFile("", folderExports(folders, ctx), ctx)
}

func fileExports(files []string, ctx *Context) []string {
	exports := make([]string, 0, len(files))
	for _, f := range files {
		stem := strings.TrimSuffix(path.Base(f), path.Ext(f))
		exports = append(exports, fmt.Sprintf("export * from './%s%s';", stem, ctx.importExt()))
	}
	return exports
}

func folderExports(folders []string, ctx *Context) []string {
	exports := make([]string, 0, len(folders))
	for _, f := range folders {
		target := importPath("", f, "index")
		if ext := ctx.importExt(); ext != naming.NoExtension {
			target += string(ext)
		}
		exports = append(exports, fmt.Sprintf("export * from '%s';", target))
	}
	return exports
}

func barrelFile(folder string, exports []string, ctx *Context) (EmittedFile, error) {
	sort.Strings(exports)
	exports = slices.Compact(exports)
	b := &strings.Builder{}
	writeDoc(b, "", ctx.Note)
	for _, e := range exports {
		b.WriteString(e)
		b.WriteString("\n")
	}
	code, err := ctx.format(b.String())
	if err != nil {
		return EmittedFile{}, fmt.Errorf("barrel '%s': format: %w", folder, err)
	}
	return EmittedFile{Path: path.Join(folder, "index.ts"), Code: code}, nil
}

// writeFile writes f under outputDir, creating folders as needed, and returns
// the path written.
func writeFile(outputDir string, f EmittedFile) (string, error) {
	target := filepath.Join(outputDir, filepath.FromSlash(f.Path))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(target, []byte(f.Code), 0o644); err != nil {
		return "", err
	}
	return target, nil
}
