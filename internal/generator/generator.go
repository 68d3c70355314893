package generator

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"sort"
	"time"

	"github.com/yourorg/kontentgen/internal/naming"
	"github.com/yourorg/kontentgen/internal/schema"
	"github.com/yourorg/kontentgen/pkg/types"
)

// Version is stamped into the auto-generated note; overridden at build time.
var Version = "dev"

const (
	DefaultTypesFolder      = "content-types"
	DefaultSnippetsFolder   = "content-type-snippets"
	DefaultTaxonomiesFolder = "taxonomies"
	DefaultProjectFolder    = "project"
	DefaultSDKPackage       = "@kontent-ai/delivery-sdk"
)

// Options configures one generation run.
type Options struct {
	OutputDir        string
	Folders          Folders
	ModuleResolution naming.ModuleResolution
	AddTimestamp     bool
	Naming           naming.Config
	Format           FormatOptions
	// Formatter overrides the TextFormatter built from Format.
	Formatter     Formatter
	Export        types.ExportSettings
	Barrel        bool
	SDKPackage    string
	GeneratorName string
	Now           func() time.Time
	Logger        *slog.Logger
}

func (o *Options) setDefaults() {
	if o.OutputDir == "" {
		o.OutputDir = "."
	}
	if o.Folders.Types == "" {
		o.Folders.Types = DefaultTypesFolder
	}
	if o.Folders.Snippets == "" {
		o.Folders.Snippets = DefaultSnippetsFolder
	}
	if o.Folders.Taxonomies == "" {
		o.Folders.Taxonomies = DefaultTaxonomiesFolder
	}
	if o.Folders.Project == "" {
		o.Folders.Project = DefaultProjectFolder
	}
	if o.ModuleResolution == "" {
		o.ModuleResolution = naming.NodeResolution
	}
	if o.SDKPackage == "" {
		o.SDKPackage = DefaultSDKPackage
	}
	if o.GeneratorName == "" {
		o.GeneratorName = "kontentgen@" + Version
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Format == (FormatOptions{}) {
		o.Format = DefaultFormatOptions()
	}
	if o.Formatter == nil {
		o.Formatter = NewTextFormatter(o.Format)
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
}

// Result lists the files written by Generate, relative to the output dir.
type Result struct {
	ContentTypeFiles []string
	SnippetFiles     []string
	TaxonomyFiles    []string
	ProjectFiles     []string
	BarrelFiles      []string
}

// Filenames returns every written file.
func (r *Result) Filenames() []string {
	var all []string
	for _, group := range [][]string{r.ContentTypeFiles, r.SnippetFiles, r.TaxonomyFiles, r.ProjectFiles, r.BarrelFiles} {
		all = append(all, group...)
	}
	return all
}

// Generate writes model files for every snippet, content type and taxonomy of
// snap, then the enabled project facets and barrel files. It stops at the
// first failing entity; files already written are left in place.
func Generate(snap *types.Snapshot, opts Options, rep Reporter) (*Result, error) {
	if snap == nil {
		return nil, errors.New("snapshot is nil")
	}
	if rep == nil {
		rep = NopReporter{}
	}
	opts.setDefaults()

	ctx := &Context{
		Index:            schema.FromSnapshot(snap),
		Names:            naming.NewResolver(opts.Naming),
		Folders:          opts.Folders,
		ModuleResolution: opts.ModuleResolution,
		SDKPackage:       opts.SDKPackage,
		Note:             autogenerateNote(opts.GeneratorName, opts.AddTimestamp, opts.Now()),
		Formatter:        opts.Formatter,
		Logger:           opts.Logger,
	}
	for _, u := range ctx.Names.Describe() {
		rep.OnResolverUsed(u.Target, u.Strategy)
	}
	log := opts.Logger
	log.Debug("generating models",
		"types", len(snap.Types), "snippets", len(snap.Snippets), "taxonomies", len(snap.Taxonomies),
		"output", opts.OutputDir)

	res := &Result{}
	write := func(f EmittedFile, into *[]string) error {
		if _, err := writeFile(opts.OutputDir, f); err != nil {
			return fmt.Errorf("write %s: %w", f.Path, err)
		}
		*into = append(*into, f.Path)
		rep.OnFileWritten(f.Path)
		return nil
	}

	for i := range snap.Snippets {
		owner := SnippetOwner(&snap.Snippets[i])
		if err := emitOwner(owner, ctx, rep, func(f EmittedFile) error { return write(f, &res.SnippetFiles) }); err != nil {
			return res, err
		}
	}
	for i := range snap.Types {
		owner := TypeOwner(&snap.Types[i])
		if err := emitOwner(owner, ctx, rep, func(f EmittedFile) error { return write(f, &res.ContentTypeFiles) }); err != nil {
			return res, err
		}
	}
	for i := range snap.Taxonomies {
		group := &snap.Taxonomies[i]
		rep.OnEntityStart("taxonomy", group.Codename)
		f, err := EmitTaxonomy(group, ctx)
		if err != nil {
			log.Error("taxonomy generation failed", "codename", group.Codename, "name", group.Name, "error", err)
			return res, err
		}
		if err := write(f, &res.TaxonomyFiles); err != nil {
			return res, err
		}
	}

	facets, err := EmitProjectFacets(snap, opts.Export, ctx)
	if err != nil {
		return res, err
	}
	for _, f := range facets {
		if err := write(f, &res.ProjectFiles); err != nil {
			return res, err
		}
	}

	if opts.Barrel {
		if err := writeBarrels(res, ctx, write); err != nil {
			return res, err
		}
	}
	log.Info("models generated", "files", len(res.Filenames()))
	return res, nil
}

func emitOwner(owner Owner, ctx *Context, rep Reporter, write func(EmittedFile) error) error {
	rep.OnEntityStart(owner.kind(), owner.Codename())
	f, err := EmitEntity(owner, ctx)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		return entityFailure(ctx, owner, err)
	}
	return nil
}

// writeBarrels writes one index.ts per distinct folder, merging groups that
// share a folder, then the root barrel over those folders.
func writeBarrels(res *Result, ctx *Context, write func(EmittedFile, *[]string) error) error {
	groups := []struct {
		folder string
		files  []string
	}{
		{ctx.Folders.Types, res.ContentTypeFiles},
		{ctx.Folders.Snippets, res.SnippetFiles},
		{ctx.Folders.Taxonomies, res.TaxonomyFiles},
		{ctx.Folders.Project, res.ProjectFiles},
	}
	var order []string
	byFolder := map[string][]string{}
	for _, g := range groups {
		if len(g.files) == 0 {
			continue
		}
		folder := path.Clean(g.folder)
		if _, ok := byFolder[folder]; !ok {
			order = append(order, folder)
		}
		byFolder[folder] = append(byFolder[folder], g.files...)
	}
	if len(order) == 0 {
		return nil
	}

	// files placed directly in the output dir join the root barrel
	var folders []string
	for _, folder := range order {
		if folder == "." {
			continue
		}
		f, err := EmitBarrel(folder, byFolder[folder], ctx)
		if err != nil {
			return err
		}
		if err := write(f, &res.BarrelFiles); err != nil {
			return err
		}
		folders = append(folders, folder)
	}
	sort.Strings(folders)
	exports := append(folderExports(folders, ctx), fileExports(byFolder["."], ctx)...)
	root, err := barrelFile("", exports, ctx)
	if err != nil {
		return err
	}
	return write(root, &res.BarrelFiles)
}
