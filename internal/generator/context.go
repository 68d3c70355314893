package generator

import (
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/yourorg/kontentgen/internal/naming"
	"github.com/yourorg/kontentgen/internal/schema"
	"github.com/yourorg/kontentgen/pkg/types"
)

// Folders are the output sub folders, relative to the output dir.
type Folders struct {
	Types      string
	Snippets   string
	Taxonomies string
	Project    string
}

// Context carries the per-run collaborators shared by the mapper, the
// reference resolver and the emitters. Built once by Generate.
type Context struct {
	Index            *schema.Index
	Names            *naming.Resolver
	Folders          Folders
	ModuleResolution naming.ModuleResolution
	SDKPackage       string
	// Note is the auto-generated notice placed in every doc header.
	Note      string
	Formatter Formatter
	Logger    *slog.Logger
}

func (c *Context) importExt() naming.Extension {
	return c.ModuleResolution.ImportExtension()
}

func (c *Context) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c.Logger
}

func (c *Context) format(code string) (string, error) {
	if c.Formatter == nil {
		return NewTextFormatter(DefaultFormatOptions()).Format(code)
	}
	return c.Formatter.Format(code)
}

// Owner is the entity a model file is generated for: a content type or a snippet.
type Owner struct {
	Type    *types.ContentType
	Snippet *types.ContentTypeSnippet
}

func TypeOwner(t *types.ContentType) Owner { return Owner{Type: t} }

func SnippetOwner(s *types.ContentTypeSnippet) Owner { return Owner{Snippet: s} }

func (o Owner) IsSnippet() bool { return o.Snippet != nil }

func (o Owner) ID() string {
	if o.Snippet != nil {
		return o.Snippet.ID
	}
	return o.Type.ID
}

func (o Owner) Codename() string {
	if o.Snippet != nil {
		return o.Snippet.Codename
	}
	return o.Type.Codename
}

func (o Owner) Name() string {
	if o.Snippet != nil {
		return o.Snippet.Name
	}
	return o.Type.Name
}

func (o Owner) Elements() []types.Element {
	if o.Snippet != nil {
		return o.Snippet.Elements
	}
	return o.Type.Elements
}

func (o Owner) kind() string {
	if o.Snippet != nil {
		return "content type snippet"
	}
	return "content type"
}

func (o Owner) folder(f Folders) string {
	if o.Snippet != nil {
		return f.Snippets
	}
	return f.Types
}

// TypeName is the generated name of the owner's declaration.
func (o Owner) TypeName(names *naming.Resolver) string {
	if o.Snippet != nil {
		return names.SnippetName(*o.Snippet)
	}
	return names.TypeName(*o.Type)
}

// FileName is the owner's file name with the given extension.
func (o Owner) FileName(names *naming.Resolver, ext naming.Extension) string {
	if o.Snippet != nil {
		return names.SnippetFileName(*o.Snippet, ext)
	}
	return names.TypeFileName(*o.Type, ext)
}

// importPath is the module path of file in folder "to" as seen from a file in
// folder "from". Both folders are relative to the output dir.
func importPath(from, to, file string) string {
	fromParts := splitFolder(from)
	toParts := splitFolder(to)
	common := 0
	for common < len(fromParts) && common < len(toParts) && fromParts[common] == toParts[common] {
		common++
	}
	ups := len(fromParts) - common
	rest := path.Join(append(toParts[common:], file)...)
	if ups == 0 {
		return "./" + rest
	}
	return strings.Repeat("../", ups) + rest
}

func splitFolder(folder string) []string {
	folder = strings.Trim(path.Clean("/"+strings.ReplaceAll(folder, "\\", "/")), "/")
	if folder == "" {
		return nil
	}
	return strings.Split(folder, "/")
}
