// Package naming derives generated type, field and file names from schema entities.
package naming

import (
	"fmt"
	"strings"

	"github.com/yourorg/kontentgen/pkg/types"
)

// Strategy names one kind of entity. A non-nil Func wins over Case.
type Strategy[T any] struct {
	Case Case
	Func func(T) string
}

// UseCase returns a strategy applying a built-in case conversion.
func UseCase[T any](c Case) Strategy[T] { return Strategy[T]{Case: c} }

// UseFunc returns a strategy delegating to a caller supplied function.
func UseFunc[T any](fn func(T) string) Strategy[T] { return Strategy[T]{Func: fn} }

func (s Strategy[T]) describe() (string, bool) {
	switch {
	case s.Func != nil:
		return "custom", true
	case s.Case != Unchanged:
		return s.Case.String(), true
	default:
		return "", false
	}
}

// FieldStrategy names elements. A custom Func may return ok=false to drop the field.
type FieldStrategy struct {
	Case Case
	Func func(types.Element) (string, bool)
}

// Config selects a strategy per naming target. Zero values mean defaults.
type Config struct {
	ContentType     Strategy[types.ContentType]
	ContentTypeFile Strategy[types.ContentType]
	Snippet         Strategy[types.ContentTypeSnippet]
	SnippetFile     Strategy[types.ContentTypeSnippet]
	Taxonomy        Strategy[types.TaxonomyGroup]
	TaxonomyFile    Strategy[types.TaxonomyGroup]
	Element         FieldStrategy
}

// Extension is appended to generated file names.
type Extension string

const (
	NoExtension Extension = ""
	TSExtension Extension = ".ts"
	JSExtension Extension = ".js"
)

// ModuleResolution controls the form of paths in generated import statements.
type ModuleResolution string

const (
	// NodeResolution emits bare paths: './movie'.
	NodeResolution ModuleResolution = "node"
	// BrowserResolution emits extension-bearing paths: './movie.js'.
	BrowserResolution ModuleResolution = "browser"
)

// ParseModuleResolution validates a config value; empty means node.
func ParseModuleResolution(s string) (ModuleResolution, error) {
	switch ModuleResolution(strings.ToLower(strings.TrimSpace(s))) {
	case "", NodeResolution:
		return NodeResolution, nil
	case BrowserResolution:
		return BrowserResolution, nil
	default:
		return "", fmt.Errorf("unknown module resolution %q (want node or browser)", s)
	}
}

// ImportExtension is the extension used in import paths.
func (m ModuleResolution) ImportExtension() Extension {
	if m == BrowserResolution {
		return JSExtension
	}
	return NoExtension
}

// Usage records a target that uses a non-default strategy.
type Usage struct {
	Target   string
	Strategy string
}

// Resolver applies a Config. It is immutable and safe to share.
type Resolver struct {
	cfg Config
}

func NewResolver(cfg Config) *Resolver {
	return &Resolver{cfg: cfg}
}

// TypeName is the generated type name of a content type.
func (r *Resolver) TypeName(t types.ContentType) string {
	return entityName(r.cfg.ContentType, t, t.Codename, t.Name, PascalCase)
}

// SnippetName is the generated type name of a snippet.
func (r *Resolver) SnippetName(s types.ContentTypeSnippet) string {
	return entityName(r.cfg.Snippet, s, s.Codename, s.Name, PascalCase)
}

// TaxonomyName is the generated type name of a taxonomy group.
func (r *Resolver) TaxonomyName(g types.TaxonomyGroup) string {
	return entityName(r.cfg.Taxonomy, g, g.Codename, g.Name, PascalCase)
}

// FieldName is the generated property name of an element. ok is false when
// a custom resolver opted to drop the element.
func (r *Resolver) FieldName(el types.Element) (string, bool) {
	s := r.cfg.Element
	if s.Func != nil {
		name, ok := s.Func(el)
		if !ok || name == "" {
			return "", false
		}
		return name, true
	}
	b := el.Base()
	c := s.Case
	if c == Unchanged {
		c = CamelCase
	}
	name := identifier(c.Apply(basis(b.Codename, b.Name)))
	return name, name != ""
}

func (r *Resolver) TypeFileName(t types.ContentType, ext Extension) string {
	return fileName(r.cfg.ContentTypeFile, t, t.Codename, t.Name) + string(ext)
}

func (r *Resolver) SnippetFileName(s types.ContentTypeSnippet, ext Extension) string {
	return fileName(r.cfg.SnippetFile, s, s.Codename, s.Name) + string(ext)
}

func (r *Resolver) TaxonomyFileName(g types.TaxonomyGroup, ext Extension) string {
	return fileName(r.cfg.TaxonomyFile, g, g.Codename, g.Name) + string(ext)
}

// Describe lists the targets configured with a non-default strategy.
func (r *Resolver) Describe() []Usage {
	var out []Usage
	add := func(target string, strategy string, ok bool) {
		if ok {
			out = append(out, Usage{Target: target, Strategy: strategy})
		}
	}
	s, ok := r.cfg.Element.describe()
	add("content type elements", s, ok)
	s, ok = r.cfg.ContentTypeFile.describe()
	add("content type filenames", s, ok)
	s, ok = r.cfg.SnippetFile.describe()
	add("content type snippet filenames", s, ok)
	s, ok = r.cfg.ContentType.describe()
	add("content types", s, ok)
	s, ok = r.cfg.Snippet.describe()
	add("content type snippets", s, ok)
	s, ok = r.cfg.Taxonomy.describe()
	add("taxonomies", s, ok)
	s, ok = r.cfg.TaxonomyFile.describe()
	add("taxonomy filenames", s, ok)
	return out
}

func (s FieldStrategy) describe() (string, bool) {
	switch {
	case s.Func != nil:
		return "custom", true
	case s.Case != Unchanged:
		return s.Case.String(), true
	default:
		return "", false
	}
}

func entityName[T any](s Strategy[T], v T, codename, name string, def Case) string {
	if s.Func != nil {
		return s.Func(v)
	}
	c := s.Case
	if c == Unchanged {
		c = def
	}
	return identifier(c.Apply(basis(codename, name)))
}

func fileName[T any](s Strategy[T], v T, codename, name string) string {
	if s.Func != nil {
		return s.Func(v)
	}
	c := s.Case
	if c == Unchanged && codename == "" {
		// display names may contain spaces
		c = SnakeCase
	}
	return c.Apply(basis(codename, name))
}

func basis(codename, name string) string {
	if codename != "" {
		return codename
	}
	return name
}
