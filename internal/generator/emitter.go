package generator

import (
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/yourorg/kontentgen/internal/naming"
	"github.com/yourorg/kontentgen/pkg/types"
)

// EmittedFile is one generated source file.
type EmittedFile struct {
	// Path is relative to the output dir and uses forward slashes.
	Path string
	Code string
}

// EmitEntity renders the model file of a content type or snippet. Failures
// are logged with the entity identity and returned as *EntityError.
func EmitEntity(owner Owner, ctx *Context) (EmittedFile, error) {
	file, err := emitEntity(owner, ctx)
	if err != nil {
		return EmittedFile{}, entityFailure(ctx, owner, err)
	}
	return file, nil
}

func entityFailure(ctx *Context, owner Owner, err error) error {
	ctx.logger().Error("entity generation failed",
		"kind", owner.kind(), "codename", owner.Codename(), "name", owner.Name(), "error", err)
	return &EntityError{Kind: owner.kind(), Codename: owner.Codename(), Name: owner.Name(), Err: err}
}

func emitEntity(owner Owner, ctx *Context) (EmittedFile, error) {
	refs, err := ComputeReferences(owner, ctx)
	if err != nil {
		return EmittedFile{}, err
	}

	var fields []ExtendedElement
	for _, el := range refs.Elements {
		base := el.Source.Base()
		if base.Codename == "" {
			return EmittedFile{}, &InvalidCodenameError{ElementID: base.ID}
		}
		if el.HasField() {
			fields = append(fields, el)
		}
	}

	b := &strings.Builder{}
	top := []string{"type IContentItem"}
	if len(fields) > 0 {
		top = append(top, "type Elements")
	}
	fmt.Fprintf(b, "import { %s } from '%s';\n", strings.Join(top, ", "), ctx.SDKPackage)
	for _, imp := range refs.Imports {
		b.WriteString(imp.Statement())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	writeDoc(b, "", ctx.Note, "", owner.Name(), "Id: "+owner.ID(), "Codename: "+owner.Codename())
	fmt.Fprintf(b, "export type %s = IContentItem<", owner.TypeName(ctx.Names))
	if len(fields) == 0 {
		b.WriteString("{}")
	} else {
		b.WriteString("{\n")
		for i, f := range fields {
			if i > 0 {
				b.WriteString("\n")
			}
			writeDoc(b, "    ", elementComment(f, ctx)...)
			fmt.Fprintf(b, "    %s: Elements.%s;\n", propertyKey(f.FieldName), f.TypeExpr)
		}
		b.WriteString("}")
	}
	b.WriteString(">")
	if len(refs.SnippetExtensions) > 0 {
		b.WriteString(" & ")
		b.WriteString(strings.Join(refs.SnippetExtensions, " & "))
	}
	b.WriteString(";\n")

	code, err := ctx.format(b.String())
	if err != nil {
		return EmittedFile{}, fmt.Errorf("format: %w", err)
	}
	return EmittedFile{
		Path: path.Join(owner.folder(ctx.Folders), owner.FileName(ctx.Names, naming.TSExtension)),
		Code: code,
	}, nil
}

func elementComment(f ExtendedElement, ctx *Context) []string {
	base := f.Source.Base()
	var lines []string
	if title := elementTitle(f, ctx); title != "" {
		lines = append(lines, fmt.Sprintf("%s (%s)", title, f.Kind))
	}
	lines = append(lines,
		"Required: "+strconv.FormatBool(base.Required),
		"Id: "+base.ID,
		"Codename: "+base.Codename,
	)
	if f.OriginSnippet != nil {
		lines = append(lines,
			"From snippet: "+f.OriginSnippet.Name,
			"Snippet codename: "+f.OriginSnippet.Codename,
		)
	}
	if g := removeLineEndings(base.Guidelines); g != "" {
		lines = append(lines, "", g)
	}
	return lines
}

// elementTitle is the element's display name; unnamed taxonomy elements
// borrow the name of their taxonomy group.
func elementTitle(f ExtendedElement, ctx *Context) string {
	base := f.Source.Base()
	if base.Name != "" {
		return base.Name
	}
	if tx, ok := f.Source.(types.TaxonomyElement); ok {
		if group, err := ctx.Index.Taxonomy(tx.TaxonomyGroup.ID); err == nil {
			return group.Name
		}
	}
	return ""
}

// writeDoc writes a JSDoc block. Empty lines render as a bare " *".
func writeDoc(b *strings.Builder, indent string, lines ...string) {
	b.WriteString(indent)
	b.WriteString("/**\n")
	for _, l := range lines {
		l = strings.ReplaceAll(l, "*/", "*\\/")
		if l == "" {
			fmt.Fprintf(b, "%s *\n", indent)
			continue
		}
		fmt.Fprintf(b, "%s * %s\n", indent, l)
	}
	b.WriteString(indent)
	b.WriteString(" */\n")
}

func removeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.TrimSpace(s)
}

// propertyKey quotes names that are not valid identifiers.
func propertyKey(name string) string {
	for i, r := range name {
		if r == '_' || r == '$' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return quote(name)
	}
	return name
}

// quote renders s as a single-quoted TypeScript string literal.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\r", `\r`)
	return "'" + r.Replace(s) + "'"
}

// autogenerateNote is the notice placed at the top of every generated file.
func autogenerateNote(generator string, addTimestamp bool, now time.Time) string {
	note := fmt.Sprintf("This file has been auto-generated by '%s'.", generator)
	if addTimestamp {
		note = fmt.Sprintf("This file has been auto-generated by '%s' on '%s'.", generator, now.UTC().Format(time.RFC1123))
	}
	return note
}
