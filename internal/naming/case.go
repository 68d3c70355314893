package naming

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Case is a built-in case conversion. The zero value keeps the input unchanged.
type Case int

const (
	Unchanged Case = iota
	CamelCase
	PascalCase
	SnakeCase
)

// ParseCase accepts the names used in config files and on the command line.
// An empty string yields Unchanged, meaning "use the target's default".
func ParseCase(s string) (Case, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return Unchanged, nil
	case "camelcase", "camel":
		return CamelCase, nil
	case "pascalcase", "pascal":
		return PascalCase, nil
	case "snakecase", "snake":
		return SnakeCase, nil
	default:
		return Unchanged, fmt.Errorf("unknown name strategy %q (want camelCase, pascalCase or snakeCase)", s)
	}
}

func (c Case) String() string {
	switch c {
	case CamelCase:
		return "camelCase"
	case PascalCase:
		return "pascalCase"
	case SnakeCase:
		return "snakeCase"
	default:
		return "unchanged"
	}
}

// Apply converts s to the case.
func (c Case) Apply(s string) string {
	if c == Unchanged {
		return s
	}
	parts := words(s)
	if len(parts) == 0 {
		return ""
	}
	lower := cases.Lower(language.Und)
	title := cases.Title(language.Und)

	var b strings.Builder
	for i, w := range parts {
		switch c {
		case CamelCase:
			if i == 0 {
				b.WriteString(lower.String(w))
			} else {
				b.WriteString(title.String(w))
			}
		case PascalCase:
			b.WriteString(title.String(w))
		case SnakeCase:
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteString(lower.String(w))
		}
	}
	return b.String()
}

// words splits s on separators, lower-to-upper transitions, letter/digit
// boundaries and the end of upper-case runs ("URLSlug" -> "URL", "Slug").
func words(s string) []string {
	var out []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			out = append(out, string(cur))
			cur = cur[:0]
		}
	}
	rs := []rune(s)
	for i, r := range rs {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if n := len(cur); n > 0 {
			prev := cur[n-1]
			switch {
			case unicode.IsLower(prev) && unicode.IsUpper(r):
				flush()
			case unicode.IsDigit(prev) != unicode.IsDigit(r):
				flush()
			case unicode.IsUpper(prev) && unicode.IsUpper(r) && i+1 < len(rs) && unicode.IsLower(rs[i+1]):
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return out
}

// identifier makes s usable as a TypeScript identifier.
func identifier(s string) string {
	if s == "" {
		return s
	}
	if r := []rune(s)[0]; unicode.IsDigit(r) {
		return "_" + s
	}
	return s
}
