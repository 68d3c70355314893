package generator

import (
	"errors"
	"fmt"
	"strings"
)

// Formatter pretty-prints generated code before it is written.
type Formatter interface {
	Format(code string) (string, error)
}

// FormatOptions configures TextFormatter.
type FormatOptions struct {
	IndentWidth   int  `yaml:"indent_width"`
	UseTabs       bool `yaml:"use_tabs"`
	MaxBlankLines int  `yaml:"max_blank_lines"`
}

// DefaultFormatOptions is used when no override is configured.
func DefaultFormatOptions() FormatOptions {
	return FormatOptions{IndentWidth: 4, UseTabs: false, MaxBlankLines: 1}
}

var errUnbalanced = errors.New("unbalanced brackets")

// TextFormatter re-indents code by bracket depth, aligns JSDoc continuation
// lines, trims trailing whitespace and collapses blank lines. Formatting its
// own output is a no-op.
type TextFormatter struct {
	opts FormatOptions
}

func NewTextFormatter(opts FormatOptions) *TextFormatter {
	if opts.IndentWidth <= 0 {
		opts.IndentWidth = DefaultFormatOptions().IndentWidth
	}
	if opts.MaxBlankLines < 0 {
		opts.MaxBlankLines = 0
	}
	return &TextFormatter{opts: opts}
}

func (f *TextFormatter) Format(code string) (string, error) {
	lines := strings.Split(strings.ReplaceAll(code, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	depth := 0
	blanks := 0
	inComment := false

	for n, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			if len(out) == 0 {
				continue
			}
			blanks++
			if blanks > f.opts.MaxBlankLines {
				continue
			}
			out = append(out, "")
			continue
		}
		blanks = 0

		if inComment {
			if !strings.HasPrefix(line, "*") {
				line = "* " + line
			}
			out = append(out, f.indent(depth)+" "+line)
			if strings.Contains(line, "*/") {
				inComment = false
			}
			continue
		}
		if strings.HasPrefix(line, "/*") {
			out = append(out, f.indent(depth)+line)
			inComment = !strings.Contains(line[2:], "*/")
			continue
		}

		lead, net, err := bracketDelta(line)
		if err != nil {
			return "", fmt.Errorf("line %d: %w", n+1, err)
		}
		lineDepth := depth - lead
		if lineDepth < 0 || depth+net < 0 {
			return "", fmt.Errorf("line %d: %w", n+1, errUnbalanced)
		}
		out = append(out, f.indent(lineDepth)+line)
		depth += net
	}
	if inComment {
		return "", errors.New("unterminated comment")
	}
	if depth != 0 {
		return "", errUnbalanced
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n") + "\n", nil
}

func (f *TextFormatter) indent(depth int) string {
	if f.opts.UseTabs {
		return strings.Repeat("\t", depth)
	}
	return strings.Repeat(" ", depth*f.opts.IndentWidth)
}

// bracketDelta returns how many closing brackets lead the line and the net
// bracket depth change, ignoring brackets inside string literals and
// trailing line comments.
func bracketDelta(line string) (lead, net int, err error) {
	leading := true
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"', '`':
			quote = c
			leading = false
		case '/':
			if i+1 < len(line) && line[i+1] == '/' {
				return lead, net, nil
			}
			leading = false
		case '{', '(', '[':
			net++
			leading = false
		case '}', ')', ']':
			net--
			if leading {
				lead++
			}
		default:
			leading = false
		}
	}
	if quote != 0 {
		return 0, 0, fmt.Errorf("unterminated string literal")
	}
	return lead, net, nil
}
