package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextFormatterReindents(t *testing.T) {
	in := "export const x = {\n" +
		"a: {\n" +
		"  b: '}',\n" +
		"\n\n\n" +
		"    /**\n" +
		"  * doc\n" +
		"      */\n" +
		"c: [1, 2], // trailing {\n" +
		"},\n" +
		"} as const;\n\n\n"
	want := "export const x = {\n" +
		"    a: {\n" +
		"        b: '}',\n" +
		"\n" +
		"        /**\n" +
		"         * doc\n" +
		"         */\n" +
		"        c: [1, 2], // trailing {\n" +
		"    },\n" +
		"} as const;\n"

	got, err := NewTextFormatter(DefaultFormatOptions()).Format(in)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	again, err := NewTextFormatter(DefaultFormatOptions()).Format(got)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestTextFormatterOptions(t *testing.T) {
	f := NewTextFormatter(FormatOptions{UseTabs: true, MaxBlankLines: 0})
	got, err := f.Format("type A = {\nb: string;\n\nc: string;\n};")
	require.NoError(t, err)
	assert.Equal(t, "type A = {\n\tb: string;\n\tc: string;\n};\n", got)

	f = NewTextFormatter(FormatOptions{IndentWidth: 2, MaxBlankLines: 1})
	got, err = f.Format("type A = {\nb: string;\n};")
	require.NoError(t, err)
	assert.Equal(t, "type A = {\n  b: string;\n};\n", got)
}

func TestTextFormatterErrors(t *testing.T) {
	f := NewTextFormatter(DefaultFormatOptions())
	for _, in := range []string{
		"type A = {\n",
		"};\n",
		"/**\n * open\n",
		"const s = 'unterminated;\n",
	} {
		_, err := f.Format(in)
		assert.Error(t, err, "input %q", in)
	}
}
