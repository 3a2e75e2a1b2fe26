package props

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAndReencode(t *testing.T) {
	src := "# scene file\n" +
		"name = main level\n" +
		"gameobjects {\n" +
		"  0 {\n" +
		"\tname = a\n" +
		"  }\n" +
		"  1 {}\n" +
		"}\n" +
		"// trailing comment\n"
	tbl, err := ParseString(src)
	require.NoError(t, err)
	assert.Equal(t, Reading, tbl.Mode())
	assert.Equal(t, []string{"name", "gameobjects"}, tbl.Names())

	want := "name = main level\n" +
		"gameobjects {\n" +
		"    0 {\n" +
		"        name = a\n" +
		"    }\n" +
		"    1 {\n" +
		"    }\n" +
		"}\n"
	assert.Equal(t, want, tbl.String())

	again, err := ParseString(tbl.String())
	require.NoError(t, err)
	assert.Equal(t, want, again.String())
}

func TestParseErrors(t *testing.T) {
	cases := map[string]struct {
		text string
		want error
		line int
	}{
		"missing equals":   {"a = 1\njust words\n", ErrSyntax, 2},
		"extra close":      {"a {\n}\n}\n", ErrUnbalanced, 3},
		"unclosed":         {"a {\n  b = 1\n", ErrUnbalanced, 2},
		"duplicate":        {"a = 1\na = 2\n", ErrDuplicate, 2},
		"bad name":         {"a b = 1\n", ErrInvalidName, 1},
		"empty name":       {" = 1\n", ErrInvalidName, 1},
		"bad quoted value": {"a = \"open\n", ErrSyntax, 1},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			tbl, err := ParseString(tc.text)
			assert.Nil(t, tbl)
			require.ErrorIs(t, err, tc.want)
			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tc.line, pe.Line)
		})
	}
}

func TestAwkwardStringsRoundTrip(t *testing.T) {
	values := []string{"", "  padded  ", "two\nlines", `"quoted"`, "a = b", "{", "}", "#hash"}
	w := New(Writing)
	for i, v := range values {
		v := v
		Serialize(w, "v"+strings.Repeat("x", i), &v, "default")
	}
	r, err := ParseString(w.String())
	require.NoError(t, err)
	for i, want := range values {
		var got string
		Serialize(r, "v"+strings.Repeat("x", i), &got, "default")
		assert.Equal(t, want, got)
	}
}

func TestTextMarshalerInterfaces(t *testing.T) {
	tbl := New(Writing)
	tbl.Set("a", "1")
	text, err := tbl.MarshalText()
	require.NoError(t, err)

	dst := New(Writing)
	dst.Set("stale", "x")
	require.NoError(t, dst.UnmarshalText(text))
	assert.Equal(t, []string{"a"}, dst.Names())
	assert.Equal(t, Writing, dst.Mode())

	assert.Error(t, dst.UnmarshalText([]byte("}")))
	assert.Equal(t, []string{"a"}, dst.Names(), "failed parse leaves the table intact")

	var buf bytes.Buffer
	n, err := tbl.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(len("a = 1\n")), n)
}
