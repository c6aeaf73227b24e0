package content

import (
	"regexp"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildID(t *testing.T) {
	tests := map[string]string{
		"Hello World":          "hello-world",
		"  The `Foo` class  ":  "the-foo-class",
		"snake_case name":      "snake_case-name",
		"a  -  b":              "a---b",
		"(leading) trailing!!": "leading-trailing",
		"":                     "",
		"Ünïcode":              "n-code",
		"--dashes--":           "dashes",
	}
	for in, want := range tests {
		assert.Equal(t, want, BuildID(in), "BuildID(%q)", in)
	}
}

func TestBuildID_Idempotent(t *testing.T) {
	valid := regexp.MustCompile(`^[a-z0-9_-]*$`)
	for _, in := range []string{"Foo Bar", "`name` properties", "x(a, b?)", " -weird- ", "Ärger & Co."} {
		once := BuildID(in)
		assert.Equal(t, once, BuildID(once))
		assert.Regexp(t, valid, once)
		assert.NotRegexp(t, `^-|-$`, once)
	}
}

func TestSections_RoundTrip(t *testing.T) {
	want := []Section{
		{ID: "head", Content: "# Project\n\nIntro."},
		{ID: "api", Attrs: GeneratedAttr, Content: "| a | b |\n| --- | --- |"},
		{ID: "empty", Content: ""},
		{ID: "padded", Content: "\nstarts and ends with newline\n"},
	}
	var doc string
	for i, s := range want {
		if i > 0 {
			doc += "\n\n"
		}
		doc += WrapSection(s.ID, s.Content, s.Attrs)
	}

	got := ExtractSections(doc)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Content, got[i].Content)
	}
	assert.Equal(t, GeneratedAttr, got[1].Attrs)
}

func TestExtractSections_IgnoresUnterminated(t *testing.T) {
	doc := WrapSection("a", "one") + "\n<section id=\"b\">\nnever closed"
	got := ExtractSections(doc)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestStripSections(t *testing.T) {
	doc := "Before.\n\n" + WrapSection("example", "hidden") + "\n\nAfter."
	assert.Equal(t, "Before.\n\n\n\nAfter.", StripSections(doc))
}

func TestExtractHeadings(t *testing.T) {
	doc := "# Title\n\n" +
		"## <a id=\"custom\"></a>The `Foo` class\n\n" +
		"```ts\n# not a heading\n```\n\n" +
		"<h3 id=\"html-id\">Html heading</h3>\n" +
		"### [Linked](https://example.com/ref) ###\n" +
		"####### too deep\n"

	hs := ExtractHeadings(doc)
	require.Len(t, hs, 4)
	assert.Equal(t, Heading{Title: "Title", Level: 1, ID: "title"}, hs[0])
	assert.Equal(t, Heading{Title: "The `Foo` class", Level: 2, ID: "custom"}, hs[1])
	assert.Equal(t, Heading{Title: "Html heading", Level: 3, ID: "html-id"}, hs[2])
	assert.Equal(t, Heading{Title: "Linked", Level: 3, ID: "linked", Link: "https://example.com/ref"}, hs[3])
}

func TestModifyHeadings_InverseOffset(t *testing.T) {
	doc := "# A\n\ntext\n\n## B\n\n<h3 id=\"c\">C</h3>\n\n```\n# code\n```\n"
	shifted, err := ModifyHeadings(doc, 2)
	require.NoError(t, err)
	assert.Contains(t, shifted, "### A\n")
	assert.Contains(t, shifted, "#### B\n")
	assert.Contains(t, shifted, `<h5 id="c">C</h5>`)
	assert.Contains(t, shifted, "# code\n")

	back, err := ModifyHeadings(shifted, -2)
	require.NoError(t, err)
	assert.Equal(t, doc, back)
}

func TestModifyHeadings_DuplicateTitles(t *testing.T) {
	doc := "## Options\n\ntext\n\n### Options\n"
	shifted, err := ModifyHeadings(doc, 1)
	require.NoError(t, err)
	assert.Equal(t, "### Options\n\ntext\n\n#### Options\n", shifted)
}

func TestModifyHeadings_OutOfRange(t *testing.T) {
	doc := "# Top\n\n###### Deepest\n"
	got, err := ModifyHeadings(doc, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrHeadingRange))
	assert.Equal(t, doc, got)

	_, err = ModifyHeadings(doc, -1)
	assert.True(t, errors.Is(err, ErrHeadingRange))
}

func TestConvertLinks(t *testing.T) {
	doc := "See [[foo]], [[bar|the bar]], {@link baz} and {@link qux | Qux}.\n\n```\n[[code]]\n```\n"
	resolve := func(id string) (string, bool) {
		switch id {
		case "foo":
			return "#foo", true
		case "baz":
			return "other.md#baz", true
		}
		return "", false
	}

	got := ConvertLinks(doc, resolve)
	assert.Contains(t, got, `<a href="#foo" data-sref="foo"><code>foo</code></a>`)
	assert.Contains(t, got, `<a data-sref="bar">the bar</a>`)
	assert.Contains(t, got, `<a href="other.md#baz" data-sref="baz"><code>baz</code></a>`)
	assert.Contains(t, got, `<a data-sref="qux">Qux</a>`)
	assert.Contains(t, got, "[[code]]")
	assert.Equal(t, []string{"bar", "qux"}, UnresolvedReferences(got))
	assert.Equal(t, []string{"foo", "bar", "baz", "qux"}, References(got))

	// a second pass only touches what is still unresolved
	again := ConvertLinks(got, func(id string) (string, bool) { return "#" + id, true })
	assert.Contains(t, again, `<a href="#foo" data-sref="foo">`)
	assert.Contains(t, again, `<a href="#bar" data-sref="bar">`)
	assert.Empty(t, UnresolvedReferences(again))
}

func TestConvertLinks_EscapedTableCell(t *testing.T) {
	md, err := RenderAll([]Block{
		NewTable([]string{"Name", "Description"}, [][]string{
			{"**x**", "See [[Person|the person]] or {@link Greeter | it}."},
		}),
	}, nil)
	require.NoError(t, err)
	assert.Contains(t, md, `[[Person\|the person]]`)

	got := ConvertLinks(md, func(id string) (string, bool) { return "#" + strings.ToLower(id), true })
	assert.Contains(t, got, `<a href="#person" data-sref="Person">the person</a>`)
	assert.Contains(t, got, `<a href="#greeter" data-sref="Greeter">it</a>`)
	assert.Equal(t, []string{"Person", "Greeter"}, References(got))
}

func TestRenderBlocks(t *testing.T) {
	h, err := NewHeading("The `Foo` class", 2, "foo", "")
	require.NoError(t, err)
	blocks := []Block{
		h,
		NewText("**Short.**", "Long text."),
		NewList(ListItem{Label: "a", Description: "first"}, ListItem{Label: "b"}),
		NewTable([]string{"Name", "Type"}, [][]string{{"**x**", "`string | number`"}}),
	}

	got, err := RenderAll(blocks, nil)
	require.NoError(t, err)
	want := "## <a id=\"foo\"></a>The `Foo` class\n\n" +
		"**Short.**\n\nLong text.\n\n" +
		"- a: first\n- b\n\n" +
		"| Name | Type |\n| --- | --- |\n| **x** | `string \\| number` |"
	assert.Equal(t, want, got)

	hs := ExtractHeadings(got)
	require.Len(t, hs, 1)
	assert.Equal(t, h, hs[0])
}

func TestNewHeading_RejectsLevel(t *testing.T) {
	_, err := NewHeading("x", 0, "", "")
	assert.True(t, errors.Is(err, ErrHeadingRange))
	_, err = NewHeading("x", 7, "", "")
	assert.True(t, errors.Is(err, ErrHeadingRange))
}

func TestRenderTOC(t *testing.T) {
	blocks := []Block{
		Heading{Title: "API", Level: 2, ID: "api"},
		NewText("ignored"),
		Heading{Title: "`foo`", Level: 3, ID: "foo"},
		Heading{Title: "External", Level: 3, Link: "https://example.com"},
		Heading{Title: "Plain", Level: 4},
	}
	want := "- [API](#api)\n  - [`foo`](#foo)\n  - [External](https://example.com)\n    - Plain"
	assert.Equal(t, want, RenderTOC(blocks, 2))
}
