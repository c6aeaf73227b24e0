package literal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Primitives(t *testing.T) {
	tests := []struct {
		in   string
		kind Kind
		text string
	}{
		{`"hello"`, String, "hello"},
		{`'it\'s'`, String, "it's"},
		{`"a\nb"`, String, "a\nb"},
		{"`plain`", String, "plain"},
		{"42", Number, "42"},
		{"-1.5", Number, "-1.5"},
		{"null", Null, "null"},
		{"undefined", Null, "undefined"},
		{"new Map()", Raw, "new Map()"},
		{"SOME_CONST", Raw, "SOME_CONST"},
		{"`x${y}`", Raw, "`x${y}`"},
	}
	for _, tt := range tests {
		v := Parse(tt.in)
		assert.Equal(t, tt.kind, v.Kind, "Parse(%q)", tt.in)
		assert.Equal(t, tt.text, v.Text, "Parse(%q)", tt.in)
	}

	assert.Equal(t, -1.5, Parse("-1.5").Num)
	assert.Equal(t, float64(255), Parse("0xff").Num)
	assert.True(t, Parse("true").Bool)
	assert.Equal(t, Bool, Parse("false").Kind)
	assert.Equal(t, Raw, Parse("").Kind)
}

func TestParse_Nested(t *testing.T) {
	v := Parse(`{ retries: 3, "tags": ["a", 'b'], nested: { ok: true }, // note
	fn: () => 1 }`)
	require.Equal(t, Object, v.Kind)
	require.Len(t, v.Fields, 4)

	assert.Equal(t, "retries", v.Fields[0].Key)
	assert.Equal(t, Number, v.Fields[0].Value.Kind)

	tags := v.Fields[1].Value
	assert.Equal(t, "tags", v.Fields[1].Key)
	require.Equal(t, Array, tags.Kind)
	assert.Equal(t, []Value{{Kind: String, Text: "a"}, {Kind: String, Text: "b"}}, tags.Items)

	assert.Equal(t, Object, v.Fields[2].Value.Kind)
	assert.Equal(t, Raw, v.Fields[3].Value.Kind)
	assert.Equal(t, "() => 1", v.Fields[3].Value.Text)
}

func TestParse_Wrappers(t *testing.T) {
	v := Parse(`({ a: 1 }) as const`)
	require.Equal(t, Object, v.Kind)
	assert.Equal(t, "a", v.Fields[0].Key)
}

func TestParse_Repeated(t *testing.T) {
	for i := 0; i < 200; i++ {
		v := Parse(`{ a: [1, "two"] }`)
		require.Equal(t, Object, v.Kind)
		assert.Equal(t, Array, v.Fields[0].Value.Kind)
	}
}

func TestValue_JSON(t *testing.T) {
	v := Parse(`{ z: 1, a: [true, null, "s"] }`)
	got, err := v.JSON()
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"z\": 1,\n  \"a\": [\n    true,\n    null,\n    \"s\"\n  ]\n}", got)
}
