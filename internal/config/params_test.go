package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParams(t *testing.T) {
	o, err := ParseParams([]string{
		"id=api", "level=3", "title=The API: overview", "local_anchors=false",
		"no_heading=true", "kinds=Method, Function", "suffix=Options",
	})
	require.NoError(t, err)

	assert.Equal(t, "api", o.ID)
	assert.Equal(t, 3, o.Level)
	assert.Equal(t, "The API: overview", o.Title)
	require.NotNil(t, o.LocalAnchors)
	assert.False(t, *o.LocalAnchors)
	assert.True(t, o.NoHeading)
	require.NotNil(t, o.Filter)
	assert.Equal(t, []string{"Method", "Function"}, o.Filter.Kinds)
	assert.Equal(t, []string{"Options"}, o.Filter.Suffix)
	assert.Nil(t, o.Filter.Names)
}

func TestParseParams_Errors(t *testing.T) {
	for _, params := range [][]string{
		{"level"},
		{"level=deep"},
		{"colour=red"},
	} {
		_, err := ParseParams(params)
		assert.ErrorIs(t, err, ErrBadParam, params)
	}

	o, err := ParseParams(nil)
	require.NoError(t, err)
	assert.Nil(t, o.Filter)
}
