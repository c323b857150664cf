// pkg/variables/variables_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test key=value parsing, referenced variables and overwrites

package variables_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/anek/pkg/errors"
	"github.com/arthur-debert/anek/pkg/template"
	"github.com/arthur-debert/anek/pkg/types"
	"github.com/arthur-debert/anek/pkg/variables"
)

func linesOf(texts ...string) []types.Line {
	out := make([]types.Line, len(texts))
	for i, t := range texts {
		out[i] = types.Line{Number: i + 1, Text: t}
	}
	return out
}

func TestParse(t *testing.T) {
	m, err := variables.Parse(linesOf("host=example.com", "cmd=a=b", "empty=", "host=override"))
	require.NoError(t, err)

	assert.Equal(t, types.VariableMap{
		"host":  "override",
		"cmd":   "a=b",
		"empty": "",
	}, m, "split on the first '=' and the last definition wins")
}

func TestParse_MergeOverrideOrder(t *testing.T) {
	first := []types.Line{{Number: 1, Text: "key=first", Source: "/a"}}
	second := []types.Line{{Number: 1, Text: "key=second", Source: "/b"}}

	m, err := variables.Parse(append(first, second...))
	require.NoError(t, err)
	assert.Equal(t, "second", m["key"])
}

func TestParse_Malformed(t *testing.T) {
	in := []types.Line{
		{Number: 1, Text: "ok=1", Source: "/p/.anek/inputs/prod"},
		{Number: 4, Text: "broken line", Source: "/p/.anek/inputs/prod"},
	}

	_, err := variables.Parse(in)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMalformedLine))
	assert.Contains(t, err.Error(), `Invalid Line# 4: "broken line"`)
	assert.Contains(t, err.Error(), "/p/.anek/inputs/prod")
}

func TestKeys(t *testing.T) {
	keys, err := variables.Keys(linesOf("b=1", "a=2", "b=3"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestReferenced(t *testing.T) {
	got, err := variables.Referenced(linesOf(
		"rsync {src} {host}:{dest?\"/tmp\"}",
		"ssh {user?login}@{host} {ARG1?}",
	))
	require.NoError(t, err)
	assert.Equal(t, []string{"ARG1", "dest", "host", "login", "src", "user"}, got)
}

func TestReferenced_ParseError(t *testing.T) {
	_, err := variables.Referenced([]types.Line{{Number: 3, Text: "echo {x", Source: "/c/build"}})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateParse))
	assert.Contains(t, err.Error(), "/c/build")
}

func TestCommandArgs(t *testing.T) {
	assert.Equal(t, types.VariableMap{"ARG1": "x", "ARG2": "y z"}, variables.CommandArgs([]string{"x", "y z"}))
	assert.Empty(t, variables.CommandArgs(nil))
}

func TestOverwrites(t *testing.T) {
	m, err := variables.Overwrites([]string{"first"}, []string{"host=example.com", "port:22", "ARG1=replaced", "x=1:extra"})
	require.NoError(t, err)

	assert.Equal(t, types.VariableMap{
		"ARG1": "replaced",
		"host": "example.com",
		"port": "22",
		"x":    "1",
	}, m)
}

func TestOverwrites_EmptySegments(t *testing.T) {
	tests := []struct {
		entry string
		name  string
		value string
	}{
		{"x=", "x", ""},
		{"x:", "x", ""},
		{"a==b", "a", ""},
		{"a:=b", "a", ""},
		{"url=http://host", "url", "http"},
	}
	for _, tt := range tests {
		t.Run(tt.entry, func(t *testing.T) {
			m, err := variables.Overwrites(nil, []string{tt.entry})
			require.NoError(t, err)
			assert.Equal(t, types.VariableMap{tt.name: tt.value}, m)
		})
	}
}

func TestOverwrites_Invalid(t *testing.T) {
	for _, entry := range []string{"novalue", "=value", ":value", ""} {
		t.Run(entry, func(t *testing.T) {
			_, err := variables.Overwrites(nil, []string{entry})
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidOverwrite))
		})
	}
}

func TestApply(t *testing.T) {
	vars := types.VariableMap{"name": "web", "env": "prod"}
	overwrite := types.VariableMap{"host": "{name}.{env}.example.com", "env": "staging"}

	out, err := variables.Apply(vars, overwrite, template.RenderOptions{})
	require.NoError(t, err)

	assert.Equal(t, "web.prod.example.com", out["host"], "overwrites render against the original job variables")
	assert.Equal(t, "staging", out["env"])
	assert.Equal(t, "prod", vars["env"], "input map is not modified")
}

func TestApply_RenderError(t *testing.T) {
	_, err := variables.Apply(types.VariableMap{}, types.VariableMap{"host": "{missing}"}, template.RenderOptions{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidOverwrite))
}
