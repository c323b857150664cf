package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/anek/pkg/template"
)

// ParseTemplate parses source and fails the test when it is not a valid
// template.
func ParseTemplate(t testing.TB, source string) *template.Template {
	t.Helper()
	tmpl, err := template.Parse(source)
	require.NoError(t, err, "parse template %q", source)
	return tmpl
}
