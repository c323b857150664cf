// cmd/anek/root_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem (t.TempDir), builtin shell
// PURPOSE: Test the command line end to end through Execute

package anek

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cliResult struct {
	code   int
	stdout string
	stderr string
}

func execute(t *testing.T, args ...string) cliResult {
	t.Helper()
	var out, errOut bytes.Buffer
	code := Execute(args, &out, &errOut)
	return cliResult{code: code, stdout: out.String(), stderr: errOut.String()}
}

// setupProject makes a project with `anek new` and writes files relative
// to its .anek directory.
func setupProject(t *testing.T, files map[string]string) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("ANEK_SHELL_BACKEND", "builtin")

	dir := t.TempDir()
	res := execute(t, "-q", "-C", dir, "new")
	require.Equal(t, 0, res.code, res.stderr)

	for rel, content := range files {
		path := filepath.Join(dir, ".anek", rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

var siteFiles = map[string]string{
	"inputs/site":     "host=example.com\nport=80\n",
	"inputs/local":    "host=localhost\nport=8080\n",
	"batch/all":       "site\nlocal\n",
	"commands/greet":  "echo hello {host}\n",
	"commands/port":   "echo {port}\n",
	"pipelines/both":  "greet\nport\n",
	"loops/sizes.d/w": "1\n2\n",
}

func TestExecute_New(t *testing.T) {
	dir := setupProject(t, nil)

	res := execute(t, "-q", "-C", dir, "new", "sub", "--variables", "host,port")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stderr, "Created "+filepath.Join(dir, "sub"))

	res = execute(t, "-q", "-C", filepath.Join(dir, "sub"), "list", "-V")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "host\nport\n", res.stdout)

	res = execute(t, "-q", "-C", dir, "new")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Error: ")
}

func TestExecute_Run(t *testing.T) {
	dir := setupProject(t, siteFiles)

	res := execute(t, "-q", "-C", dir, "run", "greet", "-i", "site")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "echo hello example.com\nhello example.com\n", res.stdout)
	assert.Contains(t, res.stderr, "Job 1 [1 of 1]: site\n")
	assert.Contains(t, res.stderr, "Command (greet): ")
}

func TestExecute_RunDemoBatch(t *testing.T) {
	dir := setupProject(t, siteFiles)

	res := execute(t, "-q", "-C", dir, "run", "greet", "-b", "all", "--demo")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "echo hello example.com\necho hello localhost\n", res.stdout)
	assert.Contains(t, res.stderr, "Job 2 [2 of 2]: local")
}

func TestExecute_RunPipablePipeline(t *testing.T) {
	dir := setupProject(t, siteFiles)

	res := execute(t, "-q", "-C", dir, "run", "-p", "both", "-b", "all", "-s", "2", "-P")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "echo hello localhost\necho 8080\n", res.stdout)
	assert.Empty(t, res.stderr)
}

func TestExecute_RunInlineWithArgs(t *testing.T) {
	dir := setupProject(t, siteFiles)

	res := execute(t, "-q", "-C", dir, "run", "-t", "echo {ARG1} {w}", "-l", "sizes", "-d", "--", "world")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "echo world 1\necho world 2\n", res.stdout)
	assert.Contains(t, res.stderr, "Command (-T-): ")
}

func TestExecute_RunFailure(t *testing.T) {
	dir := setupProject(t, siteFiles)

	res := execute(t, "-q", "-C", dir, "run", "-t", "exit 3")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Command (-T-) exited with status 3")
	assert.Contains(t, res.stderr, "Error: ")
	assert.Contains(t, res.stderr, "1 of 1 commands failed")
}

func TestExecute_Timing(t *testing.T) {
	dir := setupProject(t, siteFiles)

	res := execute(t, "-C", dir, "view")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, dir+"\n", res.stdout)
	assert.Contains(t, res.stderr, "Started at  : ")
	assert.Contains(t, res.stderr, "Time Elapsed: ")

	res = execute(t, "-q", "-C", dir, "view")
	assert.Empty(t, res.stderr)

	res = execute(t, "-C", dir, "version")
	assert.NotContains(t, res.stderr, "Started at")
}

func TestExecute_NoProject(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	dir := t.TempDir()

	res := execute(t, "-q", "-C", dir, "run", "greet")
	assert.Equal(t, 1, res.code)
	assert.True(t, strings.HasPrefix(res.stderr, "Error: "), res.stderr)
	assert.Contains(t, res.stderr, "No .anek configuration")
}

func TestExecute_Render(t *testing.T) {
	files := map[string]string{
		"templates/table": "| host |\n----8<----\n| {host} |\n",
	}
	for k, v := range siteFiles {
		files[k] = v
	}
	dir := setupProject(t, files)

	res := execute(t, "-q", "-C", dir, "render", "--stored", "table", "-b", "all")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "| host |\n| example.com |\n| localhost |\n", res.stdout)
}

func TestExecute_Export(t *testing.T) {
	dir := setupProject(t, siteFiles)

	res := execute(t, "-q", "-C", dir, "export", "--vars", "host,port", "-b", "all")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "host,port\nexample.com,80\nlocalhost,8080\n", res.stdout)
}

func TestExecute_ShowAndList(t *testing.T) {
	dir := setupProject(t, siteFiles)

	res := execute(t, "-q", "-C", dir, "show", "commands/greet")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "echo hello {host}\n", res.stdout)

	res = execute(t, "-q", "-C", dir, "list", "-c", "--has", "port")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "port\n", res.stdout)

	res = execute(t, "-q", "-C", dir, "list", "-i", "-s", "localhost")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "local\n1: host=localhost\nsite\n", res.stdout)
}

func TestExecute_Variable(t *testing.T) {
	dir := setupProject(t, siteFiles)

	res := execute(t, "-q", "-C", dir, "variable", "--scan-inputs", "--add")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "New: host\nNew: port\n", res.stdout)

	res = execute(t, "-q", "-C", dir, "variable", "--list")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "⇒ host      : \n⇒ port      : \n", res.stdout)
}

func TestExecute_Report(t *testing.T) {
	dir := setupProject(t, siteFiles)

	res := execute(t, "-q", "-C", dir, "report", "-f", "doc")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stderr, "Generating report "+filepath.Join(dir, "doc.md"))

	data, err := os.ReadFile(filepath.Join(dir, "doc.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "## greet\n```\necho hello {host}\n```\n")
}

func TestExecute_Graph(t *testing.T) {
	dir := setupProject(t, siteFiles)

	res := execute(t, "-q", "-C", dir, "graph", "-n")
	require.Equal(t, 0, res.code, res.stderr)
	assert.True(t, strings.HasPrefix(res.stdout, "digraph anek{\n"))
	assert.Contains(t, res.stdout, `"greet" -> "port" -> "both" [color=blue]`)
	assert.NotContains(t, res.stdout, "subgraph")
}

func TestExecute_Config(t *testing.T) {
	dir := setupProject(t, nil)

	res := execute(t, "-q", "-C", dir, "config")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "[shell]")
	assert.Contains(t, res.stdout, "builtin")
}

func TestExecute_HelpTopic(t *testing.T) {
	res := execute(t, "help", "topics")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "templates")
	assert.Contains(t, res.stdout, "batch")
	assert.NotContains(t, res.stderr, "Started at")
}

func TestExecute_StylesFile(t *testing.T) {
	dir := setupProject(t, map[string]string{
		"config.toml": "[output]\nstyles = \"colors.yaml\"\n",
	})

	res := execute(t, "-q", "-C", dir, "list", "-V")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "styles file")

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".anek", "colors.yaml"),
		[]byte("colors: {}\nstyles:\n  Muted: {bold: true}\n"), 0644))
	res = execute(t, "-q", "-C", dir, "list", "-V")
	assert.Equal(t, 0, res.code, res.stderr)
}
