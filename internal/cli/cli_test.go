package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"go-stack-defense/internal/defs"
	"go-stack-defense/pkg/gridmap"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func writeCatalog(t *testing.T, dir string) string {
	t.Helper()
	writeFile(t, filepath.Join(dir, "walls", "corner.txt"), "2\n2\n1 1\n1 0\n")
	writeFile(t, filepath.Join(dir, "towers", "pillar.txt"), "1\n1\n3\n")
	catalog := filepath.Join(dir, "catalog.yaml")
	writeFile(t, catalog, "walls:\n  corner: corner.txt\ntowers:\n  pillar: pillar.txt\n")
	return catalog
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	root := NewRootCommand(&logs)
	root.SetArgs(args)
	root.SetOut(&out)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCatalogCommand(t *testing.T) {
	catalog := writeCatalog(t, t.TempDir())

	out, err := run(t, "catalog", "--heights", catalog)
	require.NoError(t, err)
	assert.Contains(t, out, "2 templates")
	assert.Contains(t, out, "walls/corner")
	assert.Contains(t, out, "towers/pillar")
	assert.Contains(t, out, "1 .")
	assert.Less(t, bytes.Index([]byte(out), []byte("walls/corner")), bytes.Index([]byte(out), []byte("towers/pillar")))
}

func TestCatalogCommandMissingFile(t *testing.T) {
	_, err := run(t, "catalog", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)

	_, err = run(t, "catalog")
	assert.Error(t, err, "argument is required")
}

func TestParseCommand(t *testing.T) {
	dir := t.TempDir()
	catalog := writeCatalog(t, dir)
	layout := filepath.Join(dir, "layout.txt")
	writeFile(t, layout, "5\n3\n1 1 0 0 3\n1 0 0 0 0\n0 0 2 2 0\n")

	out, err := run(t, "parse", "--map", "-c", catalog, layout)
	require.NoError(t, err)
	assert.Contains(t, out, "5x3 grid, 3 structures")
	assert.Contains(t, out, "corner")
	assert.Contains(t, out, "pillar")
	assert.Contains(t, out, "unrecognized")
	assert.Contains(t, out, "2 of 3 recognized")
	assert.Contains(t, out, "AA..B")
	assert.Contains(t, out, "..CC.")
}

func TestParseCommandRejectsBadLayout(t *testing.T) {
	layout := filepath.Join(t.TempDir(), "bad.txt")
	writeFile(t, layout, "2\n2\n1 1\n")
	_, err := run(t, "parse", layout)
	assert.ErrorIs(t, err, defs.ErrMalformedTemplate)

	writeFile(t, layout, "100000\n100000\n1 1\n")
	_, err = run(t, "parse", layout)
	assert.ErrorIs(t, err, defs.ErrMalformedTemplate)
}

func TestParseCommandVerboseLogsCatalog(t *testing.T) {
	dir := t.TempDir()
	catalog := writeCatalog(t, dir)
	layout := filepath.Join(dir, "layout.txt")
	writeFile(t, layout, "1\n1\n3\n")

	var out, logs bytes.Buffer
	root := NewRootCommand(&logs)
	root.SetArgs([]string{"parse", "-v", "-c", catalog, layout})
	root.SetOut(&out)
	require.NoError(t, root.ExecuteContext(context.Background()))
	assert.Contains(t, logs.String(), "catalog loaded")
	assert.Contains(t, logs.String(), "templates=2")
}

func TestGroupMap(t *testing.T) {
	g := gridmap.NewGrid(3, 1)
	g.SetHeight(0, 0, 1)
	g.SetGroup(0, 0, 2)
	g.SetHeight(2, 0, 1)
	g.SetGroup(2, 0, 2+len(groupGlyphs))
	assert.Equal(t, []string{"A.A"}, groupMap(g))
}

func TestLoggerFromContext(t *testing.T) {
	assert.Same(t, log.Default(), loggerFromContext(context.Background()))

	var buf bytes.Buffer
	l := newLogger(&buf, log.DebugLevel)
	ctx := withLogger(context.Background(), l)
	assert.Same(t, l, loggerFromContext(ctx))

	l.Debug("hello")
	assert.Contains(t, buf.String(), "hello")
}

func TestSetVersion(t *testing.T) {
	SetVersion("1.2.3", "abc")
	defer SetVersion("dev", "")

	out, err := run(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "stackctl 1.2.3")
	assert.Contains(t, out, "commit: abc")
}
