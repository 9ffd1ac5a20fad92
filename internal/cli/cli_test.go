package cli

import (
	"bytes"
	"context"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagebox/pkg/errors"
	"pagebox/pkg/render"
)

const report = "testdata/report.toml"

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	root := NewRootCommand(&logs)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), logs.String(), err
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	out, logs, err := execute(t, "render", report, "-o", dir, "--scale", "2")
	require.NoError(t, err)

	for _, name := range []string{"report-001.png", "report-002.png", "report-003.png"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
		assert.Contains(t, out, name)
	}
	assert.Contains(t, logs, "rendered")
}

func TestRenderCommandPrefix(t *testing.T) {
	dir := t.TempDir()
	_, _, err := execute(t, "render", report, "-o", dir, "--prefix", "page")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "page-001.png"))
	assert.NoError(t, err)
}

func TestRenderCommandMissingFile(t *testing.T) {
	_, _, err := execute(t, "render", "testdata/missing.toml", "-o", t.TempDir())
	assert.Error(t, err)
}

func TestInspectCommand(t *testing.T) {
	out, _, err := execute(t, "inspect", report, "--elements")
	require.NoError(t, err)

	assert.Contains(t, out, "report")
	assert.Contains(t, out, "page size")
	assert.Contains(t, out, "first")
	assert.Contains(t, out, "third")
	assert.Contains(t, out, "total")
}

func TestVerboseLogging(t *testing.T) {
	_, logs, err := execute(t, "render", report, "-o", t.TempDir(), "-v")
	require.NoError(t, err)
	assert.Contains(t, logs, "DEBU")

	_, logs, err = execute(t, "inspect", report)
	require.NoError(t, err)
	assert.Contains(t, logs, "document prepared")
	assert.NotContains(t, logs, "DEBU")
}

func TestRenderFile(t *testing.T) {
	pages, p, err := RenderFile(context.Background(), report, Options{Scale: 2}, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, p.PageCounts())
	require.Equal(t, 3, pages.PageCount())
	assert.Equal(t, 400, pages.Page(0).Bounds().Dx())
}

func TestLoggerFromContext(t *testing.T) {
	assert.Same(t, log.Default(), loggerFromContext(context.Background()))

	l := newLogger(&bytes.Buffer{}, log.WarnLevel)
	assert.Same(t, l, loggerFromContext(withLogger(context.Background(), l)))
}

func TestCheckCommand(t *testing.T) {
	refs := t.TempDir()
	out, _, err := execute(t, "check", report, "--refs", refs, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "report-003.png")

	out, _, err = execute(t, "check", report, "--refs", refs)
	require.NoError(t, err)
	assert.Contains(t, out, "match")

	// a blank reference makes the first page differ
	blank, err := render.LoadPNG(filepath.Join(refs, "report-002.png"))
	require.NoError(t, err)
	require.NoError(t, render.SavePNG(filepath.Join(refs, "report-001.png"), image.NewRGBA(blank.Bounds())))

	diffs := t.TempDir()
	_, _, err = execute(t, "check", report, "--refs", refs, "--diffs", diffs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeRenderFailed))
	_, err = os.Stat(filepath.Join(diffs, "report-001.png"))
	assert.NoError(t, err)
}

func TestCheckCommandRequiresRefs(t *testing.T) {
	_, _, err := execute(t, "check", report)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidArgument))
}
