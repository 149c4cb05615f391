package sink_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/stylefmt/pkg/diff"
	"github.com/yaklabco/stylefmt/pkg/format"
	"github.com/yaklabco/stylefmt/pkg/fsutil"
	"github.com/yaklabco/stylefmt/pkg/sink"
	"github.com/yaklabco/stylefmt/pkg/source"
)

const (
	original  = "a{color:red;}"
	formatted = "a {\n  color: red;\n}\n"
)

func loadUnit(t *testing.T, path string) source.WorkUnit {
	t.Helper()

	text, info, err := fsutil.ReadText(context.Background(), path)
	require.NoError(t, err)
	return source.WorkUnit{Identifier: path, Path: path, OutputPath: path, Text: text, Info: info}
}

func writeFile(t *testing.T, dir, name, content string, mode os.FileMode) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), mode))
	return path
}

func result(unit source.WorkUnit, out string) *format.Result {
	return &format.Result{
		Identifier: unit.Identifier,
		Original:   unit.Text,
		Formatted:  out,
		Changed:    unit.Text != out,
	}
}

func TestWriteIfChanged_UnchangedDoesNotTouchFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "a.css", formatted, 0o644)
	past := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(path, past, past))

	unit := loadUnit(t, path)
	emitted, err := sink.WriteIfChanged{}.Emit(context.Background(), unit, result(unit, formatted))
	require.NoError(t, err)
	assert.False(t, emitted)

	stat, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, stat.ModTime().Equal(past), "mtime changed")
}

func TestWriteIfChanged_WritesAndKeepsMode(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "a.css", original, 0o600)
	unit := loadUnit(t, path)

	emitted, err := sink.WriteIfChanged{}.Emit(context.Background(), unit, result(unit, formatted))
	require.NoError(t, err)
	assert.True(t, emitted)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, formatted, string(content))

	stat, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), stat.Mode().Perm())
}

func TestWriteIfChanged_SeparateOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "in.css", original, 0o644)
	unit := loadUnit(t, path)
	unit.OutputPath = filepath.Join(dir, "out.css")

	_, err := sink.WriteIfChanged{}.Emit(context.Background(), unit, result(unit, formatted))
	require.NoError(t, err)

	content, err := os.ReadFile(unit.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, formatted, string(content))

	input, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(input))
}

func TestWriteIfChanged_ConcurrentModification(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "a.css", original, 0o644)
	unit := loadUnit(t, path)

	require.NoError(t, os.WriteFile(path, []byte("b{}\n/* edited elsewhere */"), 0o644))

	_, err := sink.WriteIfChanged{}.Emit(context.Background(), unit, result(unit, formatted))
	require.ErrorIs(t, err, sink.ErrConcurrentModification)
	require.ErrorIs(t, err, format.ErrOutputWrite)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "edited elsewhere")
}

func TestDiffPreview_ShowsDiffAndKeepsOriginal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "style.css", original, 0o644)
	unit := loadUnit(t, path)

	var out bytes.Buffer
	preview := sink.NewDiffPreview(nil, &out, nil, dir)

	emitted, err := preview.Emit(context.Background(), unit, result(unit, formatted))
	require.NoError(t, err)
	assert.True(t, emitted)

	assert.Contains(t, out.String(), "--- a/style.css")
	assert.Contains(t, out.String(), "-a{color:red;}")
	assert.Contains(t, out.String(), "+  color: red;")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(content))
}

func TestDiffPreview_UnchangedPrintsNothing(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "style.css", formatted, 0o644)
	unit := loadUnit(t, path)

	var out bytes.Buffer
	emitted, err := sink.NewDiffPreview(nil, &out, nil, "").Emit(context.Background(), unit, result(unit, formatted))
	require.NoError(t, err)
	assert.False(t, emitted)
	assert.Empty(t, out.String())
}

func TestDiffPreview_StandardInput(t *testing.T) {
	t.Parallel()

	unit := source.WorkUnit{Identifier: "virtual.scss", Text: original}

	var out bytes.Buffer
	_, err := sink.NewDiffPreview(nil, &out, nil, "").Emit(context.Background(), unit, result(unit, formatted))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "--- a/virtual.scss")
	assert.Contains(t, out.String(), "+}")
}

type recordingDiffer struct {
	paths []string
	text  string
	err   error
}

func (r *recordingDiffer) Diff(_ context.Context, oldFile, newFile diff.File) (string, error) {
	r.paths = append(r.paths, oldFile.Path, newFile.Path)
	return r.text, r.err
}

func TestDiffPreview_UnchangedStillDiffsTempFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "style.css", formatted, 0o644)
	unit := loadUnit(t, path)
	differ := &recordingDiffer{}

	var out bytes.Buffer
	emitted, err := sink.NewDiffPreview(differ, &out, nil, "").Emit(context.Background(), unit, result(unit, formatted))
	require.NoError(t, err)
	assert.False(t, emitted)
	assert.Empty(t, out.String())

	require.Len(t, differ.paths, 2)
	assert.Equal(t, path, differ.paths[0])
	_, statErr := os.Stat(differ.paths[1])
	assert.True(t, os.IsNotExist(statErr), "temp file %s left behind", differ.paths[1])
}

type bracketRenderer struct{}

func (bracketRenderer) RenderDiff(text string) string { return "[" + text + "]" }

func TestDiffPreview_UsesRenderer(t *testing.T) {
	t.Parallel()

	unit := source.WorkUnit{Identifier: "virtual.css", Text: original}
	differ := &recordingDiffer{text: "diff body\n"}

	var out bytes.Buffer
	emitted, err := sink.NewDiffPreview(differ, &out, bracketRenderer{}, "").Emit(context.Background(), unit, result(unit, formatted))
	require.NoError(t, err)
	assert.True(t, emitted)
	assert.Equal(t, "[diff body\n]", out.String())
}

func TestDiffPreview_TempFilesRemovedOnFailure(t *testing.T) {
	t.Parallel()

	differ := &recordingDiffer{err: errors.New("diff tool crashed")}
	unit := source.WorkUnit{Text: original}

	var out bytes.Buffer
	_, err := sink.NewDiffPreview(differ, &out, nil, "").Emit(context.Background(), unit, result(unit, formatted))
	require.ErrorIs(t, err, format.ErrOutputWrite)
	assert.Contains(t, err.Error(), format.StdinName)

	require.Len(t, differ.paths, 2)
	for _, p := range differ.paths {
		_, statErr := os.Stat(p)
		assert.True(t, os.IsNotExist(statErr), "temp file %s left behind", p)
	}
	assert.Empty(t, out.String())
}

func TestStreamToStdout(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	stream := sink.NewStreamToStdout(&out)
	unit := source.WorkUnit{Identifier: "x.scss", Text: formatted}

	emitted, err := stream.Emit(context.Background(), unit, result(unit, formatted))
	require.NoError(t, err)
	assert.True(t, emitted)
	assert.Equal(t, formatted, out.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestStreamToStdout_WriteError(t *testing.T) {
	t.Parallel()

	unit := source.WorkUnit{Text: original}
	_, err := sink.NewStreamToStdout(failingWriter{}).Emit(context.Background(), unit, result(unit, formatted))
	require.ErrorIs(t, err, format.ErrOutputWrite)
}
