package format_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/stylefmt/pkg/format"
	"github.com/yaklabco/stylefmt/pkg/syntax"
)

func identity() format.TransformFunc {
	return func(_ context.Context, root *syntax.Root, _ *format.Options) (*syntax.Root, error) {
		return root, nil
	}
}

func TestFormat_Identity(t *testing.T) {
	t.Parallel()

	f := format.New(syntax.SCSS{}, identity())
	res, err := f.Format(context.Background(), "a { color: red }", "a.css", &format.Options{})
	require.NoError(t, err)

	assert.Equal(t, "a.css", res.Identifier)
	assert.Equal(t, res.Original, res.Formatted)
	assert.False(t, res.Changed)
}

func TestFormat_Changed(t *testing.T) {
	t.Parallel()

	addNewline := format.TransformFunc(func(_ context.Context, root *syntax.Root, _ *format.Options) (*syntax.Root, error) {
		root.After = "\n"
		return root, nil
	})

	res, err := format.New(syntax.SCSS{}, addNewline).Format(context.Background(), "a{}", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "a{}\n", res.Formatted)
	assert.True(t, res.Changed)
	assert.Empty(t, res.Identifier)
}

func TestFormat_ParseError(t *testing.T) {
	t.Parallel()

	f := format.New(syntax.SCSS{}, identity())
	_, err := f.Format(context.Background(), "a {", "broken.scss", nil)
	require.Error(t, err)

	var fe *format.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "broken.scss", fe.Identifier)
	require.ErrorIs(t, err, format.ErrTransform)
	require.ErrorIs(t, err, syntax.ErrSyntax)
	assert.Contains(t, err.Error(), "broken.scss: ")
}

func TestFormat_TransformError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	failing := format.TransformFunc(func(context.Context, *syntax.Root, *format.Options) (*syntax.Root, error) {
		return nil, boom
	})

	_, err := format.New(syntax.SCSS{}, failing).Format(context.Background(), "a{}", "", nil)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), format.StdinName)
}

func TestFormat_NilTree(t *testing.T) {
	t.Parallel()

	empty := format.TransformFunc(func(context.Context, *syntax.Root, *format.Options) (*syntax.Root, error) {
		return nil, nil //nolint:nilnil // exercising the guard
	})

	_, err := format.New(syntax.SCSS{}, empty).Format(context.Background(), "a{}", "x.css", nil)
	require.ErrorIs(t, err, format.ErrTransform)
}

func TestFormat_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := format.New(syntax.SCSS{}, identity()).Format(ctx, "a{}", "x.css", nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestOptions_RuleConfig(t *testing.T) {
	t.Parallel()

	var opts *format.Options
	require.NotNil(t, opts.RuleConfig())
	assert.Equal(t, 2, opts.RuleConfig().Indent)
}

func TestDisplayName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "<stdin>", format.DisplayName(""))
	assert.Equal(t, "virtual.scss", format.DisplayName("virtual.scss"))
}
