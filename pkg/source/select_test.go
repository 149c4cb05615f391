package source_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/stylefmt/pkg/source"
)

func TestSelect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		sel  source.Selection
		want source.Mode
	}{
		{"stdin", source.Selection{StdinIdentifier: "x.scss"}, source.StandardInput{Identifier: "x.scss"}},
		{"single", source.Selection{Args: []string{"a.css"}}, source.SingleFile{Input: "a.css"}},
		{"single with output", source.Selection{Args: []string{"a.css", "b.css"}}, source.SingleFile{Input: "a.css", Output: "b.css"}},
		{"list", source.Selection{List: "a.css", Args: []string{"b.css"}}, source.FileList{Paths: []string{"a.css", "b.css"}}},
		{"recursive", source.Selection{Recursive: "src"}, source.RecursiveWalk{Root: "src"}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			mode, err := source.Select(testCase.sel)
			require.NoError(t, err)
			assert.Equal(t, testCase.want, mode)
		})
	}
}

func TestSelect_Conflicts(t *testing.T) {
	t.Parallel()

	_, err := source.Select(source.Selection{List: "a.css", Recursive: "src"})
	require.ErrorIs(t, err, source.ErrConflictingModes)

	_, err = source.Select(source.Selection{Recursive: "src", Args: []string{"a.css"}})
	require.ErrorIs(t, err, source.ErrConflictingModes)

	_, err = source.Select(source.Selection{Args: []string{"a", "b", "c"}})
	require.ErrorIs(t, err, source.ErrTooManyArgs)
}

func TestMode_Batch(t *testing.T) {
	t.Parallel()

	assert.True(t, source.FileList{}.Batch())
	assert.True(t, source.RecursiveWalk{}.Batch())
	assert.False(t, source.SingleFile{}.Batch())
	assert.False(t, source.StandardInput{}.Batch())
	assert.Equal(t, "stdin", source.StandardInput{}.Name())
}
