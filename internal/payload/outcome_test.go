package payload_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/transfer-payload-converter/internal/payload"
	"github.com/ginjaninja78/transfer-payload-converter/internal/types"
)

func TestParseOutcome(t *testing.T) {
	for _, in := range []string{"SUCCESS", "success", " Success "} {
		got, err := payload.ParseOutcome(in)
		require.NoError(t, err, in)
		assert.Equal(t, payload.OutcomeSuccess, got)
		assert.Equal(t, types.StatusSettled, got.Status())
	}

	got, err := payload.ParseOutcome("error")
	require.NoError(t, err)
	assert.Equal(t, types.StatusError, got.Status())

	_, err = payload.ParseOutcome("SETTLED")
	assert.Error(t, err)
}

func TestParseSelection(t *testing.T) {
	t.Run("empty is no selection", func(t *testing.T) {
		_, ok := payload.ParseSelection("  ").Index()
		assert.False(t, ok)
	})

	t.Run("integer", func(t *testing.T) {
		index, ok := payload.ParseSelection("7").Index()
		assert.True(t, ok)
		assert.Equal(t, 7, index)
		assert.Equal(t, "7", payload.ParseSelection(" 7 ").String())
	})

	t.Run("leading integer", func(t *testing.T) {
		for input, want := range map[string]int{"2abc": 2, "1.5": 1, "+3": 3, "-1": -1, "04": 4} {
			index, ok := payload.ParseSelection(input).Index()
			assert.True(t, ok, input)
			assert.Equal(t, want, index, input)
		}
	})

	t.Run("garbage is a selection that matches nothing", func(t *testing.T) {
		for _, input := range []string{"x", "abc2", "+", ".5"} {
			index, ok := payload.ParseSelection(input).Index()
			assert.True(t, ok, input)
			assert.Equal(t, -1, index, input)
		}
	})
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, payload.Tokenize("A\tB"))
	assert.Equal(t, []string{"A", "B"}, payload.Tokenize("A   B"))
	assert.Equal(t, []string{"", "A", "B"}, payload.Tokenize(" A B"))
	assert.Equal(t, []string{"single"}, payload.Tokenize("single"))
}

func TestSplitLines(t *testing.T) {
	lines := payload.SplitLines("\n\nA B\n\n  \nC D\n")
	assert.Equal(t, []payload.Line{
		{Number: 1, Text: "A B"},
		{Number: 4, Text: "C D"},
	}, lines)

	assert.Nil(t, payload.SplitLines(" \n "))
}
