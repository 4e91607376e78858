package payload_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/transfer-payload-converter/internal/catalog"
	"github.com/ginjaninja78/transfer-payload-converter/internal/payload"
	"github.com/ginjaninja78/transfer-payload-converter/internal/types"
)

func TestBuild_Success(t *testing.T) {
	t.Run("tab separated lines keep input order", func(t *testing.T) {
		result, err := payload.Build("A\tB\nC\tD", payload.OutcomeSuccess, payload.NoSelection())
		require.NoError(t, err)

		want := []types.TransferRecord{
			{ID: "A", StepID: "B", Status: types.StatusSettled},
			{ID: "C", StepID: "D", Status: types.StatusSettled},
		}
		if diff := cmp.Diff(want, result.Envelope.Requests); diff != "" {
			t.Fatalf("requests mismatch (-want +got):\n%s", diff)
		}
		assert.False(t, result.Envelope.SkipTerminalStatusCheck)
		assert.Empty(t, result.Skipped)
		assert.Equal(t, "Generated payload for 2 transfers", result.Summary())
	})

	t.Run("space separated line uses whitespace fallback", func(t *testing.T) {
		result, err := payload.Build("A B", payload.OutcomeSuccess, payload.NoSelection())
		require.NoError(t, err)

		require.Len(t, result.Envelope.Requests, 1)
		assert.Equal(t, types.TransferRecord{ID: "A", StepID: "B", Status: types.StatusSettled}, result.Envelope.Requests[0])
		assert.Equal(t, "Generated payload for 1 transfer", result.Summary())
	})

	t.Run("success ignores a selection and carries no result fields", func(t *testing.T) {
		result, err := payload.Build("A\tB", payload.OutcomeSuccess, payload.SelectIndex(2))
		require.NoError(t, err)

		record := result.Envelope.Requests[0]
		assert.Empty(t, record.ResultCode)
		assert.Empty(t, record.ResultDescription)
	})

	t.Run("tokens are trimmed and extra tokens ignored", func(t *testing.T) {
		result, err := payload.Build("  A \t B \textra\r\nC   D   E", payload.OutcomeSuccess, payload.NoSelection())
		require.NoError(t, err)

		want := []types.TransferRecord{
			{ID: "A", StepID: "B", Status: types.StatusSettled},
			{ID: "C", StepID: "D", Status: types.StatusSettled},
		}
		if diff := cmp.Diff(want, result.Envelope.Requests); diff != "" {
			t.Fatalf("requests mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("a tab split keeps spaces inside the step id", func(t *testing.T) {
		result, err := payload.Build("A\tB C", payload.OutcomeSuccess, payload.NoSelection())
		require.NoError(t, err)
		assert.Equal(t, "B C", result.Envelope.Requests[0].StepID)
	})
}

func TestBuild_SkipsMalformedLines(t *testing.T) {
	input := "A\tB\n\n   \nlonely\nC\t\tD\n D E\nF G"

	result, err := payload.Build(input, payload.OutcomeSuccess, payload.NoSelection())
	require.NoError(t, err)

	ids := make([]string, 0, len(result.Envelope.Requests))
	for _, r := range result.Envelope.Requests {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"A", "F"}, ids)

	assert.Equal(t, 5, result.LinesRead)
	assert.Equal(t, []payload.SkippedLine{
		{Number: 4, Text: "lonely", Reason: payload.ReasonTooFewTokens},
		{Number: 5, Text: "C\t\tD", Reason: payload.ReasonEmptyToken},
		{Number: 6, Text: " D E", Reason: payload.ReasonEmptyToken},
	}, result.Skipped)
}

func TestBuild_ErrorOutcome(t *testing.T) {
	t.Run("selected descriptor is attached to every record", func(t *testing.T) {
		result, err := payload.Build("A\tB\nC D", payload.OutcomeError, payload.SelectIndex(2))
		require.NoError(t, err)

		for _, record := range result.Envelope.Requests {
			assert.Equal(t, types.StatusError, record.Status)
			assert.Equal(t, "checkout_card/400", record.ResultCode)
			assert.Equal(t, "token_used", record.ResultDescription)
		}
	})

	t.Run("every catalog entry resolves exactly", func(t *testing.T) {
		for i, entry := range catalog.Default().Entries() {
			result, err := payload.Build("A\tB", payload.OutcomeError, payload.SelectIndex(i))
			require.NoError(t, err)
			assert.Equal(t, entry.Code, result.Envelope.Requests[0].ResultCode)
			assert.Equal(t, entry.Description, result.Envelope.Requests[0].ResultDescription)
		}
	})

	t.Run("out of range selection falls back to generic", func(t *testing.T) {
		result, err := payload.Build("A\tB", payload.OutcomeError, payload.SelectIndex(99))
		require.NoError(t, err)

		record := result.Envelope.Requests[0]
		assert.Equal(t, "generic_error", record.ResultCode)
		assert.Equal(t, "An error occurred during processing", record.ResultDescription)
	})

	t.Run("non numeric selection falls back to generic", func(t *testing.T) {
		result, err := payload.Build("A\tB", payload.OutcomeError, payload.ParseSelection("abc"))
		require.NoError(t, err)
		assert.Equal(t, "generic_error", result.Envelope.Requests[0].ResultCode)
	})

	t.Run("selection with trailing text uses its leading integer", func(t *testing.T) {
		result, err := payload.Build("A\tB", payload.OutcomeError, payload.ParseSelection("2abc"))
		require.NoError(t, err)
		assert.Equal(t, "checkout_card/400", result.Envelope.Requests[0].ResultCode)
		assert.Equal(t, "token_used", result.Envelope.Requests[0].ResultDescription)
	})

	t.Run("missing selection aborts the build", func(t *testing.T) {
		result, err := payload.Build("A\tB\nC\tD", payload.OutcomeError, payload.NoSelection())
		assert.Nil(t, result)
		require.ErrorIs(t, err, payload.ErrMissingErrorSelection)

		var buildErr *payload.BuildError
		require.True(t, errors.As(err, &buildErr))
		assert.Equal(t, payload.CodeMissingErrorSelection, buildErr.Code)
		assert.Equal(t, "Please select an error code for ERROR status", buildErr.Error())
	})

	t.Run("custom catalog is used for resolution", func(t *testing.T) {
		b := payload.NewBuilder(catalog.New([]catalog.ErrorDescriptor{{Code: "ops/1", Description: "custom"}}))

		result, err := b.Build("A\tB", payload.OutcomeError, payload.SelectIndex(0))
		require.NoError(t, err)
		assert.Equal(t, "ops/1", result.Envelope.Requests[0].ResultCode)
	})
}

func TestBuild_Failures(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		outcome   payload.Outcome
		selection payload.Selection
		want      error
		code      string
	}{
		{"empty input", "", payload.OutcomeSuccess, payload.NoSelection(), payload.ErrEmptyInput, payload.CodeEmptyInput},
		{"blank input", " \n\t\n  ", payload.OutcomeSuccess, payload.NoSelection(), payload.ErrEmptyInput, payload.CodeEmptyInput},
		{"only malformed lines", "one\ntwo\n\tthree", payload.OutcomeSuccess, payload.NoSelection(), payload.ErrNoValidRecords, payload.CodeNoValidRecords},
		{"malformed lines with error outcome and no selection", "one\ntwo", payload.OutcomeError, payload.NoSelection(), payload.ErrNoValidRecords, payload.CodeNoValidRecords},
		{"empty input wins over missing selection", "", payload.OutcomeError, payload.NoSelection(), payload.ErrEmptyInput, payload.CodeEmptyInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := payload.Build(tt.input, tt.outcome, tt.selection)

			assert.Nil(t, result)
			require.ErrorIs(t, err, tt.want)

			var buildErr *payload.BuildError
			require.ErrorAs(t, err, &buildErr)
			assert.Equal(t, tt.code, buildErr.Code)
			assert.NotEmpty(t, buildErr.Message)
		})
	}
}
