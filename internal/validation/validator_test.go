package validation_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/transfer-payload-converter/internal/catalog"
	"github.com/ginjaninja78/transfer-payload-converter/internal/payload"
	"github.com/ginjaninja78/transfer-payload-converter/internal/types"
	"github.com/ginjaninja78/transfer-payload-converter/internal/validation"
)

func rules(result *validation.ValidationResult) []string {
	out := make([]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		out = append(out, e.Field+":"+e.Rule)
	}
	return out
}

func TestValidateEnvelope_BuiltPayloadsAreValid(t *testing.T) {
	for _, outcome := range []payload.Outcome{payload.OutcomeSuccess, payload.OutcomeError} {
		result, err := payload.Build(payload.SampleInput, outcome, payload.SelectIndex(4))
		require.NoError(t, err)

		report := validation.ValidateEnvelope(result.Envelope)
		assert.True(t, report.IsValid, validation.FormatErrors(report.Errors))
		assert.Empty(t, report.Errors)
		assert.Equal(t, 3, report.EntriesValidated)
	}
}

func TestValidateEnvelope_Violations(t *testing.T) {
	t.Run("empty envelope", func(t *testing.T) {
		report := validation.ValidateEnvelope(types.PayloadEnvelope{SkipTerminalStatusCheck: true})

		assert.False(t, report.IsValid)
		assert.Equal(t, 2, report.ErrorCount)
		assert.Equal(t, []string{"skipTerminalStatusCheck:must_be_false", "requests:non_empty"}, rules(report))
	})

	t.Run("result field invariant", func(t *testing.T) {
		report := validation.ValidateEnvelope(types.PayloadEnvelope{Requests: []types.TransferRecord{
			{ID: "A", StepID: "B", Status: types.StatusError, ResultCode: "x/1"},
			{ID: "C", StepID: "D", Status: types.StatusSettled, ResultCode: "x/1", ResultDescription: "d"},
		}})

		assert.False(t, report.IsValid)
		assert.Equal(t, []string{
			"resultDescription:required_for_error",
			"resultCode:forbidden_for_settled",
			"resultDescription:forbidden_for_settled",
		}, rules(report))
		assert.Equal(t, 0, report.Errors[0].Index)
		assert.Equal(t, 1, report.Errors[1].Index)
	})

	t.Run("identifiers and status", func(t *testing.T) {
		report := validation.ValidateEnvelope(types.PayloadEnvelope{Requests: []types.TransferRecord{
			{ID: " ", StepID: "B C", Status: "PENDING"},
		}})

		assert.Equal(t, []string{"id:required", "stepId:whitespace", "status:enum"}, rules(report))
		assert.Equal(t, 2, report.ErrorCount)
		assert.Equal(t, 1, report.WarningCount)
	})

	t.Run("duplicates are warnings", func(t *testing.T) {
		record := types.TransferRecord{ID: "A", StepID: "B", Status: types.StatusSettled}
		report := validation.ValidateEnvelope(types.PayloadEnvelope{Requests: []types.TransferRecord{record, record}})

		assert.True(t, report.IsValid)
		assert.Equal(t, []string{"id:duplicate"}, rules(report))

		strict := validation.NewValidatorWithOptions(validation.ValidationOptions{TreatWarningsAsErrors: true})
		assert.False(t, strict.ValidateEnvelope(types.PayloadEnvelope{Requests: []types.TransferRecord{record, record}}).IsValid)
	})

	t.Run("stop on first error", func(t *testing.T) {
		v := validation.NewValidatorWithOptions(validation.ValidationOptions{StopOnFirstError: true})
		report := v.ValidateEnvelope(types.PayloadEnvelope{Requests: []types.TransferRecord{
			{Status: types.StatusSettled},
			{Status: types.StatusSettled},
		}})

		assert.Equal(t, 1, report.ErrorCount)
	})
}

func TestValidateCatalog(t *testing.T) {
	v := validation.NewValidator()

	assert.True(t, v.ValidateCatalog(catalog.Default()).IsValid)

	report := v.ValidateCatalog(catalog.New([]catalog.ErrorDescriptor{
		{Code: "a/1", Description: "one"},
		{Code: "a/1", Description: "one"},
		{Code: "bad code", Description: ""},
	}))
	assert.False(t, report.IsValid)
	assert.Equal(t, []string{"code:duplicate", "code:whitespace", "description:required"}, rules(report))

	empty := v.ValidateCatalog(catalog.New(nil))
	assert.False(t, empty.IsValid)
}

func TestWriteErrorLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "errors.log")
	report := validation.ValidateEnvelope(types.PayloadEnvelope{})

	require.NoError(t, validation.WriteErrorLog(report.Errors, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Payload contains no transfer requests")
	assert.Contains(t, string(data), "[ERROR] envelope, field 'requests'")
}
