package payload_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/transfer-payload-converter/internal/payload"
	"github.com/ginjaninja78/transfer-payload-converter/internal/types"
)

func TestMarshal(t *testing.T) {
	t.Run("settled records use two space indentation", func(t *testing.T) {
		result, err := payload.Build("A\tB", payload.OutcomeSuccess, payload.NoSelection())
		require.NoError(t, err)

		data, err := payload.Marshal(result.Envelope)
		require.NoError(t, err)

		want := `{
  "skipTerminalStatusCheck": false,
  "requests": [
    {
      "id": "A",
      "stepId": "B",
      "status": "SETTLED"
    }
  ]
}`
		assert.Equal(t, want, string(data))
	})

	t.Run("error records carry result fields in order", func(t *testing.T) {
		result, err := payload.Build("A\tB", payload.OutcomeError, payload.SelectIndex(2))
		require.NoError(t, err)

		data, err := payload.MarshalWithOptions(result.Envelope, payload.MarshalOptions{Compact: true})
		require.NoError(t, err)

		assert.Equal(t,
			`{"skipTerminalStatusCheck":false,"requests":[{"id":"A","stepId":"B","status":"ERROR","resultCode":"checkout_card/400","resultDescription":"token_used"}]}`,
			string(data))
	})

	t.Run("html characters are not escaped", func(t *testing.T) {
		envelope := types.PayloadEnvelope{Requests: []types.TransferRecord{
			{ID: "A&B", StepID: "<1>", Status: types.StatusSettled},
		}}

		data, err := payload.MarshalWithOptions(envelope, payload.MarshalOptions{Compact: true})
		require.NoError(t, err)
		assert.Contains(t, string(data), `"id":"A&B","stepId":"<1>"`)
	})

	t.Run("trailing newline is opt in", func(t *testing.T) {
		envelope := types.PayloadEnvelope{}

		var buf bytes.Buffer
		require.NoError(t, payload.Write(&buf, envelope, payload.MarshalOptions{Compact: true, TrailingNewline: true}))
		assert.Equal(t, "{\"skipTerminalStatusCheck\":false,\"requests\":[]}\n", buf.String())
	})
}

func TestUnmarshal(t *testing.T) {
	result, err := payload.Build(payload.SampleInput, payload.OutcomeError, payload.SelectIndex(10))
	require.NoError(t, err)

	data, err := payload.Marshal(result.Envelope)
	require.NoError(t, err)

	envelope, err := payload.Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, result.Envelope, envelope)

	_, err = payload.Unmarshal([]byte("{"))
	assert.Error(t, err)
}
