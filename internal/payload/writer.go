// =============================================================================
// Transfer Payload Converter - Payload Writer
// =============================================================================
//
// This module serializes payload envelopes. The toolkit expects the shape
// below; field order follows the struct definitions in internal/types.
//
//   {
//     "skipTerminalStatusCheck": false,
//     "requests": [
//       {
//         "id": "IC-795c1bf6-...",
//         "stepId": "1e33e4ab-...",
//         "status": "ERROR",
//         "resultCode": "checkout_card/400",
//         "resultDescription": "token_used"
//       }
//     ]
//   }
//
// =============================================================================

package payload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ginjaninja78/transfer-payload-converter/internal/types"
)

// MarshalOptions contains options for payload serialization.
type MarshalOptions struct {
	// Indent is the string used for one level of indentation.
	// Default: "  " (two spaces)
	Indent string

	// Compact writes the payload on a single line, ignoring Indent.
	// Default: false
	Compact bool

	// TrailingNewline appends "\n" after the document.
	// Default: false
	TrailingNewline bool
}

// DefaultMarshalOptions returns the default serialization options.
func DefaultMarshalOptions() MarshalOptions {
	return MarshalOptions{
		Indent: "  ",
	}
}

// Marshal serializes the envelope with the default options.
func Marshal(envelope types.PayloadEnvelope) ([]byte, error) {
	return MarshalWithOptions(envelope, DefaultMarshalOptions())
}

// MarshalWithOptions serializes the envelope with custom options.
//
// HTML characters are not escaped: descriptions are copied verbatim into the
// toolkit, and "&" or "<" must survive as-is.
func MarshalWithOptions(envelope types.PayloadEnvelope, options MarshalOptions) ([]byte, error) {
	if envelope.Requests == nil {
		envelope.Requests = []types.TransferRecord{}
	}

	var buffer bytes.Buffer
	enc := json.NewEncoder(&buffer)
	enc.SetEscapeHTML(false)
	if !options.Compact {
		enc.SetIndent("", options.Indent)
	}

	if err := enc.Encode(envelope); err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	out := bytes.TrimRight(buffer.Bytes(), "\n")
	if options.TrailingNewline {
		out = append(out, '\n')
	}
	return out, nil
}

// Write serializes the envelope to w.
func Write(w io.Writer, envelope types.PayloadEnvelope, options MarshalOptions) error {
	data, err := MarshalWithOptions(envelope, options)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Unmarshal parses a serialized payload envelope.
func Unmarshal(data []byte) (types.PayloadEnvelope, error) {
	var envelope types.PayloadEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return types.PayloadEnvelope{}, fmt.Errorf("failed to parse payload: %w", err)
	}
	return envelope, nil
}
