// =============================================================================
// Transfer Payload Converter - HTTP API Handlers
// =============================================================================
//
// This file holds the request handlers behind the routes in router.go.
//
// POST /api/payload takes {"input", "status", "errorSelection"} and answers
// with the payload JSON, or with an ErrorResponse when the build fails.
//
// =============================================================================

package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/ginjaninja78/transfer-payload-converter/internal/payload"
)

// payloadHandler serves the routes that need the builder.
type payloadHandler struct {
	opt Options
}

type payloadRequestJSON struct {
	Input          string `json:"input"`
	Status         string `json:"status"`
	ErrorSelection string `json:"errorSelection"`
}

type catalogEntryJSON struct {
	Index       int    `json:"index"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

type catalogResponse struct {
	Errors []catalogEntryJSON `json:"errors"`
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	WriteText(w, http.StatusOK, "ok\n")
}

func handleSample(w http.ResponseWriter, r *http.Request) {
	WriteText(w, http.StatusOK, payload.SampleInput)
}

func (h payloadHandler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	entries := h.opt.Builder.Catalog().Entries()
	resp := catalogResponse{Errors: make([]catalogEntryJSON, 0, len(entries))}
	for i, e := range entries {
		resp.Errors = append(resp.Errors, catalogEntryJSON{Index: i, Code: e.Code, Description: e.Description})
	}
	WriteJSON(w, http.StatusOK, resp)
}

func (h payloadHandler) handlePayload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.opt.MaxBodyBytes)

	body, err := parsePayloadPOST(r)
	if err != nil {
		writeErrorFromErr(w, err)
		return
	}

	outcome, err := payload.ParseOutcome(body.Status)
	if err != nil {
		writeErrorFromErr(w, requestError("INVALID_ARGUMENT", "status must be SUCCESS or ERROR", body.Status))
		return
	}

	result, err := h.opt.Builder.Build(body.Input, outcome, payload.ParseSelection(body.ErrorSelection))
	if err != nil {
		writeErrorFromErr(w, err)
		return
	}

	for _, skipped := range result.Skipped {
		h.opt.Logger.Debug("skipped line", zap.Int("line", skipped.Number), zap.String("reason", skipped.Reason))
	}

	data, err := payload.Marshal(result.Envelope)
	if err != nil {
		writeErrorFromErr(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Record-Count", strconv.Itoa(len(result.Envelope.Requests)))
	w.Header().Set("X-Skipped-Lines", strconv.Itoa(len(result.Skipped)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// parsePayloadPOST decodes exactly one JSON object with no unknown fields.
func parsePayloadPOST(r *http.Request) (payloadRequestJSON, error) {
	var body payloadRequestJSON
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return payloadRequestJSON{}, &APIError{
				Status:   http.StatusRequestEntityTooLarge,
				AppError: AppError{Code: "BODY_TOO_LARGE", Message: "request body too large"},
			}
		}
		return payloadRequestJSON{}, requestError("INVALID_ARGUMENT", "failed to parse JSON body", err.Error())
	}
	var extra any
	if err := dec.Decode(&extra); err == nil {
		return payloadRequestJSON{}, requestError("INVALID_ARGUMENT", "JSON body must contain a single object", "")
	} else if !errors.Is(err, io.EOF) {
		return payloadRequestJSON{}, requestError("INVALID_ARGUMENT", "failed to parse JSON body", err.Error())
	}
	return body, nil
}
