// =============================================================================
// Transfer Payload Converter - HTTP API Options
// =============================================================================
//
// This file defines the options shared by the mux and the handlers.
//
// =============================================================================

package httpapi

import (
	"go.uber.org/zap"

	"github.com/ginjaninja78/transfer-payload-converter/internal/payload"
)

// Options controls the HTTP API.
type Options struct {
	// Builder builds payloads. nil means a builder over the default catalog.
	Builder *payload.Builder

	// MaxBodyBytes limits a payload request body. Default: 1 MiB.
	MaxBodyBytes int64

	// Logger receives the access log. nil disables it.
	Logger *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Builder == nil {
		o.Builder = payload.NewBuilder(nil)
	}
	if o.MaxBodyBytes <= 0 {
		o.MaxBodyBytes = 1 << 20
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}
