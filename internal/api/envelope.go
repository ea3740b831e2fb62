package api

import (
	"github.com/danielgtaylor/huma/v2"
)

// EnvelopeVersion is the wire format version carried in every response.
// Bump only when the envelope shape itself changes, not the payloads.
const EnvelopeVersion = 1

// APIEnvelope is the standard response wrapper. Success responses carry
// the payload in Data; simple errors carry a message string in Error.
type APIEnvelope struct {
	Version int    `json:"v" doc:"Envelope format version"`
	Success bool   `json:"success" doc:"Whether the request succeeded"`
	Data    any    `json:"data,omitempty" doc:"Response payload"`
	Error   string `json:"error,omitempty" doc:"Error message when success is false"`
}

// APIErrorEnvelope is the wrapper for structured errors that carry a
// machine-readable code and optional details (e.g. per-field validation
// messages).
type APIErrorEnvelope struct {
	Version int    `json:"v" doc:"Envelope format version"`
	Success bool   `json:"success" doc:"Always false"`
	Code    string `json:"code" doc:"Machine-readable error code"`
	Message string `json:"message" doc:"Human-readable error message"`
	Details any    `json:"details,omitempty" doc:"Additional error details"`
}

// EnvelopeTransformer wraps every response body in the versioned
// envelope. Registered as a huma transformer so handlers return plain
// payloads and never see the wrapper.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	// Already wrapped (e.g. by the rate limit middleware writing raw).
	switch v.(type) {
	case APIEnvelope, APIErrorEnvelope:
		return v, nil
	}

	if apiErr, ok := v.(*APIError); ok {
		if apiErr.Code != "" {
			return APIErrorEnvelope{
				Version: EnvelopeVersion,
				Success: false,
				Code:    apiErr.Code,
				Message: apiErr.Message,
				Details: apiErr.Details,
			}, nil
		}
		return APIEnvelope{
			Version: EnvelopeVersion,
			Success: false,
			Error:   apiErr.Message,
		}, nil
	}

	if err, ok := v.(error); ok {
		return APIEnvelope{
			Version: EnvelopeVersion,
			Success: false,
			Error:   err.Error(),
		}, nil
	}

	if errorStatus(status) {
		return APIEnvelope{
			Version: EnvelopeVersion,
			Success: false,
			Error:   "request failed",
		}, nil
	}

	return APIEnvelope{
		Version: EnvelopeVersion,
		Success: true,
		Data:    v,
	}, nil
}

func errorStatus(status string) bool {
	return len(status) > 0 && (status[0] == '4' || status[0] == '5')
}
