package api

import (
	"github.com/danielgtaylor/huma/v2"
)

// successEnvelope wraps successful response bodies.
type successEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

// errorEnvelope wraps error response bodies.
type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// EnvelopeTransformer wraps every huma response body in the standard
// envelope: {"success":true,"data":...} on success,
// {"success":false,"error":...,"code":...} on failure. Registered as a huma
// transformer so individual handlers return plain bodies.
func EnvelopeTransformer(_ huma.Context, _ string, v any) (any, error) {
	if v == nil {
		return v, nil
	}

	if apiErr, ok := v.(*APIError); ok {
		return &errorEnvelope{
			Success: false,
			Error:   apiErr.Message,
			Code:    apiErr.Code,
			Details: apiErr.Details,
		}, nil
	}

	// huma's own error model (pre-RegisterErrorHandler paths).
	if statusErr, ok := v.(huma.StatusError); ok {
		return &errorEnvelope{
			Success: false,
			Error:   statusErr.Error(),
			Code:    statusToCode(statusErr.GetStatus()),
		}, nil
	}

	return &successEnvelope{
		Success: true,
		Data:    v,
	}, nil
}
