// Package execdto holds the request and response bodies shared by the HTTP
// and Lambda transports, and the single mapping from service errors to
// HTTP status codes.
package execdto

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/awmpietro/golang-algorithm-visualizer/internal/app"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/registry"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/stepfilter"
)

var (
	ErrMissingInput = errors.New("missing input")
	ErrInvalidJSON  = errors.New("invalid json")
	ErrBodyTooLarge = errors.New("request body too large")
)

type ExecuteRequest struct {
	Input  json.RawMessage `json:"input"`
	Filter string          `json:"filter,omitempty"`
}

// Decode parses body into an ExecuteRequest and rejects a body without an
// input payload.
func Decode(body []byte) (ExecuteRequest, error) {
	var in ExecuteRequest
	if err := json.Unmarshal(body, &in); err != nil {
		return ExecuteRequest{}, errors.Join(ErrInvalidJSON, err)
	}
	raw := bytes.TrimSpace(in.Input)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ExecuteRequest{}, ErrMissingInput
	}
	return in, nil
}

func (r ExecuteRequest) Options() app.ExecuteOptions {
	return app.ExecuteOptions{Filter: r.Filter}
}

type HealthResponse struct {
	Status string `json:"status"`
}

type SourceResponse struct {
	ID     string `json:"id"`
	Source string `json:"source"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Done is the payload of the final event of a stream.
type Done struct {
	ExecutionID string `json:"execution_id"`
	Algorithm   string `json:"algorithm"`
	Count       int    `json:"count"`
	Total       int    `json:"total"`
}

func DoneFrom(res *app.StreamResult) Done {
	return Done{
		ExecutionID: res.ID,
		Algorithm:   res.Algorithm,
		Count:       res.Delivered,
		Total:       res.Total,
	}
}

// Status maps an error from the service to the HTTP status reported to the
// caller.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, registry.ErrUnknownAlgorithm):
		return http.StatusNotFound
	case errors.Is(err, ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrMissingInput),
		errors.Is(err, ErrInvalidJSON),
		errors.Is(err, registry.ErrInvalidInput),
		errors.Is(err, stepfilter.ErrInvalidFilter),
		errors.Is(err, app.ErrStepBudgetExceeded):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error builds the body reported for err. Internal faults keep their
// details out of the response.
func Error(err error) ErrorResponse {
	switch Status(err) {
	case http.StatusNotFound:
		return ErrorResponse{Error: "algorithm not found", Details: err.Error()}
	case http.StatusBadRequest:
		return ErrorResponse{Error: label(err), Details: err.Error()}
	case http.StatusRequestEntityTooLarge:
		return ErrorResponse{Error: "request body too large"}
	default:
		return ErrorResponse{Error: "execution failed"}
	}
}

func label(err error) string {
	switch {
	case errors.Is(err, ErrMissingInput):
		return "missing input"
	case errors.Is(err, ErrInvalidJSON):
		return "invalid json"
	case errors.Is(err, stepfilter.ErrInvalidFilter):
		return "invalid filter"
	case errors.Is(err, app.ErrStepBudgetExceeded):
		return "step budget exceeded"
	default:
		return "invalid input"
	}
}
