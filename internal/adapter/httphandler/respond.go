package httphandler

import (
	"errors"
	"log/slog"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/niksmo/storefront/internal/core/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, status int, v any) {
	const op = "httphandler.writeJSON"

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "op", op, "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func decodeBody(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// mutationStatus maps a mutation error onto the response status.
// appliedStatus is used when err is nil.
func mutationStatus(err error, appliedStatus int) int {
	switch {
	case err == nil:
		return appliedStatus
	case errors.Is(err, domain.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	case domain.OutcomeOf(err) == domain.OutcomeUnknown:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func writeMutation(
	w http.ResponseWriter, err error, appliedStatus int, res MutationResult,
) {
	res.Outcome = domain.OutcomeOf(err).String()
	if err != nil {
		res.Error = err.Error()
		res.Product, res.Category, res.Config = nil, nil, nil
	}
	writeJSON(w, mutationStatus(err, appliedStatus), res)
}

func writeBadBody(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, MutationResult{
		Outcome: domain.OutcomeFailed.String(),
		Error:   "invalid JSON data: " + err.Error(),
	})
}
