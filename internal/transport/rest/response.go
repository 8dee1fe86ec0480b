package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/mnemo-vocab/internal/domain"
)

const maxBodyBytes = 1 << 20

type upstreamResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status,omitempty"`
	Detail any    `json:"detail,omitempty"`
}

type parseResponse struct {
	Error string `json:"error"`
	Raw   string `json:"raw"`
}

// handleError maps pipeline errors onto HTTP responses. Upstream failures
// answer 502 unless passStatus is set and the upstream reported one.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error, passStatus bool) {
	var (
		upErr    *domain.UpstreamError
		parseErr *domain.ParseError
	)

	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, validationMessage(err))
	case errors.As(err, &upErr):
		status := http.StatusBadGateway
		if passStatus && upErr.StatusCode >= 400 {
			status = upErr.StatusCode
		}
		log.WarnContext(r.Context(), "upstream failure",
			slog.String("provider", upErr.Provider),
			slog.Int("upstream_status", upErr.StatusCode),
		)
		writeJSON(w, status, upstreamResponse{
			Error:  "upstream service error",
			Status: upErr.StatusCode,
			Detail: detailValue(upErr.Detail),
		})
	case errors.As(err, &parseErr):
		writeJSON(w, http.StatusBadGateway, parseResponse{
			Error: "malformed response from upstream",
			Raw:   parseErr.Raw,
		})
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// validationMessage renders field errors as "field is required" style text.
func validationMessage(err error) string {
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || len(ve.Errors) == 0 {
		return err.Error()
	}
	fe := ve.Errors[0]
	if fe.Message == "required" {
		return fe.Field + " is required"
	}
	return fe.Field + ": " + fe.Message
}

// detailValue embeds a JSON diagnostic payload as-is and anything else as a
// string.
func detailValue(detail string) any {
	if detail == "" {
		return nil
	}
	if json.Valid([]byte(detail)) {
		return json.RawMessage(detail)
	}
	return detail
}

// decodeJSON reads a size-limited JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
