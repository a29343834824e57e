// Package httpx concentra la traducción de errores de dominio a HTTP y los
// helpers de request/response que comparten todos los handlers.
package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"vet-clinic/internal/platform/apperr"
	"vet-clinic/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

const maxBodyBytes = 1 << 20

// ErrorResponse es el cuerpo de toda respuesta de error.
type ErrorResponse struct {
	Error   string              `json:"error"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// WriteError es el único punto que decide el status de un error.
// Los Unexpected se loguean con op y error completo; al cliente va un mensaje genérico.
func WriteError(w http.ResponseWriter, r *http.Request, log logger.Logger, op string, err error) {
	e, ok := apperr.As(err)
	if !ok {
		e = apperr.Unexpected(op, err)
	}

	switch e.Kind {
	case apperr.KindNotFound:
		WriteJSON(w, http.StatusNotFound, ErrorResponse{Error: e.Message})
	case apperr.KindValidation:
		WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: e.Message, Details: e.Fields})
	case apperr.KindConstraint:
		WriteJSON(w, http.StatusConflict, ErrorResponse{Error: e.Message, Details: e.Fields})
	default:
		if log != nil {
			log.Error("request failed", map[string]any{
				"op":         op,
				"err":        err,
				"method":     r.Method,
				"path":       r.URL.Path,
				"request_id": chimw.GetReqID(r.Context()),
			})
		}
		WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

// ParseID lee un parámetro de ruta como entero positivo.
func ParseID(r *http.Request, param string) (int64, error) {
	raw := strings.TrimSpace(chi.URLParam(r, param))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Invalid("invalid id", apperr.FieldError{Field: param, Message: "must be a positive integer"})
	}
	return id, nil
}

// PathParam devuelve un parámetro de ruta decodificado una sola vez.
// chi rutea sobre RawPath cuando existe, y en ese caso el valor llega escapado.
func PathParam(r *http.Request, param string) string {
	raw := chi.URLParam(r, param)
	if r.URL.RawPath == "" {
		return raw
	}
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

// DecodeJSON decodifica el body; JSON mal formado o vacío es ValidationFailed.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Invalid("request body is required")
		}
		return apperr.Invalid("invalid json", apperr.FieldError{Field: "body", Message: err.Error()})
	}
	return nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime acepta RFC3339 o fecha/hora local sin zona (se interpreta UTC).
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.New("invalid date/time")
}

// TimeField parsea un campo de fecha acumulando el problema como FieldError.
func TimeField(field, s string) (time.Time, *apperr.FieldError) {
	t, err := ParseTime(s)
	if err != nil {
		return time.Time{}, &apperr.FieldError{Field: field, Message: "must be a valid date (YYYY-MM-DD or RFC3339)"}
	}
	return t, nil
}
