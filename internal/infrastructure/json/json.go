// Package json wraps request decoding and response writing so handlers
// share one envelope for payloads and errors.
package json

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

const maxBodyBytes = 1 << 20 // 1 MB

var ErrEmptyBody = errors.New("request body is required")

// Read decodes the request body into dst. An empty body is reported as
// ErrEmptyBody so handlers can map it to a 400.
func Read(r *http.Request, dst any) error {
	if r.Body == nil {
		return ErrEmptyBody
	}

	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	decoder := json.NewDecoder(body)

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}

	return nil
}

func Write(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteNull writes a literal JSON null body.
func WriteNull(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte("null\n"))
}

type errorResponse struct {
	Message string `json:"message"`
}

func WriteError(w http.ResponseWriter, status int, err error, message string) {
	if message == "" && err != nil {
		message = err.Error()
	}
	Write(w, status, errorResponse{Message: message})
}

func WriteValidationError(w http.ResponseWriter, err error) {
	WriteError(w, http.StatusBadRequest, err, err.Error())
}

func WriteBadRequestError(w http.ResponseWriter, message string) {
	Write(w, http.StatusBadRequest, errorResponse{Message: message})
}

func WriteForbiddenError(w http.ResponseWriter, message string) {
	Write(w, http.StatusForbidden, errorResponse{Message: message})
}

func WriteInternalError(w http.ResponseWriter, err error) {
	WriteError(w, http.StatusInternalServerError, err, "internal server error")
}
