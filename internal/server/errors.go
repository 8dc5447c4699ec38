package server

import (
	"encoding/json"
	"net/http"

	derrors "github.com/matzehuels/dressform/pkg/errors"
)

// HTTPStatus returns the status code for an error.
func HTTPStatus(err error) int {
	switch {
	case derrors.IsInvalid(err):
		return http.StatusBadRequest
	case derrors.IsNotFound(err):
		return http.StatusNotFound
	case derrors.Is(err, derrors.ErrCodeUnsupported):
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorResponse maps err to a status and writes it as JSON. Internal errors
// are logged and reported without detail.
func (s *Server) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	if slot, ok := r.Context().Value(errSlotKey{}).(*errSlot); ok {
		slot.err = err
	}
	status := HTTPStatus(err)
	code := string(derrors.GetCode(err))
	msg := derrors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
		if code == "" {
			code = string(derrors.ErrCodeInternal)
		}
		msg = "internal error"
	}
	jsonResponse(w, status, errorBody{Error: errorDetail{Code: code, Message: msg}})
}

func jsonResponse(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
