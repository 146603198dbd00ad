package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/pharmadmin/internal/devapi/store"
)

type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

type envelope struct {
	Success    bool        `json:"success"`
	Data       any         `json:"data,omitempty"`
	Pagination *pagination `json:"pagination,omitempty"`
	Message    string      `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Success: false, Message: msg})
}

// writeStoreError maps store errors onto statuses. Unexpected errors are
// reported as 500 and logged by the caller.
func writeStoreError(w http.ResponseWriter, err error) (unexpected bool) {
	var v *store.ValidationError
	switch {
	case errors.As(err, &v):
		writeMessage(w, http.StatusBadRequest, v.Message)
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrUnknownCollection):
		writeMessage(w, http.StatusNotFound, "Record not found")
	default:
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return true
	}
	return false
}
