// Package httputil holds the JSON response helpers shared by handlers.
package httputil

import (
	"encoding/json"
	"net/http"
)

// StatusClientClosedRequest is nginx's code for a request the client gave up on.
const StatusClientClosedRequest = 499

type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// JSONResponse writes data as JSON with the given status code.
func JSONResponse(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// ErrorResponse writes {"error": message, "code": code}.
func ErrorResponse(w http.ResponseWriter, status int, code, message string) {
	_ = JSONResponse(w, status, ErrorBody{Error: message, Code: code})
}
