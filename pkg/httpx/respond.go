// Package httpx carries the uniform response envelope every API route
// answers with: {success, message, data}.
package httpx

import (
	"encoding/json"
	"net/http"
)

type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func OK(w http.ResponseWriter, message string, data any) {
	Respond(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

func Error(w http.ResponseWriter, status int, message string) {
	Respond(w, status, Envelope{Success: false, Message: message, Data: nil})
}

func Respond(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}
