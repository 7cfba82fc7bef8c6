// Package httpapi implements the HTTP handlers of the rate-storage service
// and the conversion/data service. Every endpoint has one explicit JSON
// response shape; clients never have to guess at field presence.
package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tajik-krasava/RPP/internal/logger"
)

type errorBody struct {
	Error string `json:"error"`
}

type messageBody struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.HTTP.Error("response encode failed",
			slog.String("event", "http.respond"),
			slog.String("err", err.Error()),
		)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageBody{Message: msg})
}
