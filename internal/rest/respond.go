package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *Handlers) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.Error("response encode failed", slog.Any("err", err))
	}
}

func (h *Handlers) respondError(w http.ResponseWriter, err error) {
	status, code := statusFromError(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", slog.String("code", code), slog.Any("err", err))
	}

	msg := err.Error()
	if status >= http.StatusInternalServerError {
		// Internal detail stays in the log.
		msg = "internal error"
	}

	h.respondJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: msg}})
}
