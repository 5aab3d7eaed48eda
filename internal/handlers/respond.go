// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the catalogue's JSON API: request
// validation, repository calls and error translation.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"recipebox/internal/apperr"
)

const msgInternal = "internal server error"

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeRawJSON writes an already-encoded JSON body.
func writeRawJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}

// writeError writes {"error": message}.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// respondError maps err to a status and a short fixed message. Typed
// client errors carry their own client-safe message; every 5xx is logged
// and answered with the generic message.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	code := apperr.CodeOf(err)
	status := apperr.HTTPStatus(code)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"code", code,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	var message string
	var e *apperr.Error
	if errors.As(err, &e) {
		message = e.Message
		if e.Cause != nil {
			slog.Warn("store rejected request",
				"method", r.Method,
				"path", r.URL.Path,
				"code", code,
				"error", e.Cause,
			)
		}
	}
	writeError(w, status, message)
}

// NotFound answers unknown API routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "not found")
}

// MethodNotAllowed answers known API routes called with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
