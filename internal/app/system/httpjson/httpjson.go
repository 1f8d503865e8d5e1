// Package httpjson writes the API's response envelope. Every endpoint,
// success or failure, responds with {data, message, success}.
package httpjson

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/huddlehq/huddle/internal/app/system/apperr"
	"go.uber.org/zap"
)

// Envelope is the wire shape of every response.
type Envelope struct {
	Data    any    `json:"data"`
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// maxBodyBytes caps request bodies; the API only carries small JSON
// documents.
const maxBodyBytes = 1 << 20

// OK writes a 200 envelope.
func OK(w http.ResponseWriter, data any, message string) {
	write(w, http.StatusOK, Envelope{Data: data, Message: message, Success: true})
}

// Created writes a 201 envelope.
func Created(w http.ResponseWriter, data any, message string) {
	write(w, http.StatusCreated, Envelope{Data: data, Message: message, Success: true})
}

// Error maps err through apperr and writes the failure envelope.
// Internal causes are logged, never sent to the client.
func Error(w http.ResponseWriter, log *zap.Logger, err error) {
	ae := apperr.From(err)
	if ae.Kind == apperr.KindInternal && log != nil {
		log.Error("request failed", zap.Error(ae.Err))
	}
	write(w, ae.HTTPStatus(), Envelope{Message: ae.Message, Success: false})
}

func write(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

// Decode reads a JSON request body into dst, rejecting unknown fields
// and oversized bodies. Returns an apperr.Invalid on malformed input so
// handlers can pass it straight to Error.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Invalid("request body is required")
		}
		return apperr.Invalid("malformed request body")
	}
	// A second JSON value in the body is malformed input, not a request.
	if dec.More() {
		return apperr.Invalid("request body must contain a single JSON object")
	}
	return nil
}
