// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the catalog client and
// its tests.
package httputil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody bounds how much of a failed response body is read while
// looking for an error message.
const maxErrorBody = 64 << 10

// StatusError reports a non-2xx response. Message carries the backend's
// "error" field when the body had one.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// IsSuccess reports whether code is a 2xx status.
func IsSuccess(code int) bool {
	return code >= 200 && code < 300
}

// CheckResponse returns nil for 2xx responses. Otherwise it drains the body
// and returns a *StatusError, filling Message from a JSON {"error": "..."}
// body if present. The caller still owns closing resp.Body.
func CheckResponse(resp *http.Response) error {
	if IsSuccess(resp.StatusCode) {
		return nil
	}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	io.Copy(io.Discard, resp.Body)

	return &StatusError{
		StatusCode: resp.StatusCode,
		Message:    errorMessage(data),
	}
}

// errorMessage extracts the "error" field of a JSON object body. Bodies that
// are not JSON objects, or have no string "error" field, yield "".
func errorMessage(data []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	return strings.TrimSpace(body.Error)
}

// DecodeJSON checks resp and decodes a successful JSON body into v.
func DecodeJSON(resp *http.Response, v any) error {
	if err := CheckResponse(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}

// WriteError writes a JSON {"error": msg} body with the given status. Used by
// tests and stub backends that mimic the catalog's error shape.
func WriteError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
