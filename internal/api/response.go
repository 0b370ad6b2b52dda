// ParPass ML API - Collaborative-Filtering Course Recommendations
// Copyright 2026 ParPass
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parpass/caddie

package api

import (
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/parpass/caddie/internal/logging"
	"github.com/parpass/caddie/internal/recommend"
)

// Error codes returned in error responses.
const (
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeModelNotLoaded   = "MODEL_NOT_LOADED"
)

// rootResponse is the service banner returned by GET /.
type rootResponse struct {
	Message     string `json:"message"`
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

// healthResponse is returned by the health endpoints.
type healthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

// recommendationsResponse is returned by GET /recommendations/{member_id}.
type recommendationsResponse struct {
	MemberID        string                     `json:"member_id"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
}

// apiError is the body of an error response.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorResponse wraps an apiError for the wire.
type errorResponse struct {
	Error apiError `json:"error"`
}

// respondJSON sends a JSON response with proper headers.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("ETag", generateETag(data))

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag creates a simple ETag from data using FNV-1a hash.
func generateETag(data []byte) string {
	hash := uint32(2166136261)
	for _, b := range data {
		hash ^= uint32(b)
		hash *= 16777619
	}
	return strconv.FormatUint(uint64(hash), 16)
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, &errorResponse{
		Error: apiError{
			Code:    code,
			Message: message,
		},
	})
}
