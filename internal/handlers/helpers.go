// File: internal/handlers/helpers.go
package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"regexp"
	"strings"

	chatservice "github.com/ayazdoruck/pahiy-ai/internal/services/chat"
	"github.com/ayazdoruck/pahiy-ai/internal/services/user_services"
)

// dangerousFragmentRe matches the fragments stripped from user-supplied
// text before it is stored or echoed. Case folding happens inside the
// regexp engine, never on a lowered copy of the string: lowering can
// change byte lengths (U+0130 grows a combining mark) and misalign any
// offsets computed against the original.
var dangerousFragmentRe = regexp.MustCompile(`(?i)(<script|javascript:|onerror=|onload=)`)

// writeJSON is a helper for sending JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError is a helper for sending JSON error responses.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
		"code":  code,
	})
}

// sanitizeInput trims, caps to maxLen runes, and strips script-injection
// fragments from user text.
func sanitizeInput(input string, maxLen int) string {
	input = strings.TrimSpace(input)
	if runes := []rune(input); maxLen > 0 && len(runes) > maxLen {
		input = string(runes[:maxLen])
	}

	// Re-run until stable: removing one fragment can splice the
	// surrounding text into a new one ("<scr<scriptipt>").
	for {
		cleaned := dangerousFragmentRe.ReplaceAllString(input, "")
		if cleaned == input {
			return input
		}
		input = cleaned
	}
}

// respondServiceError maps a service-layer error to the right HTTP reply.
// In production the internal detail never reaches the client.
func respondServiceError(w http.ResponseWriter, err error, production bool) {
	var validationErr *user_services.ValidationError
	if errors.As(err, &validationErr) {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", validationErr.Message)
		return
	}

	switch {
	case errors.Is(err, user_services.ErrInvalidCredentials),
		errors.Is(err, user_services.ErrWrongOldPassword):
		writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials")
		return
	case errors.Is(err, user_services.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	case errors.Is(err, user_services.ErrInvalidToken):
		writeError(w, http.StatusBadRequest, "INVALID_TOKEN", "Invalid or expired token")
		return
	case errors.Is(err, user_services.ErrDuplicateIdentity):
		writeError(w, http.StatusBadRequest, "DUPLICATE_IDENTITY", "Username or email already in use")
		return
	}

	if chatservice.IsNotFound(err) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Chat not found")
		return
	}
	if chatservice.IsValidation(err) {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	log.Printf("[Handlers] Internal error: %v", err)
	message := "Internal server error"
	if !production {
		message = err.Error()
	}
	writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", message)
}
