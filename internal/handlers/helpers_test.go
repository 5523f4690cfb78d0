// File: internal/handlers/helpers_test.go
package handlers

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	chatservice "github.com/ayazdoruck/pahiy-ai/internal/services/chat"
	"github.com/ayazdoruck/pahiy-ai/internal/services/user_services"
)

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"plain text untouched", "hello world", 100, "hello world"},
		{"trims whitespace", "  hi  ", 100, "hi"},
		{"caps length", "abcdef", 3, "abc"},
		{"strips script tag", "a<script>alert(1)</script>b", 100, "a>alert(1)</script>b"},
		{"strips javascript scheme", "click javascript:alert(1)", 100, "click alert(1)"},
		{"strips onerror", `<img onerror=x>`, 100, "<img x>"},
		{"strips onload", `<body onload=x>`, 100, "<body x>"},
		{"case insensitive", "a<SCRIPT>b", 100, "a>b"},
		{"repeated fragments", "<script<script>", 100, ">"},
		{"splice into new fragment", "<scr<scriptipt>alert(1)", 100, ">alert(1)"},
		{"no cap when zero", strings.Repeat("x", 500), 0, strings.Repeat("x", 500)},
		{
			// Multi-byte runes that grow under case folding must not
			// shift the match positions.
			"fragment after length-changing runes",
			strings.Repeat("İ", 10) + "<script>alert(1)</script>",
			0,
			strings.Repeat("İ", 10) + ">alert(1)</script>",
		},
		{"attribute after multi-byte rune", "İx onerror=1", 0, "İx 1"},
		{"uppercase dotted I untouched", "İstanbul is nice", 0, "İstanbul is nice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeInput(tt.input, tt.maxLen)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestRespondServiceError_Mapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", &user_services.ValidationError{Field: "email", Message: "bad email"}, 400, "VALIDATION_ERROR"},
		{"invalid credentials", user_services.ErrInvalidCredentials, 401, "INVALID_CREDENTIALS"},
		{"wrong old password", user_services.ErrWrongOldPassword, 401, "INVALID_CREDENTIALS"},
		{"unauthenticated", user_services.ErrUnauthenticated, 401, "UNAUTHORIZED"},
		{"invalid token", user_services.ErrInvalidToken, 400, "INVALID_TOKEN"},
		{"duplicate identity", user_services.ErrDuplicateIdentity, 400, "DUPLICATE_IDENTITY"},
		{"chat not found", chatservice.NewNotFoundError(1, "abc"), 404, "NOT_FOUND"},
		{"chat validation", chatservice.NewValidationError("send_message", "empty"), 400, "VALIDATION_ERROR"},
		{"unknown error", errors.New("db exploded"), 500, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondServiceError(rec, tt.err, true)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantCode)
		})
	}
}

func TestRespondServiceError_ProductionHidesDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	respondServiceError(rec, errors.New("db exploded"), true)
	assert.NotContains(t, rec.Body.String(), "db exploded")
	assert.Contains(t, rec.Body.String(), "Internal server error")

	rec = httptest.NewRecorder()
	respondServiceError(rec, errors.New("db exploded"), false)
	assert.Contains(t, rec.Body.String(), "db exploded")
}
