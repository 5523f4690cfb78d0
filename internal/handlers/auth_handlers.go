// File: internal/handlers/auth_handlers.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/ayazdoruck/pahiy-ai/internal/middleware"
	"github.com/ayazdoruck/pahiy-ai/internal/services/user_services"
)

const sessionCookieName = "auth_token"

// AuthHandler holds the dependencies for authentication handlers.
type AuthHandler struct {
	UserService *user_services.UserService
	FrontendURL string
	Production  bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service *user_services.UserService, frontendURL string, production bool) *AuthHandler {
	return &AuthHandler{
		UserService: service,
		FrontendURL: frontendURL,
		Production:  production,
	}
}

// Register handles new user registrations.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Username  string `json:"username"`
		Email     string `json:"email"`
		Password  string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body")
		return
	}

	account, verificationToken, err := h.UserService.Register(r.Context(),
		sanitizeInput(req.FirstName, 50),
		sanitizeInput(req.LastName, 50),
		sanitizeInput(req.Username, 20),
		sanitizeInput(req.Email, 120),
		req.Password,
	)
	if err != nil {
		respondServiceError(w, err, h.Production)
		return
	}

	h.UserService.SendVerificationMail(r.Context(), account, verificationToken)

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":              "Registration successful. Please check your email to verify your account.",
		"requiresVerification": true,
		"user":                 account,
	})
}

// Login authenticates a user and issues a session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Login    string `json:"login"`
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body")
		return
	}
	login := req.Login
	if login == "" {
		login = req.Username
	}

	account, err := h.UserService.Authenticate(r.Context(), sanitizeInput(login, 120), req.Password)
	if err != nil {
		var notVerified *user_services.NotVerifiedError
		if errors.As(err, &notVerified) {
			writeJSON(w, http.StatusForbidden, map[string]interface{}{
				"error":                "Please verify your email before logging in.",
				"code":                 "EMAIL_NOT_VERIFIED",
				"requiresVerification": true,
				"email":                notVerified.Email,
			})
			return
		}
		respondServiceError(w, err, h.Production)
		return
	}

	token, err := h.UserService.Issue(r.Context(), account.ID)
	if err != nil {
		respondServiceError(w, err, h.Production)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(user_services.SessionTTL),
		HttpOnly: true,
		Secure:   h.Production,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"token":   token,
		"user":    account,
	})
}

// Logout revokes the current session and clears the cookie. Revocation is
// idempotent, so a stale token still gets a clean 200.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := ""
	if header := r.Header.Get("Authorization"); len(header) > 7 && header[:7] == "Bearer " {
		token = header[7:]
	} else if cookie, err := r.Cookie(sessionCookieName); err == nil {
		token = cookie.Value
	}

	if token != "" {
		if err := h.UserService.Revoke(r.Context(), token); err != nil {
			respondServiceError(w, err, h.Production)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	account, err := h.UserService.GetUser(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err, h.Production)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": account})
}

// ChangePassword swaps the user's password after checking the old one.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body")
		return
	}

	if err := h.UserService.ChangePassword(r.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		respondServiceError(w, err, h.Production)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password changed"})
}

// VerifyEmail consumes a verification token from the emailed link and sends
// the browser back to the frontend.
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	if token == "" {
		writeError(w, http.StatusBadRequest, "INVALID_TOKEN", "Invalid or expired token")
		return
	}

	if err := h.UserService.VerifyEmail(r.Context(), token); err != nil {
		respondServiceError(w, err, h.Production)
		return
	}

	http.Redirect(w, r, h.FrontendURL+"/?verified=1", http.StatusSeeOther)
}

// ResendVerification re-sends the verification mail. The reply is identical
// for known and unknown addresses to avoid account enumeration.
func (h *AuthHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "Email is required")
		return
	}

	result, err := h.UserService.Resend(r.Context(), sanitizeInput(req.Email, 120))
	if err != nil {
		respondServiceError(w, err, h.Production)
		return
	}

	if result == user_services.ResendAlreadyVerified {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Email is already verified."})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "If an account exists for that email, a verification link has been sent.",
	})
}
