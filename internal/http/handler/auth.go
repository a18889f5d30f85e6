package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"neevamind/internal/auth"
)

type AuthHandler struct {
	Users *auth.Service
	JWT   *auth.JWT
}

type signupReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userDTO struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toUserDTO(u auth.User) userDTO {
	return userDTO{ID: u.ID, Name: u.Name, Email: u.Email}
}

const minPasswordLength = 8

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupReq
	if err := decodeJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Name) == "" || auth.NormalizeEmail(req.Email) == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "All fields are required")
		return
	}
	if len(req.Password) < minPasswordLength {
		writeMessage(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	u, err := h.Users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			writeMessage(w, http.StatusBadRequest, "User already exists with this email")
			return
		}
		slog.Error("signup failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Signup failed: "+err.Error())
		return
	}

	token, err := h.JWT.Sign(u.ID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Signup failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "User created successfully",
		"user":    toUserDTO(u),
		"token":   token,
	})
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := decodeJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if auth.NormalizeEmail(req.Email) == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	u, err := h.Users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		slog.Error("login failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Login failed: "+err.Error())
		return
	}

	token, err := h.JWT.Sign(u.ID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Login failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user":    toUserDTO(u),
		"token":   token,
	})
}

// Logout is a no-op for bearer tokens; clients drop the token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusOK, "Logout successful")
}

func (h *AuthHandler) Check(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"authenticated": false})
		return
	}
	u, err := h.Users.Get(r.Context(), uid)
	if err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"authenticated": false})
			return
		}
		writeMessage(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user":          toUserDTO(u),
	})
}
