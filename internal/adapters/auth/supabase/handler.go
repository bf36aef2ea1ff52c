package supabase

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes expone los endpoints de auth que la app móvil usa.
// Son un proxy fino sobre Supabase; el core nunca ve passwords.
func RegisterRoutes(r chi.Router, client *Client) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/signup", signUpHandler(client))
		ar.Post("/signin", signInHandler(client))
		ar.Post("/signout", signOutHandler(client))
	})
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// signUpHandler godoc
// @Summary Registrar usuario
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body credentialsRequest true "Email y password"
// @Success 201 {object} Session
// @Failure 400 {string} string "invalid json / credenciales rechazadas"
// @Failure 502 {string} string "auth upstream error"
// @Router /auth/signup [post]
func signUpHandler(client *Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeCredentials(w, r)
		if !ok {
			return
		}

		s, err := client.SignUp(r.Context(), req.Email, req.Password)
		if err != nil {
			writeAuthError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, s)
	}
}

// signInHandler godoc
// @Summary Iniciar sesión
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body credentialsRequest true "Email y password"
// @Success 200 {object} Session
// @Failure 401 {string} string "credenciales inválidas"
// @Failure 502 {string} string "auth upstream error"
// @Router /auth/signin [post]
func signInHandler(client *Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeCredentials(w, r)
		if !ok {
			return
		}

		s, err := client.SignIn(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, ErrUnauthorized) {
				http.Error(w, "invalid credentials", http.StatusUnauthorized)
				return
			}
			writeAuthError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s)
	}
}

// signOutHandler godoc
// @Summary Cerrar sesión
// @Tags auth
// @Param Authorization header string true "Bearer token"
// @Success 204 {string} string ""
// @Failure 401 {string} string "unauthorized"
// @Router /auth/signout [post]
func signOutHandler(client *Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		token = strings.TrimSpace(token)
		if token == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := client.SignOut(r.Context(), token); err != nil {
			writeAuthError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (credentialsRequest, bool) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return credentialsRequest{}, false
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		http.Error(w, "email and password are required", http.StatusBadRequest)
		return credentialsRequest{}, false
	}
	return req, true
}

func writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		http.Error(w, "rejected by auth provider", http.StatusBadRequest)
	case errors.Is(err, ErrNotConfigured):
		http.Error(w, "auth not configured", http.StatusServiceUnavailable)
	default:
		http.Error(w, "auth upstream error", http.StatusBadGateway)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
