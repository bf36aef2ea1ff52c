package chat

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"nursebot-api/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/chat", sendMessageHandler(svc))
}

type sendMessageRequest struct {
	Message string `json:"message"`
}

type sendMessageResponse struct {
	Reply string `json:"reply"`
}

// sendMessageHandler godoc
// @Summary Enviar mensaje al asistente
// @Description Releva el mensaje al servicio de chat remoto y devuelve la respuesta. Si el upstream falla no se inventa respuesta: se devuelve 502 y el cliente no agrega mensaje de bot.
// @Tags chat
// @Accept json
// @Produce json
// @Param payload body sendMessageRequest true "Mensaje del usuario"
// @Success 200 {object} sendMessageResponse
// @Failure 400 {string} string "invalid json / mensaje vacío"
// @Failure 401 {string} string "unauthorized"
// @Failure 502 {string} string "assistant unavailable"
// @Router /chat [post]
func sendMessageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req sendMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		reply, err := svc.Send(r.Context(), req.Message)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "message is required", http.StatusBadRequest)
				return
			}
			http.Error(w, "assistant unavailable", http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(sendMessageResponse{Reply: reply})
	}
}
