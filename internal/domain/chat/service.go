package chat

import (
	"context"
	"errors"
	"strings"

	"nursebot-api/internal/platform/logger"
	"nursebot-api/internal/ports/assistant"
)

var ErrInvalidInput = errors.New("invalid input")

// Service releva mensajes al asistente remoto. No guarda historial:
// la conversación vive en el cliente.
type Service struct {
	assistant assistant.Assistant
	log       logger.Logger
}

func NewService(a assistant.Assistant, log logger.Logger) *Service {
	return &Service{assistant: a, log: log}
}

func (s *Service) Send(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrInvalidInput
	}
	if s.assistant == nil {
		return "", errors.New("assistant not configured")
	}

	reply, err := s.assistant.Reply(ctx, message)
	if err != nil {
		// Ya logueado por el adapter; acá solo propagamos.
		return "", err
	}
	return reply, nil
}
