package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"nursebot-api/internal/platform/httpclient"
	"nursebot-api/internal/platform/logger"

	"github.com/sony/gobreaker"
)

var (
	ErrNotConfigured = errors.New("assistant client not configured")
	ErrUpstream      = errors.New("assistant upstream error")
)

// Config del servicio de chat remoto.
// BaseURL normalmente viene de env en quien lo instancia.
type Config struct {
	BaseURL string
	APIKey  string

	// Opcional: header de la API key. Vacío => "X-Api-Key".
	APIKeyHeader string

	Timeout time.Duration
}

// Client habla con el asistente remoto: POST /chat {message} -> {reply}.
// El upstream es una caja negra; si devuelve texto plano en vez de JSON
// usamos el body tal cual como reply. Un breaker corta los requests
// cuando el upstream viene fallando seguido.
type Client struct {
	http         *httpclient.Client
	apiKey       string
	apiKeyHeader string
	breaker      *gobreaker.CircuitBreaker
	log          logger.Logger
}

func NewClient(cfg Config, log logger.Logger) (*Client, error) {
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}

	hc, err := httpclient.NewWithBaseURL(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, err
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "assistant",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &Client{
		http:         hc,
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: h,
		breaker:      cb,
		log:          log,
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != ""
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// Reply manda el mensaje y devuelve la respuesta del asistente.
// Las fallas se loguean y se devuelven como error: el caller no agrega
// mensaje de bot, nunca muestra uno viejo o default.
func (c *Client) Reply(ctx context.Context, message string) (string, error) {
	if !c.IsConfigured() {
		return "", ErrNotConfigured
	}

	headers := map[string]string{}
	if c.apiKey != "" {
		headers[c.apiKeyHeader] = c.apiKey
	}

	out, err := c.breaker.Execute(func() (any, error) {
		raw, err := c.http.DoRaw(ctx, http.MethodPost, "/chat", headers, chatRequest{Message: message})
		if err != nil {
			return nil, err
		}

		var resp chatResponse
		if err := json.Unmarshal(raw, &resp); err == nil && strings.TrimSpace(resp.Reply) != "" {
			return resp.Reply, nil
		}

		// Body no-JSON: fallback a texto plano.
		text := strings.TrimSpace(string(raw))
		if text == "" {
			return nil, fmt.Errorf("%w: empty reply", ErrUpstream)
		}
		return text, nil
	})
	if err != nil {
		c.log.Error("assistant request failed", map[string]any{"err": err.Error()})
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	return out.(string), nil
}
