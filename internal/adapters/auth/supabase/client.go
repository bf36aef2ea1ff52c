package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"nursebot-api/internal/platform/httpclient"
)

var (
	ErrNotConfigured = errors.New("supabase client not configured")
	ErrUnauthorized  = errors.New("supabase unauthorized")
	ErrUpstream      = errors.New("supabase upstream error")
)

// Config del proyecto Supabase. URL y AnonKey vienen de env.
type Config struct {
	BaseURL string
	AnonKey string
	Timeout time.Duration
}

// Client habla con el endpoint de auth de Supabase (GoTrue).
// El core solo necesita sign-in/sign-up/sign-out; toda la lógica de
// identidad vive del lado de Supabase.
type Client struct {
	http    *httpclient.Client
	anonKey string
}

func NewClient(cfg Config) (*Client, error) {
	hc, err := httpclient.NewWithBaseURL(strings.TrimSpace(cfg.BaseURL), cfg.Timeout)
	if err != nil {
		return nil, err
	}
	return &Client{
		http:    hc,
		anonKey: strings.TrimSpace(cfg.AnonKey),
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != "" && c.anonKey != ""
}

// User es el usuario autenticado según Supabase.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session es el resultado de un sign-in/sign-up exitoso.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         User   `json:"user"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) headers() map[string]string {
	return map[string]string{"apikey": c.anonKey}
}

// SignIn hace el password grant contra GoTrue.
func (c *Client) SignIn(ctx context.Context, email, password string) (Session, error) {
	if !c.IsConfigured() {
		return Session{}, ErrNotConfigured
	}

	var s Session
	err := c.http.DoJSON(ctx, http.MethodPost,
		"/auth/v1/token?grant_type=password",
		c.headers(), credentials{Email: email, Password: password}, &s)
	if err != nil {
		return Session{}, normalize(err)
	}
	return s, nil
}

func (c *Client) SignUp(ctx context.Context, email, password string) (Session, error) {
	if !c.IsConfigured() {
		return Session{}, ErrNotConfigured
	}

	var s Session
	err := c.http.DoJSON(ctx, http.MethodPost, "/auth/v1/signup",
		c.headers(), credentials{Email: email, Password: password}, &s)
	if err != nil {
		return Session{}, normalize(err)
	}
	return s, nil
}

// SignOut revoca el access token del lado de Supabase.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	if !c.IsConfigured() {
		return ErrNotConfigured
	}

	headers := c.headers()
	headers["Authorization"] = "Bearer " + strings.TrimSpace(accessToken)

	err := c.http.DoJSON(ctx, http.MethodPost, "/auth/v1/logout", headers, nil, nil)
	if err != nil {
		return normalize(err)
	}
	return nil
}

func normalize(err error) error {
	var httpErr *httpclient.HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusBadRequest:
			return fmt.Errorf("%w: %v", ErrUnauthorized, err)
		}
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return fmt.Errorf("%w: %v", ErrUpstream, err)
}
