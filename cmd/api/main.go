package main

import (
	"net/http"
	"time"

	"nursebot-api/internal/adapters/assistant"
	"nursebot-api/internal/adapters/auth/supabase"
	pg "nursebot-api/internal/adapters/storage/postgres"
	"nursebot-api/internal/config"
	"nursebot-api/internal/platform/logger"
	"nursebot-api/internal/ports/auth"
	portassistant "nursebot-api/internal/ports/assistant"
	"nursebot-api/internal/router"
)

// @title nursebot-api
// @version 1.0
// @description Backend de recordatorios de medicación: colección de medicamentos con schedule/duración, historial de dosis y relay de chat.
// @BasePath /
func main() {
	cfg := config.Load()
	log := logger.NewFromEnv()

	opts := router.Options{
		SQLitePath:         cfg.SQLitePath,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Logger:             log,
	}

	if cfg.DBDSN != "" {
		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			log.Error("postgres unavailable, using local store", map[string]any{"err": err.Error()})
		} else {
			opts.DB = db
			defer db.Close()
		}
	}

	var verifier auth.AuthVerifier
	if cfg.SupabaseJWTSecret != "" {
		verifier = supabase.NewVerifier(cfg.SupabaseJWTSecret)
	}
	opts.AuthVerifier = verifier

	if cfg.SupabaseURL != "" && cfg.SupabaseAnonKey != "" {
		client, err := supabase.NewClient(supabase.Config{
			BaseURL: cfg.SupabaseURL,
			AnonKey: cfg.SupabaseAnonKey,
			Timeout: cfg.UpstreamTimeout,
		})
		if err != nil {
			log.Error("invalid supabase config", map[string]any{"err": err.Error()})
		} else {
			opts.Supabase = client
		}
	}

	if cfg.AssistantURL != "" {
		var a portassistant.Assistant
		client, err := assistant.NewClient(assistant.Config{
			BaseURL: cfg.AssistantURL,
			APIKey:  cfg.AssistantAPIKey,
			Timeout: cfg.UpstreamTimeout,
		}, log)
		if err != nil {
			log.Error("invalid assistant config", map[string]any{"err": err.Error()})
		} else {
			a = client
			opts.Assistant = a
		}
	}

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": cfg.HTTPAddr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"err": err.Error()})
	}
}
