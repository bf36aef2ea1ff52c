package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config junta todo lo configurable por env. Nada es obligatorio:
// sin DB_DSN se usa el store sqlite local, sin SUPABASE_* el server
// queda en modo dev (X-Debug-User-ID).
type Config struct {
	HTTPAddr string

	// Postgres (store remoto). Vacío => sqlite local.
	DBDSN string

	// Path de la base sqlite local.
	SQLitePath string

	CORSAllowedOrigins []string

	SupabaseURL       string
	SupabaseAnonKey   string
	SupabaseJWTSecret string

	AssistantURL    string
	AssistantAPIKey string

	UpstreamTimeout time.Duration
}

func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:          getenv("HTTP_ADDR", ":8080"),
		DBDSN:             getenv("DB_DSN", ""),
		SQLitePath:        getenv("SQLITE_PATH", "nursebot.db"),
		SupabaseURL:       getenv("SUPABASE_URL", ""),
		SupabaseAnonKey:   getenv("SUPABASE_ANON_KEY", ""),
		SupabaseJWTSecret: getenv("SUPABASE_JWT_SECRET", ""),
		AssistantURL:      getenv("ASSISTANT_URL", ""),
		AssistantAPIKey:   getenv("ASSISTANT_API_KEY", ""),
		UpstreamTimeout:   10 * time.Second,
	}

	if v := getenv("UPSTREAM_TIMEOUT", ""); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.UpstreamTimeout = d
		}
	}

	for _, o := range strings.Split(getenv("CORS_ALLOWED_ORIGINS", ""), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	return cfg
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}
