package router

import (
	"database/sql"
	"net/http"

	"nursebot-api/internal/adapters/auth/supabase"
	mem "nursebot-api/internal/adapters/storage/memory"
	pg "nursebot-api/internal/adapters/storage/postgres"
	sq "nursebot-api/internal/adapters/storage/sqlite"
	"nursebot-api/internal/domain/chat"
	"nursebot-api/internal/domain/medications"
	"nursebot-api/internal/middleware"
	"nursebot-api/internal/platform/logger"
	"nursebot-api/internal/ports/auth"
	portassistant "nursebot-api/internal/ports/assistant"

	_ "nursebot-api/docs" // swagger generado

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // nil => modo dev (X-Debug-User-ID)

	// Backing store, en orden de preferencia:
	// DB != nil => Postgres; SQLitePath != "" => sqlite local;
	// si no, in-memory (dev/tests).
	DB         *sql.DB
	SQLitePath string

	// Colaboradores opcionales; sin configurar no se montan sus rutas.
	Supabase  *supabase.Client
	Assistant portassistant.Assistant

	CORSAllowedOrigins []string

	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if len(opts.CORSAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.CORSAllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Debug-User-ID"},
			AllowCredentials: false,
		}))
	}

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	codec := medications.NewCodec(log)

	var repo medications.Repository
	switch {
	case opts.DB != nil:
		repo = pg.NewMedicationsRepo(opts.DB, codec, log)
	case opts.SQLitePath != "":
		store, err := sq.Open(opts.SQLitePath, codec, log)
		if err != nil {
			log.Error("sqlite open failed, falling back to memory store", map[string]any{
				"path": opts.SQLitePath,
				"err":  err.Error(),
			})
			repo = mem.NewMedicationsRepo()
		} else {
			repo = store
		}
	default:
		repo = mem.NewMedicationsRepo()
	}

	medsSvc := medications.NewService(repo, log)
	medications.RegisterRoutes(r, medsSvc, codec)

	if opts.Assistant != nil {
		chatSvc := chat.NewService(opts.Assistant, log)
		chat.RegisterRoutes(r, chatSvc)
	}

	if opts.Supabase != nil && opts.Supabase.IsConfigured() {
		supabase.RegisterRoutes(r, opts.Supabase)
	}

	return r
}
