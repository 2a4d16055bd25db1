package router

import (
	"database/sql"
	"net/http"
	"time"

	"vet-procedures/internal/adapters/render/pdf"
	mem "vet-procedures/internal/adapters/storage/memory"
	pg "vet-procedures/internal/adapters/storage/postgres"
	"vet-procedures/internal/domain/procedures"
	"vet-procedures/internal/domain/reports"
	"vet-procedures/internal/middleware"
	"vet-procedures/internal/platform/logger"
	"vet-procedures/internal/platform/ratelimit"

	_ "vet-procedures/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Opcional: si viene, usa Postgres. Si no, in-memory con el catálogo demo.
	DB *sql.DB

	// Opcional: reemplaza al repo elegido por DB (tests).
	Repo procedures.Repository

	// Opcional: snapshot compartido entre réplicas (redis).
	SnapshotStore procedures.SnapshotStore
	CatalogTTL    time.Duration

	AllowedOrigins []string
	PublicOrigin   string

	// Solo detrás de un proxy que reescribe X-Forwarded-Proto / X-Forwarded-Host.
	TrustProxyHeaders bool

	// Si es nil se crea uno con los defaults (60 req / 60s).
	Limiter *ratelimit.Limiter

	// Opcional: por defecto el renderer PDF.
	Renderer reports.Renderer

	Logger logger.Logger
}

// App es lo que arma NewApp: el handler HTTP y los servicios (el CLI los usa sin HTTP).
type App struct {
	Handler    http.Handler
	Catalog    *procedures.Service
	Reports    *reports.Service
	Limiter    *ratelimit.Limiter
	Repository procedures.Repository
}

func NewRouter(opts Options) http.Handler {
	return NewApp(opts).Handler
}

func NewApp(opts Options) *App {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	repo := opts.Repo
	if repo == nil {
		if opts.DB != nil {
			repo = pg.NewProceduresRepo(opts.DB)
		} else {
			log.Warn("no database configured, serving demo catalog from memory", nil)
			repo = mem.NewProceduresRepo(mem.DemoCatalog())
		}
	}

	limiter := opts.Limiter
	if limiter == nil {
		limiter = ratelimit.New(ratelimit.Config{})
	}

	renderer := opts.Renderer
	if renderer == nil {
		renderer = pdf.New("vet-procedures")
	}

	// Services por módulo
	catalogSvc := procedures.NewService(repo, procedures.Config{
		TTL:    opts.CatalogTTL,
		Store:  opts.SnapshotStore,
		Logger: log,
	})
	reportsSvc := reports.NewService(renderer, log)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.ClientIP)
	r.Use(middleware.RequestLog(log))
	r.Use(middleware.Recover(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Origen antes que rate limit: un origen rechazado no consume cupo.
	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.OriginGuard(opts.AllowedOrigins, opts.PublicOrigin, opts.TrustProxyHeaders))
		api.Use(middleware.RateLimit(limiter))

		procedures.RegisterRoutes(api, catalogSvc)
		reports.RegisterRoutes(api, reportsSvc, catalogSvc)
	})

	return &App{
		Handler:    r,
		Catalog:    catalogSvc,
		Reports:    reportsSvc,
		Limiter:    limiter,
		Repository: repo,
	}
}
