package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/bq-cafe/pos-api/internal/config"
	"github.com/bq-cafe/pos-api/internal/database"
	"github.com/bq-cafe/pos-api/internal/events"
	"github.com/bq-cafe/pos-api/internal/handler"
	mw "github.com/bq-cafe/pos-api/internal/middleware"
	"github.com/bq-cafe/pos-api/internal/service"
	"github.com/bq-cafe/pos-api/internal/ws"
)

// New creates a Chi router with all application routes wired up.
// Order mutations are published to publisher after they commit.
func New(
	cfg *config.Config,
	queries *database.Queries,
	pool *pgxpool.Pool,
	hub *ws.Hub,
	publisher events.Publisher,
	logger zerolog.Logger,
) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(mw.RequestLogger(logger))
	r.Use(mw.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300, // 5 minutes
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := pool.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unavailable"}`)) //nolint:errcheck
			return
		}
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`)) //nolint:errcheck
	})

	// Live table board, one room per area
	r.Get("/ws/areas/{aid}/tables", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, w, r)
	})

	// Seating directory
	areaHandler := handler.NewAreaHandler(queries)
	r.Route("/areas", areaHandler.RegisterRoutes)

	// Menu
	menuHandler := handler.NewMenuHandler(queries)
	r.Route("/menu", menuHandler.RegisterRoutes)

	// Orders and payments
	newOrderStore := func(db database.DBTX) service.OrderStore {
		return database.New(db)
	}
	orderService := service.NewOrderService(pool, newOrderStore, publisher)
	orderHandler := handler.NewOrderHandler(orderService)
	r.Route("/tables", orderHandler.RegisterTableRoutes)
	r.Route("/orders", orderHandler.RegisterRoutes)

	// Same-day history
	historyHandler := handler.NewHistoryHandler(queries, orderService, cfg.Location())
	r.Route("/history", historyHandler.RegisterRoutes)

	logger.Debug().Msg("router initialized")
	return r
}
