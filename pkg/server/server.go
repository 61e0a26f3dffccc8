package server

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/plantops/accessd/pkg/audit"
	"github.com/plantops/accessd/pkg/catalog"
	"github.com/plantops/accessd/pkg/config"
	"github.com/plantops/accessd/pkg/feed"
	"github.com/plantops/accessd/pkg/server/middleware"
	"github.com/plantops/accessd/pkg/server/store"
	gormstore "github.com/plantops/accessd/pkg/server/store/gorm"
)

// Server wires the permission engine to its HTTP surface.
type Server struct {
	Router *mux.Router
	DB     *gorm.DB
	Log    *logrus.Logger
	Config *config.Config

	Permissions  store.PermissionsStore
	Health       store.HealthStore
	Catalog      catalog.Catalog
	CatalogStore *catalog.GormStore
	Hub          *feed.Hub
	Audit        *audit.Store
	Metrics      *middleware.Metrics
	Registry     *prometheus.Registry

	srv *http.Server
}

// NewServer constructs a server with gorm-backed stores, a cached
// plant-unit catalog and a change-feed hub.
func NewServer(
	db *gorm.DB,
	cfg *config.Config,
	log *logrus.Logger,
	auditStore *audit.Store,
	host string,
	port string,
) *Server {
	router := mux.NewRouter().UseEncodedPath()
	srv := &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, router),
		Addr:    host + ":" + port,
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	registry := prometheus.NewRegistry()
	metrics := middleware.NewMetrics(registry)
	router.Use(middleware.HTTPMetricsMiddleware(metrics))

	catalogStore := catalog.NewGormStore(db)

	return &Server{
		Router:       router,
		DB:           db,
		Log:          log,
		Config:       cfg,
		Permissions:  gormstore.NewPermissionsStore(db),
		Health:       gormstore.NewHealthStore(db),
		Catalog:      catalog.NewCached(catalogStore, cfg.CatalogTTL()),
		CatalogStore: catalogStore,
		Hub:          feed.NewHub(log),
		Audit:        auditStore,
		Metrics:      metrics,
		Registry:     registry,
		srv:          srv,
	}
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}
