package endpoints

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/plantops/accessd/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterStatusEndpoints(srv)
	RegisterCheckEndpoint(srv)
	RegisterPermissionsEndpoints(srv)
	RegisterPresetsEndpoints(srv)
	RegisterCatalogEndpoints(srv)

	if srv.Config.FeedEnabled {
		srv.Router.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
			srv.Hub.Handle(w, r)
		}).Methods("GET")
	}

	srv.Router.Handle("/metrics", promhttp.HandlerFor(srv.Registry, promhttp.HandlerOpts{})).Methods("GET")
}
