package endpoints

import (
	"net/http"

	"github.com/plantops/accessd/pkg/server"
)

// RegisterStatusEndpoints registers health and liveness endpoints
func RegisterStatusEndpoints(srv *server.Server) {
	router := srv.Router

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]string{"service": "accessd"})
	}).Methods("GET")

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := srv.Health.CheckConnectivity(); err != nil {
			respondWithJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
				"ok":    false,
				"error": err.Error(),
			})
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
	}).Methods("GET")
}
