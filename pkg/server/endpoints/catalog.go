package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/plantops/accessd/pkg/server"
)

// RegisterCatalogEndpoints registers plant-unit catalog endpoints
func RegisterCatalogEndpoints(srv *server.Server) {
	router := srv.Router

	router.HandleFunc("/plant-units", func(w http.ResponseWriter, r *http.Request) {
		units, err := srv.Catalog.Units(r.Context())
		if err != nil {
			srv.Log.WithError(err).Error("failed to list plant units")
			respondWithError(w, http.StatusBadGateway, "failed to list plant units")
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"plant_units": units})
	}).Methods("GET")

	router.HandleFunc("/plant-units", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Category string `json:"category"`
			Unit     string `json:"unit"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		if body.Category == "" || body.Unit == "" {
			respondWithError(w, http.StatusBadRequest, "category and unit are required")
			return
		}

		unit, err := srv.CatalogStore.CreateUnit(r.Context(), body.Category, body.Unit)
		if err != nil {
			srv.Log.WithError(err).Error("failed to create plant unit")
			respondWithError(w, http.StatusBadGateway, "failed to create plant unit")
			return
		}

		respondWithJSON(w, http.StatusCreated, unit)
	}).Methods("POST")
}
