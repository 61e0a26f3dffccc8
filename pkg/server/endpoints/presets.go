package endpoints

import (
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/plantops/accessd/pkg/permission"
	"github.com/plantops/accessd/pkg/preset"
	"github.com/plantops/accessd/pkg/server"
)

// RegisterPresetsEndpoints registers role preset inspection endpoints
func RegisterPresetsEndpoints(srv *server.Server) {
	router := srv.Router

	router.HandleFunc("/presets", func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"roles": preset.Roles()})
	}).Methods("GET")

	// Resolve a role's default matrix, with plant grants expanded
	// against the current catalog.
	router.HandleFunc("/presets/{role}", func(w http.ResponseWriter, r *http.Request) {
		roleName := mux.Vars(r)["role"]
		if decoded, err := url.PathUnescape(roleName); err == nil {
			roleName = decoded
		}
		role := preset.Role(roleName)

		matrix, err := preset.Resolve(role)
		if err != nil {
			respondWithError(w, http.StatusNotFound, err.Error())
			return
		}

		if err := preset.ExpandPlantGrants(r.Context(), matrix, role, srv.Catalog); err != nil {
			if _, ok := err.(*permission.ValidationError); ok {
				respondWithError(w, http.StatusNotFound, err.Error())
				return
			}
			srv.Log.WithError(err).WithField("role", roleName).Error("failed to expand plant grants")
			respondWithError(w, http.StatusBadGateway, "failed to consult plant-unit catalog")
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"role":        role,
			"permissions": matrix,
		})
	}).Methods("GET")
}
