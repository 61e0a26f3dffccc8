package endpoints

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/plantops/accessd/pkg/audit"
	"github.com/plantops/accessd/pkg/permission"
	"github.com/plantops/accessd/pkg/server"
)

// RegisterCheckEndpoint registers the guard primitive used by every
// downstream screen: evaluate(user, module, level, scope?) -> allowed.
func RegisterCheckEndpoint(srv *server.Server) {
	srv.Router.HandleFunc("/users/{user_id}/check", func(w http.ResponseWriter, r *http.Request) {
		userID := mux.Vars(r)["user_id"]
		query := r.URL.Query()

		module := permission.Module(query.Get("module"))
		if !module.Valid() {
			respondWithError(w, http.StatusBadRequest, "unknown module")
			return
		}

		required, err := permission.LevelString(query.Get("level"))
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "unknown level")
			return
		}

		var scope *permission.Scope
		if module.Scoped() {
			scope = &permission.Scope{
				Category: query.Get("category"),
				Unit:     query.Get("unit"),
			}
		}

		matrix, err := srv.Permissions.LoadMatrix(r.Context(), userID)
		if err != nil {
			srv.Log.WithError(err).WithField("user_id", userID).Error("failed to load matrix")
			respondWithError(w, http.StatusBadGateway, "failed to load permissions")
			return
		}

		allowed := matrix.Allows(module, required, scope)
		srv.Metrics.ChecksTotal.WithLabelValues(module.String(), strconv.FormatBool(allowed)).Inc()

		if !allowed {
			event := audit.CheckEvent{
				UserID:   userID,
				Module:   module.String(),
				Required: required.String(),
			}
			if scope != nil {
				event.Category = scope.Category
				event.Unit = scope.Unit
			}
			_ = srv.Audit.Save(event)
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"user_id": userID,
			"module":  module,
			"level":   required,
			"allowed": allowed,
		})
	}).Methods("GET")
}
