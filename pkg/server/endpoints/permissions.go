package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/plantops/accessd/pkg/audit"
	"github.com/plantops/accessd/pkg/feed"
	"github.com/plantops/accessd/pkg/permission"
	"github.com/plantops/accessd/pkg/server"
	"github.com/plantops/accessd/pkg/server/store"
)

// RegisterPermissionsEndpoints registers matrix load/replace endpoints
func RegisterPermissionsEndpoints(srv *server.Server) {
	router := srv.Router

	// Load a user's committed matrix together with its revision token.
	router.HandleFunc("/users/{user_id}/permissions", func(w http.ResponseWriter, r *http.Request) {
		userID := mux.Vars(r)["user_id"]

		matrix, err := srv.Permissions.LoadMatrix(r.Context(), userID)
		if err != nil {
			srv.Log.WithError(err).WithField("user_id", userID).Error("failed to load matrix")
			respondWithError(w, http.StatusBadGateway, "failed to load permissions")
			return
		}

		revision, err := srv.Permissions.MatrixRevision(r.Context(), userID)
		if err != nil {
			srv.Log.WithError(err).WithField("user_id", userID).Error("failed to load revision")
			respondWithError(w, http.StatusBadGateway, "failed to load permissions")
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"user_id":     userID,
			"revision":    revision,
			"permissions": matrix,
		})
	}).Methods("GET")

	// Replace a user's matrix. The body is the wire shape produced by
	// Matrix.MarshalJSON; the whole link set is replaced atomically.
	router.HandleFunc("/users/{user_id}/permissions", func(w http.ResponseWriter, r *http.Request) {
		userID := mux.Vars(r)["user_id"]
		actorID := r.Header.Get("X-Actor-Id")

		var matrix permission.Matrix
		if err := json.NewDecoder(r.Body).Decode(&matrix); err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		err := srv.Permissions.SaveMatrix(r.Context(), userID, matrix)
		if err != nil {
			srv.Metrics.SavesTotal.WithLabelValues("error").Inc()
			_ = srv.Audit.Save(audit.UpdateEvent{
				ActorID: actorID, UserID: userID, Success: false, ErrorMessage: err.Error(),
			})

			var validationErr *permission.ValidationError
			switch {
			case errors.As(err, &validationErr):
				respondWithError(w, http.StatusUnprocessableEntity, err.Error())
			case store.IsConstraintViolation(err):
				// Non-retriable: schema and code disagree.
				respondWithError(w, http.StatusConflict, err.Error())
			default:
				srv.Log.WithError(err).WithField("user_id", userID).Error("failed to save matrix")
				respondWithError(w, http.StatusBadGateway, "failed to save permissions")
			}
			return
		}

		srv.Metrics.SavesTotal.WithLabelValues("ok").Inc()
		_ = srv.Audit.Save(audit.UpdateEvent{ActorID: actorID, UserID: userID, Success: true})
		if srv.Config.FeedEnabled {
			srv.Hub.BroadcastUserPermissions(userID, feed.ActionUpdate)
		}

		revision, _ := srv.Permissions.MatrixRevision(r.Context(), userID)
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"user_id":  userID,
			"revision": revision,
		})
	}).Methods("PUT")
}
