package endpoints

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPresets(t *testing.T) {
	srv, _ := NewMockTestServer(t)

	req := httptest.NewRequest("GET", "/presets", nil)
	recorder := httptest.NewRecorder()
	srv.Router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Roles []string `json:"roles"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Contains(t, body.Roles, "Super Admin")
	assert.Contains(t, body.Roles, "Guest")
}

func TestShowPresetExpandsPlantGrants(t *testing.T) {
	srv, mock := NewMockTestServer(t)

	mock.ExpectQuery(`SELECT id, category, unit FROM plant_units`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "category", "unit"}).
			AddRow("pu-1", "Cement Mill", "Cement Mill 1").
			AddRow("pu-2", "Kiln", "Kiln 1"))

	req := httptest.NewRequest("GET", "/presets/Kiln%20Operator", nil)
	recorder := httptest.NewRecorder()
	srv.Router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Role        string          `json:"role"`
		Permissions json.RawMessage `json:"permissions"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Kiln Operator", body.Role)

	var matrix map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body.Permissions, &matrix))
	assert.JSONEq(t, `"read"`, string(matrix["dashboard"]))
	// only the role's own category is expanded
	assert.JSONEq(t, `{"Kiln":{"Kiln 1":"write"}}`, string(matrix["plant_operations"]))
}

func TestShowPresetUnknownRole(t *testing.T) {
	srv, _ := NewMockTestServer(t)

	req := httptest.NewRequest("GET", "/presets/Intern", nil)
	recorder := httptest.NewRecorder()
	srv.Router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestShowPresetCatalogUnavailable(t *testing.T) {
	srv, mock := NewMockTestServer(t)

	mock.ExpectQuery(`SELECT id, category, unit FROM plant_units`).
		WillReturnError(sqlmock.ErrCancelled)

	req := httptest.NewRequest("GET", "/presets/Super%20Admin", nil)
	recorder := httptest.NewRecorder()
	srv.Router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadGateway, recorder.Code)
}
