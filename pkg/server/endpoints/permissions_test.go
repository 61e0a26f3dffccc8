package endpoints

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPermissions(t *testing.T) {
	srv, mock := NewMockTestServer(t)

	mock.ExpectQuery(`SELECT p.module_name, p.permission_level, p.plant_units`).
		WithArgs("u-1").
		WillReturnRows(loadMatrixRows(
			[]driverValue{"dashboard", "read", "[]"},
			[]driverValue{"plant_operations", "write", `[{"category":"Kiln","unit":"Kiln 1"}]`},
		))
	mock.ExpectQuery(`SELECT COALESCE\(string_agg`).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("perm-1,perm-2"))

	req := httptest.NewRequest("GET", "/users/u-1/permissions", nil)
	recorder := httptest.NewRecorder()
	srv.Router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		UserID      string          `json:"user_id"`
		Revision    string          `json:"revision"`
		Permissions json.RawMessage `json:"permissions"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "u-1", body.UserID)
	assert.Equal(t, "perm-1,perm-2", body.Revision)

	var matrix map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body.Permissions, &matrix))
	assert.JSONEq(t, `"read"`, string(matrix["dashboard"]))
	assert.JSONEq(t, `{"Kiln":{"Kiln 1":"write"}}`, string(matrix["plant_operations"]))
	assert.JSONEq(t, `"none"`, string(matrix["inspection"]))
}

func TestPutPermissions(t *testing.T) {
	srv, mock := NewMockTestServer(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM permissions`).
		WithArgs("dashboard", "read", "[]").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("perm-1"))
	mock.ExpectQuery(`SELECT permission_id FROM user_permissions`).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"permission_id"}))
	mock.ExpectExec(`INSERT INTO user_permissions`).
		WithArgs("u-1", "perm-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT COALESCE\(string_agg`).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("perm-1"))

	req := httptest.NewRequest("PUT", "/users/u-1/permissions",
		strings.NewReader(`{"dashboard":"read"}`))
	req.Header.Set("X-Actor-Id", "admin-1")
	recorder := httptest.NewRecorder()
	srv.Router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "perm-1", body["revision"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPutPermissionsRejectsUnknownModule(t *testing.T) {
	srv, _ := NewMockTestServer(t)

	req := httptest.NewRequest("PUT", "/users/u-1/permissions",
		strings.NewReader(`{"payroll":"read"}`))
	recorder := httptest.NewRecorder()
	srv.Router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestPutPermissionsStorageFailure(t *testing.T) {
	srv, mock := NewMockTestServer(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM permissions`).
		WithArgs("dashboard", "read", "[]").
		WillReturnError(sqlmock.ErrCancelled)
	mock.ExpectRollback()

	req := httptest.NewRequest("PUT", "/users/u-1/permissions",
		strings.NewReader(`{"dashboard":"read"}`))
	recorder := httptest.NewRecorder()
	srv.Router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadGateway, recorder.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
