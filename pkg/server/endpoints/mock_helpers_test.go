package endpoints

import (
	"io"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/plantops/accessd/pkg/audit"
	"github.com/plantops/accessd/pkg/config"
	"github.com/plantops/accessd/pkg/server"
)

// NewMockTestServer creates a server backed by a sqlmock connection so
// handler tests can script the exact SQL they expect.
func NewMockTestServer(t *testing.T) (*server.Server, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{
			Conn:                 mockDB,
			PreferSimpleProtocol: true,
		}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		},
	)
	require.NoError(t, err)

	t.Setenv("ACCESSD_CONFIG_PATH", t.TempDir())
	cfg, err := config.Load()
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(io.Discard)

	srv := server.NewServer(gormDB, cfg, log, audit.NewStore(nil), "localhost", "0")
	RegisterAll(srv)

	return srv, mock
}

// loadMatrixRows builds the row set returned by the permission load
// query.
func loadMatrixRows(rows ...[]driverValue) *sqlmock.Rows {
	result := sqlmock.NewRows([]string{"module_name", "permission_level", "plant_units"})
	for _, row := range rows {
		result.AddRow(row[0], row[1], row[2])
	}
	return result
}

type driverValue = interface{}
