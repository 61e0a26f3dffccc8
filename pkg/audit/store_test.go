package audit

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSaveUpdateEvent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO audit_events`).
		WithArgs(
			sqlmock.AnyArg(),
			"info",
			"permission-update",
			sqlmock.AnyArg(),
			"admin-1 updated permissions of u-1",
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	store := NewStore(db)
	err = store.Save(UpdateEvent{ActorID: "admin-1", UserID: "u-1", Success: true})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreSaveFailedUpdateIsWarning(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO audit_events`).
		WithArgs(
			sqlmock.AnyArg(),
			"warning",
			"permission-update",
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	store := NewStore(db)
	err = store.Save(UpdateEvent{
		ActorID:      "admin-1",
		UserID:       "u-1",
		Success:      false,
		ErrorMessage: "database unavailable",
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreNilIsNoop(t *testing.T) {
	var store *Store
	assert.NoError(t, store.Save(CheckEvent{UserID: "u-1", Module: "dashboard", Required: "write"}))

	empty := NewStore(nil)
	assert.NoError(t, empty.Save(CheckEvent{UserID: "u-1", Module: "dashboard", Required: "write"}))
	assert.NoError(t, empty.Close())
}

func TestCheckEventMessage(t *testing.T) {
	scoped := CheckEvent{
		UserID:   "u-1",
		Module:   "plant_operations",
		Required: "write",
		Category: "Kiln",
		Unit:     "Kiln 1",
	}
	assert.Equal(t, "u-1 denied write on plant_operations (Kiln/Kiln 1)", scoped.Message())
	assert.Equal(t, "Kiln", scoped.Details()["category"])

	scalar := CheckEvent{UserID: "u-1", Module: "dashboard", Required: "admin"}
	assert.Equal(t, "u-1 denied admin on dashboard", scalar.Message())
	assert.NotContains(t, scalar.Details(), "category")
}
