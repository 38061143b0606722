package dbhelper

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Deleting a menu item removes exactly one row from menu_items and nothing
// else; order line items are snapshots and stay behind.
func TestMenuDeleteTouchesOnlyMenuItems(t *testing.T) {
	db, mock := mockStore(t)
	store := NewMenuStore(db)

	id := uuid.New()
	mock.ExpectExec("DELETE FROM menu_items").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Delete(id))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMenuDeleteReportsMissingItem(t *testing.T) {
	db, mock := mockStore(t)
	store := NewMenuStore(db)

	id := uuid.New()
	mock.ExpectExec("DELETE FROM menu_items").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, store.Delete(id), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
