package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Order line items are point-in-time snapshots. The schema must not tie
// them to menu_items, or deleting a dish would break historical orders.
func TestOrderItemsCarryNoMenuItemForeignKey(t *testing.T) {
	up, err := migrationsFS.ReadFile("migrations/000001_init.up.sql")
	require.NoError(t, err)

	ddl := string(up)
	start := strings.Index(ddl, "CREATE TABLE IF NOT EXISTS order_items")
	require.NotEqual(t, -1, start, "order_items table missing from migration")
	length := strings.Index(ddl[start:], ";")
	require.NotEqual(t, -1, length)

	table := ddl[start : start+length]
	assert.NotContains(t, table, "REFERENCES menu_items")
	assert.Contains(t, table, "REFERENCES orders", "line items still belong to their order")
}
