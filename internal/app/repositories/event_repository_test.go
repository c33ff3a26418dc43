package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPastEventsQuery(t *testing.T) {
	sql, _, err := pastEventsQuery().ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "date < NOW()")
	assert.Contains(t, sql, "ORDER BY date DESC")
	// The archive keeps deactivated events
	assert.NotContains(t, sql, "is_active")
}
