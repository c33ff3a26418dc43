package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisibleMessagesPredicate(t *testing.T) {
	t.Run("lists received messages only", func(t *testing.T) {
		sql, args, err := visibleMessagesPredicate(7, false).ToSql()
		require.NoError(t, err)

		assert.Contains(t, sql, "m.receiver_id = ?")
		assert.NotContains(t, sql, "m.sender_id")
		assert.NotContains(t, sql, "m.is_feedback")
		assert.Equal(t, []interface{}{int64(7)}, args)
	})

	t.Run("adds feedback when allowed", func(t *testing.T) {
		sql, args, err := visibleMessagesPredicate(7, true).ToSql()
		require.NoError(t, err)

		assert.Contains(t, sql, "m.receiver_id = ?")
		assert.Contains(t, sql, "m.is_feedback = ?")
		assert.NotContains(t, sql, "m.sender_id")
		assert.Equal(t, []interface{}{int64(7), true}, args)
	})
}
