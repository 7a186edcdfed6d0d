package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Comments created in the same millisecond collide on commentedAt, so the
// listing sort must carry a tie-breaker or pages could repeat and drop
// entries.
func TestTopLevelCommentSortBreaksTimestampTies(t *testing.T) {
	require.Len(t, topLevelCommentSort, 2)

	assert.Equal(t, "commentedAt", topLevelCommentSort[0].Key)
	assert.Equal(t, -1, topLevelCommentSort[0].Value)

	assert.Equal(t, "_id", topLevelCommentSort[1].Key)
	assert.Equal(t, -1, topLevelCommentSort[1].Value)
}
