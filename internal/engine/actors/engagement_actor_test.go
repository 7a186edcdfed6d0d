package actors

import (
	"context"
	"testing"

	"inkwell/internal/database"
	"inkwell/internal/models"
	"inkwell/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spawnEngagementActor(system *actor.ActorSystem, store database.Store) *actor.PID {
	props := actor.PropsFromProducer(func() actor.Actor {
		return NewEngagementActor(store, nil, utils.NewMetricsCollector())
	})
	return system.Root.Spawn(props)
}

func TestLikeToggle(t *testing.T) {
	system := actor.NewActorSystem()
	store := database.NewMemoryStore()
	pid := spawnEngagementActor(system, store)
	ctx := context.Background()

	userID := uuid.New()
	blog := seedBlog(t, store, uuid.New())

	// Like
	result := request(t, system, pid, &ToggleLikeMsg{BlogID: blog.ID, UserID: userID})
	status, ok := result.(*LikeStatusResponse)
	require.True(t, ok, "expected a like status, got %T: %v", result, result)
	assert.True(t, status.LikedByUser)

	updated, err := store.GetBlog(ctx, blog.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Activity.TotalLikes)

	exists, err := store.LikeExists(ctx, blog.ID, userID)
	require.NoError(t, err)
	assert.True(t, exists)

	// Unlike
	result = request(t, system, pid, &ToggleLikeMsg{BlogID: blog.ID, UserID: userID})
	status = result.(*LikeStatusResponse)
	assert.False(t, status.LikedByUser)

	// The round trip leaves no trace: counter back to zero, record gone.
	updated, err = store.GetBlog(ctx, blog.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Activity.TotalLikes)

	exists, err = store.LikeExists(ctx, blog.ID, userID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLikeToggleUnknownBlog(t *testing.T) {
	system := actor.NewActorSystem()
	store := database.NewMemoryStore()
	pid := spawnEngagementActor(system, store)

	result := request(t, system, pid, &ToggleLikeMsg{BlogID: uuid.New(), UserID: uuid.New()})
	appErr, ok := result.(*utils.AppError)
	require.True(t, ok, "expected an error, got %T: %v", result, result)
	assert.Equal(t, utils.ErrNotFound, appErr.Code)
}

func TestLikesFromDifferentUsersAccumulate(t *testing.T) {
	system := actor.NewActorSystem()
	store := database.NewMemoryStore()
	pid := spawnEngagementActor(system, store)
	ctx := context.Background()

	blog := seedBlog(t, store, uuid.New())
	alice := uuid.New()
	bob := uuid.New()

	request(t, system, pid, &ToggleLikeMsg{BlogID: blog.ID, UserID: alice})
	request(t, system, pid, &ToggleLikeMsg{BlogID: blog.ID, UserID: bob})

	updated, err := store.GetBlog(ctx, blog.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Activity.TotalLikes)

	// One user unliking does not disturb the other's like.
	request(t, system, pid, &ToggleLikeMsg{BlogID: blog.ID, UserID: alice})

	updated, err = store.GetBlog(ctx, blog.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Activity.TotalLikes)

	exists, err := store.LikeExists(ctx, blog.ID, bob)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCheckLiked(t *testing.T) {
	system := actor.NewActorSystem()
	store := database.NewMemoryStore()
	pid := spawnEngagementActor(system, store)

	userID := uuid.New()
	blog := seedBlog(t, store, uuid.New())

	result := request(t, system, pid, &CheckLikedMsg{BlogID: blog.ID, UserID: userID})
	status := result.(*LikeStatusResponse)
	assert.False(t, status.LikedByUser)

	request(t, system, pid, &ToggleLikeMsg{BlogID: blog.ID, UserID: userID})

	result = request(t, system, pid, &CheckLikedMsg{BlogID: blog.ID, UserID: userID})
	status = result.(*LikeStatusResponse)
	assert.True(t, status.LikedByUser)
}

// The full engagement lifecycle of a blog, checking the counters after
// every step.
func TestActivityCounterLifecycle(t *testing.T) {
	system := actor.NewActorSystem()
	store := database.NewMemoryStore()
	commentPID := spawnCommentActor(system, store)
	engagementPID := spawnEngagementActor(system, store)
	ctx := context.Background()

	authorID := uuid.New()
	readerID := uuid.New()
	blog := seedBlog(t, store, authorID)

	activity := func() models.Activity {
		t.Helper()
		updated, err := store.GetBlog(ctx, blog.ID)
		require.NoError(t, err)
		return updated.Activity
	}

	assert.Equal(t, models.Activity{}, activity())

	// Reader leaves a top-level comment.
	c1 := request(t, system, commentPID, &CreateCommentMsg{
		BlogID:   blog.ID,
		AuthorID: readerID,
		Content:  "great read",
	}).(*models.Comment)
	a := activity()
	assert.Equal(t, 0, a.TotalLikes)
	assert.Equal(t, 1, a.TotalComments)
	assert.Equal(t, 1, a.TotalParentComments)

	// Author replies.
	request(t, system, commentPID, &CreateCommentMsg{
		BlogID:   blog.ID,
		AuthorID: authorID,
		Content:  "glad you liked it",
		ParentID: &c1.ID,
	})
	a = activity()
	assert.Equal(t, 2, a.TotalComments)
	assert.Equal(t, 1, a.TotalParentComments)

	// Reader likes the blog.
	request(t, system, engagementPID, &ToggleLikeMsg{BlogID: blog.ID, UserID: readerID})
	a = activity()
	assert.Equal(t, 1, a.TotalLikes)
	assert.Equal(t, 2, a.TotalComments)
	assert.Equal(t, 1, a.TotalParentComments)

	// Reader deletes their comment; the author's reply is orphaned.
	request(t, system, commentPID, &DeleteCommentMsg{
		CommentID:   c1.ID,
		RequestedBy: readerID,
	})
	a = activity()
	assert.Equal(t, 1, a.TotalLikes)
	assert.Equal(t, 1, a.TotalComments)
	assert.Equal(t, 0, a.TotalParentComments)

	// Reader withdraws the like.
	request(t, system, engagementPID, &ToggleLikeMsg{BlogID: blog.ID, UserID: readerID})
	a = activity()
	assert.Equal(t, 0, a.TotalLikes)
	assert.Equal(t, 1, a.TotalComments)
	assert.Equal(t, 0, a.TotalParentComments)

	// The stored totals agree with the counters throughout.
	total, parents := store.CommentTotals(blog.ID)
	assert.Equal(t, a.TotalComments, total)
	assert.Equal(t, a.TotalParentComments, parents)
}
