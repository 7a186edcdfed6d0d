package actors

import (
	stdctx "context"
	"log"
	"time"

	"inkwell/internal/database"
	"inkwell/internal/models"
	"inkwell/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
)

// Message types for EngagementActor
type (
	ToggleLikeMsg struct {
		BlogID uuid.UUID `json:"blogId"`
		UserID uuid.UUID `json:"userId"`
	}

	CheckLikedMsg struct {
		BlogID uuid.UUID `json:"blogId"`
		UserID uuid.UUID `json:"userId"`
	}
)

// LikeStatusResponse reports the like state after a toggle or check.
type LikeStatusResponse struct {
	LikedByUser bool `json:"liked_by_user"`
}

// EngagementActor owns like toggling. The prior like state is derived from
// the like record itself rather than trusted from the client, so repeated
// or racing toggles from the same user converge instead of double-counting:
// the record's existence is the sole source of truth, and the store's
// uniqueness guarantee on (blog, user) arbitrates concurrent likes.
type EngagementActor struct {
	store   database.Store
	pusher  NotificationPusher
	metrics *utils.MetricsCollector
}

func NewEngagementActor(store database.Store, pusher NotificationPusher, metrics *utils.MetricsCollector) actor.Actor {
	return &EngagementActor{
		store:   store,
		pusher:  pusher,
		metrics: metrics,
	}
}

func (a *EngagementActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		log.Printf("EngagementActor started with PID: %v", context.Self())

	case *ToggleLikeMsg:
		a.handleToggleLike(context, msg)

	case *CheckLikedMsg:
		a.handleCheckLiked(context, msg)

	default:
		log.Printf("EngagementActor: Unknown message type %T", msg)
	}
}

func (a *EngagementActor) handleToggleLike(context actor.Context, msg *ToggleLikeMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	blog, err := a.store.GetBlog(ctx, msg.BlogID)
	if err != nil {
		if utils.IsErrorCode(err, utils.ErrNotFound) {
			context.Respond(err)
		} else {
			context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch blog", err))
		}
		return
	}

	// A single delete decides the direction: if a record came out the user
	// was unliking, otherwise they are liking now.
	removed, err := a.store.RemoveLike(ctx, msg.BlogID, msg.UserID)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to toggle like", err))
		return
	}

	if removed {
		if err := a.store.AdjustActivity(ctx, msg.BlogID, models.ActivityDelta{Likes: -1}); err != nil {
			context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to update blog activity", err))
			return
		}

		a.metrics.AddOperationLatency("unlike_blog", time.Since(startTime))
		context.Respond(&LikeStatusResponse{LikedByUser: false})
		return
	}

	n := &models.Notification{
		ID:              uuid.New(),
		Type:            models.NotificationLike,
		BlogID:          msg.BlogID,
		NotificationFor: blog.AuthorID,
		UserID:          msg.UserID,
		CreatedAt:       time.Now(),
	}
	if err := a.store.SaveNotification(ctx, n); err != nil {
		if utils.IsErrorCode(err, utils.ErrDuplicate) {
			// A concurrent like from the same user won the insert; the blog
			// is liked and the counter already moved once.
			context.Respond(&LikeStatusResponse{LikedByUser: true})
			return
		}
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to save like record", err))
		return
	}

	if err := a.store.AdjustActivity(ctx, msg.BlogID, models.ActivityDelta{Likes: 1}); err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to update blog activity", err))
		return
	}

	if a.pusher != nil {
		a.pusher.PushNotification(n)
	}

	a.metrics.AddOperationLatency("like_blog", time.Since(startTime))
	context.Respond(&LikeStatusResponse{LikedByUser: true})
}

func (a *EngagementActor) handleCheckLiked(context actor.Context, msg *CheckLikedMsg) {
	ctx := stdctx.Background()

	exists, err := a.store.LikeExists(ctx, msg.BlogID, msg.UserID)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to check like status", err))
		return
	}

	context.Respond(&LikeStatusResponse{LikedByUser: exists})
}
