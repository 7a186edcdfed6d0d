package engine

import (
	"inkwell/internal/database"
	"inkwell/internal/engine/actors"
	"inkwell/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
)

// Engine spawns the domain actors and hands out their PIDs. Each actor owns
// one subsystem; requests for the same subsystem serialize through its
// mailbox while the store keeps counter updates commutative.
type Engine struct {
	commentActor    *actor.PID
	engagementActor *actor.PID
	blogActor       *actor.PID
	userActor       *actor.PID
}

func NewEngine(system *actor.ActorSystem, store database.Store, pusher actors.NotificationPusher, jwtSecret string, metrics *utils.MetricsCollector) *Engine {
	context := system.Root

	commentProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewCommentActor(store, pusher, metrics)
	})
	commentPID := context.Spawn(commentProps)

	engagementProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewEngagementActor(store, pusher, metrics)
	})
	engagementPID := context.Spawn(engagementProps)

	blogProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewBlogActor(store, metrics)
	})
	blogPID := context.Spawn(blogProps)

	userProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewUserActor(store, jwtSecret, metrics)
	})
	userPID := context.Spawn(userProps)

	return &Engine{
		commentActor:    commentPID,
		engagementActor: engagementPID,
		blogActor:       blogPID,
		userActor:       userPID,
	}
}

// GetCommentActor returns the PID of the comment actor
func (e *Engine) GetCommentActor() *actor.PID {
	return e.commentActor
}

// GetEngagementActor returns the PID of the engagement actor
func (e *Engine) GetEngagementActor() *actor.PID {
	return e.engagementActor
}

// GetBlogActor returns the PID of the blog actor
func (e *Engine) GetBlogActor() *actor.PID {
	return e.blogActor
}

// GetUserActor returns the PID of the user actor
func (e *Engine) GetUserActor() *actor.PID {
	return e.userActor
}
