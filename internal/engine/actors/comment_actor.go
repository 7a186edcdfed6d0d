package actors

import (
	stdctx "context"
	"log"
	"strings"
	"time"

	"inkwell/internal/database"
	"inkwell/internal/models"
	"inkwell/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
)

// Page size for top-level comment listings. Clients page with skip = n*5.
const commentPageSize = 5

// Message types for CommentActor
type (
	CreateCommentMsg struct {
		BlogID   uuid.UUID  `json:"blogId"`
		AuthorID uuid.UUID  `json:"authorId"`
		Content  string     `json:"content"`
		ParentID *uuid.UUID `json:"parentId,omitempty"`
	}

	DeleteCommentMsg struct {
		CommentID   uuid.UUID `json:"commentId"`
		RequestedBy uuid.UUID `json:"requestedBy"`
	}

	GetCommentMsg struct {
		CommentID uuid.UUID `json:"commentId"`
	}

	GetBlogCommentsMsg struct {
		BlogID uuid.UUID `json:"blogId"`
		Skip   int       `json:"skip"`
	}
)

// NotificationPusher delivers a freshly written notification to the
// recipient's live connection, when one exists. Delivery is best-effort.
type NotificationPusher interface {
	PushNotification(n *models.Notification)
}

// CommentActor manages the comment tree of every blog: creating comments
// and replies, cascading deletes, and the paginated top-level listing. All
// counter changes go through the store's atomic delta primitive.
type CommentActor struct {
	store   database.Store
	pusher  NotificationPusher
	metrics *utils.MetricsCollector
}

func NewCommentActor(store database.Store, pusher NotificationPusher, metrics *utils.MetricsCollector) actor.Actor {
	return &CommentActor{
		store:   store,
		pusher:  pusher,
		metrics: metrics,
	}
}

func (a *CommentActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		log.Printf("CommentActor started with PID: %v", context.Self())

	case *CreateCommentMsg:
		a.handleCreateComment(context, msg)

	case *DeleteCommentMsg:
		a.handleDeleteComment(context, msg)

	case *GetCommentMsg:
		a.handleGetComment(context, msg)

	case *GetBlogCommentsMsg:
		a.handleGetBlogComments(context, msg)

	default:
		log.Printf("CommentActor: Unknown message type %T", msg)
	}
}

func (a *CommentActor) handleCreateComment(context actor.Context, msg *CreateCommentMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	content := strings.TrimSpace(msg.Content)
	if content == "" {
		context.Respond(utils.NewValidationError("comment", "write something to leave a comment"))
		return
	}

	blog, err := a.store.GetBlog(ctx, msg.BlogID)
	if err != nil {
		if utils.IsErrorCode(err, utils.ErrNotFound) {
			context.Respond(err)
		} else {
			context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch blog", err))
		}
		return
	}

	var parent *models.Comment
	if msg.ParentID != nil {
		parent, err = a.store.GetComment(ctx, *msg.ParentID)
		if err != nil {
			if utils.IsErrorCode(err, utils.ErrNotFound) {
				context.Respond(utils.NewAppError(utils.ErrNotFound, "Parent comment not found", nil))
			} else {
				context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch parent comment", err))
			}
			return
		}
	}

	now := time.Now()
	newComment := &models.Comment{
		ID:          uuid.New(),
		BlogID:      msg.BlogID,
		BlogAuthor:  blog.AuthorID,
		Content:     content,
		CommentedBy: msg.AuthorID,
		IsReply:     parent != nil,
		Children:    make([]uuid.UUID, 0),
		CommentedAt: now,
		UpdatedAt:   now,
	}
	if parent != nil {
		parentID := parent.ID
		newComment.ParentID = &parentID
	}

	if err := a.store.SaveComment(ctx, newComment); err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to save comment", err))
		return
	}

	if parent != nil {
		if err := a.store.AddChildComment(ctx, parent.ID, newComment.ID); err != nil {
			context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to link reply to parent", err))
			return
		}
	}

	// Replies count toward total_comments only; top-level comments also
	// count toward total_parent_comments.
	delta := models.ActivityDelta{Comments: 1}
	if parent == nil {
		delta.ParentComments = 1
	}
	if err := a.store.AdjustActivity(ctx, msg.BlogID, delta); err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to update blog activity", err))
		return
	}

	a.writeCommentNotification(ctx, blog, newComment, parent)

	newComment.ChildrenLevel = 0
	a.metrics.AddOperationLatency("create_comment", time.Since(startTime))
	context.Respond(newComment)
}

// writeCommentNotification records the comment/reply event for the blog's
// author. Reply notifications also go to the blog author, not the parent
// comment's author; replied_on_comment preserves enough context to change
// that routing later. The write is best-effort.
func (a *CommentActor) writeCommentNotification(ctx stdctx.Context, blog *models.Blog, comment *models.Comment, parent *models.Comment) {
	n := &models.Notification{
		ID:              uuid.New(),
		Type:            models.NotificationComment,
		BlogID:          blog.ID,
		NotificationFor: blog.AuthorID,
		UserID:          comment.CommentedBy,
		CreatedAt:       time.Now(),
	}

	if parent != nil {
		n.Type = models.NotificationReply
		replyID := comment.ID
		parentID := parent.ID
		n.ReplyID = &replyID
		n.RepliedOnComment = &parentID
	} else {
		commentID := comment.ID
		n.CommentID = &commentID
	}

	if err := a.store.SaveNotification(ctx, n); err != nil {
		log.Printf("Failed to save %s notification for blog %s: %v", n.Type, blog.ID, err)
		return
	}

	if a.pusher != nil {
		a.pusher.PushNotification(n)
	}
}

func (a *CommentActor) handleDeleteComment(context actor.Context, msg *DeleteCommentMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	comment, err := a.store.GetComment(ctx, msg.CommentID)
	if err != nil {
		if utils.IsErrorCode(err, utils.ErrNotFound) {
			context.Respond(err)
		} else {
			context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch comment", err))
		}
		return
	}

	// Only the commenter or the blog's author may delete a comment.
	if msg.RequestedBy != comment.CommentedBy && msg.RequestedBy != comment.BlogAuthor {
		context.Respond(utils.NewForbiddenError("not the comment author or blog author"))
		return
	}

	if err := a.store.DeleteComment(ctx, msg.CommentID); err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to delete comment", err))
		return
	}

	if err := a.store.DeleteCommentNotifications(ctx, msg.CommentID); err != nil {
		log.Printf("Failed to delete notifications for comment %s: %v", msg.CommentID, err)
	}

	if comment.ParentID != nil {
		if err := a.store.RemoveChildComment(ctx, *comment.ParentID, msg.CommentID); err != nil {
			log.Printf("Failed to unlink reply %s from parent %s: %v", msg.CommentID, *comment.ParentID, err)
		}
	}

	// Replies of a deleted top-level comment are orphaned, not deleted:
	// they stay in the store, reachable by id but absent from every
	// listing. The counters therefore move by exactly one comment.
	delta := models.ActivityDelta{Comments: -1}
	if comment.ParentID == nil {
		delta.ParentComments = -1
	}
	if err := a.store.AdjustActivity(ctx, comment.BlogID, delta); err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to update blog activity", err))
		return
	}

	a.metrics.AddOperationLatency("delete_comment", time.Since(startTime))
	context.Respond(&models.StatusResponse{Success: true, Message: "Comment deleted successfully"})
}

func (a *CommentActor) handleGetComment(context actor.Context, msg *GetCommentMsg) {
	ctx := stdctx.Background()

	comment, err := a.store.GetComment(ctx, msg.CommentID)
	if err != nil {
		if utils.IsErrorCode(err, utils.ErrNotFound) {
			context.Respond(err)
		} else {
			context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to get comment", err))
		}
		return
	}

	context.Respond(comment)
}

func (a *CommentActor) handleGetBlogComments(context actor.Context, msg *GetBlogCommentsMsg) {
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

	skip := msg.Skip
	if skip < 0 {
		skip = 0
	}

	comments, err := a.store.GetTopLevelComments(ctx, msg.BlogID, skip, commentPageSize)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch comments", err))
		return
	}

	for _, comment := range comments {
		comment.ChildrenLevel = 0
	}

	a.metrics.AddOperationLatency("get_blog_comments", time.Since(startTime))
	context.Respond(&models.CommentPage{
		Results:  comments,
		Activity: blog.Activity,
	})
}
