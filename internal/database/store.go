package database

import (
	"context"

	"inkwell/internal/models"

	"github.com/google/uuid"
)

// Store defines the common interface for engagement persistence.
// Two backends implement it: MongoDB for production and MemoryStore for
// development and tests.
type Store interface {
	// Connection
	Close(ctx context.Context) error

	// User methods
	SaveUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// RecordAuthoredBlog links a blog to its author and, when the blog is
	// published rather than drafted, bumps the author's total_posts.
	RecordAuthoredBlog(ctx context.Context, authorID, blogID uuid.UUID, published bool) error
	// IncrementUserReads bumps the author's aggregate read count when one
	// of their blogs is read.
	IncrementUserReads(ctx context.Context, userID uuid.UUID) error

	// Blog methods
	SaveBlog(ctx context.Context, blog *models.Blog) error
	GetBlog(ctx context.Context, id uuid.UUID) (*models.Blog, error)
	GetBlogBySlug(ctx context.Context, slug string, includeDraft bool) (*models.Blog, error)
	// AdjustActivity applies the delta to the blog's counters as one atomic
	// update. Counters clamp at zero; concurrent deltas on the same blog
	// must both land.
	AdjustActivity(ctx context.Context, blogID uuid.UUID, delta models.ActivityDelta) error

	// Comment methods
	SaveComment(ctx context.Context, comment *models.Comment) error
	GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	GetTopLevelComments(ctx context.Context, blogID uuid.UUID, skip, limit int) ([]*models.Comment, error)
	AddChildComment(ctx context.Context, parentID, childID uuid.UUID) error
	RemoveChildComment(ctx context.Context, parentID, childID uuid.UUID) error
	DeleteComment(ctx context.Context, id uuid.UUID) error

	// Notification methods
	SaveNotification(ctx context.Context, n *models.Notification) error
	LikeExists(ctx context.Context, blogID, userID uuid.UUID) (bool, error)
	// RemoveLike deletes the like record for (blog, user) and reports
	// whether one existed.
	RemoveLike(ctx context.Context, blogID, userID uuid.UUID) (bool, error)
	DeleteCommentNotifications(ctx context.Context, commentID uuid.UUID) error
}
