// internal/database/notification_repository.go
package database

import (
	"context"
	"fmt"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// NotificationDocument represents notification data in MongoDB. Records of
// type "like" are the like markers themselves; the partial unique index on
// (blog, user) guarantees at most one per pair.
type NotificationDocument struct {
	ID               string    `bson:"_id"`
	Type             string    `bson:"type"`
	BlogID           string    `bson:"blog"`
	NotificationFor  string    `bson:"notification_for"`
	UserID           string    `bson:"user"`
	CommentID        *string   `bson:"comment,omitempty"`
	ReplyID          *string   `bson:"reply,omitempty"`
	RepliedOnComment *string   `bson:"replied_on_comment,omitempty"`
	Seen             bool      `bson:"seen"`
	CreatedAt        time.Time `bson:"createdAt"`
}

func notificationModelToDocument(n *models.Notification) *NotificationDocument {
	doc := &NotificationDocument{
		ID:              n.ID.String(),
		Type:            string(n.Type),
		BlogID:          n.BlogID.String(),
		NotificationFor: n.NotificationFor.String(),
		UserID:          n.UserID.String(),
		Seen:            n.Seen,
		CreatedAt:       n.CreatedAt,
	}

	if n.CommentID != nil {
		s := n.CommentID.String()
		doc.CommentID = &s
	}
	if n.ReplyID != nil {
		s := n.ReplyID.String()
		doc.ReplyID = &s
	}
	if n.RepliedOnComment != nil {
		s := n.RepliedOnComment.String()
		doc.RepliedOnComment = &s
	}

	return doc
}

// SaveNotification inserts a notification record. Inserting a second like
// for the same (blog, user) pair trips the unique index and surfaces as a
// duplicate-key error, which the engagement actor treats as "already liked".
func (m *MongoDB) SaveNotification(ctx context.Context, n *models.Notification) error {
	_, err := m.Notifications.InsertOne(ctx, notificationModelToDocument(n))
	if mongo.IsDuplicateKeyError(err) {
		return utils.NewAppError(utils.ErrDuplicate, "Blog already liked", err)
	}
	if err != nil {
		return fmt.Errorf("failed to save notification: %v", err)
	}
	return nil
}

// LikeExists reports whether a like record exists for (blog, user).
func (m *MongoDB) LikeExists(ctx context.Context, blogID, userID uuid.UUID) (bool, error) {
	filter := bson.M{
		"type": string(models.NotificationLike),
		"blog": blogID.String(),
		"user": userID.String(),
	}

	err := m.Notifications.FindOne(ctx, filter).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check like record: %v", err)
	}
	return true, nil
}

// RemoveLike deletes the like record for (blog, user) and reports whether
// one existed. The single delete doubles as the authoritative "was this
// blog liked" check during a toggle.
func (m *MongoDB) RemoveLike(ctx context.Context, blogID, userID uuid.UUID) (bool, error) {
	filter := bson.M{
		"type": string(models.NotificationLike),
		"blog": blogID.String(),
		"user": userID.String(),
	}

	result, err := m.Notifications.DeleteOne(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to remove like record: %v", err)
	}
	return result.DeletedCount > 0, nil
}

// DeleteCommentNotifications removes every notification that references the
// comment id, whether as the comment itself or as a reply. Called when a
// comment is deleted.
func (m *MongoDB) DeleteCommentNotifications(ctx context.Context, commentID uuid.UUID) error {
	idStr := commentID.String()
	filter := bson.M{"$or": bson.A{
		bson.M{"comment": idStr},
		bson.M{"reply": idStr},
	}}

	_, err := m.Notifications.DeleteMany(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete comment notifications: %v", err)
	}
	return nil
}
