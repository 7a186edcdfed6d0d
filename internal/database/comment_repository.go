// internal/database/comment_repository.go
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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// topLevelCommentSort orders listings newest first. BSON datetimes carry
// millisecond precision, so comments created in the same millisecond compare
// equal on commentedAt alone and Mongo's order for equal keys is
// unspecified; the _id tie-breaker makes consecutive skip/limit pages
// total-ordered, never repeating or dropping a comment.
var topLevelCommentSort = bson.D{
	{Key: "commentedAt", Value: -1},
	{Key: "_id", Value: -1},
}

// CommentDocument represents comment data in MongoDB. Field names follow
// the persisted layout the clients already depend on.
type CommentDocument struct {
	ID          string    `bson:"_id"`
	BlogID      string    `bson:"blog_id"`
	BlogAuthor  string    `bson:"blog_author"`
	Content     string    `bson:"comment"`
	CommentedBy string    `bson:"commented_by"`
	IsReply     bool      `bson:"isReply"`
	ParentID    *string   `bson:"parent"`
	Children    []string  `bson:"children"`
	CommentedAt time.Time `bson:"commentedAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

func commentModelToDocument(comment *models.Comment) *CommentDocument {
	doc := &CommentDocument{
		ID:          comment.ID.String(),
		BlogID:      comment.BlogID.String(),
		BlogAuthor:  comment.BlogAuthor.String(),
		Content:     comment.Content,
		CommentedBy: comment.CommentedBy.String(),
		IsReply:     comment.IsReply,
		Children:    make([]string, len(comment.Children)),
		CommentedAt: comment.CommentedAt,
		UpdatedAt:   comment.UpdatedAt,
	}

	for i, childID := range comment.Children {
		doc.Children[i] = childID.String()
	}

	if comment.ParentID != nil {
		parentIDStr := comment.ParentID.String()
		doc.ParentID = &parentIDStr
	}

	return doc
}

func commentDocumentToModel(doc *CommentDocument) (*models.Comment, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid comment ID: %v", err)
	}

	blogID, err := uuid.Parse(doc.BlogID)
	if err != nil {
		return nil, fmt.Errorf("invalid blog ID: %v", err)
	}

	blogAuthor, err := uuid.Parse(doc.BlogAuthor)
	if err != nil {
		return nil, fmt.Errorf("invalid blog author ID: %v", err)
	}

	commentedBy, err := uuid.Parse(doc.CommentedBy)
	if err != nil {
		return nil, fmt.Errorf("invalid commenter ID: %v", err)
	}

	var parentID *uuid.UUID
	if doc.ParentID != nil {
		parsed, err := uuid.Parse(*doc.ParentID)
		if err != nil {
			return nil, fmt.Errorf("invalid parent ID: %v", err)
		}
		parentID = &parsed
	}

	children := make([]uuid.UUID, len(doc.Children))
	for i, childIDStr := range doc.Children {
		childID, err := uuid.Parse(childIDStr)
		if err != nil {
			return nil, fmt.Errorf("invalid child ID: %v", err)
		}
		children[i] = childID
	}

	return &models.Comment{
		ID:          id,
		BlogID:      blogID,
		BlogAuthor:  blogAuthor,
		Content:     doc.Content,
		CommentedBy: commentedBy,
		IsReply:     doc.IsReply,
		ParentID:    parentID,
		Children:    children,
		CommentedAt: doc.CommentedAt,
		UpdatedAt:   doc.UpdatedAt,
	}, nil
}

// SaveComment creates or updates a comment in MongoDB.
func (m *MongoDB) SaveComment(ctx context.Context, comment *models.Comment) error {
	doc := commentModelToDocument(comment)

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": doc.ID}
	update := bson.M{"$set": doc}

	_, err := m.Comments.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to save comment: %v", err)
	}
	return nil
}

// GetComment retrieves a comment by ID.
func (m *MongoDB) GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	var doc CommentDocument

	err := m.Comments.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrNotFound, "Comment not found", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %v", err)
	}

	return commentDocumentToModel(&doc)
}

// GetTopLevelComments retrieves one page of a blog's top-level comments,
// newest first. Replies never appear here; they are reachable only through
// their parent's children list.
func (m *MongoDB) GetTopLevelComments(ctx context.Context, blogID uuid.UUID, skip, limit int) ([]*models.Comment, error) {
	filter := bson.M{
		"blog_id": blogID.String(),
		"parent":  nil,
	}
	opts := options.Find().
		SetSort(topLevelCommentSort).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := m.Comments.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get blog comments: %v", err)
	}
	defer cursor.Close(ctx)

	comments := make([]*models.Comment, 0, limit)
	for cursor.Next(ctx) {
		var doc CommentDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode comment: %v", err)
		}

		comment, err := commentDocumentToModel(&doc)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor iteration failed: %v", err)
	}

	return comments, nil
}

// AddChildComment appends a reply's id to its parent's children list.
func (m *MongoDB) AddChildComment(ctx context.Context, parentID, childID uuid.UUID) error {
	filter := bson.M{"_id": parentID.String()}
	update := bson.M{
		"$addToSet": bson.M{"children": childID.String()},
		"$set":      bson.M{"updatedAt": time.Now()},
	}

	result, err := m.Comments.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to link reply to parent: %v", err)
	}
	if result.MatchedCount == 0 {
		return utils.NewAppError(utils.ErrNotFound, "Parent comment not found", nil)
	}
	return nil
}

// RemoveChildComment pulls a deleted reply's id out of its parent's
// children list. A missing parent is not an error: the parent may itself
// have been deleted already, leaving the reply orphaned.
func (m *MongoDB) RemoveChildComment(ctx context.Context, parentID, childID uuid.UUID) error {
	filter := bson.M{"_id": parentID.String()}
	update := bson.M{
		"$pull": bson.M{"children": childID.String()},
		"$set":  bson.M{"updatedAt": time.Now()},
	}

	_, err := m.Comments.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to unlink reply from parent: %v", err)
	}
	return nil
}

// DeleteComment removes a single comment record. Cascade bookkeeping
// (notifications, parent children list, counters) is the caller's job.
func (m *MongoDB) DeleteComment(ctx context.Context, id uuid.UUID) error {
	result, err := m.Comments.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("failed to delete comment: %v", err)
	}
	if result.DeletedCount == 0 {
		return utils.NewAppError(utils.ErrNotFound, "Comment not found", nil)
	}
	return nil
}
