// internal/database/blog_repository.go
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

// BlogDocument represents the MongoDB schema for a blog.
type BlogDocument struct {
	ID          string             `bson:"_id"`
	Slug        string             `bson:"blog_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Banner      string             `bson:"banner"`
	Content     models.BlogContent `bson:"content"`
	Tags        []string           `bson:"tags"`
	AuthorID    string             `bson:"author"`
	Activity    models.Activity    `bson:"activity"`
	CommentIDs  []string           `bson:"comments"`
	Draft       bool               `bson:"draft"`
	PublishedAt time.Time          `bson:"publishedAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func blogModelToDocument(blog *models.Blog) *BlogDocument {
	doc := &BlogDocument{
		ID:          blog.ID.String(),
		Slug:        blog.Slug,
		Title:       blog.Title,
		Description: blog.Description,
		Banner:      blog.Banner,
		Content:     blog.Content,
		Tags:        blog.Tags,
		AuthorID:    blog.AuthorID.String(),
		Activity:    blog.Activity,
		CommentIDs:  make([]string, len(blog.CommentIDs)),
		Draft:       blog.Draft,
		PublishedAt: blog.PublishedAt,
		UpdatedAt:   blog.UpdatedAt,
	}
	for i, id := range blog.CommentIDs {
		doc.CommentIDs[i] = id.String()
	}
	return doc
}

func blogDocumentToModel(doc *BlogDocument) (*models.Blog, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid blog ID: %v", err)
	}

	authorID, err := uuid.Parse(doc.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("invalid author ID: %v", err)
	}

	commentIDs := make([]uuid.UUID, len(doc.CommentIDs))
	for i, cidStr := range doc.CommentIDs {
		cid, err := uuid.Parse(cidStr)
		if err != nil {
			return nil, fmt.Errorf("invalid comment ID: %v", err)
		}
		commentIDs[i] = cid
	}

	return &models.Blog{
		ID:          id,
		Slug:        doc.Slug,
		Title:       doc.Title,
		Description: doc.Description,
		Banner:      doc.Banner,
		Content:     doc.Content,
		Tags:        doc.Tags,
		AuthorID:    authorID,
		Activity:    doc.Activity,
		CommentIDs:  commentIDs,
		Draft:       doc.Draft,
		PublishedAt: doc.PublishedAt,
		UpdatedAt:   doc.UpdatedAt,
	}, nil
}

// SaveBlog creates or updates a blog in MongoDB.
func (m *MongoDB) SaveBlog(ctx context.Context, blog *models.Blog) error {
	doc := blogModelToDocument(blog)

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": doc.ID}
	update := bson.M{"$set": doc}

	_, err := m.Blogs.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to save blog: %v", err)
	}
	return nil
}

// GetBlog retrieves a blog by its ID.
func (m *MongoDB) GetBlog(ctx context.Context, id uuid.UUID) (*models.Blog, error) {
	var doc BlogDocument

	err := m.Blogs.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrNotFound, "Blog not found", err)
	}
	if err != nil {
		return nil, err
	}

	return blogDocumentToModel(&doc)
}

// GetBlogBySlug retrieves a blog by its human-readable slug. Drafts are
// hidden unless includeDraft is set (used by the author's edit flow).
func (m *MongoDB) GetBlogBySlug(ctx context.Context, slug string, includeDraft bool) (*models.Blog, error) {
	filter := bson.M{"blog_id": slug}
	if !includeDraft {
		filter["draft"] = false
	}

	var doc BlogDocument
	err := m.Blogs.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrNotFound, "Blog not found", err)
	}
	if err != nil {
		return nil, err
	}

	return blogDocumentToModel(&doc)
}

// counterExpr builds the clamped increment expression for one counter field.
func counterExpr(field string, delta int) bson.M {
	return bson.M{"$max": bson.A{0, bson.M{"$add": bson.A{
		bson.M{"$ifNull": bson.A{"$" + field, 0}},
		delta,
	}}}}
}

// AdjustActivity applies the delta to a blog's counters as a single
// aggregation-pipeline update. MongoDB serializes pipeline updates per
// document, so concurrent deltas both land instead of overwriting each
// other, and $max keeps every counter at zero or above.
func (m *MongoDB) AdjustActivity(ctx context.Context, blogID uuid.UUID, delta models.ActivityDelta) error {
	if delta.IsZero() {
		return nil
	}

	set := bson.M{"updatedAt": "$$NOW"}
	if delta.Likes != 0 {
		set["activity.total_likes"] = counterExpr("activity.total_likes", delta.Likes)
	}
	if delta.Comments != 0 {
		set["activity.total_comments"] = counterExpr("activity.total_comments", delta.Comments)
	}
	if delta.Reads != 0 {
		set["activity.total_reads"] = counterExpr("activity.total_reads", delta.Reads)
	}
	if delta.ParentComments != 0 {
		set["activity.total_parent_comments"] = counterExpr("activity.total_parent_comments", delta.ParentComments)
	}

	update := mongo.Pipeline{{{Key: "$set", Value: set}}}

	result, err := m.Blogs.UpdateOne(ctx, bson.M{"_id": blogID.String()}, update)
	if err != nil {
		return fmt.Errorf("failed to adjust blog activity: %v", err)
	}
	if result.MatchedCount == 0 {
		return utils.NewAppError(utils.ErrNotFound, "Blog not found", nil)
	}
	return nil
}
