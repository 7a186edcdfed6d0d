// internal/database/user_repository.go
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

// UserDocument represents user data in MongoDB.
type UserDocument struct {
	ID             string             `bson:"_id"`
	Username       string             `bson:"username"`
	Email          string             `bson:"email"`
	HashedPassword string             `bson:"hashedPassword"`
	AccountInfo    models.AccountInfo `bson:"account_info"`
	BlogIDs        []string           `bson:"blogs"`
	JoinedAt       time.Time          `bson:"joinedAt"`
}

func userModelToDocument(user *models.User) *UserDocument {
	doc := &UserDocument{
		ID:             user.ID.String(),
		Username:       user.Username,
		Email:          user.Email,
		HashedPassword: user.HashedPassword,
		AccountInfo:    user.AccountInfo,
		BlogIDs:        make([]string, len(user.BlogIDs)),
		JoinedAt:       user.JoinedAt,
	}
	for i, id := range user.BlogIDs {
		doc.BlogIDs[i] = id.String()
	}
	return doc
}

func userDocumentToModel(doc *UserDocument) (*models.User, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %v", err)
	}

	blogIDs := make([]uuid.UUID, len(doc.BlogIDs))
	for i, bidStr := range doc.BlogIDs {
		bid, err := uuid.Parse(bidStr)
		if err != nil {
			return nil, fmt.Errorf("invalid blog ID: %v", err)
		}
		blogIDs[i] = bid
	}

	return &models.User{
		ID:             id,
		Username:       doc.Username,
		Email:          doc.Email,
		HashedPassword: doc.HashedPassword,
		AccountInfo:    doc.AccountInfo,
		BlogIDs:        blogIDs,
		JoinedAt:       doc.JoinedAt,
	}, nil
}

// SaveUser creates or updates a user in MongoDB.
func (m *MongoDB) SaveUser(ctx context.Context, user *models.User) error {
	doc := userModelToDocument(user)

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": doc.ID}
	update := bson.M{"$set": doc}

	_, err := m.Users.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to save user: %v", err)
	}
	return nil
}

// GetUser retrieves a user by ID.
func (m *MongoDB) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var doc UserDocument

	err := m.Users.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewUserNotFoundError(id.String())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %v", err)
	}

	return userDocumentToModel(&doc)
}

// GetUserByEmail retrieves a user by email address.
func (m *MongoDB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var doc UserDocument

	err := m.Users.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewUserNotFoundError(email)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %v", err)
	}

	return userDocumentToModel(&doc)
}

// RecordAuthoredBlog links a blog to its author and bumps total_posts when
// the blog was published rather than saved as a draft.
func (m *MongoDB) RecordAuthoredBlog(ctx context.Context, authorID, blogID uuid.UUID, published bool) error {
	update := bson.M{
		"$addToSet": bson.M{"blogs": blogID.String()},
	}
	if published {
		update["$inc"] = bson.M{"account_info.total_posts": 1}
	}

	result, err := m.Users.UpdateOne(ctx, bson.M{"_id": authorID.String()}, update)
	if err != nil {
		return fmt.Errorf("failed to record authored blog: %v", err)
	}
	if result.MatchedCount == 0 {
		return utils.NewUserNotFoundError(authorID.String())
	}
	return nil
}

// IncrementUserReads bumps the author's aggregate read count.
func (m *MongoDB) IncrementUserReads(ctx context.Context, userID uuid.UUID) error {
	update := bson.M{"$inc": bson.M{"account_info.total_reads": 1}}

	result, err := m.Users.UpdateOne(ctx, bson.M{"_id": userID.String()}, update)
	if err != nil {
		return fmt.Errorf("failed to increment user reads: %v", err)
	}
	if result.MatchedCount == 0 {
		return utils.NewUserNotFoundError(userID.String())
	}
	return nil
}
