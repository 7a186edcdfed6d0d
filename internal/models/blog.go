package models

import (
	"time"

	"github.com/google/uuid"
)

// Activity holds the aggregate engagement counters stored on a blog.
// All counters are non-negative; TotalParentComments never exceeds
// TotalComments.
type Activity struct {
	TotalLikes          int `json:"total_likes" bson:"total_likes"`
	TotalComments       int `json:"total_comments" bson:"total_comments"`
	TotalReads          int `json:"total_reads" bson:"total_reads"`
	TotalParentComments int `json:"total_parent_comments" bson:"total_parent_comments"`
}

// ActivityDelta describes a single atomic adjustment to a blog's counters.
// Deltas from concurrent operations on the same blog commute; the store
// clamps every counter at zero.
type ActivityDelta struct {
	Likes          int
	Comments       int
	Reads          int
	ParentComments int
}

// IsZero reports whether applying the delta would change nothing.
func (d ActivityDelta) IsZero() bool {
	return d.Likes == 0 && d.Comments == 0 && d.Reads == 0 && d.ParentComments == 0
}

// ContentBlock is one unit of rich blog content (paragraph, image, ...).
type ContentBlock struct {
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data"`
}

// BlogContent wraps the ordered content blocks of a blog.
type BlogContent struct {
	Blocks []ContentBlock `json:"blocks"`
}

type Blog struct {
	ID          uuid.UUID      `json:"id"`
	Slug        string         `json:"blog_id"` // human-readable, URL-safe
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Banner      string         `json:"banner"`
	Content     BlogContent    `json:"content"`
	Tags        []string       `json:"tags"`
	AuthorID    uuid.UUID      `json:"author"`
	Activity    Activity       `json:"activity"`
	CommentIDs  []uuid.UUID    `json:"comments,omitempty"`
	Draft       bool           `json:"draft"`
	PublishedAt time.Time      `json:"publishedAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}
