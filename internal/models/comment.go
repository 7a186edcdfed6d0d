package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a unit of discussion attached to a blog. A nil ParentID means
// the comment is top-level and counted in total_parent_comments.
type Comment struct {
	ID          uuid.UUID   `json:"_id"`
	BlogID      uuid.UUID   `json:"blog_id"`
	BlogAuthor  uuid.UUID   `json:"blog_author"` // denormalized at creation for authorization checks
	Content     string      `json:"comment"`
	CommentedBy uuid.UUID   `json:"commented_by"`
	IsReply     bool        `json:"isReply"`
	ParentID    *uuid.UUID  `json:"parent,omitempty"`
	Children    []uuid.UUID `json:"children"`
	CommentedAt time.Time   `json:"commentedAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`

	// ChildrenLevel is a transient rendering hint, never persisted.
	ChildrenLevel int `json:"childrenLevel"`
}

// CommentPage is one page of top-level comments together with the blog's
// activity snapshot at fetch time, so clients can reconcile their cached
// counters with whichever page they loaded last.
type CommentPage struct {
	Results  []*Comment `json:"results"`
	Activity Activity   `json:"activity"`
}
