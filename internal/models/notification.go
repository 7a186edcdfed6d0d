package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType distinguishes the three engagement events that produce
// a notification record.
type NotificationType string

const (
	NotificationLike    NotificationType = "like"
	NotificationComment NotificationType = "comment"
	NotificationReply   NotificationType = "reply"
)

// Notification records an engagement event addressed to a user. A record of
// type "like" doubles as the like marker itself: its existence is the sole
// source of truth for "does this user like this blog", and at most one such
// record exists per (blog, user) pair.
type Notification struct {
	ID               uuid.UUID        `json:"id"`
	Type             NotificationType `json:"type"`
	BlogID           uuid.UUID        `json:"blog"`
	NotificationFor  uuid.UUID        `json:"notification_for"` // recipient
	UserID           uuid.UUID        `json:"user"`             // actor who triggered the event
	CommentID        *uuid.UUID       `json:"comment,omitempty"`
	ReplyID          *uuid.UUID       `json:"reply,omitempty"`
	RepliedOnComment *uuid.UUID       `json:"replied_on_comment,omitempty"`
	Seen             bool             `json:"seen"`
	CreatedAt        time.Time        `json:"createdAt"`
}
