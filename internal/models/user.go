package models

import (
	"time"

	"github.com/google/uuid"
)

// AccountInfo aggregates per-user publishing stats.
type AccountInfo struct {
	TotalPosts int `json:"total_posts" bson:"total_posts"`
	TotalReads int `json:"total_reads" bson:"total_reads"`
}

type User struct {
	ID             uuid.UUID   `json:"id"`
	Username       string      `json:"username"`
	Email          string      `json:"email"`
	HashedPassword string      `json:"-"`
	AccountInfo    AccountInfo `json:"account_info"`
	BlogIDs        []uuid.UUID `json:"blogs,omitempty"`
	JoinedAt       time.Time   `json:"joinedAt"`
}
