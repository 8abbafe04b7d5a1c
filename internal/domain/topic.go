package domain

import "time"

// TopicAuthor is the denormalized author reference embedded in topics and comments.
type TopicAuthor struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl"`
}

// Topic is a discussion thread within a category.
//
// Topics are soft-deleted: client operations flip IsDeleted but never remove
// the row from the local collection, so moderation views can show deleted items.
type Topic struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Content      string      `json:"content"`
	Author       TopicAuthor `json:"author"`
	CategoryID   string      `json:"categoryId"`
	Tags         []string    `json:"tags,omitempty"`
	ViewCount    int         `json:"viewCount"`
	CommentCount int         `json:"commentCount"`
	IsDeleted    bool        `json:"isDeleted"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}
