package domain

import "time"

// Comment is a reply on a topic. ReplyTo forms a tree: empty means the
// comment is a thread root, otherwise it names the parent comment.
//
// Invariant: ReplyTo, once set, is immutable — replies are never re-parented.
type Comment struct {
	ID        string      `json:"id"`
	TopicID   string      `json:"topicId"`
	Author    TopicAuthor `json:"author"`
	Content   string      `json:"content"`
	ReplyTo   string      `json:"replyTo,omitempty"`
	IsDeleted bool        `json:"isDeleted"`
	IsEdited  bool        `json:"isEdited"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// IsRoot reports whether the comment starts a thread.
func (c Comment) IsRoot() bool {
	return c.ReplyTo == ""
}
