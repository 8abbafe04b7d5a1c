package domain

// ReferenceType names the kind of entity a vote targets.
type ReferenceType string

const (
	// RefTopic marks a vote on a topic.
	RefTopic ReferenceType = "topic"
	// RefComment marks a vote on a comment.
	RefComment ReferenceType = "comment"
)

// Vote values.
const (
	Upvote   = 1
	Downvote = -1
)

// Vote records one user's up/down vote on a topic or comment.
//
// Invariant: at most one vote per (UserID, ReferenceID) pair; creating a new
// vote for an existing pair replaces the old one.
type Vote struct {
	ID            string        `json:"id"`
	UserID        string        `json:"userId"`
	ReferenceID   string        `json:"referenceId"`
	ReferenceType ReferenceType `json:"referenceType"`
	Value         int           `json:"value"`
}
