package moderation

import "github.com/servepupil/api/internal/features/requests"

// ReportedRequest is a flagged request materialized from the primary tree.
type ReportedRequest struct {
	requests.RequestResponse
}

// ReportedComment carries the comment plus the coordinates moderation
// needs to delete it.
type ReportedComment struct {
	CommentID  string  `json:"commentId"`
	RequestID  string  `json:"requestId"`
	OwnerUID   string  `json:"ownerUid"`
	AuthorUID  string  `json:"authorUid"`
	AuthorName string  `json:"authorName"`
	Text       string  `json:"text"`
	Timestamp  float64 `json:"timestamp"`
}

// ReportedUser is a flagged profile.
type ReportedUser struct {
	UID       string `json:"uid"`
	Name      string `json:"name"`
	Bio       string `json:"bio"`
	ImageURL  string `json:"imageUrl"`
	IsBlocked bool   `json:"isBlocked"`
}

// ResolveResponse acknowledges a resolved flag.
type ResolveResponse struct {
	Kind     string `json:"kind"`
	TargetID string `json:"targetId"`
	Action   string `json:"action"`
}
