package comments

// Comment lives under its parent request at
// requests/{ownerUid}/{requestId}/comments/{commentId}; it is not
// addressable without knowing the parent.
type Comment struct {
	ID        string  `json:"-"`
	UID       string  `json:"uid"`
	Text      string  `json:"text"`
	Timestamp float64 `json:"timestamp"`
}

// CommentResponse is a comment enriched with the author's display name,
// resolved from users/{uid}/name at read time.
type CommentResponse struct {
	ID         string  `json:"id"`
	UID        string  `json:"uid"`
	AuthorName string  `json:"authorName"`
	Text       string  `json:"text"`
	Timestamp  float64 `json:"timestamp"`
}

// CreateCommentRequest is the body for posting a comment.
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}
