package likes

// LikeResponse reports the state after a toggle.
type LikeResponse struct {
	RequestID string `json:"requestId"`
	Liked     bool   `json:"liked"`
	LikeCount int    `json:"likeCount"`
}
