package requests

// Request is the record at requests/{ownerUid}/{requestId}.
//
// The "likes" integer is a legacy field: it is written as 0 at creation for
// wire compatibility and never read back; the like count is always the
// cardinality of likedBy, so concurrent likers cannot drift a counter.
type Request struct {
	ID          string                 `json:"-"`
	OwnerUID    string                 `json:"ownerUid"`
	Description string                 `json:"description"`
	RequestType string                 `json:"requestType"`
	Place       string                 `json:"place"`
	Latitude    float64                `json:"latitude"`
	Longitude   float64                `json:"longitude"`
	Timestamp   float64                `json:"timestamp"`
	ImageURL    string                 `json:"imageUrl,omitempty"`
	Likes       int                    `json:"likes"`
	LikedBy     map[string]bool        `json:"likedBy,omitempty"`
	Comments    map[string]interface{} `json:"comments,omitempty"`
}

// LikeCount is derived, never stored.
func (r *Request) LikeCount() int { return len(r.LikedBy) }

// RequestResponse is the API shape of a request.
type RequestResponse struct {
	ID           string  `json:"id"`
	OwnerUID     string  `json:"ownerUid"`
	Description  string  `json:"description"`
	RequestType  string  `json:"requestType"`
	Place        string  `json:"place"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Timestamp    float64 `json:"timestamp"`
	ImageURL     string  `json:"imageUrl,omitempty"`
	LikeCount    int     `json:"likeCount"`
	CommentCount int     `json:"commentCount"`
	LikedByMe    bool    `json:"likedByMe"`
}

// ToResponse derives the API shape for the given viewer.
func (r *Request) ToResponse(viewerUID string) RequestResponse {
	return RequestResponse{
		ID:           r.ID,
		OwnerUID:     r.OwnerUID,
		Description:  r.Description,
		RequestType:  r.RequestType,
		Place:        r.Place,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
		Timestamp:    r.Timestamp,
		ImageURL:     r.ImageURL,
		LikeCount:    r.LikeCount(),
		CommentCount: len(r.Comments),
		LikedByMe:    r.LikedBy[viewerUID],
	}
}

// SaveRequestForm is the multipart form for create and edit. The image part
// is required on create, optional on edit.
type SaveRequestForm struct {
	Description string  `form:"description"`
	RequestType string  `form:"requestType"`
	Place       string  `form:"place"`
	Latitude    float64 `form:"latitude"`
	Longitude   float64 `form:"longitude"`
}
