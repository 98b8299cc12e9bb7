package profiles

// User is the profile record at users/{uid}. The uid is the identity
// provider's uid; there is no separate user-creation step: existence of
// this node is what "has a profile" means.
//
// Follower/following counts are intentionally not part of the stored
// record: they are the live cardinality of the followers/following
// subtrees.
type User struct {
	UID       string `json:"-"`
	Name      string `json:"name"`
	Bio       string `json:"bio"`
	Phone     string `json:"phone"`
	ImageURL  string `json:"imageUrl"`
	IsBlocked bool   `json:"isBlocked,omitempty"`
}

// ProfileResponse is a profile enriched with the derived counts.
type ProfileResponse struct {
	UID       string `json:"uid"`
	Name      string `json:"name"`
	Bio       string `json:"bio"`
	Phone     string `json:"phone"`
	ImageURL  string `json:"imageUrl"`
	IsBlocked bool   `json:"isBlocked"`
	Followers int    `json:"followers"`
	Following int    `json:"following"`
}

// SaveProfileRequest is the multipart form for creating or editing the
// caller's profile. The image part is optional on edit.
type SaveProfileRequest struct {
	Name  string `form:"name" binding:"required"`
	Bio   string `form:"bio"`
	Phone string `form:"phone"`
}
