package auth

// SignupRequest creates a firebase account. The client signs in against
// firebase afterwards; this API never sees the password again.
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type SignupResponse struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

// SessionRequest exchanges a firebase ID token for a backend session.
type SessionRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

type SessionResponse struct {
	Token string `json:"token"`
	UID   string `json:"uid"`
	Email string `json:"email"`
	Admin bool   `json:"admin"`
}

type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type PasswordResetResponse struct {
	ResetLink string `json:"resetLink"`
}
