package dto

// ── auth ──

// LoginRequest username/password login.
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	Password string `json:"password" binding:"required,max=128"`
}

// ChangePasswordRequest change the caller's own password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password"     binding:"required,min=8,max=128"`
}

// LoginResponse returned after a successful login. The session itself
// travels in the cookie.
type LoginResponse struct {
	User         UserResponse `json:"user"`
	Capabilities []string     `json:"capabilities"`
}
