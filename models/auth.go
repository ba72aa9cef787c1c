package models

type AuthUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role"`
}

type AuthResponse struct {
	Message   string    `json:"message"`
	StatusMsg string    `json:"statusMsg,omitempty"`
	User      *AuthUser `json:"user,omitempty"`
	Token     string    `json:"token,omitempty"`
}

// SessionUser is the identity carried by the session cookie. The API token never
// leaves the server in page models.
type SessionUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role"`
	Token string `json:"-"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignUpRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	RePassword string `json:"rePassword"`
	Phone      string `json:"phone"`
}

// StatusResponse covers the password-reset endpoints, which disagree on field names.
type StatusResponse struct {
	Status    string `json:"status,omitempty"`
	StatusMsg string `json:"statusMsg,omitempty"`
	Message   string `json:"message,omitempty"`
}

type ResetPasswordResponse struct {
	Token string `json:"token"`
}
