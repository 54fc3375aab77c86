package dto

// RegisterRequest represents an incoming registration submission.
// The payload is accepted either as a form post or as JSON.
type RegisterRequest struct {
	Name                 string `json:"name" form:"name" binding:"required,max=255"`
	Email                string `json:"email" form:"email" binding:"required,email,max=255"`
	Password             string `json:"password" form:"password" binding:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" form:"password_confirmation" binding:"required,eqfield=Password"`
	Role                 int64  `json:"role" form:"role" binding:"required"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

// RefreshTokenRequest represents refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	TokenType        string `json:"tokenType" example:"Bearer"`
	ExpiresIn        int64  `json:"expiresIn"`
	RefreshToken     string `json:"refreshToken,omitempty"`
	RefreshExpiresIn int64  `json:"refreshExpiresIn,omitempty"`
}

// RegisterResponse represents a completed registration
type RegisterResponse struct {
	UserID int64         `json:"userId"`
	Name   string        `json:"name"`
	Email  string        `json:"email"`
	Role   string        `json:"role" example:"student"`
	Token  TokenResponse `json:"token"`
}

// RegistrationForm describes the registration form fields, the API
// analogue of rendering the register view.
type RegistrationForm struct {
	Fields []string         `json:"fields"`
	Roles  map[int64]string `json:"roles"`
}

// UserResponse represents basic user information
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role" example:"teacher"`
}

// DashboardResponse is the generic authenticated home payload. It points
// the client at the role-specific index.
type DashboardResponse struct {
	User      UserResponse `json:"user"`
	RoleIndex string       `json:"roleIndex" example:"/student"`
}
