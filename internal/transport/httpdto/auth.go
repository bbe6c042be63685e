package httpdto

// RegisterRequest carries the form fields of POST /v1/auth/register.
// The avatar and coverImage file parts are read from the multipart body
// directly. Presence checks happen in the service layer.
type RegisterRequest struct {
	FullName string `form:"fullName"`
	Email    string `form:"email"`
	Username string `form:"username"`
	Password string `form:"password"`
}

// LoginRequest is used for POST /v1/auth/login, JSON or form encoded.
// Either username or email must be set.
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// LoginData is the data payload returned after successful login. The
// tokens are also set as cookies of the same names.
type LoginData struct {
	User         UserDTO `json:"user"`
	AccessToken  string  `json:"accessToken"`
	RefreshToken string  `json:"refreshToken"`
}
