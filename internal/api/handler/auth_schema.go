package handler

// messageResponse is the standard envelope for 4xx/5xx responses and for
// mutations that return no resource body.
type messageResponse struct {
	Message string `json:"message"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	// Role is accepted in the payload for compatibility with older clients
	// but ignored: every self-registered account is a customer.
	Role string `json:"role,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// authResponse is returned by both register and login: the identity plus a
// freshly issued bearer token.
type authResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Token    string `json:"token"`
}
