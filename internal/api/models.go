package api

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	FullName string `json:"fullName" validate:"required,min=3"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=64"`
}

// LoginRequest defines the payload for the user login endpoint.
// Password bounds are validated before any store access so an
// out-of-bounds password is a 422, not a 401.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=64"`
}

// LoginResponse defines the successful response for the login endpoint.
type LoginResponse struct {
	// Type is the token type tag, always "bearer".
	Type string `json:"type"`

	// AccessToken is the signed bearer token for the Authorization header.
	AccessToken string `json:"access_token"`
}

// MessageResponse is the body for endpoints that return a simple message,
// such as logout.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreateTaskRequest defines the payload for task creation.
// Completed is a pointer so a missing field is distinguishable from false.
type CreateTaskRequest struct {
	Name      string `json:"name"      validate:"required"`
	Completed *bool  `json:"completed" validate:"required"`
}

// UpdateTaskRequest defines the payload for partial task updates.
// Omitted fields keep their current value.
type UpdateTaskRequest struct {
	Name      *string `json:"name"      validate:"omitempty,min=1"`
	Completed *bool   `json:"completed"`
}
