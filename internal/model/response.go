package model

// ErrorResponse is the envelope for every error returned by the HTTP API.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse acknowledges mutations that have no other payload.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// WhoAmI describes the caller's session.
type WhoAmI struct {
	Role     Role   `json:"role"`
	Username string `json:"username"`
}
