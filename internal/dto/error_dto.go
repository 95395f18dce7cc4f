package dto

// ErrorResponse is the uniform error body: a machine-readable code the
// client branches on plus a human-readable message.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
