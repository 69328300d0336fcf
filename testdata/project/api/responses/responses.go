package responses

// APIResponse wraps a payload with pagination metadata.
type APIResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

// ErrorBody is the uniform error envelope.
type ErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Sink consumes responses; used to exercise interface declarations.
type Sink interface {
	Accept(body any) error
}
