package httpdto

// Response is the envelope for every API reply. Status is "ok",
// "created", or "error".
type Response[T any] struct {
	Status  string `json:"status"`
	Data    T      `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func NewSuccessResponse[T any](data T, message string) Response[T] {
	return Response[T]{
		Status:  "ok",
		Data:    data,
		Message: message,
	}
}

func NewCreatedResponse[T any](data T, message string) Response[T] {
	return Response[T]{
		Status:  "created",
		Data:    data,
		Message: message,
	}
}

func NewErrorResponse(message string) Response[any] {
	return Response[any]{
		Status:  "error",
		Message: message,
	}
}
