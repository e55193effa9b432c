package models

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func SuccessResponse(data interface{}, message string) Response {
	return Response{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(err string) Response {
	return Response{
		Success: false,
		Error:   err,
	}
}

// ErrorsResponse reports several problems in one payload; Error holds the first.
func ErrorsResponse(errs []string) Response {
	resp := Response{Success: false, Errors: errs}
	if len(errs) > 0 {
		resp.Error = errs[0]
	}
	return resp
}
