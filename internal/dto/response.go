package dto

type ErrorResponse struct {
	Error string `json:"error"`
}

func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{
		Error: message,
	}
}

type StatusResponse struct {
	Status string `json:"status"`
}

type CountResponse struct {
	TotalDocs int64 `json:"totalDocs"`
}
