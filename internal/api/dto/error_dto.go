package dto

import apperrors "github.com/spec-kit/directory-service/pkg/util/errorutil"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	StatusCode  int               `json:"status_code"`
	Code        string            `json:"code"`
	Description string            `json:"description"`
	Arguments   map[string]string `json:"arguments"`
}

// NewErrorResponse renders a domain error.
func NewErrorResponse(err *apperrors.DomainError) ErrorResponse {
	args := err.Args
	if args == nil {
		args = map[string]string{}
	}
	return ErrorResponse{
		StatusCode:  err.HTTPStatus(),
		Code:        err.Code,
		Description: err.Message,
		Arguments:   args,
	}
}
