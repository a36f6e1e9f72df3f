package errors

import "net/http"

var ErrUsernameTaken = &Exception{
	Message:    "username already exists",
	StatusCode: http.StatusBadRequest,
}
