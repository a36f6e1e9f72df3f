package errors

import "net/http"

var ErrEmailTaken = &Exception{
	Message:    "email already exists",
	StatusCode: http.StatusBadRequest,
}
