package errors

import "net/http"

var ErrLoginRequired = &Exception{
	Message:    "login required",
	StatusCode: http.StatusUnauthorized,
}
