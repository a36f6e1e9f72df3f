package errors

import "net/http"

var ErrAlreadyClaimedBySelf = &Exception{
	Message:    "you have already claimed this task",
	StatusCode: http.StatusBadRequest,
}
