package errors

import "net/http"

var ErrNotAssigned = &Exception{
	Message:    "you are not assigned to this task",
	StatusCode: http.StatusForbidden,
}
