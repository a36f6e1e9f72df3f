package errors

import "net/http"

var ErrPayloadPurged = &Exception{
	Message:    "file data has been removed after task completion",
	StatusCode: http.StatusGone,
}
