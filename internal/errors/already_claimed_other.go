package errors

import "net/http"

var ErrAlreadyClaimedByOther = &Exception{
	Message:    "this task has been claimed by another writer",
	StatusCode: http.StatusBadRequest,
}
