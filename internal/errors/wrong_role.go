package errors

import "net/http"

var ErrWrongRole = &Exception{
	Message:    "access denied for this account type",
	StatusCode: http.StatusForbidden,
}
