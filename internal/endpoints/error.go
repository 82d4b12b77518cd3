package endpoints

import (
	"errors"
	"net/http"
)

const (
	API_SUCCESS            = iota + 303000 // 303000
	API_FAILURE                            // 303001 - Generic API failure
	API_METHOD_NOT_ALLOWED                 // 303002 - Only GET is served
)

var (
	ErrMethodNotAllowed = errors.New("method not allowed, only GET requests are supported")
	ErrInternal         = errors.New("internal server error")
)

func GetErrorCode(err error) int {
	if err == nil {
		return API_SUCCESS
	}

	switch {
	case errors.Is(err, ErrMethodNotAllowed):
		return API_METHOD_NOT_ALLOWED
	default:
		return API_FAILURE
	}
}

// MethodNotAllowed answers requests whose path matched but method did not.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", http.MethodGet)
	APIResponse{}.WriteErrorResponseWithStatusCode(w, ErrMethodNotAllowed, http.StatusMethodNotAllowed)
}

// InternalError is written after a recovered handler panic.
func InternalError(w http.ResponseWriter) {
	APIResponse{}.WriteErrorResponseWithStatusCode(w, ErrInternal, http.StatusInternalServerError)
}
