package api

import (
	"errors"
	"net/http"

	"github.com/okian/pitwall/internal/adapters/repository"
	service "github.com/okian/pitwall/internal/app"
	"github.com/okian/pitwall/internal/domain/filter"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest       = errors.New("bad request")
	ErrMethodNotAllowed = errors.New("method not allowed")
)

// Error codes carried in errorResponse.Code.
const (
	codeBadRequest       = "bad_request"
	codeNotFound         = "not_found"
	codeNotLoaded        = "not_loaded"
	codeMethodNotAllowed = "method_not_allowed"
	codeInternal         = "internal_error"
)

// classify maps upstream errors to a status and code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, filter.ErrInvalidFilter), errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, codeBadRequest
	case errors.Is(err, service.ErrEventNotFound), errors.Is(err, service.ErrNoLapData):
		return http.StatusNotFound, codeNotFound
	case errors.Is(err, repository.ErrNotLoaded):
		return http.StatusServiceUnavailable, codeNotLoaded
	case errors.Is(err, ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed, codeMethodNotAllowed
	default:
		return http.StatusInternalServerError, codeInternal
	}
}
