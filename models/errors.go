package models

import "fmt"

// Service errors. The HTTP helper maps these to status codes; the services
// never retry, every condition below is terminal for the current request.

type ErrorNotFound struct {
	Message string
}

func (e ErrorNotFound) Error() string { return e.Message }

func NewErrorNotFound(resource, key string) ErrorNotFound {
	return ErrorNotFound{Message: fmt.Sprintf("%s not found: %s", resource, key)}
}

type ErrorConflict struct {
	Message string
}

func (e ErrorConflict) Error() string { return e.Message }

type ErrorPermissionDenied struct {
	Message string
}

func (e ErrorPermissionDenied) Error() string { return e.Message }

// ErrorInvalidOperation covers self-follow, duplicate follow/unfollow and
// already-favorited toggles.
type ErrorInvalidOperation struct {
	Message string
}

func (e ErrorInvalidOperation) Error() string { return e.Message }

// ErrorInvalidCredentials deliberately carries no detail so a login failure
// never reveals whether the account exists.
type ErrorInvalidCredentials struct{}

func (e ErrorInvalidCredentials) Error() string { return "invalid credentials" }

type ErrorUnauthorized struct {
	Message string
}

func (e ErrorUnauthorized) Error() string { return e.Message }

type ErrorValidation struct {
	Message string
}

func (e ErrorValidation) Error() string { return e.Message }
