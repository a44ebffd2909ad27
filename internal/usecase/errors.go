package usecase

import "errors"

// Error taxonomy. Handlers map these onto HTTP statuses; read paths degrade
// to partial results on store/remote failures instead of failing the request.
var (
	// ErrNotFound is a single-entity lookup miss, local or remote.
	ErrNotFound = errors.New("not found")

	// ErrValidation is bad or missing input, surfaced inline to the user.
	ErrValidation = errors.New("validation failed")

	// ErrDataStore wraps local persistence failures. Callers show a generic
	// "please try again" message and never retry automatically.
	ErrDataStore = errors.New("data store error")

	// ErrRemote wraps remote catalog failures, including timeouts.
	ErrRemote = errors.New("remote catalog error")

	// ErrAuthRequired is a mutation attempted without an authenticated user.
	ErrAuthRequired = errors.New("authentication required")
)
