package core

import "errors"

var (
	// ErrInvalidRequest marks a request whose input could not be bound.
	ErrInvalidRequest = errors.New("invalid lookup request")

	// ErrProviderUnavailable marks transport failures talking to a provider:
	// connection errors, non-2xx responses and undecodable bodies.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrUnusablePayload marks provider payloads that decoded but did not
	// have the expected shape.
	ErrUnusablePayload = errors.New("unusable provider payload")

	// ErrPredictionFailed marks inference failures for a single request.
	ErrPredictionFailed = errors.New("prediction failed")
)
