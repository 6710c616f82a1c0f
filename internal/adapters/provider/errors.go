package provider

import "errors"

// Provider error sentinels.
var (
	// ErrProviderRequest indicates a request could not be built or sent.
	ErrProviderRequest = errors.New("provider request failed")

	// ErrProviderStatus indicates the provider returned an unexpected status.
	ErrProviderStatus = errors.New("unexpected provider status")

	// ErrProviderDecode indicates the provider response could not be decoded.
	ErrProviderDecode = errors.New("failed to decode provider response")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")
)
