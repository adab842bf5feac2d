package provider

import "errors"

// Sentinel errors for backend operations.
var (
	// ErrBackendDown indicates the inference server is unreachable.
	ErrBackendDown = errors.New("llm backend unreachable")

	// ErrModelNotFound indicates the requested model is not installed
	// on the backend.
	ErrModelNotFound = errors.New("model not found")

	// ErrBackendError indicates the backend returned a non-2xx status
	// or a malformed body.
	ErrBackendError = errors.New("llm backend error")

	// ErrEmptyResponse indicates the backend answered 200 with no
	// generated text.
	ErrEmptyResponse = errors.New("llm response is empty")
)
