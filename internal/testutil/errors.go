// Package testutil provides testing utilities shared across packages.
//
// This package contains mock errors, a fake process runner and plugin
// fixture helpers. It should only be imported by test files (*_test.go).
package testutil

import "errors"

// Mock errors for testing purposes.
// These errors are used to simulate various failure scenarios in tests.
var (
	// ErrMockCloneFailed indicates a mock git clone failed (used in tests).
	ErrMockCloneFailed = errors.New("clone failed")

	// ErrMockNotFound indicates a mock resource was not found (used in tests).
	ErrMockNotFound = errors.New("not found")

	// ErrMockNetwork indicates a mock network error occurred (used in tests).
	ErrMockNetwork = errors.New("network error")

	// ErrMockExit indicates a mock process exited unsuccessfully (used in tests).
	ErrMockExit = errors.New("exit status 1")
)
