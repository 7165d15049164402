package core

import "errors"

var (
	// ErrNotUsable is returned by a driver whose packager command is missing.
	ErrNotUsable = errors.New("packager command not available")

	// ErrNotFound means a query ran but matched nothing.
	ErrNotFound = errors.New("package not found")

	// ErrNotImplemented means the active driver has no such operation.
	// Callers should skip, not abort.
	ErrNotImplemented = errors.New("operation not implemented by driver")

	// ErrUnsupportedPlatform is returned when no driver maps to the host platform.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrNoOSInfo means the platform could not be identified at all.
	ErrNoOSInfo = errors.New("cannot identify operating system")
)
