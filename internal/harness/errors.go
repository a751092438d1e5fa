package harness

import "errors"

// Configuration and discovery errors. Test-level outcomes
// (failure/timeout/killed) are never represented as errors; they are
// Classification values produced by the Runner.
var (
	// ErrSymbolNotFound is returned when a requested "<suite>_<name>"
	// symbol is not defined in the host executable's object file.
	ErrSymbolNotFound = errors.New("testfw: symbol not found")

	// ErrEmptySuite is returned when a suite prefix matches no defined
	// symbols at all.
	ErrEmptySuite = errors.New("testfw: no tests registered in suite")

	// ErrUnknownMode is returned for an unrecognized execution mode.
	ErrUnknownMode = errors.New("testfw: invalid execution mode")

	// ErrNotRegistered is returned when a symbol is defined in the
	// object file but was never registered with an Entry by the process
	// that links it in (see Registrar).
	ErrNotRegistered = errors.New("testfw: symbol defined but not registered")

	// ErrUnsupportedPlatform is returned by the Symbol Resolver on
	// object-file formats it does not know how to parse.
	ErrUnsupportedPlatform = errors.New("testfw: unsupported object file format")
)
