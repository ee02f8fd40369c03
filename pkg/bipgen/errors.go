package bipgen

import "errors"

// Sentinel errors for common error conditions
var (
	// Argument errors are raised before any file is written
	ErrInvalidArgument = errors.New("invalid argument")

	// Output errors cover creating, writing and closing case files
	ErrOutput = errors.New("output error")
)
