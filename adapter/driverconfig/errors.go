package driverconfig

import "errors"

// ErrEmptyTypeName is returned by Parse when a configuration entry's key is
// the empty string.
var ErrEmptyTypeName = errors.New("driverconfig: type name must not be empty")
