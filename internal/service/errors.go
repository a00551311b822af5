package service

import "errors"

// ErrUserNotFound reports an operation against a device identifier with no
// user row, on paths that do not bootstrap one.
var ErrUserNotFound = errors.New("user not found")

// ErrInvalid marks validation failures so the HTTP layer can classify them
// as client errors. Always wrapped with context via fmt.Errorf.
var ErrInvalid = errors.New("invalid input")
