package contract

import "errors"

// ErrDuplicateEmail is returned by UserRepository when the unique email index
// rejects a write.
var ErrDuplicateEmail = errors.New("email already registered")
