package repository

import "errors"

// ErrNotFound is returned by every store when the requested record does
// not exist (or, for live sessions, has expired).
var ErrNotFound = errors.New("record not found")
