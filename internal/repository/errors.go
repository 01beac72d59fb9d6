package repository

import "errors"

// ErrRemoteUnavailable wraps failures reaching the remote backend so callers
// can tell transport trouble apart from bad data.
var ErrRemoteUnavailable = errors.New("remote backend unavailable")
