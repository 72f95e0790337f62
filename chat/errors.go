package chat

import "errors"

// ErrEmptyMessage is returned by Turn when the request carries no user text.
var ErrEmptyMessage = errors.New("no message provided")

// UpstreamError reports a model gateway failure. The turn is aborted and the
// session is left exactly as it was before the turn started; callers may
// retry the whole request.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return "model gateway failure: " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
