package advances

import "errors"

var (
	ErrNotFound     = errors.New("advance not found")
	ErrInvalidState = errors.New("advance is not in a state allowing this transition")
)
