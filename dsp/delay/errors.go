package delay

import "errors"

// ErrInvalidArgument is returned when a delay time is outside [0, max delay).
var ErrInvalidArgument = errors.New("delay: invalid argument")
