package boundedmap

import "errors"

// ErrInvalidArgument is returned by New for a non-positive capacity.
var ErrInvalidArgument = errors.New("boundedmap: invalid argument")
