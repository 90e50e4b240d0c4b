package rating

import "errors"

var ErrInvalidCourierID = errors.New("invalid courier id")
