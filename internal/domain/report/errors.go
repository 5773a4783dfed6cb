package report

import "errors"

var ErrFutureMonth = errors.New("requested month has not started yet")
