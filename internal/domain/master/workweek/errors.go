package workweek

import "errors"

var ErrWorkWeekNotFound = errors.New("work week not found")
