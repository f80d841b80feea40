package attendance

import "errors"

var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrAlreadyMarked      = errors.New("attendance already marked for this date")
)
