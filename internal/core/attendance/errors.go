package attendance

import "errors"

var (
	ErrInvalidEmployeeID = errors.New("attendance: invalid employee id")
	ErrMalformedDate     = errors.New("attendance: malformed date")
	ErrFutureDate        = errors.New("attendance: future date")
	ErrDateTooOld        = errors.New("attendance: date too old")
	ErrInvalidStatus     = errors.New("attendance: invalid status")
	ErrAlreadyMarked     = errors.New("attendance: already marked for this date")
	ErrEmployeeNotFound  = errors.New("attendance: employee not found")
	ErrRecordNotFound    = errors.New("attendance: record not found")
)
