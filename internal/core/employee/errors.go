package employee

import "errors"

var (
	ErrInvalidEmployeeID       = errors.New("employee: invalid employee id")
	ErrInvalidFullName         = errors.New("employee: invalid full name")
	ErrInvalidEmail            = errors.New("employee: invalid email")
	ErrInvalidDepartment       = errors.New("employee: invalid department")
	ErrSuspiciousInput         = errors.New("employee: all fields have the same value")
	ErrEmployeeIDAlreadyExists = errors.New("employee: employee id already exists")
	ErrEmailAlreadyExists      = errors.New("employee: email already registered")
	ErrEmployeeNotFound        = errors.New("employee: not found")
	ErrCascadeIncomplete       = errors.New("employee: attendance records removed but employee delete failed")
)
