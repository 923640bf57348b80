package orchestrators

import "errors"

// Backend use-case errors. The API adapter maps each to a status and detail.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminExists        = errors.New("admin already exists")
	ErrMemberEmailTaken   = errors.New("email already registered")
	ErrEmployeeEmailTaken = errors.New("employee email already registered")
	ErrNoOpenShift        = errors.New("no active check-in record found for employee")
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrAlreadyCheckedOut  = errors.New("attendance record already checked out")
)

// invalid marks err as a caller mistake while keeping it inspectable.
func invalid(err error) error {
	return errors.Join(ErrInvalidInput, err)
}
