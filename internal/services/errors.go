package services

import "errors"

var (
	// Authentication
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordTooShort   = errors.New("password too short")

	// Authorization
	ErrForbidden = errors.New("insufficient role for this action")

	// Validation
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidPriority    = errors.New("invalid priority")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidTimeRange   = errors.New("end time must be after start time")
	ErrInvalidDecision    = errors.New("status must be APPROVED or REJECTED")
	ErrUnknownUsers       = errors.New("one or more users do not exist")
	ErrSelfKudos          = errors.New("you cannot give kudos to yourself")
	ErrTitleEmpty         = errors.New("title cannot be empty")
	ErrNameTooShort       = errors.New("name too short")
	ErrProgressOutOfRange = errors.New("progress must be between 0 and 100")
	ErrNegativeAmount     = errors.New("amount cannot be negative")

	// Missing resources
	ErrUserNotFound      = errors.New("user not found")
	ErrProjectNotFound   = errors.New("project not found")
	ErrTaskNotFound      = errors.New("task not found")
	ErrLeaveNotFound     = errors.New("leave request not found")
	ErrExpenseNotFound   = errors.New("expense not found")
	ErrMeetingNotFound   = errors.New("meeting not found")
	ErrInvoiceNotFound   = errors.New("invoice not found")
	ErrRecipientNotFound = errors.New("recipient not found")

	// Conflicts
	ErrAttendanceMarked   = errors.New("attendance already marked for this date")
	ErrRequestDecided     = errors.New("request already decided")
	ErrInvoiceNumberTaken = errors.New("invoice number already exists")
)
