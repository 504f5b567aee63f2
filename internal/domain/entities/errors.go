package entities

import "errors"

// Domain errors
var (
	// Meeting errors
	ErrMeetingNotFound         = errors.New("meeting not found")
	ErrInvalidMeetingStatus    = errors.New("invalid meeting status")
	ErrInvalidStatusTransition = errors.New("invalid meeting status transition")
	ErrEmptyMeetingTitle       = errors.New("meeting title must not be empty")

	// Action item errors
	ErrActionItemNotFound      = errors.New("action item not found")
	ErrInvalidActionItemStatus = errors.New("invalid action item status")
	ErrEmptyActionItemTitle    = errors.New("action item title must not be empty")
)
