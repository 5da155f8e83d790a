package services

import "errors"

// Shared errors used across services and the HTTP error mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business-rule errors
	ErrValidationFailed      = errors.New("validation failed")
	ErrUnknownImageSlot      = errors.New("unknown image slot")
	ErrInvalidImageURL       = errors.New("image url must be an absolute http(s) url")
	ErrImageFileRequired     = errors.New("image file is required")
	ErrImageNotInBucket      = errors.New("image url does not belong to the storage bucket")
	ErrTournamentNameReq     = errors.New("tournament name is required")
	ErrTournamentInvalidDay  = errors.New("tournament day_of_week must be between 0 (Sunday) and 6 (Saturday)")
	ErrTournamentInvalidCap  = errors.New("tournament player capacity must be positive")
	ErrLeadFieldsRequired    = errors.New("name, email, phone and birth date are all required")
	ErrLeadInvalidEmail      = errors.New("lead email address is not valid")

	// Authentication and authorization
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")

	// Entity-specific not-found errors
	ErrImageNotFound      = errors.New("gallery image not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrEditorNotFound     = errors.New("editor not found")

	// Conflicts
	ErrTournamentNameConflict = errors.New("tournament name already exists for this day")
)
