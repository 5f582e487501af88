package domain

import "errors"

// Resolution errors. Both are terminal for a feedback session.
var (
	ErrWorkshopNotFound = errors.New("workshop not found")
	ErrWorkshopInactive = errors.New("workshop is not active")
)

// Session and sequencer errors.
var (
	ErrSessionNotFound   = errors.New("feedback session not found")
	ErrSessionComplete   = errors.New("feedback session already complete")
	ErrGuardNotSatisfied = errors.New("stage guard not satisfied")
	ErrInvalidChannel    = errors.New("unknown verification channel")
)

// Verification gate errors. All are recoverable and scoped to one channel.
var (
	ErrInvalidTarget   = errors.New("invalid verification target")
	ErrCooldownActive  = errors.New("resend cooldown is active")
	ErrNoCodeIssued    = errors.New("no verification code has been requested")
	ErrCodeMismatch    = errors.New("verification code does not match")
	ErrCodeExpired     = errors.New("verification code has expired")
	ErrAlreadyVerified = errors.New("channel is already verified")
)

// Submission assembler errors.
var (
	ErrVerificationIncomplete = errors.New("verification incomplete")
	ErrAlreadySubmitted       = errors.New("feedback already submitted for this session")
)

// Admin errors.
var (
	ErrLinkTaken          = errors.New("public link already in use")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTemplateNotFound   = errors.New("certificate template not found")
)
