package domain

import (
	"time"
)

// ChannelKind identifies a contact channel requiring proof of reachability.
type ChannelKind string

const (
	ChannelPhone ChannelKind = "phone"
	ChannelEmail ChannelKind = "email"
)

// ParseChannelKind converts a URL/path value into a ChannelKind.
func ParseChannelKind(s string) (ChannelKind, error) {
	switch ChannelKind(s) {
	case ChannelPhone:
		return ChannelPhone, nil
	case ChannelEmail:
		return ChannelEmail, nil
	}
	return "", ErrInvalidChannel
}

// ProofState is the verification state of a single channel.
type ProofState string

const (
	ProofUnsent   ProofState = "unsent"
	ProofPending  ProofState = "pending"
	ProofVerified ProofState = "verified"
	ProofFailed   ProofState = "failed"
)

// Cooldown and code lifetimes. The cooldown is a resend lockout, not a limit
// on verification attempts.
const (
	CodeResendCooldown = 60 * time.Second
	CodeLifetime       = 10 * time.Minute
)

// VerificationChannel tracks one-time-code verification for a single contact
// channel. Once State reaches ProofVerified it never reverts for the lifetime
// of the session.
type VerificationChannel struct {
	Kind          ChannelKind `json:"kind"`
	Target        string      `json:"target"`
	State         ProofState  `json:"state"`
	Code          string      `json:"code,omitempty"`
	CodeExpiresAt time.Time   `json:"code_expires_at,omitempty"`
	CooldownUntil time.Time   `json:"cooldown_until,omitempty"`
}

// NewVerificationChannel creates a channel in the unsent state.
func NewVerificationChannel(kind ChannelKind) VerificationChannel {
	return VerificationChannel{Kind: kind, State: ProofUnsent}
}

// Verified reports whether the channel has been proven reachable.
func (c *VerificationChannel) Verified() bool {
	return c.State == ProofVerified
}

// CooldownRemaining returns how long until a new code may be requested.
// Zero means requesting is allowed.
func (c *VerificationChannel) CooldownRemaining(now time.Time) time.Duration {
	if now.Before(c.CooldownUntil) {
		return c.CooldownUntil.Sub(now)
	}
	return 0
}

// BeginChallenge records a freshly issued code and moves the channel to
// pending. The caller is responsible for target validation and for handing
// the code to the delivery provider.
func (c *VerificationChannel) BeginChallenge(code string, now time.Time) error {
	if c.State == ProofVerified {
		return ErrAlreadyVerified
	}
	if c.Target == "" {
		return ErrInvalidTarget
	}
	if now.Before(c.CooldownUntil) {
		return ErrCooldownActive
	}
	c.Code = code
	c.CodeExpiresAt = now.Add(CodeLifetime)
	c.CooldownUntil = now.Add(CodeResendCooldown)
	c.State = ProofPending
	return nil
}

// CancelChallenge reverts a challenge whose code never reached the target,
// clearing the code and the resend lockout so the user can request again
// immediately. Verified channels are untouched.
func (c *VerificationChannel) CancelChallenge() {
	if c.State == ProofVerified {
		return
	}
	c.Code = ""
	c.CodeExpiresAt = time.Time{}
	c.CooldownUntil = time.Time{}
	c.State = ProofUnsent
}

// SubmitCode compares a user-submitted code against the outstanding one.
// A match is terminal: the channel becomes verified and stays verified.
// A mismatch moves the channel to failed; the user may submit again or
// request a fresh code once the cooldown expires.
func (c *VerificationChannel) SubmitCode(code string, now time.Time) error {
	switch c.State {
	case ProofVerified:
		return ErrAlreadyVerified
	case ProofUnsent:
		return ErrNoCodeIssued
	}
	if now.After(c.CodeExpiresAt) {
		c.State = ProofFailed
		return ErrCodeExpired
	}
	if code != c.Code {
		c.State = ProofFailed
		return ErrCodeMismatch
	}
	c.State = ProofVerified
	c.Code = ""
	c.CodeExpiresAt = time.Time{}
	return nil
}

// SetTarget updates the channel target. Changing the target after a code was
// sent invalidates the outstanding code and resets the channel to unsent.
// The resend lockout is kept so switching targets cannot bypass it.
// A verified channel refuses target changes: verification is monotonic.
func (c *VerificationChannel) SetTarget(target string) error {
	if target == c.Target {
		return nil
	}
	if c.State == ProofVerified {
		return ErrAlreadyVerified
	}
	c.Target = target
	c.State = ProofUnsent
	c.Code = ""
	c.CodeExpiresAt = time.Time{}
	return nil
}
