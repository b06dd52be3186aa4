package models

import "time"

// LoginAttempt is an audit record of a single login attempt. It feeds security
// reporting only; lockout decisions come from the in-memory tracker.
type LoginAttempt struct {
	ID            string
	Email         string
	IPAddress     string
	UserAgent     string
	AttemptTime   time.Time
	Success       bool
	FailureReason *string
	ExpiresAt     time.Time
}
