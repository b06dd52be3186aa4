// Package lockout implements the in-memory login throttle: a per-identifier
// failed-attempt counter with a hard lock window. State is process-local by
// design; the login_attempts table is an audit trail and never feeds these
// decisions.
package lockout

import (
	"log/slog"
	"sync"
	"time"
)

// Config holds lockout behavior settings
type Config struct {
	MaxAttempts  int           // failed attempts before a lock is imposed
	LockDuration time.Duration // how long an imposed lock lasts
	Retention    time.Duration // idle age after which unlocked records are swept
}

// DefaultConfig returns the production defaults: 3 attempts, 5 minute lock.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  3,
		LockDuration: 5 * time.Minute,
		Retention:    1 * time.Hour,
	}
}

type record struct {
	attempts    int
	lockedUntil time.Time
	lastAttempt time.Time
}

func (r *record) locked(now time.Time) bool {
	return r.lockedUntil.After(now)
}

// Tracker maps normalized account identifiers to lockout records. All methods
// are safe for concurrent use; each read-modify-write runs under the mutex so
// simultaneous failures for the same account cannot lose updates.
type Tracker struct {
	mu      sync.Mutex
	records map[string]*record
	config  Config
	logger  *slog.Logger
	now     func() time.Time
}

// NewTracker creates a Tracker. Construct one at startup and inject it into
// the auth service; tests get isolation from fresh instances.
func NewTracker(config Config, logger *slog.Logger) *Tracker {
	return &Tracker{
		records: make(map[string]*record),
		config:  config,
		logger:  logger,
		now:     time.Now,
	}
}

// IsLocked reports whether the identifier is currently locked and, if so, how
// many seconds remain (rounded up, always in (0, LockDuration]).
func (t *Tracker) IsLocked(identifier string) (bool, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, ok := t.records[identifier]
	if !ok {
		return false, 0
	}

	now := t.now()
	if !r.locked(now) {
		return false, 0
	}

	remaining := r.lockedUntil.Sub(now)
	seconds := int((remaining + time.Second - 1) / time.Second)
	return true, seconds
}

// RegisterFailedAttempt counts a failed login for the identifier, creating its
// record on first failure. Hitting MaxAttempts imposes a lock and resets the
// counter. Failures arriving while a lock is already active are ignored, so a
// locked account cannot have its lock extended indefinitely by further
// hammering.
func (t *Tracker) RegisterFailedAttempt(identifier string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()

	r, ok := t.records[identifier]
	if !ok {
		r = &record{}
		t.records[identifier] = r
	}

	if r.locked(now) {
		return
	}

	r.attempts++
	r.lastAttempt = now

	if r.attempts >= t.config.MaxAttempts {
		r.lockedUntil = now.Add(t.config.LockDuration)
		r.attempts = 0
		t.logger.Warn("account locked after repeated failed logins",
			slog.String("identifier", identifier),
			slog.Duration("lock_duration", t.config.LockDuration))
	}
}

// RegisterSuccessfulLogin clears the identifier's failure history. A success
// while locked is unreachable in the login flow (the lock is checked before
// credentials), so an active lock is left untouched.
func (t *Tracker) RegisterSuccessfulLogin(identifier string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, ok := t.records[identifier]
	if !ok {
		return
	}
	if r.locked(t.now()) {
		return
	}
	delete(t.records, identifier)
}

// Sweep evicts records whose lock has expired and whose last activity is
// older than the retention window, bounding the map. Returns the number of
// records removed.
func (t *Tracker) Sweep() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	cutoff := now.Add(-t.config.Retention)

	removed := 0
	for id, r := range t.records {
		if r.locked(now) {
			continue
		}
		if r.lastAttempt.Before(cutoff) {
			delete(t.records, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked identifiers.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.records)
}
