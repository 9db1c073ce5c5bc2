/*
store.go - Persistence ports consumed by the engine

PURPOSE:
  Defines the interface between the engine and whatever holds the data.
  The engine only reads collections and issues single-record writes; it
  never composes queries or manages transactions itself.

KEY INTERFACES:
  ShiftStore:       Planned shifts, scoped by user and optional date range
  EntryStore:       Logged outcomes, at most one per shift
  EmployerStore:    Employers, soft-deleted via the active flag
  ProfileStore:     Week start, targets, subscription
  AchievementStore: Unlocked achievements, at most one per (user, id)
  TxStore:          Optional atomic wrapper over all of the above

UNIQUENESS CONTRACT:
  Implementations MUST reject a second outcome for the same shift and a
  second unlock for the same (user, achievement) with ErrConflict. This is
  the authoritative guard; engine-side checks are advisory and open to
  time-of-check/time-of-use races between concurrent writers.

DATE RANGES:
  A nil *DateRange means "no date filter". Entries are filtered by the date
  of the shift they belong to, not by when they were logged.

IMPLEMENTATIONS:
  - engine/store/memory.go: In-memory for tests and development
  - store/sqlite/sqlite.go: SQLite

SEE ALSO:
  - errors.go: Error kinds implementations must return
  - shifts/lifecycle.go: Main consumer of the write methods
*/
package engine

import (
	"context"
	"time"
)

// =============================================================================
// PORTS
// =============================================================================

type ShiftStore interface {
	CreateShift(ctx context.Context, s PlannedShift) error
	GetShift(ctx context.Context, id ShiftID) (PlannedShift, error)
	ListShifts(ctx context.Context, userID UserID, window *DateRange) ([]PlannedShift, error)
	UpdateShift(ctx context.Context, s PlannedShift) error
	SetShiftStatus(ctx context.Context, id ShiftID, status ShiftStatus) error

	// DeleteShift removes the shift and any outcome attached to it.
	DeleteShift(ctx context.Context, id ShiftID) error
}

type EntryStore interface {
	// CreateEntry returns ErrConflict if the shift already has an outcome.
	CreateEntry(ctx context.Context, o LoggedOutcome) error
	GetEntryByShift(ctx context.Context, shiftID ShiftID) (LoggedOutcome, error)
	ListEntries(ctx context.Context, userID UserID, window *DateRange) ([]LoggedOutcome, error)
}

type EmployerStore interface {
	CreateEmployer(ctx context.Context, e Employer) error
	GetEmployer(ctx context.Context, id EmployerID) (Employer, error)
	ListEmployers(ctx context.Context, userID UserID, includeInactive bool) ([]Employer, error)
	DeactivateEmployer(ctx context.Context, id EmployerID) error
}

type ProfileStore interface {
	// GetProfile returns ErrNotFound for users without saved settings.
	GetProfile(ctx context.Context, userID UserID) (Profile, error)
	SaveProfile(ctx context.Context, p Profile) error
	GetSubscription(ctx context.Context, userID UserID) (Subscription, error)
	SaveSubscription(ctx context.Context, s Subscription) error

	// ListUsers returns every user with at least one shift or profile.
	ListUsers(ctx context.Context) ([]UserID, error)
}

type AchievementStore interface {
	ListUnlocked(ctx context.Context, userID UserID) ([]UserAchievement, error)

	// Unlock returns ErrConflict if the pair is already unlocked.
	Unlock(ctx context.Context, a UserAchievement) error
}

// Store is the full persistence surface.
type Store interface {
	ShiftStore
	EntryStore
	EmployerStore
	ProfileStore
	AchievementStore
}

// TxStore wraps Store with transaction support.
// If fn returns an error, every write made through the Store it was handed
// is rolled back.
type TxStore interface {
	Store
	WithTx(ctx context.Context, fn func(Store) error) error
}

// =============================================================================
// RECORDS OWNED BY THE PORTS
// =============================================================================

// Tier is a subscription level. Caps per tier live in package quota.
type Tier string

const (
	TierNone     Tier = "none"
	TierPartTime Tier = "parttime"
	TierFull     Tier = "full"
)

type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionExpired   SubscriptionStatus = "expired"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

// Subscription is the billing provider's verdict as last synced.
type Subscription struct {
	UserID    UserID
	Tier      Tier
	Status    SubscriptionStatus
	ExpiresAt *time.Time
}

// UserAchievement is created once per (user, achievement) and never removed.
type UserAchievement struct {
	UserID        UserID
	AchievementID string
	UnlockedAt    time.Time
}
