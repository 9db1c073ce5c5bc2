// Package store provides Store implementations.
package store

import (
	"context"
	"maps"
	"sort"
	"sync"

	"github.com/warp/shift-engine/engine"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu            sync.RWMutex
	shifts        map[engine.ShiftID]engine.PlannedShift
	entries       map[engine.ShiftID]engine.LoggedOutcome // keyed by shift: one per shift
	employers     map[engine.EmployerID]engine.Employer
	profiles      map[engine.UserID]engine.Profile
	subscriptions map[engine.UserID]engine.Subscription
	unlocked      map[achievementKey]engine.UserAchievement
}

type achievementKey struct {
	UserID        engine.UserID
	AchievementID string
}

var _ engine.TxStore = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		shifts:        make(map[engine.ShiftID]engine.PlannedShift),
		entries:       make(map[engine.ShiftID]engine.LoggedOutcome),
		employers:     make(map[engine.EmployerID]engine.Employer),
		profiles:      make(map[engine.UserID]engine.Profile),
		subscriptions: make(map[engine.UserID]engine.Subscription),
		unlocked:      make(map[achievementKey]engine.UserAchievement),
	}
}

// =============================================================================
// SHIFTS
// =============================================================================

func (m *Memory) CreateShift(_ context.Context, s engine.PlannedShift) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createShiftLocked(s)
}

func (m *Memory) createShiftLocked(s engine.PlannedShift) error {
	if _, ok := m.shifts[s.ID]; ok {
		return engine.ErrConflict
	}
	m.shifts[s.ID] = s
	return nil
}

func (m *Memory) GetShift(_ context.Context, id engine.ShiftID) (engine.PlannedShift, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.getShiftLocked(id)
}

func (m *Memory) getShiftLocked(id engine.ShiftID) (engine.PlannedShift, error) {
	s, ok := m.shifts[id]
	if !ok {
		return engine.PlannedShift{}, engine.ErrNotFound
	}
	return s, nil
}

func (m *Memory) ListShifts(_ context.Context, userID engine.UserID, window *engine.DateRange) ([]engine.PlannedShift, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listShiftsLocked(userID, window), nil
}

func (m *Memory) listShiftsLocked(userID engine.UserID, window *engine.DateRange) []engine.PlannedShift {
	var result []engine.PlannedShift
	for _, s := range m.shifts {
		if s.UserID != userID {
			continue
		}
		if window != nil && !window.Contains(s.Date) {
			continue
		}
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].StartTime.Before(result[j].StartTime)
	})
	return result
}

func (m *Memory) UpdateShift(_ context.Context, s engine.PlannedShift) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updateShiftLocked(s)
}

func (m *Memory) updateShiftLocked(s engine.PlannedShift) error {
	if _, ok := m.shifts[s.ID]; !ok {
		return engine.ErrNotFound
	}
	m.shifts[s.ID] = s
	return nil
}

func (m *Memory) SetShiftStatus(_ context.Context, id engine.ShiftID, status engine.ShiftStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setShiftStatusLocked(id, status)
}

func (m *Memory) setShiftStatusLocked(id engine.ShiftID, status engine.ShiftStatus) error {
	s, ok := m.shifts[id]
	if !ok {
		return engine.ErrNotFound
	}
	s.Status = status
	m.shifts[id] = s
	return nil
}

func (m *Memory) DeleteShift(_ context.Context, id engine.ShiftID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deleteShiftLocked(id)
}

func (m *Memory) deleteShiftLocked(id engine.ShiftID) error {
	if _, ok := m.shifts[id]; !ok {
		return engine.ErrNotFound
	}
	delete(m.shifts, id)
	delete(m.entries, id)
	return nil
}

// =============================================================================
// ENTRIES
// =============================================================================

func (m *Memory) CreateEntry(_ context.Context, o engine.LoggedOutcome) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createEntryLocked(o)
}

func (m *Memory) createEntryLocked(o engine.LoggedOutcome) error {
	if _, ok := m.entries[o.ShiftID]; ok {
		return engine.ErrConflict
	}
	m.entries[o.ShiftID] = o
	return nil
}

func (m *Memory) GetEntryByShift(_ context.Context, shiftID engine.ShiftID) (engine.LoggedOutcome, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.getEntryLocked(shiftID)
}

func (m *Memory) getEntryLocked(shiftID engine.ShiftID) (engine.LoggedOutcome, error) {
	o, ok := m.entries[shiftID]
	if !ok {
		return engine.LoggedOutcome{}, engine.ErrNotFound
	}
	return o, nil
}

// ListEntries filters by the owning shift's date. Entries whose shift is
// gone are returned only when no window is given, like an orphaned row
// would be by a real query without a join.
func (m *Memory) ListEntries(_ context.Context, userID engine.UserID, window *engine.DateRange) ([]engine.LoggedOutcome, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listEntriesLocked(userID, window), nil
}

func (m *Memory) listEntriesLocked(userID engine.UserID, window *engine.DateRange) []engine.LoggedOutcome {
	var result []engine.LoggedOutcome
	for shiftID, o := range m.entries {
		if o.UserID != userID {
			continue
		}
		if window != nil {
			s, ok := m.shifts[shiftID]
			if !ok || !window.Contains(s.Date) {
				continue
			}
		}
		result = append(result, o)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ShiftID < result[j].ShiftID })
	return result
}

// =============================================================================
// EMPLOYERS
// =============================================================================

func (m *Memory) CreateEmployer(_ context.Context, e engine.Employer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createEmployerLocked(e)
}

func (m *Memory) createEmployerLocked(e engine.Employer) error {
	if _, ok := m.employers[e.ID]; ok {
		return engine.ErrConflict
	}
	m.employers[e.ID] = e
	return nil
}

func (m *Memory) GetEmployer(_ context.Context, id engine.EmployerID) (engine.Employer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.getEmployerLocked(id)
}

func (m *Memory) getEmployerLocked(id engine.EmployerID) (engine.Employer, error) {
	e, ok := m.employers[id]
	if !ok {
		return engine.Employer{}, engine.ErrNotFound
	}
	return e, nil
}

func (m *Memory) ListEmployers(_ context.Context, userID engine.UserID, includeInactive bool) ([]engine.Employer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listEmployersLocked(userID, includeInactive), nil
}

func (m *Memory) listEmployersLocked(userID engine.UserID, includeInactive bool) []engine.Employer {
	var result []engine.Employer
	for _, e := range m.employers {
		if e.UserID != userID || (!includeInactive && !e.Active) {
			continue
		}
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

func (m *Memory) DeactivateEmployer(_ context.Context, id engine.EmployerID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deactivateEmployerLocked(id)
}

func (m *Memory) deactivateEmployerLocked(id engine.EmployerID) error {
	e, ok := m.employers[id]
	if !ok {
		return engine.ErrNotFound
	}
	e.Active = false
	m.employers[id] = e
	return nil
}

// =============================================================================
// PROFILES & SUBSCRIPTIONS
// =============================================================================

func (m *Memory) GetProfile(_ context.Context, userID engine.UserID) (engine.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.getProfileLocked(userID)
}

func (m *Memory) getProfileLocked(userID engine.UserID) (engine.Profile, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return engine.Profile{}, engine.ErrNotFound
	}
	return p, nil
}

func (m *Memory) SaveProfile(_ context.Context, p engine.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.UserID] = p
	return nil
}

func (m *Memory) GetSubscription(_ context.Context, userID engine.UserID) (engine.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.getSubscriptionLocked(userID)
}

func (m *Memory) getSubscriptionLocked(userID engine.UserID) (engine.Subscription, error) {
	s, ok := m.subscriptions[userID]
	if !ok {
		return engine.Subscription{}, engine.ErrNotFound
	}
	return s, nil
}

func (m *Memory) SaveSubscription(_ context.Context, s engine.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscriptions[s.UserID] = s
	return nil
}

func (m *Memory) ListUsers(_ context.Context) ([]engine.UserID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listUsersLocked(), nil
}

func (m *Memory) listUsersLocked() []engine.UserID {
	seen := make(map[engine.UserID]bool)
	for _, s := range m.shifts {
		seen[s.UserID] = true
	}
	for id := range m.profiles {
		seen[id] = true
	}
	users := make([]engine.UserID, 0, len(seen))
	for id := range seen {
		users = append(users, id)
	}
	sort.Slice(users, func(i, j int) bool { return users[i] < users[j] })
	return users
}

// =============================================================================
// ACHIEVEMENTS
// =============================================================================

func (m *Memory) ListUnlocked(_ context.Context, userID engine.UserID) ([]engine.UserAchievement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listUnlockedLocked(userID), nil
}

func (m *Memory) listUnlockedLocked(userID engine.UserID) []engine.UserAchievement {
	var result []engine.UserAchievement
	for k, a := range m.unlocked {
		if k.UserID == userID {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].AchievementID < result[j].AchievementID })
	return result
}

func (m *Memory) Unlock(_ context.Context, a engine.UserAchievement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.unlockLocked(a)
}

func (m *Memory) unlockLocked(a engine.UserAchievement) error {
	k := achievementKey{UserID: a.UserID, AchievementID: a.AchievementID}
	if _, ok := m.unlocked[k]; ok {
		return engine.ErrConflict
	}
	m.unlocked[k] = a
	return nil
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

// WithTx executes fn within a transaction.
// For memory store, this is simulated with a snapshot + rollback on error.
// Every write made through the handed Store is rolled back together.
func (m *Memory) WithTx(_ context.Context, fn func(engine.Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := m.snapshot()
	if err := fn(&txView{parent: m}); err != nil {
		m.restore(snap)
		return err
	}
	return nil
}

type memorySnapshot struct {
	shifts        map[engine.ShiftID]engine.PlannedShift
	entries       map[engine.ShiftID]engine.LoggedOutcome
	employers     map[engine.EmployerID]engine.Employer
	profiles      map[engine.UserID]engine.Profile
	subscriptions map[engine.UserID]engine.Subscription
	unlocked      map[achievementKey]engine.UserAchievement
}

func (m *Memory) snapshot() memorySnapshot {
	return memorySnapshot{
		shifts:        maps.Clone(m.shifts),
		entries:       maps.Clone(m.entries),
		employers:     maps.Clone(m.employers),
		profiles:      maps.Clone(m.profiles),
		subscriptions: maps.Clone(m.subscriptions),
		unlocked:      maps.Clone(m.unlocked),
	}
}

func (m *Memory) restore(s memorySnapshot) {
	m.shifts = s.shifts
	m.entries = s.entries
	m.employers = s.employers
	m.profiles = s.profiles
	m.subscriptions = s.subscriptions
	m.unlocked = s.unlocked
}

// txView runs against the parent's maps while WithTx holds the lock.
type txView struct {
	parent *Memory
}

var _ engine.Store = (*txView)(nil)

func (tv *txView) CreateShift(_ context.Context, s engine.PlannedShift) error {
	return tv.parent.createShiftLocked(s)
}

func (tv *txView) GetShift(_ context.Context, id engine.ShiftID) (engine.PlannedShift, error) {
	return tv.parent.getShiftLocked(id)
}

func (tv *txView) ListShifts(_ context.Context, userID engine.UserID, window *engine.DateRange) ([]engine.PlannedShift, error) {
	return tv.parent.listShiftsLocked(userID, window), nil
}

func (tv *txView) UpdateShift(_ context.Context, s engine.PlannedShift) error {
	return tv.parent.updateShiftLocked(s)
}

func (tv *txView) SetShiftStatus(_ context.Context, id engine.ShiftID, status engine.ShiftStatus) error {
	return tv.parent.setShiftStatusLocked(id, status)
}

func (tv *txView) DeleteShift(_ context.Context, id engine.ShiftID) error {
	return tv.parent.deleteShiftLocked(id)
}

func (tv *txView) CreateEntry(_ context.Context, o engine.LoggedOutcome) error {
	return tv.parent.createEntryLocked(o)
}

func (tv *txView) GetEntryByShift(_ context.Context, shiftID engine.ShiftID) (engine.LoggedOutcome, error) {
	return tv.parent.getEntryLocked(shiftID)
}

func (tv *txView) ListEntries(_ context.Context, userID engine.UserID, window *engine.DateRange) ([]engine.LoggedOutcome, error) {
	return tv.parent.listEntriesLocked(userID, window), nil
}

func (tv *txView) CreateEmployer(_ context.Context, e engine.Employer) error {
	return tv.parent.createEmployerLocked(e)
}

func (tv *txView) GetEmployer(_ context.Context, id engine.EmployerID) (engine.Employer, error) {
	return tv.parent.getEmployerLocked(id)
}

func (tv *txView) ListEmployers(_ context.Context, userID engine.UserID, includeInactive bool) ([]engine.Employer, error) {
	return tv.parent.listEmployersLocked(userID, includeInactive), nil
}

func (tv *txView) DeactivateEmployer(_ context.Context, id engine.EmployerID) error {
	return tv.parent.deactivateEmployerLocked(id)
}

func (tv *txView) GetProfile(_ context.Context, userID engine.UserID) (engine.Profile, error) {
	return tv.parent.getProfileLocked(userID)
}

func (tv *txView) SaveProfile(_ context.Context, p engine.Profile) error {
	tv.parent.profiles[p.UserID] = p
	return nil
}

func (tv *txView) GetSubscription(_ context.Context, userID engine.UserID) (engine.Subscription, error) {
	return tv.parent.getSubscriptionLocked(userID)
}

func (tv *txView) SaveSubscription(_ context.Context, s engine.Subscription) error {
	tv.parent.subscriptions[s.UserID] = s
	return nil
}

func (tv *txView) ListUsers(_ context.Context) ([]engine.UserID, error) {
	return tv.parent.listUsersLocked(), nil
}

func (tv *txView) ListUnlocked(_ context.Context, userID engine.UserID) ([]engine.UserAchievement, error) {
	return tv.parent.listUnlockedLocked(userID), nil
}

func (tv *txView) Unlock(_ context.Context, a engine.UserAchievement) error {
	return tv.parent.unlockLocked(a)
}
