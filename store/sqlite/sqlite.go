/*
Package sqlite provides a SQLite-backed implementation of the engine ports.

PURPOSE:
  Implements engine.TxStore (shifts, entries, employers, profiles,
  subscriptions, achievements) on SQLite through database/sql and
  mattn/go-sqlite3.

KEY TABLES:
  profiles:          Week start, default rate, deduction %, targets (JSON)
  subscriptions:     Last synced tier and status per user
  employers:         Soft-deleted via the active flag
  shifts:            Planned shifts, dated YYYY-MM-DD, times HH:MM
  entries:           Logged outcomes with their income snapshot
  user_achievements: Unlocked achievements

UNIQUENESS:
  The store is the authority for the two invariants the engine only checks
  advisorily:
  - idx_unique_entry_shift:       one outcome per shift
  - idx_unique_user_achievement:  one unlock per (user, achievement)
  A violation surfaces as engine.ErrConflict.

ERRORS:
  sql.ErrNoRows and zero-row updates -> engine.ErrNotFound
  UNIQUE/PRIMARY KEY violations      -> engine.ErrConflict
  anything else                      -> *engine.StoreError

WAL MODE:
  Opened with WAL and foreign keys on. The pool is limited to one
  connection so ":memory:" databases stay a single database and writers
  are serialized.

USAGE:
  store, err := sqlite.New("./data/shifts.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  svc := shifts.NewService(store, logger)

SEE ALSO:
  - engine/store.go: Port definitions
  - engine/store/memory.go: In-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/shift-engine/engine"
)

// Store implements engine.TxStore using SQLite.
type Store struct {
	queries
	db *sql.DB
}

var _ engine.TxStore = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &Store{queries: queries{q: db}, db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping is used by the health endpoint.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS profiles (
		user_id TEXT PRIMARY KEY,
		week_start INTEGER NOT NULL DEFAULT 0,
		default_hourly_rate TEXT NOT NULL DEFAULT '0',
		deduction_percent TEXT NOT NULL DEFAULT '0',
		targets_json TEXT NOT NULL DEFAULT '{}',
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS subscriptions (
		user_id TEXT PRIMARY KEY,
		tier TEXT NOT NULL,
		status TEXT NOT NULL,
		expires_at TEXT,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS employers (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		default_hourly_rate TEXT NOT NULL,
		active INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_employers_user
		ON employers(user_id, active);

	-- employer_id has no foreign key: history outlives employers
	CREATE TABLE IF NOT EXISTS shifts (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		employer_id TEXT,
		shift_date TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		hourly_rate TEXT NOT NULL,
		lunch_break_minutes INTEGER NOT NULL DEFAULT 0,
		sales_target TEXT,
		status TEXT NOT NULL,
		notes TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Hot path: every window query is (user, date range)
	CREATE INDEX IF NOT EXISTS idx_shifts_user_date
		ON shifts(user_id, shift_date, start_time);

	CREATE TABLE IF NOT EXISTS entries (
		id TEXT PRIMARY KEY,
		shift_id TEXT NOT NULL REFERENCES shifts(id) ON DELETE CASCADE,
		user_id TEXT NOT NULL,
		actual_start TEXT,
		actual_end TEXT,
		actual_hours TEXT NOT NULL,
		tips TEXT NOT NULL,
		sales TEXT NOT NULL,
		other_income TEXT NOT NULL,
		cash_out TEXT NOT NULL,
		notes TEXT,
		hourly_rate TEXT NOT NULL,
		deduction_percent TEXT NOT NULL,
		gross_income TEXT NOT NULL,
		total_income TEXT NOT NULL,
		net_income TEXT NOT NULL,
		effective_hourly_rate TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	-- CRITICAL: at most one outcome per shift
	CREATE UNIQUE INDEX IF NOT EXISTS idx_unique_entry_shift
		ON entries(shift_id);

	CREATE INDEX IF NOT EXISTS idx_entries_user
		ON entries(user_id);

	CREATE TABLE IF NOT EXISTS user_achievements (
		user_id TEXT NOT NULL,
		achievement_id TEXT NOT NULL,
		unlocked_at TEXT NOT NULL
	);

	-- CRITICAL: unlocks are never duplicated
	CREATE UNIQUE INDEX IF NOT EXISTS idx_unique_user_achievement
		ON user_achievements(user_id, achievement_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// TRANSACTIONAL STORE (engine.TxStore interface)
// =============================================================================

// WithTx executes a function within a database transaction.
func (s *Store) WithTx(ctx context.Context, fn func(store engine.Store) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return engine.WrapStore("begin transaction", err)
	}
	defer sqlTx.Rollback()

	if err := fn(queries{q: sqlTx}); err != nil {
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return engine.WrapStore("commit", err)
	}
	return nil
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// queries implements every port against a querier, so the same code runs
// inside and outside a transaction.
type queries struct {
	q querier
}

var _ engine.Store = queries{}

type rowScanner interface {
	Scan(dest ...any) error
}

// =============================================================================
// SHIFT STORE
// =============================================================================

const shiftColumns = `id, user_id, employer_id, shift_date, start_time, end_time, hourly_rate,
	lunch_break_minutes, sales_target, status, notes, created_at, updated_at`

func (qs queries) CreateShift(ctx context.Context, sh engine.PlannedShift) error {
	_, err := qs.q.ExecContext(ctx, `
		INSERT INTO shifts (`+shiftColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		sh.ID, sh.UserID, nullEmployer(sh.EmployerID),
		sh.Date.String(), sh.StartTime.String(), sh.EndTime.String(),
		sh.HourlyRate, sh.LunchBreakMinutes, nullDecimal(sh.SalesTarget),
		sh.Status, nullString(sh.Notes),
		formatTime(sh.CreatedAt), formatTime(sh.UpdatedAt),
	)
	return translate("create shift", err)
}

func (qs queries) GetShift(ctx context.Context, id engine.ShiftID) (engine.PlannedShift, error) {
	row := qs.q.QueryRowContext(ctx, `SELECT `+shiftColumns+` FROM shifts WHERE id = ?`, id)
	sh, err := scanShift(row)
	return sh, translate("get shift", err)
}

func (qs queries) ListShifts(ctx context.Context, userID engine.UserID, window *engine.DateRange) ([]engine.PlannedShift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE user_id = ?`
	args := []any{userID}
	if window != nil {
		query += ` AND shift_date >= ? AND shift_date <= ?`
		args = append(args, window.Start.String(), window.End.String())
	}
	query += ` ORDER BY shift_date ASC, start_time ASC`

	rows, err := qs.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translate("list shifts", err)
	}
	defer rows.Close()

	var result []engine.PlannedShift
	for rows.Next() {
		sh, err := scanShift(rows)
		if err != nil {
			return nil, translate("scan shift", err)
		}
		result = append(result, sh)
	}
	return result, translate("list shifts", rows.Err())
}

func (qs queries) UpdateShift(ctx context.Context, sh engine.PlannedShift) error {
	res, err := qs.q.ExecContext(ctx, `
		UPDATE shifts SET employer_id = ?, shift_date = ?, start_time = ?, end_time = ?,
			hourly_rate = ?, lunch_break_minutes = ?, sales_target = ?, status = ?,
			notes = ?, updated_at = ?
		WHERE id = ?
	`,
		nullEmployer(sh.EmployerID), sh.Date.String(), sh.StartTime.String(), sh.EndTime.String(),
		sh.HourlyRate, sh.LunchBreakMinutes, nullDecimal(sh.SalesTarget), sh.Status,
		nullString(sh.Notes), formatTime(sh.UpdatedAt), sh.ID,
	)
	return expectRow("update shift", res, err)
}

func (qs queries) SetShiftStatus(ctx context.Context, id engine.ShiftID, status engine.ShiftStatus) error {
	res, err := qs.q.ExecContext(ctx,
		`UPDATE shifts SET status = ?, updated_at = ? WHERE id = ?`,
		status, formatTime(time.Now()), id,
	)
	return expectRow("set shift status", res, err)
}

// DeleteShift relies on ON DELETE CASCADE for the outcome.
func (qs queries) DeleteShift(ctx context.Context, id engine.ShiftID) error {
	res, err := qs.q.ExecContext(ctx, `DELETE FROM shifts WHERE id = ?`, id)
	return expectRow("delete shift", res, err)
}

func scanShift(row rowScanner) (engine.PlannedShift, error) {
	var (
		sh                   engine.PlannedShift
		employerID           sql.NullString
		date, start, end     string
		salesTarget          decimal.NullDecimal
		notes                sql.NullString
		createdAt, updatedAt string
	)
	err := row.Scan(
		&sh.ID, &sh.UserID, &employerID, &date, &start, &end, &sh.HourlyRate,
		&sh.LunchBreakMinutes, &salesTarget, &sh.Status, &notes, &createdAt, &updatedAt,
	)
	if err != nil {
		return sh, err
	}

	if employerID.Valid {
		id := engine.EmployerID(employerID.String)
		sh.EmployerID = &id
	}
	if salesTarget.Valid {
		sh.SalesTarget = &salesTarget.Decimal
	}
	if sh.Date, err = engine.ParseDate(date); err != nil {
		return sh, err
	}
	if sh.StartTime, err = engine.ParseClockTime(start); err != nil {
		return sh, err
	}
	if sh.EndTime, err = engine.ParseClockTime(end); err != nil {
		return sh, err
	}
	sh.Notes = notes.String
	sh.CreatedAt = parseTime(createdAt)
	sh.UpdatedAt = parseTime(updatedAt)
	return sh, nil
}

// =============================================================================
// ENTRY STORE
// =============================================================================

const entryColumns = `e.id, e.shift_id, e.user_id, e.actual_start, e.actual_end, e.actual_hours,
	e.tips, e.sales, e.other_income, e.cash_out, e.notes, e.hourly_rate, e.deduction_percent,
	e.gross_income, e.total_income, e.net_income, e.effective_hourly_rate, e.created_at`

func (qs queries) CreateEntry(ctx context.Context, o engine.LoggedOutcome) error {
	_, err := qs.q.ExecContext(ctx, `
		INSERT INTO entries
		(id, shift_id, user_id, actual_start, actual_end, actual_hours, tips, sales,
		 other_income, cash_out, notes, hourly_rate, deduction_percent, gross_income,
		 total_income, net_income, effective_hourly_rate, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		o.ID, o.ShiftID, o.UserID, nullClock(o.ActualStart), nullClock(o.ActualEnd),
		o.ActualHours, o.Tips, o.Sales, o.OtherIncome, o.CashOut, nullString(o.Notes),
		o.HourlyRate, o.DeductionPercent, o.GrossIncome, o.TotalIncome, o.NetIncome,
		o.EffectiveHourlyRate, formatTime(o.CreatedAt),
	)
	return translate("create entry", err)
}

func (qs queries) GetEntryByShift(ctx context.Context, shiftID engine.ShiftID) (engine.LoggedOutcome, error) {
	row := qs.q.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM entries e WHERE e.shift_id = ?`, shiftID)
	o, err := scanEntry(row)
	return o, translate("get entry", err)
}

// ListEntries filters by the date of the owning shift.
func (qs queries) ListEntries(ctx context.Context, userID engine.UserID, window *engine.DateRange) ([]engine.LoggedOutcome, error) {
	query := `SELECT ` + entryColumns + ` FROM entries e`
	args := []any{userID}
	if window != nil {
		query += ` JOIN shifts s ON s.id = e.shift_id
			WHERE e.user_id = ? AND s.shift_date >= ? AND s.shift_date <= ?`
		args = append(args, window.Start.String(), window.End.String())
	} else {
		query += ` WHERE e.user_id = ?`
	}
	query += ` ORDER BY e.shift_id ASC`

	rows, err := qs.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translate("list entries", err)
	}
	defer rows.Close()

	var result []engine.LoggedOutcome
	for rows.Next() {
		o, err := scanEntry(rows)
		if err != nil {
			return nil, translate("scan entry", err)
		}
		result = append(result, o)
	}
	return result, translate("list entries", rows.Err())
}

func scanEntry(row rowScanner) (engine.LoggedOutcome, error) {
	var (
		o                   engine.LoggedOutcome
		actualStart, actEnd sql.NullString
		notes               sql.NullString
		createdAt           string
	)
	err := row.Scan(
		&o.ID, &o.ShiftID, &o.UserID, &actualStart, &actEnd, &o.ActualHours,
		&o.Tips, &o.Sales, &o.OtherIncome, &o.CashOut, &notes, &o.HourlyRate, &o.DeductionPercent,
		&o.GrossIncome, &o.TotalIncome, &o.NetIncome, &o.EffectiveHourlyRate, &createdAt,
	)
	if err != nil {
		return o, err
	}
	o.ActualStart = parseNullClock(actualStart)
	o.ActualEnd = parseNullClock(actEnd)
	o.Notes = notes.String
	o.CreatedAt = parseTime(createdAt)
	return o, nil
}

// =============================================================================
// EMPLOYER STORE
// =============================================================================

func (qs queries) CreateEmployer(ctx context.Context, e engine.Employer) error {
	_, err := qs.q.ExecContext(ctx, `
		INSERT INTO employers (id, user_id, name, default_hourly_rate, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.ID, e.UserID, e.Name, e.DefaultHourlyRate, e.Active, formatTime(e.CreatedAt))
	return translate("create employer", err)
}

func (qs queries) GetEmployer(ctx context.Context, id engine.EmployerID) (engine.Employer, error) {
	row := qs.q.QueryRowContext(ctx, `
		SELECT id, user_id, name, default_hourly_rate, active, created_at
		FROM employers WHERE id = ?
	`, id)
	e, err := scanEmployer(row)
	return e, translate("get employer", err)
}

func (qs queries) ListEmployers(ctx context.Context, userID engine.UserID, includeInactive bool) ([]engine.Employer, error) {
	query := `SELECT id, user_id, name, default_hourly_rate, active, created_at FROM employers WHERE user_id = ?`
	if !includeInactive {
		query += ` AND active = 1`
	}
	query += ` ORDER BY name ASC`

	rows, err := qs.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, translate("list employers", err)
	}
	defer rows.Close()

	var result []engine.Employer
	for rows.Next() {
		e, err := scanEmployer(rows)
		if err != nil {
			return nil, translate("scan employer", err)
		}
		result = append(result, e)
	}
	return result, translate("list employers", rows.Err())
}

func (qs queries) DeactivateEmployer(ctx context.Context, id engine.EmployerID) error {
	res, err := qs.q.ExecContext(ctx, `UPDATE employers SET active = 0 WHERE id = ?`, id)
	return expectRow("deactivate employer", res, err)
}

func scanEmployer(row rowScanner) (engine.Employer, error) {
	var (
		e         engine.Employer
		createdAt string
	)
	if err := row.Scan(&e.ID, &e.UserID, &e.Name, &e.DefaultHourlyRate, &e.Active, &createdAt); err != nil {
		return e, err
	}
	e.CreatedAt = parseTime(createdAt)
	return e, nil
}

// =============================================================================
// PROFILE STORE
// =============================================================================

func (qs queries) GetProfile(ctx context.Context, userID engine.UserID) (engine.Profile, error) {
	var (
		p           engine.Profile
		weekStart   int
		targetsJSON string
	)
	err := qs.q.QueryRowContext(ctx, `
		SELECT user_id, week_start, default_hourly_rate, deduction_percent, targets_json
		FROM profiles WHERE user_id = ?
	`, userID).Scan(&p.UserID, &weekStart, &p.DefaultHourlyRate, &p.DeductionPercent, &targetsJSON)
	if err != nil {
		return p, translate("get profile", err)
	}
	p.WeekStart = time.Weekday(weekStart)
	if err := json.Unmarshal([]byte(targetsJSON), &p.Targets); err != nil {
		return p, engine.WrapStore("decode targets", err)
	}
	return p, nil
}

func (qs queries) SaveProfile(ctx context.Context, p engine.Profile) error {
	targetsJSON, err := json.Marshal(p.Targets)
	if err != nil {
		return engine.WrapStore("encode targets", err)
	}
	_, err = qs.q.ExecContext(ctx, `
		INSERT INTO profiles (user_id, week_start, default_hourly_rate, deduction_percent, targets_json, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			week_start = excluded.week_start,
			default_hourly_rate = excluded.default_hourly_rate,
			deduction_percent = excluded.deduction_percent,
			targets_json = excluded.targets_json,
			updated_at = excluded.updated_at
	`, p.UserID, int(p.WeekStart), p.DefaultHourlyRate, p.DeductionPercent, string(targetsJSON), formatTime(time.Now()))
	return translate("save profile", err)
}

func (qs queries) GetSubscription(ctx context.Context, userID engine.UserID) (engine.Subscription, error) {
	var (
		sub       engine.Subscription
		expiresAt sql.NullString
	)
	err := qs.q.QueryRowContext(ctx, `
		SELECT user_id, tier, status, expires_at FROM subscriptions WHERE user_id = ?
	`, userID).Scan(&sub.UserID, &sub.Tier, &sub.Status, &expiresAt)
	if err != nil {
		return sub, translate("get subscription", err)
	}
	if expiresAt.Valid {
		t := parseTime(expiresAt.String)
		sub.ExpiresAt = &t
	}
	return sub, nil
}

func (qs queries) SaveSubscription(ctx context.Context, sub engine.Subscription) error {
	var expiresAt sql.NullString
	if sub.ExpiresAt != nil {
		expiresAt = sql.NullString{String: formatTime(*sub.ExpiresAt), Valid: true}
	}
	_, err := qs.q.ExecContext(ctx, `
		INSERT INTO subscriptions (user_id, tier, status, expires_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			tier = excluded.tier,
			status = excluded.status,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at
	`, sub.UserID, sub.Tier, sub.Status, expiresAt, formatTime(time.Now()))
	return translate("save subscription", err)
}

func (qs queries) ListUsers(ctx context.Context) ([]engine.UserID, error) {
	rows, err := qs.q.QueryContext(ctx, `
		SELECT user_id FROM shifts
		UNION
		SELECT user_id FROM profiles
		ORDER BY 1
	`)
	if err != nil {
		return nil, translate("list users", err)
	}
	defer rows.Close()

	var users []engine.UserID
	for rows.Next() {
		var id engine.UserID
		if err := rows.Scan(&id); err != nil {
			return nil, translate("scan user", err)
		}
		users = append(users, id)
	}
	return users, translate("list users", rows.Err())
}

// =============================================================================
// ACHIEVEMENT STORE
// =============================================================================

func (qs queries) ListUnlocked(ctx context.Context, userID engine.UserID) ([]engine.UserAchievement, error) {
	rows, err := qs.q.QueryContext(ctx, `
		SELECT user_id, achievement_id, unlocked_at FROM user_achievements
		WHERE user_id = ? ORDER BY achievement_id ASC
	`, userID)
	if err != nil {
		return nil, translate("list unlocked", err)
	}
	defer rows.Close()

	var result []engine.UserAchievement
	for rows.Next() {
		var (
			a          engine.UserAchievement
			unlockedAt string
		)
		if err := rows.Scan(&a.UserID, &a.AchievementID, &unlockedAt); err != nil {
			return nil, translate("scan achievement", err)
		}
		a.UnlockedAt = parseTime(unlockedAt)
		result = append(result, a)
	}
	return result, translate("list unlocked", rows.Err())
}

func (qs queries) Unlock(ctx context.Context, a engine.UserAchievement) error {
	_, err := qs.q.ExecContext(ctx, `
		INSERT INTO user_achievements (user_id, achievement_id, unlocked_at) VALUES (?, ?, ?)
	`, a.UserID, a.AchievementID, formatTime(a.UnlockedAt))
	return translate("unlock", err)
}

// =============================================================================
// HELPERS
// =============================================================================

// translate maps driver errors onto engine error kinds.
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("%s: %w", op, engine.ErrNotFound)
	case isUniqueConstraintError(err):
		return fmt.Errorf("%s: %w", op, engine.ErrConflict)
	}
	return engine.WrapStore(op, err)
}

func expectRow(op string, res sql.Result, err error) error {
	if err != nil {
		return translate(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return translate(op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, engine.ErrNotFound)
	}
	return nil
}

func isUniqueConstraintError(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullEmployer(id *engine.EmployerID) sql.NullString {
	if id == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*id), Valid: true}
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func nullClock(c *engine.ClockTime) sql.NullString {
	if c == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: c.String(), Valid: true}
}

func parseNullClock(s sql.NullString) *engine.ClockTime {
	if !s.Valid {
		return nil
	}
	c, err := engine.ParseClockTime(s.String)
	if err != nil {
		return nil
	}
	return &c
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}
