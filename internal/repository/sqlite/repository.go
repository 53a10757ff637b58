package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/askk-pro/karyayana/internal/errors"
	"github.com/askk-pro/karyayana/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository defines the interface for database operations
type Repository interface {
	// Timer operations
	CreateTimer(ctx context.Context, timer *Timer) error
	GetTimer(ctx context.Context, id string) (*Timer, error)
	ListTimers(ctx context.Context) ([]*Timer, error)
	ListRunningTimers(ctx context.Context) ([]*Timer, error)
	UpdateTimer(ctx context.Context, timer *Timer) error
	UpdateDisplayOrder(ctx context.Context, orders []DisplayOrder) error
	DeleteTimer(ctx context.Context, id string) error

	// Session operations
	CreateSession(ctx context.Context, session *TimerSession) error
	CloseSession(ctx context.Context, timerID string, endedAt time.Time, durationSeconds int, completed bool) error
	ListSessions(ctx context.Context, timerID string) ([]*TimerSession, error)

	// Sound operations (read-only for the timer core)
	GetSound(ctx context.Context, id string) (*Sound, error)
	ListSounds(ctx context.Context) ([]*Sound, error)

	// Settings operations
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error

	// CurrentTimestamp returns the authoritative wall-clock in ms since epoch.
	CurrentTimestamp(ctx context.Context) (int64, error)

	// Utility
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db *sql.DB
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	// A single desktop process is the only writer.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, errors.NewDatabaseError("exec pragma", err)
		}
	}

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// NewMemory creates an in-memory repository for testing
func NewMemory() (*SQLiteRepository, error) {
	return New(":memory:")
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// CreateTimer inserts a new timer row. When the caller has not assigned a
// display order, the timer is appended after the current highest order.
func (r *SQLiteRepository) CreateTimer(ctx context.Context, timer *Timer) error {
	if timer.DisplayOrder == 0 {
		var maxOrder sql.NullInt64
		err := r.db.QueryRowContext(ctx, `SELECT MAX(display_order) FROM timers`).Scan(&maxOrder)
		if err != nil {
			return HandleDatabaseError("next display order", err)
		}
		timer.DisplayOrder = int(maxOrder.Int64) + 1
	}

	query := `
	INSERT INTO timers (
		id, task_name, hours, minutes, seconds, total_seconds, remaining_seconds,
		is_active, is_paused, sound_id, sound_url, sound_name,
		is_repeating, repeat_interval_seconds, is_negative, is_muted,
		primary_color, secondary_color, font_family, font_size,
		start_timestamp, pause_timestamp, total_paused_duration, display_order,
		created_at, updated_at, last_started_at, last_paused_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, r.timerArgs(timer)...)
	if err != nil {
		return HandleDatabaseError("create timer", err)
	}
	return nil
}

// GetTimer retrieves a timer by ID
func (r *SQLiteRepository) GetTimer(ctx context.Context, id string) (*Timer, error) {
	query := fmt.Sprintf(`SELECT %s FROM timers WHERE id = ?`, timerColumns)
	return QuerySingle(ctx, r.db, query, ScanTimer, "timer", id, id)
}

// ListTimers retrieves all timers ordered by display position, then creation time
func (r *SQLiteRepository) ListTimers(ctx context.Context) ([]*Timer, error) {
	query := fmt.Sprintf(`SELECT %s FROM timers ORDER BY display_order ASC, created_at ASC`, timerColumns)
	return QueryMultiple(ctx, r.db, query, ScanTimers, "timers")
}

// ListRunningTimers retrieves timers that are actively counting down
func (r *SQLiteRepository) ListRunningTimers(ctx context.Context) ([]*Timer, error) {
	query := fmt.Sprintf(`SELECT %s FROM timers WHERE is_active = 1 AND is_paused = 0`, timerColumns)
	return QueryMultiple(ctx, r.db, query, ScanTimers, "running timers")
}

// UpdateTimer performs a full-row update of an existing timer
func (r *SQLiteRepository) UpdateTimer(ctx context.Context, timer *Timer) error {
	query := `
	UPDATE timers SET
		task_name = ?, hours = ?, minutes = ?, seconds = ?, total_seconds = ?,
		remaining_seconds = ?, is_active = ?, is_paused = ?, sound_id = ?,
		sound_url = ?, sound_name = ?, is_repeating = ?, repeat_interval_seconds = ?,
		is_negative = ?, is_muted = ?, primary_color = ?, secondary_color = ?,
		font_family = ?, font_size = ?,
		start_timestamp = ?, pause_timestamp = ?, total_paused_duration = ?,
		last_started_at = ?, last_paused_at = ?,
		updated_at = ?
	WHERE id = ?`

	args := []interface{}{
		timer.TaskName,
		timer.Hours,
		timer.Minutes,
		timer.Seconds,
		timer.TotalSeconds,
		timer.RemainingSeconds,
		timer.IsActive,
		timer.IsPaused,
		nullableString(timer.SoundID),
		nullableString(timer.SoundURL),
		nullableString(timer.SoundName),
		timer.IsRepeating,
		timer.RepeatInterval,
		timer.IsNegative,
		timer.IsMuted,
		timer.PrimaryColor,
		timer.SecondaryColor,
		timer.FontFamily,
		timer.FontSize,
		FormatMillisForDB(timer.StartTimestamp),
		FormatMillisForDB(timer.PauseTimestamp),
		timer.TotalPausedDuration,
		FormatTimePtrForDB(timer.LastStartedAt),
		FormatTimePtrForDB(timer.LastPausedAt),
		FormatTimeForDB(timer.UpdatedAt),
		timer.ID,
	}

	return ExecuteWithRowsAffected(ctx, r.db, query, "timer", timer.ID, args...)
}

// UpdateDisplayOrder reassigns display positions for the given timers in one
// transaction. Only display_order is touched so unrelated audit columns stay
// untouched.
func (r *SQLiteRepository) UpdateDisplayOrder(ctx context.Context, orders []DisplayOrder) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin reorder", err)
	}

	stmt, err := tx.PrepareContext(ctx, `UPDATE timers SET display_order = ? WHERE id = ?`)
	if err != nil {
		tx.Rollback()
		return HandleDatabaseError("prepare reorder", err)
	}
	defer stmt.Close()

	for _, order := range orders {
		if _, err := stmt.ExecContext(ctx, order.Order, order.ID); err != nil {
			tx.Rollback()
			return HandleDatabaseError("update display order", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit reorder", err)
	}
	return nil
}

// DeleteTimer deletes a timer and its dependent session rows
func (r *SQLiteRepository) DeleteTimer(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin delete", err)
	}

	// Sessions reference the timer, delete them first.
	if _, err := tx.ExecContext(ctx, `DELETE FROM timer_sessions WHERE timer_id = ?`, id); err != nil {
		tx.Rollback()
		return HandleDatabaseError("delete timer sessions", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM timers WHERE id = ?`, id)
	if err != nil {
		tx.Rollback()
		return HandleDatabaseError("delete timer", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		tx.Rollback()
		return HandleDatabaseError("get rows affected", err)
	}
	if rows == 0 {
		tx.Rollback()
		return errors.NewNotFoundError("timer", id)
	}

	return tx.Commit()
}

// CreateSession inserts a new timer session row
func (r *SQLiteRepository) CreateSession(ctx context.Context, session *TimerSession) error {
	query := `
	INSERT INTO timer_sessions (id, timer_id, started_at, ended_at, duration_seconds, completed)
	VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		session.ID,
		session.TimerID,
		FormatTimeForDB(session.StartedAt),
		FormatTimePtrForDB(session.EndedAt),
		session.DurationSeconds,
		session.Completed,
	)
	if err != nil {
		return HandleDatabaseError("create session", err)
	}
	return nil
}

// CloseSession closes the open session for a timer, if one exists. Closing a
// timer with no open session is not an error; stop after completion is a
// normal path.
func (r *SQLiteRepository) CloseSession(ctx context.Context, timerID string, endedAt time.Time, durationSeconds int, completed bool) error {
	query := `
	UPDATE timer_sessions
	SET ended_at = ?, duration_seconds = ?, completed = ?
	WHERE timer_id = ? AND ended_at IS NULL`

	_, err := r.db.ExecContext(ctx, query, FormatTimeForDB(endedAt), durationSeconds, completed, timerID)
	if err != nil {
		return HandleDatabaseError("close session", err)
	}
	return nil
}

// ListSessions retrieves all sessions for a timer, oldest first
func (r *SQLiteRepository) ListSessions(ctx context.Context, timerID string) ([]*TimerSession, error) {
	query := `
	SELECT id, timer_id, started_at, ended_at, duration_seconds, completed
	FROM timer_sessions
	WHERE timer_id = ?
	ORDER BY started_at ASC`

	return QueryMultiple(ctx, r.db, query, ScanSessions, "timer sessions", timerID)
}

// GetSound retrieves a sound by ID
func (r *SQLiteRepository) GetSound(ctx context.Context, id string) (*Sound, error) {
	query := `SELECT id, name, url, duration, created_at FROM sounds WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanSound, "sound", id, id)
}

// ListSounds retrieves all sounds, newest first
func (r *SQLiteRepository) ListSounds(ctx context.Context) ([]*Sound, error) {
	query := `SELECT id, name, url, duration, created_at FROM sounds ORDER BY created_at DESC`
	return QueryMultiple(ctx, r.db, query, ScanSounds, "sounds")
}

// GetSetting retrieves an application setting value
func (r *SQLiteRepository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM app_settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", errors.NewNotFoundError("setting", key)
		}
		return "", HandleDatabaseError("get setting", err)
	}
	return value, nil
}

// SetSetting upserts an application setting value
func (r *SQLiteRepository) SetSetting(ctx context.Context, key, value string) error {
	query := `
	INSERT INTO app_settings (key, value, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	_, err := r.db.ExecContext(ctx, query, key, value, FormatTimeForDB(time.Now()))
	if err != nil {
		return HandleDatabaseError("set setting", err)
	}
	return nil
}

// CurrentTimestamp returns the store's wall-clock in ms since epoch. Keeping
// this behind the gateway tolerates clock skew if the store is ever remote.
func (r *SQLiteRepository) CurrentTimestamp(ctx context.Context) (int64, error) {
	var millis int64
	query := `SELECT CAST((julianday('now') - 2440587.5) * 86400000 AS INTEGER)`
	if err := r.db.QueryRowContext(ctx, query).Scan(&millis); err != nil {
		return 0, HandleDatabaseError("current timestamp", err)
	}
	return millis, nil
}

func (r *SQLiteRepository) timerArgs(timer *Timer) []interface{} {
	now := FormatTimeForDB(time.Now())
	createdAt := now
	if !timer.CreatedAt.IsZero() {
		createdAt = FormatTimeForDB(timer.CreatedAt)
	}
	return []interface{}{
		timer.ID,
		timer.TaskName,
		timer.Hours,
		timer.Minutes,
		timer.Seconds,
		timer.TotalSeconds,
		timer.RemainingSeconds,
		timer.IsActive,
		timer.IsPaused,
		nullableString(timer.SoundID),
		nullableString(timer.SoundURL),
		nullableString(timer.SoundName),
		timer.IsRepeating,
		timer.RepeatInterval,
		timer.IsNegative,
		timer.IsMuted,
		timer.PrimaryColor,
		timer.SecondaryColor,
		timer.FontFamily,
		timer.FontSize,
		FormatMillisForDB(timer.StartTimestamp),
		FormatMillisForDB(timer.PauseTimestamp),
		timer.TotalPausedDuration,
		timer.DisplayOrder,
		createdAt,
		now,
		FormatTimePtrForDB(timer.LastStartedAt),
		FormatTimePtrForDB(timer.LastPausedAt),
	}
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
