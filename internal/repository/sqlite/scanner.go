package sqlite

import (
	"database/sql"
	"time"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// timerColumns is the canonical column list shared by every timer SELECT so
// ScanTimer stays in lockstep with the queries.
const timerColumns = `id, task_name, hours, minutes, seconds, total_seconds, remaining_seconds,
	is_active, is_paused, sound_id, sound_url, sound_name,
	is_repeating, repeat_interval_seconds, is_negative, is_muted,
	primary_color, secondary_color, font_family, font_size,
	start_timestamp, pause_timestamp, total_paused_duration, display_order,
	created_at, updated_at, last_started_at, last_paused_at`

// ScanTimer scans a single timer from a database row
func ScanTimer(scanner Scanner) (*Timer, error) {
	timer := &Timer{}
	var soundID, soundURL, soundName sql.NullString
	var startTS, pauseTS sql.NullInt64
	var createdAt, updatedAt sql.NullString
	var lastStartedAt, lastPausedAt sql.NullString

	err := scanner.Scan(
		&timer.ID,
		&timer.TaskName,
		&timer.Hours,
		&timer.Minutes,
		&timer.Seconds,
		&timer.TotalSeconds,
		&timer.RemainingSeconds,
		&timer.IsActive,
		&timer.IsPaused,
		&soundID,
		&soundURL,
		&soundName,
		&timer.IsRepeating,
		&timer.RepeatInterval,
		&timer.IsNegative,
		&timer.IsMuted,
		&timer.PrimaryColor,
		&timer.SecondaryColor,
		&timer.FontFamily,
		&timer.FontSize,
		&startTS,
		&pauseTS,
		&timer.TotalPausedDuration,
		&timer.DisplayOrder,
		&createdAt,
		&updatedAt,
		&lastStartedAt,
		&lastPausedAt,
	)
	if err != nil {
		return nil, err
	}

	timer.SoundID = soundID.String
	timer.SoundURL = soundURL.String
	timer.SoundName = soundName.String
	timer.StartTimestamp = startTS.Int64
	timer.PauseTimestamp = pauseTS.Int64
	timer.CreatedAt = parseDBTime(createdAt.String)
	timer.UpdatedAt = parseDBTime(updatedAt.String)
	timer.LastStartedAt = parseDBTimePtr(lastStartedAt)
	timer.LastPausedAt = parseDBTimePtr(lastPausedAt)

	return timer, nil
}

// ScanTimers scans multiple timers from database rows
func ScanTimers(rows Rows) ([]*Timer, error) {
	var timers []*Timer
	for rows.Next() {
		timer, err := ScanTimer(rows)
		if err != nil {
			return nil, err
		}
		timers = append(timers, timer)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return timers, nil
}

// ScanSound scans a single sound from a database row
func ScanSound(scanner Scanner) (*Sound, error) {
	sound := &Sound{}
	var duration sql.NullFloat64
	var createdAt sql.NullString

	err := scanner.Scan(&sound.ID, &sound.Name, &sound.URL, &duration, &createdAt)
	if err != nil {
		return nil, err
	}

	sound.Duration = duration.Float64
	sound.CreatedAt = parseDBTime(createdAt.String)
	return sound, nil
}

// ScanSounds scans multiple sounds from database rows
func ScanSounds(rows Rows) ([]*Sound, error) {
	var sounds []*Sound
	for rows.Next() {
		sound, err := ScanSound(rows)
		if err != nil {
			return nil, err
		}
		sounds = append(sounds, sound)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sounds, nil
}

// ScanSession scans a single timer session from a database row
func ScanSession(scanner Scanner) (*TimerSession, error) {
	session := &TimerSession{}
	var startedAt sql.NullString
	var endedAt sql.NullString

	err := scanner.Scan(
		&session.ID,
		&session.TimerID,
		&startedAt,
		&endedAt,
		&session.DurationSeconds,
		&session.Completed,
	)
	if err != nil {
		return nil, err
	}

	session.StartedAt = parseDBTime(startedAt.String)
	session.EndedAt = parseDBTimePtr(endedAt)
	return session, nil
}

// ScanSessions scans multiple timer sessions from database rows
func ScanSessions(rows Rows) ([]*TimerSession, error) {
	var sessions []*TimerSession
	for rows.Next() {
		session, err := ScanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

// parseDBTime parses stored datetime strings, tolerating both RFC3339 values
// written by the application and SQLite's CURRENT_TIMESTAMP format.
func parseDBTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t.UTC()
	}
	return time.Time{}
}

func parseDBTimePtr(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t := parseDBTime(s.String)
	if t.IsZero() {
		return nil
	}
	return &t
}
