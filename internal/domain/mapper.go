package domain

import (
	"github.com/askk-pro/karyayana/internal/repository/sqlite"
)

// TimerMapper handles conversion between domain and database Timer models.
type TimerMapper struct{}

// NewTimerMapper creates a new TimerMapper instance.
func NewTimerMapper() *TimerMapper {
	return &TimerMapper{}
}

// ToDatabase converts a domain Timer to a database Timer.
func (m *TimerMapper) ToDatabase(timer Timer) sqlite.Timer {
	return sqlite.Timer{
		ID:                  timer.ID,
		TaskName:            timer.TaskName,
		Hours:               timer.Hours,
		Minutes:             timer.Minutes,
		Seconds:             timer.Seconds,
		TotalSeconds:        timer.TotalSeconds,
		RemainingSeconds:    timer.RemainingSeconds,
		IsActive:            timer.IsActive,
		IsPaused:            timer.IsPaused,
		SoundID:             timer.SoundID,
		SoundURL:            timer.SoundURL,
		SoundName:           timer.SoundName,
		IsRepeating:         timer.IsRepeating,
		RepeatInterval:      timer.RepeatInterval,
		IsNegative:          timer.IsNegative,
		IsMuted:             timer.IsMuted,
		PrimaryColor:        timer.PrimaryColor,
		SecondaryColor:      timer.SecondaryColor,
		FontFamily:          timer.FontFamily,
		FontSize:            timer.FontSize,
		StartTimestamp:      timer.StartTimestamp,
		PauseTimestamp:      timer.PauseTimestamp,
		TotalPausedDuration: timer.TotalPausedDuration,
		DisplayOrder:        timer.DisplayOrder,
		CreatedAt:           timer.CreatedAt,
		UpdatedAt:           timer.UpdatedAt,
		LastStartedAt:       timer.LastStartedAt,
		LastPausedAt:        timer.LastPausedAt,
	}
}

// FromDatabase converts a database Timer to a domain Timer.
func (m *TimerMapper) FromDatabase(dbTimer sqlite.Timer) Timer {
	return Timer{
		ID:                  dbTimer.ID,
		TaskName:            dbTimer.TaskName,
		Hours:               dbTimer.Hours,
		Minutes:             dbTimer.Minutes,
		Seconds:             dbTimer.Seconds,
		TotalSeconds:        dbTimer.TotalSeconds,
		RemainingSeconds:    dbTimer.RemainingSeconds,
		IsActive:            dbTimer.IsActive,
		IsPaused:            dbTimer.IsPaused,
		SoundID:             dbTimer.SoundID,
		SoundURL:            dbTimer.SoundURL,
		SoundName:           dbTimer.SoundName,
		IsRepeating:         dbTimer.IsRepeating,
		RepeatInterval:      dbTimer.RepeatInterval,
		IsNegative:          dbTimer.IsNegative,
		IsMuted:             dbTimer.IsMuted,
		PrimaryColor:        dbTimer.PrimaryColor,
		SecondaryColor:      dbTimer.SecondaryColor,
		FontFamily:          dbTimer.FontFamily,
		FontSize:            dbTimer.FontSize,
		StartTimestamp:      dbTimer.StartTimestamp,
		PauseTimestamp:      dbTimer.PauseTimestamp,
		TotalPausedDuration: dbTimer.TotalPausedDuration,
		DisplayOrder:        dbTimer.DisplayOrder,
		CreatedAt:           dbTimer.CreatedAt,
		UpdatedAt:           dbTimer.UpdatedAt,
		LastStartedAt:       dbTimer.LastStartedAt,
		LastPausedAt:        dbTimer.LastPausedAt,
	}
}

// FromDatabaseSlice converts a slice of database Timers to domain Timers.
func (m *TimerMapper) FromDatabaseSlice(dbTimers []*sqlite.Timer) []Timer {
	timers := make([]Timer, len(dbTimers))
	for i, dbTimer := range dbTimers {
		timers[i] = m.FromDatabase(*dbTimer)
	}
	return timers
}

// SoundMapper handles conversion between domain and database Sound models.
type SoundMapper struct{}

// NewSoundMapper creates a new SoundMapper instance.
func NewSoundMapper() *SoundMapper {
	return &SoundMapper{}
}

// FromDatabase converts a database Sound to a domain Sound.
func (m *SoundMapper) FromDatabase(dbSound sqlite.Sound) Sound {
	return Sound{
		ID:        dbSound.ID,
		Name:      dbSound.Name,
		URL:       dbSound.URL,
		Duration:  dbSound.Duration,
		CreatedAt: dbSound.CreatedAt,
	}
}

// FromDatabaseSlice converts a slice of database Sounds to domain Sounds.
func (m *SoundMapper) FromDatabaseSlice(dbSounds []*sqlite.Sound) []Sound {
	sounds := make([]Sound, len(dbSounds))
	for i, dbSound := range dbSounds {
		sounds[i] = m.FromDatabase(*dbSound)
	}
	return sounds
}

// SessionMapper handles conversion between domain and database TimerSession models.
type SessionMapper struct{}

// NewSessionMapper creates a new SessionMapper instance.
func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

// ToDatabase converts a domain TimerSession to a database TimerSession.
func (m *SessionMapper) ToDatabase(session TimerSession) sqlite.TimerSession {
	return sqlite.TimerSession{
		ID:              session.ID,
		TimerID:         session.TimerID,
		StartedAt:       session.StartedAt,
		EndedAt:         session.EndedAt,
		DurationSeconds: session.DurationSeconds,
		Completed:       session.Completed,
	}
}

// FromDatabase converts a database TimerSession to a domain TimerSession.
func (m *SessionMapper) FromDatabase(dbSession sqlite.TimerSession) TimerSession {
	return TimerSession{
		ID:              dbSession.ID,
		TimerID:         dbSession.TimerID,
		StartedAt:       dbSession.StartedAt,
		EndedAt:         dbSession.EndedAt,
		DurationSeconds: dbSession.DurationSeconds,
		Completed:       dbSession.Completed,
	}
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Timer   *TimerMapper
	Sound   *SoundMapper
	Session *SessionMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Timer:   NewTimerMapper(),
		Sound:   NewSoundMapper(),
		Session: NewSessionMapper(),
	}
}
