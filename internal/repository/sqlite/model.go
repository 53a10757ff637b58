package sqlite

import "time"

// Timer represents a timer row. Field semantics mirror the domain model; the
// row keeps millisecond epoch timestamps for start/pause (zero means NULL).
type Timer struct {
	ID       string
	TaskName string

	Hours            int
	Minutes          int
	Seconds          int
	TotalSeconds     int
	RemainingSeconds int

	IsActive bool
	IsPaused bool

	SoundID   string
	SoundURL  string
	SoundName string

	IsRepeating    bool
	RepeatInterval int
	IsNegative     bool
	IsMuted        bool

	PrimaryColor   string
	SecondaryColor string
	FontFamily     string
	FontSize       string

	StartTimestamp      int64
	PauseTimestamp      int64
	TotalPausedDuration int

	DisplayOrder int

	CreatedAt     time.Time
	UpdatedAt     time.Time
	LastStartedAt *time.Time
	LastPausedAt  *time.Time
}

// Sound represents a sound row. The timer core never writes these.
type Sound struct {
	ID        string
	Name      string
	URL       string
	Duration  float64
	CreatedAt time.Time
}

// TimerSession represents a single run of a timer.
type TimerSession struct {
	ID              string
	TimerID         string
	StartedAt       time.Time
	EndedAt         *time.Time
	DurationSeconds int
	Completed       bool
}

// DisplayOrder pairs a timer id with its target list position for batch
// reorder writes.
type DisplayOrder struct {
	ID    string
	Order int
}
