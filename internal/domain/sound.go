package domain

import "time"

// Sound is a reference to a playable completion sound. The timer core only
// reads sound records; upload and editing live outside of it.
type Sound struct {
	ID        string
	Name      string
	URL       string
	Duration  float64 // seconds, zero when unknown
	CreatedAt time.Time
}

// IsValid checks if the sound has the fields the core relies on.
func (s Sound) IsValid() bool {
	return s.ID != "" && s.URL != ""
}
