package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askk-pro/karyayana/internal/repository/sqlite"
)

func TestTimerMapperRoundTrip(t *testing.T) {
	mapper := NewTimerMapper()
	started := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	timer := Timer{
		ID:                  "timer-1",
		TaskName:            "Deep Work",
		Hours:               1,
		Minutes:             30,
		Seconds:             15,
		TotalSeconds:        5415,
		RemainingSeconds:    4000,
		IsActive:            true,
		SoundID:             "sound-1",
		SoundURL:            "file:///sounds/bell.mp3",
		SoundName:           "Bell",
		IsRepeating:         true,
		RepeatInterval:      300,
		PrimaryColor:        "#f59e0b",
		SecondaryColor:      "#fbbf24",
		FontFamily:          "mono",
		FontSize:            "text-2xl",
		StartTimestamp:      started.UnixMilli(),
		TotalPausedDuration: 25,
		DisplayOrder:        3,
		CreatedAt:           started,
		UpdatedAt:           started,
		LastStartedAt:       &started,
	}

	assert.Equal(t, timer, mapper.FromDatabase(mapper.ToDatabase(timer)))
}

func TestTimerMapperFromDatabaseSlice(t *testing.T) {
	mapper := NewTimerMapper()

	dbTimers := []*sqlite.Timer{
		{ID: "a", TaskName: "First"},
		{ID: "b", TaskName: "Second"},
	}

	timers := mapper.FromDatabaseSlice(dbTimers)
	require.Len(t, timers, 2)
	assert.Equal(t, "First", timers[0].TaskName)
	assert.Equal(t, "Second", timers[1].TaskName)
	assert.Empty(t, mapper.FromDatabaseSlice(nil))
}

func TestSessionMapperPreservesOpenState(t *testing.T) {
	mapper := NewSessionMapper()
	started := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	open := TimerSession{ID: "s1", TimerID: "t1", StartedAt: started}
	dbSession := mapper.ToDatabase(open)
	require.Nil(t, dbSession.EndedAt)
	assert.True(t, mapper.FromDatabase(dbSession).IsOpen())

	ended := started.Add(25 * time.Minute)
	closed := TimerSession{ID: "s2", TimerID: "t1", StartedAt: started, EndedAt: &ended, DurationSeconds: 1500, Completed: true}
	assert.False(t, mapper.FromDatabase(mapper.ToDatabase(closed)).IsOpen())
}

func TestSoundMapperFromDatabase(t *testing.T) {
	mapper := NewSoundMapper()
	created := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	sound := mapper.FromDatabase(sqlite.Sound{
		ID:        "sound-1",
		Name:      "Bell",
		URL:       "file:///sounds/bell.mp3",
		Duration:  2.5,
		CreatedAt: created,
	})

	assert.Equal(t, "Bell", sound.Name)
	assert.True(t, sound.IsValid())
	assert.False(t, Sound{Name: "no id or url"}.IsValid())
}
