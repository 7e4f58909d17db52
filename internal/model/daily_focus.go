package model

import (
	"time"
)

const (
	MoodGreat       = "great"
	MoodGood        = "good"
	MoodOkay        = "okay"
	MoodOverwhelmed = "overwhelmed"
	MoodDistracted  = "distracted"
)

const (
	EnergyLevelMin = 1
	EnergyLevelMax = 5
)

var Moods = []string{MoodGreat, MoodGood, MoodOkay, MoodOverwhelmed, MoodDistracted}

// DailyFocus is a user's check-in for one calendar day.
type DailyFocus struct {
	ID            int64     `db:"id" json:"id"`
	UserID        string    `db:"user_id" json:"userId"`
	FocusDate     time.Time `db:"focus_date" json:"focusDate"`
	TopPriorityID *int64    `db:"top_priority_id" json:"topPriorityId"`
	Mood          *string   `db:"mood" json:"mood"`
	EnergyLevel   *int      `db:"energy_level" json:"energyLevel"`
	Notes         *string   `db:"notes" json:"notes"`
}

// FocusPatch holds the check-in fields a write supplies. Nil means unchanged.
type FocusPatch struct {
	TopPriorityID *int64
	Mood          *string
	EnergyLevel   *int
	Notes         *string
}

// DayWindow is the closed interval [Start, End] covering one local calendar day.
type DayWindow struct {
	Start time.Time
	End   time.Time
}

// DayOf returns the window from local midnight to 23:59:59.999 of t's day in t's location.
func DayOf(t time.Time) DayWindow {
	y, m, d := t.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	end := time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
	return DayWindow{Start: start, End: end}
}

func (w DayWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}
