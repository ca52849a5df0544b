package match

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusLive      Status = "live"
	StatusCompleted Status = "completed"
)

func ParseStatus(v string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(v)))
	switch status {
	case "":
		return StatusUpcoming, nil
	case StatusUpcoming, StatusLive, StatusCompleted:
		return status, nil
	default:
		return "", fmt.Errorf("invalid match status: %q", v)
	}
}

// Match is one fixture between two real-world clubs.
type Match struct {
	ID        string
	HomeTeam  string
	AwayTeam  string
	KickoffAt time.Time
	Status    Status
	HomeScore *int
	AwayScore *int
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if strings.TrimSpace(m.HomeTeam) == "" || strings.TrimSpace(m.AwayTeam) == "" {
		return fmt.Errorf("home and away teams are required")
	}
	if strings.EqualFold(strings.TrimSpace(m.HomeTeam), strings.TrimSpace(m.AwayTeam)) {
		return fmt.Errorf("home and away teams must differ")
	}
	if m.KickoffAt.IsZero() {
		return fmt.Errorf("kickoff time is required")
	}

	return nil
}

func (m Match) IsCompleted() bool {
	return m.Status == StatusCompleted
}

// SameDay reports whether the kickoff falls on the calendar day of date in loc.
func (m Match) SameDay(date time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.UTC
	}
	ky, km, kd := m.KickoffAt.In(loc).Date()
	dy, dm, dd := date.In(loc).Date()
	return ky == dy && km == dm && kd == dd
}
