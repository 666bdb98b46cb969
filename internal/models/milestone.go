package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/qingka/internal/constants"
)

type MilestoneType string

const (
	CountUp   MilestoneType = "COUNT_UP"
	CountDown MilestoneType = "COUNT_DOWN"
)

func (t MilestoneType) Valid() bool {
	return t == CountUp || t == CountDown
}

// DaysMatterEvent is a date-anchored milestone. Day counts are computed, never stored.
type DaysMatterEvent struct {
	ID        string        `json:"id,omitempty"`
	Title     string        `json:"title"`
	Type      MilestoneType `json:"type"`
	StartDate string        `json:"startDate"` // YYYY-MM-DD
}

func (e *DaysMatterEvent) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("%w: title cannot be empty", ErrInvalidEvent)
	}
	if !e.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidEvent, e.Type)
	}
	if _, err := time.Parse(constants.DateFormat, e.StartDate); err != nil {
		return fmt.Errorf("%w: invalid start date (expected YYYY-MM-DD): %v", ErrInvalidEvent, err)
	}
	return nil
}
