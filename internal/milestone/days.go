package milestone

import (
	"fmt"
	"time"

	"github.com/julianstephens/qingka/internal/logger"
	"github.com/julianstephens/qingka/internal/models"
	"github.com/julianstephens/qingka/internal/utils"
)

// elapsed returns floor((today - start) / 1 day) with both dates taken as
// midnight in today's location.
func elapsed(e models.DaysMatterEvent, today time.Time) (int, bool) {
	start, err := utils.ParseDateInLocation(e.StartDate, today.Location())
	if err != nil {
		logger.Warn("Ignoring milestone with invalid start date", "id", e.ID, "startDate", e.StartDate)
		return 0, false
	}
	return utils.DaysBetween(start, utils.Midnight(today)), true
}

// ComputeElapsedDays returns |today - start| in days for COUNT_UP events.
// COUNT_DOWN events always yield 0; use DisplayDays for what is shown.
func ComputeElapsedDays(e models.DaysMatterEvent, today time.Time) int {
	if e.Type != models.CountUp {
		return 0
	}
	days, ok := elapsed(e, today)
	if !ok {
		return 0
	}
	if days < 0 {
		return -days
	}
	return days
}

// RemainingDays returns the days left until start, or 0 once it has passed.
func RemainingDays(e models.DaysMatterEvent, today time.Time) int {
	days, ok := elapsed(e, today)
	if !ok || days >= 0 {
		return 0
	}
	return -days
}

// DisplayDays is the number shown next to an event: days since for
// COUNT_UP, days remaining for COUNT_DOWN.
func DisplayDays(e models.DaysMatterEvent, today time.Time) int {
	if e.Type == models.CountDown {
		return RemainingDays(e, today)
	}
	return ComputeElapsedDays(e, today)
}

// Describe renders the counter line shown for an event, e.g. "复查 还有 10 天".
func Describe(e models.DaysMatterEvent, today time.Time) string {
	n := DisplayDays(e, today)
	if e.Type == models.CountDown {
		return fmt.Sprintf("%s 还有 %d 天", e.Title, n)
	}
	return fmt.Sprintf("%s 已经 %d 天", e.Title, n)
}
