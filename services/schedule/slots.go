package schedule

import (
	"time"

	"bookly/models"
)

// GenerateSlots enumerates candidate start instants for one day.
//
// Each block is walked on its own, in input order, in steps of durationMinutes;
// a candidate is kept while it still ends within the block. Blocks are never
// merged, so overlapping blocks can produce overlapping candidates. An inactive
// day yields nothing. durationMinutes must be positive.
func GenerateSlots(day models.DaySchedule, durationMinutes int, date time.Time) []time.Time {
	if !day.IsActive || durationMinutes <= 0 {
		return nil
	}

	var out []time.Time
	for _, block := range day.Slots {
		start, err := ParseClock(block.Start)
		if err != nil {
			continue
		}
		end, err := ParseClock(block.End)
		if err != nil || start >= end {
			continue
		}
		for m := start; m+durationMinutes <= end; m += durationMinutes {
			out = append(out, At(date, m))
		}
	}
	return out
}

// Overlaps is the half-open interval test: [aStart,aEnd) and [bStart,bEnd)
// share at least one instant.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
