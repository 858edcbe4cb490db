package attendance

import (
	"fmt"
	"math"
	"time"
)

// ShiftSchedule carries the operating timezone and shift constants, threaded
// in from configuration so the derivation is testable against any schedule.
type ShiftSchedule struct {
	Location              *time.Location
	StartHour             int
	StartMinute           int
	GraceMinutes          int
	HalfDayThresholdHours float64
}

func NewShiftSchedule(timezone, shiftStart string, graceMinutes int, halfDayThresholdHours float64) (ShiftSchedule, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return ShiftSchedule{}, fmt.Errorf("invalid operating timezone %q: %w", timezone, err)
	}
	start, err := time.Parse("15:04", shiftStart)
	if err != nil {
		return ShiftSchedule{}, fmt.Errorf("invalid shift start %q: %w", shiftStart, err)
	}
	return ShiftSchedule{
		Location:              loc,
		StartHour:             start.Hour(),
		StartMinute:           start.Minute(),
		GraceMinutes:          graceMinutes,
		HalfDayThresholdHours: halfDayThresholdHours,
	}, nil
}

// WorkDate maps an absolute timestamp to the calendar day it belongs to in
// the business's operating timezone. All day-keyed logic depends on this
// mapping being consistent.
func WorkDate(ts time.Time, loc *time.Location) string {
	return ts.In(loc).Format(WorkDateFormat)
}

// CalculateWorkHours returns the hour difference rounded to 2 decimal
// places. Computed from absolute timestamps, so it is correct across a day
// boundary.
func CalculateWorkHours(checkIn, checkOut time.Time) float64 {
	return math.Round(checkOut.Sub(checkIn).Hours()*100) / 100
}

// DetermineStatus derives the attendance status for a check-in. The half-day
// override comes first: a total below the threshold reports half_day even for
// an on-time check-in, while a late check-in with sufficient hours stays
// late. Minutes late are measured against shift start on the check-in's own
// work date.
func DetermineStatus(checkIn time.Time, workHours *float64, schedule ShiftSchedule) string {
	if workHours != nil && *workHours < schedule.HalfDayThresholdHours {
		return StatusHalfDay
	}

	local := checkIn.In(schedule.Location)
	shiftStart := time.Date(local.Year(), local.Month(), local.Day(),
		schedule.StartHour, schedule.StartMinute, 0, 0, schedule.Location)
	minutesLate := local.Sub(shiftStart).Minutes()
	if minutesLate > float64(schedule.GraceMinutes) {
		return StatusLate
	}
	return StatusPresent
}
