package attendance

const (
	StatusPresent = "present"
	StatusLate    = "late"
	StatusHalfDay = "half_day"
	StatusAbsent  = "absent"
)

// WorkDateFormat is the calendar-day key every record is stored under.
const WorkDateFormat = "2006-01-02"
