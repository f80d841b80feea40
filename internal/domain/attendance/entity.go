package attendance

import "time"

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusHalfDay Status = "half_day"
	StatusHoliday Status = "holiday"
	StatusLeave   Status = "leave"
)

type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Status     Status
	ClockIn    *time.Time
	ClockOut   *time.Time
	Notes      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Stats summarizes an employee's attendance over a window. Days the employee
// was on approved leave or a holiday do not count against presence.
type Stats struct {
	PresentDays int
	HalfDays    int
	AbsentDays  int
	CountedDays int // present + half + absent
}

// PresentEquivalent returns present days with half days weighted at 0.5,
// in hundredths to avoid float math at the repo boundary.
func (s Stats) PresentEquivalentHundredths() int {
	return s.PresentDays*100 + s.HalfDays*50
}
