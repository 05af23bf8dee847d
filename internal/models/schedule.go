package models

// Course is a lesson placed in the weekly timetable.
type Course struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Teacher   string `json:"teacher"`
	Classroom string `json:"classroom"`
	Color     string `json:"color"`
}

// ScheduleSlot holds the courses of one day and time range.
type ScheduleSlot struct {
	Day      string   `json:"day"`
	TimeSlot string   `json:"timeSlot"`
	Courses  []Course `json:"courses"`
}

// Schedule is the backend wire shape: day name -> time slot -> courses.
type Schedule map[string]map[string][]Course

// Slots flattens the schedule for the given days and time slots, keeping grid order.
// Missing cells yield a slot with no courses.
func (s Schedule) Slots(days, timeSlots []string) []ScheduleSlot {
	slots := make([]ScheduleSlot, 0, len(days)*len(timeSlots))
	for _, slot := range timeSlots {
		for _, day := range days {
			courses := s[day][slot]
			slots = append(slots, ScheduleSlot{Day: day, TimeSlot: slot, Courses: courses})
		}
	}
	return slots
}
