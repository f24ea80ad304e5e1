package scheduling

import "fmt"

// Weekly grid convention shared by the compiler and every renderer:
// day 0 is Monday and slot 0 is the first period of the day. Nothing else in
// the codebase may re-derive this mapping.
const (
	DefaultDaysPerWeek = 5
	DefaultSlotsPerDay = 6
)

// Session duration policy: practical sessions block three contiguous slots,
// everything else takes one. A fixed constant, not configurable per subject.
const (
	TheoryDurationSlots    = 1
	PracticalDurationSlots = 3
)

// Room categories in the engine wire vocabulary.
const (
	CategoryLectureHall = "lecture_hall"
	CategoryComputerLab = "computer_lab"
)

var dayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DayName renders a day index for display.
func DayName(day int) string {
	if day < 0 || day >= len(dayNames) {
		return fmt.Sprintf("Day %d", day)
	}
	return dayNames[day]
}

// SlotLabel renders a slot index for display.
func SlotLabel(slot int) string {
	return fmt.Sprintf("Period %d", slot+1)
}
