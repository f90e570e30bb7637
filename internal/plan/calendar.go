package plan

import (
	"sort"
	"time"
)

// DayCategory classifies a calendar day cell by holiday-set membership.
type DayCategory string

const (
	CategoryPlain    DayCategory = "plain"
	CategoryCompany  DayCategory = "company"
	CategoryNational DayCategory = "national"
)

// DayCell is one cell of a rendered month grid. Blank cells pad the first
// week so day 1 lands on its weekday column; they carry no day number.
type DayCell struct {
	Day      int         `json:"day,omitempty"`
	Blank    bool        `json:"blank,omitempty"`
	Category DayCategory `json:"category,omitempty"`
}

// PickerCell is one cell of the interactive date-picker grid.
type PickerCell struct {
	Day      int  `json:"day,omitempty"`
	Blank    bool `json:"blank,omitempty"`
	Selected bool `json:"selected,omitempty"`
}

// GenerateMonthGrid lays out one month as an ordered cell sequence:
// the weekday index of day 1 (Sunday = 0) leading blank cells, then one
// cell per day. A day present in both holiday sets is national; that
// tie-break is fixed. Pure and deterministic.
func GenerateMonthGrid(month string, year int, companyHolidays, nationalHolidays []int) []DayCell {
	first, days := monthExtent(month, year)

	company := daySet(companyHolidays)
	national := daySet(nationalHolidays)

	cells := make([]DayCell, 0, first+days)
	for i := 0; i < first; i++ {
		cells = append(cells, DayCell{Blank: true})
	}
	for day := 1; day <= days; day++ {
		category := CategoryPlain
		if company[day] {
			category = CategoryCompany
		}
		if national[day] {
			category = CategoryNational
		}
		cells = append(cells, DayCell{Day: day, Category: category})
	}
	return cells
}

// GeneratePickerGrid lays out the same month shape against one flat
// selected-day set, for the date-picker control.
func GeneratePickerGrid(month string, year int, selected []int) []PickerCell {
	first, days := monthExtent(month, year)
	sel := daySet(selected)

	cells := make([]PickerCell, 0, first+days)
	for i := 0; i < first; i++ {
		cells = append(cells, PickerCell{Blank: true})
	}
	for day := 1; day <= days; day++ {
		cells = append(cells, PickerCell{Day: day, Selected: sel[day]})
	}
	return cells
}

// ToggleDay flips one day's membership in a selected-day set and returns
// the set sorted ascending.
func ToggleDay(days []int, day int) []int {
	out := make([]int, 0, len(days)+1)
	found := false
	for _, d := range days {
		if d == day {
			found = true
			continue
		}
		out = append(out, d)
	}
	if !found {
		out = append(out, day)
	}
	sort.Ints(out)
	return out
}

// monthExtent returns the weekday index of day 1 (Sunday = 0) and the
// number of days in the month. An unrecognized month name falls back to
// January rather than failing; malformed values never raise errors here.
func monthExtent(month string, year int) (firstWeekday, daysInMonth int) {
	m := monthByName(month)
	first := time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
	return int(first.Weekday()), first.AddDate(0, 1, -1).Day()
}

func monthByName(name string) time.Month {
	for m := time.January; m <= time.December; m++ {
		if m.String() == name {
			return m
		}
	}
	return time.January
}

func daySet(days []int) map[int]bool {
	set := make(map[int]bool, len(days))
	for _, d := range days {
		set[d] = true
	}
	return set
}
