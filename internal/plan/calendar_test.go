package plan

import (
	"reflect"
	"testing"
)

func TestGenerateMonthGrid_Shape(t *testing.T) {
	tests := []struct {
		name       string
		month      string
		year       int
		wantBlanks int
		wantDays   int
	}{
		{name: "June 2025 starts on Sunday", month: "June", year: 2025, wantBlanks: 0, wantDays: 30},
		{name: "May 2025 starts on Thursday", month: "May", year: 2025, wantBlanks: 4, wantDays: 31},
		{name: "February 2024 leap year", month: "February", year: 2024, wantBlanks: 4, wantDays: 29},
		{name: "February 2025 non-leap", month: "February", year: 2025, wantBlanks: 6, wantDays: 28},
		{name: "unknown month falls back to January", month: "Juneuary", year: 2025, wantBlanks: 3, wantDays: 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells := GenerateMonthGrid(tt.month, tt.year, nil, nil)

			if got := len(cells); got != tt.wantBlanks+tt.wantDays {
				t.Fatalf("len(cells) = %d, want %d", got, tt.wantBlanks+tt.wantDays)
			}
			for i := 0; i < tt.wantBlanks; i++ {
				if !cells[i].Blank {
					t.Errorf("cells[%d].Blank = false, want true", i)
				}
				if cells[i].Day != 0 {
					t.Errorf("cells[%d].Day = %d, want 0", i, cells[i].Day)
				}
			}
			for i := tt.wantBlanks; i < len(cells); i++ {
				if cells[i].Blank {
					t.Errorf("cells[%d].Blank = true, want false", i)
				}
				if want := i - tt.wantBlanks + 1; cells[i].Day != want {
					t.Errorf("cells[%d].Day = %d, want %d", i, cells[i].Day, want)
				}
			}
		})
	}
}

func TestGenerateMonthGrid_Categories(t *testing.T) {
	cells := GenerateMonthGrid("June", 2025, []int{15, 25}, []int{10, 20})

	categories := make(map[int]DayCategory)
	for _, c := range cells {
		if !c.Blank {
			categories[c.Day] = c.Category
		}
	}

	if got := categories[10]; got != CategoryNational {
		t.Errorf("day 10 category = %q, want national", got)
	}
	if got := categories[15]; got != CategoryCompany {
		t.Errorf("day 15 category = %q, want company", got)
	}
	if got := categories[1]; got != CategoryPlain {
		t.Errorf("day 1 category = %q, want plain", got)
	}
}

func TestGenerateMonthGrid_NationalPrecedence(t *testing.T) {
	// Day 12 sits in both sets; national must win.
	cells := GenerateMonthGrid("March", 2025, []int{12}, []int{12})

	for _, c := range cells {
		if c.Day == 12 && c.Category != CategoryNational {
			t.Errorf("day 12 category = %q, want national", c.Category)
		}
	}
}

func TestGenerateMonthGrid_Deterministic(t *testing.T) {
	a := GenerateMonthGrid("August", 2026, []int{3}, []int{4})
	b := GenerateMonthGrid("August", 2026, []int{3}, []int{4})

	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs produced different grids")
	}
}

func TestGeneratePickerGrid(t *testing.T) {
	cells := GeneratePickerGrid("June", 2025, []int{5, 12})

	if len(cells) != 30 {
		t.Fatalf("len(cells) = %d, want 30", len(cells))
	}
	for _, c := range cells {
		want := c.Day == 5 || c.Day == 12
		if c.Selected != want {
			t.Errorf("day %d selected = %v, want %v", c.Day, c.Selected, want)
		}
	}
}

func TestToggleDay(t *testing.T) {
	tests := []struct {
		name string
		days []int
		day  int
		want []int
	}{
		{name: "add keeps sorted order", days: []int{5, 20}, day: 10, want: []int{5, 10, 20}},
		{name: "remove existing", days: []int{5, 10, 20}, day: 10, want: []int{5, 20}},
		{name: "add to empty", days: nil, day: 7, want: []int{7}},
		{name: "unsorted input comes back sorted", days: []int{20, 5}, day: 1, want: []int{1, 5, 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToggleDay(tt.days, tt.day); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ToggleDay(%v, %d) = %v, want %v", tt.days, tt.day, got, tt.want)
			}
		})
	}
}
