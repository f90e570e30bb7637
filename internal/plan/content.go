package plan

import "sort"

// Item is implemented by the id-keyed repeated sub-items carried inside
// section content (status cards, status items, projects).
type Item interface {
	ItemID() string
	// patch returns a copy with one named field replaced. Unknown fields
	// and mistyped values leave the item unchanged.
	patch(field string, value any) Item
}

// StatusCard is one colored card in the executive summary status grid.
type StatusCard struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

func (c StatusCard) ItemID() string { return c.ID }

func (c StatusCard) patch(field string, value any) Item {
	switch field {
	case "title":
		c.Title = asString(value, c.Title)
	case "color":
		c.Color = asString(value, c.Color)
	case "description":
		c.Description = asString(value, c.Description)
	}
	return c
}

// StatusItem is one row in the overall-status list.
type StatusItem struct {
	ID          string `json:"id"`
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
	NextStep    string `json:"nextStep"`
	Status      string `json:"status"`
}

func (i StatusItem) ItemID() string { return i.ID }

func (i StatusItem) patch(field string, value any) Item {
	switch field {
	case "icon":
		i.Icon = asString(value, i.Icon)
	case "title":
		i.Title = asString(value, i.Title)
	case "description":
		i.Description = asString(value, i.Description)
	case "nextStep":
		i.NextStep = asString(value, i.NextStep)
	case "status":
		i.Status = asString(value, i.Status)
	}
	return i
}

// Project is one entry in the important-updates section.
type Project struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	ImageURL    string `json:"imageUrl,omitempty"`
	BgColor     string `json:"bgColor,omitempty"`
}

func (p Project) ItemID() string { return p.ID }

func (p Project) patch(field string, value any) Item {
	switch field {
	case "title":
		p.Title = asString(value, p.Title)
	case "description":
		p.Description = asString(value, p.Description)
	case "status":
		p.Status = asString(value, p.Status)
	case "priority":
		p.Priority = asString(value, p.Priority)
	case "imageUrl":
		p.ImageURL = asString(value, p.ImageURL)
	case "bgColor":
		p.BgColor = asString(value, p.BgColor)
	}
	return p
}

// listHolder is implemented by content variants that carry id-keyed item
// lists, keyed by their JSON field name.
type listHolder interface {
	SectionContent
	list(field string) ([]Item, bool)
	withList(field string, items []Item) (SectionContent, bool)
}

// GlanceContent backs the "This Week at a Glance" section.
type GlanceContent struct {
	Heading          string `json:"heading"`
	Text             string `json:"text"`
	StickyNotesImage string `json:"stickyNotesImage,omitempty"`
}

func (c GlanceContent) clone() SectionContent { return c }

// SummaryContent backs the executive summary: intro text, the status card
// grid, the overall-status list and the "Next:" list.
type SummaryContent struct {
	Text        string       `json:"text"`
	StatusCards []StatusCard `json:"statusCards"`
	StatusItems []StatusItem `json:"statusItems"`
	NextItems   []StatusItem `json:"nextItems,omitempty"`
}

func (c SummaryContent) clone() SectionContent {
	c.StatusCards = append([]StatusCard(nil), c.StatusCards...)
	c.StatusItems = append([]StatusItem(nil), c.StatusItems...)
	c.NextItems = append([]StatusItem(nil), c.NextItems...)
	return c
}

func (c SummaryContent) list(field string) ([]Item, bool) {
	switch field {
	case "statusCards":
		return boxItems(c.StatusCards), true
	case "statusItems":
		return boxItems(c.StatusItems), true
	case "nextItems":
		return boxItems(c.NextItems), true
	}
	return nil, false
}

func (c SummaryContent) withList(field string, items []Item) (SectionContent, bool) {
	switch field {
	case "statusCards":
		cards, ok := unboxItems[StatusCard](items)
		if !ok {
			return nil, false
		}
		c.StatusCards = cards
	case "statusItems":
		list, ok := unboxItems[StatusItem](items)
		if !ok {
			return nil, false
		}
		c.StatusItems = list
	case "nextItems":
		list, ok := unboxItems[StatusItem](items)
		if !ok {
			return nil, false
		}
		c.NextItems = list
	default:
		return nil, false
	}
	return c, true
}

// UpdatesContent backs the important-updates section.
type UpdatesContent struct {
	Projects []Project `json:"projects"`
}

func (c UpdatesContent) clone() SectionContent {
	c.Projects = append([]Project(nil), c.Projects...)
	return c
}

func (c UpdatesContent) list(field string) ([]Item, bool) {
	if field == "projects" {
		return boxItems(c.Projects), true
	}
	return nil, false
}

func (c UpdatesContent) withList(field string, items []Item) (SectionContent, bool) {
	if field != "projects" {
		return nil, false
	}
	projects, ok := unboxItems[Project](items)
	if !ok {
		return nil, false
	}
	c.Projects = projects
	return c, true
}

// BannerContent backs the milestones and additional sections: a subtitle
// over either a custom image or a placeholder banner.
type BannerContent struct {
	Subtitle        string `json:"subtitle"`
	BackgroundImage string `json:"backgroundImage,omitempty"`
	UseCustomImage  bool   `json:"useCustomImage"`
	OverlayText     string `json:"overlayText,omitempty"`
}

func (c BannerContent) clone() SectionContent { return c }

// ScheduleContent backs the time-off schedule: a month calendar with two
// independent holiday sets. Both sets are kept sorted ascending after every
// mutation. A day may appear in both; national wins at render time.
type ScheduleContent struct {
	Subtitle         string `json:"subtitle,omitempty"`
	Month            string `json:"month"`
	Year             int    `json:"year"`
	CompanyHolidays  []int  `json:"companyHolidays"`
	NationalHolidays []int  `json:"nationalHolidays"`
}

func (c ScheduleContent) clone() SectionContent {
	c.CompanyHolidays = append([]int(nil), c.CompanyHolidays...)
	c.NationalHolidays = append([]int(nil), c.NationalHolidays...)
	return c
}

// OverviewContent backs the segmented overview: an ordered list of button
// labels. Buttons have positional identity only; removing one shifts the
// indices of everything after it.
type OverviewContent struct {
	Buttons []string `json:"buttons"`
}

func (c OverviewContent) clone() SectionContent {
	c.Buttons = append([]string(nil), c.Buttons...)
	return c
}

// CustomContent backs free-form sections added at runtime.
type CustomContent struct {
	Heading  string `json:"heading,omitempty"`
	Text     string `json:"text,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

func (c CustomContent) clone() SectionContent { return c }

func boxItems[T Item](items []T) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

func unboxItems[T Item](items []Item) ([]T, bool) {
	out := make([]T, len(items))
	for i, it := range items {
		v, ok := it.(T)
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func asString(v any, fallback string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fallback
}

func asBool(v any, fallback bool) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return fallback
}

func asInt(v any, fallback int) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return fallback
}

// asIntSlice coerces a decoded JSON array to []int. Any non-numeric
// element fails the whole coercion so the caller can no-op.
func asIntSlice(v any) ([]int, bool) {
	switch s := v.(type) {
	case []int:
		return append([]int(nil), s...), true
	case []any:
		out := make([]int, 0, len(s))
		for _, e := range s {
			switch n := e.(type) {
			case float64:
				out = append(out, int(n))
			case int:
				out = append(out, n)
			default:
				return nil, false
			}
		}
		return out, true
	}
	return nil, false
}

func sortedDays(days []int) []int {
	out := make([]int, len(days))
	copy(out, days)
	sort.Ints(out)
	return out
}
