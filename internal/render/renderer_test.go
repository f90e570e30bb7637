package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/planweave/planweave/internal/plan"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return r
}

func TestRegion_Header(t *testing.T) {
	r := newTestRenderer(t)
	doc := plan.DefaultDocument()

	region, err := r.Region(doc, RegionHeader)
	if err != nil {
		t.Fatalf("Region(header) error = %v", err)
	}
	if region.ID != "header" {
		t.Errorf("region id = %q, want header", region.ID)
	}
	if !strings.Contains(region.HTML, `id="header"`) {
		t.Error("header fragment missing addressable id")
	}
	if !strings.Contains(region.HTML, doc.EmailMeta.Company) {
		t.Error("header fragment missing company name")
	}
}

func TestRegion_Sections(t *testing.T) {
	r := newTestRenderer(t)
	doc := plan.DefaultDocument()

	for _, s := range doc.VisibleSections() {
		region, err := r.Region(doc, SectionRegionPrefix+s.ID)
		if err != nil {
			t.Fatalf("Region(section-%s) error = %v", s.ID, err)
		}
		if !strings.Contains(region.HTML, `id="section-`+s.ID+`"`) {
			t.Errorf("section %s fragment missing addressable id", s.ID)
		}
		if region.Title != s.Title {
			t.Errorf("region title = %q, want %q", region.Title, s.Title)
		}
	}
}

func TestRegion_HiddenSectionIsAbsent(t *testing.T) {
	r := newTestRenderer(t)
	doc := plan.DefaultDocument()
	doc, _ = plan.ToggleSectionVisibility(doc, "updates")

	_, err := r.Region(doc, "section-updates")
	if !errors.Is(err, ErrRegionNotFound) {
		t.Errorf("Region(hidden section) error = %v, want ErrRegionNotFound", err)
	}
}

func TestRegion_UnknownID(t *testing.T) {
	r := newTestRenderer(t)
	doc := plan.DefaultDocument()

	for _, id := range []string{"section-nope", "sidebar", ""} {
		if _, err := r.Region(doc, id); !errors.Is(err, ErrRegionNotFound) {
			t.Errorf("Region(%q) error = %v, want ErrRegionNotFound", id, err)
		}
	}
}

func TestRegion_SummaryUsesColorTokens(t *testing.T) {
	r := newTestRenderer(t)
	doc := plan.DefaultDocument()

	region, err := r.Region(doc, "section-summary")
	if err != nil {
		t.Fatalf("Region(section-summary) error = %v", err)
	}
	// The default document has green, yellow and red cards.
	for _, color := range []string{"green", "yellow", "red"} {
		if !strings.Contains(region.HTML, plan.CardBackgroundToken(color)) {
			t.Errorf("summary fragment missing %s background token", color)
		}
	}
}

func TestRegion_ScheduleRendersCalendar(t *testing.T) {
	r := newTestRenderer(t)
	doc := plan.DefaultDocument()
	doc, _ = plan.PatchSectionContent(doc, "schedule", "nationalHolidays", []int{10})
	doc, _ = plan.PatchSectionContent(doc, "schedule", "companyHolidays", []int{15})

	region, err := r.Region(doc, "section-schedule")
	if err != nil {
		t.Fatalf("Region(section-schedule) error = %v", err)
	}
	if !strings.Contains(region.HTML, "calendar-national") {
		t.Error("schedule fragment missing national day cell")
	}
	if !strings.Contains(region.HTML, "calendar-company") {
		t.Error("schedule fragment missing company day cell")
	}
	if !strings.Contains(region.HTML, "June 2025") {
		t.Error("schedule fragment missing month caption")
	}
}

func TestPage_ContainsAllVisibleRegions(t *testing.T) {
	r := newTestRenderer(t)
	doc := plan.DefaultDocument()
	doc, _ = plan.ToggleSectionVisibility(doc, "overview")

	html, err := r.Page(doc)
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}

	if !strings.Contains(html, `id="header"`) || !strings.Contains(html, `id="footer"`) {
		t.Error("page missing structural regions")
	}
	for _, s := range doc.Sections {
		has := strings.Contains(html, `id="section-`+s.ID+`"`)
		if s.Visible && !has {
			t.Errorf("page missing visible section %s", s.ID)
		}
		if !s.Visible && has {
			t.Errorf("page contains hidden section %s", s.ID)
		}
	}
}
