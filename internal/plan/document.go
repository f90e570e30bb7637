package plan

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Document is the full in-memory template state: email-level metadata plus
// the ordered section list. Section order is significant; it defines both
// render order and export order.
type Document struct {
	EmailMeta EmailMeta `json:"emailMeta"`
	Sections  []Section `json:"sections"`
}

// EmailMeta holds the header-level fields of the weekly plan email.
// All values are free-form strings; the editor does not validate URLs or
// colors.
type EmailMeta struct {
	Title          string `json:"title"`
	DateRange      string `json:"dateRange"`
	Company        string `json:"company"`
	HeaderBgImage  string `json:"headerBgImage"`
	LogoImage      string `json:"logoImage,omitempty"`
	OverlayBgColor string `json:"overlayBgColor,omitempty"`
	TitleColor     string `json:"titleColor,omitempty"`
	DateRangeColor string `json:"dateRangeColor,omitempty"`
}

// SectionStyles are optional per-section presentation overrides consumed by
// the renderer.
type SectionStyles struct {
	BackgroundColor string `json:"backgroundColor,omitempty"`
	TextColor       string `json:"textColor,omitempty"`
	BorderColor     string `json:"borderColor,omitempty"`
}

// SectionKind tags the shape of a section's content. The kind is chosen at
// section-creation time and carried with the section from then on.
type SectionKind string

const (
	KindGlance     SectionKind = "glance"
	KindSummary    SectionKind = "summary"
	KindUpdates    SectionKind = "updates"
	KindMilestones SectionKind = "milestones"
	KindSchedule   SectionKind = "schedule"
	KindOverview   SectionKind = "overview"
	KindAdditional SectionKind = "additional"
	KindCustom     SectionKind = "custom"
)

// Section is one independently toggleable, styleable block of the template.
// ID is the join key for rendering, export-region lookup and persistence.
type Section struct {
	ID      string
	Title   string
	Visible bool
	Kind    SectionKind
	Content SectionContent
	Styles  *SectionStyles
}

// SectionContent is the content variant carried by a Section. The section's
// Kind field says which concrete type is present. Implementations are value
// types; mutations always operate on deep copies.
type SectionContent interface {
	clone() SectionContent
}

type sectionJSON struct {
	ID      string          `json:"id"`
	Title   string          `json:"title"`
	Visible bool            `json:"visible"`
	Kind    SectionKind     `json:"kind,omitempty"`
	Content json.RawMessage `json:"content"`
	Styles  *SectionStyles  `json:"styles,omitempty"`
}

// MarshalJSON encodes the section with an explicit kind tag next to the
// content payload.
func (s Section) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(s.Content)
	if err != nil {
		return nil, err
	}
	return json.Marshal(sectionJSON{
		ID:      s.ID,
		Title:   s.Title,
		Visible: s.Visible,
		Kind:    s.Kind,
		Content: raw,
		Styles:  s.Styles,
	})
}

// UnmarshalJSON decodes a section, selecting the content type from the kind
// tag. Payloads produced by the original editor carry no tag; for those the
// kind is recovered once from the well-known ids (and the custom-section-
// prefix) and tagged from then on.
func (s *Section) UnmarshalJSON(data []byte) error {
	var sj sectionJSON
	if err := json.Unmarshal(data, &sj); err != nil {
		return err
	}

	kind := sj.Kind
	if kind == "" {
		kind = kindForLegacyID(sj.ID)
	}

	content, err := decodeContent(kind, sj.Content)
	if err != nil {
		return fmt.Errorf("section %q: %w", sj.ID, err)
	}

	s.ID = sj.ID
	s.Title = sj.Title
	s.Visible = sj.Visible
	s.Kind = kind
	s.Content = content
	s.Styles = sj.Styles
	return nil
}

func decodeContent(kind SectionKind, raw json.RawMessage) (SectionContent, error) {
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}

	switch kind {
	case KindGlance:
		var c GlanceContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
		return c, nil
	case KindSummary:
		var c SummaryContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
		return c, nil
	case KindUpdates:
		var c UpdatesContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
		return c, nil
	case KindMilestones, KindAdditional:
		var c BannerContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
		return c, nil
	case KindSchedule:
		var c ScheduleContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
		c.CompanyHolidays = sortedDays(c.CompanyHolidays)
		c.NationalHolidays = sortedDays(c.NationalHolidays)
		return c, nil
	case KindOverview:
		var c OverviewContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
		return c, nil
	default:
		var c CustomContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
		return c, nil
	}
}

// kindForLegacyID maps the fixed section ids of untagged payloads to kinds.
func kindForLegacyID(id string) SectionKind {
	switch id {
	case "glance":
		return KindGlance
	case "summary":
		return KindSummary
	case "updates":
		return KindUpdates
	case "milestones":
		return KindMilestones
	case "schedule":
		return KindSchedule
	case "overview":
		return KindOverview
	case "additional":
		return KindAdditional
	}
	if strings.HasPrefix(id, CustomSectionPrefix) {
		return KindCustom
	}
	return KindCustom
}

// Clone returns a deep copy of the document. Mutations never share slices
// or content values with their input.
func (d Document) Clone() Document {
	out := Document{EmailMeta: d.EmailMeta}
	out.Sections = make([]Section, len(d.Sections))
	for i, s := range d.Sections {
		out.Sections[i] = s.Clone()
	}
	return out
}

// Clone returns a deep copy of the section.
func (s Section) Clone() Section {
	out := s
	if s.Content != nil {
		out.Content = s.Content.clone()
	}
	if s.Styles != nil {
		st := *s.Styles
		out.Styles = &st
	}
	return out
}

// Section returns the section with the given id, or false if absent.
func (d Document) Section(id string) (Section, bool) {
	for _, s := range d.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// VisibleSections returns the visible sections in document order.
func (d Document) VisibleSections() []Section {
	var out []Section
	for _, s := range d.Sections {
		if s.Visible {
			out = append(out, s)
		}
	}
	return out
}
