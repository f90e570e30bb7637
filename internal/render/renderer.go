package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/planweave/planweave/internal/plan"
)

//go:embed templates/*.html
var templatesFS embed.FS

// ErrRegionNotFound is returned when a region id resolves to nothing: an
// unknown id, or a section that is currently hidden. Hidden sections are
// absent, not rendered at zero size.
var ErrRegionNotFound = errors.New("region not found")

// Region ids for the two structural regions outside the section list.
const (
	RegionHeader = "header"
	RegionFooter = "footer"
)

// SectionRegionPrefix joins section ids to their region ids.
const SectionRegionPrefix = "section-"

// Region is one exportable rendered subtree.
type Region struct {
	ID    string
	Title string
	HTML  string
}

// Renderer renders a document to region-addressable HTML fragments. The
// visual output is deliberately plain; it exists so the export pipeline
// has something real to rasterize, not to reproduce the editor's styling.
type Renderer struct {
	templates *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	funcs := template.FuncMap{
		"cardBackground": plan.CardBackgroundToken,
		"cardText":       plan.CardTextToken,
		"statusGlyph":    plan.StatusGlyph,
		"glyphColor":     plan.StatusGlyphColor,
		"monthGrid":      plan.GenerateMonthGrid,
	}

	tmpl, err := template.New("planweave").Funcs(funcs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

// Region resolves a region id against the document and renders it. Valid
// ids are "header", "footer" and "section-<sectionId>" for visible
// sections.
func (r *Renderer) Region(doc plan.Document, regionID string) (Region, error) {
	switch regionID {
	case RegionHeader:
		html, err := r.execute("header.html", headerData{Meta: doc.EmailMeta})
		if err != nil {
			return Region{}, err
		}
		return Region{ID: RegionHeader, Title: "Header", HTML: html}, nil

	case RegionFooter:
		html, err := r.execute("footer.html", headerData{Meta: doc.EmailMeta})
		if err != nil {
			return Region{}, err
		}
		return Region{ID: RegionFooter, Title: "Footer", HTML: html}, nil
	}

	sectionID, ok := strings.CutPrefix(regionID, SectionRegionPrefix)
	if !ok {
		return Region{}, fmt.Errorf("%q: %w", regionID, ErrRegionNotFound)
	}
	section, ok := doc.Section(sectionID)
	if !ok || !section.Visible {
		return Region{}, fmt.Errorf("%q: %w", regionID, ErrRegionNotFound)
	}

	html, err := r.renderSection(section)
	if err != nil {
		return Region{}, err
	}
	return Region{ID: regionID, Title: section.Title, HTML: html}, nil
}

// Page renders the whole document: header, visible sections in order,
// footer.
func (r *Renderer) Page(doc plan.Document) (string, error) {
	var sections []template.HTML
	for _, s := range doc.VisibleSections() {
		html, err := r.renderSection(s)
		if err != nil {
			return "", err
		}
		sections = append(sections, template.HTML(html))
	}

	return r.execute("page.html", pageData{Meta: doc.EmailMeta, Sections: sections})
}

func (r *Renderer) renderSection(section plan.Section) (string, error) {
	name, ok := sectionTemplates[section.Kind]
	if !ok {
		name = "section_custom.html"
	}
	return r.execute(name, sectionData{Section: section, Content: section.Content, Styles: effectiveStyles(section)})
}

var sectionTemplates = map[plan.SectionKind]string{
	plan.KindGlance:     "section_glance.html",
	plan.KindSummary:    "section_summary.html",
	plan.KindUpdates:    "section_updates.html",
	plan.KindMilestones: "section_banner.html",
	plan.KindAdditional: "section_banner.html",
	plan.KindSchedule:   "section_schedule.html",
	plan.KindOverview:   "section_overview.html",
	plan.KindCustom:     "section_custom.html",
}

type headerData struct {
	Meta plan.EmailMeta
}

type pageData struct {
	Meta     plan.EmailMeta
	Sections []template.HTML
}

type sectionData struct {
	Section plan.Section
	Content any
	Styles  plan.SectionStyles
}

func effectiveStyles(section plan.Section) plan.SectionStyles {
	if section.Styles != nil {
		return *section.Styles
	}
	return plan.SectionStyles{BackgroundColor: "#FFFFFF", TextColor: "#111827"}
}

func (r *Renderer) execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}
