package plan

// Mutation interface for the document model. Every operation is a pure
// transformation: it returns a new Document and never touches its input.
// Lookups that miss (unknown section, item, field or index) are silent
// no-ops; the second return value reports whether the operation applied so
// callers can log it, but nothing here ever fails.

// ItemFactory builds a new repeated sub-item carrying the generated id.
type ItemFactory func(id string) Item

// ToggleSectionVisibility flips one section's visible flag.
func ToggleSectionVisibility(doc Document, sectionID string) (Document, bool) {
	return withSection(doc, sectionID, func(s Section) (Section, bool) {
		s.Visible = !s.Visible
		return s, true
	})
}

// PatchSectionContent replaces one named field inside a section's content,
// preserving all other fields.
func PatchSectionContent(doc Document, sectionID, field string, value any) (Document, bool) {
	return withSection(doc, sectionID, func(s Section) (Section, bool) {
		content, ok := patchField(s.Content, field, value)
		if !ok {
			return s, false
		}
		s.Content = content
		return s, true
	})
}

// StylePatch carries the style fields to merge; nil fields are left alone.
type StylePatch struct {
	BackgroundColor *string `json:"backgroundColor,omitempty"`
	TextColor       *string `json:"textColor,omitempty"`
	BorderColor     *string `json:"borderColor,omitempty"`
}

// PatchSectionStyles shallow-merges the patch into the section's styles.
func PatchSectionStyles(doc Document, sectionID string, patch StylePatch) (Document, bool) {
	return withSection(doc, sectionID, func(s Section) (Section, bool) {
		styles := SectionStyles{}
		if s.Styles != nil {
			styles = *s.Styles
		}
		if patch.BackgroundColor != nil {
			styles.BackgroundColor = *patch.BackgroundColor
		}
		if patch.TextColor != nil {
			styles.TextColor = *patch.TextColor
		}
		if patch.BorderColor != nil {
			styles.BorderColor = *patch.BorderColor
		}
		s.Styles = &styles
		return s, true
	})
}

// AddListItem appends a factory-built item, with a fresh id, to the named
// item list of a section.
func AddListItem(doc Document, sectionID, field string, factory ItemFactory) (Document, bool) {
	return withSection(doc, sectionID, func(s Section) (Section, bool) {
		holder, ok := s.Content.(listHolder)
		if !ok {
			return s, false
		}
		items, ok := holder.list(field)
		if !ok {
			return s, false
		}
		item := factory(NewItemID())
		if item == nil {
			return s, false
		}
		content, ok := holder.withList(field, append(items, item))
		if !ok {
			return s, false
		}
		s.Content = content
		return s, true
	})
}

// UpdateListItem replaces one field of the item with the given id inside
// the named list. Other items keep their ids, order and fields.
func UpdateListItem(doc Document, sectionID, field, itemID, itemField string, value any) (Document, bool) {
	return withSection(doc, sectionID, func(s Section) (Section, bool) {
		holder, ok := s.Content.(listHolder)
		if !ok {
			return s, false
		}
		items, ok := holder.list(field)
		if !ok {
			return s, false
		}
		found := false
		for i, it := range items {
			if it.ItemID() == itemID {
				items[i] = it.patch(itemField, value)
				found = true
				break
			}
		}
		if !found {
			return s, false
		}
		content, ok := holder.withList(field, items)
		if !ok {
			return s, false
		}
		s.Content = content
		return s, true
	})
}

// RemoveListItem removes the item with the given id from the named list.
func RemoveListItem(doc Document, sectionID, field, itemID string) (Document, bool) {
	return withSection(doc, sectionID, func(s Section) (Section, bool) {
		holder, ok := s.Content.(listHolder)
		if !ok {
			return s, false
		}
		items, ok := holder.list(field)
		if !ok {
			return s, false
		}
		kept := make([]Item, 0, len(items))
		for _, it := range items {
			if it.ItemID() != itemID {
				kept = append(kept, it)
			}
		}
		if len(kept) == len(items) {
			return s, false
		}
		content, ok := holder.withList(field, kept)
		if !ok {
			return s, false
		}
		s.Content = content
		return s, true
	})
}

// AddButton appends a button label to an overview section.
func AddButton(doc Document, sectionID, label string) (Document, bool) {
	return withButtons(doc, sectionID, func(buttons []string) ([]string, bool) {
		return append(buttons, label), true
	})
}

// UpdateButton replaces the button at the given position. Buttons have
// positional identity only.
func UpdateButton(doc Document, sectionID string, index int, value string) (Document, bool) {
	return withButtons(doc, sectionID, func(buttons []string) ([]string, bool) {
		if index < 0 || index >= len(buttons) {
			return nil, false
		}
		buttons[index] = value
		return buttons, true
	})
}

// RemoveButton removes the button at the given position. Every button after
// it shifts down one index.
func RemoveButton(doc Document, sectionID string, index int) (Document, bool) {
	return withButtons(doc, sectionID, func(buttons []string) ([]string, bool) {
		if index < 0 || index >= len(buttons) {
			return nil, false
		}
		return append(buttons[:index], buttons[index+1:]...), true
	})
}

// AddSection appends a new section with a fresh prefixed id and the given
// kind and content template. Returns the new document and the added section.
func AddSection(doc Document, title string, kind SectionKind, content SectionContent) (Document, Section) {
	if content == nil {
		content = CustomContent{}
	}
	section := Section{
		ID:      NewSectionID(),
		Title:   title,
		Visible: true,
		Kind:    kind,
		Content: content.clone(),
	}
	out := doc.Clone()
	out.Sections = append(out.Sections, section)
	return out, section
}

// RemoveSection deletes the section with the given id. Other sections keep
// their ids and relative order.
func RemoveSection(doc Document, sectionID string) (Document, bool) {
	out := doc.Clone()
	kept := out.Sections[:0]
	for _, s := range out.Sections {
		if s.ID != sectionID {
			kept = append(kept, s)
		}
	}
	applied := len(kept) != len(out.Sections)
	out.Sections = kept
	return out, applied
}

// SetEmailMeta replaces the email-level metadata wholesale.
func SetEmailMeta(doc Document, meta EmailMeta) Document {
	out := doc.Clone()
	out.EmailMeta = meta
	return out
}

func withSection(doc Document, sectionID string, fn func(Section) (Section, bool)) (Document, bool) {
	out := doc.Clone()
	for i, s := range out.Sections {
		if s.ID != sectionID {
			continue
		}
		next, applied := fn(s)
		if !applied {
			return doc, false
		}
		out.Sections[i] = next
		return out, true
	}
	return doc, false
}

func withButtons(doc Document, sectionID string, fn func([]string) ([]string, bool)) (Document, bool) {
	return withSection(doc, sectionID, func(s Section) (Section, bool) {
		content, ok := s.Content.(OverviewContent)
		if !ok {
			return s, false
		}
		buttons, applied := fn(append([]string(nil), content.Buttons...))
		if !applied {
			return s, false
		}
		content.Buttons = buttons
		s.Content = content
		return s, true
	})
}

// Default factories for the repeated sub-item lists, matching the shapes
// the editor seeds new items with.

// NewStatusCard builds the default status card.
func NewStatusCard(id string) Item {
	return StatusCard{ID: id, Title: "New Status", Color: "blue", Description: "New status description"}
}

// NewStatusItem builds the default overall-status row.
func NewStatusItem(id string) Item {
	return StatusItem{ID: id, Icon: "check", Title: "New Task", Description: "Task description", NextStep: "Next step", Status: "progress"}
}

// NewProject builds the default project entry.
func NewProject(id string) Item {
	return Project{ID: id, Title: "New Project", Description: "Project description", Status: "In Progress", Priority: "Medium", ImageURL: "/placeholder.svg?height=80&width=120"}
}
