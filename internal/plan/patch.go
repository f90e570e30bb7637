package plan

// patchField replaces one named content field, leaving every other field
// as-is. Unknown fields and mistyped values return (nil, false) and the
// caller treats the whole operation as a no-op.
func patchField(c SectionContent, field string, value any) (SectionContent, bool) {
	switch cc := c.(type) {
	case GlanceContent:
		switch field {
		case "heading":
			cc.Heading = asString(value, cc.Heading)
		case "text":
			cc.Text = asString(value, cc.Text)
		case "stickyNotesImage":
			cc.StickyNotesImage = asString(value, cc.StickyNotesImage)
		default:
			return nil, false
		}
		return cc, true

	case SummaryContent:
		if field != "text" {
			return nil, false
		}
		cc.Text = asString(value, cc.Text)
		return cc, true

	case BannerContent:
		switch field {
		case "subtitle":
			cc.Subtitle = asString(value, cc.Subtitle)
		case "backgroundImage":
			cc.BackgroundImage = asString(value, cc.BackgroundImage)
		case "useCustomImage":
			cc.UseCustomImage = asBool(value, cc.UseCustomImage)
		case "overlayText":
			cc.OverlayText = asString(value, cc.OverlayText)
		default:
			return nil, false
		}
		return cc, true

	case ScheduleContent:
		switch field {
		case "subtitle":
			cc.Subtitle = asString(value, cc.Subtitle)
		case "month":
			cc.Month = asString(value, cc.Month)
		case "year":
			cc.Year = asInt(value, cc.Year)
		case "companyHolidays":
			days, ok := asIntSlice(value)
			if !ok {
				return nil, false
			}
			cc.CompanyHolidays = sortedDays(days)
		case "nationalHolidays":
			days, ok := asIntSlice(value)
			if !ok {
				return nil, false
			}
			cc.NationalHolidays = sortedDays(days)
		default:
			return nil, false
		}
		return cc, true

	case OverviewContent:
		// The button list is mutated through the dedicated button
		// operations, not by whole-field replacement.
		return nil, false

	case CustomContent:
		switch field {
		case "heading":
			cc.Heading = asString(value, cc.Heading)
		case "text":
			cc.Text = asString(value, cc.Text)
		case "imageUrl":
			cc.ImageURL = asString(value, cc.ImageURL)
		default:
			return nil, false
		}
		return cc, true
	}

	return nil, false
}
