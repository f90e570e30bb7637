package plan

// DefaultDocument is the single source of the hard-coded template used for
// both first load and reset. Every call returns an independent copy.
func DefaultDocument() Document {
	return Document{
		EmailMeta: EmailMeta{
			Title:          "Weekly Plan",
			DateRange:      "Week of May 3 – May 7",
			Company:        "CODIMITE",
			HeaderBgImage:  "https://res.cloudinary.com/diii9yu7r/image/upload/v1748259697/Hero-BG-5_ltg44g.png",
			OverlayBgColor: "#191919",
			TitleColor:     "#FFFFFF",
			DateRangeColor: "#FFFFFF",
		},
		Sections: []Section{
			{
				ID:      "glance",
				Title:   "This Week at a Glance",
				Visible: true,
				Kind:    KindGlance,
				Content: GlanceContent{
					Heading:          "THIS WEEK AT A GLANCE",
					Text:             "Here’s a comprehensive summary of the project’s progress and upcoming steps.",
					StickyNotesImage: "https://res.cloudinary.com/diii9yu7r/image/upload/v1748326135/calendar-planner-organization-management-remind-concept_1_1_vamgkx.png",
				},
				Styles: &SectionStyles{BackgroundColor: "#EBF8FF", TextColor: "#1E40AF"},
			},
			{
				ID:      "summary",
				Title:   "Executive Summary",
				Visible: true,
				Kind:    KindSummary,
				Content: SummaryContent{
					Text: "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua. Ut enim ad minim",
					StatusCards: []StatusCard{
						{ID: "1", Title: "On Track", Color: "green", Description: "Projects proceeding as planned"},
						{ID: "2", Title: "Needs Attention", Color: "yellow", Description: "Requires monitoring"},
						{ID: "3", Title: "Blocked", Color: "red", Description: "Issues need resolution"},
					},
					StatusItems: []StatusItem{
						{ID: "1", Icon: "check", Title: "Database Migration", Description: "Successfully migrated user data to new infrastructure", NextStep: "Monitor performance metrics", Status: "completed"},
						{ID: "2", Icon: "clock", Title: "Frontend QA", Description: "Quality assurance testing in progress", NextStep: "Complete regression testing", Status: "progress"},
						{ID: "3", Icon: "warning", Title: "API Integration", Description: "Third-party API experiencing intermittent issues", NextStep: "Contact vendor support", Status: "blocked"},
					},
				},
			},
			{
				ID:      "updates",
				Title:   "Important Updates",
				Visible: true,
				Kind:    KindUpdates,
				Content: UpdatesContent{
					Projects: []Project{
						{ID: "1", Title: "Overall Project", Description: "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua.", Status: "In Progress", Priority: "High", ImageURL: "/placeholder.svg?height=80&width=120", BgColor: "#FFFFFF"},
						{ID: "2", Title: "Overall Project", Description: "Ut enim ad minim veniam, quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat.", Status: "Review", Priority: "Medium", ImageURL: "/placeholder.svg?height=80&width=120", BgColor: "#FFFFFF"},
					},
				},
			},
			{
				ID:      "milestones",
				Title:   "Planned Tasks & Milestone",
				Visible: true,
				Kind:    KindMilestones,
				Content: BannerContent{
					Subtitle:    "Upcoming deliverables and key milestones for the week",
					OverlayText: "Milestone Timeline Placeholder",
				},
				Styles: &SectionStyles{BackgroundColor: "#F3F4F6", TextColor: "#6B7280"},
			},
			{
				ID:      "schedule",
				Title:   "Time-Off Schedule",
				Visible: true,
				Kind:    KindSchedule,
				Content: ScheduleContent{
					Subtitle:         "Team availability and scheduled time off",
					Month:            "June",
					Year:             2025,
					CompanyHolidays:  []int{},
					NationalHolidays: []int{},
				},
				Styles: &SectionStyles{BackgroundColor: "#F3F4F6", TextColor: "#6B7280"},
			},
			{
				ID:      "overview",
				Title:   "Segmented Overview of Updates",
				Visible: true,
				Kind:    KindOverview,
				Content: OverviewContent{
					Buttons: []string{
						"New Customer Onboarding Updates",
						"Customer Issue Resolution Updates",
						"Development Request Updates",
					},
				},
				Styles: &SectionStyles{BackgroundColor: "#2563EB", TextColor: "#FFFFFF"},
			},
			{
				ID:      "additional",
				Title:   "Additional Updates",
				Visible: false,
				Kind:    KindAdditional,
				Content: BannerContent{
					Subtitle:    "Anything else worth flagging this week",
					OverlayText: "Additional Updates Placeholder",
				},
				Styles: &SectionStyles{BackgroundColor: "#F3F4F6", TextColor: "#6B7280"},
			},
		},
	}
}
