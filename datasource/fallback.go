package datasource

import (
	"time"

	"github.com/shulehub/forum/models"
)

// fallbackPosts is the fixed dataset served when the remote feed is
// unreachable or returns garbage. It is process-wide constant data: every
// field is deterministic so repeated failures render identically.
var fallbackPosts = []models.Post{
	{
		ID:           "fb-001",
		Title:        "Welcome to the ShuleHub Community Forum",
		Content:      "This is the place to ask questions, share study resources and connect with other learners, parents and instructors. Please read the community guidelines before posting and keep discussions respectful.",
		Category:     models.CategoryAnnouncements,
		Tags:         []string{"welcome", "community", "guidelines"},
		Author:       models.Author{ID: "u-001", Name: "ShuleHub Team", Role: models.RoleAdmin},
		Stats:        models.PostStats{Views: 1840, Replies: 23, Likes: 56},
		Timestamp:    time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC),
		LastActivity: time.Date(2024, 3, 18, 9, 30, 0, 0, time.UTC),
		Pinned:       true,
	},
	{
		ID:           "fb-002",
		Title:        "CBC Grade 8 Curriculum Resources Now Available",
		Content:      "We have published a full set of CBC aligned notes, schemes of work and revision papers for Grade 8. You can find them under the resources tab. More grades are on the way this term.",
		Category:     models.CategoryAnnouncements,
		Tags:         []string{"cbc", "grade-8", "resources"},
		Author:       models.Author{ID: "u-001", Name: "ShuleHub Team", Role: models.RoleAdmin},
		Stats:        models.PostStats{Views: 1320, Replies: 18, Likes: 64},
		Timestamp:    time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC),
		LastActivity: time.Date(2024, 3, 16, 14, 45, 0, 0, time.UTC),
		Pinned:       true,
	},
	{
		ID:           "fb-003",
		Title:        "Scheduled Maintenance This Weekend",
		Content:      "The platform will be briefly unavailable on Saturday night between 11pm and 1am for database maintenance. Saved drafts and bookmarks will not be affected.",
		Category:     models.CategoryAnnouncements,
		Tags:         []string{"maintenance"},
		Author:       models.Author{ID: "u-001", Name: "ShuleHub Team", Role: models.RoleStaff},
		Stats:        models.PostStats{Views: 410, Replies: 2, Likes: 9},
		Timestamp:    time.Date(2024, 3, 13, 16, 0, 0, 0, time.UTC),
		LastActivity: time.Date(2024, 3, 14, 7, 20, 0, 0, time.UTC),
	},
	{
		ID:           "fb-004",
		Title:        "Struggling with Grade 8 Mathematics: Algebra Basics",
		Content:      "My daughter keeps getting stuck on simplifying algebraic expressions. We have tried the textbook examples but the step from numbers to letters is not clicking. Any instructors here with a gentler way to introduce it?",
		Category:     models.CategoryAcademicHelp,
		Tags:         []string{"mathematics", "grade-8", "algebra"},
		Author:       models.Author{ID: "u-002", Name: "Wanjiru M.", Role: models.RoleParent},
		Stats:        models.PostStats{Views: 960, Replies: 45, Likes: 38},
		Timestamp:    time.Date(2024, 3, 8, 19, 15, 0, 0, time.UTC),
		LastActivity: time.Date(2024, 3, 17, 21, 5, 0, 0, time.UTC),
		Solved:       true,
	},
	{
		ID:           "fb-005",
		Title:        "How should we approach CBC science projects?",
		Content:      "Our school asked learners to design a rainwater harvesting model as part of the CBC integrated science strand. What counts as evidence of competency here, and how much should parents help without taking over?",
		Category:     models.CategoryAcademicHelp,
		Tags:         []string{"cbc", "science", "projects"},
		Author:       models.Author{ID: "u-003", Name: "Brian Otieno", Role: models.RoleStudent},
		Stats:        models.PostStats{Views: 540, Replies: 21, Likes: 27},
		Timestamp:    time.Date(2024, 3, 10, 11, 40, 0, 0, time.UTC),
		LastActivity: time.Date(2024, 3, 15, 18, 10, 0, 0, time.UTC),
	},
	{
		ID:           "fb-006",
		Title:        "My Revision Timetable That Actually Works",
		Content:      "After two terms of trial and error I settled on 40 minute focus blocks with 10 minute breaks, hardest subject first thing in the morning, and a full rest day on Sunday. Sharing the template in case it helps anyone else.",
		Category:     models.CategoryStudyTips,
		Tags:         []string{"revision", "planning", "timetable"},
		Author:       models.Author{ID: "u-004", Name: "Amina Hassan", Role: models.RoleStudent},
		Stats:        models.PostStats{Views: 1105, Replies: 34, Likes: 87},
		Timestamp:    time.Date(2024, 2, 20, 7, 30, 0, 0, time.UTC),
		LastActivity: time.Date(2024, 3, 12, 16, 55, 0, 0, time.UTC),
	},
	{
		ID:           "fb-007",
		Title:        "Top Memory Techniques for KPSEA Preparation",
		Content:      "Spaced repetition beats cramming every single time. I walk my class through flashcards, memory palaces and teach-back sessions in the last month before KPSEA and the difference in recall is dramatic.",
		Category:     models.CategoryStudyTips,
		Tags:         []string{"memory", "kpsea", "exams"},
		Author:       models.Author{ID: "u-005", Name: "Mr. Kiprotich", Role: models.RoleInstructor},
		Stats:        models.PostStats{Views: 780, Replies: 12, Likes: 52},
		Timestamp:    time.Date(2024, 3, 2, 13, 25, 0, 0, time.UTC),
		LastActivity: time.Date(2024, 3, 11, 10, 40, 0, 0, time.UTC),
	},
	{
		ID:           "fb-008",
		Title:        "Supporting my child through the CBC transition",
		Content:      "We moved from the 8-4-4 mindset of exams and ranking to CBC portfolios and strands, and honestly I felt lost at first. Here is what helped our family: asking teachers for the assessment rubrics early and celebrating competencies, not marks.",
		Category:     models.CategoryParentsCorner,
		Tags:         []string{"cbc", "parenting", "transition"},
		Author:       models.Author{ID: "u-006", Name: "Grace Njeri", Role: models.RoleParent},
		Stats:        models.PostStats{Views: 690, Replies: 28, Likes: 44},
		Timestamp:    time.Date(2024, 3, 5, 20, 10, 0, 0, time.UTC),
		LastActivity: time.Date(2024, 3, 13, 19, 35, 0, 0, time.UTC),
	},
	{
		ID:           "fb-009",
		Title:        "Screen time versus study time: finding the balance",
		Content:      "Outright bans backfired in our house. What worked was a shared agreement: schoolwork and chores first, then free screen time, with devices parked outside bedrooms overnight. Curious what routines other parents use.",
		Category:     models.CategoryParentsCorner,
		Tags:         []string{"parenting", "screen-time", "balance"},
		Author:       models.Author{ID: "u-007", Name: "David Mwangi", Role: models.RoleParent},
		Stats:        models.PostStats{Views: 430, Replies: 16, Likes: 22},
		Timestamp:    time.Date(2024, 3, 9, 21, 50, 0, 0, time.UTC),
		LastActivity: time.Date(2024, 3, 10, 8, 15, 0, 0, time.UTC),
	},
	{
		ID:           "fb-010",
		Title:        "Introduce yourself here!",
		Content:      "New to the forum? Drop a quick hello and tell us what you are studying or teaching. It is always easier to ask for help once people know who you are.",
		Category:     models.CategoryGeneral,
		Tags:         []string{"community", "introductions"},
		Author:       models.Author{ID: "u-008", Name: "Patel Tutoring", Role: models.RolePartner},
		Stats:        models.PostStats{Views: 1560, Replies: 39, Likes: 31},
		Timestamp:    time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC),
		LastActivity: time.Date(2024, 3, 19, 12, 25, 0, 0, time.UTC),
	},
}

// FallbackPosts returns a copy of the built-in dataset. Callers get their own
// slice so the canonical table stays immutable.
func FallbackPosts() []models.Post {
	out := make([]models.Post, len(fallbackPosts))
	copy(out, fallbackPosts)
	for i := range out {
		tags := make([]string, len(fallbackPosts[i].Tags))
		copy(tags, fallbackPosts[i].Tags)
		out[i].Tags = tags
		out[i].Excerpt = models.MakeExcerpt(out[i].Content)
	}
	return out
}
