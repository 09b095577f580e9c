package domain

import "strings"

// Category is one of the fixed bookmark classifications.
type Category string

const (
	CategoryCoding  Category = "coding"
	CategoryAI      Category = "ai"
	CategoryResume  Category = "resume"
	CategoryCourses Category = "courses"
	CategoryOthers  Category = "others"
)

// CategoryAll is a list filter meaning "every category". It is never stored.
const CategoryAll = "all"

// categoryOrdinal indexes the metadata table. categoryCount must stay last.
type categoryOrdinal int

const (
	ordCoding categoryOrdinal = iota
	ordAI
	ordResume
	ordCourses
	ordOthers
	categoryCount
)

// CategoryInfo is the presentation metadata for a category.
type CategoryInfo struct {
	ID          Category `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Emoji       string   `json:"emoji"`
	Path        string   `json:"path"`
}

var categoryTable = [...]CategoryInfo{
	ordCoding: {
		ID:          CategoryCoding,
		Title:       "Coding Profiles",
		Description: "GitHub, LeetCode, HackerRank, etc.",
		Emoji:       "💻",
		Path:        "/coding",
	},
	ordAI: {
		ID:          CategoryAI,
		Title:       "AI Tools",
		Description: "ChatGPT, Claude, GitHub Copilot, etc.",
		Emoji:       "🤖",
		Path:        "/ai-tools",
	},
	ordResume: {
		ID:          CategoryResume,
		Title:       "Resume & Documents",
		Description: "CVs, portfolios, certificates",
		Emoji:       "📄",
		Path:        "/resume",
	},
	ordCourses: {
		ID:          CategoryCourses,
		Title:       "Courses & Notes",
		Description: "Online courses, study materials",
		Emoji:       "📚",
		Path:        "/courses",
	},
	ordOthers: {
		ID:          CategoryOthers,
		Title:       "Others",
		Description: "Miscellaneous important links",
		Emoji:       "🔗",
		Path:        "/others",
	},
}

// A category ordinal without a table entry fails to compile.
var (
	_ [len(categoryTable) - int(categoryCount)]struct{}
	_ [int(categoryCount) - len(categoryTable)]struct{}
)

func (c Category) ordinal() (categoryOrdinal, bool) {
	switch c {
	case CategoryCoding:
		return ordCoding, true
	case CategoryAI:
		return ordAI, true
	case CategoryResume:
		return ordResume, true
	case CategoryCourses:
		return ordCourses, true
	case CategoryOthers:
		return ordOthers, true
	default:
		return 0, false
	}
}

// Valid reports whether c belongs to the closed enumeration.
func (c Category) Valid() bool {
	_, ok := c.ordinal()
	return ok
}

// Info returns the metadata of c. ok is false for unknown categories.
func (c Category) Info() (CategoryInfo, bool) {
	ord, ok := c.ordinal()
	if !ok {
		return CategoryInfo{}, false
	}
	return categoryTable[ord], true
}

// Categories returns the metadata table in display order.
func Categories() []CategoryInfo {
	out := make([]CategoryInfo, len(categoryTable))
	copy(out, categoryTable[:])
	return out
}

// ParseCategory matches s against category ids and titles, ignoring case.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, info := range categoryTable {
		if strings.EqualFold(s, string(info.ID)) || strings.EqualFold(s, info.Title) {
			return info.ID, true
		}
	}
	return "", false
}

// CategoryFilter selects either one category or all of them.
type CategoryFilter string

// FilterAll matches every category.
const FilterAll CategoryFilter = CategoryAll

// FilterOf narrows a listing to c.
func FilterOf(c Category) CategoryFilter { return CategoryFilter(c) }

// IsAll reports whether the filter matches every category.
func (f CategoryFilter) IsAll() bool { return f == FilterAll }

// Category returns the narrowed category; ok is false for "all" and for
// values outside the enumeration.
func (f CategoryFilter) Category() (Category, bool) {
	if f.IsAll() {
		return "", false
	}
	c := Category(f)
	return c, c.Valid()
}

// Valid reports whether the filter is "all" or a known category.
func (f CategoryFilter) Valid() bool {
	if f.IsAll() {
		return true
	}
	return Category(f).Valid()
}

// Matches reports whether a link in category c passes the filter.
func (f CategoryFilter) Matches(c Category) bool {
	return f.IsAll() || Category(f) == c
}
