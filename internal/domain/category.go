package domain

// Category labels tasks and time entries for grouping.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

const (
	// DefaultCategoryID is assumed for time entries recorded without a category.
	DefaultCategoryID = "work"
	// FallbackCategoryName and FallbackCategoryColor stand in for unknown category ids.
	FallbackCategoryName  = "Uncategorized"
	FallbackCategoryColor = "#6366f1"
)

// DefaultCategories returns the bootstrap set used when none are persisted.
func DefaultCategories() []Category {
	return []Category{
		{ID: "work", Name: "Work", Color: "#6366f1"},
		{ID: "study", Name: "Study", Color: "#8b5cf6"},
		{ID: "personal", Name: "Personal", Color: "#10b981"},
		{ID: "health", Name: "Health", Color: "#f59e0b"},
	}
}

// LookupCategory finds id in cats. Unknown ids resolve to the fallback label and colour
// with ok=false.
func LookupCategory(cats []Category, id string) (Category, bool) {
	for _, c := range cats {
		if c.ID == id {
			return c, true
		}
	}
	return Category{ID: id, Name: FallbackCategoryName, Color: FallbackCategoryColor}, false
}
