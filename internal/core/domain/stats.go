package domain

// CategorySummary is one row of the per-category overview.
type CategorySummary struct {
	Name      Category
	Total     int
	Completed int
	Pending   int
	Color     string
}

// CategoryStats extends the summary with overdue count and a priority
// histogram for a single category.
type CategoryStats struct {
	Category  Category
	Total     int
	Completed int
	Pending   int
	Overdue   int
	Priority  map[Priority]int
	Color     string
}

// Overview aggregates the whole task collection. Rates are integer
// percentages and resolve to 0 when their denominator is 0.
type Overview struct {
	Total          int
	Completed      int
	Pending        int
	DueToday       int
	Overdue        int
	DailyCompleted int
	TotalDaily     int
	CompletionRate int
	DailyProgress  int
}

var categoryColors = map[Category]string{
	CategoryPersonal:  "#4CAF50",
	CategoryWork:      "#2196F3",
	CategoryShopping:  "#FF9800",
	CategoryHealth:    "#f44336",
	CategoryEducation: "#9C27B0",
	CategoryOther:     "#607D8B",
}

// CategoryColor returns the fixed display color for a category.
// Presentation metadata only; unknown categories get the "other" color.
func CategoryColor(c Category) string {
	if color, ok := categoryColors[c]; ok {
		return color
	}
	return categoryColors[CategoryOther]
}
