package domain

import (
	"time"

	"github.com/google/uuid"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Rank orders priorities for sorting: urgent > high > medium > low.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
}

type Category string

const (
	CategoryPersonal  Category = "personal"
	CategoryWork      Category = "work"
	CategoryShopping  Category = "shopping"
	CategoryHealth    Category = "health"
	CategoryEducation Category = "education"
	CategoryOther     Category = "other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryPersonal, CategoryWork, CategoryShopping, CategoryHealth, CategoryEducation, CategoryOther:
		return true
	}
	return false
}

func Categories() []Category {
	return []Category{
		CategoryPersonal,
		CategoryWork,
		CategoryShopping,
		CategoryHealth,
		CategoryEducation,
		CategoryOther,
	}
}

type Recurring string

const (
	RecurringNone    Recurring = "none"
	RecurringDaily   Recurring = "daily"
	RecurringWeekly  Recurring = "weekly"
	RecurringMonthly Recurring = "monthly"
)

// Weekly and monthly recurrence are stored for clients but no behavior
// acts on them; only the daily reset rule consumes recurrence state.
func (r Recurring) Valid() bool {
	switch r {
	case RecurringNone, RecurringDaily, RecurringWeekly, RecurringMonthly:
		return true
	}
	return false
}

type Subtask struct {
	ID        string
	Text      string
	Completed bool
}

type Attachment struct {
	Name string
	URL  string
	Type string
}

type Task struct {
	ID             string
	Text           string
	Description    string
	Notes          string
	Priority       Priority
	Category       Category
	Tags           []string
	DueDate        *time.Time
	EstimatedTime  *int
	ActualTime     *int
	Recurring      Recurring
	Completed      bool
	CompletedAt    *time.Time
	Progress       int
	IsDaily        bool
	DailyReset     bool
	CompletedDates []time.Time
	Subtasks       []Subtask
	Attachments    []Attachment
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func NewID() string {
	return uuid.NewString()
}

type CreateTaskInput struct {
	Text          string
	Description   string
	Notes         string
	Priority      Priority
	Category      Category
	Tags          []string
	DueDate       *time.Time
	EstimatedTime *int
	Recurring     Recurring
	IsDaily       bool
	DailyReset    bool
	Subtasks      []Subtask
}

// ReplaceTaskInput carries the full mutable field set. Identity, creation
// time and the completedDates history are never caller-settable.
type ReplaceTaskInput struct {
	Text          string
	Description   string
	Notes         string
	Priority      Priority
	Category      Category
	Tags          []string
	DueDate       *time.Time
	EstimatedTime *int
	ActualTime    *int
	Recurring     Recurring
	Completed     bool
	Progress      int
	IsDaily       bool
	DailyReset    bool
	Subtasks      []Subtask
	Attachments   []Attachment
}

type TaskPatch struct {
	Text             *string
	Description      *string
	DescriptionSet   bool
	Notes            *string
	NotesSet         bool
	Completed        *bool
	Priority         *Priority
	Category         *Category
	Tags             []string
	TagsSet          bool
	DueDate          *time.Time
	DueDateSet       bool
	EstimatedTime    *int
	EstimatedTimeSet bool
	ActualTime       *int
	ActualTimeSet    bool
	Recurring        *Recurring
	IsDaily          *bool
	DailyReset       *bool
	Progress         *int
	Subtasks         []Subtask
	SubtasksSet      bool
}

type SubtaskPatch struct {
	Text      *string
	Completed *bool
}
