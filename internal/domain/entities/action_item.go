package entities

import "time"

type ActionItemStatus string

const (
	ActionItemStatusPending   ActionItemStatus = "pending"
	ActionItemStatusCompleted ActionItemStatus = "completed"
)

func (s ActionItemStatus) IsValid() bool {
	return s == ActionItemStatusPending || s == ActionItemStatusCompleted
}

type ActionItem struct {
	ID          int64            `json:"id"`
	MeetingID   int64            `json:"meetingId"`
	Title       string           `json:"title"`
	Description *string          `json:"description"`
	Assignee    *string          `json:"assignee"`
	Status      ActionItemStatus `json:"status"`
	DueDate     *time.Time       `json:"dueDate"`
	CreatedAt   time.Time        `json:"createdAt"`
}

func (a ActionItem) Clone() ActionItem {
	a.Description = clonePtr(a.Description)
	a.Assignee = clonePtr(a.Assignee)
	a.DueDate = clonePtr(a.DueDate)
	return a
}

func (a ActionItem) IsPending() bool {
	return a.Status == ActionItemStatusPending
}

// NewActionItem holds the fields of an action item to create.
// Status defaults to pending.
type NewActionItem struct {
	MeetingID   int64
	Title       string
	Description *string
	Assignee    *string
	Status      ActionItemStatus
	DueDate     *time.Time
}

// ActionItemPatch lists the fields to change on an action item
type ActionItemPatch struct {
	Title            *string
	Description      *string
	ClearDescription bool
	Assignee         *string
	ClearAssignee    bool
	Status           *ActionItemStatus
	DueDate          *time.Time
	ClearDueDate     bool
}
