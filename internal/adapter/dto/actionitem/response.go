package actionitem

import "time"

// ActionItemResponse represents an action item in responses
type ActionItemResponse struct {
	ID          int64      `json:"id"`
	MeetingID   int64      `json:"meetingId"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Assignee    *string    `json:"assignee"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"dueDate"`
	CreatedAt   time.Time  `json:"createdAt"`
}
