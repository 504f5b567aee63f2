package actionitem

// CreateActionItemRequest represents the request to create an action item by hand
type CreateActionItemRequest struct {
	MeetingID   int64   `json:"meetingId" validate:"required,gt=0"`
	Title       string  `json:"title" validate:"notblank,max=500"`
	Description *string `json:"description,omitempty"`
	Assignee    *string `json:"assignee,omitempty" validate:"omitempty,max=255"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=pending completed"`
	DueDate     *string `json:"dueDate,omitempty"`
}

// UpdateActionItemRequest represents a partial update. An empty dueDate clears it.
type UpdateActionItemRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,notblank,max=500"`
	Description *string `json:"description,omitempty"`
	Assignee    *string `json:"assignee,omitempty" validate:"omitempty,max=255"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=pending completed"`
	DueDate     *string `json:"dueDate,omitempty"`
}
