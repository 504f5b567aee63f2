package meeting

import "time"

// MeetingResponse represents a meeting in responses
type MeetingResponse struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Date           time.Time `json:"date"`
	Duration       *int      `json:"duration"`
	Status         string    `json:"status"`
	AudioReference *string   `json:"audioReference"`
	Transcription  *string   `json:"transcription"`
	MeetingType    *string   `json:"meetingType"`
	Participants   []string  `json:"participants"`
	CreatedAt      time.Time `json:"createdAt"`
}

// MeetingListItem is a meeting plus its action item counts
type MeetingListItem struct {
	MeetingResponse
	ActionItemsCount   int `json:"actionItemsCount"`
	PendingActionItems int `json:"pendingActionItems"`
}

// UploadMeetingResponse represents the response after an accepted upload
type UploadMeetingResponse struct {
	Meeting  *MeetingResponse `json:"meeting"`
	JobID    string           `json:"jobId,omitempty"`
	Replayed bool             `json:"replayed"`
}

// AnalyticsResponse represents dashboard statistics
type AnalyticsResponse struct {
	TotalMeetings         int                  `json:"totalMeetings"`
	TotalHours            float64              `json:"totalHours"`
	CompletedActions      int                  `json:"completedActions"`
	AvgDuration           int                  `json:"avgDuration"`
	ProductivityScore     int                  `json:"productivityScore"`
	WeeklyMeetings        int                  `json:"weeklyMeetings"`
	MeetingFrequency      []FrequencyPoint     `json:"meetingFrequency"`
	ActionItemCompletion  ActionItemCompletion `json:"actionItemCompletion"`
	MeetingsPerWeek       float64              `json:"meetingsPerWeek"`
	ActionItemsPerMeeting float64              `json:"actionItemsPerMeeting"`
}

type FrequencyPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type ActionItemCompletion struct {
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}
