package entities

// Analytics is a point-in-time snapshot computed over the whole store
type Analytics struct {
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

// FrequencyPoint is the number of meetings held on one calendar day
type FrequencyPoint struct {
	Date  string `json:"date"` // e.g. "Jan 02"
	Count int    `json:"count"`
}

type ActionItemCompletion struct {
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}
