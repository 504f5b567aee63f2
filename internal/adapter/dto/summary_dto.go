package dto

// MeetingSummaryResponse represents the generated summary of a meeting
type MeetingSummaryResponse struct {
	MeetingID int64  `json:"meetingId"`
	Summary   string `json:"summary"`
}

// KeyTopicsResponse represents the main topics discussed in a meeting
type KeyTopicsResponse struct {
	MeetingID int64    `json:"meetingId"`
	Topics    []string `json:"topics"`
}
