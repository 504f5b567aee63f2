package meeting

// UploadMeetingRequest represents the text fields of a multipart meeting upload.
// Participants and the audio file are read from the form directly.
type UploadMeetingRequest struct {
	Title        string `form:"title" validate:"notblank,max=255"`
	Date         string `form:"date" validate:"notblank"`
	MeetingType  string `form:"meetingType" validate:"max=100"`
	AutoAnalysis string `form:"autoAnalysis" validate:"omitempty,oneof=true false 1 0"`
}

// UpdateMeetingRequest represents the user editable fields of a meeting
type UpdateMeetingRequest struct {
	Title        *string   `json:"title,omitempty" validate:"omitempty,notblank,max=255"`
	Date         *string   `json:"date,omitempty" validate:"omitempty,notblank"`
	MeetingType  *string   `json:"meetingType,omitempty" validate:"omitempty,max=100"`
	Participants *[]string `json:"participants,omitempty"`
}
