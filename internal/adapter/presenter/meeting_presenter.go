package presenter

import (
	"slices"

	"github.com/johnquangdev/meeting-insights/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// ToMeetingResponse converts a Meeting entity to MeetingResponse DTO
func ToMeetingResponse(m entities.Meeting) *meeting.MeetingResponse {
	participants := slices.Clone(m.Participants)
	if participants == nil {
		participants = []string{}
	}

	return &meeting.MeetingResponse{
		ID:             m.ID,
		Title:          m.Title,
		Date:           m.Date,
		Duration:       m.Duration,
		Status:         string(m.Status),
		AudioReference: m.AudioReference,
		Transcription:  m.Transcription,
		MeetingType:    m.MeetingType,
		Participants:   participants,
		CreatedAt:      m.CreatedAt,
	}
}

// ToMeetingListResponse converts meetings with stats, keeping their order
func ToMeetingListResponse(meetings []entities.MeetingWithStats) []meeting.MeetingListItem {
	out := make([]meeting.MeetingListItem, len(meetings))
	for i, m := range meetings {
		out[i] = meeting.MeetingListItem{
			MeetingResponse:    *ToMeetingResponse(m.Meeting),
			ActionItemsCount:   m.ActionItemsCount,
			PendingActionItems: m.PendingActionItems,
		}
	}
	return out
}

// ToAnalyticsResponse converts the computed analytics snapshot
func ToAnalyticsResponse(a entities.Analytics) *meeting.AnalyticsResponse {
	frequency := make([]meeting.FrequencyPoint, len(a.MeetingFrequency))
	for i, p := range a.MeetingFrequency {
		frequency[i] = meeting.FrequencyPoint{Date: p.Date, Count: p.Count}
	}

	return &meeting.AnalyticsResponse{
		TotalMeetings:     a.TotalMeetings,
		TotalHours:        a.TotalHours,
		CompletedActions:  a.CompletedActions,
		AvgDuration:       a.AvgDuration,
		ProductivityScore: a.ProductivityScore,
		WeeklyMeetings:    a.WeeklyMeetings,
		MeetingFrequency:  frequency,
		ActionItemCompletion: meeting.ActionItemCompletion{
			Completed: a.ActionItemCompletion.Completed,
			Pending:   a.ActionItemCompletion.Pending,
		},
		MeetingsPerWeek:       a.MeetingsPerWeek,
		ActionItemsPerMeeting: a.ActionItemsPerMeeting,
	}
}
