package repositories

import (
	"context"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// MeetingRepository defines the interface for meeting data access
type MeetingRepository interface {
	// CreateMeeting assigns the next id and stores the meeting
	CreateMeeting(ctx context.Context, m entities.NewMeeting) (entities.Meeting, error)

	// GetMeeting returns entities.ErrMeetingNotFound when id is unknown
	GetMeeting(ctx context.Context, id int64) (entities.Meeting, error)

	// ListMeetings returns every meeting, most recent date first
	ListMeetings(ctx context.Context) ([]entities.MeetingWithStats, error)

	// UpdateMeeting applies the patch and returns the stored result
	UpdateMeeting(ctx context.Context, id int64, patch entities.MeetingPatch) (entities.Meeting, error)

	// DeleteMeeting removes the meeting and its action items
	DeleteMeeting(ctx context.Context, id int64) (bool, error)

	// SearchMeetings matches title, transcription and participants
	SearchMeetings(ctx context.Context, query string) ([]entities.MeetingWithStats, error)
}

// ActionItemRepository defines the interface for action item data access
type ActionItemRepository interface {
	CreateActionItem(ctx context.Context, item entities.NewActionItem) (entities.ActionItem, error)
	GetActionItem(ctx context.Context, id int64) (entities.ActionItem, error)
	ListActionItemsForMeeting(ctx context.Context, meetingID int64) ([]entities.ActionItem, error)
	ListAllActionItems(ctx context.Context) ([]entities.ActionItem, error)
	ListPendingActionItems(ctx context.Context) ([]entities.ActionItem, error)
	UpdateActionItem(ctx context.Context, id int64, patch entities.ActionItemPatch) (entities.ActionItem, error)
	DeleteActionItem(ctx context.Context, id int64) (bool, error)
}

// AnalyticsRepository computes aggregate statistics over stored data
type AnalyticsRepository interface {
	ComputeAnalytics(ctx context.Context) (entities.Analytics, error)
}

// Store is the full entity store used by the pipeline and services
type Store interface {
	MeetingRepository
	ActionItemRepository
	AnalyticsRepository
}
