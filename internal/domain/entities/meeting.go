package entities

import (
	"slices"
	"time"
)

// MeetingStatus tracks a meeting through the ingestion lifecycle
type MeetingStatus string

const (
	MeetingStatusUploaded    MeetingStatus = "uploaded"
	MeetingStatusProcessing  MeetingStatus = "processing"
	MeetingStatusTranscribed MeetingStatus = "transcribed"
	MeetingStatusError       MeetingStatus = "error"
)

// IsValid reports whether s is one of the known statuses
func (s MeetingStatus) IsValid() bool {
	switch s {
	case MeetingStatusUploaded, MeetingStatusProcessing, MeetingStatusTranscribed, MeetingStatusError:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is possible
func (s MeetingStatus) IsTerminal() bool {
	return s == MeetingStatusTranscribed || s == MeetingStatusError
}

// CanTransitionTo reports whether moving from s to next keeps the
// lifecycle moving forward. Re-applying the current status is allowed.
func (s MeetingStatus) CanTransitionTo(next MeetingStatus) bool {
	if !next.IsValid() {
		return false
	}
	if s == next {
		return true
	}
	switch s {
	case MeetingStatusUploaded:
		return next == MeetingStatusProcessing || next == MeetingStatusError
	case MeetingStatusProcessing:
		return next == MeetingStatusTranscribed || next == MeetingStatusError
	}
	return false
}

// Meeting is a recorded meeting and what was learned from its audio
type Meeting struct {
	ID             int64         `json:"id"`
	Title          string        `json:"title"`
	Date           time.Time     `json:"date"`
	Duration       *int          `json:"duration"` // minutes
	Status         MeetingStatus `json:"status"`
	AudioReference *string       `json:"audioReference"`
	Transcription  *string       `json:"transcription"`
	MeetingType    *string       `json:"meetingType"`
	Participants   []string      `json:"participants"`
	CreatedAt      time.Time     `json:"createdAt"`
}

// Clone returns a deep copy so callers never share mutable state with the store
func (m Meeting) Clone() Meeting {
	m.Duration = clonePtr(m.Duration)
	m.AudioReference = clonePtr(m.AudioReference)
	m.Transcription = clonePtr(m.Transcription)
	m.MeetingType = clonePtr(m.MeetingType)
	if m.Participants == nil {
		m.Participants = []string{}
	} else {
		m.Participants = slices.Clone(m.Participants)
	}
	return m
}

// HasTranscription reports whether a non-empty transcript is stored
func (m Meeting) HasTranscription() bool {
	return m.Transcription != nil && *m.Transcription != ""
}

// NewMeeting holds the caller supplied fields of a meeting to create
type NewMeeting struct {
	Title          string
	Date           time.Time
	Status         MeetingStatus // defaults to uploaded
	Duration       *int
	AudioReference *string
	Transcription  *string
	MeetingType    *string
	Participants   []string
}

// MeetingPatch lists the fields to change on an existing meeting.
// Nil pointers leave the stored value untouched.
type MeetingPatch struct {
	Title               *string
	Date                *time.Time
	Duration            *int
	Status              *MeetingStatus
	AudioReference      *string
	ClearAudioReference bool
	Transcription       *string
	MeetingType         *string
	Participants        *[]string
}

// MeetingWithStats is a meeting plus counts derived from its action items
type MeetingWithStats struct {
	Meeting
	ActionItemsCount   int `json:"actionItemsCount"`
	PendingActionItems int `json:"pendingActionItems"`
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
